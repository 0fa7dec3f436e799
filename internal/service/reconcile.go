package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
	Price     decimal.Decimal
}

// ItemUpdate targets a persisted order item row with the requested values.
type ItemUpdate struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	Price     decimal.Decimal
}

// ItemChanges is the create/update/delete plan for an order's items.
type ItemChanges struct {
	ToCreate []OrderItemInput
	ToUpdate []ItemUpdate
	ToDelete []database.OrderItem
}

// CategorizeItems diffs requested against persisted, keyed by product id.
// Requested items without a persisted row are created, rows whose quantity
// or price changed are updated in place by their id, and persisted rows no
// longer requested are deleted.
func CategorizeItems(requested []OrderItemInput, persisted []database.OrderItem) ItemChanges {
	existing := make(map[uuid.UUID]database.OrderItem, len(persisted))
	for _, p := range persisted {
		existing[p.ProductID] = p
	}

	var changes ItemChanges
	for _, r := range requested {
		p, ok := existing[r.ProductID]
		if !ok {
			changes.ToCreate = append(changes.ToCreate, r)
			continue
		}
		delete(existing, r.ProductID)
		if p.Quantity != r.Quantity || !database.Decimal(p.Price).Equal(r.Price) {
			changes.ToUpdate = append(changes.ToUpdate, ItemUpdate{
				ID:        p.ID,
				ProductID: p.ProductID,
				Quantity:  r.Quantity,
				Price:     r.Price,
			})
		}
	}

	// Walk persisted again so deletes come out in stored order.
	for _, p := range persisted {
		if _, ok := existing[p.ProductID]; ok {
			changes.ToDelete = append(changes.ToDelete, p)
		}
	}
	return changes
}
