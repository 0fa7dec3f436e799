package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/enum"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to mutate orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	TableStore
	ValidatorStore
	UpdateTableStatus(ctx context.Context, arg database.UpdateTableStatusParams) error
	ReleaseTable(ctx context.Context, id uuid.UUID) error
	GetOrderForUpdate(ctx context.Context, arg database.GetOrderForUpdateParams) (database.Order, error)
	CountPendingOrdersByTable(ctx context.Context, arg database.CountPendingOrdersByTableParams) (int64, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	DeleteOrder(ctx context.Context, arg database.DeleteOrderParams) (uuid.UUID, error)
	AddOrderTax(ctx context.Context, arg database.AddOrderTaxParams) error
	DeleteOrderTaxes(ctx context.Context, orderID uuid.UUID) error
	ListOrderTaxIDs(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	UpdateOrderItem(ctx context.Context, arg database.UpdateOrderItemParams) (database.OrderItem, error)
	DeleteOrderItems(ctx context.Context, arg database.DeleteOrderItemsParams) error
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// OrderInput is the payload for creating or editing an order.
type OrderInput struct {
	TableID       uuid.UUID
	Status        string // create only; empty or PENDING
	Type          database.OrderType
	PaymentMethod database.PaymentMethod
	TaxIDs        []uuid.UUID
	Subtotal      decimal.Decimal
	Rounding      decimal.Decimal
	TotalPrice    decimal.Decimal
	Description   string
	Items         []OrderItemInput
}

// OrderResult is an order with its items and applied tax ids.
type OrderResult struct {
	Order  database.Order
	Items  []database.OrderItem
	TaxIDs []uuid.UUID
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// CreateOrder places a PENDING order on a free table. Guard and validation
// run before the first write; the order, its taxes, its items and the table
// flip to OCCUPIED commit together.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, in OrderInput) (*OrderResult, error) {
	if in.Status != "" && in.Status != enum.OrderStatusPending {
		return nil, ErrStatusNotPending
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}

	// --- Begin transaction ---
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Guard + validate ---
	snap, err := loadTableSnapshot(ctx, store, userID, in.TableID, guardCreate)
	if err != nil {
		return nil, err
	}
	if err := checkTableAvailability(guardCreate, snap, uuid.Nil); err != nil {
		return nil, err
	}
	if err := validateOrder(ctx, store, userID, in); err != nil {
		return nil, err
	}

	// --- Insert order ---
	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		UserID:        userID,
		TableID:       in.TableID,
		Type:          in.Type,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      database.Numeric(in.Subtotal),
		Rounding:      database.Numeric(in.Rounding),
		TotalPrice:    database.Numeric(in.TotalPrice),
		Description:   database.Text(in.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := setOrderTaxes(ctx, store, order.ID, in.TaxIDs, false); err != nil {
		return nil, err
	}

	// --- Insert items ---
	items := make([]database.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		created, err := createItem(ctx, store, order.ID, item)
		if err != nil {
			return nil, err
		}
		items = append(items, created)
	}

	// --- Occupy table ---
	if err := store.UpdateTableStatus(ctx, database.UpdateTableStatusParams{
		Status: database.TableStatusOCCUPIED,
		ID:     in.TableID,
	}); err != nil {
		return nil, fmt.Errorf("occupy table: %w", err)
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &OrderResult{Order: order, Items: items, TaxIDs: in.TaxIDs}, nil
}

// EditOrder replaces a PENDING order's header, taxes and items. Item rows
// are reconciled by product id rather than rewritten. When the order moves
// tables, the old table is released and the new one occupied.
func (s *OrderService) EditOrder(ctx context.Context, userID, orderID uuid.UUID, in OrderInput) (*OrderResult, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	// --- Begin transaction ---
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := lockOrder(ctx, store, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := canTransition(current.Status); err != nil {
		return nil, err
	}

	// --- Guard + validate ---
	snap, err := loadTableSnapshot(ctx, store, userID, in.TableID, guardEdit)
	if err != nil {
		return nil, err
	}
	if err := checkTableAvailability(guardEdit, snap, current.TableID); err != nil {
		return nil, err
	}
	if err := validateOrder(ctx, store, userID, in); err != nil {
		return nil, err
	}

	persisted, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	changes := CategorizeItems(in.Items, persisted)

	// --- Update header + taxes ---
	order, err := store.UpdateOrder(ctx, database.UpdateOrderParams{
		TableID:       in.TableID,
		Type:          in.Type,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      database.Numeric(in.Subtotal),
		Rounding:      database.Numeric(in.Rounding),
		TotalPrice:    database.Numeric(in.TotalPrice),
		Description:   database.Text(in.Description),
		ID:            orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := setOrderTaxes(ctx, store, orderID, in.TaxIDs, true); err != nil {
		return nil, err
	}

	// --- Apply item changes ---
	if err := applyItemChanges(ctx, store, orderID, changes); err != nil {
		return nil, err
	}

	// --- Move table ---
	if current.TableID != in.TableID {
		if err := releaseTable(ctx, store, current.TableID, orderID); err != nil {
			return nil, err
		}
		if err := store.UpdateTableStatus(ctx, database.UpdateTableStatusParams{
			Status: database.TableStatusOCCUPIED,
			ID:     in.TableID,
		}); err != nil {
			return nil, fmt.Errorf("occupy table: %w", err)
		}
	}

	items, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &OrderResult{Order: order, Items: items, TaxIDs: in.TaxIDs}, nil
}

// CheckoutOrder moves a PENDING order to COMPLETED.
func (s *OrderService) CheckoutOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResult, error) {
	return s.closeOrder(ctx, userID, orderID, database.OrderStatusCOMPLETED)
}

// CancelOrder moves a PENDING order to CANCELED.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResult, error) {
	return s.closeOrder(ctx, userID, orderID, database.OrderStatusCANCELED)
}

// closeOrder stamps a terminal status and completion time, then frees the
// table unless another PENDING order still sits on it.
func (s *OrderService) closeOrder(ctx context.Context, userID, orderID uuid.UUID, status database.OrderStatus) (*OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := lockOrder(ctx, store, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := canTransition(current.Status); err != nil {
		return nil, err
	}

	order, err := store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		Status: status,
		ID:     orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := releaseTable(ctx, store, order.TableID, orderID); err != nil {
		return nil, err
	}

	items, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	taxIDs, err := store.ListOrderTaxIDs(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order taxes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &OrderResult{Order: order, Items: items, TaxIDs: taxIDs}, nil
}

// DeleteOrder removes an order in any status. Items and tax links cascade.
// The table status is left as is.
func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, err := store.DeleteOrder(ctx, database.DeleteOrderParams{
		ID:     orderID,
		UserID: userID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// canTransition reports whether an order in status may still be edited,
// checked out or canceled. Only PENDING orders may.
func canTransition(status database.OrderStatus) error {
	if status != database.OrderStatusPENDING {
		return ErrOrderClosed
	}
	return nil
}

// --- Helpers ---

func lockOrder(ctx context.Context, store OrderStore, userID, orderID uuid.UUID) (database.Order, error) {
	order, err := store.GetOrderForUpdate(ctx, database.GetOrderForUpdateParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func setOrderTaxes(ctx context.Context, store OrderStore, orderID uuid.UUID, taxIDs []uuid.UUID, replace bool) error {
	if replace {
		if err := store.DeleteOrderTaxes(ctx, orderID); err != nil {
			return fmt.Errorf("delete order taxes: %w", err)
		}
	}
	for _, taxID := range taxIDs {
		if err := store.AddOrderTax(ctx, database.AddOrderTaxParams{
			OrderID: orderID,
			TaxID:   taxID,
		}); err != nil {
			return fmt.Errorf("add order tax: %w", err)
		}
	}
	return nil
}

func createItem(ctx context.Context, store OrderStore, orderID uuid.UUID, item OrderItemInput) (database.OrderItem, error) {
	created, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
		OrderID:   orderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     database.Numeric(item.Price),
	})
	if err != nil {
		return database.OrderItem{}, fmt.Errorf("create order item: %w", err)
	}
	return created, nil
}

// applyItemChanges deletes before creating so a product removed and re-added
// never trips the (order_id, product_id) unique constraint.
func applyItemChanges(ctx context.Context, store OrderStore, orderID uuid.UUID, changes ItemChanges) error {
	if len(changes.ToDelete) > 0 {
		ids := make([]uuid.UUID, len(changes.ToDelete))
		for i, item := range changes.ToDelete {
			ids[i] = item.ID
		}
		if err := store.DeleteOrderItems(ctx, database.DeleteOrderItemsParams{
			OrderID: orderID,
			Ids:     ids,
		}); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
	}

	for _, u := range changes.ToUpdate {
		if _, err := store.UpdateOrderItem(ctx, database.UpdateOrderItemParams{
			Quantity: u.Quantity,
			Price:    database.Numeric(u.Price),
			ID:       u.ID,
			OrderID:  orderID,
		}); err != nil {
			return fmt.Errorf("update order item: %w", err)
		}
	}

	for _, item := range changes.ToCreate {
		if _, err := createItem(ctx, store, orderID, item); err != nil {
			return err
		}
	}
	return nil
}

// releaseTable frees tableID unless a PENDING order other than orderID
// still references it.
func releaseTable(ctx context.Context, store OrderStore, tableID, orderID uuid.UUID) error {
	pending, err := store.CountPendingOrdersByTable(ctx, database.CountPendingOrdersByTableParams{
		TableID: tableID,
		ID:      orderID,
	})
	if err != nil {
		return fmt.Errorf("count pending orders: %w", err)
	}
	if pending > 0 {
		return nil
	}
	if err := store.ReleaseTable(ctx, tableID); err != nil {
		return fmt.Errorf("release table: %w", err)
	}
	return nil
}
