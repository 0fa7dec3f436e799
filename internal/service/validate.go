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

// ValidatorStore is the catalog and tax lookup used by the order validator.
type ValidatorStore interface {
	GetProductForOrder(ctx context.Context, arg database.GetProductForOrderParams) (database.GetProductForOrderRow, error)
	TaxStore
}

// checkInput rejects payloads that are malformed on their own, before any
// lookups run.
func checkInput(in OrderInput) error {
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	if !validOrderType(in.Type) {
		return ErrInvalidOrderType
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}
	if !storable(in.Subtotal) || !storable(in.Rounding) || !storable(in.TotalPrice) {
		return ErrAmountPrecision
	}
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("item[%d]: %w", i, ErrInvalidPrice)
		}
		if !storable(item.Price) {
			return fmt.Errorf("item[%d]: %w", i, ErrAmountPrecision)
		}
	}
	return nil
}

// storable reports whether d survives a NUMERIC(12,2) column unchanged.
// Trailing zeros such as 50.000 are fine; 55.005 is not.
func storable(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// validateOrder runs the consistency checks in order: duplicate lines,
// catalog prices, tax ids, then subtotal and total. All comparisons are exact.
func validateOrder(ctx context.Context, store ValidatorStore, userID uuid.UUID, in OrderInput) error {
	if hasDuplicateProducts(in.Items) {
		return ErrDuplicateItems
	}

	for i, item := range in.Items {
		product, err := store.GetProductForOrder(ctx, database.GetProductForOrderParams{
			ID:     item.ProductID,
			UserID: userID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("item[%d]: %w", i, ErrInvalidOrderItem)
			}
			return fmt.Errorf("item[%d]: get product: %w", i, err)
		}
		if !database.Decimal(product.Price).Equal(item.Price) {
			return fmt.Errorf("item[%d]: %w", i, ErrInvalidOrderItem)
		}
	}

	taxes, err := NewTaxCalculator(store).rules(ctx, userID, in.TaxIDs)
	if err != nil {
		return err
	}
	// Duplicate ids resolve to one row each, so they fail here too.
	if len(taxes) != len(in.TaxIDs) {
		return ErrInvalidTax
	}

	subtotal := itemsSubtotal(in.Items)
	if !subtotal.Equal(in.Subtotal) {
		return ErrSubtotalMismatch
	}

	breakdown := CalculateTax(subtotal, taxes)
	if !in.TotalPrice.Equal(breakdown.BeforeRoundingTax.Add(in.Rounding)) {
		return ErrTotalMismatch
	}
	return nil
}

func hasDuplicateProducts(items []OrderItemInput) bool {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			return true
		}
		seen[item.ProductID] = struct{}{}
	}
	return false
}

func itemsSubtotal(items []OrderItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

func validOrderType(t database.OrderType) bool {
	switch string(t) {
	case enum.OrderTypePrepaid, enum.OrderTypePostpaid:
		return true
	}
	return false
}

func validPaymentMethod(m database.PaymentMethod) bool {
	switch string(m) {
	case enum.PaymentMethodCash, enum.PaymentMethodCard,
		enum.PaymentMethodQRIS, enum.PaymentMethodTransfer:
		return true
	}
	return false
}
