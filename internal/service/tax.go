package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// TaxBreakdown is the result of applying tax rules and cash rounding to an
// item total.
type TaxBreakdown struct {
	AfterRoundingTax  decimal.Decimal `json:"after_rounding_tax"`
	Rounding          decimal.Decimal `json:"rounding"`
	BeforeRoundingTax decimal.Decimal `json:"before_rounding_tax"`
}

// CalculateTax applies taxes to totalItemPrice. Percentage rates are summed
// and applied once; fixed amounts are added on top. The taxed total is
// rounded half-up to 2 places, then rounded up to the next whole unit.
func CalculateTax(totalItemPrice decimal.Decimal, taxes []database.Tax) TaxBreakdown {
	totalFixed := decimal.Zero
	totalPercentage := decimal.Zero
	for _, t := range taxes {
		rate := database.Decimal(t.Rate)
		if t.IsFixed {
			totalFixed = totalFixed.Add(rate)
		} else {
			totalPercentage = totalPercentage.Add(rate)
		}
	}

	before := totalItemPrice.
		Mul(one.Add(totalPercentage.Div(hundred))).
		Add(totalFixed).
		Round(2)

	fraction := before.Sub(before.Truncate(0)).Round(2)
	rounding := decimal.Zero
	if fraction.IsPositive() {
		rounding = one.Sub(fraction).Round(2)
	}

	return TaxBreakdown{
		AfterRoundingTax:  before.Add(rounding),
		Rounding:          rounding,
		BeforeRoundingTax: before,
	}
}

// TaxStore is the tax rule lookup used by TaxCalculator.
// Satisfied by *database.Queries.
type TaxStore interface {
	ListTaxesByIDs(ctx context.Context, arg database.ListTaxesByIDsParams) ([]database.Tax, error)
}

// TaxCalculator resolves a tenant's tax rules and runs CalculateTax.
type TaxCalculator struct {
	store TaxStore
}

// NewTaxCalculator creates a TaxCalculator reading rules from store.
func NewTaxCalculator(store TaxStore) *TaxCalculator {
	return &TaxCalculator{store: store}
}

// Calculate computes the breakdown for totalItemPrice. Unknown tax ids are
// ignored; existence is checked by the order validator.
func (c *TaxCalculator) Calculate(ctx context.Context, userID uuid.UUID, totalItemPrice decimal.Decimal, taxIDs []uuid.UUID) (TaxBreakdown, error) {
	taxes, err := c.rules(ctx, userID, taxIDs)
	if err != nil {
		return TaxBreakdown{}, err
	}
	return CalculateTax(totalItemPrice, taxes), nil
}

func (c *TaxCalculator) rules(ctx context.Context, userID uuid.UUID, taxIDs []uuid.UUID) ([]database.Tax, error) {
	if len(taxIDs) == 0 {
		return nil, nil
	}
	taxes, err := c.store.ListTaxesByIDs(ctx, database.ListTaxesByIDsParams{
		UserID: userID,
		Ids:    taxIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	return taxes, nil
}
