package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
)

func fixedTax(rate string) database.Tax {
	return database.Tax{ID: uuid.New(), Rate: makeNumeric(rate), IsFixed: true}
}

func percentTax(rate string) database.Tax {
	return database.Tax{ID: uuid.New(), Rate: makeNumeric(rate)}
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		taxes    []database.Tax
		before   string
		rounding string
		after    string
	}{
		{"fixed and percentage", "50", []database.Tax{fixedTax("5"), percentTax("7")}, "58.5", "0.5", "59"},
		{"percentage only", "40", []database.Tax{percentTax("7")}, "42.8", "0.2", "43"},
		{"no taxes", "100", nil, "100", "0", "100"},
		{"whole result", "40", []database.Tax{percentTax("10")}, "44", "0", "44"},
		{"half-up at cents", "10.05", []database.Tax{percentTax("5")}, "10.55", "0.45", "11"},
		{"one cent short", "10.01", nil, "10.01", "0.99", "11"},
		{"percentages summed", "20", []database.Tax{percentTax("5"), percentTax("6")}, "22.2", "0.8", "23"},
		{"fixed only", "12.30", []database.Tax{fixedTax("2"), fixedTax("0.25")}, "14.55", "0.45", "15"},
		{"zero total", "0", []database.Tax{percentTax("10")}, "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTax(dec(tt.total), tt.taxes)
			if !got.BeforeRoundingTax.Equal(dec(tt.before)) {
				t.Errorf("before_rounding_tax: got %s, want %s", got.BeforeRoundingTax, tt.before)
			}
			if !got.Rounding.Equal(dec(tt.rounding)) {
				t.Errorf("rounding: got %s, want %s", got.Rounding, tt.rounding)
			}
			if !got.AfterRoundingTax.Equal(dec(tt.after)) {
				t.Errorf("after_rounding_tax: got %s, want %s", got.AfterRoundingTax, tt.after)
			}
		})
	}
}

func TestCalculateTax_AlwaysWholeAfterRounding(t *testing.T) {
	taxSets := [][]database.Tax{
		nil,
		{percentTax("7")},
		{percentTax("11"), fixedTax("1.35")},
		{fixedTax("0.99")},
		{percentTax("12.5"), percentTax("3")},
	}
	for cents := int64(0); cents < 5000; cents += 37 {
		total := decimal.New(cents, -2)
		for _, taxes := range taxSets {
			got := CalculateTax(total, taxes)
			if got.Rounding.IsNegative() || got.Rounding.GreaterThanOrEqual(one) {
				t.Fatalf("total %s: rounding %s out of [0, 1)", total, got.Rounding)
			}
			if !got.AfterRoundingTax.Equal(got.AfterRoundingTax.Truncate(0)) {
				t.Fatalf("total %s: after_rounding_tax %s is not whole", total, got.AfterRoundingTax)
			}
			if !got.AfterRoundingTax.Equal(got.BeforeRoundingTax.Add(got.Rounding)) {
				t.Fatalf("total %s: after != before + rounding", total)
			}
		}
	}
}

type mockTaxStore struct {
	calls int
	taxes []database.Tax
	err   error
}

func (m *mockTaxStore) ListTaxesByIDs(ctx context.Context, arg database.ListTaxesByIDsParams) ([]database.Tax, error) {
	m.calls++
	return m.taxes, m.err
}

func TestTaxCalculator_IgnoresUnknownIDs(t *testing.T) {
	store := &mockTaxStore{taxes: []database.Tax{percentTax("7")}}
	calc := NewTaxCalculator(store)

	got, err := calc.Calculate(context.Background(), uuid.New(), dec("40"), []uuid.UUID{uuid.New(), uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AfterRoundingTax.Equal(dec("43")) {
		t.Errorf("after_rounding_tax: got %s, want 43", got.AfterRoundingTax)
	}
}

func TestTaxCalculator_NoIDsSkipsLookup(t *testing.T) {
	store := &mockTaxStore{}
	calc := NewTaxCalculator(store)

	got, err := calc.Calculate(context.Background(), uuid.New(), dec("100"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 0 {
		t.Errorf("expected no lookup, got %d calls", store.calls)
	}
	if !got.AfterRoundingTax.Equal(dec("100")) {
		t.Errorf("after_rounding_tax: got %s", got.AfterRoundingTax)
	}
}

func TestTaxCalculator_StoreError(t *testing.T) {
	boom := errors.New("boom")
	calc := NewTaxCalculator(&mockTaxStore{err: boom})

	_, err := calc.Calculate(context.Background(), uuid.New(), dec("1"), []uuid.UUID{uuid.New()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got: %v", err)
	}
}
