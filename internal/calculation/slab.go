package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SlabTable is a validated progressive schedule. The zero value has no slabs
// and taxes nothing. Tables are immutable; Slabs returns a copy.
type SlabTable struct {
	slabs []domain.TaxSlab
}

// NewSlabTable validates and copies slabs. Bounded slabs must come first with
// strictly increasing positive upper bounds, and only the last slab may (and
// must) be unbounded. Rates must lie in [0,1].
func NewSlabTable(slabs []domain.TaxSlab) (SlabTable, error) {
	if len(slabs) == 0 {
		return SlabTable{}, fmt.Errorf("slab table is empty")
	}

	copied := make([]domain.TaxSlab, 0, len(slabs))
	prev := decimal.Zero
	for i, s := range slabs {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(one) {
			return SlabTable{}, fmt.Errorf("slab %d: rate %s outside [0,1]", i, s.Rate.String())
		}

		last := i == len(slabs)-1
		if !s.Bounded() {
			if !last {
				return SlabTable{}, fmt.Errorf("slab %d: only the final slab may be unbounded", i)
			}
			copied = append(copied, domain.TaxSlab{Rate: s.Rate})
			continue
		}
		if last {
			return SlabTable{}, fmt.Errorf("slab %d: final slab must be unbounded", i)
		}
		if s.UpTo.LessThanOrEqual(prev) {
			return SlabTable{}, fmt.Errorf("slab %d: upper bound %s must exceed %s", i, s.UpTo.String(), prev.String())
		}
		upTo := *s.UpTo
		prev = upTo
		copied = append(copied, domain.TaxSlab{UpTo: &upTo, Rate: s.Rate})
	}

	return SlabTable{slabs: copied}, nil
}

// MustSlabTable is NewSlabTable for tables known to be valid at compile time
func MustSlabTable(slabs []domain.TaxSlab) SlabTable {
	t, err := NewSlabTable(slabs)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of slabs
func (t SlabTable) Len() int {
	return len(t.slabs)
}

// Slabs returns a deep copy of the slabs
func (t SlabTable) Slabs() []domain.TaxSlab {
	out := make([]domain.TaxSlab, len(t.slabs))
	for i, s := range t.slabs {
		out[i] = domain.TaxSlab{Rate: s.Rate}
		if s.UpTo != nil {
			upTo := *s.UpTo
			out[i].UpTo = &upTo
		}
	}
	return out
}

// SlabTax applies the table to a taxable income by marginal accumulation.
// Income sitting exactly on a boundary is taxed entirely in the lower slab.
func SlabTax(taxable decimal.Decimal, table SlabTable) decimal.Decimal {
	tax := decimal.Zero
	if !taxable.IsPositive() {
		return tax
	}

	lower := decimal.Zero
	for _, slab := range table.slabs {
		upper := taxable
		if slab.UpTo != nil {
			upper = *slab.UpTo
		}
		if taxable.GreaterThan(lower) {
			segment := decimal.Min(taxable, upper).Sub(lower)
			if segment.IsPositive() {
				tax = tax.Add(segment.Mul(slab.Rate))
			}
		}
		lower = upper
		if taxable.LessThanOrEqual(lower) {
			break
		}
	}

	return tax
}
