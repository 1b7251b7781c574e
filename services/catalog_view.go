package services

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey names a sortable product column.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByManufacturer SortKey = "manufacturer"
	SortByCost         SortKey = "cost"
	SortByIPI          SortKey = "ipi"
	SortByDate         SortKey = "date"
)

// SortOrder is the direction of the active sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortKey validates a column name coming from a query string.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortByName, SortByManufacturer, SortByCost, SortByIPI, SortByDate:
		return k, true
	}
	return "", false
}

// SortSpec is the single active sort.
type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

// NextSort returns the sort produced by clicking key's header: the same key
// flips the direction, any other key starts ascending.
func NextSort(current *SortSpec, key SortKey) SortSpec {
	if current != nil && current.Key == key && current.Order == SortAsc {
		return SortSpec{Key: key, Order: SortDesc}
	}
	return SortSpec{Key: key, Order: SortAsc}
}

// Indicator is the arrow appended to key's header when it is the active sort.
func (s *SortSpec) Indicator(key SortKey) string {
	if s == nil || s.Key != key {
		return ""
	}
	if s.Order == SortDesc {
		return " ▼"
	}
	return " ▲"
}

// FieldFilterSet holds one substring filter per column. Empty values match
// everything.
type FieldFilterSet struct {
	Name         string
	Manufacturer string
	Cost         string
	IPI          string
	Date         string
}

// IsEmpty reports whether no filter is active.
func (f FieldFilterSet) IsEmpty() bool {
	return f == FieldFilterSet{}
}

// Matches applies every active filter, case-insensitively, to the display
// text of p. Cost and IPI match their plain numeric text (absent IPI is N/A);
// the date matches either its ISO or its dd/mm/yyyy form.
func (f FieldFilterSet) Matches(p Product) bool {
	return containsFold(p.Name, f.Name) &&
		containsFold(p.Manufacturer, f.Manufacturer) &&
		containsFold(p.CostText(), f.Cost) &&
		containsFold(p.IPIText(), f.IPI) &&
		(containsFold(p.DateISO(), f.Date) || containsFold(FormatDateBR(p.Date), f.Date))
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterProducts returns the products matching f, preserving order.
func FilterProducts(products []Product, f FieldFilterSet) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts sorts in place. The ascending sort is stable, so ties keep
// catalog order; descending is the exact reverse of ascending.
func SortProducts(products []Product, spec SortSpec) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return compareProducts(a, b, spec.Key)
	})
	if spec.Order == SortDesc {
		slices.Reverse(products)
	}
}

func compareProducts(a, b Product, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByManufacturer:
		return strings.Compare(a.Manufacturer, b.Manufacturer)
	case SortByCost:
		return a.Cost.Cmp(b.Cost)
	case SortByIPI:
		return compareIPI(a.IPI, b.IPI)
	case SortByDate:
		return a.Date.Compare(b.Date)
	}
	return 0
}

// compareIPI orders an absent IPI below every number.
func compareIPI(a, b decimal.NullDecimal) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	return a.Decimal.Cmp(b.Decimal)
}
