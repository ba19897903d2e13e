package pantry

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/quantity"
)

// Stock is the availability level shown next to a pantry item.
type Stock string

const (
	StockOut Stock = "esaurito"
	StockLow Stock = "quasi"
	StockOK  Stock = "ok"
)

// ParseStock accepts the stock filter values; empty means no filter.
func ParseStock(s string) (Stock, bool) {
	switch Stock(s) {
	case "", StockOut, StockLow, StockOK:
		return Stock(s), true
	}
	return "", false
}

// StatusOf classifies a quantity string: nothing left, two or fewer, or ok.
// A quantity without a leading number, such as "q.b.", counts as nothing left.
func StatusOf(qty string) Stock {
	v := quantity.Number(qty)
	switch {
	case v <= 0:
		return StockOut
	case v <= 2:
		return StockLow
	default:
		return StockOK
	}
}

// Filter keeps items matching category and stock (empty matches all) and
// sorts them by numeric quantity, lowest first, then by name.
func Filter(items []model.PantryItem, category model.Category, stock Stock) []model.PantryItem {
	out := make([]model.PantryItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if stock != "" && StatusOf(it.Quantity) != stock {
			continue
		}
		out = append(out, it)
	}
	slices.SortStableFunc(out, func(a, b model.PantryItem) int {
		if c := cmp.Compare(quantity.Number(a.Quantity), quantity.Number(b.Quantity)); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}
