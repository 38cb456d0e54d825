// Package catalog resolves catalog items and their unit prices.
package catalog

import (
	"sort"
	"strings"

	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/shopspring/decimal"
)

// Static is an immutable in-memory snapshot of the catalog. It satisfies the
// lookup contract consumed by the invoice builder and the totals engine.
type Static struct {
	items []models.Item
	byID  map[string]int
}

// NewStatic builds a snapshot ordered by Position (ties keep input order).
func NewStatic(items []models.Item) *Static {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	byID := make(map[string]int, len(sorted))
	for i, it := range sorted {
		byID[it.ID] = i
	}
	return &Static{items: sorted, byID: byID}
}

// ResolvePrice returns the unit price of an item.
func (s *Static) ResolvePrice(itemID string) (decimal.Decimal, bool) {
	it, ok := s.Item(itemID)
	if !ok {
		return decimal.Zero, false
	}
	return it.Amount, true
}

// Item returns the item with the given id.
func (s *Static) Item(itemID string) (models.Item, bool) {
	i, ok := s.byID[itemID]
	if !ok {
		return models.Item{}, false
	}
	return s.items[i], true
}

// IDs returns item ids in catalog order.
func (s *Static) IDs() []string {
	ids := make([]string, len(s.items))
	for i, it := range s.items {
		ids[i] = it.ID
	}
	return ids
}

// Items returns a copy of the catalog in order.
func (s *Static) Items() []models.Item {
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of catalog items.
func (s *Static) Len() int { return len(s.items) }

// Search returns items whose name or description contains term, ignoring
// case. An empty term matches everything.
func (s *Static) Search(term string) []models.Item {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.Items()
	}
	var out []models.Item
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), term) || strings.Contains(strings.ToLower(it.Description), term) {
			out = append(out, it)
		}
	}
	return out
}
