// Package totals computes invoice subtotal, tax and total from line entries.
package totals

import (
	"github.com/diewo77/invoice-desk/internal/models"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied on top of the subtotal (10%).
var TaxRate = decimal.New(1, -1)

// PriceLookup resolves a catalog item id to its unit price.
type PriceLookup interface {
	ResolvePrice(itemID string) (decimal.Decimal, bool)
}

// Totals holds the figures derived from a draft's lines. Values are exact;
// use Rounded for display or capture on a finalized invoice.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Compute derives totals from lines. Lines whose item cannot be resolved
// contribute zero instead of failing.
func Compute(lines []models.LineEntry, prices PriceLookup) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(Line(l, prices))
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		TaxRate:  TaxRate,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Line returns price × quantity for a single entry, zero when unresolved.
func Line(l models.LineEntry, prices PriceLookup) decimal.Decimal {
	if prices == nil {
		return decimal.Zero
	}
	price, ok := prices.ResolvePrice(l.CatalogItemID)
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Rounded returns the totals rounded half away from zero to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: Cents(t.Subtotal),
		TaxRate:  t.TaxRate,
		Tax:      Cents(t.Tax),
		Total:    Cents(t.Total),
	}
}

// Cents rounds an amount to two fractional digits.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
