// Package pricing computes per-line and per-sale monetary totals.
// Everything here is pure: no I/O, no clock, no persistence.
package pricing

import (
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
)

// TaxConfig is the store-wide tax setting consumed on every recompute
type TaxConfig struct {
	Enabled bool
	Rate    float64 // percent, e.g. 16 for 16% VAT
}

// Totals aggregates a whole cart or sale.
//
// The sale-level tax is recomputed from the post-all-discounts taxable
// base, NOT by summing the per-line tax fields. The two tiers can and do
// diverge once a sale-level discount is applied; both are kept.
type Totals struct {
	Subtotal           float64 `json:"subtotal"`
	ItemDiscounts      float64 `json:"item_discounts"`
	SaleDiscountAmount float64 `json:"sale_discount_amount"`
	TotalDiscount      float64 `json:"total_discount"`
	TaxableAmount      float64 `json:"taxable_amount"`
	TaxAmount          float64 `json:"tax_amount"`
	Total              float64 `json:"total"`
}

// RecomputeLine derives DiscountAmount, TaxAmount and Total from the
// line's Price, Quantity and DiscountPercent. Tax is always computed on
// the post-line-discount amount.
func RecomputeLine(item *entity.SaleItem, tax TaxConfig) {
	taxBase := lineTaxBase(item)
	item.DiscountAmount = item.Price * (item.DiscountPercent / 100) * float64(item.Quantity)
	item.TaxAmount = lineTax(taxBase, tax)
	item.Total = taxBase + item.TaxAmount
}

// RecomputeLineTax refreshes TaxAmount and Total only, leaving the
// stored DiscountAmount untouched. Used when a sale-type switch
// re-prices a line: the absolute discount is preserved as-is even when
// it no longer matches the new price.
func RecomputeLineTax(item *entity.SaleItem, tax TaxConfig) {
	taxBase := lineTaxBase(item)
	item.TaxAmount = lineTax(taxBase, tax)
	item.Total = taxBase + item.TaxAmount
}

// ComputeTotals derives the cart-wide totals from its lines and an
// optional sale-level discount.
func ComputeTotals(items []entity.SaleItem, saleDiscount *entity.SaleDiscount, tax TaxConfig) Totals {
	var t Totals
	for i := range items {
		t.Subtotal += items[i].Price * float64(items[i].Quantity)
		t.ItemDiscounts += items[i].DiscountAmount
	}
	if saleDiscount != nil {
		switch saleDiscount.Type {
		case enum.DiscountTypePercentage:
			t.SaleDiscountAmount = (t.Subtotal - t.ItemDiscounts) * saleDiscount.Value / 100
		case enum.DiscountTypeFixed:
			t.SaleDiscountAmount = saleDiscount.Value
		}
	}
	t.TotalDiscount = t.ItemDiscounts + t.SaleDiscountAmount
	t.TaxableAmount = t.Subtotal - t.TotalDiscount
	if tax.Enabled {
		t.TaxAmount = t.TaxableAmount * tax.Rate / 100
	}
	t.Total = t.TaxableAmount + t.TaxAmount
	return t
}

func lineTaxBase(item *entity.SaleItem) float64 {
	return item.Price * (1 - item.DiscountPercent/100) * float64(item.Quantity)
}

func lineTax(taxBase float64, tax TaxConfig) float64 {
	if !tax.Enabled {
		return 0
	}
	return taxBase * tax.Rate / 100
}
