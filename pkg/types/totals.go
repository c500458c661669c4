package types

import "github.com/shopspring/decimal"

// TotalsBreakdown holds the derived money figures for an order. It is never
// stored independently of the line items that produced it.
type TotalsBreakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the shipping line is zero.
func (t TotalsBreakdown) FreeShipping() bool {
	return t.Shipping.IsZero()
}
