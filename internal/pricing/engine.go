package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// Engine computes deterministic totals breakdowns. It has no side effects
// and performs no I/O; the pricing policy is fixed at construction.
type Engine struct {
	freeShippingThreshold decimal.Decimal
	standardShippingRate  decimal.Decimal
	taxRate               decimal.Decimal
}

// NewEngine parses the configured policy into decimals.
func NewEngine(cfg config.PricingConfig) (*Engine, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	rate, err := decimal.NewFromString(cfg.StandardShippingRate)
	if err != nil {
		return nil, fmt.Errorf("parsing standard shipping rate: %w", err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate: %w", err)
	}
	return &Engine{
		freeShippingThreshold: threshold,
		standardShippingRate:  rate,
		taxRate:               taxRate,
	}, nil
}

// Subtotal sums unit price times quantity over all items. Empty list is zero.
func (e *Engine) Subtotal(items []types.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Shipping is zero above the free-shipping threshold, zero when nothing in
// the order is physical, and zero under a free-shipping coupon. Otherwise
// the flat standard rate applies.
func (e *Engine) Shipping(items []types.LineItem, subtotal decimal.Decimal, coupon *coupons.Coupon) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(e.freeShippingThreshold) {
		return decimal.Zero
	}
	if coupon != nil && coupon.Kind == enums.CouponKindFreeShipping {
		return decimal.Zero
	}
	hasPhysical := false
	for _, item := range items {
		if item.Category == enums.ItemCategoryPhysical {
			hasPhysical = true
			break
		}
	}
	if !hasPhysical {
		return decimal.Zero
	}
	return e.standardShippingRate
}

// Tax applies the flat tax rate to the subtotal. No jurisdiction logic.
func (e *Engine) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(e.taxRate)
}

// Discount resolves the coupon against the subtotal. Fixed discounts are
// capped at the subtotal, and only the subtotal: tax and shipping are
// deliberately not part of the cap. Free-shipping coupons contribute
// nothing here; their effect flows through Shipping.
func (e *Engine) Discount(subtotal decimal.Decimal, coupon *coupons.Coupon) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}
	switch coupon.Kind {
	case enums.CouponKindPercentage:
		return subtotal.Mul(coupon.Amount)
	case enums.CouponKindFixed:
		if coupon.Amount.GreaterThan(subtotal) {
			return subtotal
		}
		return coupon.Amount
	}
	return decimal.Zero
}

// Totals composes the breakdown: total = subtotal + shipping + tax - discount.
func (e *Engine) Totals(items []types.LineItem, coupon *coupons.Coupon) types.TotalsBreakdown {
	subtotal := e.Subtotal(items)
	shipping := e.Shipping(items, subtotal, coupon)
	tax := e.Tax(subtotal)
	discount := e.Discount(subtotal, coupon)

	return types.TotalsBreakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(shipping).Add(tax).Sub(discount),
	}
}
