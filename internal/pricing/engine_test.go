package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(config.PricingConfig{
		FreeShippingThreshold: "50",
		StandardShippingRate:  "9.99",
		TaxRate:               "0.08",
	})
	if err != nil {
		t.Fatalf("unexpected error building engine: %v", err)
	}
	return engine
}

func item(price string, qty int, category enums.ItemCategory) types.LineItem {
	return types.LineItem{
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Category:  category,
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	if got := engine.Subtotal(nil); !got.IsZero() {
		t.Fatalf("empty cart subtotal should be zero, got %s", got)
	}

	items := []types.LineItem{
		item("10", 2, enums.ItemCategoryDigital),
		item("5", 1, enums.ItemCategoryPhysical),
	}
	if got := engine.Subtotal(items); !got.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected subtotal 25, got %s", got)
	}
}

func TestShippingFreeAboveThreshold(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	items := []types.LineItem{item("60", 1, enums.ItemCategoryPhysical)}
	subtotal := engine.Subtotal(items)

	if got := engine.Shipping(items, subtotal, nil); !got.IsZero() {
		t.Fatalf("expected free shipping above threshold, got %s", got)
	}
}

func TestShippingPhysicalBelowThreshold(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	items := []types.LineItem{item("40", 1, enums.ItemCategoryPhysical)}
	subtotal := engine.Subtotal(items)

	if got := engine.Shipping(items, subtotal, nil); !got.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected standard rate for physical goods, got %s", got)
	}
}

func TestShippingDigitalOnly(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	items := []types.LineItem{
		item("20", 1, enums.ItemCategoryDigital),
		item("15", 1, enums.ItemCategoryService),
	}
	subtotal := engine.Subtotal(items)

	if got := engine.Shipping(items, subtotal, nil); !got.IsZero() {
		t.Fatalf("digital-only orders never ship, got %s", got)
	}
}

func TestShippingFreeShipCoupon(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	items := []types.LineItem{item("40", 1, enums.ItemCategoryPhysical)}
	subtotal := engine.Subtotal(items)
	coupon := &coupons.Coupon{Code: "FREESHIP", Kind: enums.CouponKindFreeShipping}

	if got := engine.Shipping(items, subtotal, coupon); !got.IsZero() {
		t.Fatalf("free-shipping coupon should zero the rate, got %s", got)
	}
}

func TestTax(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	if got := engine.Tax(decimal.NewFromInt(100)); !got.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected tax 8 on subtotal 100, got %s", got)
	}
}

func TestDiscount(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	percentage := &coupons.Coupon{Kind: enums.CouponKindPercentage, Amount: decimal.RequireFromString("0.2")}
	fixed := &coupons.Coupon{Kind: enums.CouponKindFixed, Amount: decimal.NewFromInt(10)}
	freeShip := &coupons.Coupon{Kind: enums.CouponKindFreeShipping}

	tests := []struct {
		name     string
		subtotal decimal.Decimal
		coupon   *coupons.Coupon
		want     decimal.Decimal
	}{
		{"no coupon", decimal.NewFromInt(100), nil, decimal.Zero},
		{"percentage", decimal.NewFromInt(100), percentage, decimal.NewFromInt(20)},
		{"fixed under subtotal", decimal.NewFromInt(100), fixed, decimal.NewFromInt(10)},
		{"fixed capped at subtotal", decimal.NewFromInt(5), fixed, decimal.NewFromInt(5)},
		{"free shipping contributes no discount", decimal.NewFromInt(100), freeShip, decimal.Zero},
	}

	for _, tt := range tests {
		if got := engine.Discount(tt.subtotal, tt.coupon); !got.Equal(tt.want) {
			t.Fatalf("%s: expected %s got %s", tt.name, tt.want, got)
		}
	}
}

func TestTotalsComposition(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	items := []types.LineItem{item("40", 1, enums.ItemCategoryPhysical)}
	fixed := &coupons.Coupon{Kind: enums.CouponKindFixed, Amount: decimal.NewFromInt(10)}

	totals := engine.Totals(items, fixed)

	if !totals.Subtotal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected subtotal %s", totals.Subtotal)
	}
	if !totals.Shipping.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("unexpected shipping %s", totals.Shipping)
	}
	if !totals.Tax.Equal(decimal.RequireFromString("3.2")) {
		t.Fatalf("unexpected tax %s", totals.Tax)
	}
	if !totals.Discount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected discount %s", totals.Discount)
	}

	want := totals.Subtotal.Add(totals.Shipping).Add(totals.Tax).Sub(totals.Discount)
	if !totals.Total.Equal(want) {
		t.Fatalf("total invariant broken: %s != %s", totals.Total, want)
	}
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(config.PricingConfig{
		FreeShippingThreshold: "fifty",
		StandardShippingRate:  "9.99",
		TaxRate:               "0.08",
	})
	if err == nil {
		t.Fatal("expected error for unparseable threshold")
	}
}
