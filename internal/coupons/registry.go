package coupons

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
)

// Coupon is a named discount rule. Immutable once defined in the registry.
type Coupon struct {
	Code   string           `json:"code"`
	Kind   enums.CouponKind `json:"kind"`
	Amount decimal.Decimal  `json:"amount"`
}

// Registry resolves coupon codes to their discount rules.
type Registry interface {
	Lookup(code string) (*Coupon, error)
}

type registry struct {
	byCode map[string]Coupon
}

// NewRegistry builds the fixed storefront coupon set.
func NewRegistry() Registry {
	seeded := []Coupon{
		{Code: "WELCOME10", Kind: enums.CouponKindPercentage, Amount: decimal.RequireFromString("0.1")},
		{Code: "SAVE20", Kind: enums.CouponKindPercentage, Amount: decimal.RequireFromString("0.2")},
		{Code: "FREESHIP", Kind: enums.CouponKindFreeShipping, Amount: decimal.Zero},
		{Code: "FIXED10", Kind: enums.CouponKindFixed, Amount: decimal.NewFromInt(10)},
	}
	byCode := make(map[string]Coupon, len(seeded))
	for _, coupon := range seeded {
		byCode[coupon.Code] = coupon
	}
	return &registry{byCode: byCode}
}

// Lookup resolves a code after normalization. Unknown codes return an
// INVALID_COUPON error and never mutate anything.
func (r *registry) Lookup(code string) (*Coupon, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCoupon, "coupon code is required")
	}
	coupon, ok := r.byCode[normalized]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCoupon, "unknown coupon code").WithDetails(map[string]any{
			"code": normalized,
		})
	}
	result := coupon
	return &result, nil
}

// Normalize trims whitespace and upper-cases a coupon code for matching.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
