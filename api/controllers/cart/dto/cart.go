package cartdto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the request body for placing a product in the cart.
type AddItemRequest struct {
	ProductID       string            `json:"product_id" validate:"required"`
	Title           string            `json:"title" validate:"required"`
	UnitPrice       decimal.Decimal   `json:"unit_price" validate:"required"`
	CompareAtPrice  *decimal.Decimal  `json:"compare_at_price,omitempty"`
	Quantity        int               `json:"quantity"`
	Category        string            `json:"category" validate:"required"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
	ImageURL        string            `json:"image_url,omitempty"`
}

// UpdateQuantityRequest changes a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// ApplyCouponRequest applies a coupon code to the cart.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CartLineItem is one cart line in responses.
type CartLineItem struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       string            `json:"product_id"`
	Title           string            `json:"title"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	CompareAtPrice  *decimal.Decimal  `json:"compare_at_price,omitempty"`
	Quantity        int               `json:"quantity"`
	LineTotal       decimal.Decimal   `json:"line_total"`
	Category        string            `json:"category"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
	ImageURL        string            `json:"image_url,omitempty"`
}

// Coupon describes the coupon in effect.
type Coupon struct {
	Code   string          `json:"code"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Totals is the priced breakdown of the cart.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"free_shipping"`
}

// CartView is the full cart payload: lines, coupon, and totals.
type CartView struct {
	CartID string         `json:"cart_id"`
	Items  []CartLineItem `json:"items"`
	Coupon *Coupon        `json:"coupon,omitempty"`
	Totals Totals         `json:"totals"`
}

// CheckoutEntry is returned when a cart proceeds to checkout.
type CheckoutEntry struct {
	Reference string `json:"reference"`
	Step      string `json:"step"`
}
