package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/pkg/enums"
)

const (
	// MinQuantity and MaxQuantity bound a line item's quantity; mutations
	// clamp into this range rather than erroring.
	MinQuantity = 1
	MaxQuantity = 10
)

// LineItem is one product entry in a cart or order.
type LineItem struct {
	ID              uuid.UUID          `json:"id"`
	ProductID       string             `json:"product_id"`
	Title           string             `json:"title"`
	UnitPrice       decimal.Decimal    `json:"unit_price"`
	CompareAtPrice  *decimal.Decimal   `json:"compare_at_price,omitempty"`
	Quantity        int                `json:"quantity"`
	Category        enums.ItemCategory `json:"category"`
	SelectedOptions map[string]string  `json:"selected_options,omitempty"`
	ImageURL        string             `json:"image_url,omitempty"`
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ClampQuantity bounds qty into [MinQuantity, MaxQuantity].
func ClampQuantity(qty int) int {
	if qty < MinQuantity {
		return MinQuantity
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}

// SameVariant reports whether two items reference the same product with the
// same selected options, in which case cart adds merge quantities.
func (li LineItem) SameVariant(other LineItem) bool {
	if li.ProductID != other.ProductID {
		return false
	}
	if len(li.SelectedOptions) != len(other.SelectedOptions) {
		return false
	}
	for name, value := range li.SelectedOptions {
		if other.SelectedOptions[name] != value {
			return false
		}
	}
	return true
}
