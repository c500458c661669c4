package cart

import (
	cartdto "github.com/marketplace-zw/storefront-backend/api/controllers/cart/dto"
	cartsvc "github.com/marketplace-zw/storefront-backend/internal/cart"
	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

func newCartView(cartID string, quote *cartsvc.Quote) cartdto.CartView {
	items := make([]cartdto.CartLineItem, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, newCartLineItem(item))
	}

	return cartdto.CartView{
		CartID: cartID,
		Items:  items,
		Coupon: newCoupon(quote.Coupon),
		Totals: cartdto.Totals{
			Subtotal:     quote.Totals.Subtotal,
			Shipping:     quote.Totals.Shipping,
			Tax:          quote.Totals.Tax,
			Discount:     quote.Totals.Discount,
			Total:        quote.Totals.Total,
			FreeShipping: quote.Totals.FreeShipping(),
		},
	}
}

func newCartLineItem(item types.LineItem) cartdto.CartLineItem {
	return cartdto.CartLineItem{
		ID:              item.ID,
		ProductID:       item.ProductID,
		Title:           item.Title,
		UnitPrice:       item.UnitPrice,
		CompareAtPrice:  item.CompareAtPrice,
		Quantity:        item.Quantity,
		LineTotal:       item.LineTotal(),
		Category:        string(item.Category),
		SelectedOptions: item.SelectedOptions,
		ImageURL:        item.ImageURL,
	}
}

func newCoupon(coupon *coupons.Coupon) *cartdto.Coupon {
	if coupon == nil {
		return nil
	}
	return &cartdto.Coupon{
		Code:   coupon.Code,
		Kind:   string(coupon.Kind),
		Amount: coupon.Amount,
	}
}
