package cart

import (
	cartdto "github.com/marketplace-zw/storefront-backend/api/controllers/cart/dto"
	cartsvc "github.com/marketplace-zw/storefront-backend/internal/cart"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
)

func toAddItemInput(payload cartdto.AddItemRequest) cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID:       payload.ProductID,
		Title:           payload.Title,
		UnitPrice:       payload.UnitPrice,
		CompareAtPrice:  payload.CompareAtPrice,
		Quantity:        payload.Quantity,
		Category:        enums.ItemCategory(payload.Category),
		SelectedOptions: payload.SelectedOptions,
		ImageURL:        payload.ImageURL,
	}
}
