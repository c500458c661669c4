package checkout

import (
	cartdto "github.com/marketplace-zw/storefront-backend/api/controllers/cart/dto"
	checkoutdto "github.com/marketplace-zw/storefront-backend/api/controllers/checkout/dto"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	"github.com/marketplace-zw/storefront-backend/internal/payments"
)

func newSessionView(session *checkoutsvc.Session) checkoutdto.SessionView {
	items := make([]cartdto.CartLineItem, 0, len(session.Items))
	for _, item := range session.Items {
		items = append(items, cartdto.CartLineItem{
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
		})
	}

	view := checkoutdto.SessionView{
		Reference:      session.Reference,
		Step:           session.Step.String(),
		Items:          items,
		PaymentMethod:  string(session.PaymentMethod),
		EcoCashNumber:  session.EcoCashNumber,
		OrderNotes:     session.OrderNotes,
		TermsAccepted:  session.TermsAccepted,
		PaymentPending: session.PaymentPending,
		Completed:      session.Completed,
		Totals: cartdto.Totals{
			Subtotal:     session.Totals.Subtotal,
			Shipping:     session.Totals.Shipping,
			Tax:          session.Totals.Tax,
			Discount:     session.Totals.Discount,
			Total:        session.Totals.Total,
			FreeShipping: session.Totals.FreeShipping(),
		},
		CreatedAt:   session.CreatedAt,
		CompletedAt: session.CompletedAt,
	}

	if session.Coupon != nil {
		view.Coupon = &cartdto.Coupon{
			Code:   session.Coupon.Code,
			Kind:   string(session.Coupon.Kind),
			Amount: session.Coupon.Amount,
		}
	}

	if session.Customer.FirstName != "" || session.Customer.Email != "" {
		view.Customer = &checkoutdto.CustomerPayload{
			FirstName:  session.Customer.FirstName,
			LastName:   session.Customer.LastName,
			Email:      session.Customer.Email,
			Phone:      session.Customer.Phone,
			Address:    session.Customer.Address,
			City:       session.Customer.City,
			PostalCode: session.Customer.PostalCode,
			Country:    session.Customer.Country,
			SaveInfo:   session.Customer.SaveInfo,
		}
	}

	return view
}

func newInstructions(instructions *payments.Instructions) *checkoutdto.PaymentInstructions {
	if instructions == nil {
		return nil
	}
	view := &checkoutdto.PaymentInstructions{
		Method:        string(instructions.Method),
		Amount:        instructions.Amount,
		Reference:     instructions.Reference,
		EcoCashNumber: instructions.EcoCashNumber,
		AutoCompleted: instructions.AutoCompleted,
	}
	if instructions.Bank != nil {
		view.Bank = &checkoutdto.BankDetails{
			Name:          instructions.Bank.Name,
			AccountName:   instructions.Bank.AccountName,
			AccountNumber: instructions.Bank.AccountNumber,
			BranchCode:    instructions.Bank.BranchCode,
		}
	}
	return view
}
