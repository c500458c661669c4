package checkout

import (
	checkoutdto "github.com/marketplace-zw/storefront-backend/api/controllers/checkout/dto"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

func toAdvanceInput(payload checkoutdto.AdvanceRequest) checkoutsvc.AdvanceInput {
	input := checkoutsvc.AdvanceInput{
		PaymentMethod: enums.PaymentMethod(payload.PaymentMethod),
		EcoCashNumber: payload.EcoCashNumber,
	}
	if payload.Customer != nil {
		input.Customer = &types.CustomerInfo{
			FirstName:  payload.Customer.FirstName,
			LastName:   payload.Customer.LastName,
			Email:      payload.Customer.Email,
			Phone:      payload.Customer.Phone,
			Address:    payload.Customer.Address,
			City:       payload.Customer.City,
			PostalCode: payload.Customer.PostalCode,
			Country:    payload.Customer.Country,
			SaveInfo:   payload.Customer.SaveInfo,
		}
	}
	return input
}

func toSubmitInput(payload checkoutdto.SubmitRequest) checkoutsvc.SubmitInput {
	return checkoutsvc.SubmitInput{
		TermsAccepted: payload.TermsAccepted,
		OrderNotes:    payload.OrderNotes,
	}
}
