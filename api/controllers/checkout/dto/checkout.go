package checkoutdto

import (
	"time"

	cartdto "github.com/marketplace-zw/storefront-backend/api/controllers/cart/dto"
	"github.com/shopspring/decimal"
)

// CustomerPayload is the customer step's form body. Required-field checks
// live in the checkout service so the response can itemize what is missing;
// only format constraints are enforced here.
type CustomerPayload struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	SaveInfo   bool   `json:"save_info"`
}

// AdvanceRequest moves the session one step forward. Customer is read on the
// customer step, the payment fields on the payment step.
type AdvanceRequest struct {
	Customer      *CustomerPayload `json:"customer,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	EcoCashNumber string           `json:"ecocash_number,omitempty"`
}

// SubmitRequest places the order from the review step.
type SubmitRequest struct {
	TermsAccepted bool   `json:"terms_accepted"`
	OrderNotes    string `json:"order_notes,omitempty"`
}

// BankDetails are the transfer instructions for bank payments.
type BankDetails struct {
	Name          string `json:"name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BranchCode    string `json:"branch_code"`
}

// PaymentInstructions tell the buyer how to settle a submitted order.
type PaymentInstructions struct {
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	EcoCashNumber string          `json:"ecocash_number,omitempty"`
	Bank          *BankDetails    `json:"bank,omitempty"`
	AutoCompleted bool            `json:"auto_completed"`
}

// SessionView is the full checkout session payload.
type SessionView struct {
	Reference      string                `json:"reference"`
	Step           string                `json:"step"`
	Items          []cartdto.CartLineItem `json:"items"`
	Coupon         *cartdto.Coupon       `json:"coupon,omitempty"`
	Customer       *CustomerPayload      `json:"customer,omitempty"`
	PaymentMethod  string                `json:"payment_method,omitempty"`
	EcoCashNumber  string                `json:"ecocash_number,omitempty"`
	OrderNotes     string                `json:"order_notes,omitempty"`
	TermsAccepted  bool                  `json:"terms_accepted"`
	PaymentPending bool                  `json:"payment_pending"`
	Completed      bool                  `json:"completed"`
	Totals         cartdto.Totals        `json:"totals"`
	CreatedAt      time.Time             `json:"created_at"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
}

// SubmitResponse pairs the updated session with payment instructions.
type SubmitResponse struct {
	Session      SessionView          `json:"session"`
	Instructions *PaymentInstructions `json:"instructions,omitempty"`
}
