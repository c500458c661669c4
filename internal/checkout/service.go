package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marketplace-zw/storefront-backend/internal/cart"
	"github.com/marketplace-zw/storefront-backend/internal/notifications"
	"github.com/marketplace-zw/storefront-backend/internal/payments"
	"github.com/marketplace-zw/storefront-backend/internal/pricing"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/metrics"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// AdvanceInput carries the data for the step being left. Customer is read on
// the customer step, PaymentMethod and EcoCashNumber on the payment step.
type AdvanceInput struct {
	Customer      *types.CustomerInfo
	PaymentMethod enums.PaymentMethod
	EcoCashNumber string
}

// SubmitInput finalizes the review step.
type SubmitInput struct {
	TermsAccepted bool
	OrderNotes    string
}

type Service interface {
	// Start opens a checkout session from the checkout-entry cart snapshot.
	Start(ctx context.Context, cartID string) (*Session, error)
	Get(ctx context.Context, reference string) (*Session, error)
	Advance(ctx context.Context, reference string, input AdvanceInput) (*Session, error)
	Back(ctx context.Context, reference string) (*Session, error)
	// Submit places the order from the review step and returns the payment
	// instructions. Cash-on-delivery orders complete immediately.
	Submit(ctx context.Context, reference string, input SubmitInput) (*Session, *payments.Instructions, error)
	// ConfirmPayment settles a pending payment. Paynow consults the provider;
	// manual methods complete on the buyer's word. Confirming an already
	// completed order is a no-op.
	ConfirmPayment(ctx context.Context, reference string) (*Session, error)
	// CancelPayment abandons a pending payment and returns the session to the
	// review step. The cart is kept.
	CancelPayment(ctx context.Context, reference string) (*Session, error)
}

type service struct {
	sessions  Store
	cartStore cart.Store
	engine    *pricing.Engine
	simulator payments.Simulator
	sink      notifications.Sink
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time
}

func NewService(
	sessions Store,
	cartStore cart.Store,
	engine *pricing.Engine,
	simulator payments.Simulator,
	sink notifications.Sink,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cartStore == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine is required")
	}
	if simulator == nil {
		return nil, fmt.Errorf("payment simulator is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("notification sink is required")
	}
	return &service{
		sessions:  sessions,
		cartStore: cartStore,
		engine:    engine,
		simulator: simulator,
		sink:      sink,
		metrics:   checkoutMetrics,
		now:       time.Now,
	}, nil
}

func (s *service) Start(ctx context.Context, cartID string) (*Session, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	items, err := s.cartStore.GetCheckoutCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// No snapshot taken; fall back to the live cart.
		items, err = s.cartStore.GetCart(ctx, cartID)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to check out")
	}
	coupon, err := s.cartStore.GetAppliedCoupon(ctx, cartID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Reference: NewReference(s.now()),
		CartID:    cartID,
		Step:      enums.CheckoutStepCustomer,
		Items:     items,
		Coupon:    coupon,
		Totals:    s.engine.Totals(items, coupon),
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Get(ctx context.Context, reference string) (*Session, error) {
	return s.sessions.Get(ctx, reference)
}

func (s *service) Advance(ctx context.Context, reference string, input AdvanceInput) (*Session, error) {
	session, err := s.sessions.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, completedConflict()
	}

	switch session.Step {
	case enums.CheckoutStepCustomer:
		if err := s.applyCustomer(ctx, session, input); err != nil {
			return nil, err
		}
	case enums.CheckoutStepPayment:
		if err := s.applyPaymentSelection(session, input); err != nil {
			return nil, err
		}
		// Entering review: refresh the displayed totals from the snapshot.
		session.Totals = s.engine.Totals(session.Items, session.Coupon)
	case enums.CheckoutStepReview:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "submit the order to leave review")
	default:
		return nil, completedConflict()
	}

	session.Step = session.Step.Next()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Back(ctx context.Context, reference string) (*Session, error) {
	session, err := s.sessions.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, completedConflict()
	}
	if session.PaymentPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cancel the pending payment first")
	}
	session.Step = session.Step.Prev()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Submit(ctx context.Context, reference string, input SubmitInput) (*Session, *payments.Instructions, error) {
	session, err := s.sessions.Get(ctx, reference)
	if err != nil {
		return nil, nil, err
	}
	if session.Completed {
		return nil, nil, completedConflict()
	}
	if session.Step != enums.CheckoutStepReview {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can only be placed from review").
			WithDetails(map[string]any{"step": session.Step.String()})
	}
	if session.PaymentPending {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already in progress")
	}
	if !input.TermsAccepted {
		s.notifyValidation(ctx, session, "Please accept the terms and conditions")
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "terms must be accepted").
			WithDetails(map[string]any{"missing": []string{"terms_accepted"}})
	}

	session.TermsAccepted = true
	session.OrderNotes = strings.TrimSpace(input.OrderNotes)
	session.Totals = s.engine.Totals(session.Items, session.Coupon)

	instructions, err := s.simulator.Initiate(ctx, s.paymentRequest(session))
	if err != nil {
		return nil, nil, err
	}

	if instructions.AutoCompleted {
		if err := s.complete(ctx, session); err != nil {
			return nil, nil, err
		}
		return session, instructions, nil
	}

	session.PaymentPending = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	s.sink.Notify(ctx, notifications.Event{
		Type:     enums.NotificationEventPaymentPending,
		Severity: enums.SeverityInfo,
		Message:  fmt.Sprintf("Awaiting %s payment", session.PaymentMethod),
		OrderRef: session.Reference,
	})
	return session, instructions, nil
}

func (s *service) ConfirmPayment(ctx context.Context, reference string) (*Session, error) {
	session, err := s.sessions.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		// Completion already ran; confirming again changes nothing.
		return session, nil
	}
	if !session.PaymentPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no payment awaiting confirmation")
	}

	if session.PaymentMethod == enums.PaymentMethodPayNow {
		confirmed, err := s.simulator.CheckStatus(ctx, s.paymentRequest(session))
		if err != nil {
			return nil, err
		}
		if !confirmed {
			if s.metrics != nil {
				s.metrics.IncPaymentOutcome(session.PaymentMethod.String(), "pending")
			}
			return nil, pkgerrors.New(pkgerrors.CodePaymentNotConfirmed, "payment has not been received yet").
				WithDetails(map[string]any{"reference": session.Reference})
		}
	}

	if err := s.complete(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) CancelPayment(ctx context.Context, reference string) (*Session, error) {
	session, err := s.sessions.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, completedConflict()
	}
	if !session.PaymentPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no payment to cancel")
	}

	session.PaymentPending = false
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncPaymentOutcome(session.PaymentMethod.String(), "cancelled")
	}
	s.sink.Notify(ctx, notifications.Event{
		Type:     enums.NotificationEventPaymentCancelled,
		Severity: enums.SeverityInfo,
		Message:  "Payment cancelled. Your cart has been kept.",
		OrderRef: session.Reference,
	})
	return session, nil
}

func (s *service) applyCustomer(ctx context.Context, session *Session, input AdvanceInput) error {
	if input.Customer == nil {
		s.notifyValidation(ctx, session, "Please fill in your details")
		return pkgerrors.New(pkgerrors.CodeValidation, "customer details are required")
	}
	if missing := input.Customer.MissingFields(); len(missing) > 0 {
		s.notifyValidation(ctx, session, "Please fill in all required fields")
		return pkgerrors.New(pkgerrors.CodeValidation, "customer details incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	session.Customer = *input.Customer
	return nil
}

func (s *service) applyPaymentSelection(session *Session, input AdvanceInput) error {
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a payment method").
			WithDetails(map[string]any{"method": string(input.PaymentMethod)})
	}
	number := strings.TrimSpace(input.EcoCashNumber)
	if input.PaymentMethod == enums.PaymentMethodEcoCash && number == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "ecocash mobile number is required").
			WithDetails(map[string]any{"missing": []string{"ecocash_number"}})
	}
	session.PaymentMethod = input.PaymentMethod
	session.EcoCashNumber = number
	return nil
}

// complete finishes the order: marks the session, clears the stored cart
// state, and announces the completion. Safe to call once per session.
func (s *service) complete(ctx context.Context, session *Session) error {
	completedAt := s.now().UTC()
	session.Step = enums.CheckoutStepCompleted
	session.Completed = true
	session.CompletedAt = &completedAt
	session.PaymentPending = false

	if err := s.cartStore.ClearCheckoutState(ctx, session.CartID); err != nil {
		return err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncOrderCompleted(session.PaymentMethod.String())
		s.metrics.IncPaymentOutcome(session.PaymentMethod.String(), "confirmed")
	}
	s.sink.Notify(ctx, notifications.Event{
		Type:     enums.NotificationEventOrderCompleted,
		Severity: enums.SeveritySuccess,
		Message:  fmt.Sprintf("Order %s placed successfully", session.Reference),
		OrderRef: session.Reference,
	})
	return nil
}

func (s *service) paymentRequest(session *Session) payments.Request {
	return payments.Request{
		Method:        session.PaymentMethod,
		Amount:        session.Totals.Total,
		Reference:     session.Reference,
		Customer:      session.Customer,
		EcoCashNumber: session.EcoCashNumber,
	}
}

func (s *service) notifyValidation(ctx context.Context, session *Session, message string) {
	s.sink.Notify(ctx, notifications.Event{
		Type:     enums.NotificationEventValidationError,
		Severity: enums.SeverityError,
		Message:  message,
		OrderRef: session.Reference,
	})
}

func completedConflict() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed")
}
