package enums

import "fmt"

// CheckoutStep tracks progression through the multi-step checkout flow.
type CheckoutStep int

const (
	CheckoutStepCustomer CheckoutStep = iota + 1
	CheckoutStepPayment
	CheckoutStepReview
	CheckoutStepCompleted
)

var checkoutStepNames = map[CheckoutStep]string{
	CheckoutStepCustomer:  "customer",
	CheckoutStepPayment:   "payment",
	CheckoutStepReview:    "review",
	CheckoutStepCompleted: "completed",
}

// String implements fmt.Stringer.
func (s CheckoutStep) String() string {
	if name, ok := checkoutStepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// IsValid reports whether the value is a known CheckoutStep.
func (s CheckoutStep) IsValid() bool {
	_, ok := checkoutStepNames[s]
	return ok
}

// Next returns the step following s. Completed has no successor.
func (s CheckoutStep) Next() CheckoutStep {
	if s >= CheckoutStepCompleted {
		return CheckoutStepCompleted
	}
	return s + 1
}

// Prev returns the step before s, floored at the customer step.
func (s CheckoutStep) Prev() CheckoutStep {
	if s <= CheckoutStepCustomer {
		return CheckoutStepCustomer
	}
	return s - 1
}
