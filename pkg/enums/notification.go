package enums

// NotificationEvent names the semantic events the core emits to the
// notification sink. Formatting user-visible text is the sink's job.
type NotificationEvent string

const (
	NotificationEventValidationError  NotificationEvent = "validation-error"
	NotificationEventCouponInvalid    NotificationEvent = "coupon-invalid"
	NotificationEventCouponApplied    NotificationEvent = "coupon-applied"
	NotificationEventOrderCompleted   NotificationEvent = "order-completed"
	NotificationEventPaymentPending   NotificationEvent = "payment-pending"
	NotificationEventPaymentCancelled NotificationEvent = "payment-cancelled"
)

// Severity grades notification events for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	return string(s)
}
