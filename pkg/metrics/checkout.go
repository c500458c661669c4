package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records counters for the checkout flow.
type CheckoutMetrics struct {
	ordersCompleted *prometheus.CounterVec
	paymentOutcomes *prometheus.CounterVec
	couponsApplied  *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCompleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Orders that reached the completed step, by payment method.",
	}, []string{"method"})
	paymentOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_confirmations_total",
		Help: "Simulated payment confirmation outcomes, by method and result.",
	}, []string{"method", "result"})
	couponsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupons_applied_total",
		Help: "Coupon application attempts, by result.",
	}, []string{"result"})
	reg.MustRegister(ordersCompleted, paymentOutcomes, couponsApplied)
	return &CheckoutMetrics{
		ordersCompleted: ordersCompleted,
		paymentOutcomes: paymentOutcomes,
		couponsApplied:  couponsApplied,
	}
}

// IncOrderCompleted increments the completed-order counter for the method.
func (c *CheckoutMetrics) IncOrderCompleted(method string) {
	if c == nil || c.ordersCompleted == nil {
		return
	}
	c.ordersCompleted.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncPaymentOutcome increments the confirmation counter for method/result.
func (c *CheckoutMetrics) IncPaymentOutcome(method, result string) {
	if c == nil || c.paymentOutcomes == nil {
		return
	}
	c.paymentOutcomes.WithLabelValues(normalizeLabel(method), normalizeLabel(result)).Inc()
}

// IncCouponApplied increments the coupon counter for the result.
func (c *CheckoutMetrics) IncCouponApplied(result string) {
	if c == nil || c.couponsApplied == nil {
		return
	}
	c.couponsApplied.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
