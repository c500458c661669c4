package checkout

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// Session is the persisted state of one checkout flow. It snapshots the
// cart at entry so later cart edits cannot change an order mid-flight.
type Session struct {
	Reference      string              `json:"reference"`
	CartID         string              `json:"cart_id"`
	Step           enums.CheckoutStep  `json:"step"`
	Items          []types.LineItem    `json:"items"`
	Coupon         *coupons.Coupon     `json:"coupon,omitempty"`
	Customer       types.CustomerInfo  `json:"customer"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method,omitempty"`
	EcoCashNumber  string              `json:"ecocash_number,omitempty"`
	OrderNotes     string              `json:"order_notes,omitempty"`
	TermsAccepted  bool                `json:"terms_accepted"`
	// PaymentPending is set between order submission and payment
	// confirmation. A confirmation arriving while this is false is stale
	// (the payment was cancelled) and must be rejected.
	PaymentPending bool                  `json:"payment_pending"`
	Completed      bool                  `json:"completed"`
	Totals         types.TotalsBreakdown `json:"totals"`
	CreatedAt      time.Time             `json:"created_at"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
}

// NewReference builds an order reference of the form MP-<unix-millis>-<n>.
// References are display identifiers, not security tokens.
func NewReference(now time.Time) string {
	return fmt.Sprintf("MP-%d-%d", now.UnixMilli(), rand.Intn(1000))
}
