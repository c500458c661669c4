package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/internal/notifications"
	"github.com/marketplace-zw/storefront-backend/internal/pricing"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/metrics"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// AddItemInput describes a product variant being placed in the cart. Lines
// carrying the same product and option selection merge instead of
// duplicating.
type AddItemInput struct {
	ProductID       string
	Title           string
	UnitPrice       decimal.Decimal
	CompareAtPrice  *decimal.Decimal
	Quantity        int
	Category        enums.ItemCategory
	SelectedOptions map[string]string
	ImageURL        string
}

// Quote is the priced view of a cart: the lines, the coupon in effect, and
// the totals breakdown.
type Quote struct {
	Items  []types.LineItem      `json:"items"`
	Coupon *coupons.Coupon       `json:"coupon,omitempty"`
	Totals types.TotalsBreakdown `json:"totals"`
}

type Service interface {
	Get(ctx context.Context, cartID string) ([]types.LineItem, error)
	AddItem(ctx context.Context, cartID string, input AddItemInput) ([]types.LineItem, error)
	SetQuantity(ctx context.Context, cartID string, lineID uuid.UUID, quantity int) ([]types.LineItem, error)
	RemoveItem(ctx context.Context, cartID string, lineID uuid.UUID) ([]types.LineItem, error)
	ApplyCoupon(ctx context.Context, cartID string, code string) (*coupons.Coupon, error)
	RemoveCoupon(ctx context.Context, cartID string) error
	Quote(ctx context.Context, cartID string) (*Quote, error)
	// BeginCheckout snapshots the live cart for checkout entry and returns
	// the snapshot. An empty cart cannot enter checkout.
	BeginCheckout(ctx context.Context, cartID string) ([]types.LineItem, error)
}

type service struct {
	store    Store
	registry coupons.Registry
	engine   *pricing.Engine
	sink     notifications.Sink
	metrics  *metrics.CheckoutMetrics
}

func NewService(
	store Store,
	registry coupons.Registry,
	engine *pricing.Engine,
	sink notifications.Sink,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("coupon registry is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("notification sink is required")
	}
	return &service{
		store:    store,
		registry: registry,
		engine:   engine,
		sink:     sink,
		metrics:  checkoutMetrics,
	}, nil
}

func (s *service) Get(ctx context.Context, cartID string) ([]types.LineItem, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	return s.store.GetCart(ctx, cartID)
}

func (s *service) AddItem(ctx context.Context, cartID string, input AddItemInput) ([]types.LineItem, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	if err := validateAddItem(input); err != nil {
		return nil, err
	}

	items, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line := types.LineItem{
		ID:              uuid.New(),
		ProductID:       input.ProductID,
		Title:           input.Title,
		UnitPrice:       input.UnitPrice,
		CompareAtPrice:  input.CompareAtPrice,
		Quantity:        types.ClampQuantity(input.Quantity),
		Category:        input.Category,
		SelectedOptions: input.SelectedOptions,
		ImageURL:        input.ImageURL,
	}

	merged := false
	for i := range items {
		if items[i].SameVariant(line) {
			items[i].Quantity = types.ClampQuantity(items[i].Quantity + line.Quantity)
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, line)
	}

	if err := s.store.SaveCart(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) SetQuantity(ctx context.Context, cartID string, lineID uuid.UUID, quantity int) ([]types.LineItem, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	items, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	idx := indexOfLine(items, lineID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
			WithDetails(map[string]any{"line_id": lineID.String()})
	}
	items[idx].Quantity = types.ClampQuantity(quantity)
	if err := s.store.SaveCart(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) RemoveItem(ctx context.Context, cartID string, lineID uuid.UUID) ([]types.LineItem, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	items, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	idx := indexOfLine(items, lineID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
			WithDetails(map[string]any{"line_id": lineID.String()})
	}
	items = append(items[:idx], items[idx+1:]...)
	if err := s.store.SaveCart(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) ApplyCoupon(ctx context.Context, cartID string, code string) (*coupons.Coupon, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	coupon, err := s.registry.Lookup(code)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncCouponApplied("rejected")
		}
		s.sink.Notify(ctx, notifications.Event{
			Type:     enums.NotificationEventCouponInvalid,
			Severity: enums.SeverityError,
			Message:  "Invalid coupon code",
		})
		return nil, err
	}
	if err := s.store.SaveAppliedCoupon(ctx, cartID, coupon); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncCouponApplied("accepted")
	}
	s.sink.Notify(ctx, notifications.Event{
		Type:     enums.NotificationEventCouponApplied,
		Severity: enums.SeveritySuccess,
		Message:  fmt.Sprintf("Coupon %s applied", coupon.Code),
	})
	return coupon, nil
}

func (s *service) RemoveCoupon(ctx context.Context, cartID string) error {
	if err := requireCartID(cartID); err != nil {
		return err
	}
	return s.store.SaveAppliedCoupon(ctx, cartID, nil)
}

func (s *service) Quote(ctx context.Context, cartID string) (*Quote, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	items, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.store.GetAppliedCoupon(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Items:  items,
		Coupon: coupon,
		Totals: s.engine.Totals(items, coupon),
	}, nil
}

func (s *service) BeginCheckout(ctx context.Context, cartID string) ([]types.LineItem, error) {
	if err := requireCartID(cartID); err != nil {
		return nil, err
	}
	items, err := s.store.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := s.store.SaveCheckoutCart(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func requireCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	return nil
}

func validateAddItem(input AddItemInput) error {
	missing := make([]string, 0, 2)
	if strings.TrimSpace(input.ProductID) == "" {
		missing = append(missing, "product_id")
	}
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart item").
			WithDetails(map[string]any{"missing": missing})
	}
	if input.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown item category").
			WithDetails(map[string]any{"category": string(input.Category)})
	}
	return nil
}

func indexOfLine(items []types.LineItem, lineID uuid.UUID) int {
	for i := range items {
		if items[i].ID == lineID {
			return i
		}
	}
	return -1
}
