package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/redis"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// Store abstracts the persisted storefront state: the live cart, the
// checkout-entry snapshot, and the applied coupon, each a JSON blob per
// cart id. Absent keys read as empty, never as errors.
type Store interface {
	GetCart(ctx context.Context, cartID string) ([]types.LineItem, error)
	SaveCart(ctx context.Context, cartID string, items []types.LineItem) error
	GetCheckoutCart(ctx context.Context, cartID string) ([]types.LineItem, error)
	SaveCheckoutCart(ctx context.Context, cartID string, items []types.LineItem) error
	GetAppliedCoupon(ctx context.Context, cartID string) (*coupons.Coupon, error)
	SaveAppliedCoupon(ctx context.Context, cartID string, coupon *coupons.Coupon) error
	// ClearCheckoutState removes cart, checkout snapshot, and coupon in one
	// shot. Clearing already-absent keys is a no-op.
	ClearCheckoutState(ctx context.Context, cartID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore backs the storefront state with the shared redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) GetCart(ctx context.Context, cartID string) ([]types.LineItem, error) {
	return s.readItems(ctx, s.client.CartKey(cartID))
}

func (s *redisStore) SaveCart(ctx context.Context, cartID string, items []types.LineItem) error {
	return s.writeJSON(ctx, s.client.CartKey(cartID), items)
}

func (s *redisStore) GetCheckoutCart(ctx context.Context, cartID string) ([]types.LineItem, error) {
	return s.readItems(ctx, s.client.CheckoutCartKey(cartID))
}

func (s *redisStore) SaveCheckoutCart(ctx context.Context, cartID string, items []types.LineItem) error {
	return s.writeJSON(ctx, s.client.CheckoutCartKey(cartID), items)
}

func (s *redisStore) GetAppliedCoupon(ctx context.Context, cartID string) (*coupons.Coupon, error) {
	raw, err := s.client.Get(ctx, s.client.AppliedCouponKey(cartID))
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read applied coupon")
	}
	var coupon coupons.Coupon
	if err := json.Unmarshal([]byte(raw), &coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode applied coupon")
	}
	return &coupon, nil
}

func (s *redisStore) SaveAppliedCoupon(ctx context.Context, cartID string, coupon *coupons.Coupon) error {
	if coupon == nil {
		if err := s.client.Del(ctx, s.client.AppliedCouponKey(cartID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear applied coupon")
		}
		return nil
	}
	return s.writeJSON(ctx, s.client.AppliedCouponKey(cartID), coupon)
}

func (s *redisStore) ClearCheckoutState(ctx context.Context, cartID string) error {
	err := s.client.Del(ctx,
		s.client.CartKey(cartID),
		s.client.CheckoutCartKey(cartID),
		s.client.AppliedCouponKey(cartID),
	)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout state")
	}
	return nil
}

func (s *redisStore) readItems(ctx context.Context, key string) ([]types.LineItem, error) {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart items")
	}
	var items []types.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart items")
	}
	return items, nil
}

func (s *redisStore) writeJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode storefront state")
	}
	if err := s.client.Set(ctx, key, string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write storefront state")
	}
	return nil
}
