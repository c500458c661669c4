package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/marketplace-zw/storefront-backend/pkg/logger"
)

const cartIDHeader = "X-Cart-Id"

type contextKey string

const ctxCartID contextKey = "cart_id"

// CartIDFromContext returns the cart identity assigned by the CartID
// middleware, or "" outside of it.
func CartIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartID).(string); ok {
		return v
	}
	return ""
}

// WithCartID injects the cart identifier into the context.
func WithCartID(ctx context.Context, cartID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartID, cartID)
}

// CartID assigns anonymous cart identity. Browsers carry the id in the
// X-Cart-Id header; a request without one gets a fresh id, echoed back so
// the client can persist it.
func CartID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID := r.Header.Get(cartIDHeader)
			if cartID == "" {
				cartID = uuid.NewString()
			}

			w.Header().Set(cartIDHeader, cartID)

			ctx := WithCartID(r.Context(), cartID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, cartID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
