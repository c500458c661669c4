package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marketplace-zw/storefront-backend/api/controllers"
	cartcontrollers "github.com/marketplace-zw/storefront-backend/api/controllers/cart"
	checkoutcontrollers "github.com/marketplace-zw/storefront-backend/api/controllers/checkout"
	"github.com/marketplace-zw/storefront-backend/api/middleware"
	"github.com/marketplace-zw/storefront-backend/internal/cart"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store controllers.Pinger,
	gatherer prometheus.Gatherer,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartID(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", cartcontrollers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{itemId}", cartcontrollers.CartRemoveItem(cartService, logg))
			r.Post("/coupon", cartcontrollers.CartApplyCoupon(cartService, logg))
			r.Delete("/coupon", cartcontrollers.CartRemoveCoupon(cartService, logg))
			r.Post("/checkout", cartcontrollers.CartBeginCheckout(cartService, checkoutService, logg))
		})

		r.Route("/checkout/{ref}", func(r chi.Router) {
			r.Get("/", checkoutcontrollers.CheckoutFetch(checkoutService, logg))
			r.Post("/advance", checkoutcontrollers.CheckoutAdvance(checkoutService, logg))
			r.Post("/back", checkoutcontrollers.CheckoutBack(checkoutService, logg))
			r.Post("/submit", checkoutcontrollers.CheckoutSubmit(checkoutService, logg))
			r.Post("/confirm", checkoutcontrollers.CheckoutConfirm(checkoutService, logg))
			r.Post("/cancel", checkoutcontrollers.CheckoutCancel(checkoutService, logg))
		})
	})

	return r
}
