package controllers

import (
	"context"
	"net/http"

	"github.com/marketplace-zw/storefront-backend/api/responses"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
)

// Pinger is the dependency probe readiness consults.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
