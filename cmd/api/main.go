package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/marketplace-zw/storefront-backend/api/routes"
	"github.com/marketplace-zw/storefront-backend/internal/cart"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/internal/notifications"
	"github.com/marketplace-zw/storefront-backend/internal/payments"
	"github.com/marketplace-zw/storefront-backend/internal/pricing"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
	"github.com/marketplace-zw/storefront-backend/pkg/metrics"
	"github.com/marketplace-zw/storefront-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	engine, err := pricing.NewEngine(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing engine", err)
		os.Exit(1)
	}

	simulator, err := payments.NewSimulator(
		cfg.Payment,
		payments.NewRandomPolicy(cfg.Payment.PayNowSuccessRate, time.Now().UnixNano()),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build payment simulator", err)
		os.Exit(1)
	}

	sink := notifications.NewLogSink(logg)

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Sessions.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, coupons.NewRegistry(), engine, sink, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart service", err)
		os.Exit(1)
	}

	sessionStore, err := checkoutsvc.NewRedisStore(redisClient, cfg.Sessions.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to build session store", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(sessionStore, cartStore, engine, simulator, sink, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, registry, cartService, checkoutService),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			if closeErr := redisClient.Close(); closeErr != nil {
				logg.Error(ctx, "error closing redis", closeErr)
			}
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		err = multierr.Append(err, redisClient.Close())
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
