package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/mealmart-storefront/api/relay"
	"github.com/angelmondragon/mealmart-storefront/pkg/config"
	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
	"github.com/angelmondragon/mealmart-storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "proxyd"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "proxyd",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	relayMetrics := metrics.NewRelayMetrics(reg)

	handler, err := relay.NewHandler(cfg.API, cfg.Relay, logg, relayMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create relay handler", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Relay.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.API.BaseURL,
	})
	logg.Info(ctx, "starting relay server")

	server := &http.Server{
		Addr:    addr,
		Handler: relay.Router(handler, cfg.Relay, logg, reg),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "relay server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		shutdownErr := server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && err != http.ErrServerClosed {
			shutdownErr = multierr.Append(shutdownErr, err)
		}
		if shutdownErr != nil {
			logg.Error(ctx, "relay server shutdown error", shutdownErr)
			os.Exit(1)
		}
		logg.Info(ctx, "relay server shut down gracefully")
	}
}
