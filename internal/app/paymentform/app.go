package paymentform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/payment-form/internal/config"
	"github.com/magabrotheeeer/payment-form/internal/metrics"
	"github.com/magabrotheeeer/payment-form/internal/paymentprovider"
	"github.com/magabrotheeeer/payment-form/internal/services/checkout"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
}

// New собирает зависимости: клиент провайдера, сервис оплаты, метрики и роутер.
func New(cfg *config.Config, logger *slog.Logger) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	provider := paymentprovider.NewClient(
		cfg.Provider.APIKey,
		cfg.Provider.APIURL,
		cfg.Provider.Timeout,
		paymentprovider.WithObserver(m),
	)

	checkoutService := checkout.New(provider, checkout.Options{
		KeyID:       cfg.Provider.KeyID,
		Currency:    cfg.Checkout.Currency,
		Description: cfg.Checkout.Description,
		Billing: paymentprovider.BillingDetails{
			Name:       cfg.Checkout.Billing.Name,
			City:       cfg.Checkout.Billing.City,
			Country:    cfg.Checkout.Billing.Country,
			Line1:      cfg.Checkout.Billing.Line1,
			PostalCode: cfg.Checkout.Billing.PostalCode,
		},
	}, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Checkout:       checkoutService,
		Recorder:       m,
		Limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Currency:       cfg.Checkout.Currency,
		LegacyStatusOK: cfg.Checkout.LegacyStatusOK,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
