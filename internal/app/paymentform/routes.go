// Package paymentform собирает HTTP-приложение формы оплаты.
package paymentform

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// регистрирует swagger-спецификацию для /docs
	_ "github.com/magabrotheeeer/payment-form/docs"
	"github.com/magabrotheeeer/payment-form/internal/http/handlers/form"
	"github.com/magabrotheeeer/payment-form/internal/http/handlers/health"
	"github.com/magabrotheeeer/payment-form/internal/http/handlers/payment/processpayment"
	"github.com/magabrotheeeer/payment-form/internal/http/middlewarectx"
)

// Deps зависимости обработчиков.
type Deps struct {
	Checkout       processpayment.Service
	Recorder       processpayment.Recorder
	Limiter        *rate.Limiter
	MetricsHandler http.Handler
	Currency       string
	LegacyStatusOK bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/", form.New(logger, deps.Currency).ServeHTTP)
	r.With(middlewarectx.RateLimitMiddleware(logger, deps.Limiter)).
		Post(form.ActionPath, processpayment.New(logger, deps.Checkout, deps.Recorder, deps.LegacyStatusOK).ServeHTTP)

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", deps.MetricsHandler)
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
