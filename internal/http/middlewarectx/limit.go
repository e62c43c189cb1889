// Package middlewarectx содержит middleware HTTP-сервера.
package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/payment-form/internal/http/response"
	"github.com/magabrotheeeer/payment-form/internal/models"
)

var errTooManyRequests = errors.New("too many requests")

// RateLimitMiddleware ограничивает частоту запросов общим для всех клиентов limiter.
// Отказ отдаётся в формате PaymentResult, чтобы форма показала сообщение.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests",
					slog.String("op", "middlewarectx.RateLimit"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.Header().Set("Retry-After", "1")
				response.JSON(w, r, http.StatusTooManyRequests, models.Failed(errTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
