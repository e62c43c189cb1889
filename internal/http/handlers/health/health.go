package health

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/payment-form/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступности сервиса
// @Tags Service
// @Produce json
// @Success 200 {object} response.StatusResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("health check", slog.String("op", "handlers.health"))
	response.JSON(w, r, http.StatusOK, response.OK())
}
