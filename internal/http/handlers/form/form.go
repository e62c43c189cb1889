// Package form отдаёт страницу с формой оплаты картой.
package form

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/payment-form/internal/lib/sl"
)

//go:embed templates/form.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

// ActionPath адрес, на который форма отправляет данные.
const ActionPath = "/process-payment"

type pageData struct {
	Title      string
	Action     string
	Currency   string
	MinExpYear int
}

// Handler обрабатывает GET /.
type Handler struct {
	log      *slog.Logger
	currency string
	now      func() time.Time
}

// New создает Handler. currency показывается в подписи поля суммы.
func New(log *slog.Logger, currency string) *Handler {
	return &Handler{
		log:      log,
		currency: currency,
		now:      time.Now,
	}
}

// ServeHTTP godoc
// @Summary Форма оплаты
// @Description HTML-страница с формой ввода карты, отправляющая JSON на /process-payment
// @Tags Form
// @Produce html
// @Success 200 {string} string "HTML-страница"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form"

	var buf bytes.Buffer
	err := page.Execute(&buf, pageData{
		Title:      "Circle Payment Demo",
		Action:     ActionPath,
		Currency:   h.currency,
		MinExpYear: h.now().Year(),
	})
	if err != nil {
		h.log.Error("failed to render form",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
