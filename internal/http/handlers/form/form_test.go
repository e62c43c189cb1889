package form

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestFormHandler_ServeHTTP(t *testing.T) {
	handler := New(newNoopLogger(), "USD")
	handler.now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, `<form id="paymentForm" action="/process-payment" method="post">`)
	assert.Contains(t, body, `Amount (USD):`)
	assert.Contains(t, body, `name="expYear" required min="2026"`)
	for _, field := range []string{"amount", "cardNumber", "expMonth", "expYear", "cvv"} {
		assert.Contains(t, body, `name="`+field+`"`)
	}
	assert.Contains(t, body, `'Error processing payment: '`)
}

func TestFormHandler_EscapesCurrency(t *testing.T) {
	handler := New(newNoopLogger(), "<b>USD</b>")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<b>USD</b>")
	assert.Contains(t, w.Body.String(), "&lt;b&gt;USD&lt;/b&gt;")
}
