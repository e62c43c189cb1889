// Package processpayment обрабатывает отправку формы оплаты.
//
// Handler принимает JSON с данными карты, валидирует его, проводит оплату через
// сервис checkout и всегда отвечает телом {success, message}. Код статуса зависит
// от вида ошибки: 400 для нечитаемого JSON, 422 для некорректных полей,
// 502 для ошибок провайдера, 500 для прочих.
package processpayment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/payment-form/internal/http/response"
	"github.com/magabrotheeeer/payment-form/internal/lib/sl"
	"github.com/magabrotheeeer/payment-form/internal/metrics"
	"github.com/magabrotheeeer/payment-form/internal/models"
	"github.com/magabrotheeeer/payment-form/internal/services/checkout"
)

const maxBodyBytes = 64 << 10

var errInvalidBody = errors.New("invalid request body")

// Service проводит оплату и возвращает ID платежа у провайдера.
type Service interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (string, error)
}

// Recorder учитывает исход обработки запроса.
type Recorder interface {
	PaymentProcessed(outcome string)
}

// Handler обрабатывает POST /process-payment.
type Handler struct {
	log            *slog.Logger
	service        Service
	recorder       Recorder
	validate       *validator.Validate
	legacyStatusOK bool // 200 на любой результат
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, recorder Recorder, legacyStatusOK bool) *Handler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		log:            log,
		service:        service,
		recorder:       recorder,
		validate:       validate,
		legacyStatusOK: legacyStatusOK,
	}
}

// ServeHTTP godoc
// @Summary Провести оплату картой
// @Description Сохраняет карту у провайдера и создает платеж. Тело ответа всегда {success, message}.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.PaymentRequest true "Данные карты и сумма"
// @Success 200 {object} models.PaymentResult "Платеж создан"
// @Failure 400 {object} models.PaymentResult "Некорректный JSON"
// @Failure 422 {object} models.PaymentResult "Ошибка валидации"
// @Failure 429 {object} models.PaymentResult "Слишком много запросов"
// @Failure 500 {object} models.PaymentResult "Внутренняя ошибка"
// @Failure 502 {object} models.PaymentResult "Ошибка платежного провайдера"
// @Router /process-payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.process"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PaymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, metrics.OutcomeInvalidRequest, fmt.Errorf("%w: %w", errInvalidBody, err))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			err = errors.New(response.ValidationMessage(verrs))
		}
		h.fail(w, r, http.StatusUnprocessableEntity, metrics.OutcomeInvalidRequest, err)
		return
	}

	paymentID, err := h.service.ProcessPayment(r.Context(), req)
	if err != nil {
		var stepErr *checkout.StepError
		switch {
		case errors.Is(err, checkout.ErrInvalidRequest):
			log.Error("invalid payment request", sl.Err(err))
			h.fail(w, r, http.StatusUnprocessableEntity, metrics.OutcomeInvalidRequest, err)
		case errors.As(err, &stepErr):
			log.Error("payment provider error", slog.String("step", string(stepErr.Step)), sl.Err(err))
			h.fail(w, r, http.StatusBadGateway, metrics.OutcomeUpstreamError, err)
		default:
			log.Error("failed to process payment", sl.Err(err))
			h.fail(w, r, http.StatusInternalServerError, metrics.OutcomeInternalError, err)
		}
		return
	}

	log.Info("payment processed", slog.String("payment_id", paymentID))
	h.recorder.PaymentProcessed(metrics.OutcomeSuccess)
	response.JSON(w, r, http.StatusOK, models.Succeeded(paymentID))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, outcome string, err error) {
	h.recorder.PaymentProcessed(outcome)
	if h.legacyStatusOK {
		status = http.StatusOK
	}
	response.JSON(w, r, status, models.Failed(err))
}
