package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/payment-form/internal/lib/sl"
)

const (
	successMessage = "Payment processed successfully! Payment ID: "
	failurePrefix  = "Error processing payment: "
)

// PaymentRequest данные карты и сумма из формы оплаты.
// Живёт только в рамках одного HTTP-запроса.
type PaymentRequest struct {
	Amount     Number `json:"amount" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	ExpMonth   Number `json:"expMonth" validate:"required"`
	ExpYear    Number `json:"expYear" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

// LogValue не даёт номеру карты и CVV попасть в логи целиком.
func (r PaymentRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("amount", string(r.Amount)),
		sl.Masked("card_number", r.CardNumber),
		slog.String("exp_month", string(r.ExpMonth)),
		slog.String("exp_year", string(r.ExpYear)),
	)
}

// PaymentResult ответ на запрос оплаты. Сериализуется в тело ответа как есть.
type PaymentResult struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Payment processed successfully! Payment ID: pay_1"`
}

// Succeeded результат успешной оплаты с ID платежа у провайдера.
func Succeeded(paymentID string) PaymentResult {
	return PaymentResult{
		Success: true,
		Message: successMessage + paymentID,
	}
}

// Failed результат неуспешной оплаты; текст ошибки попадает в message.
func Failed(err error) PaymentResult {
	return PaymentResult{
		Success: false,
		Message: failurePrefix + err.Error(),
	}
}

// Number числовое поле формы. Браузер присылает значения формы строками,
// поэтому принимаются и JSON-числа, и строки.
type Number string

// UnmarshalJSON реализует json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*n = Number(data)
		return nil
	default:
		return fmt.Errorf("expected number or numeric string, got %s", data)
	}
}

// Int приводит значение к целому.
func (n Number) Int() (int, error) {
	v, err := strconv.Atoi(string(n))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", string(n))
	}
	return v, nil
}

// Decimal приводит значение к десятичному числу.
func (n Number) Decimal() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q", string(n))
	}
	return v, nil
}
