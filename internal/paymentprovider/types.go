package paymentprovider

import (
	"fmt"
	"net/http"
	"time"
)

// CreateCardRequest запрос на сохранение карты (tokenization).
// EncryptedData передаётся как есть, шифрование на стороне клиента не выполняется.
type CreateCardRequest struct {
	IdempotencyKey string         `json:"idempotencyKey"`
	KeyID          string         `json:"keyId"`
	EncryptedData  EncryptedData  `json:"encryptedData"`
	BillingDetails BillingDetails `json:"billingDetails"`
	ExpMonth       int            `json:"expMonth"`
	ExpYear        int            `json:"expYear"`
}

// EncryptedData данные карты.
type EncryptedData struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
}

// BillingDetails платёжный адрес владельца карты.
type BillingDetails struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Line1      string `json:"line1"`
	PostalCode string `json:"postalCode"`
}

// Card сохранённый платёжный метод.
type Card struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Last4      string    `json:"last4,omitempty"`
	Network    string    `json:"network,omitempty"`
	CreateDate time.Time `json:"createDate"`
}

// CreatePaymentRequest запрос на списание с сохранённой карты.
type CreatePaymentRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
	Amount         Amount `json:"amount"`
	Source         Source `json:"source"`
	Description    string `json:"description"`
}

// Amount денежная сумма, например {"amount":"10.00","currency":"USD"}.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// SourceTypeCard тип источника для оплаты картой.
const SourceTypeCard = "card"

// Source источник списания.
type Source struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Payment созданный платёж.
type Payment struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Amount      Amount    `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreateDate  time.Time `json:"createDate"`
}

// envelope ответы провайдера приходят в поле data.
type envelope[T any] struct {
	Data T `json:"data"`
}

// APIError ответ провайдера со статусом вне 2xx.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s (status %d, code %d)", e.Message, e.StatusCode, e.Code)
}
