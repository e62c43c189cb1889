// Package paymentprovider клиент REST API платёжного провайдера Circle:
// сохранение карты и создание платежа.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	cardsPath    = "/v1/cards"
	paymentsPath = "/v1/payments"

	// OpCreateCard и OpCreatePayment метки операций для наблюдателя.
	OpCreateCard    = "create_card"
	OpCreatePayment = "create_payment"

	maxErrorBody = 1 << 20
)

// ErrMissingID провайдер ответил успешно, но без идентификатора объекта.
var ErrMissingID = errors.New("provider response has no id")

// Observer получает длительность и исход каждого запроса к провайдеру.
type Observer interface {
	ObserveProviderRequest(operation string, statusCode int, duration time.Duration)
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймаут из NewClient тогда не применяется).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver подключает сбор метрик.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// Client клиент Circle API. Безопасен для конкурентного использования.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	observer   Observer
}

// NewClient создаёт новый клиент Circle.
func NewClient(apiKey, apiURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// CreateCard сохраняет карту у провайдера и возвращает платёжный метод.
func (c *Client) CreateCard(ctx context.Context, reqParams CreateCardRequest) (*Card, error) {
	var resp envelope[Card]
	if err := c.do(ctx, OpCreateCard, cardsPath, reqParams, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return nil, ErrMissingID
	}
	return &resp.Data, nil
}

// CreatePayment создаёт платёж по ранее сохранённой карте.
func (c *Client) CreatePayment(ctx context.Context, reqParams CreatePaymentRequest) (*Payment, error) {
	var resp envelope[Payment]
	if err := c.do(ctx, OpCreatePayment, paymentsPath, reqParams, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return nil, ErrMissingID
	}
	return &resp.Data, nil
}

// do выполняет POST и декодирует ответ в out. Ответ вне 2xx возвращается как *APIError.
func (c *Client) do(ctx context.Context, operation, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, 0, start)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// тело ошибки может быть не JSON, тогда остаётся только статус
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) observe(operation string, statusCode int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveProviderRequest(operation, statusCode, time.Since(start))
}
