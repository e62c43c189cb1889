package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedObservation struct {
	operation  string
	statusCode int
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []recordedObservation
}

func (o *fakeObserver) ObserveProviderRequest(operation string, statusCode int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, recordedObservation{operation: operation, statusCode: statusCode})
}

func TestClient_CreateCard(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/cards", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err)

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"pm_1","status":"pending","last4":"1111"}}`)
	}))
	defer srv.Close()

	obs := &fakeObserver{}
	client := NewClient("test-key", srv.URL+"/", time.Second, WithObserver(obs))

	card, err := client.CreateCard(context.Background(), CreateCardRequest{
		IdempotencyKey: "0011223344556677",
		KeyID:          "key1",
		EncryptedData:  EncryptedData{Number: "4111111111111111", CVV: "123"},
		BillingDetails: BillingDetails{Name: "Test User", City: "Test City", Country: "US", Line1: "Test Address", PostalCode: "12345"},
		ExpMonth:       12,
		ExpYear:        2030,
	})
	require.NoError(t, err)

	assert.Equal(t, "pm_1", card.ID)
	assert.Equal(t, "1111", card.Last4)
	assert.Equal(t, "0011223344556677", gotBody["idempotencyKey"])
	assert.Equal(t, "key1", gotBody["keyId"])
	assert.Equal(t, map[string]any{"number": "4111111111111111", "cvv": "123"}, gotBody["encryptedData"])
	assert.Equal(t, map[string]any{
		"name": "Test User", "city": "Test City", "country": "US", "line1": "Test Address", "postalCode": "12345",
	}, gotBody["billingDetails"])
	assert.InDelta(t, 12, gotBody["expMonth"], 0)
	assert.InDelta(t, 2030, gotBody["expYear"], 0)
	assert.Equal(t, []recordedObservation{{operation: OpCreateCard, statusCode: http.StatusCreated}}, obs.seen)
}

func TestClient_CreatePayment(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"pay_1","status":"pending","amount":{"amount":"10.00","currency":"USD"}}}`)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)

	payment, err := client.CreatePayment(context.Background(), CreatePaymentRequest{
		IdempotencyKey: "8899aabbccddeeff",
		Amount:         Amount{Amount: "10.00", Currency: "USD"},
		Source:         Source{ID: "pm_1", Type: SourceTypeCard},
		Description:    "Test payment",
	})
	require.NoError(t, err)

	assert.Equal(t, "pay_1", payment.ID)
	assert.Equal(t, Amount{Amount: "10.00", Currency: "USD"}, payment.Amount)
	assert.Equal(t, map[string]any{"amount": "10.00", "currency": "USD"}, gotBody["amount"])
	assert.Equal(t, map[string]any{"id": "pm_1", "type": "card"}, gotBody["source"])
	assert.Equal(t, "Test payment", gotBody["description"])
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAPIErr *APIError
		wantErr    error
		wantText   string
	}{
		{
			name:       "provider rejection",
			status:     http.StatusBadRequest,
			body:       `{"code":2,"message":"Invalid entity"}`,
			wantAPIErr: &APIError{StatusCode: http.StatusBadRequest, Code: 2, Message: "Invalid entity"},
			wantText:   "Invalid entity (status 400, code 2)",
		},
		{
			name:       "non json error body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantAPIErr: &APIError{StatusCode: http.StatusBadGateway},
			wantText:   "unexpected status: 502 Bad Gateway",
		},
		{
			name:     "missing id",
			status:   http.StatusCreated,
			body:     `{"data":{"status":"pending"}}`,
			wantErr:  ErrMissingID,
			wantText: "provider response has no id",
		},
		{
			name:     "malformed success body",
			status:   http.StatusOK,
			body:     `{"data":`,
			wantText: "decode response: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := NewClient("test-key", srv.URL, time.Second)
			_, err := client.CreateCard(context.Background(), CreateCardRequest{})
			require.Error(t, err)
			assert.Equal(t, tt.wantText, err.Error())

			if tt.wantAPIErr != nil {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.wantAPIErr, apiErr)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	obs := &fakeObserver{}
	client := NewClient("test-key", url, time.Second, WithObserver(obs))

	_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, []recordedObservation{{operation: OpCreatePayment, statusCode: 0}}, obs.seen)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", srv.URL, time.Second)
	_, err := client.CreateCard(ctx, CreateCardRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
