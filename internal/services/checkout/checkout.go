// Package checkout проводит оплату картой в два последовательных шага:
// сохранение карты у провайдера и списание по полученному платёжному методу.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/payment-form/internal/lib/idempotency"
	"github.com/magabrotheeeer/payment-form/internal/models"
	"github.com/magabrotheeeer/payment-form/internal/paymentprovider"
)

// Provider операции платёжного провайдера, нужные для оплаты.
type Provider interface {
	CreateCard(ctx context.Context, reqParams paymentprovider.CreateCardRequest) (*paymentprovider.Card, error)
	CreatePayment(ctx context.Context, reqParams paymentprovider.CreatePaymentRequest) (*paymentprovider.Payment, error)
}

// Options фиксированные параметры платежа, не зависящие от запроса.
type Options struct {
	KeyID       string
	Currency    string
	Description string
	Billing     paymentprovider.BillingDetails
	// NewKey генератор ключей идемпотентности; по умолчанию idempotency.NewKey.
	NewKey idempotency.Generator
}

// Service сервис оплаты. Не хранит состояние между запросами.
type Service struct {
	provider Provider
	opts     Options
	log      *slog.Logger
}

// New создаёт Service.
func New(provider Provider, opts Options, log *slog.Logger) *Service {
	if opts.NewKey == nil {
		opts.NewKey = idempotency.NewKey
	}
	return &Service{
		provider: provider,
		opts:     opts,
		log:      log,
	}
}

const amountPlaces = 2

type cardInput struct {
	expMonth int
	expYear  int
	amount   string
}

// ProcessPayment сохраняет карту, затем создаёт платёж и возвращает его ID.
// CreatePayment не вызывается, если CreateCard завершился ошибкой.
func (s *Service) ProcessPayment(ctx context.Context, req models.PaymentRequest) (string, error) {
	const op = "services.checkout.ProcessPayment"
	log := s.log.With(slog.String("op", op))

	in, err := parseInput(req)
	if err != nil {
		return "", err
	}

	cardKey, err := s.opts.NewKey()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	card, err := s.provider.CreateCard(ctx, paymentprovider.CreateCardRequest{
		IdempotencyKey: cardKey,
		KeyID:          s.opts.KeyID,
		EncryptedData: paymentprovider.EncryptedData{
			Number: req.CardNumber,
			CVV:    req.CVV,
		},
		BillingDetails: s.opts.Billing,
		ExpMonth:       in.expMonth,
		ExpYear:        in.expYear,
	})
	if err != nil {
		return "", &StepError{Step: StepCreateCard, Err: err}
	}
	log.Info("card created", slog.String("card_id", card.ID), slog.String("status", card.Status))

	paymentKey, err := s.opts.NewKey()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	payment, err := s.provider.CreatePayment(ctx, paymentprovider.CreatePaymentRequest{
		IdempotencyKey: paymentKey,
		Amount: paymentprovider.Amount{
			Amount:   in.amount,
			Currency: s.opts.Currency,
		},
		Source: paymentprovider.Source{
			ID:   card.ID,
			Type: paymentprovider.SourceTypeCard,
		},
		Description: s.opts.Description,
	})
	if err != nil {
		return "", &StepError{Step: StepCreatePayment, Err: err}
	}
	log.Info("payment created", slog.String("payment_id", payment.ID), slog.String("status", payment.Status))

	return payment.ID, nil
}

// parseInput приводит поля формы к типам провайдера до первого запроса к нему.
func parseInput(req models.PaymentRequest) (cardInput, error) {
	var in cardInput

	for _, f := range []struct {
		name  string
		value string
	}{
		{"amount", string(req.Amount)},
		{"cardNumber", req.CardNumber},
		{"expMonth", string(req.ExpMonth)},
		{"expYear", string(req.ExpYear)},
		{"cvv", req.CVV},
	} {
		if f.value == "" {
			return in, fmt.Errorf("%w: missing field %s", ErrInvalidRequest, f.name)
		}
	}

	expMonth, err := req.ExpMonth.Int()
	if err != nil {
		return in, fmt.Errorf("%w: expMonth: %w", ErrInvalidRequest, err)
	}
	expYear, err := req.ExpYear.Int()
	if err != nil {
		return in, fmt.Errorf("%w: expYear: %w", ErrInvalidRequest, err)
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		return in, fmt.Errorf("%w: amount: %w", ErrInvalidRequest, err)
	}
	// провайдер принимает не больше двух знаков после запятой
	if !amount.Equal(amount.Truncate(amountPlaces)) {
		return in, fmt.Errorf("%w: amount: more than %d decimal places in %q", ErrInvalidRequest, amountPlaces, string(req.Amount))
	}

	in.expMonth = expMonth
	in.expYear = expYear
	in.amount = amount.StringFixed(amountPlaces)
	return in, nil
}
