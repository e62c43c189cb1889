package checkout

import "errors"

// ErrInvalidRequest данные из формы отсутствуют или не приводятся к нужному типу.
var ErrInvalidRequest = errors.New("invalid payment request")

// Step шаг обращения к провайдеру.
type Step string

const (
	StepCreateCard    Step = "create card"
	StepCreatePayment Step = "create payment"
)

// StepError ошибка провайдера или транспорта на конкретном шаге.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return string(e.Step) + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
