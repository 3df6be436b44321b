package request

import (
	"encoding/json"
	"errors"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"
)

var (
	ErrInvalidPaymentMethod = errors.New("method must be cash, check, card, bank_transfer or mercadopago")
)

type JobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentRequest records a payment against a job. For method mercadopago,
// mp_payload carries the Mercado Pago payment body (token, payment_method_id,
// payer, installments...).
type PaymentRequest struct {
	Amount    float64         `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	MPPayload json.RawMessage `json:"mp_payload"`
}

func (r PaymentRequest) ToInput(jobID string) (usecase.RecordPaymentInput, error) {
	method, ok := entities.ParsePaymentMethod(r.Method)
	if !ok {
		return usecase.RecordPaymentInput{}, ErrInvalidPaymentMethod
	}
	in := usecase.RecordPaymentInput{
		JobID:           strings.TrimSpace(jobID),
		Amount:          r.Amount,
		Method:          method,
		Notes:           r.Notes,
		ProviderPayload: r.MPPayload,
	}
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.RecordPaymentInput{}, err
	}
	if date != nil {
		in.Date = *date
	}
	return in, nil
}
