package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// PaymentMethod is how a job payment was collected.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMercadoPago  PaymentMethod = "mercadopago"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodMercadoPago:
		return m, true
	}
	return "", false
}

// Payment is money received against a job.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (job_id-index): job_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the Mercado Pago response body for traceability.
//   - ProviderPayload is the parsed form, useful for querying/debugging.
type Payment struct {
	ID                string        `json:"id"`
	JobID             string        `json:"job_id"`
	Amount            float64       `json:"amount"`
	Method            PaymentMethod `json:"method"`
	Date              time.Time     `json:"date"`
	Notes             string        `json:"notes,omitempty"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any  `json:"provider_payload,omitempty"`
}
