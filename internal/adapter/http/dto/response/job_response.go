package response

import (
	"time"

	"fieldservice/internal/domain/entities"
)

type JobResponse struct {
	ID            string             `json:"id"`
	JobNumber     string             `json:"job_number"`
	ClientID      string             `json:"client_id"`
	ClientEmail   string             `json:"client_email,omitempty"`
	EstimateID    string             `json:"estimate_id,omitempty"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	LineItems     []LineItemResponse `json:"line_items"`
	Subtotal      float64            `json:"subtotal"`
	TaxAmount     float64            `json:"tax_amount"`
	Total         float64            `json:"total"`
	AmountPaid    float64            `json:"amount_paid"`
	PaymentStatus string             `json:"payment_status"`
	Status        string             `json:"status"`
	ScheduledDate *time.Time         `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time         `json:"completed_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func FromJob(j entities.Job) JobResponse {
	return JobResponse{
		ID:            j.ID,
		JobNumber:     j.JobNumber,
		ClientID:      j.ClientID,
		ClientEmail:   j.ClientEmail,
		EstimateID:    j.EstimateID,
		Title:         j.Title,
		Description:   j.Description,
		LineItems:     FromLineItems(j.LineItems),
		Subtotal:      j.Subtotal,
		TaxAmount:     j.TaxAmount,
		Total:         j.Total,
		AmountPaid:    j.AmountPaid,
		PaymentStatus: string(j.PaymentStatus),
		Status:        string(j.Status),
		ScheduledDate: j.ScheduledDate,
		CompletedDate: j.CompletedDate,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

func FromJobs(jobs []entities.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

type PaymentResponse struct {
	ID                string    `json:"id"`
	JobID             string    `json:"job_id"`
	Amount            float64   `json:"amount"`
	Method            string    `json:"method"`
	Date              time.Time `json:"date"`
	Notes             string    `json:"notes,omitempty"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`

	MPPayloadRaw string         `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]any `json:"mp_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		JobID:             p.JobID,
		Amount:            p.Amount,
		Method:            string(p.Method),
		Date:              p.Date,
		Notes:             p.Notes,
		ProviderPaymentID: p.ProviderPaymentID,
		MPPayloadRaw:      string(p.ProviderPayloadRaw),
		MPPayload:         p.ProviderPayload,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
