package entities

import "time"

type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusQuote      JobStatus = "quote"
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusInvoiced   JobStatus = "invoiced"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusQuote, JobStatusScheduled, JobStatusInProgress,
		JobStatusCompleted, JobStatusInvoiced, JobStatusCancelled:
		return true
	}
	return false
}

type JobPaymentStatus string

const (
	JobPaymentUnpaid  JobPaymentStatus = "unpaid"
	JobPaymentPartial JobPaymentStatus = "partial"
	JobPaymentPaid    JobPaymentStatus = "paid"
)

// Job is the unit of work an accepted estimate converts into.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (client_id-index): client_id
type Job struct {
	ID            string           `json:"id"`
	JobNumber     string           `json:"job_number"`
	ClientID      string           `json:"client_id"`
	ClientEmail   string           `json:"client_email,omitempty"`
	EstimateID    string           `json:"estimate_id,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	LineItems     []LineItem       `json:"line_items"`
	Subtotal      float64          `json:"subtotal"`
	TaxAmount     float64          `json:"tax_amount"`
	Total         float64          `json:"total"`
	AmountPaid    float64          `json:"amount_paid"`
	PaymentStatus JobPaymentStatus `json:"payment_status"`
	Status        JobStatus        `json:"status"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
