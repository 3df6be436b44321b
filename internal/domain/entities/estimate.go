package entities

import "time"

// EstimateStatus represents the lifecycle of an estimate.
//
// Domain notes:
//   - draft is the initial status; accepted and declined are terminal.
//   - expired is reached by the expiry sweep once valid_until has elapsed.
//   - revised re-opens a sent/viewed/declined/expired estimate for editing.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusViewed   EstimateStatus = "viewed"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusDeclined EstimateStatus = "declined"
	EstimateStatusExpired  EstimateStatus = "expired"
	EstimateStatusRevised  EstimateStatus = "revised"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusViewed, EstimateStatusAccepted,
		EstimateStatusDeclined, EstimateStatusExpired, EstimateStatusRevised:
		return true
	}
	return false
}

// DisplayStatus is the read-side status shown in listings. It is never persisted.
type DisplayStatus string

const (
	DisplayStatusFollowUpPending DisplayStatus = "followup_pending"
	DisplayStatusSentNoFollowUp  DisplayStatus = "sent_no_followup"
)

// PricingMode records which valuation path produced the persisted totals.
type PricingMode string

const (
	PricingModeManual    PricingMode = "manual"
	PricingModePricebook PricingMode = "pricebook"
)

// Estimate is a priced proposal addressed to a client or a lead.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (client_id-index): client_id
//
// Monetary representation:
//   - Subtotal, TaxAmount and Total are derived on every create/update and
//     never taken from the caller.
type Estimate struct {
	ID                 string         `json:"id"`
	EstimateNumber     string         `json:"estimate_number"`
	Recipient          Recipient      `json:"recipient"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	LineItems          []LineItem     `json:"line_items"`
	TaxRate            float64        `json:"tax_rate"`
	DiscountAmount     float64        `json:"discount_amount"`
	Subtotal           float64        `json:"subtotal"`
	TaxAmount          float64        `json:"tax_amount"`
	Total              float64        `json:"total"`
	PricingMode        PricingMode    `json:"pricing_mode"`
	AppliedMinimum     bool           `json:"applied_minimum"`
	ValidUntil         *time.Time     `json:"valid_until,omitempty"`
	PaymentTerms       string         `json:"payment_terms"`
	TermsAndConditions string         `json:"terms_and_conditions"`
	Notes              string         `json:"notes"`
	Status             EstimateStatus `json:"status"`
	SentDate           *time.Time     `json:"sent_date,omitempty"`
	ViewedDate         *time.Time     `json:"viewed_date,omitempty"`
	AcceptedDate       *time.Time     `json:"accepted_date,omitempty"`
	DeclinedDate       *time.Time     `json:"declined_date,omitempty"`
	DeclineReason      string         `json:"decline_reason,omitempty"`
	ExpiredDate        *time.Time     `json:"expired_date,omitempty"`
	ConvertedToJobID   string         `json:"converted_to_job_id,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// EstimateDraft is the editable content of an estimate, as submitted by a user
// on create/update and as sent to the review advisor.
type EstimateDraft struct {
	Recipient          Recipient
	Title              string
	Description        string
	LineItems          []LineItem
	TaxRate            float64
	DiscountAmount     float64
	ValidUntil         *time.Time
	PaymentTerms       string
	TermsAndConditions string
	Notes              string
}

// EstimateStats aggregates the estimate pipeline.
type EstimateStats struct {
	Total          int                    `json:"total"`
	ByStatus       map[EstimateStatus]int `json:"by_status"`
	PipelineValue  float64                `json:"pipeline_value"`
	AcceptedValue  float64                `json:"accepted_value"`
	AcceptanceRate float64                `json:"acceptance_rate"`
	FollowUpsDue   int                    `json:"followups_pending"`
}
