package response

import (
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
)

// LineItemResponse is the wire shape of a line item:
// {description, quantity, unit_price, unit, serviceId?, materialCost?, tier?, total?, code?}.
type LineItemResponse struct {
	Description  string   `json:"description"`
	Quantity     float64  `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	Unit         string   `json:"unit"`
	ServiceID    string   `json:"serviceId,omitempty"`
	MaterialCost *float64 `json:"materialCost,omitempty"`
	Tier         string   `json:"tier,omitempty"`
	Total        *float64 `json:"total,omitempty"`
	Code         string   `json:"code,omitempty"`
}

type EstimateResponse struct {
	ID                 string             `json:"id"`
	EstimateNumber     string             `json:"estimate_number"`
	ClientID           string             `json:"client_id,omitempty"`
	LeadID             string             `json:"lead_id,omitempty"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	LineItems          []LineItemResponse `json:"line_items"`
	TaxRate            float64            `json:"tax_rate"`
	DiscountAmount     float64            `json:"discount_amount"`
	Subtotal           float64            `json:"subtotal"`
	TaxAmount          float64            `json:"tax_amount"`
	Total              float64            `json:"total"`
	PricingMode        string             `json:"pricing_mode"`
	AppliedMinimum     bool               `json:"applied_minimum"`
	ValidUntil         *time.Time         `json:"valid_until,omitempty"`
	PaymentTerms       string             `json:"payment_terms"`
	TermsAndConditions string             `json:"terms_and_conditions"`
	Notes              string             `json:"notes"`
	Status             string             `json:"status"`
	DisplayStatus      string             `json:"display_status"`
	SentDate           *time.Time         `json:"sent_date,omitempty"`
	ViewedDate         *time.Time         `json:"viewed_date,omitempty"`
	AcceptedDate       *time.Time         `json:"accepted_date,omitempty"`
	DeclinedDate       *time.Time         `json:"declined_date,omitempty"`
	DeclineReason      string             `json:"decline_reason,omitempty"`
	ExpiredDate        *time.Time         `json:"expired_date,omitempty"`
	ConvertedToJobID   string             `json:"converted_to_job_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// FromEstimate maps an estimate without pending-task context. A sent estimate
// therefore shows as sent_no_followup; use FromEstimateView when the view is known.
func FromEstimate(e entities.Estimate) EstimateResponse {
	return FromEstimateView(entities.EstimateView{Estimate: e, DisplayStatus: lifecycle.DeriveDisplayStatus(e, nil)})
}

func FromEstimateView(v entities.EstimateView) EstimateResponse {
	e := v.Estimate
	return EstimateResponse{
		ID:                 e.ID,
		EstimateNumber:     e.EstimateNumber,
		ClientID:           e.Recipient.ClientID(),
		LeadID:             e.Recipient.LeadID(),
		Title:              e.Title,
		Description:        e.Description,
		LineItems:          FromLineItems(e.LineItems),
		TaxRate:            e.TaxRate,
		DiscountAmount:     e.DiscountAmount,
		Subtotal:           e.Subtotal,
		TaxAmount:          e.TaxAmount,
		Total:              e.Total,
		PricingMode:        string(e.PricingMode),
		AppliedMinimum:     e.AppliedMinimum,
		ValidUntil:         e.ValidUntil,
		PaymentTerms:       e.PaymentTerms,
		TermsAndConditions: e.TermsAndConditions,
		Notes:              e.Notes,
		Status:             string(e.Status),
		DisplayStatus:      string(v.DisplayStatus),
		SentDate:           e.SentDate,
		ViewedDate:         e.ViewedDate,
		AcceptedDate:       e.AcceptedDate,
		DeclinedDate:       e.DeclinedDate,
		DeclineReason:      e.DeclineReason,
		ExpiredDate:        e.ExpiredDate,
		ConvertedToJobID:   e.ConvertedToJobID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func FromEstimateViews(views []entities.EstimateView) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromEstimateView(v))
	}
	return out
}

func FromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, LineItemResponse{
			Description:  li.Description,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			Unit:         li.Unit,
			ServiceID:    li.ServiceID,
			MaterialCost: li.MaterialCost,
			Tier:         string(li.Tier),
			Total:        li.Total,
			Code:         li.Code,
		})
	}
	return out
}

// ConvertResponse is returned when an accepted estimate becomes a job.
type ConvertResponse struct {
	Estimate EstimateResponse `json:"estimate"`
	Job      JobResponse      `json:"job"`
}

// ValidationResponse lists quick-validation problems; empty means valid.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func NewValidationResponse(errs []string) ValidationResponse {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResponse{Valid: len(errs) == 0, Errors: errs}
}
