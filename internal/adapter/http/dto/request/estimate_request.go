package request

import (
	"errors"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
)

var (
	ErrInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC3339")
)

// EstimateRequest is the create/update/validate/review payload.
//
// Exactly one of client_id and lead_id identifies the recipient. Line items
// accept the legacy `price` key and camelCase `serviceId`/`materialCost`.
type EstimateRequest struct {
	ClientID           string              `json:"client_id"`
	LeadID             string              `json:"lead_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	LineItems          []entities.LineItem `json:"line_items"`
	TaxRate            float64             `json:"tax_rate"`
	DiscountAmount     float64             `json:"discount_amount"`
	ValidUntil         string              `json:"valid_until"`
	PaymentTerms       string              `json:"payment_terms"`
	TermsAndConditions string              `json:"terms_and_conditions"`
	Notes              string              `json:"notes"`
}

// ToDraft converts the payload. A missing recipient is left zero so validation
// can report it alongside other problems; both ids set is rejected here because
// the draft cannot represent it.
func (r EstimateRequest) ToDraft() (entities.EstimateDraft, error) {
	recipient, err := entities.NewRecipient(r.ClientID, r.LeadID)
	if err != nil && !errors.Is(err, entities.ErrRecipientMissing) {
		return entities.EstimateDraft{}, err
	}

	validUntil, err := ParseDate(r.ValidUntil)
	if err != nil {
		return entities.EstimateDraft{}, err
	}

	return entities.EstimateDraft{
		Recipient:          recipient,
		Title:              strings.TrimSpace(r.Title),
		Description:        strings.TrimSpace(r.Description),
		LineItems:          r.LineItems,
		TaxRate:            r.TaxRate,
		DiscountAmount:     r.DiscountAmount,
		ValidUntil:         validUntil,
		PaymentTerms:       r.PaymentTerms,
		TermsAndConditions: r.TermsAndConditions,
		Notes:              r.Notes,
	}, nil
}

// EstimatePatchRequest changes status only.
type EstimatePatchRequest struct {
	Status        string `json:"status" binding:"required"`
	DeclineReason string `json:"decline_reason"`
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

type ConvertRequest struct {
	ClientEmail string `json:"client_email"`
}

// ParseDate accepts a calendar date (end of that day, UTC) or an RFC3339
// timestamp. Empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end := d.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}
