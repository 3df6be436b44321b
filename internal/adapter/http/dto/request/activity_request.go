package request

import (
	"errors"
	"strings"

	"fieldservice/internal/domain/entities"
)

var ErrInvalidRelatedType = errors.New("related_type must be estimate, job, payment, property or email")

// ActivityRequest logs a manual activity (call, note, task...).
type ActivityRequest struct {
	ClientID     string            `json:"client_id"`
	LeadID       string            `json:"lead_id"`
	ActivityType string            `json:"activity_type" binding:"required"`
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	RelatedType  string            `json:"related_type"`
	RelatedID    string            `json:"related_id"`
	Metadata     map[string]string `json:"metadata"`
	DueDate      string            `json:"due_date"`
}

func (r ActivityRequest) ToActivity() (entities.Activity, error) {
	due, err := ParseDate(r.DueDate)
	if err != nil {
		return entities.Activity{}, err
	}

	a := entities.Activity{
		ClientID:     r.ClientID,
		LeadID:       r.LeadID,
		ActivityType: entities.ActivityType(strings.ToLower(strings.TrimSpace(r.ActivityType))),
		Title:        r.Title,
		Description:  strings.TrimSpace(r.Description),
		Metadata:     r.Metadata,
		DueDate:      due,
	}

	relatedID := strings.TrimSpace(r.RelatedID)
	if relatedID == "" {
		return a, nil
	}
	related, err := entities.DecodeRelated(entities.RelatedType(strings.ToLower(strings.TrimSpace(r.RelatedType))), relatedID, nil)
	if err != nil {
		return entities.Activity{}, err
	}
	if related == nil {
		return entities.Activity{}, ErrInvalidRelatedType
	}
	a.Related = related
	return a, nil
}
