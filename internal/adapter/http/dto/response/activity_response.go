package response

import (
	"time"

	"fieldservice/internal/domain/entities"
)

type ActivityResponse struct {
	ID           string            `json:"id"`
	ClientID     string            `json:"client_id,omitempty"`
	LeadID       string            `json:"lead_id,omitempty"`
	ActivityType string            `json:"activity_type"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	RelatedType  string            `json:"related_type,omitempty"`
	RelatedID    string            `json:"related_id,omitempty"`
	Related      entities.Related  `json:"related,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	Pending      bool              `json:"pending"`
	CreatedAt    time.Time         `json:"created_at"`
}

func FromActivity(a entities.Activity) ActivityResponse {
	out := ActivityResponse{
		ID:           a.ID,
		ClientID:     a.ClientID,
		LeadID:       a.LeadID,
		ActivityType: string(a.ActivityType),
		Title:        a.Title,
		Description:  a.Description,
		Metadata:     a.Metadata,
		DueDate:      a.DueDate,
		CompletedAt:  a.CompletedAt,
		Pending:      a.IsPending(),
		CreatedAt:    a.CreatedAt,
	}
	if a.Related != nil {
		out.RelatedType = string(a.Related.RelatedType())
		out.RelatedID = a.Related.RelatedID()
		out.Related = a.Related
	}
	return out
}

func FromActivities(activities []entities.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, FromActivity(a))
	}
	return out
}
