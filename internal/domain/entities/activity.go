package entities

import (
	"encoding/json"
	"time"
)

// ActivityType classifies a client activity.
type ActivityType string

const (
	ActivityJobCreated       ActivityType = "job_created"
	ActivityJobScheduled     ActivityType = "job_scheduled"
	ActivityJobStarted       ActivityType = "job_started"
	ActivityJobCompleted     ActivityType = "job_completed"
	ActivityJobCancelled     ActivityType = "job_cancelled"
	ActivityEstimateCreated  ActivityType = "estimate_created"
	ActivityEstimateSent     ActivityType = "estimate_sent"
	ActivityEstimateViewed   ActivityType = "estimate_viewed"
	ActivityEstimateAccepted ActivityType = "estimate_accepted"
	ActivityEstimateDeclined ActivityType = "estimate_declined"
	ActivityEstimateExpired  ActivityType = "estimate_expired"
	ActivityPaymentReceived  ActivityType = "payment_received"
	ActivityPropertyAdded    ActivityType = "property_added"
	ActivityEmailSent        ActivityType = "email_sent"
	ActivityEmailReceived    ActivityType = "email_received"
	ActivityCall             ActivityType = "call"
	ActivityTask             ActivityType = "task"
	ActivityNote             ActivityType = "note"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityJobCreated, ActivityJobScheduled, ActivityJobStarted, ActivityJobCompleted, ActivityJobCancelled,
		ActivityEstimateCreated, ActivityEstimateSent, ActivityEstimateViewed, ActivityEstimateAccepted,
		ActivityEstimateDeclined, ActivityEstimateExpired, ActivityPaymentReceived, ActivityPropertyAdded,
		ActivityEmailSent, ActivityEmailReceived, ActivityCall, ActivityTask, ActivityNote:
		return true
	}
	return false
}

// Task metadata keys and task types written by the follow-up generator.
const (
	MetaTaskType   = "task_type"
	MetaEstimateID = "estimate_id"
	MetaJobID      = "job_id"

	TaskTypeEstimateFollowUp    = "estimate_followup"
	TaskTypeJobFollowUpCall     = "job_followup_call"
	TaskTypeSatisfactionSurvey  = "satisfaction_survey"
	TaskTypeMaintenanceReminder = "maintenance_reminder"
)

// Activity is an audit/workflow record attached to a client (or lead).
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (client_id-index): client_id
type Activity struct {
	ID           string            `json:"id"`
	ClientID     string            `json:"client_id,omitempty"`
	LeadID       string            `json:"lead_id,omitempty"`
	ActivityType ActivityType      `json:"activity_type"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Related      Related           `json:"-"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (a Activity) IsTask() bool { return a.ActivityType == ActivityTask }

// IsPending reports whether a task activity is still open.
func (a Activity) IsPending() bool { return a.IsTask() && a.CompletedAt == nil }

// ForRecipient sets the owner fields from an estimate recipient.
func (a *Activity) ForRecipient(r Recipient) {
	a.ClientID = r.ClientID()
	a.LeadID = r.LeadID()
}

func (a Activity) MarshalJSON() ([]byte, error) {
	type plain Activity
	out := struct {
		plain
		RelatedType RelatedType `json:"related_type,omitempty"`
		RelatedID   string      `json:"related_id,omitempty"`
		RelatedData Related     `json:"related,omitempty"`
	}{plain: plain(a)}
	if a.Related != nil {
		out.RelatedType = a.Related.RelatedType()
		out.RelatedID = a.Related.RelatedID()
		out.RelatedData = a.Related
	}
	return json.Marshal(out)
}

// RelatedType names the entity an activity refers to.
type RelatedType string

const (
	RelatedEstimate RelatedType = "estimate"
	RelatedJob      RelatedType = "job"
	RelatedPayment  RelatedType = "payment"
	RelatedProperty RelatedType = "property"
	RelatedEmail    RelatedType = "email"
)

// Related is the typed reference an activity carries. The concrete types below
// are the only implementations.
type Related interface {
	RelatedType() RelatedType
	RelatedID() string
	isRelated()
}

type EstimateRef struct {
	EstimateID     string  `json:"estimate_id"`
	EstimateNumber string  `json:"estimate_number,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

type JobRef struct {
	JobID     string `json:"job_id"`
	JobNumber string `json:"job_number,omitempty"`
	Status    string `json:"status,omitempty"`
}

type PaymentRef struct {
	PaymentID string  `json:"payment_id"`
	JobID     string  `json:"job_id,omitempty"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
}

type PropertyRef struct {
	PropertyID string `json:"property_id"`
	Address    string `json:"address,omitempty"`
}

type EmailRef struct {
	EmailID string `json:"email_id"`
	Subject string `json:"subject,omitempty"`
}

func (r EstimateRef) RelatedType() RelatedType { return RelatedEstimate }
func (r EstimateRef) RelatedID() string        { return r.EstimateID }
func (EstimateRef) isRelated()                 {}

func (r JobRef) RelatedType() RelatedType { return RelatedJob }
func (r JobRef) RelatedID() string        { return r.JobID }
func (JobRef) isRelated()                 {}

func (r PaymentRef) RelatedType() RelatedType { return RelatedPayment }
func (r PaymentRef) RelatedID() string        { return r.PaymentID }
func (PaymentRef) isRelated()                 {}

func (r PropertyRef) RelatedType() RelatedType { return RelatedProperty }
func (r PropertyRef) RelatedID() string        { return r.PropertyID }
func (PropertyRef) isRelated()                 {}

func (r EmailRef) RelatedType() RelatedType { return RelatedEmail }
func (r EmailRef) RelatedID() string        { return r.EmailID }
func (EmailRef) isRelated()                 {}

// DecodeRelated rebuilds a Related from its stored type, id and JSON payload.
// Unknown types and missing ids yield nil.
func DecodeRelated(t RelatedType, id string, payload []byte) (Related, error) {
	if id == "" {
		return nil, nil
	}
	decode := func(v any) error {
		if len(payload) == 0 {
			return nil
		}
		return json.Unmarshal(payload, v)
	}
	switch t {
	case RelatedEstimate:
		var r EstimateRef
		err := decode(&r)
		r.EstimateID = id
		return r, err
	case RelatedJob:
		var r JobRef
		err := decode(&r)
		r.JobID = id
		return r, err
	case RelatedPayment:
		var r PaymentRef
		err := decode(&r)
		r.PaymentID = id
		return r, err
	case RelatedProperty:
		var r PropertyRef
		err := decode(&r)
		r.PropertyID = id
		return r, err
	case RelatedEmail:
		var r EmailRef
		err := decode(&r)
		r.EmailID = id
		return r, err
	}
	return nil, nil
}
