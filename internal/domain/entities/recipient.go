package entities

import (
	"errors"
	"strings"
)

var (
	ErrRecipientMissing   = errors.New("a client or a lead must be selected")
	ErrRecipientAmbiguous = errors.New("select either a client or a lead, not both")
)

type RecipientKind string

const (
	RecipientClient RecipientKind = "client"
	RecipientLead   RecipientKind = "lead"
)

// Recipient is the party an estimate is addressed to: exactly one client or one lead.
type Recipient struct {
	Kind RecipientKind `json:"kind"`
	ID   string        `json:"id"`
}

func ClientRecipient(id string) Recipient { return Recipient{Kind: RecipientClient, ID: id} }
func LeadRecipient(id string) Recipient   { return Recipient{Kind: RecipientLead, ID: id} }

// NewRecipient builds a Recipient from the two nullable wire fields.
func NewRecipient(clientID, leadID string) (Recipient, error) {
	clientID = strings.TrimSpace(clientID)
	leadID = strings.TrimSpace(leadID)
	switch {
	case clientID != "" && leadID != "":
		return Recipient{}, ErrRecipientAmbiguous
	case clientID != "":
		return ClientRecipient(clientID), nil
	case leadID != "":
		return LeadRecipient(leadID), nil
	}
	return Recipient{}, ErrRecipientMissing
}

func (r Recipient) IsZero() bool { return r.ID == "" }

func (r Recipient) IsClient() bool { return r.Kind == RecipientClient && r.ID != "" }

// ClientID returns the id when the recipient is a client, else "".
func (r Recipient) ClientID() string {
	if r.Kind == RecipientClient {
		return r.ID
	}
	return ""
}

// LeadID returns the id when the recipient is a lead, else "".
func (r Recipient) LeadID() string {
	if r.Kind == RecipientLead {
		return r.ID
	}
	return ""
}
