package entities

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLineItem_UnmarshalLegacyShapes(t *testing.T) {
	var legacy LineItem
	if err := json.Unmarshal([]byte(`{"description":"Paint fence","quantity":2,"price":100,"unit":"ea"}`), &legacy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if legacy.UnitPrice != 100 || legacy.Tier != TierStandard || legacy.ServiceID != "" || legacy.MaterialCost != nil {
		t.Fatalf("unexpected legacy decode: %+v", legacy)
	}

	var camel LineItem
	if err := json.Unmarshal([]byte(`{"description":"Mow","quantity":1,"unit_price":40,"price":99,"serviceId":"svc-1","materialCost":12.5,"tier":"Premium"}`), &camel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if camel.UnitPrice != 40 {
		t.Fatalf("unit_price must win over price, got %v", camel.UnitPrice)
	}
	if camel.ServiceID != "svc-1" || camel.MaterialCostValue() != 12.5 || camel.Tier != TierPremium {
		t.Fatalf("unexpected camel decode: %+v", camel)
	}

	var unknown LineItem
	if err := json.Unmarshal([]byte(`{"tier":"gold"}`), &unknown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown.Tier != Tier("gold") {
		t.Fatalf("expected unknown tier kept, got %q", unknown.Tier)
	}

	out, err := json.Marshal(camel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), `"unit_price":40`) || !strings.Contains(string(out), `"service_id":"svc-1"`) {
		t.Fatalf("unexpected wire shape: %s", out)
	}
}

func TestNewRecipient(t *testing.T) {
	r, err := NewRecipient(" c-1 ", "")
	if err != nil || !r.IsClient() || r.ClientID() != "c-1" || r.LeadID() != "" {
		t.Fatalf("unexpected client recipient: %+v %v", r, err)
	}
	r, err = NewRecipient("", "l-1")
	if err != nil || r.Kind != RecipientLead || r.LeadID() != "l-1" || r.ClientID() != "" {
		t.Fatalf("unexpected lead recipient: %+v %v", r, err)
	}
	if _, err := NewRecipient("", "  "); !errors.Is(err, ErrRecipientMissing) {
		t.Fatalf("expected ErrRecipientMissing, got %v", err)
	}
	if _, err := NewRecipient("c-1", "l-1"); !errors.Is(err, ErrRecipientAmbiguous) {
		t.Fatalf("expected ErrRecipientAmbiguous, got %v", err)
	}
}

func TestDecodeRelated(t *testing.T) {
	rel, err := DecodeRelated(RelatedEstimate, "est-1", []byte(`{"amount":220,"reason":"price too high"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref, ok := rel.(EstimateRef)
	if !ok || ref.EstimateID != "est-1" || ref.Amount != 220 || ref.Reason != "price too high" {
		t.Fatalf("unexpected related: %#v", rel)
	}

	rel, err = DecodeRelated(RelatedPayment, "pay-1", nil)
	if err != nil || rel.RelatedID() != "pay-1" || rel.RelatedType() != RelatedPayment {
		t.Fatalf("unexpected related: %#v %v", rel, err)
	}

	if rel, _ := DecodeRelated(RelatedType("invoice"), "x", nil); rel != nil {
		t.Fatalf("expected nil for unknown type, got %#v", rel)
	}
}

func TestActivity_MarshalJSON(t *testing.T) {
	a := Activity{
		ID:           "act-1",
		ClientID:     "c-1",
		ActivityType: ActivityEstimateDeclined,
		Title:        "Estimate declined",
		Related:      EstimateRef{EstimateID: "est-1", Reason: "price too high"},
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(b, &body)
	if body["related_type"] != "estimate" || body["related_id"] != "est-1" {
		t.Fatalf("unexpected body: %s", b)
	}
	related, _ := body["related"].(map[string]any)
	if related["reason"] != "price too high" {
		t.Fatalf("unexpected related payload: %s", b)
	}
}

func TestActivity_IsPending(t *testing.T) {
	task := Activity{ActivityType: ActivityTask}
	if !task.IsPending() {
		t.Fatalf("open task must be pending")
	}
	note := Activity{ActivityType: ActivityNote}
	if note.IsPending() {
		t.Fatalf("notes are never pending")
	}
}
