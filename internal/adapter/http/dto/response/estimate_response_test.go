package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
)

func TestFromEstimateView(t *testing.T) {
	now := time.Now().UTC()
	mat := 12.5
	e := entities.Estimate{
		ID:             "est-1",
		EstimateNumber: "EST-00001",
		Recipient:      entities.LeadRecipient("l1"),
		Title:          "Fence",
		LineItems: []entities.LineItem{
			{Description: "Paint", Quantity: 2, UnitPrice: 100, Unit: "ea", ServiceID: "svc-1", MaterialCost: &mat, Tier: entities.TierPremium},
		},
		Total:     220,
		Status:    entities.EstimateStatusSent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromEstimateView(entities.EstimateView{Estimate: e, DisplayStatus: entities.DisplayStatusFollowUpPending})
	if res.ID != "est-1" || res.LeadID != "l1" || res.ClientID != "" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "sent" || res.DisplayStatus != "followup_pending" {
		t.Fatalf("unexpected statuses: %+v", res)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"serviceId":"svc-1"`, `"materialCost":12.5`, `"unit_price":100`, `"tier":"premium"`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("missing %s in %s", want, b)
		}
	}
	if strings.Contains(string(b), `"client_id"`) {
		t.Fatalf("client_id should be omitted for leads: %s", b)
	}
}

func TestFromEstimate_DefaultsDisplayStatus(t *testing.T) {
	sent := FromEstimate(entities.Estimate{ID: "e1", Status: entities.EstimateStatusSent})
	if sent.DisplayStatus != "sent_no_followup" {
		t.Fatalf("unexpected display status %q", sent.DisplayStatus)
	}

	accepted := FromEstimate(entities.Estimate{ID: "e2", Status: entities.EstimateStatusAccepted})
	if accepted.DisplayStatus != "accepted" {
		t.Fatalf("unexpected display status %q", accepted.DisplayStatus)
	}
}

func TestNewValidationResponse(t *testing.T) {
	ok := NewValidationResponse(nil)
	if !ok.Valid || ok.Errors == nil {
		t.Fatalf("unexpected response %+v", ok)
	}
	bad := NewValidationResponse([]string{"title is required"})
	if bad.Valid || len(bad.Errors) != 1 {
		t.Fatalf("unexpected response %+v", bad)
	}
}

func TestFromActivity(t *testing.T) {
	a := entities.Activity{
		ID:           "a1",
		ClientID:     "c1",
		ActivityType: entities.ActivityTask,
		Title:        "Follow up",
		Related:      entities.EstimateRef{EstimateID: "e1", EstimateNumber: "EST-00001"},
	}
	res := FromActivity(a)
	if !res.Pending || res.RelatedType != "estimate" || res.RelatedID != "e1" {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestFromPayment(t *testing.T) {
	p := entities.Payment{
		ID:                 "pay-1",
		JobID:              "job-1",
		Amount:             50,
		Method:             entities.PaymentMethodMercadoPago,
		ProviderPayloadRaw: json.RawMessage(`{"id":"1"}`),
	}
	res := FromPayment(p)
	if res.Method != "mercadopago" || res.MPPayloadRaw != `{"id":"1"}` {
		t.Fatalf("unexpected response %+v", res)
	}
}
