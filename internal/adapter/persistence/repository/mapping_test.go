package repository

import (
	"testing"
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestFromEstimateItem_LegacyLineItems(t *testing.T) {
	raw := map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: "e1"},
		"client_id": &types.AttributeValueMemberS{Value: "c1"},
		"status":    &types.AttributeValueMemberS{Value: "sent"},
		"total":     &types.AttributeValueMemberS{Value: "220"},
		"line_items": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"description": &types.AttributeValueMemberS{Value: "Paint"},
				"quantity":    &types.AttributeValueMemberS{Value: "2"},
				"price":       &types.AttributeValueMemberS{Value: "100"},
			}},
		}},
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := fromEstimateItem(it)

	if !e.Recipient.IsClient() || e.Recipient.ClientID() != "c1" {
		t.Fatalf("unexpected recipient: %+v", e.Recipient)
	}
	if e.PricingMode != entities.PricingModeManual {
		t.Fatalf("expected manual default, got %q", e.PricingMode)
	}
	if len(e.LineItems) != 1 || e.LineItems[0].UnitPrice != 100 || e.LineItems[0].Quantity != 2 {
		t.Fatalf("unexpected line items: %+v", e.LineItems)
	}
	if e.SentDate != nil {
		t.Fatalf("expected no sent date")
	}
}

func TestEstimateItem_LeadAndDates(t *testing.T) {
	sent := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	e := entities.Estimate{
		ID:             "e1",
		EstimateNumber: "EST-00007",
		Title:          "Fence Repair",
		Recipient:      entities.LeadRecipient("l1"),
		Status:         entities.EstimateStatusSent,
		SentDate:       &sent,
	}

	it := toEstimateItem(e)
	if it.ClientID != "" || it.LeadID != "l1" {
		t.Fatalf("unexpected owner attrs: %+v", it)
	}
	if it.SearchText != "est-00007 fence repair" {
		t.Fatalf("unexpected search text %q", it.SearchText)
	}

	back := fromEstimateItem(it)
	if back.Recipient.LeadID() != "l1" || back.SentDate == nil || !back.SentDate.Equal(sent) {
		t.Fatalf("unexpected estimate: %+v", back)
	}
}

func TestActivityItem_Related(t *testing.T) {
	a := entities.Activity{
		ID:           "a1",
		ClientID:     "c1",
		ActivityType: entities.ActivityEstimateDeclined,
		Title:        "Declined",
		Related:      entities.EstimateRef{EstimateID: "e1", Amount: 500, Reason: "price too high"},
	}
	it, err := toActivityItem(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.RelatedType != "estimate" || it.RelatedID != "e1" {
		t.Fatalf("unexpected related attrs: %+v", it)
	}

	back := fromActivityItem(it)
	ref, ok := back.Related.(entities.EstimateRef)
	if !ok || ref.Reason != "price too high" || ref.Amount != 500 {
		t.Fatalf("unexpected related: %#v", back.Related)
	}
}
