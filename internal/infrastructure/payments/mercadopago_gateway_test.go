package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fieldservice/internal/infrastructure/config"
)

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoGateway(config.PaymentConfig{})
	if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_MockCreate(t *testing.T) {
	g, err := NewMercadoPagoGateway(config.PaymentConfig{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	t.Run("echoes payload and approves", func(t *testing.T) {
		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":120,"external_reference":"job-1"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != "approved" || id == "" {
			t.Fatalf("unexpected result id=%q status=%q", id, status)
		}

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if body["external_reference"] != "job-1" || body["status_detail"] != "accredited" {
			t.Fatalf("unexpected body: %v", body)
		}
		if body["date_approved"] != fixed.Format(time.RFC3339Nano) {
			t.Fatalf("unexpected date_approved: %v", body["date_approved"])
		}
	})

	t.Run("keeps non-json payload raw", func(t *testing.T) {
		_, _, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`not-json`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if body["request_payload_raw"] != "not-json" {
			t.Fatalf("expected raw payload, got %v", body)
		}
	})
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, _, _, err := g.CreatePayment(context.Background(), nil); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}
