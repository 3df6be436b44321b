package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
	mock_interfaces "fieldservice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type outcomeSpy struct{ outcomes []string }

func (s *outcomeSpy) ObserveReview(outcome string) { s.outcomes = append(s.outcomes, outcome) }

func (s *outcomeSpy) ObservePricebookCalculation(appliedMinimum bool) {
	if appliedMinimum {
		s.outcomes = append(s.outcomes, "minimum")
		return
	}
	s.outcomes = append(s.outcomes, "subtotal")
}

func TestValidateEstimateDraft(t *testing.T) {
	past := fixedNow.Add(-time.Hour)
	neg := -1.0
	tests := []struct {
		name   string
		mutate func(d *entities.EstimateDraft)
		want   string
	}{
		{name: "valid", mutate: func(*entities.EstimateDraft) {}},
		{name: "missing recipient", mutate: func(d *entities.EstimateDraft) { d.Recipient = entities.Recipient{} }, want: "a client or a lead"},
		{name: "no line items", mutate: func(d *entities.EstimateDraft) { d.LineItems = nil }, want: "at least one line item"},
		{name: "zero quantity", mutate: func(d *entities.EstimateDraft) { d.LineItems[0].Quantity = 0 }, want: "quantity"},
		{name: "negative price", mutate: func(d *entities.EstimateDraft) { d.LineItems[0].UnitPrice = -5 }, want: "unit price"},
		{name: "negative material", mutate: func(d *entities.EstimateDraft) { d.LineItems[0].MaterialCost = &neg }, want: "material cost"},
		{name: "unknown tier", mutate: func(d *entities.EstimateDraft) { d.LineItems[0].Tier = "gold" }, want: "unknown tier"},
		{name: "tax out of range", mutate: func(d *entities.EstimateDraft) { d.TaxRate = 101 }, want: "tax rate"},
		{name: "discount above subtotal", mutate: func(d *entities.EstimateDraft) { d.DiscountAmount = 500 }, want: "exceed"},
		{name: "past valid until", mutate: func(d *entities.EstimateDraft) { d.ValidUntil = &past }, want: "in the past"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := manualDraft()
			tt.mutate(&d)
			errs := ValidateEstimateDraft(d, fixedNow)
			if tt.want == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			for _, e := range errs {
				if strings.Contains(e, tt.want) {
					return
				}
			}
			t.Fatalf("expected an error containing %q, got %v", tt.want, errs)
		})
	}
}

var manualDraftTotals = pricing.Totals{Subtotal: 200, TaxAmount: 20, Total: 220, Mode: entities.PricingModeManual}

func TestReviewUseCase_Review(t *testing.T) {
	t.Run("no reviewer configured", func(t *testing.T) {
		spy := &outcomeSpy{}
		uc := NewReviewUseCase(nil, nil, spy)
		_, err := uc.Review(context.Background(), manualDraft())
		if !errors.Is(err, ErrReviewUnavailable) {
			t.Fatalf("expected ErrReviewUnavailable, got %v", err)
		}
		if len(spy.outcomes) != 1 || spy.outcomes[0] != "unavailable" {
			t.Fatalf("unexpected outcomes %v", spy.outcomes)
		}
	})

	t.Run("invalid drafts are not sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reviewer := mock_interfaces.NewMockIEstimateReviewer(ctrl)
		uc := NewReviewUseCase(reviewer, nil, nil)
		d := manualDraft()
		d.Title = ""

		_, err := uc.Review(context.Background(), d)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reviewer := mock_interfaces.NewMockIEstimateReviewer(ctrl)
		uc := NewReviewUseCase(reviewer, nil, nil)
		reviewer.EXPECT().Review(gomock.Any(), gomock.Any(), manualDraftTotals).Return(entities.EstimateReview{}, errors.New("timeout"))

		_, err := uc.Review(context.Background(), manualDraft())
		if !errors.Is(err, ErrReviewFailed) {
			t.Fatalf("expected ErrReviewFailed, got %v", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reviewer := mock_interfaces.NewMockIEstimateReviewer(ctrl)
		spy := &outcomeSpy{}
		uc := NewReviewUseCase(reviewer, nil, spy)
		reviewer.EXPECT().Review(gomock.Any(), gomock.Any(), manualDraftTotals).Return(entities.EstimateReview{
			OverallAssessment: "Looks fair",
			PricingAnalysis:   entities.PricingAnalysis{IsCompetitive: true},
		}, nil)

		got, err := uc.Review(context.Background(), manualDraft())
		if err != nil || got.OverallAssessment != "Looks fair" || !got.PricingAnalysis.IsCompetitive {
			t.Fatalf("unexpected review %+v err=%v", got, err)
		}
		if spy.outcomes[0] != "ok" {
			t.Fatalf("unexpected outcomes %v", spy.outcomes)
		}
	})

	t.Run("pricebook draft is reviewed at catalog prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reviewer := mock_interfaces.NewMockIEstimateReviewer(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		pricebook := NewPricebookUseCase(catalog, pricing.NewCalculator(pricing.DefaultMinimumCharge), nil)
		uc := NewReviewUseCase(reviewer, pricebook, nil)

		catalog.EXPECT().GetByIDs(gomock.Any(), []string{"svc-1"}).Return(map[string]entities.CatalogEntry{
			"svc-1": {ID: "svc-1", Code: "PAINT", LaborRate: 100, Active: true},
		}, nil)
		reviewer.EXPECT().Review(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d entities.EstimateDraft, totals pricing.Totals) (entities.EstimateReview, error) {
				if totals.Mode != entities.PricingModePricebook || totals.Subtotal != 200 || totals.Total != 200 {
					t.Fatalf("unexpected totals: %+v", totals)
				}
				if d.LineItems[0].Total == nil || *d.LineItems[0].Total != 200 || d.LineItems[0].Code != "PAINT" {
					t.Fatalf("line total not resolved: %+v", d.LineItems[0])
				}
				return entities.EstimateReview{OverallAssessment: "ok"}, nil
			},
		)

		d := manualDraft()
		d.LineItems = []entities.LineItem{{Description: "Paint", Quantity: 2, ServiceID: "svc-1"}}
		if _, err := uc.Review(context.Background(), d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.LineItems[0].Total != nil {
			t.Fatal("caller draft was modified")
		}
	})

	t.Run("unknown catalog entry is not sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reviewer := mock_interfaces.NewMockIEstimateReviewer(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		pricebook := NewPricebookUseCase(catalog, pricing.NewCalculator(pricing.DefaultMinimumCharge), nil)
		uc := NewReviewUseCase(reviewer, pricebook, nil)

		catalog.EXPECT().GetByIDs(gomock.Any(), []string{"svc-9"}).Return(map[string]entities.CatalogEntry{}, nil)

		d := manualDraft()
		d.LineItems = []entities.LineItem{{Description: "Paint", Quantity: 1, ServiceID: "svc-9"}}
		if _, err := uc.Review(context.Background(), d); !errors.Is(err, pricing.ErrUnknownCatalogEntry) {
			t.Fatalf("expected ErrUnknownCatalogEntry, got %v", err)
		}
	})
}
