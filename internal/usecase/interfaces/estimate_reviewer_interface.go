package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
)

// IEstimateReviewer is the AI text-generation service that critiques a draft estimate.
// Line items arrive with their computed totals set and totals is the resolved valuation.
//
//go:generate mockgen -source=estimate_reviewer_interface.go -destination=mocks/mock_estimate_reviewer.go -package=mock_interfaces
type IEstimateReviewer interface {
	Review(ctx context.Context, draft entities.EstimateDraft, totals pricing.Totals) (entities.EstimateReview, error)
}
