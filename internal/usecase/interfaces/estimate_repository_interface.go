package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Lookups return a zero Estimate (empty ID) when nothing matches.
// Save replaces an existing item and returns a zero Estimate when it does not exist.
//
//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/mock_estimate_repository.go -package=mock_interfaces
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]entities.Estimate, error)
	Search(ctx context.Context, query string) ([]entities.Estimate, error)
	ListByStatus(ctx context.Context, statuses ...entities.EstimateStatus) ([]entities.Estimate, error)
}

// ISequenceRepository hands out monotonically increasing numbers per name.
type ISequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
