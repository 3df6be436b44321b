package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IJobRepository abstracts DynamoDB persistence for Job.
//
//go:generate mockgen -source=job_repository_interface.go -destination=mocks/mock_job_repository.go -package=mock_interfaces
type IJobRepository interface {
	Create(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	Save(ctx context.Context, j entities.Job) (entities.Job, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.Job, error)
}
