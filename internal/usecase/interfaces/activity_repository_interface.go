package interfaces

import (
	"context"
	"time"

	"fieldservice/internal/domain/entities"
)

// IActivityRepository abstracts DynamoDB persistence for client activities.
//
//go:generate mockgen -source=activity_repository_interface.go -destination=mocks/mock_activity_repository.go -package=mock_interfaces
type IActivityRepository interface {
	Create(ctx context.Context, a entities.Activity) (entities.Activity, error)
	GetByID(ctx context.Context, id string) (entities.Activity, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.Activity, error)
	ListPendingTasks(ctx context.Context) ([]entities.Activity, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) (entities.Activity, error)
	Delete(ctx context.Context, id string) (bool, error)
}
