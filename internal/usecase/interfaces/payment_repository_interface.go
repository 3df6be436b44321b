package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for job payments.
//
//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/mock_payment_repository.go -package=mock_interfaces
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error)
}
