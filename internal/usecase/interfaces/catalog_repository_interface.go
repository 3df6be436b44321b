package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// ICatalogRepository reads pricebook entries. GetByIDs omits ids it cannot find.
//
//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/mock_catalog_repository.go -package=mock_interfaces
type ICatalogRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]entities.CatalogEntry, error)
	List(ctx context.Context) ([]entities.CatalogEntry, error)
	Put(ctx context.Context, entry entities.CatalogEntry) error
}
