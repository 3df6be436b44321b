package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase/interfaces"
)

var (
	ErrNoPricebookItems    = errors.New("at least one line item is required")
	ErrInvalidPricebookRef = errors.New("line item is missing a pricebook reference")
)

// PricebookRecorder observes pricebook calculations. Metrics implement it.
type PricebookRecorder interface {
	ObservePricebookCalculation(appliedMinimum bool)
}

// IPricebookUseCase prices line items against the catalog.
type IPricebookUseCase interface {
	Calculate(ctx context.Context, items []pricing.PricebookItem) (pricing.PricebookResult, error)
	ListCatalog(ctx context.Context) ([]entities.CatalogEntry, error)
}

type PricebookUseCase struct {
	catalog    interfaces.ICatalogRepository
	calculator pricing.Calculator
	recorder   PricebookRecorder
}

var _ IPricebookUseCase = (*PricebookUseCase)(nil)

func NewPricebookUseCase(catalog interfaces.ICatalogRepository, calculator pricing.Calculator, recorder PricebookRecorder) *PricebookUseCase {
	return &PricebookUseCase{catalog: catalog, calculator: calculator, recorder: recorder}
}

// Calculate loads the referenced catalog entries and runs the calculator.
// Inactive entries are treated as unknown.
func (u *PricebookUseCase) Calculate(ctx context.Context, items []pricing.PricebookItem) (pricing.PricebookResult, error) {
	if len(items) == 0 {
		return pricing.PricebookResult{}, ErrNoPricebookItems
	}

	// Trimmed ids go on a copy; the caller's slice is left as passed.
	items = append([]pricing.PricebookItem(nil), items...)
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		items[i].CatalogID = strings.TrimSpace(items[i].CatalogID)
		if items[i].CatalogID == "" {
			return pricing.PricebookResult{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidPricebookRef)
		}
		if _, ok := seen[items[i].CatalogID]; ok {
			continue
		}
		seen[items[i].CatalogID] = struct{}{}
		ids = append(ids, items[i].CatalogID)
	}

	entries, err := u.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return pricing.PricebookResult{}, err
	}
	for id, entry := range entries {
		if !entry.Active {
			delete(entries, id)
		}
	}

	res, err := u.calculator.Calculate(items, entries)
	if err != nil {
		return pricing.PricebookResult{}, err
	}
	if u.recorder != nil {
		u.recorder.ObservePricebookCalculation(res.AppliedMinimum)
	}
	return res, nil
}

func (u *PricebookUseCase) ListCatalog(ctx context.Context) ([]entities.CatalogEntry, error) {
	return u.catalog.List(ctx)
}
