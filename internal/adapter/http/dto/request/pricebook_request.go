package request

import (
	"errors"
	"fmt"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
)

var (
	ErrEmptyPricebookRequest = errors.New("lineItems must not be empty")
	ErrInvalidTier           = errors.New("tier must be basic, standard or premium")
	ErrMissingCatalogID      = errors.New("every line item needs a catalog id")
)

// PricebookRequest is the body of POST /api/estimate/pricebook.
type PricebookRequest struct {
	LineItems []PricebookLineRequest `json:"lineItems"`
}

type PricebookLineRequest struct {
	ID           string  `json:"id"`
	Quantity     float64 `json:"quantity"`
	MaterialCost float64 `json:"materialCost"`
	Tier         string  `json:"tier"`
}

func (r PricebookRequest) ToItems() ([]pricing.PricebookItem, error) {
	if len(r.LineItems) == 0 {
		return nil, ErrEmptyPricebookRequest
	}
	items := make([]pricing.PricebookItem, 0, len(r.LineItems))
	for i, li := range r.LineItems {
		id := strings.TrimSpace(li.ID)
		if id == "" {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrMissingCatalogID)
		}
		tier, ok := entities.ParseTier(li.Tier)
		if !ok {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrInvalidTier)
		}
		items = append(items, pricing.PricebookItem{
			CatalogID:    id,
			Quantity:     li.Quantity,
			MaterialCost: li.MaterialCost,
			Tier:         tier,
		})
	}
	return items, nil
}
