// Package pricing turns estimate line items into totals.
//
// Two valuation paths exist: the manual path (quantity x unit price, tax, discount)
// and the pricebook path (catalog rates, tier multipliers, minimum charge). Resolve
// picks exactly one of them for a set of line items.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"fieldservice/internal/domain/entities"
)

// DefaultMinimumCharge is the floor applied to a pricebook aggregate.
const DefaultMinimumCharge = 150.0

var (
	ErrUnknownCatalogEntry = errors.New("unknown pricebook entry")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrNegativeMaterial    = errors.New("material cost cannot be negative")
)

// PricebookItem is one input line for the pricebook calculator.
type PricebookItem struct {
	CatalogID    string
	Quantity     float64
	MaterialCost float64
	Tier         entities.Tier
}

// PricedLine is the per-line result of a pricebook calculation.
type PricedLine struct {
	CatalogID        string  `json:"id"`
	Code             string  `json:"code"`
	LaborPortion     float64 `json:"laborPortion"`
	MaterialsPortion float64 `json:"materialsPortion"`
	LineTotal        float64 `json:"lineTotal"`
}

// PricebookResult is the output of Calculator.Calculate.
type PricebookResult struct {
	Subtotal       float64      `json:"subtotal"`
	AdjustedTotal  float64      `json:"adjustedTotal"`
	AppliedMinimum bool         `json:"appliedMinimum"`
	LineItems      []PricedLine `json:"lineItems"`
}

// Calculator prices line items against a catalog. It holds no mutable state;
// the same inputs always give the same result.
type Calculator struct {
	minimumCharge float64
}

func NewCalculator(minimumCharge float64) Calculator {
	if minimumCharge < 0 {
		minimumCharge = 0
	}
	return Calculator{minimumCharge: minimumCharge}
}

func (c Calculator) MinimumCharge() float64 { return c.minimumCharge }

// Calculate prices items against catalog, keyed by catalog id.
func (c Calculator) Calculate(items []PricebookItem, catalog map[string]entities.CatalogEntry) (PricebookResult, error) {
	res := PricebookResult{LineItems: make([]PricedLine, 0, len(items))}

	// aggregate is the unrounded sum; the minimum check uses it, the displayed
	// portions and subtotal are in cents.
	var subtotal, aggregate float64
	for i, it := range items {
		entry, ok := catalog[it.CatalogID]
		if !ok {
			return PricebookResult{}, fmt.Errorf("line %d: %w: %q", i+1, ErrUnknownCatalogEntry, it.CatalogID)
		}
		if it.Quantity <= 0 {
			return PricebookResult{}, fmt.Errorf("line %d: %w", i+1, ErrInvalidQuantity)
		}
		if it.MaterialCost < 0 {
			return PricebookResult{}, fmt.Errorf("line %d: %w", i+1, ErrNegativeMaterial)
		}

		rawLabor := entry.LaborRate * it.Tier.Multiplier() * it.Quantity
		rawMaterials := (entry.MaterialRate + it.MaterialCost) * it.Quantity
		aggregate += rawLabor + rawMaterials
		labor := Round2(rawLabor)
		materials := Round2(rawMaterials)
		line := PricedLine{
			CatalogID:        entry.ID,
			Code:             entry.Code,
			LaborPortion:     labor,
			MaterialsPortion: materials,
			LineTotal:        Round2(labor + materials),
		}
		subtotal += line.LineTotal
		res.LineItems = append(res.LineItems, line)
	}

	res.Subtotal = Round2(subtotal)
	res.AdjustedTotal = res.Subtotal
	if aggregate < c.minimumCharge {
		res.AdjustedTotal = c.minimumCharge
		res.AppliedMinimum = true
	}
	return res, nil
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
