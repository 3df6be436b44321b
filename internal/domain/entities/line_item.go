package entities

import (
	"encoding/json"
	"strings"
)

// Tier is a quality level applied to catalog labor rates.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// ParseTier normalizes a tier string. Empty input is standard.
func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case "", TierStandard:
		return TierStandard, true
	case TierBasic:
		return TierBasic, true
	case TierPremium:
		return TierPremium, true
	}
	return TierStandard, false
}

// Multiplier returns the labor multiplier for the tier. Unknown tiers price as standard.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierBasic:
		return 0.9
	case TierPremium:
		return 1.15
	default:
		return 1.0
	}
}

// LineItem is one priced unit of work or material within an estimate or job.
//
// Wire compatibility:
//   - older records carry `price` instead of `unit_price`
//   - serviceId/materialCost may arrive camelCased from older clients
//   - serviceId, materialCost and tier may be missing entirely
type LineItem struct {
	Description  string   `json:"description"`
	Quantity     float64  `json:"quantity"`
	UnitPrice    float64  `json:"unit_price"`
	Unit         string   `json:"unit"`
	ServiceID    string   `json:"service_id,omitempty"`
	MaterialCost *float64 `json:"material_cost,omitempty"`
	Tier         Tier     `json:"tier,omitempty"`
	Total        *float64 `json:"total,omitempty"`
	Code         string   `json:"code,omitempty"`
}

// ManualTotal is quantity x unit price.
func (li LineItem) ManualTotal() float64 {
	return li.Quantity * li.UnitPrice
}

// MaterialCostValue returns the supplied material cost or zero.
func (li LineItem) MaterialCostValue() float64 {
	if li.MaterialCost == nil {
		return 0
	}
	return *li.MaterialCost
}

func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description     string   `json:"description"`
		Quantity        float64  `json:"quantity"`
		UnitPrice       *float64 `json:"unit_price"`
		Price           *float64 `json:"price"`
		Unit            string   `json:"unit"`
		ServiceID       string   `json:"service_id"`
		ServiceIDCamel  string   `json:"serviceId"`
		MaterialCost    *float64 `json:"material_cost"`
		MaterialCostCml *float64 `json:"materialCost"`
		Tier            string   `json:"tier"`
		Total           *float64 `json:"total"`
		Code            string   `json:"code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*li = LineItem{
		Description:  raw.Description,
		Quantity:     raw.Quantity,
		Unit:         raw.Unit,
		ServiceID:    strings.TrimSpace(raw.ServiceID),
		MaterialCost: raw.MaterialCost,
		Total:        raw.Total,
		Code:         raw.Code,
	}
	switch {
	case raw.UnitPrice != nil:
		li.UnitPrice = *raw.UnitPrice
	case raw.Price != nil:
		li.UnitPrice = *raw.Price
	}
	if li.ServiceID == "" {
		li.ServiceID = strings.TrimSpace(raw.ServiceIDCamel)
	}
	if li.MaterialCost == nil {
		li.MaterialCost = raw.MaterialCostCml
	}
	// Unknown tiers are kept verbatim so validation can report them.
	if tier, ok := ParseTier(raw.Tier); ok {
		li.Tier = tier
	} else {
		li.Tier = Tier(raw.Tier)
	}
	return nil
}
