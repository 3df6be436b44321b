package entities

// CatalogEntry is a pricebook service code with its baseline rates.
//
// Storage model (DynamoDB):
//   - PK: id
type CatalogEntry struct {
	ID           string  `json:"id" yaml:"id"`
	Code         string  `json:"code" yaml:"code"`
	Name         string  `json:"name" yaml:"name"`
	Category     string  `json:"category,omitempty" yaml:"category"`
	Unit         string  `json:"unit,omitempty" yaml:"unit"`
	LaborRate    float64 `json:"labor_rate" yaml:"labor_rate"`
	MaterialRate float64 `json:"material_rate" yaml:"material_rate"`
	Active       bool    `json:"active" yaml:"active"`
}
