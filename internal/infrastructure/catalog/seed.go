package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Services []seedEntry `yaml:"services"`
}

type seedEntry struct {
	ID           string  `yaml:"id"`
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	Unit         string  `yaml:"unit"`
	LaborRate    float64 `yaml:"labor_rate"`
	MaterialRate float64 `yaml:"material_rate"`
	// Active defaults to true when omitted.
	Active *bool `yaml:"active"`
}

// LoadSeedFile reads pricebook entries from a YAML file of the form
//
//	services:
//	  - id: svc-mow
//	    code: MOW
//	    name: Lawn mowing
//	    labor_rate: 45
//	    material_rate: 0
func LoadSeedFile(path string) ([]entities.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]entities.CatalogEntry, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pricebook seed: %w", err)
	}

	seen := make(map[string]bool, len(f.Services))
	out := make([]entities.CatalogEntry, 0, len(f.Services))
	for i, s := range f.Services {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("pricebook seed entry %d: id is required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("pricebook seed entry %d: duplicate id %q", i, id)
		}
		if s.LaborRate < 0 || s.MaterialRate < 0 {
			return nil, fmt.Errorf("pricebook seed entry %q: rates must be non-negative", id)
		}
		seen[id] = true

		code := strings.TrimSpace(s.Code)
		if code == "" {
			code = strings.ToUpper(id)
		}
		out = append(out, entities.CatalogEntry{
			ID:           id,
			Code:         code,
			Name:         s.Name,
			Category:     s.Category,
			Unit:         s.Unit,
			LaborRate:    s.LaborRate,
			MaterialRate: s.MaterialRate,
			Active:       s.Active == nil || *s.Active,
		})
	}
	return out, nil
}

// Seed upserts entries into the pricebook and returns how many were written.
func Seed(ctx context.Context, repo interfaces.ICatalogRepository, entries []entities.CatalogEntry) (int, error) {
	for i, e := range entries {
		if err := repo.Put(ctx, e); err != nil {
			return i, fmt.Errorf("seed pricebook entry %s: %w", e.ID, err)
		}
	}
	log.Printf("[pricebook][seed] seeded entries=%d", len(entries))
	return len(entries), nil
}
