package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fieldservice/internal/domain/entities"
	mock_interfaces "fieldservice/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sampleSeed = `
services:
  - id: svc-mow
    code: MOW
    name: Lawn mowing
    category: lawn
    unit: visit
    labor_rate: 45
  - id: svc-mulch
    name: Mulch install
    labor_rate: 30
    material_rate: 12.5
    active: false
`

func TestParseSeed(t *testing.T) {
	entries, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, entities.CatalogEntry{
		ID: "svc-mow", Code: "MOW", Name: "Lawn mowing", Category: "lawn", Unit: "visit",
		LaborRate: 45, Active: true,
	}, entries[0])
	assert.Equal(t, "SVC-MULCH", entries[1].Code)
	assert.Equal(t, 12.5, entries[1].MaterialRate)
	assert.False(t, entries[1].Active)
}

func TestParseSeed_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing id":    "services:\n  - code: X\n",
		"duplicate id":  "services:\n  - id: a\n  - id: a\n",
		"negative rate": "services:\n  - id: a\n    labor_rate: -1\n",
		"bad yaml":      "services: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	entries, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockICatalogRepository(ctrl)
	entries := []entities.CatalogEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	gomock.InOrder(
		repo.EXPECT().Put(gomock.Any(), entries[0]).Return(nil),
		repo.EXPECT().Put(gomock.Any(), entries[1]).Return(errors.New("throttled")),
	)

	n, err := Seed(context.Background(), repo, entries)
	assert.Equal(t, 1, n)
	assert.ErrorContains(t, err, "seed pricebook entry b")
}
