package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/product/domain"
)

const seedYAML = `
promotions:
  - name: "Spring sale"
    kind: percent_off
    percent: "15"
  - name: "Bundle"
    kind: third_one_free
products:
  - name: "Espresso machine"
    price: "299.90"
    quantity: 12
    promotion: "Spring sale"
  - name: "Coffee beans"
    price: "14.50"
    quantity: 300
    promotion: "Bundle"
  - name: "Gift wrapping"
    kind: unlimited
    price: "3"
  - name: "Barista course"
    kind: capped
    price: "120"
    quantity: 20
    maximum: 2
    promotion: "Spring sale"
  - name: "Discontinued grinder"
    price: "80"
    quantity: 4
    active: false
`

func TestDefaultSeed(t *testing.T) {
	c, err := DefaultSeed()
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 5)
	assert.Equal(t, "MacBook Air M2", products[0].Name())
	assert.Equal(t, "Second Half price!", products[0].Promotion().Name())
	assert.Equal(t, "Third One Free!", products[1].Promotion().Name())
	assert.Nil(t, products[2].Promotion())
	assert.Equal(t, domain.KindUnlimited, products[3].Kind())
	assert.Equal(t, domain.KindCapped, products[4].Kind())
	assert.Equal(t, 1, products[4].Maximum())
	assert.Equal(t, 1100, c.TotalQuantity())
}

func TestLoadSeed(t *testing.T) {
	c, err := LoadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 5)

	assert.Equal(t, "Espresso machine", products[0].Name())
	assertAmount(t, "299.90", products[0].Price())
	assert.Equal(t, 12, products[0].Quantity())
	assert.Same(t, products[0].Promotion(), products[3].Promotion(), "promotions are shared")

	assert.Equal(t, domain.KindUnlimited, products[2].Kind())
	assert.Equal(t, domain.KindCapped, products[3].Kind())
	assert.Equal(t, 2, products[3].Maximum())

	assert.False(t, products[4].IsActive())
	assert.Len(t, c.ActiveProducts(), 4)
}

func TestLoadSeedEmptyDocument(t *testing.T) {
	c, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadSeedErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown promotion reference",
			yaml: "products:\n  - name: A\n    price: \"1\"\n    quantity: 1\n    promotion: Ghost\n",
			want: "product 0",
		},
		{
			name: "negative price",
			yaml: "products:\n  - name: A\n    price: \"-1\"\n    quantity: 1\n",
			want: "invalid price",
		},
		{
			name: "price not a number",
			yaml: "products:\n  - name: A\n    price: \"lots\"\n",
			want: "is not a number",
		},
		{
			name: "unknown product kind",
			yaml: "products:\n  - name: A\n    kind: rental\n    price: \"1\"\n",
			want: "unknown product kind",
		},
		{
			name: "percent out of range",
			yaml: "promotions:\n  - name: Too much\n    kind: percent_off\n    percent: \"120\"\n",
			want: "promotion 0",
		},
		{
			name: "duplicate promotion",
			yaml: "promotions:\n  - name: P\n    kind: third_one_free\n  - name: P\n    kind: third_one_free\n",
			want: "duplicate",
		},
		{
			name: "capped without maximum",
			yaml: "products:\n  - name: A\n    kind: capped\n    price: \"1\"\n    quantity: 3\n",
			want: "invalid maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeed(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSeedMalformedYAML(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("products: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode seed")
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	c, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
