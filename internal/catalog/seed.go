package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tair/storefront/internal/product/domain"
)

// SeedFile is the YAML layout accepted by LoadSeed
type SeedFile struct {
	Promotions []SeedPromotion `yaml:"promotions"`
	Products   []SeedProduct   `yaml:"products"`
}

type SeedPromotion struct {
	Name    string               `yaml:"name"`
	Kind    domain.PromotionKind `yaml:"kind"`
	Percent string               `yaml:"percent"`
}

type SeedProduct struct {
	Name      string      `yaml:"name"`
	Kind      domain.Kind `yaml:"kind"`
	Price     string      `yaml:"price"`
	Quantity  int         `yaml:"quantity"`
	Maximum   int         `yaml:"maximum"`
	Promotion string      `yaml:"promotion"`
	Active    *bool       `yaml:"active"`
}

// DefaultSeed builds the catalog the storefront starts with when no seed file is configured
func DefaultSeed() (*Catalog, error) {
	return Build(SeedFile{
		Promotions: []SeedPromotion{
			{Name: "Second Half price!", Kind: domain.PromotionSecondHalfPrice},
			{Name: "Third One Free!", Kind: domain.PromotionThirdOneFree},
			{Name: "30% off!", Kind: domain.PromotionPercentOff, Percent: "30"},
		},
		Products: []SeedProduct{
			{Name: "MacBook Air M2", Price: "1450", Quantity: 100, Promotion: "Second Half price!"},
			{Name: "Bose QuietComfort Earbuds", Price: "250", Quantity: 500, Promotion: "Third One Free!"},
			{Name: "Google Pixel 7", Price: "500", Quantity: 250},
			{Name: "Windows License", Kind: domain.KindUnlimited, Price: "125", Promotion: "30% off!"},
			{Name: "Shipping", Kind: domain.KindCapped, Price: "10", Quantity: 250, Maximum: 1},
		},
	})
}

// LoadSeedFile reads a YAML seed file from disk
func LoadSeedFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return LoadSeed(f)
}

// LoadSeed decodes a YAML seed document and builds the catalog it describes
func LoadSeed(r io.Reader) (*Catalog, error) {
	var seed SeedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	return Build(seed)
}

// Build validates a seed description and creates the products and promotions.
// Promotions are shared: every product naming the same promotion gets the same instance.
func Build(seed SeedFile) (*Catalog, error) {
	promotions := make(map[string]domain.Promotion, len(seed.Promotions))
	for i, sp := range seed.Promotions {
		percent := decimal.Zero
		if sp.Percent != "" {
			var err error
			if percent, err = decimal.NewFromString(sp.Percent); err != nil {
				return nil, fmt.Errorf("promotion %d: %w", i, &domain.ValidationError{Field: "percent", Message: err.Error()})
			}
		}

		promo, err := domain.NewPromotion(sp.Kind, sp.Name, percent)
		if err != nil {
			return nil, fmt.Errorf("promotion %d: %w", i, err)
		}
		if _, dup := promotions[sp.Name]; dup {
			return nil, fmt.Errorf("promotion %d: %w", i, &domain.ValidationError{Field: "promotion name", Message: fmt.Sprintf("duplicate %q", sp.Name)})
		}
		promotions[sp.Name] = promo
	}

	c := New()
	for i, sp := range seed.Products {
		p, err := buildProduct(sp)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}

		if sp.Promotion != "" {
			promo, ok := promotions[sp.Promotion]
			if !ok {
				return nil, fmt.Errorf("product %d: %w", i, &domain.ValidationError{Field: "promotion", Message: fmt.Sprintf("unknown promotion %q", sp.Promotion)})
			}
			p.SetPromotion(promo)
		}

		if sp.Active != nil && !*sp.Active {
			p.Deactivate()
		}

		c.Add(p)
	}

	return c, nil
}

func buildProduct(sp SeedProduct) (*domain.Product, error) {
	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		return nil, &domain.ValidationError{Field: "price", Message: fmt.Sprintf("%q is not a number", sp.Price)}
	}

	return domain.NewProductOfKind(sp.Kind, sp.Name, price, sp.Quantity, sp.Maximum)
}
