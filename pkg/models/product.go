package models

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
)

// WeightVariant is one purchasable size of a product.
type WeightVariant struct {
	Weight string          `json:"weight" validate:"required"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock" validate:"gte=0"`
}

// Product is a catalog SKU. Every product carries at least one weight variant.
type Product struct {
	ID               string           `json:"id" validate:"required"`
	Name             string           `json:"name"`
	Brand            string           `json:"brand"`
	Category         string           `json:"category"`
	Type             enums.StrainType `json:"type" validate:"required"`
	THC              float64          `json:"thc" validate:"gte=0"`
	CBD              *float64         `json:"cbd,omitempty" validate:"omitempty,gte=0"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Tags             []string         `json:"tags"`
	Image            string           `json:"image"`
	BrandLogo        string           `json:"brandLogo"`
	Weights          []WeightVariant  `json:"weights" validate:"required,min=1,dive"`
	IsPublished      bool             `json:"isPublished"`
	Notes            string           `json:"notes,omitempty"`
}

// Clone returns a deep copy so callers never alias catalog slices.
func (p Product) Clone() Product {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.Weights = append([]WeightVariant(nil), p.Weights...)
	if p.CBD != nil {
		cbd := *p.CBD
		out.CBD = &cbd
	}
	return out
}

// Variant returns the weight variant with the given label.
func (p Product) Variant(weight string) (WeightVariant, bool) {
	for _, w := range p.Weights {
		if w.Weight == weight {
			return w, true
		}
	}
	return WeightVariant{}, false
}

// CloneProducts deep copies a product list.
func CloneProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
