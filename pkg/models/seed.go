package models

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
)

// DefaultCategories is the canonical category list.
func DefaultCategories() []string {
	return []string{
		"Flowers",
		"Disposables",
		"Carts",
		"Pre-Rolls",
		"Gummies",
		"Edibles",
		"Concentrates",
		"Tinctures",
		"Drinks",
		"Accessories",
	}
}

// SeedProducts is the starter catalog loaded into an empty vault.
func SeedProducts() []Product {
	return []Product{
		{
			ID:               "1",
			Name:             "Ice Cream Cake",
			Brand:            "Jungle Boys",
			Category:         "Flowers",
			Type:             enums.StrainTypeIndica,
			THC:              28.5,
			Description:      "A heavy-hitting indica cross of Wedding Cake and Gelato #33. Known for its creamy, doughy aroma and deeply relaxing effects.",
			ShortDescription: "Creamy, relaxing, and heavy-hitting.",
			Tags:             []string{"Relaxing", "Creamy", "Evening", "Sweet"},
			Image:            "https://picsum.photos/seed/icecreamcake/400/400",
			BrandLogo:        "https://picsum.photos/seed/jungleboys/100/100",
			Weights: []WeightVariant{
				{Weight: "3.5g", Price: decimal.NewFromInt(45), Stock: 12},
				{Weight: "7g", Price: decimal.NewFromInt(85), Stock: 5},
				{Weight: "14g", Price: decimal.NewFromInt(160), Stock: 2},
			},
			IsPublished: true,
		},
		{
			ID:               "2",
			Name:             "Lemon Cherry Gelato",
			Brand:            "Connected",
			Category:         "Flowers",
			Type:             enums.StrainTypeHybrid,
			THC:              31.2,
			Description:      "An exotic hybrid with a fruity, cherry-forward flavor profile and a smooth creamy finish. Great for balanced social energy.",
			ShortDescription: "Fruity social hybrid with high potency.",
			Tags:             []string{"Euphoric", "Fruity", "Social", "Daytime"},
			Image:            "https://picsum.photos/seed/lemoncherry/400/400",
			BrandLogo:        "https://picsum.photos/seed/connected/100/100",
			Weights: []WeightVariant{
				{Weight: "3.5g", Price: decimal.NewFromInt(50), Stock: 8},
				{Weight: "7g", Price: decimal.NewFromInt(95), Stock: 3},
			},
			IsPublished: true,
		},
	}
}

// UniqueBrands lists product brands in first-seen order.
func UniqueBrands(products []Product) []string {
	seen := map[string]struct{}{}
	brands := []string{}
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}
