package catalog

import (
	"sort"
	"strings"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

const (
	relatedLimit = 4

	scoreCategory = 3
	scoreBrand    = 2
	scoreType     = 1
)

// Query narrows the published catalog. Empty fields match everything.
type Query struct {
	Category string
	Brand    string
	Search   string
}

// Filter returns published products matching every non-empty criterion, in
// catalog order. Search is a case-insensitive substring match over name,
// brand and tags.
func Filter(products []models.Product, q Query) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := []models.Product{}
	for _, p := range products {
		if !p.IsPublished {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Brand != "" && p.Brand != q.Brand {
			continue
		}
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func matchesSearch(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Brand), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Related scores other published products against focal and returns the top
// four. Ties keep catalog order; zero scores are dropped.
func Related(products []models.Product, focal models.Product) []models.Product {
	type scored struct {
		product models.Product
		score   int
	}
	candidates := []scored{}
	for _, p := range products {
		if p.ID == focal.ID || !p.IsPublished {
			continue
		}
		if s := relatedScore(focal, p); s > 0 {
			candidates = append(candidates, scored{product: p, score: s})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > relatedLimit {
		candidates = candidates[:relatedLimit]
	}
	out := make([]models.Product, len(candidates))
	for i, c := range candidates {
		out[i] = c.product.Clone()
	}
	return out
}

func relatedScore(focal, p models.Product) int {
	score := 0
	if p.Category == focal.Category {
		score += scoreCategory
	}
	if p.Brand == focal.Brand {
		score += scoreBrand
	}
	if p.Type == focal.Type {
		score += scoreType
	}
	return score
}

// BrandSummary is one brand tile on the category screen.
type BrandSummary struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// BrandsForCategory lists the distinct brands of published products in
// category, in first-seen order, with the first logo seen for each.
func BrandsForCategory(products []models.Product, category string) []BrandSummary {
	seen := map[string]struct{}{}
	out := []BrandSummary{}
	for _, p := range products {
		if !p.IsPublished || p.Brand == "" || (category != "" && p.Category != category) {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, BrandSummary{Name: p.Brand, Logo: p.BrandLogo})
	}
	return out
}

// InventoryItem is the compact product view handed to the shopping assistant.
type InventoryItem struct {
	Name  string           `json:"name"`
	Brand string           `json:"brand"`
	Type  enums.StrainType `json:"type"`
	THC   float64          `json:"thc"`
	Tags  []string         `json:"tags"`
}

// InventorySummary digests the published catalog for the assistant.
func InventorySummary(products []models.Product) []InventoryItem {
	out := []InventoryItem{}
	for _, p := range products {
		if !p.IsPublished {
			continue
		}
		out = append(out, InventoryItem{
			Name:  p.Name,
			Brand: p.Brand,
			Type:  p.Type,
			THC:   p.THC,
			Tags:  append([]string{}, p.Tags...),
		})
	}
	return out
}
