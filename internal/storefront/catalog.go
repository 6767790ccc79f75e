package storefront

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

const (
	defaultBrand       = "Unknown"
	defaultCategory    = "Uncategorized"
	defaultWeight      = "3.5g"
	defaultImage       = "https://picsum.photos/seed/sku/800/800"
	defaultBrandLogo   = "https://picsum.photos/seed/brand/200/200"
)

// Products returns the whole catalog, including unpublished products.
func (s *Store) Products() []models.Product {
	var out []models.Product
	s.read(func(st *State) { out = models.CloneProducts(st.Products) })
	return out
}

func (s *Store) Product(id string) (models.Product, error) {
	var (
		out models.Product
		err error
	)
	s.read(func(st *State) {
		idx := productIndex(st.Products, id)
		if idx < 0 {
			err = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			return
		}
		out = st.Products[idx].Clone()
	})
	return out, err
}

// CreateProduct prepends a blank, published product.
func (s *Store) CreateProduct(ctx context.Context) (models.Product, error) {
	return s.CreateProductFrom(ctx, models.Product{})
}

// CreateProductFrom prepends a product built from draft, filling every empty
// field with the blank-product defaults.
func (s *Store) CreateProductFrom(ctx context.Context, draft models.Product) (models.Product, error) {
	var product models.Product
	err := s.mutate(ctx, func(st *State) (bool, error) {
		product = draft.Clone()
		product.ID = s.newCode()
		if strings.TrimSpace(product.Brand) == "" {
			product.Brand = firstOr(st.Brands, defaultBrand)
		}
		if strings.TrimSpace(product.Category) == "" {
			product.Category = firstOr(st.Categories, defaultCategory)
		}
		if !product.Type.IsValid() {
			product.Type = enums.StrainTypeHybrid
		}
		if product.THC < 0 {
			product.THC = 0
		}
		if product.Image == "" {
			product.Image = defaultImage
		}
		if product.BrandLogo == "" {
			product.BrandLogo = defaultBrandLogo
		}
		if product.Tags == nil {
			product.Tags = []string{}
		}
		if len(product.Weights) == 0 {
			product.Weights = []models.WeightVariant{{Weight: defaultWeight, Price: decimal.Zero, Stock: 0}}
		}
		product.IsPublished = true
		st.Products = append([]models.Product{product.Clone()}, st.Products...)
		return true, nil
	})
	return product, err
}

// SaveProduct validates and replaces the product with the same id. Unknown
// ids are ignored and reported through found.
func (s *Store) SaveProduct(ctx context.Context, product models.Product) (found bool, err error) {
	if err := s.validateProduct(product); err != nil {
		return false, err
	}
	err = s.mutate(ctx, func(st *State) (bool, error) {
		idx := productIndex(st.Products, product.ID)
		if idx < 0 {
			return false, nil
		}
		st.Products[idx] = product.Clone()
		found = true
		return true, nil
	})
	return found, err
}

// DeleteProduct removes the product and purges it from every favorites list.
// Orders keep their own copies of the items.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.mutate(ctx, func(st *State) (bool, error) {
		idx := productIndex(st.Products, id)
		if idx < 0 {
			return false, nil
		}
		st.Products = slices.Delete(slices.Clone(st.Products), idx, idx+1)
		st.Favorites = without(st.Favorites, id)
		for i := range st.Users {
			st.Users[i].Favorites = without(st.Users[i].Favorites, id)
		}
		if st.CurrentUser != nil {
			st.CurrentUser.Favorites = without(st.CurrentUser.Favorites, id)
		}
		found = true
		return true, nil
	})
	return found, err
}

// Categories returns the stored categories followed by any category a product
// references that is not stored.
func (s *Store) Categories() []string {
	var out []string
	s.read(func(st *State) {
		out = mergeReferenced(st.Categories, st.Products, func(p models.Product) string { return p.Category })
	})
	return out
}

// Brands returns the stored brands followed by any brand a product references.
func (s *Store) Brands() []string {
	var out []string
	s.read(func(st *State) {
		out = mergeReferenced(st.Brands, st.Products, func(p models.Product) string { return p.Brand })
	})
	return out
}

// AddCategory appends a trimmed category; blanks and duplicates are ignored.
func (s *Store) AddCategory(ctx context.Context, name string) ([]string, error) {
	return s.addLabel(ctx, name, func(st *State) *[]string { return &st.Categories })
}

// AddBrand appends a trimmed brand; blanks and duplicates are ignored.
func (s *Store) AddBrand(ctx context.Context, name string) ([]string, error) {
	return s.addLabel(ctx, name, func(st *State) *[]string { return &st.Brands })
}

func (s *Store) addLabel(ctx context.Context, name string, field func(*State) *[]string) ([]string, error) {
	name = strings.TrimSpace(name)
	var out []string
	err := s.mutate(ctx, func(st *State) (bool, error) {
		list := field(st)
		changed := false
		if name != "" && !slices.Contains(*list, name) {
			*list = append(slices.Clone(*list), name)
			changed = true
		}
		out = append([]string{}, *list...)
		return changed, nil
	})
	return out, err
}

func mergeReferenced(stored []string, products []models.Product, pick func(models.Product) string) []string {
	out := append([]string{}, stored...)
	for _, p := range products {
		v := pick(p)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 && list[0] != "" {
		return list[0]
	}
	return fallback
}

func without(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
