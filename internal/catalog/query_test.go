package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

func product(id, category, brand string, typ enums.StrainType) models.Product {
	return models.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    category,
		Brand:       brand,
		Type:        typ,
		IsPublished: true,
		Weights:     []models.WeightVariant{{Weight: "1g"}},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestRelatedScoring(t *testing.T) {
	focal := product("F", "Flowers", "Jungle Boys", enums.StrainTypeIndica)
	catalog := []models.Product{
		product("D", "Edibles", "Kiva", enums.StrainTypeSativa),
		product("C", "Carts", "Stiiizy", enums.StrainTypeIndica),
		product("B", "Flowers", "Connected", enums.StrainTypeSativa),
		focal,
		product("A", "Flowers", "Jungle Boys", enums.StrainTypeHybrid),
	}

	got := Related(catalog, focal)
	assert.Equal(t, []string{"A", "B", "C"}, ids(got))
}

func TestRelatedTopFourStableAndPublishedOnly(t *testing.T) {
	focal := product("F", "Flowers", "Jungle Boys", enums.StrainTypeIndica)
	hidden := product("H", "Flowers", "Jungle Boys", enums.StrainTypeIndica)
	hidden.IsPublished = false
	catalog := []models.Product{
		focal,
		hidden,
		product("B1", "Flowers", "Other", enums.StrainTypeSativa),
		product("B2", "Flowers", "Other", enums.StrainTypeSativa),
		product("A1", "Flowers", "Jungle Boys", enums.StrainTypeIndica),
		product("B3", "Flowers", "Other", enums.StrainTypeSativa),
		product("B4", "Flowers", "Other", enums.StrainTypeSativa),
	}

	got := Related(catalog, focal)
	assert.Equal(t, []string{"A1", "B1", "B2", "B3"}, ids(got))
}

func TestFilter(t *testing.T) {
	seed := models.SeedProducts()
	unpublished := product("X", "Flowers", "Jungle Boys", enums.StrainTypeHybrid)
	unpublished.IsPublished = false
	catalog := append(seed, unpublished, product("E", "Edibles", "Kiva", enums.StrainTypeHybrid))

	assert.Equal(t, []string{"1", "2", "E"}, ids(Filter(catalog, Query{})))
	assert.Equal(t, []string{"1", "2"}, ids(Filter(catalog, Query{Category: "Flowers"})))
	assert.Equal(t, []string{"2"}, ids(Filter(catalog, Query{Category: "Flowers", Brand: "Connected"})))
	assert.Empty(t, Filter(catalog, Query{Category: "Edibles", Brand: "Connected"}))

	assert.Equal(t, []string{"1"}, ids(Filter(catalog, Query{Search: "CREAMY"})), "tags are searched")
	assert.Equal(t, []string{"2"}, ids(Filter(catalog, Query{Search: "connect"})), "brand is searched")
	assert.Equal(t, []string{"1"}, ids(Filter(catalog, Query{Search: " ice cream "})))
}

func TestFilterReturnsCopies(t *testing.T) {
	catalog := models.SeedProducts()
	out := Filter(catalog, Query{})
	out[0].Tags[0] = "changed"
	assert.Equal(t, "Relaxing", catalog[0].Tags[0])
}

func TestBrandsForCategory(t *testing.T) {
	catalog := []models.Product{
		product("1", "Flowers", "Jungle Boys", enums.StrainTypeIndica),
		product("2", "Flowers", "Connected", enums.StrainTypeHybrid),
		product("3", "Flowers", "Jungle Boys", enums.StrainTypeSativa),
		product("4", "Edibles", "Kiva", enums.StrainTypeHybrid),
	}
	catalog[0].BrandLogo = "jb.png"
	catalog[2].BrandLogo = "jb-alt.png"

	got := BrandsForCategory(catalog, "Flowers")
	require.Len(t, got, 2)
	assert.Equal(t, BrandSummary{Name: "Jungle Boys", Logo: "jb.png"}, got[0])
	assert.Equal(t, "Connected", got[1].Name)
	assert.Len(t, BrandsForCategory(catalog, ""), 3)
}

func TestInventorySummarySkipsUnpublished(t *testing.T) {
	catalog := models.SeedProducts()
	catalog[1].IsPublished = false
	got := InventorySummary(catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "Ice Cream Cake", got[0].Name)
	assert.Equal(t, enums.StrainTypeIndica, got[0].Type)
	assert.Contains(t, got[0].Tags, "Relaxing")
}
