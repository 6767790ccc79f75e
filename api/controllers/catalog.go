package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	"github.com/angelmondragon/storefront-vault/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

const maxSearchLength = 100

type productDetail struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// CatalogList returns published products filtered by category, brand and a
// free text query.
func CatalogList(store catalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := catalog.Filter(store.Products(), catalog.Query{
			Category: validators.QueryString(r, "category", maxSearchLength),
			Brand:    validators.QueryString(r, "brand", maxSearchLength),
			Search:   validators.QueryString(r, "q", maxSearchLength),
		})
		responses.WriteSuccess(w, products)
	}
}

func CatalogCategories(store catalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Categories())
	}
}

func CatalogBrands(store catalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.QueryString(r, "category", maxSearchLength)
		responses.WriteSuccess(w, catalog.BrandsForCategory(store.Products(), category))
	}
}

// CatalogProduct hides drafts from shoppers.
func CatalogProduct(store catalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := store.Product(chi.URLParam(r, "productId"))
		if err == nil && !product.IsPublished {
			err = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productDetail{
			Product: product,
			Related: catalog.Related(store.Products(), product),
		})
	}
}
