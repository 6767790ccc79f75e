package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type cartAddRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Weight    string `json:"weight" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type cartQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Weight    string `json:"weight" validate:"required"`
	Delta     int    `json:"delta" validate:"required"`
}

type cartView struct {
	Items []models.CartItem `json:"items"`
	Total string            `json:"total"`
}

func newCartView(items []models.CartItem) cartView {
	return cartView{Items: items, Total: models.CartTotal(items).StringFixed(2)}
}

func CartFetch(store cartStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartView(store.Cart()))
	}
}

// CartAdd prices the line from the catalog; clients only name the variant.
func CartAdd(store cartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := store.CartItemFor(req.ProductID, req.Weight, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := store.AddToCart(r.Context(), item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

func CartUpdateQuantity(store cartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := store.UpdateCartQuantity(r.Context(), req.ProductID, req.Weight, req.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

func CartRemove(store cartStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		productID := strings.TrimSpace(q.Get("productId"))
		weight := strings.TrimSpace(q.Get("weight"))
		if productID == "" || weight == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "productId and weight are required").
				WithDetails(map[string]string{"productId": "is required", "weight": "is required"})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := store.RemoveFromCart(r.Context(), productID, weight)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}
