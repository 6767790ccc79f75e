package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type loginRequest struct {
	Phone string `json:"phone" validate:"required,max=32"`
}

type registerRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone" validate:"required,max=32"`
	Email string `json:"email" validate:"omitempty,email"`
}

type accountView struct {
	User      *models.User `json:"user"`
	Favorites []string     `json:"favorites"`
}

func newAccountView(store accountStore) accountView {
	view := accountView{Favorites: store.Favorites()}
	if user, ok := store.CurrentUser(); ok {
		view.User = &user
	}
	return view
}

func AccountFetch(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newAccountView(store))
	}
}

func AccountLogin(store accountStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := store.Login(r.Context(), req.Phone); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAccountView(store))
	}
}

func AccountRegister(store accountStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := store.Register(r.Context(), req.Name, req.Phone, req.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAccountView(store))
	}
}

func AccountLogout(store accountStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAccountView(store))
	}
}

// AccountUpdate edits the logged in profile. The id always comes from the
// session, never from the body.
func AccountUpdate(store accountStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := store.CurrentUser()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "login required"))
			return
		}
		var user models.User
		if err := validators.DecodeJSONBody(r, &user); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user.ID = current.ID
		user.Points = current.Points
		user.CreatedAt = current.CreatedAt
		if _, err := store.UpdateUser(r.Context(), user); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAccountView(store))
	}
}

func FavoritesFetch(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Favorites())
	}
}

func FavoriteToggle(store accountStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favorites, err := store.ToggleFavorite(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, favorites)
	}
}

// AccountOrders lists the current user's orders; guests have none.
func AccountOrders(store accountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := store.CurrentUser()
		if !ok {
			responses.WriteSuccess(w, []models.Order{})
			return
		}
		responses.WriteSuccess(w, store.OrdersForUser(user.ID))
	}
}
