package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
)

type pinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

func GateStatus(gk gateKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, gk.Status())
	}
}

func GateVerifyAge(gk gateKeeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gk.VerifyAge(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gk.Status())
	}
}

func GateUnlockCustomer(gk gateKeeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pinRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := gk.UnlockCustomer(r.Context(), req.Pin); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gk.Status())
	}
}

func GateEnterStaff(gk gateKeeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := gk.EnterStaff(r.Context(), req.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gk.Status())
	}
}

func GateExitStaff(gk gateKeeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gk.ExitStaff(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gk.Status())
	}
}
