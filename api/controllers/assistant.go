package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
)

type askRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// AssistantAsk answers a shopper question when the in-store assistant is on.
func AssistantAsk(store catalogSettings, ai CatalogAnswerer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !store.Settings().BobbyProOn {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "assistant is turned off"))
			return
		}
		var req askRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		answer := ai.Ask(r.Context(), req.Query, store.Products())
		responses.WriteSuccess(w, askResponse{Answer: answer})
	}
}
