package staff

import (
	"net/http"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/pagination"
)

type sourceSyncRequest struct {
	Repo  string `json:"repo" validate:"max=100"`
	Token string `json:"token" validate:"required"`
}

func SettingsFetch(store settingsAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Settings())
	}
}

func SettingsUpdate(store settingsAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings models.StoreSettings
		if err := validators.DecodeJSONBody(r, &settings); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := store.UpdateSettings(r.Context(), settings)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func SourceSyncLink(store settingsAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sourceSyncRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := store.LinkSourceSync(r.Context(), req.Repo, req.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func MessageList(store messageReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pagination.Paginate(store.MessageLogs(), params, func(m models.MessageLog) pagination.Cursor {
			return pagination.Cursor{Timestamp: m.Timestamp, ID: m.ID}
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, invalidCursor(err))
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func LatestAlert(alerts alertReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alert, ok := alerts.LatestAlert()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no alert yet"))
			return
		}
		responses.WriteSuccess(w, alert)
	}
}
