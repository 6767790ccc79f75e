package staff

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	"github.com/angelmondragon/storefront-vault/internal/orders"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/pagination"
)

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderResult struct {
	Order   *orders.OrderView `json:"order"`
	Updated bool              `json:"updated"`
}

func Dashboard(svc orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Dashboard())
	}
}

// OrderList pages through orders, newest first.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pagination.Paginate(orders.Views(svc.List()), params, func(o orders.OrderView) pagination.Cursor {
			return pagination.Cursor{Timestamp: o.Timestamp, ID: o.ID}
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, invalidCursor(err))
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// OrderStatus sets any status; the console is free to skip or rewind steps.
// Unknown ids answer with updated=false.
func OrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, invalidStatus(err))
			return
		}
		order, found, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResult(order, found))
	}
}

func OrderPaymentStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParsePaymentStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, invalidStatus(err))
			return
		}
		order, found, err := svc.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "orderId"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResult(order, found))
	}
}

func newOrderResult(order models.Order, found bool) orderResult {
	if !found {
		return orderResult{}
	}
	view := orders.View(order)
	return orderResult{Order: &view, Updated: true}
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}, nil
}

func invalidCursor(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").
		WithDetails(map[string]string{"cursor": "is invalid"})
}

func invalidStatus(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
		WithDetails(map[string]string{"status": "is invalid"})
}
