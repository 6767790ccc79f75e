package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

const maxNotesLength = 500

type checkoutRequest struct {
	Name            string              `json:"name" validate:"required,max=120"`
	Phone           string              `json:"phone" validate:"required,max=32"`
	Email           string              `json:"email" validate:"omitempty,email"`
	MarketingOptIn  bool                `json:"marketingOptIn"`
	Time            string              `json:"time"`
	Payment         enums.PaymentMethod `json:"payment"`
	OrderType       enums.OrderType     `json:"orderType"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Notes           string              `json:"notes"`
}

func (req checkoutRequest) draft() models.CheckoutDraft {
	draft := models.CheckoutDraft{
		Name:            strings.TrimSpace(req.Name),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		MarketingOptIn:  req.MarketingOptIn,
		Time:            strings.TrimSpace(req.Time),
		Payment:         req.Payment,
		OrderType:       req.OrderType,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Notes:           validators.SanitizeString(req.Notes, maxNotesLength),
	}
	defaults := models.DefaultCheckoutDraft()
	if draft.Time == "" {
		draft.Time = defaults.Time
	}
	if draft.Payment == "" {
		draft.Payment = defaults.Payment
	}
	if draft.OrderType == "" {
		draft.OrderType = defaults.OrderType
	}
	return draft
}

func CheckoutDraftFetch(store checkoutStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.CheckoutDraft())
	}
}

// CheckoutDraftSave remembers a partially filled form; nothing is required.
func CheckoutDraftSave(store checkoutStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.CheckoutDraft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saved, err := store.UpdateCheckoutDraft(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

// Checkout places the cart as a new order. The staff alert is spoken in the
// background and never delays the response.
func Checkout(store checkoutStore, alerts OrderAlerter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		draft := req.draft()
		settings := store.Settings()
		if err := checkCheckout(draft, settings); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := store.UpdateCheckoutDraft(ctx, draft); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		order, err := store.PlaceOrder(ctx, storefront.OrderInputFromDraft(draft))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithOrderID(ctx, order.ID)
			logg.Info(logg.WithField(ctx, "total", order.Total.StringFixed(2)), "order placed")
		}
		if alerts != nil {
			go alerts.NewOrderAlert(context.WithoutCancel(ctx), order, settings)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// checkCheckout validates the form against the store settings. The cart is
// checked by PlaceOrder against the state it actually orders.
func checkCheckout(draft models.CheckoutDraft, settings models.StoreSettings) error {
	if !settings.IsStoreOpen {
		return pkgerrors.New(pkgerrors.CodeConflict, "store is closed")
	}
	details := map[string]string{}
	if !draft.Payment.IsValid() {
		details["payment"] = "is invalid"
	} else if draft.Payment == enums.PaymentMethodOnline && !settings.OnlinePaymentsEnabled {
		details["payment"] = "online payments are disabled"
	}
	switch draft.OrderType {
	case enums.OrderTypePickup:
		if !settings.PickupOn {
			details["orderType"] = "pickup is unavailable"
		}
	case enums.OrderTypeDelivery:
		if !settings.DeliveryOn {
			details["orderType"] = "delivery is unavailable"
		} else if draft.DeliveryAddress == "" {
			details["deliveryAddress"] = "is required"
		}
	default:
		details["orderType"] = "is invalid"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
