package models

import "github.com/angelmondragon/storefront-vault/pkg/enums"

// CheckoutDraft is the remembered checkout form. It is not cleared after an order.
type CheckoutDraft struct {
	Name            string              `json:"name"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email"`
	MarketingOptIn  bool                `json:"marketingOptIn"`
	Time            string              `json:"time"`
	Payment         enums.PaymentMethod `json:"payment"`
	OrderType       enums.OrderType     `json:"orderType"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Notes           string              `json:"notes"`
}

func DefaultCheckoutDraft() CheckoutDraft {
	return CheckoutDraft{
		MarketingOptIn: true,
		Time:           "ASAP",
		Payment:        enums.PaymentMethodInStore,
		OrderType:      enums.OrderTypePickup,
	}
}
