package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
)

// Order is fixed at placement; only its statuses change afterward.
type Order struct {
	ID              string              `json:"id"`
	UserID          *string             `json:"userId,omitempty"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerEmail   string              `json:"customerEmail,omitempty"`
	MarketingOptIn  bool                `json:"marketingOptIn"`
	Items           []CartItem          `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	Status          enums.OrderStatus   `json:"status"`
	Timestamp       time.Time           `json:"timestamp"`
	PickupTime      string              `json:"pickupTime"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus   enums.PaymentStatus `json:"paymentStatus"`
	OrderType       enums.OrderType     `json:"orderType"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	PointsAwarded   int                 `json:"pointsAwarded,omitempty"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = CloneCart(o.Items)
	if o.UserID != nil {
		id := *o.UserID
		out.UserID = &id
	}
	return out
}

// ItemNames lists the names of the ordered items in order.
func (o Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.Name)
	}
	return names
}

func CloneOrders(in []Order) []Order {
	out := make([]Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
