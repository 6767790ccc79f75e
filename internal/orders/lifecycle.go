package orders

import (
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

var canonicalPath = []enums.OrderStatus{
	enums.OrderStatusPlaced,
	enums.OrderStatusAccepted,
	enums.OrderStatusPreparing,
	enums.OrderStatusReady,
	enums.OrderStatusPickedUp,
}

// IsTerminal reports whether no further step follows status.
func IsTerminal(status enums.OrderStatus) bool {
	return status == enums.OrderStatusPickedUp || status == enums.OrderStatusCancelled
}

// NextStatus returns the following step on the canonical path.
func NextStatus(status enums.OrderStatus) (enums.OrderStatus, bool) {
	for i, s := range canonicalPath[:len(canonicalPath)-1] {
		if s == status {
			return canonicalPath[i+1], true
		}
	}
	return "", false
}

// OrderView is an order as the staff console lists it, with the step the
// "advance" button would take.
type OrderView struct {
	models.Order
	NextStatus enums.OrderStatus `json:"nextStatus,omitempty"`
	Terminal   bool              `json:"terminal"`
}

func View(order models.Order) OrderView {
	view := OrderView{Order: order, Terminal: IsTerminal(order.Status)}
	if next, ok := NextStatus(order.Status); ok {
		view.NextStatus = next
	}
	return view
}

func Views(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, View(o))
	}
	return out
}
