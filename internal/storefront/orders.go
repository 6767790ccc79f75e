package storefront

import (
	"context"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// OrderInput is the customer contact and fulfilment data captured at checkout.
type OrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	MarketingOptIn  bool
	PickupTime      string
	PaymentMethod   enums.PaymentMethod
	OrderType       enums.OrderType
	DeliveryAddress string
	Notes           string
}

// OrderInputFromDraft maps the remembered checkout form onto an order input.
func OrderInputFromDraft(d models.CheckoutDraft) OrderInput {
	return OrderInput{
		CustomerName:    d.Name,
		CustomerPhone:   d.Phone,
		CustomerEmail:   d.Email,
		MarketingOptIn:  d.MarketingOptIn,
		PickupTime:      d.Time,
		PaymentMethod:   d.Payment,
		OrderType:       d.OrderType,
		DeliveryAddress: d.DeliveryAddress,
		Notes:           d.Notes,
	}
}

// Orders returns every order, newest first.
func (s *Store) Orders() []models.Order {
	var out []models.Order
	s.read(func(st *State) { out = models.CloneOrders(st.Orders) })
	return out
}

// Order looks up a single order.
func (s *Store) Order(id string) (models.Order, bool) {
	var (
		out   models.Order
		found bool
	)
	s.read(func(st *State) {
		if idx := orderIndex(st.Orders, id); idx >= 0 {
			out, found = st.Orders[idx].Clone(), true
		}
	})
	return out, found
}

// OrdersForUser returns the orders placed while userID was logged in.
func (s *Store) OrdersForUser(userID string) []models.Order {
	out := []models.Order{}
	s.read(func(st *State) {
		for _, o := range st.Orders {
			if o.UserID != nil && *o.UserID == userID {
				out = append(out, o.Clone())
			}
		}
	})
	return out
}

// PlaceOrder turns the cart into a new order, prepends it and empties the cart.
// Contact details are taken as given; an empty cart is a validation error.
func (s *Store) PlaceOrder(ctx context.Context, input OrderInput) (models.Order, error) {
	var order models.Order
	err := s.mutate(ctx, func(st *State) (bool, error) {
		if len(st.Cart) == 0 {
			return false, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
				WithDetails(map[string]string{"cart": "is empty"})
		}
		items := models.CloneCart(st.Cart)
		order = models.Order{
			ID:              s.newCode(),
			CustomerName:    input.CustomerName,
			CustomerPhone:   input.CustomerPhone,
			CustomerEmail:   input.CustomerEmail,
			MarketingOptIn:  input.MarketingOptIn,
			Items:           items,
			Total:           models.CartTotal(items),
			Status:          enums.OrderStatusPlaced,
			Timestamp:       s.now().UTC(),
			PickupTime:      input.PickupTime,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   enums.PaymentStatusUnpaid,
			OrderType:       input.OrderType,
			DeliveryAddress: input.DeliveryAddress,
			Notes:           input.Notes,
		}
		if order.PaymentMethod == "" {
			order.PaymentMethod = enums.PaymentMethodInStore
		}
		if order.OrderType == "" {
			order.OrderType = enums.OrderTypePickup
		}
		if st.CurrentUser != nil {
			uid := st.CurrentUser.ID
			order.UserID = &uid
		}
		st.Orders = append([]models.Order{order.Clone()}, st.Orders...)
		st.Cart = []models.CartItem{}
		return true, nil
	})
	return order, err
}

// UpdateOrderStatus sets the status without enforcing transitions. Unknown
// ids are ignored and reported through found.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (order models.Order, found bool, err error) {
	if !status.IsValid() {
		return models.Order{}, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status})
	}
	err = s.mutate(ctx, func(st *State) (bool, error) {
		idx := orderIndex(st.Orders, id)
		if idx < 0 {
			return false, nil
		}
		st.Orders[idx].Status = status
		order, found = st.Orders[idx].Clone(), true
		return true, nil
	})
	return order, found, err
}

// UpdatePaymentStatus sets the payment status directly.
func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, status enums.PaymentStatus) (order models.Order, found bool, err error) {
	if !status.IsValid() {
		return models.Order{}, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status").
			WithDetails(map[string]any{"status": status})
	}
	err = s.mutate(ctx, func(st *State) (bool, error) {
		idx := orderIndex(st.Orders, id)
		if idx < 0 {
			return false, nil
		}
		st.Orders[idx].PaymentStatus = status
		order, found = st.Orders[idx].Clone(), true
		return true, nil
	})
	return order, found, err
}

// AwardPoints credits the order's user with points once. It returns false
// when the order is unknown, has no user, or was already credited.
func (s *Store) AwardPoints(ctx context.Context, orderID string, points int) (bool, error) {
	if points <= 0 {
		return false, nil
	}
	awarded := false
	err := s.mutate(ctx, func(st *State) (bool, error) {
		idx := orderIndex(st.Orders, orderID)
		if idx < 0 {
			return false, nil
		}
		order := &st.Orders[idx]
		if order.UserID == nil || order.PointsAwarded > 0 {
			return false, nil
		}
		uidx := userIndex(st.Users, *order.UserID)
		if uidx < 0 {
			return false, nil
		}
		st.Users[uidx].Points += points
		if st.CurrentUser != nil && st.CurrentUser.ID == st.Users[uidx].ID {
			st.CurrentUser.Points = st.Users[uidx].Points
		}
		order.PointsAwarded = points
		awarded = true
		return true, nil
	})
	return awarded, err
}

func orderIndex(orders []models.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
