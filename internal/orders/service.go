package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type orderStore interface {
	Order(id string) (models.Order, bool)
	Orders() []models.Order
	Products() []models.Product
	Settings() models.StoreSettings
	UpdateOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (models.Order, bool, error)
	UpdatePaymentStatus(ctx context.Context, id string, status enums.PaymentStatus) (models.Order, bool, error)
	AwardPoints(ctx context.Context, orderID string, points int) (bool, error)
}

// PickupHook reacts to an order reaching Picked Up.
type PickupHook interface {
	OnPickedUp(ctx context.Context, order models.Order, settings models.StoreSettings) error
}

// Service runs the staff-console order operations.
type Service interface {
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (models.Order, bool, error)
	UpdatePaymentStatus(ctx context.Context, id string, status enums.PaymentStatus) (models.Order, bool, error)
	List() []models.Order
	Dashboard() DashboardStats
}

type ServiceParams struct {
	Store  orderStore
	Pickup PickupHook
	Logger *logger.Logger
}

type service struct {
	store  orderStore
	pickup PickupHook
	logg   *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("order store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: params.Store, pickup: params.Pickup, logg: logg}, nil
}

// UpdateStatus sets the status and, on the first move into Picked Up, runs the
// loyalty and messaging hooks. Hook failures are logged and never roll back.
func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (models.Order, bool, error) {
	prev, existed := s.store.Order(id)
	order, found, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil || !found {
		return order, found, err
	}
	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, id), map[string]any{
		"from_status": prev.Status,
		"to_status":   status,
	})
	s.logg.Info(ctx, "order status updated")

	if status == enums.OrderStatusPickedUp && (!existed || prev.Status != enums.OrderStatusPickedUp) {
		order = s.afterPickup(ctx, order)
	}
	return order, true, nil
}

func (s *service) afterPickup(ctx context.Context, order models.Order) models.Order {
	settings := s.store.Settings()

	if settings.Loyalty.Enabled && order.UserID != nil {
		points := LoyaltyPoints(order.Total, settings.Loyalty.PointsPerDollar)
		awarded, err := s.store.AwardPoints(ctx, order.ID, points)
		switch {
		case err != nil:
			s.logg.Error(ctx, "failed to award loyalty points", err)
		case awarded:
			s.logg.Info(s.logg.WithField(ctx, "points", points), "loyalty points awarded")
		}
		if refreshed, ok := s.store.Order(order.ID); ok {
			order = refreshed
		}
	}

	if s.pickup != nil && settings.Messaging.PostPickupEnabled {
		if err := s.pickup.OnPickedUp(ctx, order, settings); err != nil {
			s.logg.Error(ctx, "post-pickup messaging failed", err)
		}
	}
	return order
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id string, status enums.PaymentStatus) (models.Order, bool, error) {
	order, found, err := s.store.UpdatePaymentStatus(ctx, id, status)
	if err == nil && found {
		s.logg.Info(s.logg.WithField(s.logg.WithOrderID(ctx, id), "payment_status", status), "payment status updated")
	}
	return order, found, err
}

func (s *service) List() []models.Order {
	return s.store.Orders()
}

func (s *service) Dashboard() DashboardStats {
	return Dashboard(s.store.Orders(), s.store.Products())
}
