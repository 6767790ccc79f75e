package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

func orderWith(total int64, status enums.OrderStatus) models.Order {
	return models.Order{Total: decimal.NewFromInt(total), Status: status}
}

func TestLifecycle(t *testing.T) {
	steps := []enums.OrderStatus{
		enums.OrderStatusPlaced,
		enums.OrderStatusAccepted,
		enums.OrderStatusPreparing,
		enums.OrderStatusReady,
		enums.OrderStatusPickedUp,
	}
	for i := 0; i < len(steps)-1; i++ {
		next, ok := NextStatus(steps[i])
		require.True(t, ok, steps[i])
		assert.Equal(t, steps[i+1], next)
		assert.False(t, IsTerminal(steps[i]))
	}
	_, ok := NextStatus(enums.OrderStatusPickedUp)
	assert.False(t, ok)
	_, ok = NextStatus(enums.OrderStatusCancelled)
	assert.False(t, ok)
	assert.True(t, IsTerminal(enums.OrderStatusPickedUp))
	assert.True(t, IsTerminal(enums.OrderStatusCancelled))
}

func TestViewsCarryNextStep(t *testing.T) {
	views := Views([]models.Order{
		orderWith(1, enums.OrderStatusReady),
		orderWith(1, enums.OrderStatusPickedUp),
	})
	require.Len(t, views, 2)
	assert.Equal(t, enums.OrderStatusPickedUp, views[0].NextStatus)
	assert.False(t, views[0].Terminal)
	assert.Empty(t, views[1].NextStatus)
	assert.True(t, views[1].Terminal)
}

func TestRevenueExcludesCancelled(t *testing.T) {
	orders := []models.Order{
		orderWith(10, enums.OrderStatusPlaced),
		orderWith(20, enums.OrderStatusCancelled),
		orderWith(30, enums.OrderStatusPickedUp),
	}
	assert.True(t, Revenue(orders).Equal(decimal.NewFromInt(40)))
	assert.True(t, Revenue(nil).IsZero())
}

func TestActiveCountOnlyPlacedAndAccepted(t *testing.T) {
	orders := []models.Order{
		orderWith(1, enums.OrderStatusPlaced),
		orderWith(1, enums.OrderStatusAccepted),
		orderWith(1, enums.OrderStatusPreparing),
		orderWith(1, enums.OrderStatusReady),
	}
	assert.Equal(t, 2, ActiveCount(orders))
}

func TestDashboardAndLowStock(t *testing.T) {
	products := models.SeedProducts()
	products[1].IsPublished = false
	products = append(products, models.Product{
		ID:          "3",
		IsPublished: true,
		Weights:     []models.WeightVariant{{Weight: "1g", Stock: LowStockThreshold}},
	})

	dash := Dashboard([]models.Order{orderWith(12, enums.OrderStatusPlaced)}, products)
	assert.True(t, dash.Revenue.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 1, dash.ActiveOrders)
	assert.Equal(t, 2, dash.LowStock, "both seed products have a variant under 5")
	assert.Equal(t, 2, dash.ActiveProducts)
	assert.Len(t, dash.LowStockProducts, 2)
}

func TestLoyaltyPointsFloors(t *testing.T) {
	assert.Equal(t, 91, LoyaltyPoints(decimal.RequireFromString("91.99"), 1))
	assert.Equal(t, 183, LoyaltyPoints(decimal.RequireFromString("91.5"), 2))
	assert.Equal(t, 0, LoyaltyPoints(decimal.NewFromInt(50), 0))
	assert.Equal(t, 0, LoyaltyPoints(decimal.Zero, 3))
}

type recordingHook struct {
	calls []models.Order
	err   error
}

func (r *recordingHook) OnPickedUp(_ context.Context, order models.Order, _ models.StoreSettings) error {
	r.calls = append(r.calls, order)
	return r.err
}

func newStore(t *testing.T) *storefront.Store {
	t.Helper()
	v, err := vault.New(vault.Params{Local: vault.NewMemoryBackend()})
	require.NoError(t, err)
	s, err := storefront.Open(context.Background(), storefront.Params{Vault: v})
	require.NoError(t, err)
	return s
}

func placeUserOrder(t *testing.T, s *storefront.Store) models.Order {
	t.Helper()
	ctx := context.Background()
	_, err := s.Register(ctx, "Dana", "555", "dana@example.com")
	require.NoError(t, err)
	item, err := s.CartItemFor("1", "3.5g", 2)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, item)
	require.NoError(t, err)
	order, err := s.PlaceOrder(ctx, storefront.OrderInput{CustomerName: "Dana", CustomerPhone: "555"})
	require.NoError(t, err)
	return order
}

func TestServicePickupAwardsPointsOnceAndRunsHook(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	settings := store.Settings()
	settings.Messaging.PostPickupEnabled = true
	_, err := store.UpdateSettings(ctx, settings)
	require.NoError(t, err)

	hook := &recordingHook{}
	svc, err := NewService(ServiceParams{Store: store, Pickup: hook})
	require.NoError(t, err)
	order := placeUserOrder(t, store)

	updated, found, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPickedUp)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 90, updated.PointsAwarded)
	require.Len(t, hook.calls, 1)
	assert.Equal(t, 90, hook.calls[0].PointsAwarded)

	_, _, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPickedUp)
	require.NoError(t, err)
	assert.Len(t, hook.calls, 1, "re-applying Picked Up does not re-trigger hooks")

	_, _, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusReady)
	require.NoError(t, err)
	_, _, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPickedUp)
	require.NoError(t, err)
	user, _ := store.CurrentUser()
	assert.Equal(t, 90, user.Points, "points are credited once per order")
}

func TestServiceHookFailureDoesNotUndoStatus(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	settings := store.Settings()
	settings.Messaging.PostPickupEnabled = true
	settings.Loyalty.Enabled = false
	_, err := store.UpdateSettings(ctx, settings)
	require.NoError(t, err)

	hook := &recordingHook{err: errors.New("sms gateway down")}
	svc, err := NewService(ServiceParams{Store: store, Pickup: hook})
	require.NoError(t, err)
	order := placeUserOrder(t, store)

	updated, found, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPickedUp)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, enums.OrderStatusPickedUp, updated.Status)
	assert.Zero(t, updated.PointsAwarded)
	require.Len(t, hook.calls, 1)
}

func TestServiceSkipsMessagingWhenDisabled(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	hook := &recordingHook{}
	svc, err := NewService(ServiceParams{Store: store, Pickup: hook})
	require.NoError(t, err)
	order := placeUserOrder(t, store)

	_, _, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPickedUp)
	require.NoError(t, err)
	assert.Empty(t, hook.calls)

	_, found, err := svc.UpdateStatus(ctx, "missing", enums.OrderStatusPickedUp)
	require.NoError(t, err)
	assert.False(t, found)

	paid, found, err := svc.UpdatePaymentStatus(ctx, order.ID, enums.PaymentStatusPaid)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, enums.PaymentStatusPaid, paid.PaymentStatus)

	assert.Len(t, svc.List(), 1)
	assert.True(t, svc.Dashboard().Revenue.Equal(decimal.NewFromInt(90)))
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
