package controllers

import (
	"context"

	"github.com/angelmondragon/storefront-vault/internal/gates"
	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type catalogReader interface {
	Products() []models.Product
	Product(id string) (models.Product, error)
	Categories() []string
}

type cartStore interface {
	Cart() []models.CartItem
	CartItemFor(productID, weight string, quantity int) (models.CartItem, error)
	AddToCart(ctx context.Context, item models.CartItem) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, productID, weight string) ([]models.CartItem, error)
	UpdateCartQuantity(ctx context.Context, productID, weight string, delta int) ([]models.CartItem, error)
}

type checkoutStore interface {
	Settings() models.StoreSettings
	CheckoutDraft() models.CheckoutDraft
	UpdateCheckoutDraft(ctx context.Context, draft models.CheckoutDraft) (models.CheckoutDraft, error)
	PlaceOrder(ctx context.Context, input storefront.OrderInput) (models.Order, error)
}

type accountStore interface {
	CurrentUser() (models.User, bool)
	Login(ctx context.Context, phone string) (models.User, error)
	Register(ctx context.Context, name, phone, email string) (models.User, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, user models.User) (bool, error)
	Favorites() []string
	ToggleFavorite(ctx context.Context, productID string) ([]string, error)
	OrdersForUser(userID string) []models.Order
}

type catalogSettings interface {
	Products() []models.Product
	Settings() models.StoreSettings
}

type gateKeeper interface {
	Status() gates.Status
	VerifyAge(ctx context.Context) error
	UnlockCustomer(ctx context.Context, pin string) error
	EnterStaff(ctx context.Context, password string) error
	ExitStaff(ctx context.Context) error
}

// OrderAlerter announces new orders to staff.
type OrderAlerter interface {
	NewOrderAlert(ctx context.Context, order models.Order, settings models.StoreSettings)
}

// CatalogAnswerer answers shopper questions about the catalog.
type CatalogAnswerer interface {
	Ask(ctx context.Context, query string, products []models.Product) string
}
