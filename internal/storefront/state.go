package storefront

import (
	"context"

	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

// State is every piece of storefront data that survives a restart.
type State struct {
	Products         []models.Product
	Categories       []string
	Brands           []string
	Orders           []models.Order
	MessageLogs      []models.MessageLog
	Settings         models.StoreSettings
	Users            []models.User
	CurrentUser      *models.User
	Cart             []models.CartItem
	Checkout         models.CheckoutDraft
	Favorites        []string
	AgeVerified      bool
	CustomerUnlocked bool
}

// Clone deep copies the state so callers can read it without the lock.
func (s State) Clone() State {
	out := s
	out.Products = models.CloneProducts(s.Products)
	out.Categories = append([]string{}, s.Categories...)
	out.Brands = append([]string{}, s.Brands...)
	out.Orders = models.CloneOrders(s.Orders)
	out.MessageLogs = append([]models.MessageLog{}, s.MessageLogs...)
	out.Settings = s.Settings.Clone()
	out.Users = models.CloneUsers(s.Users)
	if s.CurrentUser != nil {
		u := s.CurrentUser.Clone()
		out.CurrentUser = &u
	}
	out.Cart = models.CloneCart(s.Cart)
	out.Favorites = append([]string{}, s.Favorites...)
	return out
}

func (s *State) slots() map[vault.Key]any {
	return map[vault.Key]any{
		vault.KeyProducts:       s.Products,
		vault.KeyCategories:     s.Categories,
		vault.KeyBrands:         s.Brands,
		vault.KeyOrders:         s.Orders,
		vault.KeyMessageLogs:    s.MessageLogs,
		vault.KeySettings:       s.Settings,
		vault.KeyUsers:          s.Users,
		vault.KeyCurrentUser:    s.CurrentUser,
		vault.KeyCart:           s.Cart,
		vault.KeyCheckoutDraft:  s.Checkout,
		vault.KeyFavorites:      s.Favorites,
		vault.KeyAgeVerified:    s.AgeVerified,
		vault.KeyCustomerUnlock: s.CustomerUnlocked,
	}
}

// loadState reads every slot and applies the load-time defaults.
func loadState(ctx context.Context, v *vault.Vault) State {
	st := State{
		Products:         vault.Load(ctx, v, vault.KeyProducts, []models.Product{}),
		Categories:       vault.Load(ctx, v, vault.KeyCategories, []string{}),
		Brands:           vault.Load(ctx, v, vault.KeyBrands, []string{}),
		Orders:           vault.Load(ctx, v, vault.KeyOrders, []models.Order{}),
		MessageLogs:      vault.Load(ctx, v, vault.KeyMessageLogs, []models.MessageLog{}),
		Settings:         vault.LoadOver(ctx, v, vault.KeySettings, models.DefaultSettings),
		Users:            vault.Load(ctx, v, vault.KeyUsers, []models.User{}),
		CurrentUser:      vault.Load[*models.User](ctx, v, vault.KeyCurrentUser, nil),
		Cart:             vault.Load(ctx, v, vault.KeyCart, []models.CartItem{}),
		Checkout:         vault.LoadOver(ctx, v, vault.KeyCheckoutDraft, models.DefaultCheckoutDraft),
		Favorites:        vault.Load(ctx, v, vault.KeyFavorites, []string{}),
		AgeVerified:      vault.Load(ctx, v, vault.KeyAgeVerified, false),
		CustomerUnlocked: vault.Load(ctx, v, vault.KeyCustomerUnlock, false),
	}
	st.normalize()
	return st
}

func (s *State) normalize() {
	if len(s.Products) == 0 {
		s.Products = models.SeedProducts()
	}
	if len(s.Categories) == 0 {
		s.Categories = models.DefaultCategories()
	}
	if len(s.Brands) == 0 {
		s.Brands = models.UniqueBrands(s.Products)
	}
	if s.Orders == nil {
		s.Orders = []models.Order{}
	}
	if s.MessageLogs == nil {
		s.MessageLogs = []models.MessageLog{}
	}
	if s.Users == nil {
		s.Users = []models.User{}
	}
	if s.Cart == nil {
		s.Cart = []models.CartItem{}
	}
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	if s.Settings.CustomProtocols == nil {
		s.Settings.CustomProtocols = []models.CustomProtocol{}
	}
}
