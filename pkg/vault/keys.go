package vault

// Key names one persisted slot. The string values are the storage keys.
type Key string

const (
	KeyProducts       Key = "rambo_products_v4"
	KeyCategories     Key = "categories"
	KeyBrands         Key = "brands"
	KeyOrders         Key = "rambo_orders_v4"
	KeyMessageLogs    Key = "message_logs"
	KeySettings       Key = "rambo_settings_v4"
	KeyUsers          Key = "rambo_users"
	KeyCurrentUser    Key = "rambo_current_user"
	KeyCart           Key = "rambo_cart"
	KeyCheckoutDraft  Key = "rambo_checkout_data"
	KeyFavorites      Key = "favorites"
	KeyAgeVerified    Key = "age_verified"
	KeyCustomerUnlock Key = "customer_unlocked"
)

// Scope decides which backend a slot lives in.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeSession
)

func (s Scope) String() string {
	if s == ScopeSession {
		return "session"
	}
	return "local"
}

var allKeys = []Key{
	KeyProducts,
	KeyCategories,
	KeyBrands,
	KeyOrders,
	KeyMessageLogs,
	KeySettings,
	KeyUsers,
	KeyCurrentUser,
	KeyCart,
	KeyCheckoutDraft,
	KeyFavorites,
	KeyAgeVerified,
	KeyCustomerUnlock,
}

// Keys lists the enumerated slot set in a stable order.
func Keys() []Key {
	return append([]Key(nil), allKeys...)
}

func (k Key) String() string {
	return string(k)
}

// Valid reports whether k belongs to the enumerated set.
func (k Key) Valid() bool {
	for _, known := range allKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Scope returns where the slot is stored.
func (k Key) Scope() Scope {
	if k == KeyCustomerUnlock {
		return ScopeSession
	}
	return ScopeLocal
}
