package models

import "github.com/shopspring/decimal"

// CartItem is one cart line keyed by (ProductID, Weight).
type CartItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Image     string          `json:"image"`
	Weight    string          `json:"weight" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Matches reports whether the line has the given cart key.
func (c CartItem) Matches(productID, weight string) bool {
	return c.ProductID == productID && c.Weight == weight
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func CloneCart(in []CartItem) []CartItem {
	if in == nil {
		return []CartItem{}
	}
	return append([]CartItem{}, in...)
}

// CartTotal sums every line total.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
