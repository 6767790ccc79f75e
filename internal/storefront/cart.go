package storefront

import (
	"context"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []models.CartItem {
	var out []models.CartItem
	s.read(func(st *State) { out = models.CloneCart(st.Cart) })
	return out
}

// CartItemFor builds a cart line from the catalog entry and its weight variant.
func (s *Store) CartItemFor(productID, weight string, quantity int) (models.CartItem, error) {
	var (
		item models.CartItem
		err  error
	)
	s.read(func(st *State) {
		idx := productIndex(st.Products, productID)
		if idx < 0 {
			err = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			return
		}
		product := st.Products[idx]
		variant, ok := product.Variant(weight)
		if !ok {
			err = pkgerrors.New(pkgerrors.CodeNotFound, "weight variant not found")
			return
		}
		item = models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Brand:     product.Brand,
			Image:     product.Image,
			Weight:    variant.Weight,
			Price:     variant.Price,
			Quantity:  quantity,
		}
	})
	return item, err
}

// AddToCart merges the line into the cart by (product, weight). Quantities
// below one count as one.
func (s *Store) AddToCart(ctx context.Context, item models.CartItem) ([]models.CartItem, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	var out []models.CartItem
	err := s.mutate(ctx, func(st *State) (bool, error) {
		merged := false
		for i := range st.Cart {
			if st.Cart[i].Matches(item.ProductID, item.Weight) {
				st.Cart[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			st.Cart = append(st.Cart, item)
		}
		out = models.CloneCart(st.Cart)
		return true, nil
	})
	return out, err
}

// RemoveFromCart drops the matching line; absent lines are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, productID, weight string) ([]models.CartItem, error) {
	var out []models.CartItem
	err := s.mutate(ctx, func(st *State) (bool, error) {
		kept := make([]models.CartItem, 0, len(st.Cart))
		for _, line := range st.Cart {
			if !line.Matches(productID, weight) {
				kept = append(kept, line)
			}
		}
		changed := len(kept) != len(st.Cart)
		st.Cart = kept
		out = models.CloneCart(st.Cart)
		return changed, nil
	})
	return out, err
}

// UpdateCartQuantity adds delta to the matching line, never going below one.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID, weight string, delta int) ([]models.CartItem, error) {
	var out []models.CartItem
	err := s.mutate(ctx, func(st *State) (bool, error) {
		changed := false
		for i := range st.Cart {
			if st.Cart[i].Matches(productID, weight) {
				st.Cart[i].Quantity = max(1, st.Cart[i].Quantity+delta)
				changed = true
			}
		}
		out = models.CloneCart(st.Cart)
		return changed, nil
	})
	return out, err
}

func productIndex(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
