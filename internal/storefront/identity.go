package storefront

import (
	"context"
	"slices"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	var (
		out models.User
		ok  bool
	)
	s.read(func(st *State) {
		if st.CurrentUser != nil {
			out, ok = st.CurrentUser.Clone(), true
		}
	})
	return out, ok
}

func (s *Store) Users() []models.User {
	var out []models.User
	s.read(func(st *State) { out = models.CloneUsers(st.Users) })
	return out
}

// Login makes the first user with a matching phone current and replaces the
// global favorites with theirs.
func (s *Store) Login(ctx context.Context, phone string) (models.User, error) {
	phone = strings.TrimSpace(phone)
	var user models.User
	err := s.mutate(ctx, func(st *State) (bool, error) {
		for _, u := range st.Users {
			if u.Phone == phone {
				current := u.Clone()
				st.CurrentUser = &current
				st.Favorites = append([]string{}, u.Favorites...)
				user = u.Clone()
				return true, nil
			}
		}
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "no account for that phone number")
	})
	return user, err
}

// Register appends a new user that inherits the guest favorites and logs them in.
// Phone numbers are not checked for duplicates.
func (s *Store) Register(ctx context.Context, name, phone, email string) (models.User, error) {
	var user models.User
	err := s.mutate(ctx, func(st *State) (bool, error) {
		user = models.User{
			ID:        s.newCode(),
			Name:      strings.TrimSpace(name),
			Phone:     strings.TrimSpace(phone),
			Email:     strings.TrimSpace(email),
			Addresses: []models.Address{},
			Favorites: append([]string{}, st.Favorites...),
			CreatedAt: s.now().UTC(),
		}
		st.Users = append(st.Users, user.Clone())
		current := user.Clone()
		st.CurrentUser = &current
		return true, nil
	})
	return user, err
}

// Logout clears the current user. Favorites stay as they are.
func (s *Store) Logout(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) (bool, error) {
		if st.CurrentUser == nil {
			return false, nil
		}
		st.CurrentUser = nil
		return true, nil
	})
}

// UpdateUser replaces the user with the same id, and the current user when it
// is the same account.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (bool, error) {
	if err := s.validate.Struct(user); err != nil {
		return false, validationError(err)
	}
	found := false
	err := s.mutate(ctx, func(st *State) (bool, error) {
		idx := userIndex(st.Users, user.ID)
		if idx < 0 {
			return false, nil
		}
		next := user.Clone()
		for i := range next.Addresses {
			if next.Addresses[i].ID == "" {
				next.Addresses[i].ID = models.NewID()
			}
		}
		st.Users[idx] = next
		if st.CurrentUser != nil && st.CurrentUser.ID == user.ID {
			current := next.Clone()
			st.CurrentUser = &current
		}
		found = true
		return true, nil
	})
	return found, err
}

// Favorites returns the global favorites list.
func (s *Store) Favorites() []string {
	var out []string
	s.read(func(st *State) { out = append([]string{}, st.Favorites...) })
	return out
}

// ToggleFavorite flips productID in the global favorites and mirrors the
// result onto the logged-in user.
func (s *Store) ToggleFavorite(ctx context.Context, productID string) ([]string, error) {
	var out []string
	err := s.mutate(ctx, func(st *State) (bool, error) {
		if idx := slices.Index(st.Favorites, productID); idx >= 0 {
			st.Favorites = slices.Delete(slices.Clone(st.Favorites), idx, idx+1)
		} else {
			st.Favorites = append(slices.Clone(st.Favorites), productID)
		}
		if st.CurrentUser != nil {
			st.CurrentUser.Favorites = append([]string{}, st.Favorites...)
			if idx := userIndex(st.Users, st.CurrentUser.ID); idx >= 0 {
				st.Users[idx].Favorites = append([]string{}, st.Favorites...)
			}
		}
		out = append([]string{}, st.Favorites...)
		return true, nil
	})
	return out, err
}

func userIndex(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
