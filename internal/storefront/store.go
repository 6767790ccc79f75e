package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

// Params wires the store dependencies. Now and NewCode default to the wall
// clock and models.NewShortCode.
type Params struct {
	Vault   *vault.Vault
	Logger  *logger.Logger
	Now     func() time.Time
	NewCode func() string
}

// Store is the single state container. Every mutation runs under mu and
// re-saves every slot before the lock is released.
type Store struct {
	mu       sync.Mutex
	state    State
	vault    *vault.Vault
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
	newCode  func() string
}

// Open loads the persisted state and returns a ready store.
func Open(ctx context.Context, params Params) (*Store, error) {
	if params.Vault == nil {
		return nil, errors.New("vault required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	newCode := params.NewCode
	if newCode == nil {
		newCode = models.NewShortCode
	}
	s := &Store{
		state:    loadState(ctx, params.Vault),
		vault:    params.Vault,
		logg:     logg,
		validate: newValidator(),
		now:      now,
		newCode:  newCode,
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"products": len(s.state.Products),
		"orders":   len(s.state.Orders),
		"users":    len(s.state.Users),
	}), "storefront state loaded")
	return s, nil
}

// mutate applies fn under the lock and persists when fn reports a change.
// A failed save keeps the in-memory change and returns a dependency error.
func (s *Store) mutate(ctx context.Context, fn func(st *State) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed, err := fn(&s.state)
	if err != nil || !changed {
		return err
	}
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.vault.SaveAll(ctx, s.state.slots()); err != nil {
		s.logg.Error(ctx, "failed to persist storefront state", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist storefront state")
	}
	return nil
}

func (s *Store) read(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() State {
	var out State
	s.read(func(st *State) { out = st.Clone() })
	return out
}
