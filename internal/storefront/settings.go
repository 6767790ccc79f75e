package storefront

import (
	"context"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// SourceSyncTimeLayout formats SourceSyncSettings.LastSync.
const SourceSyncTimeLayout = "2006-01-02 15:04"

func (s *Store) Settings() models.StoreSettings {
	var out models.StoreSettings
	s.read(func(st *State) { out = st.Settings.Clone() })
	return out
}

// UpdateSettings replaces the whole settings aggregate.
func (s *Store) UpdateSettings(ctx context.Context, settings models.StoreSettings) (models.StoreSettings, error) {
	if err := s.validate.Struct(settings); err != nil {
		return models.StoreSettings{}, validationError(err)
	}
	if settings.CustomProtocols == nil {
		settings.CustomProtocols = []models.CustomProtocol{}
	}
	for i := range settings.CustomProtocols {
		if settings.CustomProtocols[i].ID == "" {
			settings.CustomProtocols[i].ID = models.NewID()
		}
	}
	var out models.StoreSettings
	err := s.mutate(ctx, func(st *State) (bool, error) {
		st.Settings = settings.Clone()
		out = st.Settings.Clone()
		return true, nil
	})
	return out, err
}

// LinkSourceSync connects the backup repository. An empty repo keeps the
// current name.
func (s *Store) LinkSourceSync(ctx context.Context, repo, token string) (models.StoreSettings, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.StoreSettings{}, pkgerrors.New(pkgerrors.CodeValidation, "token is required").
			WithDetails(map[string]string{"token": "is required"})
	}
	var out models.StoreSettings
	err := s.mutate(ctx, func(st *State) (bool, error) {
		link := &st.Settings.SourceSync
		if repo = strings.TrimSpace(repo); repo != "" {
			link.RepoName = repo
		}
		link.Token = token
		link.Enabled = true
		link.Connected = true
		link.LastSync = s.now().UTC().Format(SourceSyncTimeLayout)
		out = st.Settings.Clone()
		return true, nil
	})
	return out, err
}

// SetStoreOpen toggles the storefront open flag, which gates checkout.
func (s *Store) SetStoreOpen(ctx context.Context, open bool) error {
	return s.mutate(ctx, func(st *State) (bool, error) {
		if st.Settings.IsStoreOpen == open {
			return false, nil
		}
		st.Settings.IsStoreOpen = open
		return true, nil
	})
}

func (s *Store) AgeVerified() bool {
	var out bool
	s.read(func(st *State) { out = st.AgeVerified })
	return out
}

// SetAgeVerified records the long-lived age confirmation.
func (s *Store) SetAgeVerified(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) (bool, error) {
		if st.AgeVerified {
			return false, nil
		}
		st.AgeVerified = true
		return true, nil
	})
}

func (s *Store) CustomerUnlocked() bool {
	var out bool
	s.read(func(st *State) { out = st.CustomerUnlocked })
	return out
}

// SetCustomerUnlocked stores the session-scoped PIN unlock flag.
func (s *Store) SetCustomerUnlocked(ctx context.Context, unlocked bool) error {
	return s.mutate(ctx, func(st *State) (bool, error) {
		if st.CustomerUnlocked == unlocked {
			return false, nil
		}
		st.CustomerUnlocked = unlocked
		return true, nil
	})
}

func (s *Store) CheckoutDraft() models.CheckoutDraft {
	var out models.CheckoutDraft
	s.read(func(st *State) { out = st.Checkout })
	return out
}

// UpdateCheckoutDraft remembers the checkout form; it survives placed orders.
func (s *Store) UpdateCheckoutDraft(ctx context.Context, draft models.CheckoutDraft) (models.CheckoutDraft, error) {
	err := s.mutate(ctx, func(st *State) (bool, error) {
		st.Checkout = draft
		return true, nil
	})
	return draft, err
}
