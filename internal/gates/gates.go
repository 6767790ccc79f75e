package gates

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// DefaultErrorResetDelay is how long a wrong-secret flag stays raised.
const DefaultErrorResetDelay = time.Second

type gateStore interface {
	Settings() models.StoreSettings
	AgeVerified() bool
	SetAgeVerified(ctx context.Context) error
	CustomerUnlocked() bool
	SetCustomerUnlocked(ctx context.Context, unlocked bool) error
	SetStoreOpen(ctx context.Context, open bool) error
}

// Status is what the UI needs to decide which overlay to show.
type Status struct {
	AgeVerified      bool `json:"ageVerified"`
	CustomerUnlocked bool `json:"customerUnlocked"`
	CustomerLocked   bool `json:"customerLocked"`
	StaffActive      bool `json:"staffActive"`
	StaffError       bool `json:"staffError"`
	PinError         bool `json:"pinError"`
}

type Params struct {
	Store           gateStore
	Logger          *logger.Logger
	ErrorResetDelay time.Duration
}

// Gates holds the age, staff and customer-PIN gates. Secrets are compared as
// plain strings against the current settings.
type Gates struct {
	store gateStore
	logg  *logger.Logger

	mu          sync.Mutex
	staffActive bool

	staffErr *errorFlag
	pinErr   *errorFlag
}

func New(params Params) (*Gates, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("gate store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	delay := params.ErrorResetDelay
	if delay <= 0 {
		delay = DefaultErrorResetDelay
	}
	return &Gates{
		store:    params.Store,
		logg:     logg,
		staffErr: newErrorFlag(delay),
		pinErr:   newErrorFlag(delay),
	}, nil
}

// VerifyAge records the 21+ confirmation.
func (g *Gates) VerifyAge(ctx context.Context) error {
	return g.store.SetAgeVerified(ctx)
}

// EnterStaff activates staff mode and opens the store when password matches.
func (g *Gates) EnterStaff(ctx context.Context, password string) error {
	if password != g.store.Settings().AdminPassword {
		g.staffErr.raise()
		g.logg.Warn(g.logg.WithGate(ctx, "staff"), "staff password rejected")
		return pkgerrors.New(pkgerrors.CodeValidation, "incorrect staff password").
			WithDetails(map[string]string{"password": "mismatch"})
	}
	g.staffErr.clear()
	g.mu.Lock()
	g.staffActive = true
	g.mu.Unlock()
	g.logg.Info(g.logg.WithGate(ctx, "staff"), "staff mode entered")
	return g.store.SetStoreOpen(ctx, true)
}

// ExitStaff leaves staff mode and closes the store.
func (g *Gates) ExitStaff(ctx context.Context) error {
	g.mu.Lock()
	g.staffActive = false
	g.mu.Unlock()
	g.logg.Info(g.logg.WithGate(ctx, "staff"), "staff mode exited")
	return g.store.SetStoreOpen(ctx, false)
}

func (g *Gates) AgeVerified() bool {
	return g.store.AgeVerified()
}

func (g *Gates) StaffActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.staffActive
}

// UnlockCustomer opens the customer menu for this session when pin matches.
func (g *Gates) UnlockCustomer(ctx context.Context, pin string) error {
	if pin != g.store.Settings().CustomerPin {
		g.pinErr.raise()
		g.logg.Warn(g.logg.WithGate(ctx, "customer_pin"), "customer pin rejected")
		return pkgerrors.New(pkgerrors.CodeValidation, "incorrect pin").
			WithDetails(map[string]string{"pin": "mismatch"})
	}
	g.pinErr.clear()
	return g.store.SetCustomerUnlocked(ctx, true)
}

// CustomerLocked is true only when the PIN gate is enabled, this session has
// not unlocked it, and staff mode is off.
func (g *Gates) CustomerLocked() bool {
	return g.store.Settings().CustomerPinEnabled && !g.store.CustomerUnlocked() && !g.StaffActive()
}

func (g *Gates) Status() Status {
	unlocked := g.store.CustomerUnlocked()
	staff := g.StaffActive()
	return Status{
		AgeVerified:      g.store.AgeVerified(),
		CustomerUnlocked: unlocked,
		CustomerLocked:   g.store.Settings().CustomerPinEnabled && !unlocked && !staff,
		StaffActive:      staff,
		StaffError:       g.staffErr.isRaised(),
		PinError:         g.pinErr.isRaised(),
	}
}
