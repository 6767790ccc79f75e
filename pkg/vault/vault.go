package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/metrics"
	"go.uber.org/multierr"
)

// Params wires the vault dependencies. Session falls back to Local when nil.
type Params struct {
	Local   Backend
	Session Backend
	Logger  *logger.Logger
	Metrics *metrics.VaultMetrics
}

// Vault routes each slot to its backend and handles JSON encoding.
type Vault struct {
	local   Backend
	session Backend
	logg    *logger.Logger
	metrics *metrics.VaultMetrics
}

func New(params Params) (*Vault, error) {
	if params.Local == nil {
		return nil, errors.New("local backend is required")
	}
	session := params.Session
	if session == nil {
		session = params.Local
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Vault{
		local:   params.Local,
		session: session,
		logg:    logg,
		metrics: params.Metrics,
	}, nil
}

func (v *Vault) backendFor(key Key) (Backend, error) {
	if !key.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown vault key").
			WithDetails(map[string]any{"key": string(key)})
	}
	if key.Scope() == ScopeSession {
		return v.session, nil
	}
	return v.local, nil
}

// Save encodes value as JSON and writes it to the slot.
func (v *Vault) Save(ctx context.Context, key Key, value any) error {
	backend, err := v.backendFor(key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		v.metrics.ObserveSave(string(key), err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode slot %s", key))
	}
	err = backend.Put(ctx, key, raw)
	v.metrics.ObserveSave(string(key), err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("persist slot %s", key))
	}
	return nil
}

// SaveAll writes every provided slot in Keys order and reports every failure.
// Slots that fail do not stop the remaining writes.
func (v *Vault) SaveAll(ctx context.Context, slots map[Key]any) error {
	var errs error
	for _, key := range allKeys {
		value, ok := slots[key]
		if !ok {
			continue
		}
		errs = multierr.Append(errs, v.Save(ctx, key, value))
	}
	for key := range slots {
		if !key.Valid() {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "unknown vault key").
				WithDetails(map[string]any{"key": string(key)}))
		}
	}
	return errs
}

// Delete removes the slot so the next Load yields its default.
func (v *Vault) Delete(ctx context.Context, key Key) error {
	backend, err := v.backendFor(key)
	if err != nil {
		return err
	}
	if err := backend.Delete(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("delete slot %s", key))
	}
	return nil
}

func (v *Vault) raw(ctx context.Context, key Key) ([]byte, error) {
	backend, err := v.backendFor(key)
	if err != nil {
		return nil, err
	}
	data, err := backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) || (err == nil && len(data) == 0) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read slot %s", key))
	}
	return data, nil
}

// Fetch decodes the slot into a fresh T. A missing slot returns def and no error;
// unknown keys, backend failures and corrupt payloads return def plus the error.
func Fetch[T any](ctx context.Context, v *Vault, key Key, def T) (T, error) {
	data, err := v.raw(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return def, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("decode slot %s", key))
	}
	return out, nil
}

// Load is Fetch without the error: any failure is logged, counted and
// replaced by def.
func Load[T any](ctx context.Context, v *Vault, key Key, def T) T {
	out, err := Fetch(ctx, v, key, def)
	if err != nil {
		v.fallback(ctx, key, err)
	}
	return out
}

// LoadOver decodes the slot on top of the value returned by def, so fields
// missing from the stored payload keep their defaults.
func LoadOver[T any](ctx context.Context, v *Vault, key Key, def func() T) T {
	data, err := v.raw(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def()
	}
	if err != nil {
		v.fallback(ctx, key, err)
		return def()
	}
	out := def()
	if err := json.Unmarshal(data, &out); err != nil {
		v.fallback(ctx, key, err)
		return def()
	}
	return out
}

func (v *Vault) fallback(ctx context.Context, key Key, err error) {
	v.metrics.IncFallback(string(key))
	ctx = v.logg.WithFields(ctx, map[string]any{
		"vault_key": string(key),
		"error":     err.Error(),
	})
	v.logg.Warn(ctx, "vault slot unreadable, using default")
}
