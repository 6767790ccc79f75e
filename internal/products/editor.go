package product

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-vault/internal/assistant"
	"github.com/angelmondragon/storefront-vault/internal/autosave"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type productStore interface {
	Product(id string) (models.Product, error)
	ValidateProduct(product models.Product) error
	CreateProduct(ctx context.Context) (models.Product, error)
	CreateProductFrom(ctx context.Context, draft models.Product) (models.Product, error)
	SaveProduct(ctx context.Context, product models.Product) (bool, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
}

type enricher interface {
	Describe(ctx context.Context, product models.Product) (assistant.Description, bool)
	CleanedImage(ctx context.Context, productID string, image []byte, mimeType string) (string, bool)
	Scan(ctx context.Context, input assistant.ExtractInput) (assistant.ExtractedProduct, error)
}

// Editor exposes the staff product editing operations.
type Editor interface {
	Create(ctx context.Context) (models.Product, error)
	Edit(ctx context.Context, id string, draft models.Product) (models.Product, error)
	Draft(id string) (models.Product, error)
	SaveStatus(id string) enums.SaveStatus
	Flush(ctx context.Context, id string) error
	FlushAll(ctx context.Context) error
	Delete(ctx context.Context, id string) (bool, error)
	Describe(ctx context.Context, id string) (models.Product, error)
	CleanImage(ctx context.Context, id string, image []byte, mimeType string) (models.Product, error)
	Scan(ctx context.Context, input assistant.ExtractInput) (models.Product, error)
}

type EditorParams struct {
	Store     productStore
	Assistant enricher
	Logger    *logger.Logger
	Delay     time.Duration
}

type editor struct {
	store productStore
	ai    enricher
	logg  *logger.Logger
	delay time.Duration

	mu     sync.Mutex
	drafts map[string]*autosave.Debouncer[models.Product]

	// serialises read-modify-push of drafts between Edit and AI merges
	pushMu sync.Mutex
}

// NewEditor builds the autosaving product editor.
func NewEditor(params EditorParams) (Editor, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("product store required")
	}
	if params.Assistant == nil {
		return nil, fmt.Errorf("assistant required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &editor{
		store:  params.Store,
		ai:     params.Assistant,
		logg:   logg,
		delay:  params.Delay,
		drafts: map[string]*autosave.Debouncer[models.Product]{},
	}, nil
}

func (e *editor) Create(ctx context.Context) (models.Product, error) {
	return e.store.CreateProduct(ctx)
}

// Edit queues draft for autosave. The id in the path wins over the body.
func (e *editor) Edit(ctx context.Context, id string, draft models.Product) (models.Product, error) {
	if _, err := e.store.Product(id); err != nil {
		return models.Product{}, err
	}
	draft = draft.Clone()
	draft.ID = id
	if err := e.store.ValidateProduct(draft); err != nil {
		return models.Product{}, err
	}
	e.pushMu.Lock()
	e.debouncer(id).Push(draft)
	e.pushMu.Unlock()
	return draft, nil
}

// Draft returns the pending edit, or the stored product when nothing is
// pending.
func (e *editor) Draft(id string) (models.Product, error) {
	if d := e.existing(id); d != nil {
		if value, ok := d.Pending(); ok {
			return value.Clone(), nil
		}
	}
	return e.store.Product(id)
}

func (e *editor) SaveStatus(id string) enums.SaveStatus {
	if d := e.existing(id); d != nil {
		return d.Status()
	}
	return enums.SaveStatusSaved
}

func (e *editor) Flush(ctx context.Context, id string) error {
	d := e.existing(id)
	if d == nil {
		return nil
	}
	return d.Flush(ctx)
}

// FlushAll commits every pending draft; used on shutdown.
func (e *editor) FlushAll(ctx context.Context) error {
	e.mu.Lock()
	pending := make([]*autosave.Debouncer[models.Product], 0, len(e.drafts))
	for _, d := range e.drafts {
		pending = append(pending, d)
	}
	e.mu.Unlock()

	var errs error
	for _, d := range pending {
		errs = multierr.Append(errs, d.Flush(ctx))
	}
	return errs
}

// Delete drops any pending autosave before removing the product.
func (e *editor) Delete(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	if d, ok := e.drafts[id]; ok {
		d.Cancel()
		delete(e.drafts, id)
	}
	e.mu.Unlock()
	return e.store.DeleteProduct(ctx, id)
}

// Describe generates copy for the current draft. The AI call runs unlocked;
// its fields are then merged into whatever the draft is by the time it
// returns. A failed call leaves the draft and its save status alone.
func (e *editor) Describe(ctx context.Context, id string) (models.Product, error) {
	current, err := e.Draft(id)
	if err != nil {
		return models.Product{}, err
	}
	desc, ok := e.ai.Describe(ctx, current)
	if !ok {
		return current, nil
	}
	return e.merge(id, desc.ApplyTo)
}

// CleanImage replaces the draft image with a background-removed version.
func (e *editor) CleanImage(ctx context.Context, id string, image []byte, mimeType string) (models.Product, error) {
	current, err := e.Draft(id)
	if err != nil {
		return models.Product{}, err
	}
	if len(image) == 0 {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "image is required").
			WithDetails(map[string]string{"image": "required"})
	}
	dataURL, ok := e.ai.CleanedImage(ctx, id, image, mimeType)
	if !ok {
		return current, nil
	}
	return e.merge(id, func(p models.Product) models.Product {
		out := p.Clone()
		out.Image = dataURL
		return out
	})
}

// merge applies fn to the latest draft and queues the result.
func (e *editor) merge(id string, fn func(models.Product) models.Product) (models.Product, error) {
	e.pushMu.Lock()
	defer e.pushMu.Unlock()
	latest, err := e.Draft(id)
	if err != nil {
		return models.Product{}, err
	}
	updated := fn(latest)
	e.debouncer(id).Push(updated)
	return updated.Clone(), nil
}

// Scan reads a label or pasted text and creates a product from it.
func (e *editor) Scan(ctx context.Context, input assistant.ExtractInput) (models.Product, error) {
	extracted, err := e.ai.Scan(ctx, input)
	if err != nil {
		return models.Product{}, err
	}
	created, err := e.store.CreateProductFrom(ctx, extracted.Draft())
	if err != nil {
		return models.Product{}, err
	}
	e.logg.Info(e.logg.WithProductID(ctx, created.ID), "product created from scan")
	return created, nil
}

func (e *editor) existing(id string) *autosave.Debouncer[models.Product] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drafts[id]
}

func (e *editor) debouncer(id string) *autosave.Debouncer[models.Product] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d, ok := e.drafts[id]; ok {
		return d
	}
	d := autosave.New(e.delay, e.commitFunc(id))
	e.drafts[id] = d
	return d
}

func (e *editor) commitFunc(id string) autosave.CommitFunc[models.Product] {
	return func(ctx context.Context, product models.Product) error {
		ctx = e.logg.WithProductID(ctx, id)
		found, err := e.store.SaveProduct(ctx, product)
		if err != nil {
			e.logg.Error(ctx, "autosave product failed", err)
			return err
		}
		if !found {
			e.logg.Warn(ctx, "autosave skipped for removed product")
		}
		return nil
	}
}
