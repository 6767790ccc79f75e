package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-vault/internal/assistant"
	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

type fakeCollaborator struct {
	assistant.Disabled
	desc     assistant.Description
	descErr  error
	imageErr error
	scanned  assistant.ExtractedProduct
}

func (f *fakeCollaborator) GenerateDescription(context.Context, assistant.DescriptionInput) (assistant.Description, error) {
	return f.desc, f.descErr
}

func (f *fakeCollaborator) RemoveBackground(context.Context, []byte, string) ([]byte, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return []byte("clean"), nil
}

// gatedCollaborator holds every AI call until release is closed.
type gatedCollaborator struct {
	assistant.Disabled
	started chan struct{}
	release chan struct{}
}

func newGatedCollaborator() *gatedCollaborator {
	return &gatedCollaborator{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedCollaborator) GenerateDescription(context.Context, assistant.DescriptionInput) (assistant.Description, error) {
	g.started <- struct{}{}
	<-g.release
	return assistant.Description{ShortDescription: "short", FullDescription: "full", Tags: []string{"Sweet"}}, nil
}

func (g *gatedCollaborator) RemoveBackground(context.Context, []byte, string) ([]byte, error) {
	g.started <- struct{}{}
	<-g.release
	return []byte("clean"), nil
}

func (f *fakeCollaborator) ExtractProduct(context.Context, assistant.ExtractInput) (assistant.ExtractedProduct, error) {
	return f.scanned, nil
}

func newEditor(t *testing.T, collab assistant.Collaborator, delay time.Duration) (Editor, *storefront.Store) {
	t.Helper()
	v, err := vault.New(vault.Params{Local: vault.NewMemoryBackend()})
	require.NoError(t, err)
	store, err := storefront.Open(context.Background(), storefront.Params{Vault: v})
	require.NoError(t, err)
	ed, err := NewEditor(EditorParams{
		Store:     store,
		Assistant: assistant.NewService(assistant.Params{Collaborator: collab}),
		Delay:     delay,
	})
	require.NoError(t, err)
	return ed, store
}

func TestNewEditorRequiresDependencies(t *testing.T) {
	_, err := NewEditor(EditorParams{})
	require.Error(t, err)
}

func TestEditAutosavesAfterQuietPeriod(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t, &fakeCollaborator{}, 20*time.Millisecond)
	original, err := store.Product("1")
	require.NoError(t, err)

	draft := original.Clone()
	draft.Name = "Renamed"
	draft.ID = "ignored"
	got, err := ed.Edit(ctx, "1", draft)
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, enums.SaveStatusUnsaved, ed.SaveStatus("1"))

	stored, _ := store.Product("1")
	assert.Equal(t, original.Name, stored.Name, "not committed before the quiet period")
	pending, err := ed.Draft("1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", pending.Name)

	require.Eventually(t, func() bool { return ed.SaveStatus("1") == enums.SaveStatusSaved }, time.Second, 5*time.Millisecond)
	stored, _ = store.Product("1")
	assert.Equal(t, "Renamed", stored.Name)
}

func TestEditRejectsUnknownAndInvalid(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t, &fakeCollaborator{}, time.Hour)

	_, err := ed.Edit(ctx, "nope", store.Products()[0])
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	bad, _ := store.Product("1")
	bad.Weights[0].Price = decimal.NewFromInt(-1)
	_, err = ed.Edit(ctx, "1", bad)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, enums.SaveStatusSaved, ed.SaveStatus("1"))
}

func TestDescribeBuildsOnDraftAndFlush(t *testing.T) {
	ctx := context.Background()
	collab := &fakeCollaborator{desc: assistant.Description{ShortDescription: "Short", FullDescription: "Long", Tags: []string{"Calm"}}}
	ed, store := newEditor(t, collab, time.Hour)

	draft, _ := store.Product("1")
	draft.Name = "Draft Name"
	_, err := ed.Edit(ctx, "1", draft)
	require.NoError(t, err)

	described, err := ed.Describe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Draft Name", described.Name)
	assert.Equal(t, "Short", described.ShortDescription)

	require.NoError(t, ed.Flush(ctx, "1"))
	stored, _ := store.Product("1")
	assert.Equal(t, "Draft Name", stored.Name)
	assert.Equal(t, "Long", stored.Description)
	assert.Equal(t, []string{"Calm"}, stored.Tags)
}

func TestDescribeFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t, &fakeCollaborator{descErr: errors.New("quota")}, time.Hour)
	before, _ := store.Product("1")

	got, err := ed.Describe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Description, got.Description)
	assert.Equal(t, before.Tags, got.Tags)
	assert.Equal(t, enums.SaveStatusSaved, ed.SaveStatus("1"), "a failed call queues nothing")

	draft := before.Clone()
	draft.Name = "Pending Name"
	_, err = ed.Edit(ctx, "1", draft)
	require.NoError(t, err)
	_, err = ed.Describe(ctx, "1")
	require.NoError(t, err)
	pending, err := ed.Draft("1")
	require.NoError(t, err)
	assert.Equal(t, "Pending Name", pending.Name)
	assert.Equal(t, before.Description, pending.Description)
}

func TestDescribeMergesIntoEditsMadeDuringCall(t *testing.T) {
	ctx := context.Background()
	collab := newGatedCollaborator()
	ed, store := newEditor(t, collab, time.Hour)
	original, _ := store.Product("1")

	done := make(chan error, 1)
	go func() {
		_, err := ed.Describe(ctx, "1")
		done <- err
	}()
	<-collab.started

	edited := original.Clone()
	edited.Name = "Edited During Call"
	_, err := ed.Edit(ctx, "1", edited)
	require.NoError(t, err)

	close(collab.release)
	require.NoError(t, <-done)

	draft, err := ed.Draft("1")
	require.NoError(t, err)
	assert.Equal(t, "Edited During Call", draft.Name)
	assert.Equal(t, "full", draft.Description)
	assert.Equal(t, "short", draft.ShortDescription)
	assert.Equal(t, []string{"Sweet"}, draft.Tags)

	require.NoError(t, ed.Flush(ctx, "1"))
	stored, _ := store.Product("1")
	assert.Equal(t, "Edited During Call", stored.Name)
	assert.Equal(t, "full", stored.Description)
}

func TestCleanImageMergesIntoEditsMadeDuringCall(t *testing.T) {
	ctx := context.Background()
	collab := newGatedCollaborator()
	ed, store := newEditor(t, collab, time.Hour)
	original, _ := store.Product("1")

	done := make(chan error, 1)
	go func() {
		_, err := ed.CleanImage(ctx, "1", make([]byte, 128), "image/png")
		done <- err
	}()
	<-collab.started

	edited := original.Clone()
	edited.Description = "typed while the image was cleaned"
	_, err := ed.Edit(ctx, "1", edited)
	require.NoError(t, err)

	close(collab.release)
	require.NoError(t, <-done)

	draft, err := ed.Draft("1")
	require.NoError(t, err)
	assert.Equal(t, "typed while the image was cleaned", draft.Description)
	assert.Equal(t, "data:image/png;base64,Y2xlYW4=", draft.Image)
}

func TestCleanImageFailureKeepsStatus(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t, &fakeCollaborator{imageErr: errors.New("timeout")}, time.Hour)
	before, _ := store.Product("1")

	got, err := ed.CleanImage(ctx, "1", make([]byte, 128), "image/png")
	require.NoError(t, err)
	assert.Equal(t, before.Image, got.Image)
	assert.Equal(t, enums.SaveStatusSaved, ed.SaveStatus("1"))
}

func TestCleanImage(t *testing.T) {
	ctx := context.Background()
	ed, _ := newEditor(t, &fakeCollaborator{}, time.Hour)

	_, err := ed.CleanImage(ctx, "1", nil, "image/png")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	got, err := ed.CleanImage(ctx, "1", make([]byte, 128), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,Y2xlYW4=", got.Image)
	assert.Equal(t, enums.SaveStatusUnsaved, ed.SaveStatus("1"))
	require.NoError(t, ed.FlushAll(ctx))
	assert.Equal(t, enums.SaveStatusSaved, ed.SaveStatus("1"))
}

func TestDeleteCancelsPendingAutosave(t *testing.T) {
	ctx := context.Background()
	ed, store := newEditor(t, &fakeCollaborator{}, 10*time.Millisecond)

	draft, _ := store.Product("2")
	_, err := ed.Edit(ctx, "2", draft)
	require.NoError(t, err)

	found, err := ed.Delete(ctx, "2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, enums.SaveStatusSaved, ed.SaveStatus("2"))

	time.Sleep(30 * time.Millisecond)
	_, err = store.Product("2")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestScanCreatesProduct(t *testing.T) {
	ctx := context.Background()
	collab := &fakeCollaborator{scanned: assistant.ExtractedProduct{Name: "Runtz", Brand: "Cookies", Type: "Unknown", THC: 27, Weights: []string{"1g"}}}
	ed, store := newEditor(t, collab, time.Hour)

	created, err := ed.Scan(ctx, assistant.ExtractInput{Text: "Runtz by Cookies 27% 1g"})
	require.NoError(t, err)
	assert.Equal(t, "Runtz", created.Name)
	assert.Equal(t, enums.StrainTypeHybrid, created.Type)
	require.Len(t, created.Weights, 1)
	assert.Equal(t, "1g", created.Weights[0].Weight)
	assert.Equal(t, created.ID, store.Products()[0].ID)

	_, err = ed.Scan(ctx, assistant.ExtractInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreatePassesThrough(t *testing.T) {
	ed, store := newEditor(t, &fakeCollaborator{}, time.Hour)
	created, err := ed.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, created.ID, store.Products()[0].ID)
}
