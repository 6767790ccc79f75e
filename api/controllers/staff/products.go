package staff

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-vault/api/responses"
	"github.com/angelmondragon/storefront-vault/api/validators"
	"github.com/angelmondragon/storefront-vault/internal/assistant"
	product "github.com/angelmondragon/storefront-vault/internal/products"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

const defaultImageMime = "image/png"

type imageRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mimeType"`
}

type scanRequest struct {
	Text     string `json:"text" validate:"max=4000"`
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

type labelRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

type draftView struct {
	Product    models.Product   `json:"product"`
	SaveStatus enums.SaveStatus `json:"saveStatus"`
}

// ProductList includes unpublished drafts.
func ProductList(store catalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Products())
	}
}

func ProductCreate(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := editor.Create(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ProductEdit queues the draft for autosave and answers before it commits.
func ProductEdit(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		var draft models.Product
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		queued, err := editor.Edit(r.Context(), id, draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, draftView{Product: queued, SaveStatus: editor.SaveStatus(id)})
	}
}

func ProductSaveStatus(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		current, err := editor.Draft(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draftView{Product: current, SaveStatus: editor.SaveStatus(id)})
	}
}

func ProductFlush(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		if err := editor.Flush(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := editor.Draft(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draftView{Product: current, SaveStatus: editor.SaveStatus(id)})
	}
}

func ProductDelete(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := editor.Delete(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": found})
	}
}

func ProductDescribe(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		updated, err := editor.Describe(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draftView{Product: updated, SaveStatus: editor.SaveStatus(id)})
	}
}

// ProductImage takes raw base64 or a data URL and stores the cleaned image.
func ProductImage(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		var req imageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, mimeType, err := decodeImage(req.Image, req.MimeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := editor.CleanImage(r.Context(), id, image, mimeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draftView{Product: updated, SaveStatus: editor.SaveStatus(id)})
	}
}

func ProductScan(editor product.Editor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := assistant.ExtractInput{Text: strings.TrimSpace(req.Text)}
		if req.Image != "" {
			image, mimeType, err := decodeImage(req.Image, req.MimeType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Image = image
			input.MimeType = mimeType
		}
		created, err := editor.Scan(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func CategoryAdd(store catalogAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req labelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := store.AddCategory(r.Context(), req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func BrandAdd(store catalogAdmin, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req labelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brands, err := store.AddBrand(r.Context(), req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// decodeImage accepts "data:<mime>;base64,<payload>" or bare base64. The data
// URL mime type wins over the explicit one.
func decodeImage(raw, mimeType string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", invalidImage()
		}
		if mt, _, _ := strings.Cut(header, ";"); mt != "" {
			mimeType = mt
		}
		raw = payload
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) == 0 {
		return nil, "", invalidImage()
	}
	if mimeType == "" {
		mimeType = defaultImageMime
	}
	return data, mimeType, nil
}

func invalidImage() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "image must be base64").
		WithDetails(map[string]string{"image": "is invalid"})
}
