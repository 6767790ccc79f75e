package assistant

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront-vault/internal/catalog"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// ErrUnavailable is returned by every call when no AI backend is configured.
var ErrUnavailable = pkgerrors.New(pkgerrors.CodeDependency, "assistant unavailable")

type DescriptionInput struct {
	Name     string
	Brand    string
	Category string
	Type     enums.StrainType
	THC      float64
}

type Description struct {
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	Tags             []string `json:"tags"`
}

// Empty reports whether the description carries no usable copy.
func (d Description) Empty() bool {
	return strings.TrimSpace(d.ShortDescription) == "" &&
		strings.TrimSpace(d.FullDescription) == "" &&
		len(d.Tags) == 0
}

// ApplyTo copies the non-empty fields onto a clone of product. Only the copy
// fields change, so it can be applied to a draft edited since the call began.
func (d Description) ApplyTo(product models.Product) models.Product {
	out := product.Clone()
	if v := strings.TrimSpace(d.ShortDescription); v != "" {
		out.ShortDescription = v
	}
	if v := strings.TrimSpace(d.FullDescription); v != "" {
		out.Description = v
	}
	if len(d.Tags) > 0 {
		out.Tags = append([]string(nil), d.Tags...)
	}
	return out
}

type ExtractInput struct {
	Text     string `json:"text"`
	Image    []byte `json:"image,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// ExtractedProduct is what the scanner read off a label or pasted text.
type ExtractedProduct struct {
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	THC         float64          `json:"thc"`
	Type        enums.StrainType `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Weights     []string         `json:"weights,omitempty"`
}

// Draft turns the extraction into a product draft. Weight variants start at
// zero price and stock.
func (e ExtractedProduct) Draft() models.Product {
	p := models.Product{
		Name:        e.Name,
		Brand:       e.Brand,
		Category:    e.Category,
		Type:        e.Type,
		THC:         e.THC,
		Description: e.Description,
	}
	for _, w := range e.Weights {
		p.Weights = append(p.Weights, models.WeightVariant{Weight: w})
	}
	return p
}

// Collaborator is the hosted generative service used by the storefront.
// Every call may fail; callers degrade instead of surfacing the error.
type Collaborator interface {
	GenerateDescription(ctx context.Context, in DescriptionInput) (Description, error)
	RemoveBackground(ctx context.Context, image []byte, mimeType string) ([]byte, error)
	ExtractProduct(ctx context.Context, in ExtractInput) (ExtractedProduct, error)
	AnswerCatalogQuestion(ctx context.Context, query string, inventory []catalog.InventoryItem) (string, error)
	ThankYouMessage(ctx context.Context, customerName string, itemNames []string, style enums.MessageStyle) (string, error)
	SpeakAlert(ctx context.Context, text string) ([]byte, error)
}

// Disabled is the collaborator used when no API key is configured.
type Disabled struct{}

var _ Collaborator = Disabled{}

func (Disabled) GenerateDescription(context.Context, DescriptionInput) (Description, error) {
	return Description{}, ErrUnavailable
}

func (Disabled) RemoveBackground(context.Context, []byte, string) ([]byte, error) {
	return nil, ErrUnavailable
}

func (Disabled) ExtractProduct(context.Context, ExtractInput) (ExtractedProduct, error) {
	return ExtractedProduct{}, ErrUnavailable
}

func (Disabled) AnswerCatalogQuestion(context.Context, string, []catalog.InventoryItem) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) ThankYouMessage(context.Context, string, []string, enums.MessageStyle) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) SpeakAlert(context.Context, string) ([]byte, error) {
	return nil, ErrUnavailable
}

func normalizeExtraction(in ExtractedProduct) ExtractedProduct {
	out := ExtractedProduct{
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		THC:         in.THC,
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}
	if !out.Type.IsValid() {
		out.Type = enums.StrainTypeHybrid
	}
	if out.THC < 0 {
		out.THC = 0
	}
	seen := map[string]struct{}{}
	for _, w := range in.Weights {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out.Weights = append(out.Weights, w)
	}
	return out
}
