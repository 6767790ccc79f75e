package assistant

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-vault/internal/catalog"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/genai"
)

// Gemini adapts the generateContent client to the Collaborator contract.
type Gemini struct {
	client *genai.Client
}

var _ Collaborator = (*Gemini)(nil)

func NewGemini(client *genai.Client) (*Gemini, error) {
	if client == nil {
		return nil, fmt.Errorf("genai client required")
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) GenerateDescription(ctx context.Context, in DescriptionInput) (Description, error) {
	out, err := g.client.DescribeProduct(ctx, genai.DescribeRequest{
		Name:     in.Name,
		Brand:    in.Brand,
		Category: in.Category,
		Type:     in.Type.String(),
		THC:      in.THC,
	})
	if err != nil {
		return Description{}, err
	}
	return Description{
		ShortDescription: out.ShortDescription,
		FullDescription:  out.FullDescription,
		Tags:             out.Tags,
	}, nil
}

func (g *Gemini) RemoveBackground(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	edited, err := g.client.RemoveBackground(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}
	return edited.Data, nil
}

func (g *Gemini) ExtractProduct(ctx context.Context, in ExtractInput) (ExtractedProduct, error) {
	out, err := g.client.ExtractProduct(ctx, genai.ExtractRequest{
		Text:     in.Text,
		Image:    in.Image,
		MimeType: in.MimeType,
	})
	if err != nil {
		return ExtractedProduct{}, err
	}
	return ExtractedProduct{
		Name:        out.Name,
		Brand:       out.Brand,
		THC:         out.THC,
		Type:        enums.StrainType(out.Type),
		Category:    out.Category,
		Description: out.Description,
		Weights:     out.Weights,
	}, nil
}

func (g *Gemini) AnswerCatalogQuestion(ctx context.Context, query string, inventory []catalog.InventoryItem) (string, error) {
	lines := make([]genai.InventoryLine, 0, len(inventory))
	for _, item := range inventory {
		lines = append(lines, genai.InventoryLine{
			Name:  item.Name,
			Brand: item.Brand,
			Type:  item.Type.String(),
			THC:   item.THC,
			Tags:  item.Tags,
		})
	}
	return g.client.AnswerCatalogQuestion(ctx, query, lines)
}

func (g *Gemini) ThankYouMessage(ctx context.Context, customerName string, itemNames []string, style enums.MessageStyle) (string, error) {
	return g.client.ThankYouMessage(ctx, customerName, itemNames, style.String())
}

func (g *Gemini) SpeakAlert(ctx context.Context, text string) ([]byte, error) {
	clip, err := g.client.Speak(ctx, text)
	if err != nil {
		return nil, err
	}
	return clip.Data, nil
}
