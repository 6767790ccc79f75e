package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	genaisdk "google.golang.org/genai"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
)

const (
	// MinImageBytes rejects obviously truncated uploads before calling out.
	MinImageBytes = 100
	// MaxThankYouChars keeps thank-you messages within one SMS.
	MaxThankYouChars = 160
	ThankYouSignoff  = "Enjoy responsibly. 21+ only."

	alertVoice = "Kore"
)

const categoryChoices = `"Flowers", "Disposables", "Carts", "Pre-Rolls", "Gummies", "Edibles", "Concentrates", "Tinctures", "Drinks", "Accessories"`

type DescribeRequest struct {
	Name     string
	Brand    string
	Category string
	Type     string
	THC      float64
}

type Description struct {
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	Tags             []string `json:"tags"`
}

// Extraction is the structured product read off a label or pasted text.
type Extraction struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	THC         float64  `json:"thc"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Weights     []string `json:"weights,omitempty"`
}

type ExtractRequest struct {
	Text     string
	Image    []byte
	MimeType string
}

// Media is binary model output such as an edited image or a speech clip.
type Media struct {
	MimeType string
	Data     []byte
}

// InventoryLine is the product digest embedded in assistant prompts.
type InventoryLine struct {
	Name  string   `json:"name"`
	Brand string   `json:"brand"`
	Type  string   `json:"type"`
	THC   float64  `json:"thc"`
	Tags  []string `json:"tags"`
}

var stringList = &genaisdk.Schema{Type: genaisdk.TypeArray, Items: &genaisdk.Schema{Type: genaisdk.TypeString}}

var descriptionSchema = &genaisdk.Schema{
	Type: genaisdk.TypeObject,
	Properties: map[string]*genaisdk.Schema{
		"shortDescription": {Type: genaisdk.TypeString},
		"fullDescription":  {Type: genaisdk.TypeString},
		"tags":             stringList,
	},
	Required: []string{"shortDescription", "fullDescription", "tags"},
}

var extractionSchema = &genaisdk.Schema{
	Type: genaisdk.TypeObject,
	Properties: map[string]*genaisdk.Schema{
		"name":        {Type: genaisdk.TypeString},
		"brand":       {Type: genaisdk.TypeString},
		"thc":         {Type: genaisdk.TypeNumber},
		"type":        {Type: genaisdk.TypeString, Enum: []string{"Sativa", "Indica", "Hybrid"}},
		"category":    {Type: genaisdk.TypeString},
		"description": {Type: genaisdk.TypeString},
		"weights":     stringList,
	},
	Required: []string{"name", "brand", "thc", "type", "category"},
}

func jsonOutput(schema *genaisdk.Schema) *genaisdk.GenerateContentConfig {
	return &genaisdk.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// DescribeProduct writes menu copy for a product.
func (c *Client) DescribeProduct(ctx context.Context, req DescribeRequest) (Description, error) {
	prompt := fmt.Sprintf(`Generate a high-end dispensary description for a cannabis product.
Product: %s by %s
Category: %s
Type: %s
THC: %g%%
Provide a short 1-line summary, a detailed 3-line description (aroma, effects, taste), and 5 tags.`,
		req.Name, req.Brand, req.Category, req.Type, req.THC)

	resp, err := c.Generate(ctx, c.textModel, []*genaisdk.Part{genaisdk.NewPartFromText(prompt)}, jsonOutput(descriptionSchema))
	if err != nil {
		return Description{}, err
	}
	var out Description
	if err := decodeStructured(resp, &out); err != nil {
		return Description{}, err
	}
	return out, nil
}

// RemoveBackground returns the first image part of a studio-white edit.
func (c *Client) RemoveBackground(ctx context.Context, image []byte, mimeType string) (Media, error) {
	if len(image) < MinImageBytes {
		return Media{}, pkgerrors.New(pkgerrors.CodeValidation, "image payload too small")
	}
	resp, err := c.Generate(ctx, c.imageModel, []*genaisdk.Part{
		imagePart(image, mimeType),
		genaisdk.NewPartFromText("MANDATORY: Remove all background elements from this image. Replace the background with a solid, pure studio white (#FFFFFF). Centrally align the product. Ensure no artifacts or shadows remain unless they are soft and look professionally shot in a studio. Output the final image bytes."),
	}, nil)
	if err != nil {
		return Media{}, err
	}
	blob, ok := firstInline(resp)
	if !ok {
		return Media{}, pkgerrors.New(pkgerrors.CodeDependency, "background removal returned no image")
	}
	return Media{MimeType: blob.MIMEType, Data: blob.Data}, nil
}

// ExtractProduct reads product fields from a packaging photo, pasted text, or
// both.
func (c *Client) ExtractProduct(ctx context.Context, req ExtractRequest) (Extraction, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Image) == 0 {
		return Extraction{}, pkgerrors.New(pkgerrors.CodeValidation, "text or image is required")
	}
	if len(req.Image) > 0 && len(req.Image) < MinImageBytes {
		return Extraction{}, pkgerrors.New(pkgerrors.CodeValidation, "image payload too small")
	}

	var parts []*genaisdk.Part
	if len(req.Image) > 0 {
		parts = append(parts, imagePart(req.Image, req.MimeType))
	}
	prompt := `Act as a professional cannabis product scanner. Extract product information from the provided packaging image or text. If a detail is unclear, make a best guess based on industry standards.
Return a JSON object with:
- name: Product/Strain name (e.g. "Ice Cream Cake")
- brand: Brand name (e.g. "Jungle Boys")
- thc: THC percentage as a number (e.g. 28.5)
- type: One of "Sativa", "Indica", "Hybrid"
- category: One of ` + categoryChoices + `
- description: optional one paragraph summary
- weights: optional list of package sizes such as "3.5g"`
	if text != "" {
		prompt += "\nText:\n" + text
	}
	parts = append(parts, genaisdk.NewPartFromText(prompt))

	resp, err := c.Generate(ctx, c.textModel, parts, jsonOutput(extractionSchema))
	if err != nil {
		return Extraction{}, err
	}
	var out Extraction
	if err := decodeStructured(resp, &out); err != nil {
		return Extraction{}, err
	}
	return out, nil
}

// AnswerCatalogQuestion answers a shopper question grounded in inventory.
func (c *Client) AnswerCatalogQuestion(ctx context.Context, query string, inventory []InventoryLine) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}
	if inventory == nil {
		inventory = []InventoryLine{}
	}
	digest, err := json.Marshal(inventory)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal inventory")
	}
	prompt := fmt.Sprintf(`You are "Bobby Pro", an expert cannabis budtender assistant.
Answer the user's question based on the provided inventory.
User Query: %q
Inventory: %s
Be friendly, helpful, and concise. Highlight specific products.`, query, digest)

	resp, err := c.Generate(ctx, c.textModel, []*genaisdk.Part{genaisdk.NewPartFromText(prompt)}, nil)
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(responseText(resp))
	if answer == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "empty answer")
	}
	return answer, nil
}

// ThankYouMessage writes a short post-pickup note that fits one SMS.
func (c *Client) ThankYouMessage(ctx context.Context, customerName string, itemNames []string, style string) (string, error) {
	prompt := fmt.Sprintf(`Generate a short thank you message for a cannabis customer who just picked up their order.
Customer: %s
Purchased: %s
Style: %s
Rules:
1. Mention the specific items if possible.
2. Keep it under %d characters (for SMS).
3. Always end with: %q
4. Be professional but high-end.`, customerName, strings.Join(itemNames, ", "), style, MaxThankYouChars, ThankYouSignoff)

	resp, err := c.Generate(ctx, c.textModel, []*genaisdk.Part{genaisdk.NewPartFromText(prompt)}, nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "empty thank-you message")
	}
	return FitThankYou(text), nil
}

// Speak renders text as speech and returns the audio clip.
func (c *Client) Speak(ctx context.Context, text string) (Media, error) {
	if strings.TrimSpace(text) == "" {
		return Media{}, pkgerrors.New(pkgerrors.CodeValidation, "alert text is required")
	}
	resp, err := c.Generate(ctx, c.speechModel, []*genaisdk.Part{genaisdk.NewPartFromText(text)}, &genaisdk.GenerateContentConfig{
		ResponseModalities: []string{string(genaisdk.ModalityAudio)},
		SpeechConfig: &genaisdk.SpeechConfig{
			VoiceConfig: &genaisdk.VoiceConfig{
				PrebuiltVoiceConfig: &genaisdk.PrebuiltVoiceConfig{VoiceName: alertVoice},
			},
		},
	})
	if err != nil {
		return Media{}, err
	}
	blob, ok := firstInline(resp)
	if !ok {
		return Media{}, pkgerrors.New(pkgerrors.CodeDependency, "speech response has no audio")
	}
	return Media{MimeType: blob.MIMEType, Data: blob.Data}, nil
}

// FitThankYou truncates msg to MaxThankYouChars and makes sure it ends with
// the signoff.
func FitThankYou(msg string) string {
	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(msg), ThankYouSignoff))
	room := MaxThankYouChars - utf8.RuneCountInString(ThankYouSignoff) - 1
	if utf8.RuneCountInString(body) > room {
		body = strings.TrimSpace(string([]rune(body)[:room]))
	}
	if body == "" {
		return ThankYouSignoff
	}
	return body + " " + ThankYouSignoff
}

func imagePart(image []byte, mimeType string) *genaisdk.Part {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/png"
	}
	return genaisdk.NewPartFromBytes(image, mimeType)
}

func decodeStructured(resp *genaisdk.GenerateContentResponse, out any) error {
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "structured response is empty")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode structured response")
	}
	return nil
}
