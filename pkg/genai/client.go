package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	genaisdk "google.golang.org/genai"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/"
	defaultAPIVersion  = "v1beta"
	defaultTextModel   = "gemini-3-flash-preview"
	defaultImageModel  = "gemini-2.5-flash-image"
	defaultSpeechModel = "gemini-2.5-flash-preview-tts"
	defaultTimeout     = 30 * time.Second
)

var errAPIKeyRequired = errors.New("genai api key is required")

// generator is the part of the SDK models service the storefront calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genaisdk.Content, config *genaisdk.GenerateContentConfig) (*genaisdk.GenerateContentResponse, error)
}

// Client runs storefront prompts against Gemini through the genai SDK.
type Client struct {
	models      generator
	textModel   string
	imageModel  string
	speechModel string
}

type settings struct {
	httpClient  *http.Client
	baseURL     string
	apiVersion  string
	textModel   string
	imageModel  string
	speechModel string
}

// Option configures optional client behavior.
type Option func(*settings)

// WithHTTPClient overrides the HTTP client handed to the SDK.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithBaseURL overrides the API root, e.g. for a proxy.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			s.baseURL = trimmed
		}
	}
}

func WithAPIVersion(version string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			s.apiVersion = trimmed
		}
	}
}

func WithTextModel(model string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			s.textModel = trimmed
		}
	}
}

func WithImageModel(model string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			s.imageModel = trimmed
		}
	}
}

func WithSpeechModel(model string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			s.speechModel = trimmed
		}
	}
}

// NewClient builds a Gemini API client given an API key. No request is made.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	s := settings{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     defaultBaseURL,
		apiVersion:  defaultAPIVersion,
		textModel:   defaultTextModel,
		imageModel:  defaultImageModel,
		speechModel: defaultSpeechModel,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	sdk, err := genaisdk.NewClient(ctx, &genaisdk.ClientConfig{
		APIKey:     trimmedKey,
		Backend:    genaisdk.BackendGeminiAPI,
		HTTPClient: s.httpClient,
		HTTPOptions: genaisdk.HTTPOptions{
			BaseURL:    s.baseURL,
			APIVersion: s.apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		models:      sdk.Models,
		textModel:   s.textModel,
		imageModel:  s.imageModel,
		speechModel: s.speechModel,
	}, nil
}

// Generate calls models/{model}:generateContent with a single user turn.
// Every failure is reported as a dependency error.
func (c *Client) Generate(ctx context.Context, model string, parts []*genaisdk.Part, config *genaisdk.GenerateContentConfig) (*genaisdk.GenerateContentResponse, error) {
	if c == nil || c.models == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "genai client not configured")
	}
	if len(parts) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "generate request requires contents")
	}

	contents := []*genaisdk.Content{genaisdk.NewContentFromParts(parts, genaisdk.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		var apiErr genaisdk.APIError
		if errors.As(err, &apiErr) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency,
				fmt.Errorf("status %d: %s", apiErr.Code, strings.TrimSpace(apiErr.Message)), "generate request failed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute generate request")
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "generate response has no candidates")
	}
	return resp, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genaisdk.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// firstInline returns the first inline binary part of the first candidate.
func firstInline(resp *genaisdk.GenerateContentResponse) (*genaisdk.Blob, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, true
		}
	}
	return nil, false
}
