package assistant

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-vault/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// AskFallback is shown to shoppers whenever the assistant cannot answer.
const AskFallback = "I'm having trouble thinking right now. Ask me again in a moment!"

// AlertMimeType describes the raw PCM clips produced by the speech model.
const AlertMimeType = "audio/L16;codec=pcm;rate=24000"

// Alert is the most recent spoken staff notification.
type Alert struct {
	Text      string    `json:"text"`
	Audio     []byte    `json:"audio"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

type Params struct {
	Collaborator Collaborator
	Logger       *logger.Logger
	Now          func() time.Time
}

// Service applies collaborator results to storefront data. Failures leave the
// input unchanged and are only logged.
type Service struct {
	collab Collaborator
	logg   *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	latest *Alert
}

func NewService(params Params) *Service {
	collab := params.Collaborator
	if collab == nil {
		collab = Disabled{}
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{collab: collab, logg: logg, now: now}
}

// Collaborator exposes the underlying collaborator for callers that need a
// raw result, such as message personalisation.
func (s *Service) Collaborator() Collaborator {
	return s.collab
}

// Enabled reports whether a real AI backend is wired.
func (s *Service) Enabled() bool {
	_, disabled := s.collab.(Disabled)
	return !disabled
}

// Describe generates copy for product. ok is false when the call failed or
// returned nothing usable, in which case the failure has been logged.
func (s *Service) Describe(ctx context.Context, product models.Product) (Description, bool) {
	desc, err := s.collab.GenerateDescription(ctx, DescriptionInput{
		Name:     product.Name,
		Brand:    product.Brand,
		Category: product.Category,
		Type:     product.Type,
		THC:      product.THC,
	})
	if err != nil {
		s.warn(s.logg.WithProductID(ctx, product.ID), "description generation failed", err)
		return Description{}, false
	}
	if desc.Empty() {
		return Description{}, false
	}
	return desc, true
}

// ApplyDescription fetches and applies copy in one step.
func (s *Service) ApplyDescription(ctx context.Context, product models.Product) models.Product {
	desc, ok := s.Describe(ctx, product)
	if !ok {
		return product.Clone()
	}
	return desc.ApplyTo(product)
}

// CleanedImage removes the background from image and returns it as a PNG
// data URL.
func (s *Service) CleanedImage(ctx context.Context, productID string, image []byte, mimeType string) (string, bool) {
	cleaned, err := s.collab.RemoveBackground(ctx, image, mimeType)
	if err != nil {
		s.warn(s.logg.WithProductID(ctx, productID), "background removal failed", err)
		return "", false
	}
	if len(cleaned) == 0 {
		return "", false
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(cleaned), true
}

// CleanImage swaps the product image for a background-removed PNG data URL.
func (s *Service) CleanImage(ctx context.Context, product models.Product, image []byte, mimeType string) models.Product {
	out := product.Clone()
	if dataURL, ok := s.CleanedImage(ctx, product.ID, image, mimeType); ok {
		out.Image = dataURL
	}
	return out
}

// Ask answers a shopper question about the published catalog.
func (s *Service) Ask(ctx context.Context, query string, products []models.Product) string {
	answer, err := s.collab.AnswerCatalogQuestion(ctx, query, catalog.InventorySummary(products))
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			s.warn(ctx, "assistant answer failed", err)
		}
		return AskFallback
	}
	return answer
}

// Scan extracts a product draft from a label photo or pasted text.
func (s *Service) Scan(ctx context.Context, input ExtractInput) (ExtractedProduct, error) {
	if strings.TrimSpace(input.Text) == "" && len(input.Image) == 0 {
		return ExtractedProduct{}, pkgerrors.New(pkgerrors.CodeValidation, "text or image is required").
			WithDetails(map[string]string{"text": "required"})
	}
	out, err := s.collab.ExtractProduct(ctx, input)
	if err != nil {
		s.warn(ctx, "product scan failed", err)
		return ExtractedProduct{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan product")
	}
	return normalizeExtraction(out), nil
}

// NewOrderAlert speaks a staff alert for a new order when notifications and
// the alarm sound are both on.
func (s *Service) NewOrderAlert(ctx context.Context, order models.Order, settings models.StoreSettings) {
	if !settings.NotificationsOn || !settings.AlarmSoundOn {
		return
	}
	text := fmt.Sprintf("New order from %s. %d items, total %s dollars.", order.CustomerName, len(order.Items), order.Total.StringFixed(2))
	_ = s.Alert(s.logg.WithOrderID(ctx, order.ID), text)
}

// Alert renders text to speech and keeps the clip as the latest alert.
func (s *Service) Alert(ctx context.Context, text string) error {
	clip, err := s.collab.SpeakAlert(ctx, text)
	if err != nil {
		s.warn(ctx, "speak alert failed", err)
		return err
	}
	s.mu.Lock()
	s.latest = &Alert{Text: text, Audio: clip, MimeType: AlertMimeType, CreatedAt: s.now()}
	s.mu.Unlock()
	return nil
}

func (s *Service) LatestAlert() (Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Alert{}, false
	}
	out := *s.latest
	out.Audio = append([]byte(nil), s.latest.Audio...)
	return out, true
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	s.logg.Warn(s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), msg)
}
