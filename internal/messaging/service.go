package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type logStore interface {
	Settings() models.StoreSettings
	MessageLogs() []models.MessageLog
	AppendMessageLog(ctx context.Context, entries ...models.MessageLog) ([]models.MessageLog, error)
	UpdateMessageLog(ctx context.Context, entry models.MessageLog) (bool, error)
}

type thankYouWriter interface {
	ThankYouMessage(ctx context.Context, customerName string, itemNames []string, style enums.MessageStyle) (string, error)
}

type ServiceParams struct {
	Store  logStore
	Writer thankYouWriter
	Logger *logger.Logger
}

// Service queues post-pickup thank-you messages.
type Service struct {
	store  logStore
	writer thankYouWriter
	logg   *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("message log store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{store: params.Store, writer: params.Writer, logg: logg}, nil
}

// OnPickedUp appends one pending message per configured channel that the
// order has contact details for.
func (s *Service) OnPickedUp(ctx context.Context, order models.Order, settings models.StoreSettings) error {
	cfg := settings.Messaging
	if !cfg.PostPickupEnabled {
		return nil
	}
	ctx = s.logg.WithOrderID(ctx, order.ID)

	var entries []models.MessageLog
	var personalized string
	for _, channel := range cfg.Channel.Channels() {
		recipient := recipientFor(order, channel)
		if recipient == "" {
			continue
		}
		content := templateFor(cfg, channel)
		if cfg.AIPersonalization {
			if personalized == "" {
				personalized = s.personalize(ctx, order, cfg.Style)
			}
			if personalized != "" {
				content = personalized
			}
		}
		entries = append(entries, models.MessageLog{
			CustomerName: order.CustomerName,
			OrderID:      order.ID,
			Channel:      channel,
			Status:       enums.MessageStatusPending,
			Content:      content,
			Recipient:    recipient,
		})
	}
	if len(entries) == 0 {
		s.logg.Info(ctx, "no reachable channel for post-pickup message")
		return nil
	}
	if _, err := s.store.AppendMessageLog(ctx, entries...); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "messages", len(entries)), "post-pickup messages queued")
	return nil
}

func (s *Service) personalize(ctx context.Context, order models.Order, style enums.MessageStyle) string {
	if s.writer == nil {
		return ""
	}
	msg, err := s.writer.ThankYouMessage(ctx, order.CustomerName, order.ItemNames(), style)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "thank-you personalization failed; using template")
		return ""
	}
	return strings.TrimSpace(msg)
}

func recipientFor(order models.Order, channel enums.MessageChannel) string {
	switch channel {
	case enums.MessageChannelSMS:
		return strings.TrimSpace(order.CustomerPhone)
	case enums.MessageChannelEmail:
		return strings.TrimSpace(order.CustomerEmail)
	}
	return ""
}

func templateFor(cfg models.MessagingSettings, channel enums.MessageChannel) string {
	if channel == enums.MessageChannelEmail {
		return cfg.EmailTemplate
	}
	return cfg.SMSTemplate
}

// due reports whether a pending entry has waited out the configured delay.
func due(entry models.MessageLog, delayMinutes int, now time.Time) bool {
	if entry.Status != enums.MessageStatusPending {
		return false
	}
	return !now.Before(entry.Timestamp.Add(time.Duration(delayMinutes) * time.Minute))
}
