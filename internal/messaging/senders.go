package messaging

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/sendgrid"
)

// Sender delivers one message log entry.
type Sender interface {
	Send(ctx context.Context, entry models.MessageLog) error
}

type mailer interface {
	Send(ctx context.Context, msg sendgrid.Message) error
}

// EmailSender delivers entries through SendGrid.
type EmailSender struct {
	mail    mailer
	subject string
}

func NewEmailSender(mail mailer, subject string) (*EmailSender, error) {
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &EmailSender{mail: mail, subject: subject}, nil
}

func (e *EmailSender) Send(ctx context.Context, entry models.MessageLog) error {
	return e.mail.Send(ctx, sendgrid.Message{
		To:      sendgrid.Address{Email: entry.Recipient, Name: entry.CustomerName},
		Subject: e.subject,
		Text:    entry.Content,
	})
}

// LogSender records SMS deliveries in the structured log instead of calling
// a carrier.
type LogSender struct {
	logg *logger.Logger
}

func NewLogSender(logg *logger.Logger) *LogSender {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LogSender{logg: logg}
}

func (l *LogSender) Send(ctx context.Context, entry models.MessageLog) error {
	ctx = l.logg.WithFields(ctx, map[string]any{
		"order_id":  entry.OrderID,
		"channel":   entry.Channel.String(),
		"recipient": entry.Recipient,
		"content":   entry.Content,
	})
	l.logg.Info(ctx, "sms delivered")
	return nil
}
