package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
	"github.com/angelmondragon/storefront-vault/pkg/sendgrid"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

var placedAt = time.Date(2026, 4, 20, 16, 0, 0, 0, time.UTC)

type fakeWriter struct {
	msg   string
	err   error
	calls int
}

func (f *fakeWriter) ThankYouMessage(context.Context, string, []string, enums.MessageStyle) (string, error) {
	f.calls++
	return f.msg, f.err
}

type recordingSender struct {
	sent []models.MessageLog
	err  error
}

func (r *recordingSender) Send(_ context.Context, entry models.MessageLog) error {
	r.sent = append(r.sent, entry)
	return r.err
}

type recordingMailer struct {
	msgs []sendgrid.Message
}

func (r *recordingMailer) Send(_ context.Context, msg sendgrid.Message) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func openStore(t *testing.T, now *time.Time) *storefront.Store {
	t.Helper()
	v, err := vault.New(vault.Params{Local: vault.NewMemoryBackend()})
	require.NoError(t, err)
	seq := 0
	store, err := storefront.Open(context.Background(), storefront.Params{
		Vault: v,
		Now:   func() time.Time { return *now },
		NewCode: func() string {
			seq++
			return fmt.Sprintf("MSG%03d", seq)
		},
	})
	require.NoError(t, err)
	return store
}

func configure(t *testing.T, store *storefront.Store, mutate func(*models.MessagingSettings)) models.StoreSettings {
	t.Helper()
	settings := store.Settings()
	settings.Messaging.PostPickupEnabled = true
	mutate(&settings.Messaging)
	out, err := store.UpdateSettings(context.Background(), settings)
	require.NoError(t, err)
	return out
}

func pickedUpOrder(email string) models.Order {
	return models.Order{
		ID:            "ORDER1",
		CustomerName:  "Sam",
		CustomerPhone: "5551234567",
		CustomerEmail: email,
		Items:         []models.CartItem{{Name: "Gelato 41", Price: decimal.NewFromInt(45), Quantity: 1}},
		Total:         decimal.NewFromInt(45),
		Status:        enums.OrderStatusPickedUp,
	}
}

func TestOnPickedUpDisabledDoesNothing(t *testing.T) {
	now := placedAt
	store := openStore(t, &now)
	svc, err := NewService(ServiceParams{Store: store})
	require.NoError(t, err)

	require.NoError(t, svc.OnPickedUp(context.Background(), pickedUpOrder(""), store.Settings()))
	assert.Empty(t, store.MessageLogs())
}

func TestOnPickedUpBothChannelsUsesEmailOnlyWhenPresent(t *testing.T) {
	now := placedAt
	store := openStore(t, &now)
	settings := configure(t, store, func(m *models.MessagingSettings) {
		m.Channel = enums.MessagingChannelBoth
		m.AIPersonalization = false
	})
	svc, err := NewService(ServiceParams{Store: store})
	require.NoError(t, err)

	require.NoError(t, svc.OnPickedUp(context.Background(), pickedUpOrder(""), settings))
	logs := store.MessageLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, enums.MessageChannelSMS, logs[0].Channel)
	assert.Equal(t, settings.Messaging.SMSTemplate, logs[0].Content)
	assert.Equal(t, enums.MessageStatusPending, logs[0].Status)
	assert.Equal(t, "5551234567", logs[0].Recipient)

	require.NoError(t, svc.OnPickedUp(context.Background(), pickedUpOrder("sam@example.com"), settings))
	logs = store.MessageLogs()
	require.Len(t, logs, 3)
	assert.Equal(t, enums.MessageChannelEmail, logs[1].Channel)
	assert.Equal(t, settings.Messaging.EmailTemplate, logs[1].Content)
}

func TestOnPickedUpPersonalizesAndFallsBack(t *testing.T) {
	now := placedAt
	store := openStore(t, &now)
	settings := configure(t, store, func(m *models.MessagingSettings) {
		m.Channel = enums.MessagingChannelBoth
		m.AIPersonalization = true
	})

	writer := &fakeWriter{msg: "Thanks Sam, enjoy the Gelato 41! Enjoy responsibly. 21+ only."}
	svc, err := NewService(ServiceParams{Store: store, Writer: writer})
	require.NoError(t, err)
	require.NoError(t, svc.OnPickedUp(context.Background(), pickedUpOrder("sam@example.com"), settings))
	assert.Equal(t, 1, writer.calls, "one generation shared by both channels")
	for _, entry := range store.MessageLogs() {
		assert.Equal(t, writer.msg, entry.Content)
	}

	failing := &fakeWriter{err: errors.New("quota")}
	svc, err = NewService(ServiceParams{Store: store, Writer: failing})
	require.NoError(t, err)
	order := pickedUpOrder("")
	order.ID = "ORDER2"
	require.NoError(t, svc.OnPickedUp(context.Background(), order, settings))
	assert.Equal(t, settings.Messaging.SMSTemplate, store.MessageLogs()[0].Content)
}

func TestDispatchHonorsDelayAndMarksOutcomes(t *testing.T) {
	now := placedAt
	store := openStore(t, &now)
	settings := configure(t, store, func(m *models.MessagingSettings) {
		m.Channel = enums.MessagingChannelBoth
		m.AIPersonalization = false
		m.DelayMinutes = 10
	})
	svc, err := NewService(ServiceParams{Store: store})
	require.NoError(t, err)
	require.NoError(t, svc.OnPickedUp(context.Background(), pickedUpOrder("sam@example.com"), settings))

	sms := &recordingSender{}
	job, err := NewDispatchJob(DispatchParams{
		Store:   store,
		Senders: map[enums.MessageChannel]Sender{enums.MessageChannelSMS: sms},
		Now:     func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, "message-dispatch", job.Name())

	now = placedAt.Add(5 * time.Minute)
	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, sms.sent, "delay not elapsed")

	now = placedAt.Add(10 * time.Minute)
	require.NoError(t, job.Run(context.Background()))
	require.Len(t, sms.sent, 1)

	byChannel := map[enums.MessageChannel]models.MessageLog{}
	for _, entry := range store.MessageLogs() {
		byChannel[entry.Channel] = entry
	}
	assert.Equal(t, enums.MessageStatusSent, byChannel[enums.MessageChannelSMS].Status)
	assert.Equal(t, enums.MessageStatusFailed, byChannel[enums.MessageChannelEmail].Status)
	assert.Equal(t, "channel not configured", byChannel[enums.MessageChannelEmail].Error)

	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, sms.sent, 1, "sent entries are not retried")
}

func TestDispatchRecordsSenderFailure(t *testing.T) {
	now := placedAt
	store := openStore(t, &now)
	_, err := store.AppendMessageLog(context.Background(), models.MessageLog{
		OrderID: "O", Channel: enums.MessageChannelSMS, Status: enums.MessageStatusPending, Recipient: "555",
	})
	require.NoError(t, err)

	job, err := NewDispatchJob(DispatchParams{
		Store:   store,
		Senders: map[enums.MessageChannel]Sender{enums.MessageChannelSMS: &recordingSender{err: errors.New("carrier down")}},
		Now:     func() time.Time { return now },
	})
	require.NoError(t, err)
	require.NoError(t, job.Run(context.Background()))

	entry := store.MessageLogs()[0]
	assert.Equal(t, enums.MessageStatusFailed, entry.Status)
	assert.Equal(t, "carrier down", entry.Error)
}

func TestEmailSenderMapsEntry(t *testing.T) {
	mail := &recordingMailer{}
	sender, err := NewEmailSender(mail, "Thanks for your pickup")
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), models.MessageLog{
		CustomerName: "Sam", Recipient: "sam@example.com", Content: "hello",
	}))
	require.Len(t, mail.msgs, 1)
	assert.Equal(t, "sam@example.com", mail.msgs[0].To.Email)
	assert.Equal(t, "Thanks for your pickup", mail.msgs[0].Subject)
	assert.Equal(t, "hello", mail.msgs[0].Text)

	_, err = NewEmailSender(nil, "")
	assert.Error(t, err)
}

func TestLogSenderNeverFails(t *testing.T) {
	assert.NoError(t, NewLogSender(nil).Send(context.Background(), models.MessageLog{Channel: enums.MessageChannelSMS}))
}
