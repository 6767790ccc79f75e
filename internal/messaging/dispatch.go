package messaging

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
)

const (
	DispatchJobName   = "message-dispatch"
	errChannelMissing = "channel not configured"
)

type DispatchParams struct {
	Store   logStore
	Senders map[enums.MessageChannel]Sender
	Logger  *logger.Logger
	Now     func() time.Time
}

// DispatchJob sends pending messages once their delay has elapsed.
type DispatchJob struct {
	store   logStore
	senders map[enums.MessageChannel]Sender
	logg    *logger.Logger
	now     func() time.Time
}

func NewDispatchJob(params DispatchParams) (*DispatchJob, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("message log store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	senders := map[enums.MessageChannel]Sender{}
	for channel, sender := range params.Senders {
		if sender != nil {
			senders[channel] = sender
		}
	}
	return &DispatchJob{store: params.Store, senders: senders, logg: logg, now: now}, nil
}

func (j *DispatchJob) Name() string { return DispatchJobName }

// Run marks every due entry sent or failed. Delivery failures are recorded on
// the entry; only store errors are returned.
func (j *DispatchJob) Run(ctx context.Context) error {
	delay := j.store.Settings().Messaging.DelayMinutes
	now := j.now()

	var errs error
	sent, failed := 0, 0
	for _, entry := range j.store.MessageLogs() {
		if !due(entry, delay, now) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		entryCtx := j.logg.WithFields(ctx, map[string]any{"message_id": entry.ID, "order_id": entry.OrderID})
		sender, ok := j.senders[entry.Channel]
		if !ok {
			entry.Status = enums.MessageStatusFailed
			entry.Error = errChannelMissing
		} else if err := sender.Send(entryCtx, entry); err != nil {
			j.logg.Error(entryCtx, "message delivery failed", err)
			entry.Status = enums.MessageStatusFailed
			entry.Error = err.Error()
		} else {
			entry.Status = enums.MessageStatusSent
			entry.Error = ""
		}

		if entry.Status == enums.MessageStatusSent {
			sent++
		} else {
			failed++
		}
		if _, err := j.store.UpdateMessageLog(ctx, entry); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if sent+failed > 0 {
		j.logg.Info(j.logg.WithFields(ctx, map[string]any{"sent": sent, "failed": failed}), "message dispatch finished")
	}
	return errs
}
