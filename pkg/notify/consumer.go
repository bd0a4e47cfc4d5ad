package notify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/adjust/rmq/v5"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
)

type Sender interface {
	Send(ctx context.Context, notification ctdf.Notification) error
}

type NotifyBatchConsumer struct {
	Sender Sender
}

func NewNotifyBatchConsumer(sender Sender) *NotifyBatchConsumer {
	return &NotifyBatchConsumer{Sender: sender}
}

func (c *NotifyBatchConsumer) Consume(batch rmq.Deliveries) {
	ctx := context.Background()

	for _, payload := range batch.Payloads() {
		var notification ctdf.Notification
		if err := json.Unmarshal([]byte(payload), &notification); err != nil {
			log.Error().Err(err).Msg("Failed to decode notification")
			continue
		}

		if err := c.Sender.Send(ctx, notification); err != nil {
			event := log.Error()
			if errors.Is(err, ErrNoPushTarget) {
				event = log.Debug()
			}
			event.Err(err).Str("target", notification.TargetUser).Msg("Failed to send notification")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to consume from queue")
		}
	}
}
