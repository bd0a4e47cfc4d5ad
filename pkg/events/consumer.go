package events

import (
	"bytes"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/elastic_client"
	"github.com/rs/zerolog/log"
)

const (
	NotifyQueueName  = "notify-queue"
	eventIndexPrefix = "railtrack-events"
)

// EventsBatchConsumer turns events into notifications for the notify queue.
type EventsBatchConsumer struct {
	NotifyQueue rmq.Queue
}

func NewEventsBatchConsumer(connection rmq.Connection) (*EventsBatchConsumer, error) {
	notifyQueue, err := connection.OpenQueue(NotifyQueueName)
	if err != nil {
		return nil, err
	}

	return &EventsBatchConsumer{NotifyQueue: notifyQueue}, nil
}

func (c *EventsBatchConsumer) Consume(batch rmq.Deliveries) {
	for _, payload := range batch.Payloads() {
		c.handle([]byte(payload))
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to consume event")
		}
	}
}

func (c *EventsBatchConsumer) handle(payload []byte) {
	var event ctdf.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Error().Err(err).Msg("Failed to decode event")
		return
	}

	if elastic_client.Enabled() {
		elastic_client.IndexRequest(elastic_client.MonthlyIndexName(eventIndexPrefix, event.Timestamp), bytes.NewReader(payload))
	}

	if event.TargetUser == "" {
		log.Debug().Str("type", string(event.Type)).Msg("Event has no target user")
		return
	}

	notification, err := GetNotification(&event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to build notification")
		return
	}

	notificationBytes, err := json.Marshal(notification)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode notification")
		return
	}

	if err := c.NotifyQueue.PublishBytes(notificationBytes); err != nil {
		log.Error().Err(err).Str("user", event.TargetUser).Msg("Failed to queue notification")
		return
	}

	log.Debug().
		Str("type", string(event.Type)).
		Str("notification", string(notification.Type)).
		Str("user", event.TargetUser).
		Msg("Queued notification")
}
