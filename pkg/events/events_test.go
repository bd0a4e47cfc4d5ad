package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delayedView() ctdf.EnrichedTripView {
	return ctdf.EnrichedTripView{
		TripSummary: ctdf.TripSummary{
			ID:                 "trip-1",
			UserID:             "user-1",
			TrainNumber:        "12951",
			TrainName:          "Mumbai Rajdhani",
			SourceStation:      "NDLS",
			DestinationStation: "MMCT",
			JourneyDate:        "2026-03-09",
			Status:             ctdf.TripStatusLive,
			IsLive:             true,
			DelayMinutes:       75,
			NextStation:        "RTM",
		},
		RunningState: ctdf.RunningStateRunning,
	}
}

func newEvent(t *testing.T, eventType ctdf.EventType, body interface{}) ctdf.Event {
	event, err := ctdf.NewEvent(eventType, "user-1", time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), body)
	require.NoError(t, err)
	return event
}

func TestGetNotification(t *testing.T) {
	t.Run("TripDelayed", func(t *testing.T) {
		event := newEvent(t, ctdf.EventTypeTripDelayed, ctdf.TripEventBody{View: delayedView()})

		notification, err := GetNotification(&event)
		require.NoError(t, err)

		assert.Equal(t, "user-1", notification.TargetUser)
		assert.Equal(t, ctdf.NotificationTypeDelayAlert, notification.Type)
		assert.Equal(t, "Mumbai Rajdhani (12951) is running late", notification.Title)
		assert.Equal(t, "Delayed by 1h 15m, next stop RTM.", notification.Message)
	})

	t.Run("TripRuleTriggered", func(t *testing.T) {
		event := newEvent(t, ctdf.EventTypeTripRuleTriggered, ctdf.TripEventBody{View: delayedView(), RuleName: "late-into-ratlam"})

		notification, err := GetNotification(&event)
		require.NoError(t, err)

		assert.Equal(t, ctdf.NotificationTypeDelayAlert, notification.Type)
		assert.Contains(t, notification.Title, "late-into-ratlam")
	})

	t.Run("TripArrived", func(t *testing.T) {
		view := delayedView()
		view.DelayMinutes = 10
		view.RunningState = ctdf.RunningStateTerminated
		event := newEvent(t, ctdf.EventTypeTripArrived, ctdf.TripEventBody{View: view})

		notification, err := GetNotification(&event)
		require.NoError(t, err)

		assert.Equal(t, ctdf.NotificationTypeArrivalReminder, notification.Type)
		assert.Equal(t, "Reached MMCT 10m late.", notification.Message)
	})

	t.Run("TripCancelled", func(t *testing.T) {
		view := delayedView()
		view.Status = ctdf.TripStatusCancelled
		event := newEvent(t, ctdf.EventTypeTripCancelled, ctdf.TripEventBody{View: view})

		notification, err := GetNotification(&event)
		require.NoError(t, err)

		assert.Equal(t, ctdf.NotificationTypeTrainCancelled, notification.Type)
		assert.Equal(t, "The 2026-03-09 Mumbai Rajdhani (12951) from NDLS to MMCT has been cancelled.", notification.Message)
	})

	t.Run("PNRStatusChanged", func(t *testing.T) {
		event := newEvent(t, ctdf.EventTypePNRStatusChanged, ctdf.PNREventBody{
			PNR: "1234567890",
			Changes: []ctdf.PNRPassengerChange{
				{Number: 1, Previous: "WL 12", Current: "RAC 4"},
			},
		})

		notification, err := GetNotification(&event)
		require.NoError(t, err)

		assert.Equal(t, ctdf.NotificationTypePNRUpdate, notification.Type)
		assert.Equal(t, "PNR 1234567890 updated", notification.Title)
		assert.Contains(t, notification.Message, "Passenger 1 now")
	})

	t.Run("UnknownType", func(t *testing.T) {
		event := newEvent(t, ctdf.EventType("Mystery"), struct{}{})

		_, err := GetNotification(&event)
		assert.Error(t, err)
	})
}

func TestQueuePublisher(t *testing.T) {
	connection := rmq.NewTestConnection()

	publisher, err := NewQueuePublisher(connection)
	require.NoError(t, err)

	event := newEvent(t, ctdf.EventTypeTripDelayed, ctdf.TripEventBody{View: delayedView()})
	require.NoError(t, publisher.Publish(context.Background(), event))

	deliveries := connection.GetDeliveries(QueueName)
	require.Len(t, deliveries, 1)

	var decoded ctdf.Event
	require.NoError(t, json.Unmarshal([]byte(deliveries[0]), &decoded))
	assert.Equal(t, ctdf.EventTypeTripDelayed, decoded.Type)
	assert.Equal(t, "user-1", decoded.TargetUser)
}

func TestEventsBatchConsumer(t *testing.T) {
	connection := rmq.NewTestConnection()

	eventsConsumer, err := NewEventsBatchConsumer(connection)
	require.NoError(t, err)

	event := newEvent(t, ctdf.EventTypeTripDelayed, ctdf.TripEventBody{View: delayedView()})
	eventBytes, err := json.Marshal(event)
	require.NoError(t, err)

	untargeted := event
	untargeted.TargetUser = ""
	untargetedBytes, err := json.Marshal(untargeted)
	require.NoError(t, err)

	valid := rmq.NewTestDeliveryString(string(eventBytes))
	noUser := rmq.NewTestDeliveryString(string(untargetedBytes))
	garbage := rmq.NewTestDeliveryString("not json")

	eventsConsumer.Consume(rmq.Deliveries{valid, noUser, garbage})

	assert.Equal(t, rmq.Acked, valid.State)
	assert.Equal(t, rmq.Acked, noUser.State)
	assert.Equal(t, rmq.Acked, garbage.State)

	notifications := connection.GetDeliveries(NotifyQueueName)
	require.Len(t, notifications, 1)

	var notification ctdf.Notification
	require.NoError(t, json.Unmarshal([]byte(notifications[0]), &notification))
	assert.Equal(t, ctdf.NotificationTypeDelayAlert, notification.Type)
	assert.Equal(t, "user-1", notification.TargetUser)
}
