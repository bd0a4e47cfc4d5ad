package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrNoPushTarget = errors.New("no push notification target for user")

type PushTargetStore interface {
	PushTarget(ctx context.Context, userID string) (*ctdf.UserPushNotificationTarget, error)
}

type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushManager delivers notifications to the FCM token a user registered.
type PushManager struct {
	Targets   PushTargetStore
	Messaging MessageSender
}

// NewPushManager builds a Firebase messaging client from a base64 encoded
// service account.
func NewPushManager(ctx context.Context, serviceAccount string, targets PushTargetStore) (*PushManager, error) {
	decodedKey, err := base64.StdEncoding.DecodeString(serviceAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to decode firebase service account: %w", err)
	}

	opts := []option.ClientOption{option.WithCredentialsJSON(decodedKey)}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}

	fcmClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &PushManager{
		Targets:   targets,
		Messaging: fcmClient,
	}, nil
}

func (m *PushManager) Send(ctx context.Context, notification ctdf.Notification) error {
	target, err := m.Targets.PushTarget(ctx, notification.TargetUser)
	if err != nil {
		return err
	}
	if target == nil || target.PushNotificationToken == "" {
		return ErrNoPushTarget
	}

	_, err = m.Messaging.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Message,
		},
		Data: map[string]string{
			"type": string(notification.Type),
		},
		Token: target.PushNotificationToken,
	})
	if err != nil {
		return err
	}

	log.Info().Str("target", notification.TargetUser).Str("type", string(notification.Type)).Msg("Sent Push Notification")

	return nil
}
