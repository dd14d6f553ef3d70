package notification

import (
	"context"
	"errors"
	"fmt"

	"apnakam/database/repository"
	userRepo "apnakam/database/repository/user"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoPushTarget is returned when the recipient has not registered a device.
var ErrNoPushTarget = errors.New("user has no FCM token")

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// MessageSender is the subset of *messaging.Client used for delivery.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users  userRepo.UserRepository
	sender MessageSender
	logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, sender MessageSender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository or sender is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{users: users, sender: sender, logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("SendUserPushNotification: %w", err)
		}
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s: %w", userID, ErrNoPushTarget)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}

	s.logger.Debug("Push sent", zap.String("userID", userID), zap.String("messageID", response))
	return nil
}
