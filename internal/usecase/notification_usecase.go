package usecase

import (
	"context"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

// Pusher is the realtime delivery side of the fan-out. The websocket manager
// implements it; handlers receive it by injection rather than through any
// process-wide handle.
type Pusher interface {
	PushToUser(userID string, event string, payload interface{})
	IsOnline(userID string) bool
}

// EventNotification is the event name pushed to a recipient's private room
// when a notification is created while they are connected.
const EventNotification = "notification:new"

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	pusher           Pusher
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, pusher Pusher) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

type NotifyInput struct {
	RecipientID string
	SenderID    string
	Type        entity.NotificationType
	Title       string
	Message     string
	RelatedID   string
}

// Notify persists a notification and pushes it live when the recipient has a
// websocket connection. Failures are logged and swallowed: a notification
// must never fail the domain action that triggered it.
func (uc *NotificationUseCase) Notify(ctx context.Context, input NotifyInput) *entity.Notification {
	notification := &entity.Notification{
		RecipientID: input.RecipientID,
		SenderID:    input.SenderID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		RelatedID:   input.RelatedID,
		IsRead:      false,
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("Failed to persist %s notification for %s: %v", input.Type, input.RecipientID, err)
		return nil
	}

	if uc.pusher != nil && uc.pusher.IsOnline(input.RecipientID) {
		uc.pusher.PushToUser(input.RecipientID, EventNotification, notification)
	}

	return notification
}

// RecipientOnline reports whether the user currently holds a realtime
// connection.
func (uc *NotificationUseCase) RecipientOnline(userID string) bool {
	return uc.pusher != nil && uc.pusher.IsOnline(userID)
}

type NotificationFeed struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

const notificationFeedLimit = 50

// ListMine returns the user's latest notifications plus an unread count. The
// count is not bounded by the retrieval window.
func (uc *NotificationUseCase) ListMine(ctx context.Context, userID string) (*NotificationFeed, error) {
	notifications, err := uc.notificationRepo.ListByRecipient(ctx, userID, notificationFeedLimit)
	if err != nil {
		return nil, err
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*entity.Notification{}
	}

	return &NotificationFeed{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.RecipientID != userID {
		return errors.Forbidden("You can only mark your own notifications read", nil)
	}

	if notification.IsRead {
		return nil
	}

	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

// MarkRelatedRead flips every unread notification of the user that points at
// relatedID. Used when the user opens the screen a notification linked to.
func (uc *NotificationUseCase) MarkRelatedRead(ctx context.Context, userID, relatedID string) error {
	return uc.notificationRepo.MarkRelatedRead(ctx, userID, relatedID)
}
