package repository

import (
	"context"

	"alumnihub/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)

	// ListByRecipient returns the recipient's notifications, newest first,
	// capped at limit.
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entity.Notification, error)

	// CountUnread counts the recipient's unread notifications without a
	// retrieval cap.
	CountUnread(ctx context.Context, recipientID string) (int64, error)

	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	MarkRelatedRead(ctx context.Context, recipientID, relatedID string) error
}
