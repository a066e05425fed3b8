package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entity.Notification, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing notifications for %s: %v", recipientID, err)
			return nil, errors.Internal("Failed to list notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			logger.Warn("Skipping unparsable notification document %s: %v", doc.Ref.ID, err)
			continue
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("isRead", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return r.markMatchingRead(ctx, r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("isRead", "==", false))
}

func (r *firestoreNotificationRepository) MarkRelatedRead(ctx context.Context, recipientID, relatedID string) error {
	return r.markMatchingRead(ctx, r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("relatedId", "==", relatedID).
		Where("isRead", "==", false))
}

func (r *firestoreNotificationRepository) markMatchingRead(ctx context.Context, query firestore.Query) error {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query unread notifications", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}}); err != nil {
			return errors.Internal("Failed to mark notification read", err)
		}
	}

	return nil
}
