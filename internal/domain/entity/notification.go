package entity

import "time"

type NotificationType string

const (
	NotificationChatRequest  NotificationType = "chat_request"
	NotificationChatResponse NotificationType = "chat_response"
	NotificationMessage      NotificationType = "message"
	NotificationJobStatus    NotificationType = "job_status"
	NotificationEventStatus  NotificationType = "event_status"
	NotificationJobAlert     NotificationType = "job_alert"
	NotificationEventAlert   NotificationType = "event_alert"
	NotificationSystem       NotificationType = "system"
)

// Notification is the durable "something happened for you" record. SenderID
// is empty for system-generated notices. IsRead only ever flips false to
// true.
type Notification struct {
	ID          string           `json:"id" firestore:"id"`
	RecipientID string           `json:"recipient_id" firestore:"recipientId"`
	SenderID    string           `json:"sender_id,omitempty" firestore:"senderId,omitempty"`
	Type        NotificationType `json:"type" firestore:"type"`
	Title       string           `json:"title" firestore:"title"`
	Message     string           `json:"message" firestore:"message"`
	RelatedID   string           `json:"related_id,omitempty" firestore:"relatedId,omitempty"`
	IsRead      bool             `json:"is_read" firestore:"isRead"`
	CreatedAt   time.Time        `json:"created_at" firestore:"createdAt"`
}
