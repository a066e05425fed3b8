package entity

import "time"

type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	MessageText    string    `json:"message_text" firestore:"messageText"`
	IsRead         bool      `json:"is_read" firestore:"isRead"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
