package entity

import "time"

// Conversation is a two-party message thread created when a chat request is
// approved. Participants holds exactly two distinct user ids and is immutable
// after creation.
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	Participants  []string  `json:"participants" firestore:"participants"`
	ChatRequestID string    `json:"chat_request_id,omitempty" firestore:"chatRequestId,omitempty"`
	Approved      bool      `json:"approved" firestore:"approved"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
