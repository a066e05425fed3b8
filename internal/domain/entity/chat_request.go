package entity

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ChatRequest is a student's ask to open a conversation with an alumni or
// staff member. It transitions from pending to approved or rejected exactly
// once and is terminal afterwards.
type ChatRequest struct {
	ID          string        `json:"id" firestore:"id"`
	RequesterID string        `json:"requester_id" firestore:"requesterId"`
	TargetID    string        `json:"target_id" firestore:"targetId"`
	Status      RequestStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	RespondedAt time.Time     `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}

func (r *ChatRequest) Terminal() bool {
	return r.Status != RequestPending
}
