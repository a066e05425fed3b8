package entity

import "time"

type PostingStatus string

const (
	PostingPending  PostingStatus = "pending"
	PostingApproved PostingStatus = "approved"
	PostingRejected PostingStatus = "rejected"
)

// Job is an alumni- or staff-submitted job posting awaiting admin review.
type Job struct {
	ID          string        `json:"id" firestore:"id"`
	Title       string        `json:"title" firestore:"title"`
	Company     string        `json:"company" firestore:"company"`
	Description string        `json:"description" firestore:"description"`
	PostedBy    string        `json:"posted_by" firestore:"postedBy"`
	Status      PostingStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	ReviewedAt  time.Time     `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
}

type Event struct {
	ID          string        `json:"id" firestore:"id"`
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Date        time.Time     `json:"date" firestore:"date"`
	PostedBy    string        `json:"posted_by" firestore:"postedBy"`
	Status      PostingStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	ReviewedAt  time.Time     `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
}
