package entity

import "time"

type User struct {
	ID         string    `json:"id" firestore:"id"`
	Name       string    `json:"name" firestore:"name"`
	Email      string    `json:"email" firestore:"email"`
	Role       Role      `json:"role" firestore:"role"`
	BatchYear  int       `json:"batch_year,omitempty" firestore:"batchYear,omitempty"`
	Department string    `json:"department,omitempty" firestore:"department,omitempty"`
	IsVerified bool      `json:"is_verified" firestore:"isVerified"`
	IsActive   bool      `json:"is_active" firestore:"isActive"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PublicProfile is the subset of user fields exposed to other users in chat
// listings and request enrichment.
type PublicProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	BatchYear  int    `json:"batch_year,omitempty"`
	Department string `json:"department,omitempty"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		BatchYear:  u.BatchYear,
		Department: u.Department,
	}
}
