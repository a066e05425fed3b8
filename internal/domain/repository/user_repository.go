package repository

import (
	"context"

	"alumnihub/internal/domain/entity"
)

// UserRepository is the read surface over accounts. Account provisioning
// lives with the identity provider; this service only resolves and lists
// users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// ListActiveByRole returns verified, active users holding the given role.
	// Used for job/event alert fan-out.
	ListActiveByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
