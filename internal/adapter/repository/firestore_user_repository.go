package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) ListActiveByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	query := r.client.Collection("users").
		Where("role", "==", string(role)).
		Where("isVerified", "==", true).
		Where("isActive", "==", true)

	iter := query.Documents(ctx)
	var users []*entity.User

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing %s users: %v", role, err)
			return nil, errors.Internal("Failed to list users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping unparsable user document %s: %v", doc.Ref.ID, err)
			continue
		}
		users = append(users, &user)
	}

	return users, nil
}
