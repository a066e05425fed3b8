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

type firestoreChatRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRequestRepository(client *firestore.Client) repository.ChatRequestRepository {
	return &firestoreChatRequestRepository{
		client: client,
	}
}

func (r *firestoreChatRequestRepository) Create(ctx context.Context, request *entity.ChatRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()

	_, err := r.client.Collection("chatRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create chat request", err)
	}

	return nil
}

func (r *firestoreChatRequestRepository) GetByID(ctx context.Context, id string) (*entity.ChatRequest, error) {
	doc, err := r.client.Collection("chatRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat request", err)
		}
		return nil, errors.Internal("Failed to get chat request", err)
	}

	var request entity.ChatRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse chat request data", err)
	}

	return &request, nil
}

func (r *firestoreChatRequestRepository) Update(ctx context.Context, request *entity.ChatRequest) error {
	_, err := r.client.Collection("chatRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update chat request", err)
	}

	return nil
}

func (r *firestoreChatRequestRepository) ListPendingByTarget(ctx context.Context, targetID string) ([]*entity.ChatRequest, error) {
	query := r.client.Collection("chatRequests").
		Where("targetId", "==", targetID).
		Where("status", "==", string(entity.RequestPending)).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var requests []*entity.ChatRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing pending requests for %s: %v", targetID, err)
			return nil, errors.Internal("Failed to list pending chat requests", err)
		}

		var request entity.ChatRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, errors.Internal("Failed to parse chat request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *firestoreChatRequestRepository) FindPendingByPair(ctx context.Context, requesterID, targetID string) (*entity.ChatRequest, error) {
	query := r.client.Collection("chatRequests").
		Where("requesterId", "==", requesterID).
		Where("targetId", "==", targetID).
		Where("status", "==", string(entity.RequestPending)).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Pending chat request", nil)
		}
		return nil, errors.Internal("Failed to query pending chat request", err)
	}

	var request entity.ChatRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse chat request data", err)
	}

	return &request, nil
}
