package repository

import (
	"context"

	"alumnihub/internal/domain/entity"
)

type ChatRequestRepository interface {
	Create(ctx context.Context, request *entity.ChatRequest) error
	GetByID(ctx context.Context, id string) (*entity.ChatRequest, error)
	Update(ctx context.Context, request *entity.ChatRequest) error

	// ListPendingByTarget returns pending requests addressed to the target,
	// newest first.
	ListPendingByTarget(ctx context.Context, targetID string) ([]*entity.ChatRequest, error)

	// FindPendingByPair returns the pending request between requester and
	// target, or a NOT_FOUND error when none exists.
	FindPendingByPair(ctx context.Context, requesterID, targetID string) (*entity.ChatRequest, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error

	// GetByChatRequestID returns the conversation spawned by the given chat
	// request, or NOT_FOUND. Approval retries dedupe through this lookup.
	GetByChatRequestID(ctx context.Context, chatRequestID string) (*entity.Conversation, error)

	// ListApprovedByParticipant returns approved conversations containing the
	// user, most recent message first.
	ListApprovedByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)

	// ListRecent returns conversations in any approval state, most recent
	// message first, capped at limit. Admin oversight only.
	ListRecent(ctx context.Context, limit int) ([]*entity.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)

	// ListByConversation returns up to limit of the conversation's most
	// recent messages in ascending chronological order.
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error)

	// MarkRead flips the message's isRead flag to true.
	MarkRead(ctx context.Context, messageID string) error
}
