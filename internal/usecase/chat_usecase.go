package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/internal/infrastructure/ratelimit"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

const (
	maxMessageLength       = 2000
	messagePreviewLength   = 50
	messageHistoryLimit    = 100
	adminConversationLimit = 50
)

type ChatUseCase struct {
	requestRepo      repository.ChatRequestRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	notifier         *NotificationUseCase
	rateLimiter      *ratelimit.RateLimiter
}

func NewChatUseCase(
	requestRepo repository.ChatRequestRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		requestRepo:      requestRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		rateLimiter:      rateLimiter,
	}
}

type ChatRequestResponse struct {
	*entity.ChatRequest
	Requester *entity.PublicProfile `json:"requester,omitempty"`
}

type ConversationResponse struct {
	*entity.Conversation
	ParticipantProfiles []*entity.PublicProfile `json:"participant_profiles,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.PublicProfile `json:"sender,omitempty"`
}

type RespondResult struct {
	Request      *entity.ChatRequest  `json:"request"`
	Conversation *entity.Conversation `json:"conversation,omitempty"`
}

type SendMessageInput struct {
	ConversationID string
	MessageText    string
}

// SubmitRequest records a student's ask to open a conversation. While a
// pending request for the same pair exists the call is idempotent and
// returns the existing one.
func (uc *ChatUseCase) SubmitRequest(ctx context.Context, requesterID, targetID string) (*entity.ChatRequest, error) {
	if requesterID == targetID {
		return nil, errors.BadRequest("You cannot request a chat with yourself", nil)
	}

	allowed, _ := uc.rateLimiter.Allow(requesterID, "chat_request")
	if !allowed {
		return nil, errors.TooManyRequests("Too many chat requests. Please wait before trying again")
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, errors.NotFound("Recipient", err)
	}
	if !target.Role.CanRespondToChatRequests() {
		return nil, errors.BadRequest("Chat requests can only be sent to alumni or staff", nil)
	}

	existing, err := uc.requestRepo.FindPendingByPair(ctx, requesterID, targetID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	request := &entity.ChatRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      entity.RequestPending,
	}
	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	requesterName := uc.displayName(ctx, requesterID)
	uc.notifier.Notify(ctx, NotifyInput{
		RecipientID: targetID,
		SenderID:    requesterID,
		Type:        entity.NotificationChatRequest,
		Title:       "New Chat Request",
		Message:     fmt.Sprintf("%s wants to connect with you", requesterName),
		RelatedID:   request.ID,
	})

	return request, nil
}

// ListPendingForTarget returns pending requests addressed to the target,
// newest first, with the requester's public profile attached.
func (uc *ChatUseCase) ListPendingForTarget(ctx context.Context, targetID string) ([]*ChatRequestResponse, error) {
	requests, err := uc.requestRepo.ListPendingByTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*entity.PublicProfile)
	responses := make([]*ChatRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, &ChatRequestResponse{
			ChatRequest: request,
			Requester:   uc.profileFor(ctx, profiles, request.RequesterID),
		})
	}

	return responses, nil
}

// Respond settles a pending chat request. Approving creates the conversation;
// creation is idempotent by chat request id, so a retry after a partial
// failure cannot produce a duplicate.
func (uc *ChatUseCase) Respond(ctx context.Context, responderID, requestID, action string) (*RespondResult, error) {
	if action != "approve" && action != "reject" {
		return nil, errors.BadRequest("Action must be approve or reject", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.TargetID != responderID {
		return nil, errors.Forbidden("You can only respond to requests addressed to you", nil)
	}

	if request.Terminal() {
		return nil, errors.Conflict("Chat request has already been responded to")
	}

	responderName := uc.displayName(ctx, responderID)

	if action == "reject" {
		request.Status = entity.RequestRejected
		request.RespondedAt = time.Now()
		if err := uc.requestRepo.Update(ctx, request); err != nil {
			return nil, err
		}

		uc.notifier.Notify(ctx, NotifyInput{
			RecipientID: request.RequesterID,
			SenderID:    responderID,
			Type:        entity.NotificationChatResponse,
			Title:       "Chat Request Rejected",
			Message:     fmt.Sprintf("%s declined your chat request", responderName),
			RelatedID:   request.ID,
		})

		return &RespondResult{Request: request}, nil
	}

	// The conversation is written before the request flips to approved. If
	// the second write fails the request stays pending and a retry finds the
	// conversation through its chat request id instead of creating another.
	conversation, err := uc.conversationRepo.GetByChatRequestID(ctx, request.ID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		conversation = &entity.Conversation{
			Participants:  []string{request.RequesterID, request.TargetID},
			ChatRequestID: request.ID,
			Approved:      true,
		}
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	request.Status = entity.RequestApproved
	request.RespondedAt = time.Now()
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, NotifyInput{
		RecipientID: request.RequesterID,
		SenderID:    responderID,
		Type:        entity.NotificationChatResponse,
		Title:       "Chat Request Approved",
		Message:     fmt.Sprintf("%s approved your chat request. You can now start chatting", responderName),
		RelatedID:   conversation.ID,
	})

	return &RespondResult{Request: request, Conversation: conversation}, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	conversations, err := uc.conversationRepo.ListApprovedByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.attachProfiles(ctx, conversations), nil
}

// GetConversation loads a conversation and enforces read access: the caller
// must be a participant or an Admin.
func (uc *ChatUseCase) GetConversation(ctx context.Context, userID string, role entity.Role, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) && role != entity.RoleAdmin {
		return nil, errors.Forbidden("Not authorized", nil)
	}

	return conversation, nil
}

// ListMessages returns the conversation's most recent messages, capped at
// 100, in ascending chronological order.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID string, role entity.Role, conversationID string) ([]*MessageResponse, error) {
	if _, err := uc.GetConversation(ctx, userID, role, conversationID); err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID, messageHistoryLimit)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*entity.PublicProfile)
	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, &MessageResponse{
			Message: message,
			Sender:  uc.profileFor(ctx, profiles, message.SenderID),
		})
	}

	return responses, nil
}

// SendMessage validates and persists a message, updates the conversation
// preview, and notifies the other participant when they are offline. Admins
// may observe conversations but never write into them.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, role entity.Role, input SendMessageInput) (*MessageResponse, error) {
	conversation, err := uc.GetConversation(ctx, senderID, role, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if role == entity.RoleAdmin {
		return nil, errors.Forbidden("Admin cannot send messages", nil)
	}

	text := strings.TrimSpace(input.MessageText)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, errors.BadRequest(fmt.Sprintf("Message text cannot exceed %d characters", maxMessageLength), nil)
	}

	allowed, _ := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly")
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		MessageText:    text,
		IsRead:         false,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = preview(text)
	conversation.LastMessageAt = message.CreatedAt
	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		// The message itself is durable; a stale preview is tolerable.
		logger.Warn("Failed to update conversation %s preview: %v", conversation.ID, err)
	}

	profiles := make(map[string]*entity.PublicProfile)
	sender := uc.profileFor(ctx, profiles, senderID)

	for _, participantID := range conversation.Participants {
		if participantID == senderID || uc.notifier.RecipientOnline(participantID) {
			continue
		}
		senderName := ""
		if sender != nil {
			senderName = sender.Name
		}
		uc.notifier.Notify(ctx, NotifyInput{
			RecipientID: participantID,
			SenderID:    senderID,
			Type:        entity.NotificationMessage,
			Title:       "New Message",
			Message:     fmt.Sprintf("%s: %s", senderName, conversation.LastMessage),
			RelatedID:   conversation.ID,
		})
	}

	return &MessageResponse{Message: message, Sender: sender}, nil
}

// MarkMessageRead flips a message's read flag for a non-sender reader. A
// sender reading their own message is a silent no-op and returns nil. The
// flip is idempotent.
func (uc *ChatUseCase) MarkMessageRead(ctx context.Context, readerID, messageID string) (*entity.Message, error) {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID == readerID {
		return nil, nil
	}

	if !message.IsRead {
		if err := uc.messageRepo.MarkRead(ctx, messageID); err != nil {
			return nil, err
		}
		message.IsRead = true
	}

	return message, nil
}

// ListAdminConversations returns the most recent conversations in any
// approval state for admin oversight.
func (uc *ChatUseCase) ListAdminConversations(ctx context.Context) ([]*ConversationResponse, error) {
	conversations, err := uc.conversationRepo.ListRecent(ctx, adminConversationLimit)
	if err != nil {
		return nil, err
	}

	return uc.attachProfiles(ctx, conversations), nil
}

func (uc *ChatUseCase) attachProfiles(ctx context.Context, conversations []*entity.Conversation) []*ConversationResponse {
	profiles := make(map[string]*entity.PublicProfile)
	responses := make([]*ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		resp := &ConversationResponse{Conversation: conversation}
		for _, participantID := range conversation.Participants {
			if profile := uc.profileFor(ctx, profiles, participantID); profile != nil {
				resp.ParticipantProfiles = append(resp.ParticipantProfiles, profile)
			}
		}
		responses = append(responses, resp)
	}
	return responses
}

func (uc *ChatUseCase) profileFor(ctx context.Context, cache map[string]*entity.PublicProfile, userID string) *entity.PublicProfile {
	if profile, ok := cache[userID]; ok {
		return profile
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load profile for user %s: %v", userID, err)
		cache[userID] = nil
		return nil
	}

	cache[userID] = user.Public()
	return cache[userID]
}

func (uc *ChatUseCase) displayName(ctx context.Context, userID string) string {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "Someone"
	}
	return user.Name
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= messagePreviewLength {
		return text
	}
	return string(runes[:messagePreviewLength])
}
