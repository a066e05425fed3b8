package websocket

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/usecase"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

// Client-to-server and server-to-client event names.
const (
	EventJoinConversation  = "joinConversation"
	EventLeaveConversation = "leaveConversation"
	EventSendMessage       = "sendMessage"
	EventMessageRead       = "messageRead"
	EventTyping            = "typing"
	EventStopTyping        = "stopTyping"

	EventReceiveMessage    = "receiveMessage"
	EventMessageReadStatus = "messageReadStatus"
	EventError             = "error"
)

// Frame is the wire envelope for both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ChatService is what the gateway needs from the chat core. Satisfied by
// usecase.ChatUseCase.
type ChatService interface {
	GetConversation(ctx context.Context, userID string, role entity.Role, conversationID string) (*entity.Conversation, error)
	SendMessage(ctx context.Context, senderID string, role entity.Role, input usecase.SendMessageInput) (*usecase.MessageResponse, error)
	MarkMessageRead(ctx context.Context, readerID, messageID string) (*entity.Message, error)
}

// Gateway authorizes and dispatches realtime events. A failed action emits
// an error frame; the connection is never closed for it.
type Gateway struct {
	manager *Manager
	chat    ChatService
}

func NewGateway(manager *Manager, chat ChatService) *Gateway {
	return &Gateway{
		manager: manager,
		chat:    chat,
	}
}

type conversationPayload struct {
	ConversationID string `json:"conversationId"`
}

type sendMessagePayload struct {
	ConversationID string `json:"conversationId"`
	MessageText    string `json:"messageText"`
}

type messageReadPayload struct {
	MessageID string `json:"messageId"`
}

type readStatusPayload struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	IsRead         bool   `json:"isRead"`
}

type typingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// HandleClientMessage dispatches one inbound frame.
func (g *Gateway) HandleClientMessage(client *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		g.sendError(client, "Invalid message format")
		return
	}

	switch frame.Event {
	case EventJoinConversation:
		g.handleJoinConversation(client, frame.Data)
	case EventLeaveConversation:
		g.handleLeaveConversation(client, frame.Data)
	case EventSendMessage:
		g.handleSendMessage(client, frame.Data)
	case EventMessageRead:
		g.handleMessageRead(client, frame.Data)
	case EventTyping, EventStopTyping:
		g.handleTyping(client, frame.Event, frame.Data)
	default:
		g.sendError(client, "Unknown event")
	}
}

func (g *Gateway) handleJoinConversation(client *Client, data json.RawMessage) {
	var payload conversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		g.sendError(client, "Missing conversationId")
		return
	}

	conversation, err := g.chat.GetConversation(context.Background(), client.UserID, client.Role, payload.ConversationID)
	if err != nil {
		g.sendError(client, errorMessage(err))
		return
	}

	g.manager.JoinRoom(client, conversation.ID)
	client.ActiveConversation = conversation.ID
}

func (g *Gateway) handleLeaveConversation(client *Client, data json.RawMessage) {
	var payload conversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		g.sendError(client, "Missing conversationId")
		return
	}

	g.manager.LeaveRoom(client, payload.ConversationID)
	if client.ActiveConversation == payload.ConversationID {
		client.ActiveConversation = ""
	}
}

func (g *Gateway) handleSendMessage(client *Client, data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		g.sendError(client, "Missing conversationId")
		return
	}

	message, err := g.chat.SendMessage(context.Background(), client.UserID, client.Role, usecase.SendMessageInput{
		ConversationID: payload.ConversationID,
		MessageText:    payload.MessageText,
	})
	if err != nil {
		g.sendError(client, errorMessage(err))
		return
	}

	frame, err := marshalFrame(EventReceiveMessage, message)
	if err != nil {
		logger.Error("Failed to marshal receiveMessage frame: %v", err)
		return
	}

	// The sender is a room member too, so the broadcast doubles as the echo.
	g.manager.BroadcastToRoom(payload.ConversationID, frame)
}

func (g *Gateway) handleMessageRead(client *Client, data json.RawMessage) {
	var payload messageReadPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.MessageID == "" {
		return
	}

	message, err := g.chat.MarkMessageRead(context.Background(), client.UserID, payload.MessageID)
	if err != nil {
		// Unknown message ids are ignored, matching the at-most-once,
		// fire-and-forget nature of read receipts.
		if !errors.Is(err, "NOT_FOUND") {
			g.sendError(client, errorMessage(err))
		}
		return
	}
	if message == nil {
		// Reader is the sender; nothing to do.
		return
	}

	frame, err := marshalFrame(EventMessageReadStatus, readStatusPayload{
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
		IsRead:         message.IsRead,
	})
	if err != nil {
		logger.Error("Failed to marshal messageReadStatus frame: %v", err)
		return
	}

	g.manager.BroadcastToRoom(message.ConversationID, frame)
}

func (g *Gateway) handleTyping(client *Client, event string, data json.RawMessage) {
	var payload conversationPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ConversationID == "" {
		return
	}

	frame, err := marshalFrame(event, typingPayload{
		ConversationID: payload.ConversationID,
		UserID:         client.UserID,
	})
	if err != nil {
		return
	}

	g.manager.BroadcastToRoomExcept(payload.ConversationID, client.UserID, frame)
}

func (g *Gateway) sendError(client *Client, message string) {
	frame, err := marshalFrame(EventError, errorPayload{Message: message})
	if err != nil {
		return
	}
	g.manager.trySend(client, frame)
}

func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
