package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/usecase"
	"alumnihub/pkg/errors"
)

type fakeChatService struct {
	getConversation func(userID string, role entity.Role, conversationID string) (*entity.Conversation, error)
	sendMessage     func(senderID string, role entity.Role, input usecase.SendMessageInput) (*usecase.MessageResponse, error)
	markRead        func(readerID, messageID string) (*entity.Message, error)
}

func (s *fakeChatService) GetConversation(ctx context.Context, userID string, role entity.Role, conversationID string) (*entity.Conversation, error) {
	return s.getConversation(userID, role, conversationID)
}

func (s *fakeChatService) SendMessage(ctx context.Context, senderID string, role entity.Role, input usecase.SendMessageInput) (*usecase.MessageResponse, error) {
	return s.sendMessage(senderID, role, input)
}

func (s *fakeChatService) MarkMessageRead(ctx context.Context, readerID, messageID string) (*entity.Message, error) {
	return s.markRead(readerID, messageID)
}

func clientFrame(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	raw, err := json.Marshal(Frame{Event: event, Data: data})
	require.NoError(t, err)
	return raw
}

func TestHandleClientMessageRejectsMalformedFrame(t *testing.T) {
	manager := NewManager()
	gateway := NewGateway(manager, &fakeChatService{})
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)

	gateway.HandleClientMessage(client, []byte("{not json"))

	frame := receiveFrame(t, client)
	assert.Equal(t, EventError, frame.Event)
	assert.Contains(t, string(frame.Data), "Invalid message format")
}

func TestHandleClientMessageUnknownEvent(t *testing.T) {
	manager := NewManager()
	gateway := NewGateway(manager, &fakeChatService{})
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)

	gateway.HandleClientMessage(client, clientFrame(t, "selfDestruct", map[string]string{}))

	frame := receiveFrame(t, client)
	assert.Equal(t, EventError, frame.Event)
	assert.Contains(t, string(frame.Data), "Unknown event")
}

func TestJoinConversationSubscribesToRoom(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		getConversation: func(userID string, role entity.Role, conversationID string) (*entity.Conversation, error) {
			return &entity.Conversation{ID: conversationID, Participants: []string{userID, "alumni-1"}, Approved: true}, nil
		},
	}
	gateway := NewGateway(manager, chat)
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)

	gateway.HandleClientMessage(client, clientFrame(t, EventJoinConversation, conversationPayload{ConversationID: "conv-1"}))

	assert.Equal(t, "conv-1", client.ActiveConversation)

	frame, err := marshalFrame(EventReceiveMessage, map[string]string{"id": "m-1"})
	require.NoError(t, err)
	manager.BroadcastToRoom("conv-1", frame)
	received := receiveFrame(t, client)
	assert.Equal(t, EventReceiveMessage, received.Event)
}

func TestJoinConversationDeniedEmitsErrorFrame(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		getConversation: func(userID string, role entity.Role, conversationID string) (*entity.Conversation, error) {
			return nil, errors.Forbidden("Not authorized", nil)
		},
	}
	gateway := NewGateway(manager, chat)
	client := newTestClient("student-2", entity.RoleStudent)
	manager.register(client)

	gateway.HandleClientMessage(client, clientFrame(t, EventJoinConversation, conversationPayload{ConversationID: "conv-1"}))

	frame := receiveFrame(t, client)
	assert.Equal(t, EventError, frame.Event)
	assert.Contains(t, string(frame.Data), "Not authorized")
	assert.Empty(t, client.ActiveConversation)
}

func TestJoinConversationMissingID(t *testing.T) {
	manager := NewManager()
	gateway := NewGateway(manager, &fakeChatService{})
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)

	gateway.HandleClientMessage(client, clientFrame(t, EventJoinConversation, conversationPayload{}))

	frame := receiveFrame(t, client)
	assert.Equal(t, EventError, frame.Event)
	assert.Contains(t, string(frame.Data), "Missing conversationId")
}

func TestLeaveConversationClearsActiveMarker(t *testing.T) {
	manager := NewManager()
	gateway := NewGateway(manager, &fakeChatService{})
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)
	manager.JoinRoom(client, "conv-1")
	client.ActiveConversation = "conv-1"

	gateway.HandleClientMessage(client, clientFrame(t, EventLeaveConversation, conversationPayload{ConversationID: "conv-1"}))

	assert.Empty(t, client.ActiveConversation)

	frame, err := marshalFrame(EventReceiveMessage, map[string]string{"id": "m-1"})
	require.NoError(t, err)
	manager.BroadcastToRoom("conv-1", frame)
	assertNoFrame(t, client)
}

func TestSendMessageBroadcastsToRoomIncludingSender(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		sendMessage: func(senderID string, role entity.Role, input usecase.SendMessageInput) (*usecase.MessageResponse, error) {
			return &usecase.MessageResponse{
				Message: &entity.Message{
					ID:             "m-1",
					ConversationID: input.ConversationID,
					SenderID:       senderID,
					MessageText:    input.MessageText,
				},
			}, nil
		},
	}
	gateway := NewGateway(manager, chat)
	sender := newTestClient("student-1", entity.RoleStudent)
	receiver := newTestClient("alumni-1", entity.RoleAlumni)
	manager.register(sender)
	manager.register(receiver)
	manager.JoinRoom(sender, "conv-1")
	manager.JoinRoom(receiver, "conv-1")

	gateway.HandleClientMessage(sender, clientFrame(t, EventSendMessage, sendMessagePayload{
		ConversationID: "conv-1",
		MessageText:    "halo",
	}))

	for _, client := range []*Client{sender, receiver} {
		frame := receiveFrame(t, client)
		assert.Equal(t, EventReceiveMessage, frame.Event)
		assert.Contains(t, string(frame.Data), "halo")
	}
}

func TestSendMessageAdminGetsErrorFrame(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		sendMessage: func(senderID string, role entity.Role, input usecase.SendMessageInput) (*usecase.MessageResponse, error) {
			return nil, errors.Forbidden("Admin cannot send messages", nil)
		},
	}
	gateway := NewGateway(manager, chat)
	admin := newTestClient("admin-1", entity.RoleAdmin)
	observer := newTestClient("student-1", entity.RoleStudent)
	manager.register(admin)
	manager.register(observer)
	manager.JoinRoom(admin, "conv-1")
	manager.JoinRoom(observer, "conv-1")

	gateway.HandleClientMessage(admin, clientFrame(t, EventSendMessage, sendMessagePayload{
		ConversationID: "conv-1",
		MessageText:    "hello",
	}))

	frame := receiveFrame(t, admin)
	assert.Equal(t, EventError, frame.Event)
	assert.Contains(t, string(frame.Data), "Admin cannot send messages")
	// Nothing reached the room.
	assertNoFrame(t, observer)
}

func TestMessageReadBroadcastsStatus(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		markRead: func(readerID, messageID string) (*entity.Message, error) {
			return &entity.Message{ID: messageID, ConversationID: "conv-1", SenderID: "student-1", IsRead: true}, nil
		},
	}
	gateway := NewGateway(manager, chat)
	reader := newTestClient("alumni-1", entity.RoleAlumni)
	sender := newTestClient("student-1", entity.RoleStudent)
	manager.register(reader)
	manager.register(sender)
	manager.JoinRoom(reader, "conv-1")
	manager.JoinRoom(sender, "conv-1")

	gateway.HandleClientMessage(reader, clientFrame(t, EventMessageRead, messageReadPayload{MessageID: "m-1"}))

	frame := receiveFrame(t, sender)
	assert.Equal(t, EventMessageReadStatus, frame.Event)

	var status readStatusPayload
	require.NoError(t, json.Unmarshal(frame.Data, &status))
	assert.Equal(t, "m-1", status.MessageID)
	assert.Equal(t, "conv-1", status.ConversationID)
	assert.True(t, status.IsRead)
}

func TestMessageReadUnknownMessageIgnored(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		markRead: func(readerID, messageID string) (*entity.Message, error) {
			return nil, errors.NotFound("Message", nil)
		},
	}
	gateway := NewGateway(manager, chat)
	client := newTestClient("alumni-1", entity.RoleAlumni)
	manager.register(client)

	gateway.HandleClientMessage(client, clientFrame(t, EventMessageRead, messageReadPayload{MessageID: "missing"}))

	assertNoFrame(t, client)
}

func TestMessageReadBySenderIsSilent(t *testing.T) {
	manager := NewManager()
	chat := &fakeChatService{
		markRead: func(readerID, messageID string) (*entity.Message, error) {
			return nil, nil
		},
	}
	gateway := NewGateway(manager, chat)
	client := newTestClient("student-1", entity.RoleStudent)
	manager.register(client)
	manager.JoinRoom(client, "conv-1")

	gateway.HandleClientMessage(client, clientFrame(t, EventMessageRead, messageReadPayload{MessageID: "m-1"}))

	assertNoFrame(t, client)
}

func TestTypingRelayedToOthersOnly(t *testing.T) {
	manager := NewManager()
	gateway := NewGateway(manager, &fakeChatService{})
	typer := newTestClient("student-1", entity.RoleStudent)
	watcher := newTestClient("alumni-1", entity.RoleAlumni)
	manager.register(typer)
	manager.register(watcher)
	manager.JoinRoom(typer, "conv-1")
	manager.JoinRoom(watcher, "conv-1")

	gateway.HandleClientMessage(typer, clientFrame(t, EventTyping, conversationPayload{ConversationID: "conv-1"}))

	frame := receiveFrame(t, watcher)
	assert.Equal(t, EventTyping, frame.Event)

	var payload typingPayload
	require.NoError(t, json.Unmarshal(frame.Data, &payload))
	assert.Equal(t, "student-1", payload.UserID)
	assert.Equal(t, "conv-1", payload.ConversationID)
	assertNoFrame(t, typer)

	gateway.HandleClientMessage(typer, clientFrame(t, EventStopTyping, conversationPayload{ConversationID: "conv-1"}))
	stop := receiveFrame(t, watcher)
	assert.Equal(t, EventStopTyping, stop.Event)
}
