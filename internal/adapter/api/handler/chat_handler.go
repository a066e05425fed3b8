package handler

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/usecase"
	"alumnihub/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type submitRequestRequest struct {
	TargetID string `json:"target_id" validate:"required"`
}

type respondRequestRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=approve reject"`
}

// SubmitRequest lets a student ask an alumni or staff member for a chat.
func (h *ChatHandler) SubmitRequest(c echo.Context) error {
	var req submitRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.chatUseCase.SubmitRequest(c.Request().Context(), userID, req.TargetID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

// GetPendingRequests lists pending chat requests addressed to the caller.
func (h *ChatHandler) GetPendingRequests(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.chatUseCase.ListPendingForTarget(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

// RespondRequest approves or rejects a pending chat request.
func (h *ChatHandler) RespondRequest(c echo.Context) error {
	var req respondRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	result, err := h.chatUseCase.Respond(c.Request().Context(), userID, req.RequestID, req.Action)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

// GetConversations lists the caller's approved conversations.
func (h *ChatHandler) GetConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// GetMessages returns the last 100 messages of a conversation the caller may
// read.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	conversationID := c.Param("conversationId")
	userID := c.Get("uid").(string)
	role := c.Get("role").(entity.Role)

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, role, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// GetAdminConversations returns recent conversations in any state for
// oversight.
func (h *ChatHandler) GetAdminConversations(c echo.Context) error {
	conversations, err := h.chatUseCase.ListAdminConversations(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}
