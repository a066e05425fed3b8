package handler

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/usecase"
	"alumnihub/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// GetNotifications returns the caller's latest notifications and unread
// count.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)

	feed, err := h.notificationUseCase.ListMine(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, feed)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}

func (h *NotificationHandler) MarkRelatedRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	relatedID := c.Param("id")

	if err := h.notificationUseCase.MarkRelatedRead(c.Request().Context(), userID, relatedID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}
