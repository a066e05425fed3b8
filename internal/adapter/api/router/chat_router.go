package router

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/adapter/api/handler"
	"alumnihub/internal/adapter/api/middleware"
	"alumnihub/internal/domain/entity"
)

// SetupChatRouter wires the chat REST surface. Role gates mirror the
// workflow: students ask, alumni and staff answer, admins observe.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chat")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("/request", chatHandler.SubmitRequest,
		middleware.RequireRoles(entity.RoleStudent))
	chatGroup.GET("/requests", chatHandler.GetPendingRequests,
		middleware.RequireRoles(entity.RoleAlumni, entity.RoleStaff))
	chatGroup.PUT("/request/respond", chatHandler.RespondRequest,
		middleware.RequireRoles(entity.RoleAlumni, entity.RoleStaff))

	chatGroup.GET("/conversations", chatHandler.GetConversations)
	chatGroup.GET("/messages/:conversationId", chatHandler.GetMessages)

	chatGroup.GET("/admin/chats", chatHandler.GetAdminConversations,
		middleware.RequireRoles(entity.RoleAdmin))
}
