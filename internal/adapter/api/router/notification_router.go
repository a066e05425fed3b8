package router

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/adapter/api/handler"
	"alumnihub/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.GetNotifications)
	notificationGroup.PUT("/read-all", notificationHandler.MarkAllRead)
	notificationGroup.PUT("/related/:id/read", notificationHandler.MarkRelatedRead)
	notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)
}
