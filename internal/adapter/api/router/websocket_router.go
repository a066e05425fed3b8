package router

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the realtime endpoint. Auth runs inside the
// handler because the credential may arrive as a query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
