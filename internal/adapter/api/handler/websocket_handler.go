package handler

import (
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"alumnihub/internal/adapter/api/middleware"
	"alumnihub/internal/domain/repository"
	ws "alumnihub/internal/infrastructure/websocket"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/response"
)

// WebSocketHandler authenticates the handshake and hands the connection to
// the realtime gateway. Auth happens here, not in middleware, because the
// credential may arrive as a query parameter for browser websocket clients.
type WebSocketHandler struct {
	manager  *ws.Manager
	gateway  *ws.Gateway
	verifier middleware.TokenVerifier
	userRepo repository.UserRepository
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restricted by the CORS layer in front
	},
}

func NewWebSocketHandler(manager *ws.Manager, gateway *ws.Gateway, verifier middleware.TokenVerifier, userRepo repository.UserRepository) *WebSocketHandler {
	return &WebSocketHandler{
		manager:  manager,
		gateway:  gateway,
		verifier: verifier,
		userRepo: userRepo,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	uid, err := h.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Account not found", err))
	}
	if !user.IsActive {
		return response.Error(c, errors.Forbidden("Account is deactivated", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written its failure response.
		return nil
	}

	client := &ws.Client{
		UserID: user.ID,
		Role:   user.Role,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.manager.Register <- client

	go client.ReadPump(h.gateway)
	go client.WritePump()

	return nil
}
