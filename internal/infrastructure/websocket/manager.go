package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"alumnihub/internal/domain/entity"
	"alumnihub/pkg/logger"
)

// Client is one authenticated websocket connection. A user may hold several
// concurrent connections; each is auto-subscribed to the user's private room
// at registration.
type Client struct {
	UserID string
	Role   entity.Role
	Conn   *websocket.Conn
	Send   chan []byte

	// ActiveConversation is an advisory marker of the conversation the
	// client most recently joined. It does not restrict other actions.
	ActiveConversation string
}

// Manager tracks live connections and their room memberships. Rooms give
// O(1) fan-out: one room per user id for direct notification delivery, one
// per conversation for message broadcast.
type Manager struct {
	userConns  map[string]map[*Client]struct{}
	rooms      map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		userConns:  make(map[string]map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// UserRoom is the private room key for a user id.
func UserRoom(userID string) string {
	return "user:" + userID
}

// Start runs the manager's registration loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.register(client)
				logger.Info("Client connected: user %s", client.UserID)

			case client := <-m.Unregister:
				m.unregister(client)
				logger.Info("Client disconnected: user %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) register(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.userConns[client.UserID] == nil {
		m.userConns[client.UserID] = make(map[*Client]struct{})
	}
	m.userConns[client.UserID][client] = struct{}{}

	m.joinRoomLocked(client, UserRoom(client.UserID))
}

func (m *Manager) unregister(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	conns, ok := m.userConns[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}

	delete(conns, client)
	if len(conns) == 0 {
		delete(m.userConns, client.UserID)
	}

	for room, members := range m.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, room)
		}
	}

	close(client.Send)
}

func (m *Manager) JoinRoom(client *Client, room string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.joinRoomLocked(client, room)
}

func (m *Manager) joinRoomLocked(client *Client, room string) {
	if m.rooms[room] == nil {
		m.rooms[room] = make(map[*Client]struct{})
	}
	m.rooms[room][client] = struct{}{}
}

func (m *Manager) LeaveRoom(client *Client, room string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, room)
	}
}

// BroadcastToRoom delivers a frame to every connection subscribed to the
// room, including the originator if subscribed.
func (m *Manager) BroadcastToRoom(room string, payload []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.rooms[room] {
		m.trySend(client, payload)
	}
}

// BroadcastToRoomExcept delivers a frame to room members other than the
// given user. Used for ephemeral presence signals like typing.
func (m *Manager) BroadcastToRoomExcept(room, exceptUserID string, payload []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.rooms[room] {
		if client.UserID == exceptUserID {
			continue
		}
		m.trySend(client, payload)
	}
}

// PushToUser delivers an event to every live connection of a user. It
// satisfies the notification fan-out's Pusher dependency.
func (m *Manager) PushToUser(userID string, event string, payload interface{}) {
	frame, err := marshalFrame(event, payload)
	if err != nil {
		logger.Error("Failed to marshal %s frame for user %s: %v", event, userID, err)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.userConns[userID] {
		m.trySend(client, frame)
	}
}

func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.userConns[userID]) > 0
}

// ConnectionCount reports how many live connections a user holds.
func (m *Manager) ConnectionCount(userID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.userConns[userID])
}

// trySend drops the frame when the client's send buffer is full rather than
// blocking the broadcast. A slow consumer misses frames and recovers via
// REST refetch.
func (m *Manager) trySend(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		logger.Warn("Send buffer full for user %s, dropping frame", client.UserID)
	}
}

// ReadPump reads frames from the connection and dispatches them to the
// gateway until the connection closes.
func (c *Client) ReadPump(g *Gateway) {
	defer func() {
		g.manager.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for user %s: %v", c.UserID, err)
			}
			break
		}

		g.HandleClientMessage(c, raw)
	}
}

// WritePump writes queued frames to the connection until the send channel
// closes.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("Websocket write error for user %s: %v", c.UserID, err)
			return
		}
	}
}

func marshalFrame(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: data})
}
