package ws_room

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/reelmatch/core/internal/model"
)

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	roomCode string
}

// Hub is the direct channel: it owns the room → connection registry and
// pushes envelopes straight to connected clients. No ambient state; the
// registry lives and dies with the hub.
type Hub struct {
	mu sync.RWMutex

	// Sets of clients within each room. Mutations are add/remove on one
	// room's set, so there is no cross-room contention.
	rooms map[string]map[*Client]bool

	logger *slog.Logger
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.roomCode]; !ok {
		h.rooms[client.roomCode] = make(map[*Client]bool)
	}
	h.rooms[client.roomCode][client] = true

	h.logger.Info("client registered",
		slog.String("user_id", client.userID),
		slog.String("room", client.roomCode))
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.roomCode]; ok {
		if _, ok := room[client]; ok {
			delete(room, client)
			close(client.send)
		}
		if len(room) == 0 {
			delete(h.rooms, client.roomCode)
		}
	}

	h.logger.Info("client unregistered",
		slog.String("user_id", client.userID),
		slog.String("room", client.roomCode))
}

func (h *Hub) broadcastToRoom(roomCode string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomCode]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Slow consumer. Drop it rather than stall the room.
				close(client.send)
				delete(clients, client)
			}
		}
	}
}

// publish marshals the envelope once and fans it out to the room.
func (h *Hub) publish(_ context.Context, env model.EventEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	h.broadcastToRoom(env.RoomID, data)
	return nil
}

func (h *Hub) PublishVote(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishMatch(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishMemberStatus(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishRoleAssignment(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishModerationAction(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishScheduleEvent(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishThemeChange(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishSettingsChange(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishChatMessage(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) PublishContentSuggestion(ctx context.Context, env model.EventEnvelope) error {
	return h.publish(ctx, env)
}

func (h *Hub) ConnectedUsers(roomCode string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return nil
	}

	users := make([]string, 0, len(clients))
	for client := range clients {
		users = append(users, client.userID)
	}
	return users
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.rooms {
		for client := range clients {
			if client.userID == userID {
				return true
			}
		}
	}
	return false
}

func (h *Hub) ConnectionStats() (int, map[string]int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	perRoom := make(map[string]int, len(h.rooms))
	for roomCode, clients := range h.rooms {
		perRoom[roomCode] = len(clients)
		total += len(clients)
	}
	return total, perRoom
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.conn.Close()
	}()

	for {
		_, _, err := client.conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.conn.Close()

	for message := range client.send {
		err := client.conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
