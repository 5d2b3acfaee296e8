package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans document pushes out to every client of a dictation session.
// Clients are keyed by session ID, not user ID: a phone dictating and a
// laptop watching the same note both receive every update.
type Hub struct {
	// SessionID -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery, nil when running standalone
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("hub", "client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("hub", "session has no clients left", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Push delivers a frame to every client of the session. With Redis the
// frame goes through the cluster channel so every instance (this one
// included) delivers to the session clients it holds; standalone it is
// delivered directly.
func (h *Hub) Push(sessionID uuid.UUID, push *dto.DictationPush) {
	data, err := json.Marshal(push)
	if err != nil {
		h.logger.Warn("hub", "failed to marshal push", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		return
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionID.String(),
			"message":           json.RawMessage(data),
		}
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			h.logger.Warn("hub", "failed to marshal cluster event", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
			return
		}
		if err := h.rdb.Publish(context.Background(), "cluster_events", jsonPayload).Err(); err != nil {
			h.logger.Warn("hub", "failed to publish cluster event", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		}
		return
	}

	h.deliverLocal(sessionID, data)
}

func (h *Hub) deliverLocal(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[sessionID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Run owns closing Send; closing here as well would double
			// close once the unregister is processed.
			h.logger.Warn("hub", "client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
	}
}

// subscribeToRedis relays frames published on the cluster channel to the
// session clients this instance holds.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("hub", "failed to parse cluster event", map[string]interface{}{"error": err.Error()})
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}

		h.deliverLocal(sid, payload.Message)
	}
}
