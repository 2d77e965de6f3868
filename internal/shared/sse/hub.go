package sse

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event is one Server-Sent Event frame.
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client is a connected event-stream subscriber.
type Client struct {
	ID     string
	UserID string
	Events chan Event
}

// Hub fans events out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("sse client registered",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID),
		zap.Int("total", len(h.clients)))
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("sse client unregistered",
			zap.String("client_id", clientID),
			zap.Int("total", len(h.clients)))
	}
}

// CloseAll ends every subscription, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.Events)
		delete(h.clients, id)
	}
	h.logger.Debug("sse hub closed")
}

// ClientCount returns the number of live subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast never blocks; a client whose buffer is full misses the event.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			h.logger.Warn("sse client buffer full, dropping event",
				zap.String("client_id", client.ID),
				zap.String("event", event.EventType))
		}
	}
}

// PublishPlanningUpdate broadcasts a planning_update event.
func (h *Hub) PublishPlanningUpdate(planningID, articleID, action string) {
	data, _ := json.Marshal(map[string]string{
		"planning_id": planningID,
		"article_id":  articleID,
		"action":      action,
	})
	h.Broadcast(Event{EventType: "planning_update", Data: string(data)})
	h.logger.Debug("sse planning_update published",
		zap.String("planning_id", planningID),
		zap.String("action", action))
}
