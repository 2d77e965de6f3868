package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/shared/sse"
	"go.uber.org/zap"
)

type SSEHandler struct {
	hub       *sse.Hub
	logger    *zap.Logger
	heartbeat time.Duration
}

func NewSSEHandler(hub *sse.Hub, logger *zap.Logger) *SSEHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SSEHandler{hub: hub, logger: logger, heartbeat: 30 * time.Second}
}

// Stream GET /api/v1/sse/events?token=xxx
//
// The stream ends when the client disconnects, a write fails or the hub
// closes the subscription.
func (h *SSEHandler) Stream(c *gin.Context) {
	sub := &sse.Client{
		ID:     fmt.Sprintf("%s_%d", GetUserID(c), time.Now().UnixNano()),
		UserID: GetUserID(c),
		Events: make(chan sse.Event, 64),
	}
	h.hub.Register(sub)
	defer h.hub.Unregister(sub.ID)

	header := c.Writer.Header()
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	if !h.send(c, sub.ID, "connected", gin.H{"client_id": sub.ID}) {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-sub.Events:
			if !ok || !h.send(c, sub.ID, event.EventType, event.Data) {
				return
			}
		case now := <-ticker.C:
			if !h.send(c, sub.ID, "heartbeat", now.Unix()) {
				return
			}
		}
	}
}

// send writes one event and flushes it, reporting whether the stream is
// still usable.
func (h *SSEHandler) send(c *gin.Context, clientID, name string, data interface{}) bool {
	c.SSEvent(name, data)
	if c.IsAborted() {
		h.logger.Debug("sse write failed", zap.String("client_id", clientID), zap.String("errors", c.Errors.String()))
		return false
	}
	c.Writer.Flush()
	return true
}
