package handlers

import (
	"context"
	"encoding/json"

	"music_chat_backend/pkg/logging"
	"music_chat_backend/platform/events"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WSHandler struct {
	eventPublisher *events.EventPublisher
}

func NewWSHandler(eventPublisher *events.EventPublisher) *WSHandler {
	return &WSHandler{eventPublisher: eventPublisher}
}

func (h *WSHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(400).JSON(fiber.Map{"error": "Not a websocket request"})
}

// HandleArtifactEvents streams artifact notifications for one thread over
// the socket until the client disconnects.
func (h *WSHandler) HandleArtifactEvents(c *websocket.Conn) {
	threadID := c.Params("thread_id")

	logging.Logger.Info("WebSocket connected", "threadID", threadID)

	// cancelable contex, cancels when the function ends
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan, err := h.eventPublisher.SubscribeArtifactEvents(ctx)
	if err != nil {
		logging.Logger.Error("Failed to subscribe to events", "error", err)
		err := c.WriteMessage(websocket.TextMessage, []byte(`{"error":"Failed to subscribe"}`))
		if err != nil {
			return
		}
		return
	}
	// send back to frontend
	err = c.WriteJSON(fiber.Map{
		"type":      "connected",
		"message":   "WebSocket connected successfully",
		"thread_id": threadID,
	})
	if err != nil {
		return
	}

	for {
		select {
		case event := <-eventChan:
			if event == nil {
				return
			}
			if event.ThreadID != threadID {
				continue
			}
			data, _ := json.Marshal(event)
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Logger.Error("Failed to send WebSocket message", "error", err)
				return
			}

			logging.Logger.Info("Event sent to client",
				"type", event.Type,
				"threadID", event.ThreadID,
			)

		case <-ctx.Done():
			return
		}
	}
}
