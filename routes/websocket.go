package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"music_chat_backend/handlers"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *handlers.WSHandler) {
	ws := app.Group("/ws")

	// WebSocket route
	ws.Use("/chat/:thread_id", wsHandler.WebSocketUpgrade)
	ws.Get("/chat/:thread_id", websocket.New(wsHandler.HandleArtifactEvents))
}
