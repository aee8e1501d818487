package routes

import (
	"music_chat_backend/handlers"

	"github.com/gofiber/fiber/v2"
)

func RegisterChatRoutes(app *fiber.App, chatHandler *handlers.ChatHandler) {
	chats := app.Group("api/chat")
	chats.Post("/", chatHandler.CreateThread)
	chats.Get("/artist/:artist_id", chatHandler.RecentThreads)
	chats.Delete("/:thread_id", chatHandler.DeleteThread)
	chats.Get("/:thread_id/messages", chatHandler.GetMessages)
	chats.Get("/:thread_id/state", chatHandler.GetState)
	chats.Post("/:thread_id/messages", chatHandler.SendFragment)
}
