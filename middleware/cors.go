package middleware

import (
	"os"

	"music_chat_backend/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS() fiber.Handler {
	allowOrigins := os.Getenv("ALLOWORIGINS")
	logging.Logger.Info("CORS configured", "allowOrigins", allowOrigins)
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	})
}
