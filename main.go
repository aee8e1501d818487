package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"music_chat_backend/bootstrap"
	"music_chat_backend/config"
	"music_chat_backend/middleware"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	logging.Init()
	cfg := config.LoadConfig()

	application, err := bootstrap.NewApp(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New()
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	routes.RegisterChatRoutes(app, application.Handlers.ChatHandler)
	routes.RegisterAudioRoutes(app, application.Handlers.UploadHandler)
	routes.SetupWebSocketRoutes(app, application.Handlers.WSHandler)

	port := cfg.HttpPort
	if port == "" {
		port = "3000"
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logging.Logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logging.Logger.Error("fail fiber shutdown", "error", err)
		}
	}()

	logging.Logger.Info("Server running", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

	if err := application.Shutdown(); err != nil {
		logging.Logger.Error("fail app shutdown", "error", err)
	}
}
