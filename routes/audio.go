package routes

import (
	"music_chat_backend/handlers"

	"github.com/gofiber/fiber/v2"
)

func RegisterAudioRoutes(app *fiber.App, handler *handlers.UploadHandler) {
	audio := app.Group("api/audio")
	audio.Post("/:thread_id/upload", handler.RequestUpload)
	audio.Post("/:thread_id/confirm", handler.ConfirmUpload)
	audio.Get("/:thread_id/list", handler.ListThreadAudio)
	audio.Get("/:audio_id/download", handler.DownloadURL)
}
