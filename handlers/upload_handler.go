package handlers

import (
	"music_chat_backend/services"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type requestUploadBody struct {
	FileName string `json:"fileName"`
}

// RequestUpload issues a presigned ticket and posts the upload-start
// fragment into the thread.
func (h *UploadHandler) RequestUpload(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	var req requestUploadBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.FileName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fileName is required")
	}
	ticket, err := h.uploadService.RequestUpload(c.Context(), threadID, req.FileName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(ticket)
}

type confirmUploadBody struct {
	AudioUploadRequestID string `json:"audioUploadRequestId"`
	TaskID               string `json:"taskId"`
	FileKey              string `json:"fileKey"`
	FileName             string `json:"fileName"`
	SongName             string `json:"songName"`
	PostProcess          string `json:"postProcess"`
	UserID               string `json:"userId"`
}

// ConfirmUpload registers the uploaded sketch once the bytes are in the
// bucket and posts the upload-complete fragment.
func (h *UploadHandler) ConfirmUpload(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	var req confirmUploadBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.FileKey == "" || req.AudioUploadRequestID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fileKey and audioUploadRequestId are required")
	}
	audio, err := h.uploadService.ConfirmUpload(c.Context(), threadID, services.ConfirmUploadRequest{
		AudioUploadRequestID: req.AudioUploadRequestID,
		TaskID:               req.TaskID,
		FileKey:              req.FileKey,
		FileName:             req.FileName,
		SongName:             req.SongName,
		PostProcess:          req.PostProcess,
		UserID:               req.UserID,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(audio)
}

// ListThreadAudio returns the audio registry rows of one thread.
func (h *UploadHandler) ListThreadAudio(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	audio, err := h.uploadService.ThreadAudio(c.Context(), threadID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"audio": audio})
}

// DownloadURL returns a short-lived presigned link for one audio artifact.
func (h *UploadHandler) DownloadURL(c *fiber.Ctx) error {
	audioID := c.Params("audio_id")
	url, err := h.uploadService.DownloadURL(c.Context(), audioID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"url": url})
}
