package handlers

import (
	"strconv"

	"music_chat_backend/models"
	"music_chat_backend/services"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type createThreadRequest struct {
	ArtistID   string `json:"artistId"`
	ArtistName string `json:"artistName"`
}

func (h *ChatHandler) CreateThread(c *fiber.Ctx) error {
	var req createThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.ArtistID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "artistId is required")
	}
	meta, err := h.chatService.CreateThread(c.Context(), req.ArtistID, req.ArtistName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(meta)
}

func (h *ChatHandler) RecentThreads(c *fiber.Ctx) error {
	artistID := c.Params("artist_id")
	amount, err := strconv.Atoi(c.Query("amount", "20"))
	if err != nil || amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be a positive integer")
	}
	threads, err := h.chatService.RecentThreads(c.Context(), artistID, amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(threads)
}

func (h *ChatHandler) DeleteThread(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	if err := h.chatService.DeleteThread(c.Context(), threadID); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"deleted": threadID})
}

// GetMessages refreshes the thread from upstream and returns it annotated for
// rendering, one segment list per message.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	if _, err := h.chatService.LoadMessages(c.Context(), threadID); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	annotated := h.chatService.AnnotatedMessages(threadID)

	type messageView struct {
		services.AnnotatedMessage
		Segments []services.Segment `json:"segments"`
	}
	out := make([]messageView, 0, len(annotated))
	for _, message := range annotated {
		out = append(out, messageView{
			AnnotatedMessage: message,
			Segments:         services.SegmentMessage(message),
		})
	}
	return c.JSON(fiber.Map{"messages": out})
}

// GetState returns the consolidated task-state projection of the thread.
func (h *ChatHandler) GetState(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	state := h.chatService.ProjectState(threadID)
	return c.JSON(state.View())
}

// SendFragment accepts one raw fragment and runs the optimistic send
// pipeline. The response always includes the current message list; a failed
// upstream round trip is reported inside it, not as an HTTP error.
func (h *ChatHandler) SendFragment(c *fiber.Ctx) error {
	threadID := c.Params("thread_id")
	fragment, err := models.UnmarshalFragment(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var reply *models.Message
	if text, ok := fragment.(*models.TextFragment); ok {
		reply = h.chatService.SendText(c.Context(), threadID, text.Text)
	} else {
		reply = h.chatService.Send(c.Context(), threadID, fragment)
	}

	return c.JSON(fiber.Map{
		"reply":    reply,
		"messages": h.chatService.AnnotatedMessages(threadID),
	})
}
