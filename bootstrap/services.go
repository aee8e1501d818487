package bootstrap

import (
	"music_chat_backend/config"
	"music_chat_backend/services"
)

type Services struct {
	MessageStore        *services.MessageStore
	MessageProcessor    *services.MessageProcessor
	NotificationService *services.NotificationService
	PollService         *services.PollService
	ChatService         *services.ChatService
	UploadService       *services.UploadService
}

func NewServices(cfg *config.Config, repos *Repositories, infra *Infrastructure) *Services {
	res := &Services{}

	store := services.NewMessageStore()
	res.MessageStore = store

	processor := services.NewMessageProcessor()
	res.MessageProcessor = processor

	notifier := services.NewNotificationService(infra.EventPublisher)
	res.NotificationService = notifier

	poll := services.NewPollService(infra.Assistant, store, notifier)
	res.PollService = poll

	chatService := services.NewChatService(infra.Assistant, store, processor, poll, notifier, repos.ThreadRepository, infra.Cache)
	res.ChatService = chatService

	uploadService := services.NewUploadService(infra.Storage, repos.AudioRepository, infra.Queue, chatService, cfg)
	res.UploadService = uploadService

	return res
}
