package bootstrap

import "music_chat_backend/handlers"

type Handlers struct {
	ChatHandler   *handlers.ChatHandler
	UploadHandler *handlers.UploadHandler
	WSHandler     *handlers.WSHandler
}

func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	res := &Handlers{}
	c := handlers.NewChatHandler(services.ChatService)
	res.ChatHandler = c
	u := handlers.NewUploadHandler(services.UploadService)
	res.UploadHandler = u
	w := handlers.NewWSHandler(infra.EventPublisher)
	res.WSHandler = w
	return res
}
