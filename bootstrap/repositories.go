package bootstrap

import (
	"music_chat_backend/platform/database"
	"music_chat_backend/repository"
)

type Repositories struct {
	ThreadRepository repository.ThreadRepository
	AudioRepository  repository.AudioRepository
}

func NewRepositories(db *database.DB) *Repositories {
	sqlDB := db.GetDatabase()
	return &Repositories{
		ThreadRepository: repository.NewThreadRepository(sqlDB),
		AudioRepository:  repository.NewAudioRepository(sqlDB),
	}
}
