package repository

import (
	"context"
	"time"

	"music_chat_backend/models"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *models.ThreadMeta) error
	GetByID(ctx context.Context, threadID string) (*models.ThreadMeta, error)
	ListByArtist(ctx context.Context, artistID string, limit int) ([]*models.ThreadMeta, error)
	TouchLastMessage(ctx context.Context, threadID string, at time.Time) error
	Delete(ctx context.Context, threadID string) error
}

type AudioRepository interface {
	Create(ctx context.Context, audio *models.AudioMeta) error
	GetByID(ctx context.Context, audioID string) (*models.AudioMeta, error)
	ListByThread(ctx context.Context, threadID string) ([]*models.AudioMeta, error)
}
