package repository

import (
	"context"
	"time"

	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"

	"gorm.io/gorm"
)

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *models.ThreadMeta) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepository) GetByID(ctx context.Context, threadID string) (*models.ThreadMeta, error) {
	var res models.ThreadMeta
	err := r.db.WithContext(ctx).Where("thread_id = ?", threadID).First(&res).Error
	if err != nil {
		logging.Logger.Error("fail GetByID", "error", err, "threadID", threadID)
		return nil, err
	}
	return &res, nil
}

func (r *threadRepository) ListByArtist(ctx context.Context, artistID string, limit int) ([]*models.ThreadMeta, error) {
	var res []*models.ThreadMeta
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("last_message_at DESC").
		Limit(limit).
		Find(&res).Error
	if err != nil {
		logging.Logger.Error("fail ListByArtist", "error", err, "artistID", artistID)
		return nil, err
	}
	return res, nil
}

func (r *threadRepository) TouchLastMessage(ctx context.Context, threadID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ThreadMeta{}).
		Where("thread_id = ?", threadID).
		Update("last_message_at", at).Error
}

func (r *threadRepository) Delete(ctx context.Context, threadID string) error {
	return r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Delete(&models.ThreadMeta{}).Error
}
