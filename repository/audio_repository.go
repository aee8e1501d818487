package repository

import (
	"context"

	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"

	"gorm.io/gorm"
)

type audioRepository struct {
	db *gorm.DB
}

func NewAudioRepository(db *gorm.DB) AudioRepository {
	return &audioRepository{db: db}
}

func (r *audioRepository) Create(ctx context.Context, audio *models.AudioMeta) error {
	return r.db.WithContext(ctx).Create(audio).Error
}

func (r *audioRepository) GetByID(ctx context.Context, audioID string) (*models.AudioMeta, error) {
	var res models.AudioMeta
	err := r.db.WithContext(ctx).Where("audio_id = ?", audioID).First(&res).Error
	if err != nil {
		logging.Logger.Error("fail GetByID", "error", err, "audioID", audioID)
		return nil, err
	}
	return &res, nil
}

func (r *audioRepository) ListByThread(ctx context.Context, threadID string) ([]*models.AudioMeta, error) {
	var res []*models.AudioMeta
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&res).Error
	if err != nil {
		logging.Logger.Error("fail ListByThread", "error", err, "threadID", threadID)
		return nil, err
	}
	return res, nil
}
