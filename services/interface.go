package services

import (
	"context"

	"music_chat_backend/models"
)

// AssistantAPI is the upstream boundary: the assistant server owns message
// history and runs the media-generation tasks behind it.
type AssistantAPI interface {
	ListMessages(ctx context.Context, threadID string) ([]models.Message, error)
	SendFragment(ctx context.Context, threadID string, fragment models.Fragment) (*models.Message, error)
	PendingMessages(ctx context.Context, threadID string) ([]models.PendingMessage, error)
	CreateThread(ctx context.Context, artistID string) (string, error)
	ListThreads(ctx context.Context, artistID string, amount int) (map[string]models.ThreadDetails, error)
	DeleteThread(ctx context.Context, threadID string) error
}

// ArtifactPublisher is the side channel carrying artifact notifications to
// the presentation collaborators.
type ArtifactPublisher interface {
	PublishArtifactEvent(event *models.ArtifactNotification) error
}

// MessageQueue hands post-processing jobs to the external task executors.
type MessageQueue interface {
	PushToQueue(queueName string, value interface{}) error
	PopFromQueue(queueName string) (interface{}, error)
}
