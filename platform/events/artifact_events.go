package events

import (
	"context"
	"encoding/json"
	"time"

	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"

	"github.com/redis/go-redis/v9"
)

const (
	ArtifactEventChannel = "artifact:events"
)

// EventPublisher fans artifact notifications out through redis pub/sub so
// every connected websocket client sees completed tasks as they land.
type EventPublisher struct {
	redisClient *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redisClient: redisClient}
}

func (p *EventPublisher) PublishArtifactEvent(event *models.ArtifactNotification) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Error("fail PublishArtifactEvent", "error", err)
		return err
	}
	ctx := context.Background()
	if err := p.redisClient.Publish(ctx, ArtifactEventChannel, string(data)).Err(); err != nil {
		logging.Logger.Error("fail PublishArtifactEvent", "error", err)
		return err
	}
	logging.Logger.Info("PublishArtifactEvent", "type", event.Type, "threadID", event.ThreadID)
	return nil
}

func (p *EventPublisher) SubscribeArtifactEvents(ctx context.Context) (<-chan *models.ArtifactNotification, error) {
	pubsub := p.redisClient.Subscribe(ctx, ArtifactEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Logger.Error("fail SubscribeArtifactEvents", "error", err)
		return nil, err
	}
	ch := make(chan *models.ArtifactNotification, 100)

	// goroutine to listen
	go func() {
		defer close(ch)
		defer func(pubsub *redis.PubSub) {
			err := pubsub.Close()
			if err != nil {
				logging.Logger.Error("fail SubscribeArtifactEvents", "error", err)
			}
		}(pubsub)

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-pubsub.Channel():
				var event models.ArtifactNotification
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logging.Logger.Error("Failed to unmarshal artifact event", "error", err)
					continue
				}

				select {
				case ch <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
