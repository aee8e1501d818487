package bootstrap

import (
	"music_chat_backend/config"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/platform/assistant"
	"music_chat_backend/platform/cache"
	"music_chat_backend/platform/database"
	"music_chat_backend/platform/events"
	"music_chat_backend/platform/queue"
	"music_chat_backend/platform/redis"
	"music_chat_backend/platform/storage"
)

type Infrastructure struct {
	DB             *database.DB
	Redis          *redis.Service
	Storage        *storage.Service
	Queue          cache.MessageQueue
	Cache          cache.CacheService
	EventPublisher *events.EventPublisher
	Assistant      *assistant.Client
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	// database
	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, err
	}
	infra.DB = db
	if err := infra.DB.AutoMigrate(); err != nil {
		return nil, err
	}
	// redis services
	redisService, err := redis.InitRedis(cfg)
	if err != nil {
		logging.Logger.Error("fail Initializing Redis", "error", err)
		return nil, err
	}
	infra.Redis = redisService

	// storage services
	storageService, err := storage.InitStorageService(cfg)
	if err != nil {
		logging.Logger.Error("fail Initializing Bucket", "error", err)
		return nil, err
	}
	infra.Storage = storageService

	// message queue
	queueService := queue.NewMessageService(redisService)
	infra.Queue = queueService

	// cache
	l1CacheService := cache.InitL1Cache()
	cacheService := cache.NewCacheService(l1CacheService, redisService)
	infra.Cache = cacheService

	// event publisher
	eventPublisher := events.NewEventPublisher(redisService.Rdb)
	infra.EventPublisher = eventPublisher

	// upstream assistant API
	infra.Assistant = assistant.NewClient(cfg)

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if err := infra.DB.Close(); err != nil {
		logging.Logger.Error("fail closing database", "error", err)
		return err
	}
	if err := infra.Redis.Rdb.Close(); err != nil {
		logging.Logger.Error("fail closing redis", "error", err)
		return err
	}
	return nil
}
