package cache

import "time"

// CacheService is the L1+L2 cache surface used by the services layer.
type CacheService interface {
	GetCache(key string) (interface{}, bool)
	SetCache(key string, value interface{}, expiration time.Duration) error
	DelCache(key string) error
}

// MessageQueue is for redis message queue
type MessageQueue interface {
	PushToQueue(queueName string, value interface{}) error
	PopFromQueue(queueName string) (interface{}, error)
}
