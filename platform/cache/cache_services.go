package cache

import (
	"time"

	"music_chat_backend/pkg/logging"
)

// Service layers the in-process L1 over the redis L2. L1 entries expire at
// a fraction of the L2 TTL so they never outlive the shared copy by much.
type Service struct {
	l1 *L1CacheService
	l2 CacheService
}

func NewCacheService(l1 *L1CacheService, l2 CacheService) CacheService {
	return &Service{l1: l1, l2: l2}
}

func (cs *Service) GetCache(key string) (interface{}, bool) {
	if data, ok := cs.l1.Get(key); ok {
		return data, ok
	}
	if data, ok := cs.l2.GetCache(key); ok {
		return data, ok
	}
	return nil, false
}

func (cs *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	err := cs.l2.SetCache(key, value, expiration)
	if err != nil {
		logging.Logger.Error("l2 fail SetCache", "error", err)
		return err
	}
	cs.l1.Set(key, value, time.Duration(float64(expiration)*0.3))
	return nil
}

func (cs *Service) DelCache(key string) error {
	cs.l1.Del(key)
	if err := cs.l2.DelCache(key); err != nil {
		logging.Logger.Error("l2 fail DelCache", "error", err)
		return err
	}
	return nil
}
