package services

import (
	"context"
	"sync"
	"time"

	"music_chat_backend/models"
)

// fakeAssistantAPI is a scriptable upstream for service tests. Hooks run
// under the mutex; counters track call volume.
type fakeAssistantAPI struct {
	mu sync.Mutex

	listMessagesFn    func(threadID string) ([]models.Message, error)
	sendFragmentFn    func(threadID string, fragment models.Fragment) (*models.Message, error)
	pendingMessagesFn func(threadID string) ([]models.PendingMessage, error)
	listThreadsFn     func(artistID string, amount int) (map[string]models.ThreadDetails, error)

	sendCalls    int
	pendingCalls int
	listCalls    int
	threadsCalls int
	deletedIDs   []string
}

func (f *fakeAssistantAPI) ListMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listMessagesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(threadID)
	}
	return nil, nil
}

func (f *fakeAssistantAPI) SendFragment(ctx context.Context, threadID string, fragment models.Fragment) (*models.Message, error) {
	f.mu.Lock()
	f.sendCalls++
	fn := f.sendFragmentFn
	f.mu.Unlock()
	if fn != nil {
		return fn(threadID, fragment)
	}
	return &models.Message{
		ID:        "reply-" + threadID,
		Role:      models.RoleAssistant,
		Content:   models.Content{models.NewTextFragment("ok")},
		Timestamp: time.Now(),
	}, nil
}

func (f *fakeAssistantAPI) PendingMessages(ctx context.Context, threadID string) ([]models.PendingMessage, error) {
	f.mu.Lock()
	f.pendingCalls++
	fn := f.pendingMessagesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(threadID)
	}
	return nil, nil
}

func (f *fakeAssistantAPI) CreateThread(ctx context.Context, artistID string) (string, error) {
	return "thread-" + artistID, nil
}

func (f *fakeAssistantAPI) ListThreads(ctx context.Context, artistID string, amount int) (map[string]models.ThreadDetails, error) {
	f.mu.Lock()
	f.threadsCalls++
	fn := f.listThreadsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(artistID, amount)
	}
	return map[string]models.ThreadDetails{}, nil
}

func (f *fakeAssistantAPI) DeleteThread(ctx context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, threadID)
	return nil
}

func (f *fakeAssistantAPI) pendingCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingCalls
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*models.ArtifactNotification
}

func (p *fakePublisher) PublishArtifactEvent(event *models.ArtifactNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []*models.ArtifactNotification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*models.ArtifactNotification, len(p.events))
	copy(out, p.events)
	return out
}

type fakeThreadRepo struct {
	mu      sync.Mutex
	threads map[string]*models.ThreadMeta
	deleted []string
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: make(map[string]*models.ThreadMeta)}
}

func (r *fakeThreadRepo) Create(ctx context.Context, thread *models.ThreadMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads[thread.ThreadID] = thread
	return nil
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, threadID string) (*models.ThreadMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.threads[threadID]; ok {
		return t, nil
	}
	return nil, context.Canceled
}

func (r *fakeThreadRepo) ListByArtist(ctx context.Context, artistID string, limit int) ([]*models.ThreadMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ThreadMeta
	for _, t := range r.threads {
		if t.ArtistID == artistID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeThreadRepo) TouchLastMessage(ctx context.Context, threadID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.threads[threadID]; ok {
		t.LastMessageAt = at
	}
	return nil
}

func (r *fakeThreadRepo) Delete(ctx context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.threads, threadID)
	r.deleted = append(r.deleted, threadID)
	return nil
}

// memCache is a map-backed CacheService without TTL handling.
type memCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string]interface{})}
}

func (c *memCache) GetCache(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memCache) SetCache(key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memCache) DelCache(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func userMsg(id string, fragments ...models.Fragment) models.Message {
	return models.Message{ID: id, Role: models.RoleUser, Content: fragments, Timestamp: time.Now()}
}

func assistantMsg(id string, fragments ...models.Fragment) models.Message {
	return models.Message{ID: id, Role: models.RoleAssistant, Content: fragments, Timestamp: time.Now()}
}
