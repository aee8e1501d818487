package services

import (
	"errors"
	"testing"
	"time"

	"music_chat_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPollService(api *fakeAssistantAPI) (*PollService, *MessageStore, *fakePublisher) {
	store := NewMessageStore()
	publisher := &fakePublisher{}
	notifier := NewNotificationService(publisher)
	poll := NewPollService(api, store, notifier)
	poll.interval = 2 * time.Millisecond
	return poll, store, publisher
}

func TestPollMergesResolvedMessage(t *testing.T) {
	resolved := assistantMsg("m-poll", mixComplete("t1"))
	delivered := false
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			if delivered {
				return nil, nil
			}
			delivered = true
			return []models.PendingMessage{{Status: "resolved", Message: &resolved}}, nil
		},
	}
	poll, store, publisher := newTestPollService(api)

	poll.Trigger("thread-1")

	require.Eventually(t, func() bool {
		return store.Len("thread-1") == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "m-poll", store.Snapshot("thread-1")[0].ID)

	// The merged completion also reaches the notification side channel.
	require.Eventually(t, func() bool {
		return len(publisher.published()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPollSkipsUnresolvedEntries(t *testing.T) {
	resolved := assistantMsg("m-resolved", models.NewTextFragment("done"))
	calls := 0
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			calls++
			if calls > 1 {
				return nil, nil
			}
			return []models.PendingMessage{
				{Status: "waiting"},
				{Status: "resolved", Message: &resolved},
			}, nil
		},
	}
	poll, store, _ := newTestPollService(api)

	poll.Trigger("thread-1")

	require.Eventually(t, func() bool {
		return store.Len("thread-1") == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "m-resolved", store.Snapshot("thread-1")[0].ID)
}

func TestPollStopsWhenQueueEmpty(t *testing.T) {
	api := &fakeAssistantAPI{}
	poll, _, _ := newTestPollService(api)

	poll.Trigger("thread-1")

	require.Eventually(t, func() bool {
		poll.mu.Lock()
		defer poll.mu.Unlock()
		return len(poll.active) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, api.pendingCallCount())
}

func TestPollTriggerIsSingleFlight(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			<-gate
			return nil, nil
		},
	}
	poll, _, _ := newTestPollService(api)

	poll.Trigger("thread-1")
	poll.Trigger("thread-1")
	poll.Trigger("thread-1")
	close(gate)

	require.Eventually(t, func() bool {
		poll.mu.Lock()
		defer poll.mu.Unlock()
		return len(poll.active) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, api.pendingCallCount())
}

func TestPollStopsOnFetchError(t *testing.T) {
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			return nil, errors.New("upstream down")
		},
	}
	poll, store, _ := newTestPollService(api)

	poll.Trigger("thread-1")

	require.Eventually(t, func() bool {
		poll.mu.Lock()
		defer poll.mu.Unlock()
		return len(poll.active) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, api.pendingCallCount())
	assert.Equal(t, 0, store.Len("thread-1"))
}

func TestPollCancelStopsLoop(t *testing.T) {
	resolved := assistantMsg("m1", models.NewTextFragment("x"))
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			return []models.PendingMessage{{Status: "resolved", Message: &resolved}}, nil
		},
	}
	poll, _, _ := newTestPollService(api)

	poll.Trigger("thread-1")
	require.Eventually(t, func() bool {
		return api.pendingCallCount() > 0
	}, time.Second, time.Millisecond)

	poll.Cancel("thread-1")
	require.Eventually(t, func() bool {
		before := api.pendingCallCount()
		time.Sleep(20 * time.Millisecond)
		return api.pendingCallCount() == before
	}, time.Second, time.Millisecond)
}

func TestPollCeilingBoundsIterations(t *testing.T) {
	resolved := assistantMsg("m1", models.NewTextFragment("x"))
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			return []models.PendingMessage{{Status: "resolved", Message: &resolved}}, nil
		},
	}
	poll, _, _ := newTestPollService(api)
	poll.ceiling = 3

	poll.Trigger("thread-1")

	require.Eventually(t, func() bool {
		poll.mu.Lock()
		defer poll.mu.Unlock()
		return len(poll.active) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, api.pendingCallCount())
}

func TestPollShutdownCancelsAllLoops(t *testing.T) {
	resolved := assistantMsg("m1", models.NewTextFragment("x"))
	api := &fakeAssistantAPI{
		pendingMessagesFn: func(threadID string) ([]models.PendingMessage, error) {
			return []models.PendingMessage{{Status: "resolved", Message: &resolved}}, nil
		},
	}
	poll, _, _ := newTestPollService(api)

	poll.Trigger("thread-1")
	poll.Trigger("thread-2")
	poll.Shutdown()

	require.Eventually(t, func() bool {
		before := api.pendingCallCount()
		time.Sleep(20 * time.Millisecond)
		return api.pendingCallCount() == before
	}, time.Second, time.Millisecond)
}
