package services

import (
	"context"
	"sync"
	"time"

	"music_chat_backend/pkg/logging"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultPollCeiling  = 10000
)

// PollService reconciles asynchronously-resolved server state into the local
// message list. One loop runs per thread at a time; triggers while a loop is
// already polling are no-ops.
type PollService struct {
	api      AssistantAPI
	store    *MessageStore
	notifier *NotificationService

	interval time.Duration
	ceiling  int

	mu     sync.Mutex
	active map[string]*pollRun
}

type pollRun struct {
	cancel context.CancelFunc
}

func NewPollService(api AssistantAPI, store *MessageStore, notifier *NotificationService) *PollService {
	return &PollService{
		api:      api,
		store:    store,
		notifier: notifier,
		interval: defaultPollInterval,
		ceiling:  defaultPollCeiling,
		active:   make(map[string]*pollRun),
	}
}

// Trigger starts a poll loop for the thread unless one is already in flight.
// Call it after every message-list change.
func (s *PollService) Trigger(threadID string) {
	s.mu.Lock()
	if _, polling := s.active[threadID]; polling {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	run := &pollRun{cancel: cancel}
	s.active[threadID] = run
	s.mu.Unlock()

	go s.loop(ctx, threadID, run)
}

// Cancel stops the thread's poll loop. The loop checks its context before
// every fetch and before every merge, so no merge lands after cancellation.
func (s *PollService) Cancel(threadID string) {
	s.mu.Lock()
	run, ok := s.active[threadID]
	if ok {
		delete(s.active, threadID)
	}
	s.mu.Unlock()
	if ok {
		run.cancel()
	}
}

// Shutdown cancels every active loop.
func (s *PollService) Shutdown() {
	s.mu.Lock()
	runs := s.active
	s.active = make(map[string]*pollRun)
	s.mu.Unlock()
	for _, run := range runs {
		run.cancel()
	}
}

func (s *PollService) finish(threadID string, run *pollRun) {
	s.mu.Lock()
	if current, ok := s.active[threadID]; ok && current == run {
		delete(s.active, threadID)
	}
	s.mu.Unlock()
	run.cancel()
}

// loop pulls pending messages sequentially until the server reports none
// left, the iteration ceiling trips, or the loop is cancelled. Fetch errors
// end the loop silently; the next message-list change re-triggers it.
func (s *PollService) loop(ctx context.Context, threadID string, run *pollRun) {
	defer s.finish(threadID, run)

	for i := 0; i < s.ceiling; i++ {
		if ctx.Err() != nil {
			return
		}

		pending, err := s.api.PendingMessages(ctx, threadID)
		if err != nil {
			logging.Logger.Debug("pending messages fetch failed, stopping poll",
				"threadID", threadID, "error", err)
			return
		}
		if len(pending) == 0 {
			return
		}

		for _, item := range pending {
			if item.Message == nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			s.store.Append(threadID, *item.Message)
			s.notifier.Inspect(threadID, s.store.Snapshot(threadID))
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}
