package services

import (
	"context"
	"sync"

	"music_chat_backend/models"
)

// MessageStore holds the in-memory message list per thread. The list is the
// one shared mutable resource of the chat core: every mutation is an append
// (optimistic send, confirmed reply, poll merge, failure notice) or a full
// replace from a history refresh. Existing entries are never edited.
type MessageStore struct {
	mu      sync.Mutex
	threads map[string]*threadEntry
}

type threadEntry struct {
	mu          sync.Mutex
	messages    []models.Message
	fetchCancel context.CancelFunc
}

func NewMessageStore() *MessageStore {
	return &MessageStore{threads: make(map[string]*threadEntry)}
}

func (s *MessageStore) entry(threadID string) *threadEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.threads[threadID]
	if !ok {
		e = &threadEntry{}
		s.threads[threadID] = e
	}
	return e
}

// Snapshot returns a stable copy of the thread's message list. Projection
// always runs over a snapshot, never over the live slice.
func (s *MessageStore) Snapshot(threadID string) []models.Message {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Append adds messages to the end of the thread's list.
func (s *MessageStore) Append(threadID string, messages ...models.Message) {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, messages...)
}

// Replace swaps in a freshly fetched history. Callers must hold a fetch
// context from BeginFetch and give it up here: a fetch cancelled by a later
// optimistic write must not overwrite that write with its stale response.
func (s *MessageStore) Replace(threadID string, fetchCtx context.Context, messages []models.Message) bool {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if fetchCtx.Err() != nil {
		return false
	}
	e.messages = messages
	return true
}

// BeginFetch opens a cancellable context for a history fetch, cancelling any
// fetch already in flight for the thread.
func (s *MessageStore) BeginFetch(threadID string, parent context.Context) context.Context {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fetchCancel != nil {
		e.fetchCancel()
	}
	ctx, cancel := context.WithCancel(parent)
	e.fetchCancel = cancel
	return ctx
}

// CancelFetch aborts the thread's in-flight history fetch, if any. The send
// pipeline calls this before its optimistic append.
func (s *MessageStore) CancelFetch(threadID string) {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fetchCancel != nil {
		e.fetchCancel()
		e.fetchCancel = nil
	}
}

// Drop forgets a thread entirely, cancelling its outstanding fetch.
func (s *MessageStore) Drop(threadID string) {
	s.mu.Lock()
	e, ok := s.threads[threadID]
	if ok {
		delete(s.threads, threadID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fetchCancel != nil {
		e.fetchCancel()
		e.fetchCancel = nil
	}
}

// Len reports the current message count of a thread.
func (s *MessageStore) Len(threadID string) int {
	e := s.entry(threadID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.messages)
}
