package services

import (
	"context"
	"testing"

	"music_chat_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStoreAppendAndSnapshot(t *testing.T) {
	store := NewMessageStore()
	store.Append("thread-1", userMsg("m1", models.NewTextFragment("hi")))
	store.Append("thread-1", assistantMsg("m2", models.NewTextFragment("hello")))

	snap := store.Snapshot("thread-1")
	require.Len(t, snap, 2)
	assert.Equal(t, "m1", snap[0].ID)
	assert.Equal(t, "m2", snap[1].ID)

	// Snapshot is a copy; growing it must not touch the store.
	_ = append(snap, userMsg("m3"))
	snap[0].ID = "mutated"
	assert.Equal(t, "m1", store.Snapshot("thread-1")[0].ID)
	assert.Equal(t, 2, store.Len("thread-1"))
}

func TestMessageStoreThreadsAreIsolated(t *testing.T) {
	store := NewMessageStore()
	store.Append("thread-1", userMsg("m1"))

	assert.Equal(t, 1, store.Len("thread-1"))
	assert.Empty(t, store.Snapshot("thread-2"))
}

func TestMessageStoreReplaceWithLiveFetch(t *testing.T) {
	store := NewMessageStore()
	store.Append("thread-1", userMsg("old"))

	ctx := store.BeginFetch("thread-1", context.Background())
	ok := store.Replace("thread-1", ctx, []models.Message{userMsg("new")})
	require.True(t, ok)

	snap := store.Snapshot("thread-1")
	require.Len(t, snap, 1)
	assert.Equal(t, "new", snap[0].ID)
}

func TestMessageStoreReplaceRefusedAfterCancel(t *testing.T) {
	store := NewMessageStore()
	store.Append("thread-1", userMsg("local"))

	ctx := store.BeginFetch("thread-1", context.Background())
	store.CancelFetch("thread-1")

	ok := store.Replace("thread-1", ctx, []models.Message{userMsg("stale")})
	assert.False(t, ok)

	snap := store.Snapshot("thread-1")
	require.Len(t, snap, 1)
	assert.Equal(t, "local", snap[0].ID)
}

func TestMessageStoreBeginFetchCancelsPrevious(t *testing.T) {
	store := NewMessageStore()

	first := store.BeginFetch("thread-1", context.Background())
	second := store.BeginFetch("thread-1", context.Background())

	assert.Error(t, first.Err())
	assert.NoError(t, second.Err())
}

func TestMessageStoreDrop(t *testing.T) {
	store := NewMessageStore()
	store.Append("thread-1", userMsg("m1"))
	ctx := store.BeginFetch("thread-1", context.Background())

	store.Drop("thread-1")

	assert.Error(t, ctx.Err())
	assert.Equal(t, 0, store.Len("thread-1"))
}
