package services

import (
	"testing"

	"music_chat_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectPublishesForArtifactFragments(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		userMsg("m1", models.NewTextFragment("mix it")),
		assistantMsg("m2", models.NewTextFragment("all done"), mixComplete("t1")),
	})

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, models.FragmentMixingComplete, events[0].Type)
	assert.Equal(t, "Audio mixing completed", events[0].Message)
	assert.Equal(t, "a-t1", events[0].ArtifactID)
	assert.Equal(t, "thread-1", events[0].ThreadID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestInspectOnlyLooksAtLatestMessage(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		assistantMsg("m1", mixComplete("t1")),
		assistantMsg("m2", models.NewTextFragment("anything else?")),
	})

	assert.Empty(t, publisher.published())
}

func TestInspectIgnoresUserMessages(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		userMsg("m1", mixComplete("t1")),
	})

	assert.Empty(t, publisher.published())
}

func TestInspectEmptyThread(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", nil)

	assert.Empty(t, publisher.published())
}

func TestInspectStartFragmentsDoNotNotify(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		assistantMsg("m1", mixStart("t1"), &models.SongRenderingStartFragment{
			Type: models.FragmentSongRenderingStart, TaskId: "t2",
		}),
	})

	assert.Empty(t, publisher.published())
}

func TestInspectLyricsNotification(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		assistantMsg("m1", &models.LyricsWritingFragment{
			Type:     models.FragmentLyricsWriting,
			SongName: "Midnight Run",
			Lyrics:   "...",
		}),
	})

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, `Lyrics for "Midnight Run" are ready`, events[0].Message)
	assert.Empty(t, events[0].ArtifactID)
}

func TestInspectMultipleArtifactsInOneMessage(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewNotificationService(publisher)

	s.Inspect("thread-1", []models.Message{
		assistantMsg("m1",
			mixComplete("t1"),
			&models.StemSeparationCompleteFragment{
				Type:   models.FragmentStemSeparationComplete,
				TaskId: "t2",
			},
		),
	})

	events := publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, models.FragmentMixingComplete, events[0].Type)
	assert.Equal(t, models.FragmentStemSeparationComplete, events[1].Type)
	assert.Equal(t, "Stem separation completed", events[1].Message)
	assert.Empty(t, events[1].ArtifactID)
}
