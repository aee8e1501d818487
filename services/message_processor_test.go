package services

import (
	"encoding/json"
	"testing"

	"music_chat_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixStart(taskID string) *models.MixingStartFragment {
	return &models.MixingStartFragment{Type: models.FragmentMixingStart, TaskId: taskID, AudioId: "a-" + taskID}
}

func mixComplete(taskID string) *models.MixingCompleteFragment {
	return &models.MixingCompleteFragment{Type: models.FragmentMixingComplete, TaskId: taskID, AudioId: "a-" + taskID}
}

func uploadStart(requestID, taskID string) *models.AudioUploadStartFragment {
	return &models.AudioUploadStartFragment{Type: models.FragmentAudioUploadStart, TaskId: taskID, AudioUploadRequestId: requestID}
}

func uploadComplete(requestID, taskID string) *models.AudioUploadCompleteFragment {
	return &models.AudioUploadCompleteFragment{Type: models.FragmentAudioUploadComplete, TaskId: taskID, AudioUploadRequestId: requestID, AudioId: "a-" + taskID}
}

func TestProcessGroupsByCorrelationKey(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		userMsg("m1", models.NewTextFragment("mix it")),
		assistantMsg("m2", mixStart("t1")),
		assistantMsg("m3", mixComplete("t1")),
		assistantMsg("m4", mixStart("t2")),
	})

	mixing := state.Family(models.FamilyMixing)
	g1, ok := mixing.Group("t1")
	require.True(t, ok)
	assert.True(t, g1.Done())
	require.Len(t, g1, 2)

	g2, ok := mixing.Group("t2")
	require.True(t, ok)
	assert.False(t, g2.Done())

	require.Len(t, mixing.Pending, 1)
	taskID, _ := mixing.Pending[0].TaskID()
	assert.Equal(t, "t2", taskID)
}

func TestProcessScopesKeysPerFamily(t *testing.T) {
	// Same id in two families must land in two separate groups.
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", mixStart("shared")),
		assistantMsg("m2", &models.QuantizationStartFragment{Type: models.FragmentQuantizationStart, TaskId: "shared"}),
	})

	gMix, ok := state.Family(models.FamilyMixing).Group("shared")
	require.True(t, ok)
	assert.Len(t, gMix, 1)

	gQuant, ok := state.Family(models.FamilyQuantization).Group("shared")
	require.True(t, ok)
	assert.Len(t, gQuant, 1)
}

func TestProcessUploadFamilyKeysByRequestID(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", uploadStart("req1", "t1")),
		userMsg("m2", uploadComplete("req1", "t1")),
	})

	group, ok := state.Family(models.FamilyAudioUpload).Group("req1")
	require.True(t, ok)
	assert.True(t, group.Done())
	assert.Empty(t, state.Pending(models.FamilyAudioUpload))
}

func TestProcessErrorSuppressesPending(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", mixStart("t1")),
		assistantMsg("m2", models.NewErrorFragment("t1", models.TaskErrNoBeatsFound)),
	})

	assert.True(t, state.TaskFailed("t1"))
	assert.Empty(t, state.Pending(models.FamilyMixing))

	// The group itself is still there, just not pending.
	group, ok := state.Family(models.FamilyMixing).Group("t1")
	require.True(t, ok)
	assert.False(t, group.Done())
}

func TestProcessErrorDoesNotUndoDone(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", mixStart("t1")),
		assistantMsg("m2", mixComplete("t1")),
		assistantMsg("m3", models.NewErrorFragment("t1", models.TaskErrUnknown)),
	})

	group, ok := state.Family(models.FamilyMixing).Group("t1")
	require.True(t, ok)
	assert.True(t, group.Done())
	assert.Empty(t, state.Pending(models.FamilyMixing))
}

func TestProcessErrorFragmentJoinsNoGroup(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", models.NewErrorFragment("t1", models.TaskErrNoChordsSnapped)),
	})

	for _, family := range models.Families {
		assert.Empty(t, state.Family(family).Groups, "family %s", family)
	}
	assert.True(t, state.TaskFailed("t1"))
}

func TestProcessDuplicateCompletesStayDone(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", mixStart("t1")),
		assistantMsg("m2", mixComplete("t1")),
		assistantMsg("m3", mixComplete("t1")),
	})

	group, _ := state.Family(models.FamilyMixing).Group("t1")
	assert.Len(t, group, 3)
	assert.True(t, group.Done())
}

func TestProcessIsDeterministic(t *testing.T) {
	msgs := []models.Message{
		assistantMsg("m1", mixStart("t3"), mixStart("t1"), mixStart("t2")),
	}
	p := NewMessageProcessor()

	first := p.Process(msgs).Pending(models.FamilyMixing)
	for i := 0; i < 20; i++ {
		again := p.Process(msgs).Pending(models.FamilyMixing)
		require.Equal(t, first, again)
	}
	// Pending follows fragment arrival order, not map order.
	ids := make([]string, 0, len(first))
	for _, f := range first {
		id, _ := f.TaskID()
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"t3", "t1", "t2"}, ids)
}

func TestAnnotateDropsUserCompletionMessages(t *testing.T) {
	p := NewMessageProcessor()
	msgs := []models.Message{
		userMsg("m1", models.NewTextFragment("hi")),
		userMsg("m2", mixComplete("t1")),
	}
	state := p.Process(msgs)
	annotated := p.Annotate("thread-1", msgs, state)

	require.Len(t, annotated, 1)
	assert.Equal(t, "m1", annotated[0].ID)
}

func TestAnnotateSetsDoneFromGroups(t *testing.T) {
	p := NewMessageProcessor()
	msgs := []models.Message{
		assistantMsg("m1", mixStart("t1"), models.NewTextFragment("mixing now")),
		assistantMsg("m2", mixComplete("t1")),
		assistantMsg("m3", mixStart("t2")),
	}
	state := p.Process(msgs)
	annotated := p.Annotate("thread-1", msgs, state)
	require.Len(t, annotated, 3)

	start := annotated[0].Content[0]
	require.NotNil(t, start.Done)
	assert.True(t, *start.Done)

	text := annotated[0].Content[1]
	assert.Nil(t, text.Done)

	pendingStart := annotated[2].Content[0]
	require.NotNil(t, pendingStart.Done)
	assert.False(t, *pendingStart.Done)
	assert.True(t, pendingStart.Loading())
}

func TestAnnotatedFragmentMarshalAddsDerivedFields(t *testing.T) {
	done := true
	af := AnnotatedFragment{
		Fragment:  mixComplete("t1"),
		Done:      &done,
		MessageID: "m9",
		ThreadID:  "thread-9",
	}
	raw, err := json.Marshal(af)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, true, fields["done"])
	assert.Equal(t, "m9", fields["messageId"])
	assert.Equal(t, "thread-9", fields["threadId"])
	assert.Equal(t, string(models.FragmentMixingComplete), fields["type"])
}
