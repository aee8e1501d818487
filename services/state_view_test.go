package services

import (
	"testing"

	"music_chat_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateViewKeepsGroupOrderAndSortsFailures(t *testing.T) {
	p := NewMessageProcessor()
	state := p.Process([]models.Message{
		assistantMsg("m1", mixStart("t2"), mixStart("t1")),
		assistantMsg("m2", mixComplete("t2")),
		assistantMsg("m3", models.NewErrorFragment("z-task", models.TaskErrUnknown)),
		assistantMsg("m4", models.NewErrorFragment("a-task", models.TaskErrUnknown)),
	})

	view := state.View()

	mixing := view.Families[models.FamilyMixing]
	require.Len(t, mixing.Groups, 2)
	assert.Equal(t, "t2", mixing.Groups[0].Key)
	assert.True(t, mixing.Groups[0].Done)
	assert.Equal(t, "t1", mixing.Groups[1].Key)
	assert.False(t, mixing.Groups[1].Done)

	assert.Equal(t, []string{"a-task", "z-task"}, view.FailedTasks)

	// Every family appears, even the empty ones.
	assert.Len(t, view.Families, len(models.Families))
}
