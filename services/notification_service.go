package services

import (
	"fmt"
	"time"

	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"
)

// artifactFragmentTypes are the completions whose output should reach the
// notification collaborator.
var artifactFragmentTypes = map[models.FragmentType]struct{}{
	models.FragmentAudioUploadComplete:     {},
	models.FragmentQuantizationComplete:    {},
	models.FragmentMixingComplete:          {},
	models.FragmentStemSeparationComplete:  {},
	models.FragmentSongRenderingComplete:   {},
	models.FragmentSongCompositionComplete: {},
	models.FragmentLyricsWriting:           {},
}

// NotificationService watches the newest assistant message for completed
// artifacts and emits one side-channel signal per artifact fragment. It is a
// one-shot detection over the latest message, not a correlation pass.
type NotificationService struct {
	publisher ArtifactPublisher
}

func NewNotificationService(publisher ArtifactPublisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// Inspect runs the detection against a message-list snapshot.
func (s *NotificationService) Inspect(threadID string, messages []models.Message) {
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role != models.RoleAssistant {
		return
	}

	for _, fragment := range last.Content {
		if _, ok := artifactFragmentTypes[fragment.FragmentType()]; !ok {
			continue
		}
		event := &models.ArtifactNotification{
			ThreadID:   threadID,
			Type:       fragment.FragmentType(),
			Message:    artifactMessage(fragment),
			ArtifactID: artifactID(fragment),
			Timestamp:  time.Now(),
		}
		if err := s.publisher.PublishArtifactEvent(event); err != nil {
			logging.Logger.Error("fail PublishArtifactEvent", "error", err, "threadID", threadID)
		}
	}
}

func artifactMessage(fragment models.Fragment) string {
	switch f := fragment.(type) {
	case *models.AudioUploadCompleteFragment:
		return "Audio upload completed"
	case *models.QuantizationCompleteFragment:
		return "Audio quantization completed"
	case *models.MixingCompleteFragment:
		return "Audio mixing completed"
	case *models.StemSeparationCompleteFragment:
		return "Stem separation completed"
	case *models.SongRenderingCompleteFragment:
		return "Song rendering completed"
	case *models.SongCompositionCompleteFragment:
		return "Song composition completed"
	case *models.LyricsWritingFragment:
		return fmt.Sprintf("Lyrics for %q are ready", f.SongName)
	default:
		return "New artifact generated"
	}
}

// artifactID prefers the audio id; song rendering also carries a butcher id
// but the audio id wins. Stem separation and lyrics expose no single id.
func artifactID(fragment models.Fragment) string {
	switch f := fragment.(type) {
	case *models.AudioUploadCompleteFragment:
		return f.AudioId
	case *models.QuantizationCompleteFragment:
		return f.AudioId
	case *models.MixingCompleteFragment:
		return f.AudioId
	case *models.SongRenderingCompleteFragment:
		return f.AudioId
	case *models.SongCompositionCompleteFragment:
		return f.AudioId
	default:
		return ""
	}
}
