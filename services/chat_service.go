package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/platform/cache"
	"music_chat_backend/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const sendFailureText = "Sorry, there was an error sending your message. Please try again."

const recentThreadsTTL = 30 * time.Minute

// ChatService owns the send pipeline and the thread lifecycle. Sends are
// optimistic: the user's message lands in the local list before the network
// round trip, and it stays there no matter how the round trip ends.
type ChatService struct {
	api         AssistantAPI
	store       *MessageStore
	processor   *MessageProcessor
	poll        *PollService
	notifier    *NotificationService
	threadRepo  repository.ThreadRepository
	threadCache *cache.TypedCache[map[string]models.ThreadDetails]
	sf          singleflight.Group
}

func NewChatService(
	api AssistantAPI,
	store *MessageStore,
	processor *MessageProcessor,
	poll *PollService,
	notifier *NotificationService,
	threadRepo repository.ThreadRepository,
	cacheService cache.CacheService,
) *ChatService {
	return &ChatService{
		api:         api,
		store:       store,
		processor:   processor,
		poll:        poll,
		notifier:    notifier,
		threadRepo:  threadRepo,
		threadCache: cache.NewTypedCache[map[string]models.ThreadDetails](cacheService),
	}
}

// Send runs the optimistic pipeline for one fragment. It never returns an
// error: a failed round trip surfaces as a synthetic assistant message and
// the optimistic entry is left in place. The confirmed reply is returned on
// success, nil otherwise.
func (s *ChatService) Send(ctx context.Context, threadID string, fragment models.Fragment) *models.Message {
	if ef, ok := fragment.(*models.ErrorFragment); ok {
		fragment = models.NewErrorFragment(ef.TaskId, models.NormalizeTaskErrorCode(ef.Error))
	}

	// An in-flight history fetch could resolve after the optimistic append
	// and clobber it with a stale list. Cancel it first.
	s.store.CancelFetch(threadID)

	optimistic := models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   models.Content{fragment},
		Timestamp: time.Now(),
	}
	s.store.Append(threadID, optimistic)
	s.poll.Trigger(threadID)

	reply, err := s.api.SendFragment(ctx, threadID, fragment)
	if err != nil || reply == nil {
		logging.Logger.Error("fail SendFragment", "error", err, "threadID", threadID)
		failure := models.Message{
			ID:        uuid.New().String(),
			Role:      models.RoleAssistant,
			Content:   models.Content{models.NewTextFragment(sendFailureText)},
			Timestamp: time.Now(),
		}
		s.store.Append(threadID, failure)
		s.poll.Trigger(threadID)
		return nil
	}

	// The reply is appended alongside the optimistic entry, never in place
	// of it: the optimistic message is the user's turn, the reply is the
	// assistant's.
	s.store.Append(threadID, *reply)
	s.poll.Trigger(threadID)
	s.notifier.Inspect(threadID, s.store.Snapshot(threadID))
	s.touchThread(threadID)
	return reply
}

// SendText trims and sends a plain text fragment. Blank input is a no-op.
func (s *ChatService) SendText(ctx context.Context, threadID, text string) *models.Message {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.Send(ctx, threadID, models.NewTextFragment(text))
}

func (s *ChatService) SendUploadStart(ctx context.Context, threadID, audioUploadRequestID, taskID, fileName string) *models.Message {
	return s.Send(ctx, threadID, &models.AudioUploadStartFragment{
		Type:                 models.FragmentAudioUploadStart,
		TaskId:               taskID,
		AudioUploadRequestId: audioUploadRequestID,
		FileName:             fileName,
	})
}

func (s *ChatService) SendUploadComplete(ctx context.Context, threadID, audioUploadRequestID, taskID, audioID, songName string) *models.Message {
	return s.Send(ctx, threadID, &models.AudioUploadCompleteFragment{
		Type:                 models.FragmentAudioUploadComplete,
		TaskId:               taskID,
		AudioUploadRequestId: audioUploadRequestID,
		AudioId:              audioID,
		SongName:             songName,
	})
}

func (s *ChatService) SendReferenceSelection(ctx context.Context, threadID, referenceID, referenceCandidatesID string, optionNumber int) *models.Message {
	return s.Send(ctx, threadID, &models.ReferenceSelectionFragment{
		Type:                  models.FragmentReferenceSelection,
		ReferenceCandidatesId: referenceCandidatesID,
		ReferenceId:           referenceID,
		OptionNumber:          optionNumber,
	})
}

func (s *ChatService) SendRenderingComplete(ctx context.Context, threadID, audioID, taskID, butcherID string) *models.Message {
	return s.Send(ctx, threadID, &models.SongRenderingCompleteFragment{
		Type:      models.FragmentSongRenderingComplete,
		TaskId:    taskID,
		AudioId:   audioID,
		ButcherId: butcherID,
	})
}

func (s *ChatService) SendQuantizationComplete(ctx context.Context, threadID, audioID, taskID string) *models.Message {
	return s.Send(ctx, threadID, &models.QuantizationCompleteFragment{
		Type:    models.FragmentQuantizationComplete,
		TaskId:  taskID,
		AudioId: audioID,
	})
}

func (s *ChatService) SendMixingComplete(ctx context.Context, threadID, audioID, taskID string) *models.Message {
	return s.Send(ctx, threadID, &models.MixingCompleteFragment{
		Type:    models.FragmentMixingComplete,
		TaskId:  taskID,
		AudioId: audioID,
	})
}

func (s *ChatService) SendCompositionComplete(ctx context.Context, threadID, audioID, taskID string) *models.Message {
	return s.Send(ctx, threadID, &models.SongCompositionCompleteFragment{
		Type:    models.FragmentSongCompositionComplete,
		TaskId:  taskID,
		AudioId: audioID,
	})
}

// SendTaskError sends an error fragment; the code is normalized by Send.
func (s *ChatService) SendTaskError(ctx context.Context, threadID, code, taskID string) *models.Message {
	return s.Send(ctx, threadID, models.NewErrorFragment(taskID, code))
}

// LoadMessages refreshes the thread's history from upstream. A refresh
// superseded by a local write keeps the local list and returns it.
func (s *ChatService) LoadMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	fetchCtx := s.store.BeginFetch(threadID, ctx)
	messages, err := s.api.ListMessages(fetchCtx, threadID)
	if err != nil {
		if fetchCtx.Err() != nil {
			return s.store.Snapshot(threadID), nil
		}
		return nil, fmt.Errorf("failed to load thread messages: %w", err)
	}
	if s.store.Replace(threadID, fetchCtx, messages) {
		s.poll.Trigger(threadID)
	}
	return s.store.Snapshot(threadID), nil
}

// ProjectState recomputes the chat state from the current snapshot.
func (s *ChatService) ProjectState(threadID string) *ChatState {
	return s.processor.Process(s.store.Snapshot(threadID))
}

// AnnotatedMessages returns the thread prepared for rendering.
func (s *ChatService) AnnotatedMessages(threadID string) []AnnotatedMessage {
	snapshot := s.store.Snapshot(threadID)
	state := s.processor.Process(snapshot)
	return s.processor.Annotate(threadID, snapshot, state)
}

func (s *ChatService) CreateThread(ctx context.Context, artistID, artistName string) (*models.ThreadMeta, error) {
	threadID, err := s.api.CreateThread(ctx, artistID)
	if err != nil {
		logging.Logger.Error("fail CreateThread", "error", err, "artistID", artistID)
		return nil, err
	}
	meta := &models.ThreadMeta{
		ThreadID:      threadID,
		Title:         "New chat",
		ArtistID:      artistID,
		ArtistName:    artistName,
		LastMessageAt: time.Now(),
		CreatedAt:     time.Now(),
	}
	if err := s.threadRepo.Create(ctx, meta); err != nil {
		logging.Logger.Error("fail persisting thread meta", "error", err, "threadID", threadID)
	}
	s.invalidateRecentThreads(artistID)
	return meta, nil
}

// RecentThreads serves thread summaries for list views, cached and
// single-flighted so a burst of sidebar loads costs one upstream call.
func (s *ChatService) RecentThreads(ctx context.Context, artistID string, amount int) (map[string]models.ThreadDetails, error) {
	key := recentThreadsKey(artistID)
	if threads, ok, err := s.threadCache.Get(key); err == nil && ok {
		return threads, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		threads, err := s.api.ListThreads(ctx, artistID, amount)
		if err != nil {
			return nil, err
		}
		if err := s.threadCache.Set(key, threads, recentThreadsTTL); err != nil {
			logging.Logger.Error("fail caching recent threads", "error", err)
		}
		return threads, nil
	})
	if err != nil {
		// Upstream down: serve the persisted summary rows instead.
		local, repoErr := s.threadRepo.ListByArtist(ctx, artistID, amount)
		if repoErr != nil || len(local) == 0 {
			return nil, fmt.Errorf("failed to list threads: %w", err)
		}
		logging.Logger.Warn("serving recent threads from local meta", "error", err, "artistID", artistID)
		threads := make(map[string]models.ThreadDetails, len(local))
		for _, meta := range local {
			threads[meta.ThreadID] = models.ThreadDetails{
				Title:         meta.Title,
				ArtistID:      meta.ArtistID,
				ArtistName:    meta.ArtistName,
				LastMessageAt: meta.LastMessageAt.UTC().Format(timestampLayout),
			}
		}
		return threads, nil
	}
	return v.(map[string]models.ThreadDetails), nil
}

func (s *ChatService) DeleteThread(ctx context.Context, threadID string) error {
	if err := s.api.DeleteThread(ctx, threadID); err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	meta, err := s.threadRepo.GetByID(ctx, threadID)
	if err == nil && meta != nil {
		s.invalidateRecentThreads(meta.ArtistID)
	}
	if err := s.threadRepo.Delete(ctx, threadID); err != nil {
		logging.Logger.Error("fail deleting thread meta", "error", err, "threadID", threadID)
	}
	s.poll.Cancel(threadID)
	s.store.Drop(threadID)
	return nil
}

// touchThread refreshes the summary row after a confirmed send so list views
// sort by real activity.
func (s *ChatService) touchThread(threadID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		meta, err := s.threadRepo.GetByID(ctx, threadID)
		if err != nil || meta == nil {
			return
		}
		if err := s.threadRepo.TouchLastMessage(ctx, threadID, time.Now()); err != nil {
			logging.Logger.Error("fail TouchLastMessage", "error", err, "threadID", threadID)
			return
		}
		s.invalidateRecentThreads(meta.ArtistID)
	}()
}

func (s *ChatService) invalidateRecentThreads(artistID string) {
	if err := s.threadCache.Delete(recentThreadsKey(artistID)); err != nil {
		logging.Logger.Error("fail invalidating recent threads cache", "error", err, "artistID", artistID)
	}
}

func recentThreadsKey(artistID string) string {
	return fmt.Sprintf("recent_threads:%s", artistID)
}
