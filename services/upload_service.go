package services

import (
	"context"
	"fmt"
	"time"

	"music_chat_backend/config"
	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/platform/storage"
	"music_chat_backend/repository"

	"github.com/google/uuid"
)

// AudioPostProcessQueue is the redis list the external task executors drain.
const AudioPostProcessQueue = "audio_post_process"

// AudioPostProcessJob asks an executor to run analysis or quantization on a
// freshly uploaded sketch.
type AudioPostProcessJob struct {
	AudioID  string `json:"audioId"`
	ThreadID string `json:"threadId"`
	TaskID   string `json:"taskId"`
	Process  string `json:"process,omitempty"`
}

// ConfirmUploadRequest carries the client's confirmation that the sketch
// bytes reached object storage.
type ConfirmUploadRequest struct {
	AudioUploadRequestID string
	TaskID               string
	FileKey              string
	FileName             string
	SongName             string
	PostProcess          string
	UserID               string
}

// UploadService runs the audio sketch upload flow: issue a presigned ticket,
// post the upload-start fragment, and on confirmation register the audio row,
// queue post-processing and post the upload-complete fragment.
type UploadService struct {
	storage     *storage.Service
	audioRepo   repository.AudioRepository
	queue       MessageQueue
	chat        *ChatService
	maxFileSize int64
}

func NewUploadService(storageService *storage.Service, audioRepo repository.AudioRepository, queue MessageQueue, chat *ChatService, cfg *config.Config) *UploadService {
	return &UploadService{
		storage:     storageService,
		audioRepo:   audioRepo,
		queue:       queue,
		chat:        chat,
		maxFileSize: cfg.MaxAudioFileSize,
	}
}

func (s *UploadService) RequestUpload(ctx context.Context, threadID, fileName string) (*models.AudioUploadTicket, error) {
	taskID := uuid.New().String()
	requestID := uuid.New().String()

	ticket, err := s.storage.GenerateAudioUploadTicket(fileName, s.maxFileSize)
	if err != nil {
		logging.Logger.Error("fail GenerateAudioUploadTicket", "error", err, "threadID", threadID)
		return nil, fmt.Errorf("failed to create upload ticket: %w", err)
	}
	ticket.ThreadID = threadID
	ticket.TaskID = taskID
	ticket.AudioUploadRequestID = requestID

	s.chat.SendUploadStart(ctx, threadID, requestID, taskID, fileName)
	return ticket, nil
}

func (s *UploadService) ConfirmUpload(ctx context.Context, threadID string, req ConfirmUploadRequest) (*models.AudioMeta, error) {
	exists, err := s.storage.FileExists(req.FileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check uploaded file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("uploaded file %s not found in storage", req.FileKey)
	}

	audio := &models.AudioMeta{
		AudioID:   uuid.New().String(),
		Type:      models.AudioTypeDemo,
		UserID:    req.UserID,
		ThreadID:  threadID,
		FileName:  req.FileName,
		FileKey:   req.FileKey,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.audioRepo.Create(ctx, audio); err != nil {
		return nil, fmt.Errorf("failed to register audio: %w", err)
	}

	job := AudioPostProcessJob{
		AudioID:  audio.AudioID,
		ThreadID: threadID,
		TaskID:   req.TaskID,
		Process:  req.PostProcess,
	}
	if err := s.queue.PushToQueue(AudioPostProcessQueue, job); err != nil {
		logging.Logger.Error("fail queueing post-process job", "error", err, "audioID", audio.AudioID)
	}

	s.chat.SendUploadComplete(ctx, threadID, req.AudioUploadRequestID, req.TaskID, audio.AudioID, req.SongName)
	return audio, nil
}

// ThreadAudio lists the registered audio artifacts of one thread, oldest
// first.
func (s *UploadService) ThreadAudio(ctx context.Context, threadID string) ([]*models.AudioMeta, error) {
	return s.audioRepo.ListByThread(ctx, threadID)
}

// DownloadURL returns a short-lived presigned link for an audio artifact.
func (s *UploadService) DownloadURL(ctx context.Context, audioID string) (string, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return "", fmt.Errorf("failed to look up audio %s: %w", audioID, err)
	}
	return s.storage.GeneratePresignedGetDownload(audio.FileKey, time.Now().Add(15*time.Minute))
}
