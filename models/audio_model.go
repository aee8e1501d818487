package models

import (
	"time"

	"github.com/lib/pq"
)

type AudioType string

const (
	AudioTypeDemo        AudioType = "demo"
	AudioTypeMixed       AudioType = "mixed"
	AudioTypeQuantized   AudioType = "quantized"
	AudioTypeStem        AudioType = "stem"
	AudioTypeProduction  AudioType = "production"
	AudioTypeComposition AudioType = "composition"
)

// AudioMeta is one row of the audio artifact registry: every uploaded sketch
// and every generated artifact the user can download again.
type AudioMeta struct {
	AudioID         string         `gorm:"column:audio_id;type:varchar(255);primaryKey" json:"audioId"`
	Type            AudioType      `gorm:"column:type;type:varchar(50);index:idx_audio_type" json:"type"`
	UserID          string         `gorm:"column:user_id;type:varchar(255);index:idx_audio_user_id" json:"userId"`
	ThreadID        string         `gorm:"column:thread_id;type:varchar(255);index:idx_audio_thread_id" json:"threadId,omitempty"`
	FileName        string         `gorm:"column:file_name;type:varchar(512)" json:"fileName"`
	FileKey         string         `gorm:"column:file_key;type:varchar(512);not null" json:"-"`
	OriginalAudioID string         `gorm:"column:original_audio_id;type:varchar(255)" json:"originalAudioId,omitempty"`
	StemAudioIDs    pq.StringArray `gorm:"column:stem_audio_ids;type:text[]" json:"stemAudioIds,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at;type:timestamp" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;type:timestamp" json:"updatedAt"`
}

func (AudioMeta) TableName() string {
	return "audio_meta"
}

// AudioUploadTicket is handed to the client so it can push the sketch bytes
// straight to object storage and then confirm the upload.
type AudioUploadTicket struct {
	ThreadID             string            `json:"threadId"`
	TaskID               string            `json:"taskId"`
	AudioUploadRequestID string            `json:"audioUploadRequestId"`
	UploadURL            string            `json:"uploadUrl"`
	FileKey              string            `json:"fileKey"`
	Fields               map[string]string `json:"fields"`
	Expires              time.Time         `json:"expires"`
	Provider             string            `json:"provider"`
}
