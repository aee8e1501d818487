package models

import "time"

// ArtifactNotification is the side-channel signal emitted when a completed
// task's output shows up in the newest assistant message. Consumed by the
// desktop notification collaborator over the websocket channel.
type ArtifactNotification struct {
	ThreadID   string       `json:"threadId"`
	Type       FragmentType `json:"type"`
	Message    string       `json:"message"`
	ArtifactID string       `json:"artifactId,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}
