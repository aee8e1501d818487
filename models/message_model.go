package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one confirmed or optimistic entry in a thread. Confirmed
// messages are never mutated; threads only grow.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// PendingMessage is one entry of the assistant's pending-messages response.
// Message is set once the server has resolved the task behind it.
type PendingMessage struct {
	Status  string   `json:"status"`
	Message *Message `json:"message,omitempty"`
}
