package services

import (
	"encoding/json"

	"music_chat_backend/models"
)

// completeFragmentTypes are task completions the client posts on behalf of
// the server. Messages carrying them were authored with role=user but are
// presented as assistant turns.
var completeFragmentTypes = map[models.FragmentType]struct{}{
	models.FragmentSongRenderingComplete:   {},
	models.FragmentStemSeparationComplete:  {},
	models.FragmentQuantizationComplete:    {},
	models.FragmentMixingComplete:          {},
	models.FragmentSongCompositionComplete: {},
}

// AnnotatedFragment pairs an immutable fragment with its derived rendering
// state. Done is projection output only; it is never written back to the
// fragment or the wire.
type AnnotatedFragment struct {
	models.Fragment
	Done      *bool
	MessageID string
	ThreadID  string
}

// Loading reports whether the fragment should render as an in-progress
// status: it belongs to a known group and the complete has not arrived.
func (af AnnotatedFragment) Loading() bool {
	return af.Done != nil && !*af.Done
}

func (af AnnotatedFragment) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(af.Fragment)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if af.Done != nil {
		fields["done"] = *af.Done
	}
	fields["messageId"] = af.MessageID
	fields["threadId"] = af.ThreadID
	return json.Marshal(fields)
}

// AnnotatedMessage is one message prepared for rendering.
type AnnotatedMessage struct {
	ID        string              `json:"id"`
	Role      models.Role         `json:"role"`
	Content   []AnnotatedFragment `json:"content"`
	Timestamp string              `json:"timestamp"`
}

func hasCompleteFragment(message models.Message) bool {
	for _, fragment := range message.Content {
		if _, ok := completeFragmentTypes[fragment.FragmentType()]; ok {
			return true
		}
	}
	return false
}

// Annotate prepares the thread's messages for rendering against a projected
// chat state: user-authored completion messages are dropped or re-roled to
// assistant, and every correlated fragment gains its derived done flag.
func (p *MessageProcessor) Annotate(threadID string, messages []models.Message, state *ChatState) []AnnotatedMessage {
	out := make([]AnnotatedMessage, 0, len(messages))
	for _, message := range messages {
		if message.Role == models.RoleUser && hasCompleteFragment(message) {
			continue
		}

		role := message.Role
		if hasCompleteFragment(message) {
			role = models.RoleAssistant
		}

		content := make([]AnnotatedFragment, 0, len(message.Content))
		for _, fragment := range message.Content {
			annotated := AnnotatedFragment{
				Fragment:  fragment,
				MessageID: message.ID,
				ThreadID:  threadID,
			}
			if family, key, ok := fragment.Correlation(); ok {
				if group, found := state.Family(family).Group(key); found {
					done := group.Done()
					annotated.Done = &done
				}
			}
			content = append(content, annotated)
		}

		out = append(out, AnnotatedMessage{
			ID:        message.ID,
			Role:      role,
			Content:   content,
			Timestamp: message.Timestamp.UTC().Format(timestampLayout),
		})
	}
	return out
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"
