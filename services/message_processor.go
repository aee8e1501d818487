package services

import (
	"music_chat_backend/models"
)

// FragmentGroup is the ordered fragment sequence sharing one correlation key.
// A group only ever grows: start, then complete, then possibly duplicates.
type FragmentGroup []models.Fragment

// Done reports whether the task behind this group has finished. Every family
// emits exactly one start followed by one complete, so two or more fragments
// mean the complete arrived. Duplicate completes keep the group done.
func (g FragmentGroup) Done() bool {
	return len(g) >= 2
}

// FamilyState is the grouped view of one task family.
type FamilyState struct {
	// Groups maps correlation key to its fragment group.
	Groups map[string]FragmentGroup
	// keys preserves first-arrival order of the groups so the derived
	// pending list is deterministic for a given message list.
	keys []string
	// Pending holds the newest fragment of every group that has only a
	// start and no error recorded against its task id.
	Pending []models.Fragment
}

// Group returns the fragment group for a correlation key.
func (fs FamilyState) Group(key string) (FragmentGroup, bool) {
	g, ok := fs.Groups[key]
	return g, ok
}

// ChatState is the consolidated read-only projection of one thread. It is
// discarded and recomputed from scratch on every message-list change; nothing
// in it is ever mutated in place.
type ChatState struct {
	families map[models.Family]FamilyState
	// taskIDsWithErrors indexes every error fragment in the thread by task id.
	taskIDsWithErrors map[string]bool
}

// Family returns the grouped state of one task family. Unknown families map
// to an empty state.
func (s *ChatState) Family(family models.Family) FamilyState {
	return s.families[family]
}

// TaskFailed reports whether an error fragment references the task id.
func (s *ChatState) TaskFailed(taskID string) bool {
	return s.taskIDsWithErrors[taskID]
}

// Pending returns the pending fragments of one family.
func (s *ChatState) Pending(family models.Family) []models.Fragment {
	return s.families[family].Pending
}

// MessageProcessor derives chat state from a thread's messages. It is
// stateless; Process is a pure function of its input snapshot.
type MessageProcessor struct{}

func NewMessageProcessor() *MessageProcessor {
	return &MessageProcessor{}
}

// mediaFragments flattens all messages into one ordered fragment list,
// dropping plain text.
func (p *MessageProcessor) mediaFragments(messages []models.Message) []models.Fragment {
	var fragments []models.Fragment
	for _, message := range messages {
		for _, fragment := range message.Content {
			if fragment.FragmentType() == models.FragmentText {
				continue
			}
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// groupFamily partitions the fragments of one family by correlation key,
// preserving relative arrival order within each key. Fragments outside the
// family are ignored; missing keys simply do not appear.
func (p *MessageProcessor) groupFamily(fragments []models.Fragment, family models.Family) (map[string]FragmentGroup, []string) {
	groups := make(map[string]FragmentGroup)
	var keys []string
	for _, fragment := range fragments {
		fam, key, ok := fragment.Correlation()
		if !ok || fam != family {
			continue
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], fragment)
	}
	return groups, keys
}

// pendingFragments enumerates the groups still waiting for their complete
// event. A group whose task id shows up in the error index is abandoned: it
// is neither pending nor rendered as complete.
func (p *MessageProcessor) pendingFragments(groups map[string]FragmentGroup, keys []string, taskIDsWithErrors map[string]bool) []models.Fragment {
	var pending []models.Fragment
	for _, key := range keys {
		group := groups[key]
		failed := false
		for _, fragment := range group {
			if taskID, ok := fragment.TaskID(); ok && taskIDsWithErrors[taskID] {
				failed = true
				break
			}
		}
		if failed {
			continue
		}
		if len(group) == 1 {
			pending = append(pending, group[len(group)-1])
		}
	}
	return pending
}

// Process projects the message list into one consolidated chat state. Given
// the same ordered message list, the output is identical on every call.
func (p *MessageProcessor) Process(messages []models.Message) *ChatState {
	fragments := p.mediaFragments(messages)

	taskIDsWithErrors := make(map[string]bool)
	for _, fragment := range fragments {
		if fragment.FragmentType() != models.FragmentError {
			continue
		}
		if taskID, ok := fragment.TaskID(); ok {
			taskIDsWithErrors[taskID] = true
		}
	}

	families := make(map[models.Family]FamilyState, len(models.Families))
	for _, family := range models.Families {
		groups, keys := p.groupFamily(fragments, family)
		families[family] = FamilyState{
			Groups:  groups,
			keys:    keys,
			Pending: p.pendingFragments(groups, keys, taskIDsWithErrors),
		}
	}

	return &ChatState{
		families:          families,
		taskIDsWithErrors: taskIDsWithErrors,
	}
}
