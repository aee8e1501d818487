package services

import (
	"sort"

	"music_chat_backend/models"
)

// GroupView is the API shape of one correlation group.
type GroupView struct {
	Key       string            `json:"key"`
	Done      bool              `json:"done"`
	Fragments []models.Fragment `json:"fragments"`
}

// FamilyView is the API shape of one task family's grouped state.
type FamilyView struct {
	Groups  []GroupView       `json:"groups"`
	Pending []models.Fragment `json:"pending"`
}

// StateView is the serializable projection of a ChatState.
type StateView struct {
	Families    map[models.Family]FamilyView `json:"families"`
	FailedTasks []string                     `json:"failedTasks"`
}

// View flattens the state into a stable, JSON-friendly shape. Groups keep
// first-arrival order; failed task ids are sorted.
func (s *ChatState) View() StateView {
	families := make(map[models.Family]FamilyView, len(s.families))
	for family, fs := range s.families {
		groups := make([]GroupView, 0, len(fs.keys))
		for _, key := range fs.keys {
			group := fs.Groups[key]
			groups = append(groups, GroupView{
				Key:       key,
				Done:      group.Done(),
				Fragments: group,
			})
		}
		families[family] = FamilyView{
			Groups:  groups,
			Pending: fs.Pending,
		}
	}

	failed := make([]string, 0, len(s.taskIDsWithErrors))
	for taskID := range s.taskIDsWithErrors {
		failed = append(failed, taskID)
	}
	sort.Strings(failed)

	return StateView{
		Families:    families,
		FailedTasks: failed,
	}
}
