package store

import (
	"slices"

	"github.com/tgienger/taskboard/internal/models"
)

// The functions below never modify their input slice.

func appendTask(tasks []models.Task, t models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

func patchTask(tasks []models.Task, id string, p Patch) ([]models.Task, bool) {
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return tasks, false
	}
	out := slices.Clone(tasks)
	t := out[i].Clone()
	p.apply(&t)
	out[i] = t
	return out, true
}

func withoutID(tasks []models.Task, id string) ([]models.Task, bool) {
	out := slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool { return t.ID == id })
	return out, len(out) != len(tasks)
}

func withoutTitles(tasks []models.Task, titles []string) ([]models.Task, int) {
	out := slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool {
		return slices.Contains(titles, t.Title)
	})
	return out, len(tasks) - len(out)
}

// apply writes the non-nil fields of p into t. Progress wins over Completed
// when both are set, so completed always mirrors progress == 100.
func (p Patch) apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Tags != nil {
		t.Tags = slices.Clone(*p.Tags)
	}
	switch {
	case p.Progress != nil:
		t.SetProgress(*p.Progress)
	case p.Completed != nil:
		t.SetCompleted(*p.Completed)
	}
}
