package models

import (
	"slices"
	"strings"
	"time"
)

// Priority is the urgency level of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the known priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority matches s case-insensitively against the known priorities
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Known reports whether p is one of Low, Medium or High
func (p Priority) Known() bool {
	return slices.Contains(Priorities, p)
}

// DefaultTag is attached to every newly created task
const DefaultTag = "New"

// InProgressTag marks a task as actively being worked on
const InProgressTag = "In Progress"

// Task represents a single task. Field names match the persisted JSON.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	Tags        []string  `json:"tags"`
}

// HasTag reports whether the task carries tag (exact match)
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Overdue reports whether the task is unfinished and its due time has
// passed. A task without a due date is never overdue.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// ClampProgress bounds p to 0..100
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// SetProgress stores p (clamped) and derives Completed from it
func (t *Task) SetProgress(p int) {
	t.Progress = ClampProgress(p)
	t.Completed = t.Progress == 100
}

// SetCompleted toggles completion and forces Progress to 100 or 0
func (t *Task) SetCompleted(done bool) {
	t.Completed = done
	if done {
		t.Progress = 100
	} else {
		t.Progress = 0
	}
}

// Clone returns a copy that shares no slices with t
func (t Task) Clone() Task {
	t.Tags = slices.Clone(t.Tags)
	return t
}
