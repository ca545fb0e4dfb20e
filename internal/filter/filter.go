// Package filter narrows a task collection by search text, the filter panel
// selections and the status quick-filter. Categories combine with AND,
// selections inside one category with OR. Input order is preserved.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// Status is the sidebar / stat card quick-filter. Only one is active.
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Statuses lists the quick-filters in sidebar order
var Statuses = []Status{StatusAll, StatusPending, StatusCompleted, StatusOverdue}

// ParseStatus parses a status name case-insensitively
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if s == string(st) {
			return st, true
		}
	}
	return "", false
}

// Label is the display name of the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusOverdue:
		return "Overdue"
	default:
		return "All Tasks"
	}
}

// ProgressBucket is a named progress range
type ProgressBucket string

const (
	ProgressStarted  ProgressBucket = "0-30"
	ProgressHalfway  ProgressBucket = "31-70"
	ProgressNearDone ProgressBucket = "71-99"
	ProgressDone     ProgressBucket = "100"
)

// ProgressBuckets lists the progress ranges in ascending order
var ProgressBuckets = []ProgressBucket{ProgressStarted, ProgressHalfway, ProgressNearDone, ProgressDone}

// Contains reports whether p falls in the bucket
func (b ProgressBucket) Contains(p int) bool {
	switch b {
	case ProgressStarted:
		return p >= 0 && p <= 30
	case ProgressHalfway:
		return p >= 31 && p <= 70
	case ProgressNearDone:
		return p >= 71 && p <= 99
	case ProgressDone:
		return p == 100
	}
	return false
}

// DueBucket is a named due-date window relative to today
type DueBucket string

const (
	DueToday    DueBucket = "today"
	DueTomorrow DueBucket = "tomorrow"
	DueThisWeek DueBucket = "week"
	DueOverdue  DueBucket = "overdue"
)

// DueBuckets lists the due-date windows in panel order
var DueBuckets = []DueBucket{DueToday, DueTomorrow, DueThisWeek, DueOverdue}

// Label is the display name of the bucket
func (b DueBucket) Label() string {
	switch b {
	case DueToday:
		return "Today"
	case DueTomorrow:
		return "Tomorrow"
	case DueThisWeek:
		return "This week"
	case DueOverdue:
		return "Overdue"
	}
	return string(b)
}

// Contains reports whether t falls in the bucket. Dates are compared in
// now's location with the time of day dropped. A task without a due date
// is in no bucket.
func (b DueBucket) Contains(t models.Task, now time.Time) bool {
	if t.DueDate.IsZero() {
		return false
	}
	today := StartOfDay(now)
	due := StartOfDay(t.DueDate.In(now.Location()))
	switch b {
	case DueToday:
		return due.Equal(today)
	case DueTomorrow:
		return due.Equal(today.AddDate(0, 0, 1))
	case DueThisWeek:
		return !due.Before(today.AddDate(0, 0, 1)) && !due.After(today.AddDate(0, 0, 7))
	case DueOverdue:
		return due.Before(today) && !t.Completed
	}
	return false
}

// StartOfDay returns midnight of t's date in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Criteria is the full set of active predicates. The zero value matches
// every task.
type Criteria struct {
	Search     string
	Status     Status
	Priorities []models.Priority
	Progress   []ProgressBucket
	Due        []DueBucket
}

// PanelActive reports whether any filter panel selection is set
func (c Criteria) PanelActive() bool {
	return len(c.Priorities) > 0 || len(c.Progress) > 0 || len(c.Due) > 0
}

// Active reports whether anything would narrow the collection
func (c Criteria) Active() bool {
	return c.PanelActive() || strings.TrimSpace(c.Search) != "" || (c.Status != "" && c.Status != StatusAll)
}

// TogglePriority adds or removes p from the selection
func (c *Criteria) TogglePriority(p models.Priority) {
	c.Priorities = toggle(c.Priorities, p)
}

// ToggleProgress adds or removes b from the selection
func (c *Criteria) ToggleProgress(b ProgressBucket) {
	c.Progress = toggle(c.Progress, b)
}

// ToggleDue adds or removes b from the selection
func (c *Criteria) ToggleDue(b DueBucket) {
	c.Due = toggle(c.Due, b)
}

// ClearPanel drops every panel selection, keeping search and status
func (c *Criteria) ClearPanel() {
	c.Priorities = nil
	c.Progress = nil
	c.Due = nil
}

func toggle[T comparable](sel []T, v T) []T {
	if i := slices.Index(sel, v); i >= 0 {
		return slices.Delete(slices.Clone(sel), i, i+1)
	}
	return append(slices.Clone(sel), v)
}

// Apply returns the tasks matching c, in input order
func Apply(tasks []models.Task, c Criteria, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Match(t, c, now) {
			out = append(out, t)
		}
	}
	return out
}

// Match reports whether a single task passes every category of c
func Match(t models.Task, c Criteria, now time.Time) bool {
	return matchStatus(t, c.Status, now) &&
		matchSearch(t, c.Search) &&
		matchPriority(t, c.Priorities) &&
		matchProgress(t, c.Progress) &&
		matchDue(t, c.Due, now)
}

func matchStatus(t models.Task, s Status, now time.Time) bool {
	switch s {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusOverdue:
		return t.Overdue(now)
	}
	return true
}

func matchSearch(t models.Task, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	return slices.ContainsFunc(t.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), q)
	})
}

func matchPriority(t models.Task, sel []models.Priority) bool {
	return len(sel) == 0 || slices.Contains(sel, t.Priority)
}

func matchProgress(t models.Task, sel []ProgressBucket) bool {
	if len(sel) == 0 {
		return true
	}
	return slices.ContainsFunc(sel, func(b ProgressBucket) bool { return b.Contains(t.Progress) })
}

func matchDue(t models.Task, sel []DueBucket, now time.Time) bool {
	if len(sel) == 0 {
		return true
	}
	return slices.ContainsFunc(sel, func(b DueBucket) bool { return b.Contains(t, now) })
}
