// Package render projects tasks into the display-ready view model the
// dashboard draws from.
package render

import (
	"time"

	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/models"
)

// Severity is a styling class shared by priorities and progress
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Item is one rendered task row
type Item struct {
	ID            string
	Title         string
	Description   string
	Tags          []string
	Completed     bool
	Overdue       bool
	DueLabel      string
	PriorityLabel string
	PriorityClass Severity
	Progress      int
	ProgressClass Severity
}

// Stats are aggregate counters over the whole store
type Stats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Overdue    int
}

// Count returns the counter matching a status quick-filter
func (s Stats) Count(st filter.Status) int {
	switch st {
	case filter.StatusPending:
		return s.Pending
	case filter.StatusCompleted:
		return s.Completed
	case filter.StatusOverdue:
		return s.Overdue
	}
	return s.Total
}

// ViewModel is everything the dashboard needs to draw the task area
type ViewModel struct {
	Items []Item
	Stats Stats
}

// Render builds the view model. Items come from visible; stats always come
// from all so they do not move when a filter narrows the list.
func Render(all, visible []models.Task, now time.Time) ViewModel {
	vm := ViewModel{
		Items: make([]Item, 0, len(visible)),
		Stats: ComputeStats(all, now),
	}
	for _, t := range visible {
		vm.Items = append(vm.Items, NewItem(t, now))
	}
	return vm
}

// NewItem derives the display fields of one task
func NewItem(t models.Task, now time.Time) Item {
	return Item{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Tags:          append([]string(nil), t.Tags...),
		Completed:     t.Completed,
		Overdue:       t.Overdue(now),
		DueLabel:      DueLabel(t.DueDate, now),
		PriorityLabel: PriorityLabel(t.Priority),
		PriorityClass: PriorityClass(t.Priority),
		Progress:      t.Progress,
		ProgressClass: ProgressClass(t.Progress),
	}
}

// ComputeStats counts total, pending, in-progress, completed and overdue tasks
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.HasTag(models.InProgressTag) || (t.Progress > 0 && t.Progress < 100) {
			s.InProgress++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	return s
}

// DueLabel formats a due date relative to now: "Today, 15:04",
// "Tomorrow, 15:04" or "Mon, Jan 2 15:04".
func DueLabel(due, now time.Time) string {
	if due.IsZero() {
		return "Not set"
	}
	due = due.In(now.Location())
	today := filter.StartOfDay(now)
	day := filter.StartOfDay(due)
	switch {
	case day.Equal(today):
		return "Today, " + due.Format("15:04")
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow, " + due.Format("15:04")
	}
	if due.Year() != now.Year() {
		return due.Format("Mon, Jan 2 2006 15:04")
	}
	return due.Format("Mon, Jan 2 15:04")
}

// PriorityLabel is the display text of a priority. Unknown legacy values
// are shown verbatim.
func PriorityLabel(p models.Priority) string {
	if p == "" {
		return string(models.PriorityLow)
	}
	return string(p)
}

// PriorityClass maps a priority to its severity; unknown values style as low
func PriorityClass(p models.Priority) Severity {
	switch p {
	case models.PriorityHigh:
		return SeverityHigh
	case models.PriorityMedium:
		return SeverityMedium
	}
	return SeverityLow
}

// ProgressClass buckets progress for styling: <30 low, 30-69 medium, >=70 high
func ProgressClass(p int) Severity {
	switch {
	case p >= 70:
		return SeverityHigh
	case p >= 30:
		return SeverityMedium
	}
	return SeverityLow
}
