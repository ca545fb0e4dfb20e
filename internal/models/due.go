package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DueDateLayout is how due dates are typed and shown
const DueDateLayout = "2006-01-02 15:04"

// ParseDueDate accepts RFC 3339, "2006-01-02 15:04", "2006-01-02T15:04" or a
// bare date, which means the end of that day. Zone-less forms are read in loc.
func ParseDueDate(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	for _, layout := range []string{DueDateLayout, "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, loc), true
	}
	return time.Time{}, false
}

// UnmarshalJSON reads dueDate with ParseDueDate in local time, so records
// saved as typed text ("2024-05-01 14:00") load alongside RFC 3339 ones. A
// missing or unreadable due date loads as unset rather than failing the task.
func (t *Task) UnmarshalJSON(data []byte) error {
	type task Task
	aux := struct {
		*task
		DueDate json.RawMessage `json:"dueDate"`
	}{task: (*task)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.DueDate = time.Time{}
	var raw string
	if len(aux.DueDate) > 0 && json.Unmarshal(aux.DueDate, &raw) == nil {
		if due, ok := ParseDueDate(raw, time.Local); ok {
			t.DueDate = due
		}
	}
	return nil
}
