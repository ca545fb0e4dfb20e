package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetProgress(t *testing.T) {
	tests := []struct {
		in            int
		wantProgress  int
		wantCompleted bool
	}{
		{in: 0, wantProgress: 0},
		{in: 55, wantProgress: 55},
		{in: 99, wantProgress: 99},
		{in: 100, wantProgress: 100, wantCompleted: true},
		{in: 140, wantProgress: 100, wantCompleted: true},
		{in: -5, wantProgress: 0},
	}
	for _, tt := range tests {
		task := Task{Completed: true, Progress: 100}
		task.SetProgress(tt.in)
		assert.Equal(t, tt.wantProgress, task.Progress, "progress for %d", tt.in)
		assert.Equal(t, tt.wantCompleted, task.Completed, "completed for %d", tt.in)
	}
}

func TestSetCompleted(t *testing.T) {
	task := Task{Progress: 40}
	task.SetCompleted(true)
	assert.True(t, task.Completed)
	assert.Equal(t, 100, task.Progress)

	task.SetCompleted(false)
	assert.False(t, task.Completed)
	assert.Equal(t, 0, task.Progress)
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority(" high ")
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("Urgent")
	assert.False(t, ok)
	assert.False(t, Priority("Normal").Known())
	assert.True(t, PriorityMedium.Known())
}

func TestTaskJSONFieldNames(t *testing.T) {
	task := Task{
		ID:       "1",
		Title:    "Write report",
		DueDate:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Priority: PriorityLow,
		Tags:     []string{DefaultTag},
	}
	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, k := range []string{"id", "title", "description", "dueDate", "priority", "progress", "completed", "tags"} {
		assert.Contains(t, raw, k)
	}
	assert.Equal(t, "2026-03-01T09:30:00Z", raw["dueDate"])
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	task := Task{DueDate: now.Add(-time.Minute)}
	assert.True(t, task.Overdue(now))

	task.Completed = true
	assert.False(t, task.Overdue(now))

	task = Task{DueDate: now.Add(time.Minute)}
	assert.False(t, task.Overdue(now))
}

func TestCloneDoesNotShareTags(t *testing.T) {
	orig := Task{Tags: []string{"a"}}
	c := orig.Clone()
	c.Tags[0] = "b"
	assert.Equal(t, "a", orig.Tags[0])
}

func TestOverdueWithoutDueDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.False(t, Task{}.Overdue(now))
}

func TestUnmarshalDueDateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: `"2024-05-02T09:00:00.000Z"`, want: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
		{raw: `"2024-05-02T11:00:00+02:00"`, want: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
		{raw: `"2024-05-01 14:00"`, want: time.Date(2024, 5, 1, 14, 0, 0, 0, time.Local)},
		{raw: `"2024-05-01T14:00"`, want: time.Date(2024, 5, 1, 14, 0, 0, 0, time.Local)},
		{raw: `"2024-05-01"`, want: time.Date(2024, 5, 1, 23, 59, 0, 0, time.Local)},
		{raw: `"next tuesday"`},
		{raw: `""`},
		{raw: `null`},
		{raw: `42`},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var task Task
			data := `{"id":"a","title":"Write report","dueDate":` + tt.raw + `,"priority":"Normal","progress":20,"tags":["x"]}`
			require.NoError(t, json.Unmarshal([]byte(data), &task))

			assert.True(t, task.DueDate.Equal(tt.want), "got %v want %v", task.DueDate, tt.want)
			assert.Equal(t, "a", task.ID)
			assert.Equal(t, "Write report", task.Title)
			assert.Equal(t, Priority("Normal"), task.Priority)
			assert.Equal(t, 20, task.Progress)
			assert.Equal(t, []string{"x"}, task.Tags)
		})
	}
}

func TestUnmarshalRejectsBadFields(t *testing.T) {
	var task Task
	require.Error(t, json.Unmarshal([]byte(`{"title":5}`), &task))
}
