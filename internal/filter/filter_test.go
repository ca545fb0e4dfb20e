package filter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/tgienger/taskboard/internal/models"
)

// Wednesday afternoon
var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func day(offset int, hour int) time.Time {
	return time.Date(2026, 10, 14+offset, hour, 0, 0, 0, time.UTC)
}

func ids(tasks []models.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func fixture() []models.Task {
	return []models.Task{
		{ID: "low", Title: "Write report", Description: "quarterly numbers", Priority: models.PriorityLow, Progress: 10, DueDate: day(0, 9), Tags: []string{"New"}},
		{ID: "high", Title: "Fix outage", Priority: models.PriorityHigh, Progress: 50, DueDate: day(1, 10), Tags: []string{"ops", "In Progress"}},
		{ID: "done", Title: "Ship release", Priority: models.PriorityMedium, Progress: 100, Completed: true, DueDate: day(-3, 9)},
		{ID: "late", Title: "Pay invoice", Priority: models.PriorityMedium, Progress: 80, DueDate: day(-2, 9)},
		{ID: "week", Title: "Plan offsite", Priority: models.PriorityLow, Progress: 31, DueDate: day(7, 23)},
		{ID: "far", Title: "Renew domain", Priority: models.PriorityHigh, Progress: 70, DueDate: day(8, 0)},
	}
}

func TestApplyNoPredicatesKeepsOrder(t *testing.T) {
	tasks := fixture()
	got := Apply(tasks, Criteria{}, now)
	if diff := cmp.Diff(tasks, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	got = Apply(tasks, Criteria{Status: StatusAll, Search: "   "}, now)
	assert.Equal(t, ids(tasks), ids(got))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{name: "search title", c: Criteria{Search: "REPORT"}, want: []string{"low"}},
		{name: "search description", c: Criteria{Search: "quarterly"}, want: []string{"low"}},
		{name: "search tag", c: Criteria{Search: "progress"}, want: []string{"high"}},
		{name: "search no match", c: Criteria{Search: "zebra"}, want: []string{}},
		{name: "priority high", c: Criteria{Priorities: []models.Priority{models.PriorityHigh}}, want: []string{"high", "far"}},
		{name: "priority or", c: Criteria{Priorities: []models.Priority{models.PriorityLow, models.PriorityHigh}}, want: []string{"low", "high", "week", "far"}},
		{name: "progress 0-30", c: Criteria{Progress: []ProgressBucket{ProgressStarted}}, want: []string{"low"}},
		{name: "progress 31-70", c: Criteria{Progress: []ProgressBucket{ProgressHalfway}}, want: []string{"high", "week", "far"}},
		{name: "progress 71-99", c: Criteria{Progress: []ProgressBucket{ProgressNearDone}}, want: []string{"late"}},
		{name: "progress 100", c: Criteria{Progress: []ProgressBucket{ProgressDone}}, want: []string{"done"}},
		{name: "due today", c: Criteria{Due: []DueBucket{DueToday}}, want: []string{"low"}},
		{name: "due tomorrow", c: Criteria{Due: []DueBucket{DueTomorrow}}, want: []string{"high"}},
		{name: "due this week", c: Criteria{Due: []DueBucket{DueThisWeek}}, want: []string{"high", "week"}},
		{name: "due overdue", c: Criteria{Due: []DueBucket{DueOverdue}}, want: []string{"late"}},
		{name: "status pending", c: Criteria{Status: StatusPending}, want: []string{"low", "high", "late", "week", "far"}},
		{name: "status completed", c: Criteria{Status: StatusCompleted}, want: []string{"done"}},
		{name: "status overdue uses time of day", c: Criteria{Status: StatusOverdue}, want: []string{"low", "late"}},
		{
			name: "categories combine with and",
			c: Criteria{
				Priorities: []models.Priority{models.PriorityHigh, models.PriorityLow},
				Due:        []DueBucket{DueThisWeek},
			},
			want: []string{"high", "week"},
		},
		{
			name: "status with panel",
			c:    Criteria{Status: StatusPending, Progress: []ProgressBucket{ProgressDone, ProgressNearDone}},
			want: []string{"late"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(fixture(), tt.c, now))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPriorityScenario(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "a", Priority: models.PriorityLow},
		{ID: "2", Title: "b", Priority: models.PriorityHigh},
	}
	got := Apply(tasks, Criteria{Priorities: []models.Priority{models.PriorityHigh}}, now)
	if diff := cmp.Diff([]models.Task{tasks[1]}, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestOverdueBucketNeverIncludesCompleted(t *testing.T) {
	for offset := -10; offset <= 10; offset++ {
		task := models.Task{DueDate: day(offset, 8), Progress: 100, Completed: true}
		assert.False(t, DueOverdue.Contains(task, now), "offset %d", offset)
	}
}

func TestDueBucketUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2026, 10, 15, 1, 0, 0, 0, loc)
	// 2026-10-14 20:00 UTC is still the 15th in UTC+9.
	task := models.Task{DueDate: time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)}
	assert.True(t, DueToday.Contains(task, local))
}

func TestToggleAndClear(t *testing.T) {
	var c Criteria
	assert.False(t, c.Active())

	c.TogglePriority(models.PriorityHigh)
	c.ToggleProgress(ProgressDone)
	c.ToggleDue(DueToday)
	assert.True(t, c.PanelActive())
	assert.Equal(t, []models.Priority{models.PriorityHigh}, c.Priorities)

	c.TogglePriority(models.PriorityHigh)
	assert.Empty(t, c.Priorities)

	c.Search = "x"
	c.Status = StatusPending
	c.ClearPanel()
	assert.False(t, c.PanelActive())
	assert.True(t, c.Active())
	assert.Equal(t, "x", c.Search)
	assert.Equal(t, StatusPending, c.Status)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" Overdue ")
	assert.True(t, ok)
	assert.Equal(t, StatusOverdue, s)
	_, ok = ParseStatus("later")
	assert.False(t, ok)
}

func TestProgressBucketEdges(t *testing.T) {
	assert.True(t, ProgressStarted.Contains(0))
	assert.True(t, ProgressStarted.Contains(30))
	assert.False(t, ProgressStarted.Contains(31))
	assert.True(t, ProgressHalfway.Contains(70))
	assert.True(t, ProgressNearDone.Contains(99))
	assert.False(t, ProgressNearDone.Contains(100))
	assert.True(t, ProgressDone.Contains(100))
}

func TestNoDueDateMatchesNoBucket(t *testing.T) {
	task := models.Task{ID: "unset", Title: "Someday"}
	for _, b := range DueBuckets {
		assert.False(t, b.Contains(task, now), b)
	}
	assert.False(t, Match(task, Criteria{Status: StatusOverdue}, now))
	assert.True(t, Match(task, Criteria{Status: StatusPending}, now))
}
