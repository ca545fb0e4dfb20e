package form

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/render"
	"github.com/tgienger/taskboard/internal/store"
)

var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

type memKV map[string]string

func (m memKV) GetSetting(key string) (string, error) { return m[key], nil }
func (m memKV) SetSetting(key, value string) error   { m[key] = value; return nil }

func newController(t *testing.T) (*Controller, *store.Store) {
	t.Helper()
	s := store.New(memKV{}, store.WithClock(func() time.Time { return now }))
	return NewController(s, func() time.Time { return now }), s
}

func loadAll(t *testing.T, s *store.Store) []models.Task {
	t.Helper()
	tasks, err := s.LoadAll()
	require.NoError(t, err)
	return tasks
}

type recordingStore struct {
	calls []string
	err   error
}

func (r *recordingStore) Create(nt store.NewTask) (models.Task, error) {
	r.calls = append(r.calls, "create")
	return models.Task{Title: nt.Title}, r.err
}
func (r *recordingStore) Update(string, store.Patch) error {
	r.calls = append(r.calls, "update")
	return r.err
}
func (r *recordingStore) SetProgress(string, int) error {
	r.calls = append(r.calls, "progress")
	return r.err
}
func (r *recordingStore) Remove(string) error {
	r.calls = append(r.calls, "remove")
	return r.err
}

func TestParseAddDefaults(t *testing.T) {
	nt, err := ParseAdd(Fields{Title: "  Write report "}, now)
	require.NoError(t, err)
	assert.Equal(t, "Write report", nt.Title)
	assert.Equal(t, models.PriorityLow, nt.Priority)
	assert.True(t, nt.DueDate.Equal(now))
	assert.Equal(t, 0, nt.Progress)
}

func TestParseAdd(t *testing.T) {
	nt, err := ParseAdd(Fields{
		Title:       "Deploy",
		Description: " rollout ",
		Priority:    "high",
		DueDate:     "2026-10-20 09:30",
		Progress:    "150",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "rollout", nt.Description)
	assert.Equal(t, models.PriorityHigh, nt.Priority)
	assert.True(t, nt.DueDate.Equal(time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, 100, nt.Progress, "progress is clamped")
}

func TestParseAddErrors(t *testing.T) {
	tests := []struct {
		f    Fields
		want error
	}{
		{Fields{Title: "   "}, ErrEmptyTitle},
		{Fields{Title: "a", Priority: "Urgent"}, ErrInvalidPriority},
		{Fields{Title: "a", DueDate: "next week"}, ErrInvalidDueDate},
		{Fields{Title: "a", Progress: "half"}, ErrInvalidProgress},
	}
	for _, tt := range tests {
		_, err := ParseAdd(tt.f, now)
		assert.ErrorIs(t, err, tt.want, "%+v", tt.f)
	}
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2026-10-20", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 23, 59, 0, 0, time.UTC)))

	got, err = ParseDueDate("2026-10-20T08:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)))

	got, err = ParseDueDate("2026-10-20T08:15", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 8, 15, 0, 0, time.UTC)))
}

func TestParseProgress(t *testing.T) {
	for _, raw := range []string{"0", "55", " 100 ", "42%"} {
		_, err := ParseProgress(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"-1", "101", "", "ten", "4.5"} {
		_, err := ParseProgress(raw)
		assert.ErrorIs(t, err, ErrInvalidProgress, raw)
	}
}

func TestModalLifecycle(t *testing.T) {
	c, _ := newController(t)
	_, ok := c.Active()
	assert.False(t, ok)

	c.OpenAdd()
	m, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, KindAdd, m.Kind)

	c.OpenEdit("42")
	m, ok = c.Active()
	require.True(t, ok)
	assert.Equal(t, KindEdit, m.Kind)
	assert.Equal(t, "42", m.TargetID)
	assert.False(t, c.Modal(KindAdd).Open, "opening one modal closes the others")

	c.Cancel()
	_, ok = c.Active()
	assert.False(t, ok)
	assert.Empty(t, c.Modal(KindEdit).TargetID)

	c.OpenEdit("7")
	assert.Equal(t, "7", c.Modal(KindEdit).TargetID, "reopening repopulates the same modal")
}

func TestSubmitRequiresOpenModal(t *testing.T) {
	rec := &recordingStore{}
	c := NewController(rec, func() time.Time { return now })

	_, err := c.SubmitAdd(Fields{Title: "a"})
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, c.SubmitEdit(Fields{Title: "a"}), ErrNotOpen)
	assert.ErrorIs(t, c.SubmitProgress("10"), ErrNotOpen)
	assert.ErrorIs(t, c.ConfirmDelete(), ErrNotOpen)
	assert.Empty(t, rec.calls)
}

func TestInvalidInputNeverDispatches(t *testing.T) {
	rec := &recordingStore{}
	c := NewController(rec, func() time.Time { return now })

	c.OpenAdd()
	_, err := c.SubmitAdd(Fields{Title: " "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.True(t, c.Modal(KindAdd).Open, "modal stays open after a validation error")

	c.OpenEdit("1")
	assert.ErrorIs(t, c.SubmitEdit(Fields{}), ErrEmptyTitle)

	c.OpenProgress("1")
	assert.ErrorIs(t, c.SubmitProgress("120"), ErrInvalidProgress)

	assert.Empty(t, rec.calls)
}

func TestStoreErrorKeepsModalOpen(t *testing.T) {
	boom := errors.New("boom")
	rec := &recordingStore{err: boom}
	c := NewController(rec, func() time.Time { return now })

	c.OpenDelete("1")
	assert.ErrorIs(t, c.ConfirmDelete(), boom)
	assert.True(t, c.Modal(KindDelete).Open)
}

func TestAddEditProgressDelete(t *testing.T) {
	c, s := newController(t)

	c.OpenAdd()
	task, err := c.SubmitAdd(Fields{Title: "Write report", Progress: "0"})
	require.NoError(t, err)
	assert.False(t, c.Modal(KindAdd).Open)

	before := render.ComputeStats(loadAll(t, s), now)

	c.OpenProgress(task.ID)
	require.NoError(t, c.SubmitProgress("100"))
	tasks := loadAll(t, s)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	after := render.ComputeStats(tasks, now)
	assert.Equal(t, before.Completed+1, after.Completed)
	assert.Equal(t, before.Pending-1, after.Pending)

	c.OpenEdit(task.ID)
	fields := FieldsFromTask(tasks[0], time.UTC)
	fields.Title = "Write final report"
	fields.Progress = "60"
	fields.Priority = "Medium"
	require.NoError(t, c.SubmitEdit(fields))
	tasks = loadAll(t, s)
	assert.Equal(t, "Write final report", tasks[0].Title)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, 60, tasks[0].Progress)
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[0].DueDate.Equal(now), "prefilled due date round-trips")

	c.OpenDelete(task.ID)
	c.Cancel()
	assert.Len(t, loadAll(t, s), 1, "cancel does not delete")

	c.OpenDelete(task.ID)
	require.NoError(t, c.ConfirmDelete())
	assert.Empty(t, loadAll(t, s))
}

func TestFieldsFromTask(t *testing.T) {
	f := FieldsFromTask(models.Task{
		Title:    "a",
		Priority: models.PriorityHigh,
		Progress: 30,
		DueDate:  time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC),
	}, time.UTC)
	assert.Equal(t, Fields{Title: "a", Priority: "High", Progress: "30", DueDate: "2026-10-20 09:30"}, f)
}
