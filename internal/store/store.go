// Package store keeps the task collection as one JSON document under a single
// key of a key/value store. Every mutation loads the whole collection, applies
// a pure transform and writes the result back in one call.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tgienger/taskboard/internal/models"
)

// TasksKey is the key the serialized collection lives under
const TasksKey = "tasks"

// ErrTitleRequired is returned by Create when the title is blank
var ErrTitleRequired = errors.New("task title is required")

// KV is the persistent key/value store the collection is written to.
// *db.DB satisfies it.
type KV interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// NewTask holds the fields supplied when creating a task. Zero values pick
// the defaults: due now, Low priority, no progress, tagged "New".
type NewTask struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.Priority
	Progress    int
	Tags        []string
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Progress    *int
	Completed   *bool
	Tags        *[]string
}

// Store is the task store
type Store struct {
	kv  KV
	log *zap.Logger
	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for recovered errors and mutations
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for defaults
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store over kv
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns every task in insertion order. An absent or unparsable
// value is treated as an empty collection.
func (s *Store) LoadAll() ([]models.Task, error) {
	raw, err := s.kv.GetSetting(TasksKey)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	tasks := []models.Task{}
	if strings.TrimSpace(raw) == "" {
		return tasks, nil
	}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.log.Warn("discarding malformed task data", zap.Error(err), zap.Int("bytes", len(raw)))
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// SaveAll replaces the persisted collection with tasks in a single write
func (s *Store) SaveAll(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.SetSetting(TasksKey, string(data)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// Create assigns an id, applies defaults, appends the task and persists
func (s *Store) Create(nt NewTask) (models.Task, error) {
	title := strings.TrimSpace(nt.Title)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}
	tasks, err := s.LoadAll()
	if err != nil {
		return models.Task{}, err
	}

	now := s.now()
	task := models.Task{
		ID:          newID(tasks, now),
		Title:       title,
		Description: nt.Description,
		DueDate:     nt.DueDate,
		Priority:    nt.Priority,
		Tags:        nt.Tags,
	}
	if task.DueDate.IsZero() {
		task.DueDate = now
	}
	if task.Priority == "" {
		task.Priority = models.PriorityLow
	}
	if task.Tags == nil {
		task.Tags = []string{models.DefaultTag}
	}
	task.SetProgress(nt.Progress)

	if err := s.SaveAll(appendTask(tasks, task)); err != nil {
		return models.Task{}, err
	}
	s.log.Debug("task created", zap.String("id", task.ID), zap.String("title", task.Title))
	return task, nil
}

// Update applies p to the task with the given id. An unknown id is ignored.
func (s *Store) Update(id string, p Patch) error {
	tasks, err := s.LoadAll()
	if err != nil {
		return err
	}
	updated, ok := patchTask(tasks, id, p)
	if !ok {
		s.log.Debug("update skipped, no such task", zap.String("id", id))
		return nil
	}
	if err := s.SaveAll(updated); err != nil {
		return err
	}
	s.log.Debug("task updated", zap.String("id", id))
	return nil
}

// SetCompleted marks the task done (progress 100) or not done (progress 0)
func (s *Store) SetCompleted(id string, done bool) error {
	return s.Update(id, Patch{Completed: &done})
}

// SetProgress sets the progress; reaching 100 completes the task
func (s *Store) SetProgress(id string, progress int) error {
	return s.Update(id, Patch{Progress: &progress})
}

// Remove deletes the task with the given id. An unknown id is ignored.
func (s *Store) Remove(id string) error {
	tasks, err := s.LoadAll()
	if err != nil {
		return err
	}
	remaining, ok := withoutID(tasks, id)
	if !ok {
		return nil
	}
	if err := s.SaveAll(remaining); err != nil {
		return err
	}
	s.log.Debug("task removed", zap.String("id", id))
	return nil
}

// RemoveByTitles deletes every task whose title exactly matches one of
// titles and returns how many were removed
func (s *Store) RemoveByTitles(titles ...string) (int, error) {
	if len(titles) == 0 {
		return 0, nil
	}
	tasks, err := s.LoadAll()
	if err != nil {
		return 0, err
	}
	remaining, n := withoutTitles(tasks, titles)
	if n == 0 {
		return 0, nil
	}
	if err := s.SaveAll(remaining); err != nil {
		return 0, err
	}
	s.log.Info("removed tasks by title", zap.Int("count", n), zap.Strings("titles", titles))
	return n, nil
}

// newID returns a time-ordered id derived from now that is not already in use
func newID(existing []models.Task, now time.Time) string {
	used := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		used[t.ID] = struct{}{}
	}
	for {
		var id string
		if u, err := uuid.NewV7(); err == nil {
			id = u.String()
		} else {
			id = strconv.FormatInt(now.UnixNano(), 10)
			now = now.Add(time.Nanosecond)
		}
		if _, dup := used[id]; !dup {
			return id
		}
	}
}
