// Package form turns raw modal input into validated store commands. Each
// modal kind exists once per Controller; reopening repopulates it.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/store"
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidProgress = errors.New("progress must be a whole number from 0 to 100")
	ErrInvalidDueDate  = errors.New("due date must look like 2006-01-02 15:04")
	ErrInvalidPriority = errors.New("priority must be Low, Medium or High")
	ErrNotOpen         = errors.New("modal is not open")
)

// DueDateLayout is the layout shown to users and used to prefill edits
const DueDateLayout = models.DueDateLayout

// Kind identifies a modal
type Kind int

const (
	KindAdd Kind = iota
	KindEdit
	KindProgress
	KindDelete
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindEdit:
		return "edit"
	case KindProgress:
		return "progress"
	case KindDelete:
		return "delete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Modal is the explicit state of one modal
type Modal struct {
	Kind     Kind
	Open     bool
	TargetID string
}

// Fields holds raw form input as typed by the user
type Fields struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
	Progress    string
}

// FieldsFromTask prefills the edit form from an existing task
func FieldsFromTask(t models.Task, loc *time.Location) Fields {
	f := Fields{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Progress:    strconv.Itoa(t.Progress),
	}
	if loc == nil {
		loc = time.Local
	}
	if !t.DueDate.IsZero() {
		f.DueDate = t.DueDate.In(loc).Format(DueDateLayout)
	}
	return f
}

// Store is the part of the task store the controller dispatches to
type Store interface {
	Create(nt store.NewTask) (models.Task, error)
	Update(id string, p store.Patch) error
	SetProgress(id string, progress int) error
	Remove(id string) error
}

// Controller owns one modal of each kind; at most one is open at a time
type Controller struct {
	store  Store
	now    func() time.Time
	modals [numKinds]Modal
}

// NewController creates a controller dispatching to s
func NewController(s Store, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	c := &Controller{store: s, now: now}
	for k := range c.modals {
		c.modals[k].Kind = Kind(k)
	}
	return c
}

// Modal returns the current state of the modal of kind k
func (c *Controller) Modal(k Kind) Modal {
	return c.modals[k]
}

// Active returns the open modal, if any
func (c *Controller) Active() (Modal, bool) {
	for _, m := range c.modals {
		if m.Open {
			return m, true
		}
	}
	return Modal{}, false
}

func (c *Controller) open(k Kind, targetID string) {
	for i := range c.modals {
		c.modals[i].Open = false
		c.modals[i].TargetID = ""
	}
	c.modals[k].Open = true
	c.modals[k].TargetID = targetID
}

func (c *Controller) close(k Kind) {
	c.modals[k].Open = false
	c.modals[k].TargetID = ""
}

// OpenAdd opens the add modal
func (c *Controller) OpenAdd() { c.open(KindAdd, "") }

// OpenEdit opens the edit modal for task id
func (c *Controller) OpenEdit(id string) { c.open(KindEdit, id) }

// OpenProgress opens the progress modal for task id
func (c *Controller) OpenProgress(id string) { c.open(KindProgress, id) }

// OpenDelete asks for confirmation before deleting task id
func (c *Controller) OpenDelete(id string) { c.open(KindDelete, id) }

// Cancel closes whichever modal is open without mutating anything
func (c *Controller) Cancel() {
	if m, ok := c.Active(); ok {
		c.close(m.Kind)
	}
}

// SubmitAdd validates f and creates the task. On error the modal stays open.
func (c *Controller) SubmitAdd(f Fields) (models.Task, error) {
	if !c.modals[KindAdd].Open {
		return models.Task{}, ErrNotOpen
	}
	nt, err := ParseAdd(f, c.now())
	if err != nil {
		return models.Task{}, err
	}
	task, err := c.store.Create(nt)
	if err != nil {
		return models.Task{}, err
	}
	c.close(KindAdd)
	return task, nil
}

// SubmitEdit validates f and patches the target task
func (c *Controller) SubmitEdit(f Fields) error {
	m := c.modals[KindEdit]
	if !m.Open {
		return ErrNotOpen
	}
	p, err := ParseEdit(f, c.now())
	if err != nil {
		return err
	}
	if err := c.store.Update(m.TargetID, p); err != nil {
		return err
	}
	c.close(KindEdit)
	return nil
}

// SubmitProgress validates raw and sets the target's progress
func (c *Controller) SubmitProgress(raw string) error {
	m := c.modals[KindProgress]
	if !m.Open {
		return ErrNotOpen
	}
	p, err := ParseProgress(raw)
	if err != nil {
		return err
	}
	if err := c.store.SetProgress(m.TargetID, p); err != nil {
		return err
	}
	c.close(KindProgress)
	return nil
}

// ConfirmDelete removes the task the delete modal was opened for
func (c *Controller) ConfirmDelete() error {
	m := c.modals[KindDelete]
	if !m.Open {
		return ErrNotOpen
	}
	if err := c.store.Remove(m.TargetID); err != nil {
		return err
	}
	c.close(KindDelete)
	return nil
}

// ParseAdd validates add-form input. Empty optional fields take defaults:
// Low priority, due now, no progress.
func ParseAdd(f Fields, now time.Time) (store.NewTask, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return store.NewTask{}, ErrEmptyTitle
	}
	nt := store.NewTask{
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		Priority:    models.PriorityLow,
		DueDate:     now,
	}
	if strings.TrimSpace(f.Priority) != "" {
		p, ok := models.ParsePriority(f.Priority)
		if !ok {
			return store.NewTask{}, ErrInvalidPriority
		}
		nt.Priority = p
	}
	if strings.TrimSpace(f.DueDate) != "" {
		due, err := ParseDueDate(f.DueDate, now.Location())
		if err != nil {
			return store.NewTask{}, err
		}
		nt.DueDate = due
	}
	if strings.TrimSpace(f.Progress) != "" {
		p, err := parseInt(f.Progress)
		if err != nil {
			return store.NewTask{}, err
		}
		nt.Progress = models.ClampProgress(p)
	}
	return nt, nil
}

// ParseEdit validates edit-form input. Title and description are always
// written; empty priority, due date or progress leave the stored value.
func ParseEdit(f Fields, now time.Time) (store.Patch, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return store.Patch{}, ErrEmptyTitle
	}
	desc := strings.TrimSpace(f.Description)
	p := store.Patch{Title: &title, Description: &desc}

	if strings.TrimSpace(f.Priority) != "" {
		prio, ok := models.ParsePriority(f.Priority)
		if !ok {
			return store.Patch{}, ErrInvalidPriority
		}
		p.Priority = &prio
	}
	if strings.TrimSpace(f.DueDate) != "" {
		due, err := ParseDueDate(f.DueDate, now.Location())
		if err != nil {
			return store.Patch{}, err
		}
		p.DueDate = &due
	}
	if strings.TrimSpace(f.Progress) != "" {
		n, err := parseInt(f.Progress)
		if err != nil {
			return store.Patch{}, err
		}
		n = models.ClampProgress(n)
		p.Progress = &n
	}
	return p, nil
}

// ParseProgress accepts a whole number in 0..100
func ParseProgress(raw string) (int, error) {
	n, err := parseInt(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 100 {
		return 0, ErrInvalidProgress
	}
	return n, nil
}

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if err != nil {
		return 0, ErrInvalidProgress
	}
	return n, nil
}

// ParseDueDate is models.ParseDueDate with a form error
func ParseDueDate(raw string, loc *time.Location) (time.Time, error) {
	t, ok := models.ParseDueDate(raw, loc)
	if !ok {
		return time.Time{}, ErrInvalidDueDate
	}
	return t, nil
}
