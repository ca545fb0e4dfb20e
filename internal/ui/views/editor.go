package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskboard/internal/form"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/render"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

// Editor fields in tab order
const (
	editTitle = iota
	editDesc
	editPriority
	editDue
	editProgress
	editSave
	numEditFields
)

// taskEditor backs both the add and the edit modal
type taskEditor struct {
	title    textinput.Model
	desc     textarea.Model
	priority models.Priority
	due      textinput.Model
	progress textinput.Model
	focusIdx int
	err      string
}

func newTaskEditor() *taskEditor {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = form.DueDateLayout
	due.CharLimit = 25

	progress := textinput.New()
	progress.Placeholder = "0-100"
	progress.CharLimit = 4

	return &taskEditor{
		title:    title,
		desc:     desc,
		priority: models.PriorityLow,
		due:      due,
		progress: progress,
	}
}

func (e *taskEditor) setWidth(w int) {
	e.title.Width = w
	e.due.Width = w
	e.desc.SetWidth(w)
}

// reset repopulates the editor and focuses the title
func (e *taskEditor) reset(f form.Fields) tea.Cmd {
	e.title.SetValue(f.Title)
	e.desc.SetValue(f.Description)
	e.due.SetValue(f.DueDate)
	e.progress.SetValue(f.Progress)
	e.title.CursorEnd()
	e.due.CursorEnd()
	e.progress.CursorEnd()
	e.priority = models.PriorityLow
	if p, ok := models.ParsePriority(f.Priority); ok {
		e.priority = p
	} else if raw := strings.TrimSpace(f.Priority); raw != "" {
		// legacy value, kept until the user picks another
		e.priority = models.Priority(raw)
	}
	e.err = ""
	e.focusIdx = editTitle
	return e.updateFocus()
}

// fields returns the raw input. An untouched legacy priority is sent empty so
// the stored value is left alone.
func (e *taskEditor) fields() form.Fields {
	priority := string(e.priority)
	if !e.priority.Known() {
		priority = ""
	}
	return form.Fields{
		Title:       e.title.Value(),
		Description: e.desc.Value(),
		Priority:    priority,
		DueDate:     e.due.Value(),
		Progress:    e.progress.Value(),
	}
}

func (e *taskEditor) updateFocus() tea.Cmd {
	e.title.Blur()
	e.desc.Blur()
	e.due.Blur()
	e.progress.Blur()

	switch e.focusIdx {
	case editTitle:
		return e.title.Focus()
	case editDesc:
		return e.desc.Focus()
	case editDue:
		return e.due.Focus()
	case editProgress:
		return e.progress.Focus()
	}
	return nil
}

func (e *taskEditor) cyclePriority(dir int) {
	n := len(models.Priorities)
	idx := slices.Index(models.Priorities, e.priority)
	if idx < 0 {
		// legacy value: right starts at Low, left at High
		idx = -1
		if dir < 0 {
			idx = n
		}
	}
	e.priority = models.Priorities[(idx+dir+n)%n]
}

// updateModal routes a key to whichever modal is open
func (v *DashboardView) updateModal(m form.Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Kind {
	case form.KindDelete:
		return v.updateConfirmDelete(m, msg)
	case form.KindProgress:
		return v.updateProgress(msg)
	}
	return v.updateEditing(m, msg)
}

func (v *DashboardView) updateConfirmDelete(m form.Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Yes):
		task, _ := v.taskByID(m.TargetID)
		if err := v.forms.ConfirmDelete(); err != nil {
			return v, v.notify(fmt.Sprintf("Delete failed: %v", err), true)
		}
		return v, tea.Batch(v.reload(), v.notify("Deleted "+taskTitle(task), false))
	case key.Matches(msg, v.keys.No):
		v.forms.Cancel()
		return v, nil
	}
	return v, nil
}

func (v *DashboardView) updateProgress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.progressInput.Blur()
		v.forms.Cancel()
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Save):
		if err := v.forms.SubmitProgress(v.progressInput.Value()); err != nil {
			return v, v.notify(err.Error(), true)
		}
		v.progressInput.Blur()
		return v, v.reload()
	}

	var cmd tea.Cmd
	v.progressInput, cmd = v.progressInput.Update(msg)
	return v, cmd
}

func (v *DashboardView) updateEditing(m form.Modal, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := v.editor

	switch {
	case key.Matches(msg, v.keys.Back):
		v.forms.Cancel()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask(m)

	case key.Matches(msg, v.keys.Tab):
		e.focusIdx = (e.focusIdx + 1) % numEditFields
		return v, e.updateFocus()

	case key.Matches(msg, v.keys.ShiftTab):
		e.focusIdx = (e.focusIdx + numEditFields - 1) % numEditFields
		return v, e.updateFocus()

	case key.Matches(msg, v.keys.Enter):
		switch e.focusIdx {
		case editSave:
			return v, v.saveTask(m)
		case editDesc:
			// newlines in the description
		default:
			e.focusIdx++
			return v, e.updateFocus()
		}

	case key.Matches(msg, v.keys.Left):
		if e.focusIdx == editPriority {
			e.cyclePriority(-1)
			return v, nil
		}

	case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Toggle):
		if e.focusIdx == editPriority {
			e.cyclePriority(1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch e.focusIdx {
	case editTitle:
		e.title, cmd = e.title.Update(msg)
	case editDesc:
		e.desc, cmd = e.desc.Update(msg)
	case editDue:
		e.due, cmd = e.due.Update(msg)
	case editProgress:
		e.progress, cmd = e.progress.Update(msg)
	}
	return v, cmd
}

// saveTask submits the editor. Validation errors keep the modal open.
func (v *DashboardView) saveTask(m form.Modal) tea.Cmd {
	f := v.editor.fields()

	var (
		err    error
		notice string
	)
	if m.Kind == form.KindAdd {
		var task models.Task
		task, err = v.forms.SubmitAdd(f)
		notice = "Created " + taskTitle(task)
	} else {
		err = v.forms.SubmitEdit(f)
		notice = "Saved changes"
	}
	if err != nil {
		v.editor.err = err.Error()
		return nil
	}
	v.editor.err = ""
	return tea.Batch(v.reload(), v.notify(notice, false))
}

func (v *DashboardView) renderModal(m form.Modal) string {
	switch m.Kind {
	case form.KindDelete:
		return v.renderDeleteConfirm(m)
	case form.KindProgress:
		return v.renderProgressForm(m)
	}
	return v.renderEditForm(m)
}

func (v *DashboardView) renderEditForm(m form.Modal) string {
	s := v.styles
	e := v.editor
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if m.Kind == form.KindEdit {
		formTitle = "Edit Task"
	}

	inputStyle := func(idx int) lipgloss.Style {
		if e.focusIdx == idx {
			return s.InputFocused
		}
		return s.Input
	}
	btnStyle := s.Button
	if e.focusIdx == editSave {
		btnStyle = s.ButtonFocused
	}

	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-20, 20, 60)

	var priorities []string
	if !e.priority.Known() {
		priorities = append(priorities, s.Severity(render.PriorityClass(e.priority)).Render("● "+string(e.priority)))
	}
	for _, p := range models.Priorities {
		label := string(p)
		if p == e.priority {
			label = s.Severity(render.PriorityClass(p)).Render("● " + label)
		} else {
			label = s.TitleMuted.Render("○ " + label)
		}
		priorities = append(priorities, label)
	}

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		inputStyle(editTitle).Width(inputWidth).Render(e.title.View()),
		"Description:",
		inputStyle(editDesc).Render(e.desc.View()),
		"Priority (←/→):",
		inputStyle(editPriority).Width(inputWidth).Render(lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(priorities)...)),
		"Due (" + form.DueDateLayout + "):",
		inputStyle(editDue).Width(inputWidth).Render(e.due.View()),
		"Progress (%):",
		inputStyle(editProgress).Width(12).Render(e.progress.View()),
		"",
		btnStyle.Render(" Save "),
	}
	if e.err != "" {
		rows = append(rows, s.NoticeError.Render(e.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *DashboardView) renderProgressForm(m form.Modal) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, _ := v.taskByID(m.TargetID)
	rows := []string{
		s.Title.Render("Update Progress"),
		s.TitleMuted.Render(task.Title),
		"",
		s.InputFocused.Width(12).Render(v.progressInput.View()),
	}
	if v.notice != "" && v.noticeError {
		rows = append(rows, s.NoticeError.Render(v.notice))
	}
	rows = append(rows, "", s.TitleMuted.Render("↵: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *DashboardView) renderDeleteConfirm(m form.Modal) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, _ := v.taskByID(m.TargetID)
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(s.Theme.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %s?", taskTitle(task))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
