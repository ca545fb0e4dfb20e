package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/form"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/render"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// noticeTimeout is how long a transient notice stays on screen
const noticeTimeout = 3 * time.Second

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusTaskList FocusArea = iota
	FocusSidebar
	FocusSearchInput
	FocusFilters
	FocusCards
)

// TaskStore is what the dashboard needs from the task store
type TaskStore interface {
	form.Store
	LoadAll() ([]models.Task, error)
	SetCompleted(id string, done bool) error
}

// ThemeToggled is sent when the user switches themes from the dashboard
type ThemeToggled struct {
	Theme string
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type errMsg struct {
	err error
}

type clearNoticeMsg struct {
	seq int
}

// DashboardView is the single screen of the app: sidebar, stat cards,
// search, filter panel and the task list
type DashboardView struct {
	store  TaskStore
	forms  *form.Controller
	styles *styles.Styles
	keys   keys.KeyMap
	help   help.Model
	now    func() time.Time

	width  int
	height int

	// Data
	all      []models.Task
	vm       render.ViewModel
	criteria filter.Criteria

	// UI state
	focus            FocusArea
	cursor           int
	scrollY          int
	sidebarCursor    int
	sidebarCollapsed bool
	cardCursor       int
	filterCursor     int
	searchInput      textinput.Model
	showHelpPopup    bool

	// Modals; one instance of each, repopulated on open
	editor        *taskEditor
	progressInput textinput.Model

	notice      string
	noticeError bool
	noticeSeq   int
}

// NewDashboardView creates the dashboard. status is the initial quick-filter.
func NewDashboardView(s TaskStore, status filter.Status, now func() time.Time) *DashboardView {
	if now == nil {
		now = time.Now
	}
	if status == "" {
		status = filter.StatusAll
	}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	progress := textinput.New()
	progress.Placeholder = "0-100"
	progress.CharLimit = 4

	v := &DashboardView{
		store:         s,
		forms:         form.NewController(s, now),
		styles:        styles.NewStyles(),
		keys:          keys.DefaultKeyMap(),
		help:          help.New(),
		now:           now,
		criteria:      filter.Criteria{Status: status},
		focus:         FocusTaskList,
		searchInput:   search,
		editor:        newTaskEditor(),
		progressInput: progress,
	}
	for i, c := range v.statCards() {
		if c.status == status {
			v.cardCursor = i
		}
	}
	return v
}

// Init loads the tasks
func (v *DashboardView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *DashboardView) loadTasks() tea.Msg {
	tasks, err := v.store.LoadAll()
	if err != nil {
		return errMsg{err: err}
	}
	return tasksLoadedMsg{tasks: tasks}
}

// reload re-reads the store and rebuilds the view model in place
func (v *DashboardView) reload() tea.Cmd {
	tasks, err := v.store.LoadAll()
	if err != nil {
		return v.notify(fmt.Sprintf("Reload failed: %v", err), true)
	}
	v.all = tasks
	v.rebuild()
	return nil
}

// rebuild filters the snapshot and replaces the view model
func (v *DashboardView) rebuild() {
	now := v.now()
	visible := filter.Apply(v.all, v.criteria, now)
	v.vm = render.Render(v.all, visible, now)
	if v.cursor >= len(v.vm.Items) {
		v.cursor = max(0, len(v.vm.Items)-1)
	}
	v.ensureVisible()
}

// notify shows a transient notice that clears itself
func (v *DashboardView) notify(text string, isErr bool) tea.Cmd {
	v.noticeSeq++
	v.notice = text
	v.noticeError = isErr
	seq := v.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// ApplyTheme switches the active theme and rebuilds styles
func (v *DashboardView) ApplyTheme(name string) {
	styles.Current = styles.ThemeByName(name)
	v.styles = styles.NewStyles()
}

// Update handles messages
func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = styles.ContentWidth(v.width)
		v.editor.setWidth(clamp(styles.ContentWidth(v.width)-20, 20, 60))
		v.ensureVisible()
		return v, nil

	case tasksLoadedMsg:
		v.all = msg.tasks
		v.rebuild()
		return v, nil

	case errMsg:
		return v, v.notify(msg.err.Error(), true)

	case clearNoticeMsg:
		if msg.seq == v.noticeSeq {
			v.notice = ""
		}
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if m, ok := v.forms.Active(); ok {
			return v.updateModal(m, msg)
		}

		switch v.focus {
		case FocusSearchInput:
			return v.updateSearch(msg)
		case FocusFilters:
			return v.updateFilters(msg)
		case FocusSidebar:
			if model, cmd, handled := v.updateSidebar(msg); handled {
				return model, cmd
			}
		case FocusCards:
			if model, cmd, handled := v.updateCards(msg); handled {
				return model, cmd
			}
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *DashboardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab):
		v.cycleFocus()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.cycleFocus()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.vm.Items)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.forms.OpenAdd()
		return v, v.editor.reset(form.Fields{})

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if task, ok := v.selectedTask(); ok {
			v.forms.OpenEdit(task.ID)
			return v, v.editor.reset(form.FieldsFromTask(task, v.now().Location()))
		}
		return v, nil

	case key.Matches(msg, v.keys.Progress):
		if task, ok := v.selectedTask(); ok {
			v.forms.OpenProgress(task.ID)
			v.progressInput.SetValue(fmt.Sprintf("%d", task.Progress))
			v.progressInput.CursorEnd()
			return v, v.progressInput.Focus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if task, ok := v.selectedTask(); ok {
			if err := v.store.SetCompleted(task.ID, !task.Completed); err != nil {
				return v, v.notify(fmt.Sprintf("Update failed: %v", err), true)
			}
			return v, v.reload()
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selectedTask(); ok {
			v.forms.OpenDelete(task.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		return v, v.searchInput.Focus()

	case key.Matches(msg, v.keys.Filter):
		v.focus = FocusFilters
		return v, nil

	case key.Matches(msg, v.keys.Clear):
		v.criteria.ClearPanel()
		v.criteria.Search = ""
		v.searchInput.Reset()
		v.rebuild()
		return v, nil

	case key.Matches(msg, v.keys.Status):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(filter.Statuses) {
			v.setStatus(filter.Statuses[idx])
		}
		return v, nil

	case key.Matches(msg, v.keys.Theme):
		return v, v.toggleTheme()

	case key.Matches(msg, v.keys.Sidebar):
		v.sidebarCollapsed = !v.sidebarCollapsed
		if v.sidebarCollapsed && v.focus == FocusSidebar {
			v.focus = FocusTaskList
		}
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

// sidebar rows: one per status, then the theme switch
func (v *DashboardView) sidebarRows() int {
	return len(filter.Statuses) + 1
}

func (v *DashboardView) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.sidebarCursor > 0 {
			v.sidebarCursor--
		}
		return v, nil, true
	case key.Matches(msg, v.keys.Down):
		if v.sidebarCursor < v.sidebarRows()-1 {
			v.sidebarCursor++
		}
		return v, nil, true
	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if v.sidebarCursor < len(filter.Statuses) {
			v.setStatus(filter.Statuses[v.sidebarCursor])
			return v, nil, true
		}
		return v, v.toggleTheme(), true
	case key.Matches(msg, v.keys.Back):
		v.focus = FocusTaskList
		return v, nil, true
	}
	return v, nil, false
}

// updateCards moves between the cards that carry a status and applies one
func (v *DashboardView) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, v.keys.Left):
		v.moveCardCursor(-1)
		return v, nil, true
	case key.Matches(msg, v.keys.Right):
		v.moveCardCursor(1)
		return v, nil, true
	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if c := v.statCards()[v.cardCursor]; c.status != "" {
			v.setStatus(c.status)
		}
		return v, nil, true
	case key.Matches(msg, v.keys.Back):
		v.focus = FocusTaskList
		return v, nil, true
	}
	return v, nil, false
}

func (v *DashboardView) moveCardCursor(dir int) {
	cards := v.statCards()
	for i := v.cardCursor + dir; i >= 0 && i < len(cards); i += dir {
		if cards[i].status != "" {
			v.cardCursor = i
			return
		}
	}
}

func (v *DashboardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searchInput.Blur()
		v.focus = FocusTaskList
		return v, nil
	}
	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	if v.searchInput.Value() != v.criteria.Search {
		v.criteria.Search = v.searchInput.Value()
		v.cursor = 0
		v.scrollY = 0
		v.rebuild()
	}
	return v, cmd
}

func (v *DashboardView) setStatus(s filter.Status) {
	v.criteria.Status = s
	v.cursor = 0
	v.scrollY = 0
	for i, st := range filter.Statuses {
		if st == s {
			v.sidebarCursor = i
		}
	}
	for i, c := range v.statCards() {
		if c.status == s {
			v.cardCursor = i
		}
	}
	v.rebuild()
}

func (v *DashboardView) toggleTheme() tea.Cmd {
	next := styles.Light.Name
	if styles.Current.Name == styles.Light.Name {
		next = styles.Dark.Name
	}
	v.ApplyTheme(next)
	return func() tea.Msg { return ThemeToggled{Theme: next} }
}

// cycleFocus goes list, sidebar, cards and back. A collapsed sidebar is
// skipped.
func (v *DashboardView) cycleFocus() {
	v.searchInput.Blur()
	switch v.focus {
	case FocusTaskList:
		v.focus = FocusCards
		if !v.sidebarCollapsed {
			v.focus = FocusSidebar
		}
	case FocusSidebar:
		v.focus = FocusCards
	default:
		v.focus = FocusTaskList
	}
}

// selectedTask returns the full task under the cursor
func (v *DashboardView) selectedTask() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.vm.Items) {
		return models.Task{}, false
	}
	return v.taskByID(v.vm.Items[v.cursor].ID)
}

func (v *DashboardView) taskByID(id string) (models.Task, bool) {
	for _, t := range v.all {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// visibleItems is how many task rows fit on screen
func (v *DashboardView) visibleItems() int {
	// Each task item is 2 lines + 1 margin = 3 lines
	availableHeight := v.height - 18
	if availableHeight < 3 {
		availableHeight = 3
	}
	return max(availableHeight/3, 1)
}

func (v *DashboardView) ensureVisible() {
	visible := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

// taskTitle is used in notices, cut to 40 cells
func taskTitle(t models.Task) string {
	return fmt.Sprintf("%q", xansi.Truncate(strings.TrimSpace(t.Title), 40, "..."))
}
