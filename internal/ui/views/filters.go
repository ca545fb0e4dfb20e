package views

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/models"
)

// filterGroup is one column of the filter panel
type filterGroup int

const (
	groupPriority filterGroup = iota
	groupProgress
	groupDue
)

func (g filterGroup) title() string {
	switch g {
	case groupPriority:
		return "Priority"
	case groupProgress:
		return "Progress"
	}
	return "Due"
}

// filterOption is one checkbox in the filter panel
type filterOption struct {
	group    filterGroup
	label    string
	selected func(filter.Criteria) bool
	toggle   func(*filter.Criteria)
}

func filterOptions() []filterOption {
	var opts []filterOption
	for _, p := range models.Priorities {
		p := p
		opts = append(opts, filterOption{
			group:    groupPriority,
			label:    string(p),
			selected: func(c filter.Criteria) bool { return slices.Contains(c.Priorities, p) },
			toggle:   func(c *filter.Criteria) { c.TogglePriority(p) },
		})
	}
	for _, b := range filter.ProgressBuckets {
		b := b
		opts = append(opts, filterOption{
			group:    groupProgress,
			label:    string(b) + "%",
			selected: func(c filter.Criteria) bool { return slices.Contains(c.Progress, b) },
			toggle:   func(c *filter.Criteria) { c.ToggleProgress(b) },
		})
	}
	for _, b := range filter.DueBuckets {
		b := b
		opts = append(opts, filterOption{
			group:    groupDue,
			label:    b.Label(),
			selected: func(c filter.Criteria) bool { return slices.Contains(c.Due, b) },
			toggle:   func(c *filter.Criteria) { c.ToggleDue(b) },
		})
	}
	return opts
}

// updateFilters handles keys while the filter panel has focus
func (v *DashboardView) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := filterOptions()

	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Filter):
		v.focus = FocusTaskList
		return v, nil

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.filterCursor > 0 {
			v.filterCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.filterCursor < len(opts)-1 {
			v.filterCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right):
		v.filterCursor = v.jumpGroup(opts, key.Matches(msg, v.keys.Right))
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if v.filterCursor < len(opts) {
			opts[v.filterCursor].toggle(&v.criteria)
			v.cursor = 0
			v.scrollY = 0
			v.rebuild()
		}
		return v, nil

	case key.Matches(msg, v.keys.Clear):
		v.criteria.ClearPanel()
		v.rebuild()
		return v, nil
	}
	return v, nil
}

// jumpGroup moves the cursor to the first option of the next or previous group
func (v *DashboardView) jumpGroup(opts []filterOption, forward bool) int {
	cur := opts[v.filterCursor].group
	target := cur - 1
	if forward {
		target = cur + 1
	}
	for i, o := range opts {
		if o.group == target {
			return i
		}
	}
	return v.filterCursor
}

func (v *DashboardView) renderFilterPanel(width int) string {
	s := v.styles
	opts := filterOptions()

	columns := make([][]string, groupDue+1)
	for g := range columns {
		columns[g] = []string{s.Title.Render(filterGroup(g).title())}
	}
	for i, o := range opts {
		checkbox := "[ ]"
		if o.selected(v.criteria) {
			checkbox = "[x]"
		}
		style := s.ListItem
		if i == v.filterCursor && v.focus == FocusFilters {
			style = s.ListSelected
		}
		columns[o.group] = append(columns[o.group], style.Render(checkbox+" "+o.label))
	}

	colWidth := max((width-6)/len(columns), 12)
	var rendered []string
	for _, col := range columns {
		rendered = append(rendered, lipgloss.NewStyle().Width(colWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, col...),
		))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		s.TitleMuted.Render("↑↓←→: move • Space/↵: toggle • c: clear • Esc: close"),
	)
	return s.FilterBar.Width(width - 2).Render(body)
}

// filterSummary lists active panel selections on one line
func (v *DashboardView) filterSummary() string {
	if !v.criteria.PanelActive() {
		return ""
	}
	var parts []string
	for _, o := range filterOptions() {
		if o.selected(v.criteria) {
			parts = append(parts, o.label)
		}
	}
	return v.styles.TitleMuted.Render("Filters: ") +
		v.styles.Tag.Render(strings.Join(parts, ", ")) +
		v.styles.TitleMuted.Render(" (c to clear)")
}
