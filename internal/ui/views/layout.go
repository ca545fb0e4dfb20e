package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/render"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

const (
	sidebarWidth     = 24
	progressBarWidth = 10
)

// View renders the dashboard
func (v *DashboardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if m, ok := v.forms.Active(); ok {
		return v.renderModal(m)
	}

	contentWidth := styles.ContentWidth(v.width)
	mainWidth := contentWidth
	var sidebar string
	if !v.sidebarCollapsed {
		sidebar = v.renderSidebar()
		mainWidth = max(contentWidth-lipgloss.Width(sidebar)-1, 30)
	}

	sections := []string{
		v.renderHeader(mainWidth),
		v.renderStatCards(mainWidth),
	}
	if v.focus == FocusFilters {
		sections = append(sections, v.renderFilterPanel(mainWidth))
	} else if summary := v.filterSummary(); summary != "" {
		sections = append(sections, summary)
	}
	sections = append(sections, "", v.renderTaskList(mainWidth))
	main := lipgloss.JoinVertical(lipgloss.Left, sections...)

	body := main
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(v.renderNotice())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *DashboardView) renderHeader(width int) string {
	s := v.styles

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(width-30, 10, 40)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	title := s.Title.Render("Task Dashboard")
	subtitle := s.TitleMuted.Render(fmt.Sprintf("%s • %d shown", v.criteria.Status.Label(), len(v.vm.Items)))

	return lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle),
		"  ",
		searchBox,
	)
}

func (v *DashboardView) renderSidebar() string {
	s := v.styles
	stats := v.vm.Stats
	inner := sidebarWidth - 4

	rows := []string{s.Title.Render("Views"), ""}
	for i, st := range filter.Statuses {
		label := fmt.Sprintf("%-*s%3d", inner-5, st.Label(), stats.Count(st))
		style := s.SidebarItem
		switch {
		case v.focus == FocusSidebar && i == v.sidebarCursor:
			style = s.SidebarCursor
		case v.criteria.Status == st:
			style = s.SidebarActive
		}
		rows = append(rows, style.Render(label))
	}

	themeLabel := "◐ Theme: " + s.Theme.Name
	themeStyle := s.SidebarItem
	if v.focus == FocusSidebar && v.sidebarCursor == len(filter.Statuses) {
		themeStyle = s.SidebarCursor
	}
	rows = append(rows, "", themeStyle.Render(themeLabel))

	style := s.Sidebar
	if v.focus == FocusSidebar {
		style = style.BorderForeground(s.Theme.BorderFocus)
	}
	return style.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// statCard is one counter in the card row
type statCard struct {
	label  string
	value  int
	status filter.Status
}

// statCards lists the counters left to right. In progress has no status
// filter and cannot be selected.
func (v *DashboardView) statCards() []statCard {
	st := v.vm.Stats
	return []statCard{
		{"Total", st.Total, filter.StatusAll},
		{"Pending", st.Pending, filter.StatusPending},
		{"In progress", st.InProgress, ""},
		{"Completed", st.Completed, filter.StatusCompleted},
		{"Overdue", st.Overdue, filter.StatusOverdue},
	}
}

func (v *DashboardView) renderStatCards(width int) string {
	s := v.styles
	cards := v.statCards()

	cardWidth := max(width/len(cards)-2, 10)
	var rendered []string
	for i, c := range cards {
		style := s.Card
		if c.status != "" && c.status == v.criteria.Status {
			style = s.CardActive
		}
		if v.focus == FocusCards && i == v.cardCursor {
			style = style.BorderForeground(s.Theme.BorderFocus)
		}
		value := s.CardValue
		if c.status == filter.StatusOverdue && c.value > 0 {
			value = value.Foreground(s.Theme.Error)
		}
		rendered = append(rendered, style.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				value.Render(fmt.Sprintf("%d", c.value)),
				s.CardLabel.Render(c.label),
			),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *DashboardView) renderTaskList(width int) string {
	s := v.styles

	if len(v.vm.Items) == 0 {
		if len(v.all) > 0 {
			return s.TitleMuted.Render("No tasks match the current filters.")
		}
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.vm.Items))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.vm.Items[i], width, i == v.cursor && v.focus == FocusTaskList))
	}

	if len(v.vm.Items) > endIdx || v.scrollY > 0 {
		items = append(items, s.TitleMuted.Render(fmt.Sprintf("%d-%d of %d", v.scrollY+1, endIdx, len(v.vm.Items))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *DashboardView) renderTaskItem(item render.Item, width int, selected bool) string {
	s := v.styles
	width = max(width-2, 20)

	checkbox := "[ ]"
	if item.Completed {
		checkbox = "[✓]"
	}

	titleStyle := s.TaskTitle
	switch {
	case item.Completed:
		titleStyle = s.TaskCompleted
	case item.Overdue:
		titleStyle = s.TaskOverdue
	}
	titleLine := checkbox + " " + titleStyle.Render(item.Title)

	due := "Due: " + item.DueLabel
	if item.Overdue {
		due = s.TaskOverdue.Render(due + " (overdue)")
	} else {
		due = s.TitleMuted.Render(due)
	}

	var tags []string
	for _, t := range item.Tags {
		tags = append(tags, s.Tag.Render("#"+t))
	}

	meta := strings.Join([]string{
		s.Severity(item.PriorityClass).Render(item.PriorityLabel),
		v.renderProgressBar(item),
		due,
	}, "  ")
	if len(tags) > 0 {
		meta += "  " + strings.Join(tags, "")
	}

	lineStyle := s.ListItem
	if selected {
		lineStyle = s.ListSelected
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyle.Width(width).Render(titleLine),
		lineStyle.Width(width).Render("    "+meta),
	) + "\n"
}

func (v *DashboardView) renderProgressBar(item render.Item) string {
	filled := clamp(item.Progress*progressBarWidth/100, 0, progressBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return v.styles.ProgressColor(item.ProgressClass).Render(bar) + fmt.Sprintf(" %3d%%", item.Progress)
}

func (v *DashboardView) renderNotice() string {
	if v.notice == "" {
		return ""
	}
	if v.noticeError {
		return v.styles.NoticeError.Render(v.notice) + "\n"
	}
	return v.styles.Notice.Render(v.notice) + "\n"
}

func (v *DashboardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(v.help.ShortHelpView(v.keys.ShortHelp()))
}

func (v *DashboardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		v.help.FullHelpView(v.keys.FullHelp()),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
