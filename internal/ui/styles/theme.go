package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskboard/internal/render"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Surface       lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// Dark is the default color theme
var Dark = Theme{
	Name: "dark",

	Background:    lipgloss.Color("#1a1c23"),
	Surface:       lipgloss.Color("#242731"),
	Foreground:    lipgloss.Color("#ffffff"),
	ForegroundDim: lipgloss.Color("#a0a0a0"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),
}

// Light mirrors Dark for bright terminals
var Light = Theme{
	Name: "light",

	Background:    lipgloss.Color("#f8f9fa"),
	Surface:       lipgloss.Color("#ffffff"),
	Foreground:    lipgloss.Color("#212529"),
	ForegroundDim: lipgloss.Color("#6c757d"),

	Primary:   lipgloss.Color("#3d59a1"),
	Secondary: lipgloss.Color("#7847bd"),
	Accent:    lipgloss.Color("#166775"),

	Success: lipgloss.Color("#387068"),
	Warning: lipgloss.Color("#8f5e15"),
	Error:   lipgloss.Color("#c0392b"),
	Info:    lipgloss.Color("#3d59a1"),

	Border:      lipgloss.Color("#ced4da"),
	BorderFocus: lipgloss.Color("#3d59a1"),
	Selection:   lipgloss.Color("#d6e0f5"),
	Cursor:      lipgloss.Color("#212529"),
}

// Current holds the active theme
var Current = Dark

// ThemeByName returns the theme called name, defaulting to Dark
func ThemeByName(name string) Theme {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// MaxWidth is the maximum content width for the dashboard
const MaxWidth = 110

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Theme Theme

	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Sidebar
	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	SidebarCursor lipgloss.Style

	// Stat cards
	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardValue  lipgloss.Style
	CardLabel  lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Filter panel
	FilterBar lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Tags
	Tag lipgloss.Style

	// Task item
	TaskTitle     lipgloss.Style
	TaskCompleted lipgloss.Style
	TaskOverdue   lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Modal
	Modal lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Transient notices
	Notice      lipgloss.Style
	NoticeError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Theme: t,

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		SidebarItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		SidebarActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		SidebarCursor: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Bold(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Align(lipgloss.Center),

		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1).
			Align(lipgloss.Center),

		CardValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		CardLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(t.Accent).
			MarginRight(1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskCompleted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(1, 3),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Notice: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		NoticeError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Padding(0, 1),
	}
}

// Severity returns the foreground style for a priority or progress class
func (s *Styles) Severity(sev render.Severity) lipgloss.Style {
	switch sev {
	case render.SeverityHigh:
		return lipgloss.NewStyle().Foreground(s.Theme.Error).Bold(true)
	case render.SeverityMedium:
		return lipgloss.NewStyle().Foreground(s.Theme.Warning)
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Success)
}

// ProgressColor colors a progress bar: low progress is red, high is green
func (s *Styles) ProgressColor(sev render.Severity) lipgloss.Style {
	switch sev {
	case render.SeverityHigh:
		return lipgloss.NewStyle().Foreground(s.Theme.Success)
	case render.SeverityMedium:
		return lipgloss.NewStyle().Foreground(s.Theme.Warning)
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Error)
}
