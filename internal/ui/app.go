package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tgienger/taskboard/internal/config"
	"github.com/tgienger/taskboard/internal/filter"
	"github.com/tgienger/taskboard/internal/ui/views"
)

// themeSettingKey remembers the last theme picked in the UI
const themeSettingKey = "theme"

// Settings is the key-value table the app keeps UI preferences in
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// ConfigReloaded is sent by the config watcher when the file changes
type ConfigReloaded struct {
	Config config.Config
}

type App struct {
	settings  Settings
	log       *zap.Logger
	dashboard *views.DashboardView
	width     int
	height    int
}

// NewApp creates the application. A theme toggled in the UI is saved and
// wins over cfg until the config file changes again.
func NewApp(tasks views.TaskStore, settings Settings, cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	status, ok := filter.ParseStatus(cfg.DefaultStatus)
	if !ok {
		status = filter.StatusAll
	}

	a := &App{
		settings:  settings,
		log:       log,
		dashboard: views.NewDashboardView(tasks, status, nil),
	}

	theme := cfg.Theme
	if saved, err := settings.GetSetting(themeSettingKey); err != nil {
		log.Warn("read theme setting", zap.Error(err))
	} else if saved != "" {
		theme = saved
	}
	a.dashboard.ApplyTheme(theme)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.ThemeToggled:
		a.saveTheme(msg.Theme)
		return a, nil

	case ConfigReloaded:
		a.log.Info("config reloaded", zap.String("theme", msg.Config.Theme))
		a.dashboard.ApplyTheme(msg.Config.Theme)
		if err := a.settings.DeleteSetting(themeSettingKey); err != nil {
			a.log.Warn("clear theme setting", zap.Error(err))
		}
		return a, nil
	}

	_, cmd := a.dashboard.Update(msg)
	return a, cmd
}

func (a *App) saveTheme(name string) {
	if err := a.settings.SetSetting(themeSettingKey, name); err != nil {
		a.log.Warn("save theme setting", zap.String("theme", name), zap.Error(err))
	}
}

func (a *App) View() string {
	return a.dashboard.View()
}
