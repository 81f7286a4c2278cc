package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/config"
	"github.com/muurk/controlroom/internal/logging"
)

// Screen is the active wizard screen
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenSettings  Screen = "settings"
	ScreenDone      Screen = "done"
)

// AppModel coordinates the wizard screens
type AppModel struct {
	CurrentScreen Screen

	Discovery DiscoveryModel
	Form      FormModel

	// Saved holds the written config once the wizard finishes
	Saved   *config.Config
	SaveErr error

	Width  int
	Height int

	config *config.Config
	path   string
	scan   ScanFunc
}

// New starts the wizard at discovery. A nil scan uses mDNS.
func New(cfg *config.Config, path string, scan ScanFunc) AppModel {
	m := AppModel{
		CurrentScreen: ScreenDiscovery,
		config:        cfg,
		path:          path,
		scan:          scan,
	}
	m.Discovery = NewDiscoveryModel(scan, cfg.Discovery.Timeout)
	return m
}

// NewAtSettings skips discovery, for when a feed URL is already known
func NewAtSettings(cfg *config.Config, path string) AppModel {
	m := New(cfg, path, nil)
	m.CurrentScreen = ScreenSettings
	m.Form = NewFormModel(cfg, cfg.Feed.URL)
	return m
}

func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.Discovery.Init()
	case ScreenSettings:
		return m.Form.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Discovery, _ = m.Discovery.Update(msg)
		m.Form, _ = m.Form.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case ScreenDiscovery:
		if km, ok := msg.(tea.KeyMsg); ok && !m.Discovery.Scanning && !m.Discovery.ManualMode &&
			key.Matches(km, m.Discovery.Keys.Quit) {
			return m, tea.Quit
		}
		m.Discovery, cmd = m.Discovery.Update(msg)
		if m.Discovery.Chosen != "" {
			return m.toSettings(m.Discovery.Chosen)
		}

	case ScreenSettings:
		m.Form, cmd = m.Form.Update(msg)
		if m.Form.BackRequested {
			return m.toDiscovery()
		}
		if m.Form.Submitted {
			return m.save()
		}

	case ScreenDone:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m AppModel) toSettings(feedURL string) (tea.Model, tea.Cmd) {
	m.CurrentScreen = ScreenSettings
	m.Form = NewFormModel(m.config, feedURL)
	m.Form.Width, m.Form.Height = m.Width, m.Height
	return m, m.Form.Init()
}

func (m AppModel) toDiscovery() (tea.Model, tea.Cmd) {
	m.CurrentScreen = ScreenDiscovery
	m.Discovery = NewDiscoveryModel(m.scan, m.config.Discovery.Timeout)
	m.Discovery, _ = m.Discovery.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
	return m, m.Discovery.Init()
}

func (m AppModel) save() (tea.Model, tea.Cmd) {
	m.CurrentScreen = ScreenDone
	cfg, err := m.Form.Apply()
	if err == nil {
		err = cfg.Save(m.path)
	}
	if err != nil {
		m.SaveErr = err
		logging.Warn("Setup could not save config", zap.String("path", m.path), zap.Error(err))
		return m, nil
	}
	m.Saved = cfg
	logging.Info("Setup saved config", zap.String("path", m.path))
	return m, nil
}

func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.Discovery.View()
	case ScreenSettings:
		return m.Form.View()
	case ScreenDone:
		return renderContainer(m.renderDone(), SubtitleStyle.Render("press any key to exit"), m.Width, m.Height)
	}
	return "Unknown screen"
}

func (m AppModel) renderDone() string {
	var b strings.Builder
	b.WriteString("\n  ")
	if m.SaveErr != nil {
		b.WriteString(ErrorStyle.Render("✗ Could not save configuration"))
		b.WriteString("\n\n  " + m.SaveErr.Error() + "\n")
		return b.String()
	}

	b.WriteString(SuccessStyle.Render("✓ Configuration saved"))
	b.WriteString("\n\n")
	feed := m.Saved.Feed.URL
	if feed == "" {
		feed = "discover over mDNS"
	}
	remote := "disabled"
	if m.Saved.Remote.Enabled {
		remote = m.Saved.Remote.Listen
	}
	fmt.Fprintf(&b, "  %s%s\n", LabelStyle.Render("Feed"), feed)
	fmt.Fprintf(&b, "  %s%s\n", LabelStyle.Render("Poll interval"), m.Saved.Feed.Interval)
	fmt.Fprintf(&b, "  %s%s\n", LabelStyle.Render("Remote"), remote)
	b.WriteString("\n  Start the display with 'controlroom run'.\n")
	return b.String()
}
