package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/controlroom/internal/config"
)

// Settings fields in display order
const (
	fieldFeedURL = iota
	fieldInterval
	fieldRemote
	fieldLogLevel
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldFeedURL:  "Feed URL",
	fieldInterval: "Poll interval",
	fieldRemote:   "Remote listen",
	fieldLogLevel: "Log level",
}

type formKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Save key.Binding
	Back key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Save, k.Back}
}

func (k formKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// FormModel edits the settings the wizard manages
type FormModel struct {
	Inputs [fieldCount]textinput.Model
	Focus  int
	Err    error

	// Submitted is set once the values validated
	Submitted bool
	// BackRequested is set when the user leaves the form
	BackRequested bool

	Width  int
	Height int
	Help   help.Model
	Keys   formKeyMap

	base *config.Config
}

// NewFormModel prefills the form from cfg and feedURL
func NewFormModel(cfg *config.Config, feedURL string) FormModel {
	m := FormModel{
		Help: help.New(),
		Keys: formKeyMap{
			Next: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
			Prev: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
			Save: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
		base: cfg,
	}

	values := [fieldCount]string{
		fieldFeedURL:  feedURL,
		fieldInterval: cfg.Feed.Interval.String(),
		fieldLogLevel: cfg.Log.Level,
	}
	if cfg.Remote.Enabled {
		values[fieldRemote] = cfg.Remote.Listen
	}

	placeholders := [fieldCount]string{
		fieldFeedURL:  "empty discovers over mDNS",
		fieldInterval: "10s",
		fieldRemote:   "empty disables, e.g. :8090",
		fieldLogLevel: "debug, info, warn, error",
	}

	for i := range m.Inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(values[i])
		m.Inputs[i] = in
	}
	m.setFocus(fieldFeedURL)
	return m
}

func (m *FormModel) setFocus(i int) {
	m.Focus = (i + fieldCount) % fieldCount
	for j := range m.Inputs {
		if j == m.Focus {
			m.Inputs[j].Focus()
			m.Inputs[j].TextStyle = FocusedInputStyle
		} else {
			m.Inputs[j].Blur()
			m.Inputs[j].TextStyle = BlurredInputStyle
		}
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Back):
			m.BackRequested = true
			return m, nil
		case key.Matches(msg, m.Keys.Next):
			m.setFocus(m.Focus + 1)
			return m, nil
		case key.Matches(msg, m.Keys.Prev):
			m.setFocus(m.Focus - 1)
			return m, nil
		case key.Matches(msg, m.Keys.Save):
			if _, err := m.Apply(); err != nil {
				m.Err = err
				return m, nil
			}
			m.Err = nil
			m.Submitted = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	return m, cmd
}

// Apply returns a copy of the base config with the form values applied
func (m FormModel) Apply() (*config.Config, error) {
	cfg := *m.base
	value := func(i int) string { return strings.TrimSpace(m.Inputs[i].Value()) }

	cfg.Feed.URL = value(fieldFeedURL)

	interval, err := time.ParseDuration(value(fieldInterval))
	if err != nil {
		return nil, fmt.Errorf("poll interval: %w", err)
	}
	cfg.Feed.Interval = interval

	if listen := value(fieldRemote); listen != "" {
		cfg.Remote.Enabled = true
		cfg.Remote.Listen = listen
	} else {
		cfg.Remote.Enabled = false
	}

	level := value(fieldLogLevel)
	switch level {
	case "", "debug", "info", "warn", "error":
		cfg.Log.Level = level
	default:
		return nil, fmt.Errorf("log level %q is not one of debug, info, warn, error", level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(TitleStyle.Render("Settings"))
	b.WriteString("\n\n")
	for i, in := range m.Inputs {
		marker := "  "
		if i == m.Focus {
			marker = SelectedStyle.Render("→ ")
		}
		b.WriteString("  " + marker + LabelStyle.Render(fieldLabels[i]) + in.View() + "\n")
	}
	if m.Err != nil {
		b.WriteString("\n  " + ErrorStyle.Render(m.Err.Error()) + "\n")
	}
	return renderContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}
