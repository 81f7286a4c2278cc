package display

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/controlroom/internal/engine"
)

// EventMsg carries an engine event into the program. Feed snapshots, remote
// inputs and timer firings all arrive this way.
type EventMsg struct {
	Event engine.Event
}

// Model is the top-level Bubble Tea model
type Model struct {
	engine  *engine.Context
	surface *Surface
	mapView *MapView

	// MapLoadDelay is the simulated map initialization time
	MapLoadDelay time.Duration

	Title    string
	Keys     keyMap
	Help     help.Model
	Spinner  spinner.Model
	ShowHelp bool
}

// NewModel creates a model around an engine built with surface and mapView
func NewModel(eng *engine.Context, surface *Surface, mapView *MapView) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		engine:       eng,
		surface:      surface,
		mapView:      mapView,
		MapLoadDelay: DefaultMapLoadDelay,
		Title:        AppName,
		Keys:         defaultKeyMap(),
		Help:         help.New(),
		Spinner:      s,
	}
}

// Init starts the engine, the spinner and the map load
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return EventMsg{Event: engine.Start{}} },
		m.Spinner.Tick,
	}
	if m.mapView != nil {
		cmds = append(cmds, m.mapView.Load(m.MapLoadDelay))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages and routes them to the engine
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.Resize(msg.Width, msg.Height)
		m.Help.Width = msg.Width
		// a render that found no target is retried now
		m.engine.Dispatch(engine.Render{})
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.engine.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.ShowHelp = !m.ShowHelp
			m.Help.ShowAll = m.ShowHelp
			return m, nil
		}
		if k, ok := m.Keys.remoteKey(msg); ok {
			m.engine.Dispatch(engine.Input{Key: k})
		}
		return m, nil

	case EventMsg:
		m.engine.Dispatch(msg.Event)
		return m, nil

	case mapLoadedMsg:
		m.engine.Dispatch(m.mapView.ready())
		return m, nil

	case spinner.TickMsg:
		if m.engine.State() != engine.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Engine returns the engine the model drives
func (m Model) Engine() *engine.Context {
	return m.engine
}
