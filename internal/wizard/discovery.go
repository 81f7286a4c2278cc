package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/controlroom/internal/discovery"
)

// ScanFunc browses for feed services
type ScanFunc func(ctx context.Context) ([]*discovery.Service, error)

// Messages for the scan lifecycle
type scanStartMsg struct{}
type scanTickMsg time.Time
type scanCompleteMsg struct {
	services []*discovery.Service
	err      error
}

type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

type manualKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k manualKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Confirm, k.Cancel} }

func (k manualKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// serviceItem adapts a discovered service to bubbles/list
type serviceItem struct {
	service *discovery.Service
}

func (s serviceItem) FilterValue() string {
	return s.service.Instance + " " + s.service.IP + " " + s.service.Hostname
}

func (s serviceItem) Title() string { return s.service.Instance }

func (s serviceItem) Description() string {
	return s.service.BaseURL() + s.service.Path
}

// serviceDelegate draws one list row per service
type serviceDelegate struct{}

func (serviceDelegate) Height() int                             { return 2 }
func (serviceDelegate) Spacing() int                            { return 1 }
func (serviceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (serviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(serviceItem)
	if !ok {
		return
	}
	title := "  " + si.Title()
	if index == m.Index() {
		title = SelectedStyle.Render("→ " + si.Title())
	}
	fmt.Fprintf(w, "%s\n    %s", title, SubtitleStyle.Render(si.Description()))
}

// DiscoveryModel is the feed discovery screen
type DiscoveryModel struct {
	Scanning bool
	Services list.Model
	Err      error

	// Chosen is set once the user picks a feed
	Chosen string

	ManualMode bool
	URLInput   textinput.Model

	Width       int
	Height      int
	Spinner     spinner.Model
	ProgressBar progress.Model
	ScanStarted time.Time
	ScanTimeout time.Duration
	Help        help.Model
	Keys        discoveryKeyMap
	ManualKeys  manualKeyMap

	scan ScanFunc
}

// NewDiscoveryModel creates the discovery screen. A nil scan uses mDNS.
func NewDiscoveryModel(scan ScanFunc, timeout time.Duration) DiscoveryModel {
	if timeout <= 0 {
		timeout = discovery.DefaultScanTimeout
	}
	if scan == nil {
		scan = func(ctx context.Context) ([]*discovery.Service, error) {
			s := discovery.NewScanner()
			s.Timeout = timeout
			return s.Scan(ctx)
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	input := textinput.New()
	input.Placeholder = "http://10.0.0.5:8080"
	input.CharLimit = 200
	input.Width = 40

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	services := list.New([]list.Item{}, serviceDelegate{}, 0, 0)
	services.Title = "Feed services"
	services.SetShowStatusBar(false)
	services.SetShowHelp(false)
	services.Styles.Title = TitleStyle

	return DiscoveryModel{
		Services:    services,
		URLInput:    input,
		Spinner:     s,
		ProgressBar: bar,
		ScanTimeout: timeout,
		Help:        help.New(),
		Keys: discoveryKeyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use feed")),
			Rescan: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
			Manual: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "enter URL")),
			Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		},
		ManualKeys: manualKeyMap{
			Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		},
		scan: scan,
	}
}

func (m DiscoveryModel) Init() tea.Cmd {
	return m.startScan()
}

func (m DiscoveryModel) startScan() tea.Cmd {
	scan, timeout := m.scan, m.ScanTimeout
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
			defer cancel()
			services, err := scan(ctx)
			return scanCompleteMsg{services: services, err: err}
		},
		m.Spinner.Tick,
		scanTick(),
	)
}

func scanTick() tea.Cmd {
	return tea.Tick(time.Second/4, func(t time.Time) tea.Msg { return scanTickMsg(t) })
}

func (m DiscoveryModel) Update(msg tea.Msg) (DiscoveryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManual(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Services.SetWidth(msg.Width - 4)
		m.Services.SetHeight(msg.Height - 8)

	case scanStartMsg:
		m.Scanning = true
		m.ScanStarted = time.Now()

	case scanTickMsg:
		if m.Scanning {
			return m, scanTick()
		}

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.services))
		for i, s := range msg.services {
			items[i] = serviceItem{service: s}
		}
		m.Services.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m DiscoveryModel) updateList(msg tea.KeyMsg) (DiscoveryModel, tea.Cmd) {
	if m.Scanning {
		if key.Matches(msg, m.Keys.Manual) {
			m = m.enterManual()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Enter):
		if item, ok := m.Services.SelectedItem().(serviceItem); ok {
			m.Chosen = item.service.BaseURL()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Rescan):
		m.Services.SetItems(nil)
		m.Err = nil
		return m, m.startScan()

	case key.Matches(msg, m.Keys.Manual):
		return m.enterManual(), nil
	}

	var cmd tea.Cmd
	m.Services, cmd = m.Services.Update(msg)
	return m, cmd
}

func (m DiscoveryModel) enterManual() DiscoveryModel {
	m.ManualMode = true
	m.URLInput.SetValue("")
	m.URLInput.Focus()
	return m
}

func (m DiscoveryModel) updateManual(msg tea.KeyMsg) (DiscoveryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ManualKeys.Cancel):
		m.ManualMode = false
		m.URLInput.Blur()
		return m, nil

	case key.Matches(msg, m.ManualKeys.Confirm):
		value := strings.TrimSpace(m.URLInput.Value())
		if value == "" {
			return m, nil
		}
		if !strings.Contains(value, "://") {
			value = "http://" + value
		}
		m.Chosen = value
		m.ManualMode = false
		m.URLInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.URLInput, cmd = m.URLInput.Update(msg)
	return m, cmd
}

// Progress is the fraction of the scan timeout elapsed
func (m DiscoveryModel) Progress(now time.Time) float64 {
	if !m.Scanning || m.ScanTimeout <= 0 {
		return 0
	}
	p := float64(now.Sub(m.ScanStarted)) / float64(m.ScanTimeout)
	if p > 1 {
		return 1
	}
	return p
}

func (m DiscoveryModel) View() string {
	var content, footer string
	switch {
	case m.ManualMode:
		content = "\n  " + TitleStyle.Render("Feed URL") + "\n\n  " + m.URLInput.View() + "\n"
		footer = m.Help.View(m.ManualKeys)
	case m.Scanning:
		content = m.renderScanning()
		footer = m.Help.ShortHelpView([]key.Binding{m.Keys.Manual})
	default:
		content = m.renderResults()
		footer = m.Help.View(m.Keys)
	}
	return renderContainer(content, footer, m.Width, m.Height)
}

func (m DiscoveryModel) renderScanning() string {
	elapsed := time.Since(m.ScanStarted)
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(TitleStyle.Render(m.Spinner.View() + " SEARCHING FOR FEEDS"))
	b.WriteString("\n\n  ")
	b.WriteString(SubtitleStyle.Render("Browsing " + discovery.ServiceType + " on the local network"))
	b.WriteString("\n\n  ")
	b.WriteString(m.ProgressBar.ViewAs(m.Progress(time.Now())))
	b.WriteString("\n\n  ")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", int(elapsed.Seconds()))))
	b.WriteString("\n")
	return b.String()
}

func (m DiscoveryModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString("  " + ErrorStyle.Render(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n  Press m to enter the feed URL instead.\n")
	case len(m.Services.Items()) == 0:
		b.WriteString("  " + WarningStyle.Render("⚠ No feed services found"))
		b.WriteString("\n\n  Troubleshooting:\n")
		b.WriteString("    • Start one with 'controlroom feed serve --advertise <name>'\n")
		b.WriteString("    • Check that multicast traffic is allowed\n")
		b.WriteString("    • Press m to enter the feed URL\n")
	default:
		b.WriteString(m.Services.View())
	}
	return b.String()
}
