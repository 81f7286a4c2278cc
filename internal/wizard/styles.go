package wizard

import "github.com/charmbracelet/lipgloss"

const (
	AppName = "CONTROL ROOM SETUP"

	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

var (
	PrimaryColor   = lipgloss.Color("#2F80ED")
	SecondaryColor = lipgloss.Color("#27AE60")
	WarningColor   = lipgloss.Color("#F2994A")
	ErrorColor     = lipgloss.Color("#EB5757")
	SubtleColor    = lipgloss.Color("#828282")
	BorderColor    = PrimaryColor
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Width(16)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor)

	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)
)

// renderContainer wraps content in the header/footer frame used by every screen
func renderContainer(content, footer string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	inner := width - 4
	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(inner).
		Padding(0, 1).
		Render(TitleStyle.Render(AppName))

	foot := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(inner).
		Padding(0, 1).
		Render(footer)

	body := lipgloss.NewStyle().Width(inner).Render(content)

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2)
	if height > 2 {
		frame = frame.Height(height - 2).AlignVertical(lipgloss.Top)
	}

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, foot))
}
