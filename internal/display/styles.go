package display

import (
	"github.com/charmbracelet/lipgloss"
)

// AppName is shown in the header bar
const AppName = "CONTROL ROOM"

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	WarningColor   = lipgloss.Color("#FFA500") // Orange

	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray
)

var (
	// Header bar across the top
	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// Badge next to the view name
	BadgeStyle = lipgloss.NewStyle().
			Foreground(BackgroundColor).
			Background(WarningColor).
			Bold(true).
			Padding(0, 1)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Background(BackgroundColor).
			Padding(0, 1)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Dashboard tile
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Foreground(TextColor).
			Align(lipgloss.Center, lipgloss.Center)

	// Focused dashboard tile
	FocusedTileStyle = TileStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(SecondaryColor).
				Bold(true)

	// Map tile on the dashboard
	MapTileStyle = TileStyle.
			BorderForeground(PrimaryColor)

	// Tile code line (e.g. "M3")
	TileCodeStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	// Detail widget
	WidgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Align(lipgloss.Center, lipgloss.Center)

	// Focused detail widget
	FocusedWidgetStyle = WidgetStyle.
				Border(lipgloss.DoubleBorder()).
				BorderForeground(SecondaryColor)

	// Map grid lines
	MapGridStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Map position line
	MapStatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)
)
