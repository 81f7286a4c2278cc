package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/layout"
)

const (
	minTileWidth  = 8
	minTileHeight = 3
)

// View renders the latest frame
func (m Model) View() string {
	width, height := m.surface.Size()
	frame, ok := m.surface.Frame()
	if width <= 0 || height <= 0 || !ok {
		return ""
	}

	header := m.renderHeader(frame, width)
	footer := HelpStyle.Render(m.Help.View(m.Keys))
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch frame.State {
	case engine.StateLoading:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.Spinner.View()+" Loading map...")
	case engine.StateMap:
		if m.mapView != nil {
			body = m.mapView.Render(width, bodyHeight)
		}
	case engine.StateDashboard:
		body = renderDashboard(frame, width, bodyHeight)
	case engine.StateDetail:
		body = renderDetail(frame, width, bodyHeight)
	}

	body = lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader(f engine.Frame, width int) string {
	parts := []string{HeaderStyle.Render(m.Title + "  " + strings.ToUpper(f.State.String()))}
	if f.MapLocked {
		parts = append(parts, BadgeStyle.Render("LOCKED"))
	}
	if f.Transitioning {
		parts = append(parts, StatusBarStyle.Render("..."))
	}
	parts = append(parts, StatusBarStyle.Render(fmt.Sprintf("%d screens", f.Screens)))
	if f.Plan != nil {
		parts = append(parts, StatusBarStyle.Render(f.Plan.String()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(bar)
}

func renderTile(t engine.Tile, w, h int) string {
	style := TileStyle
	switch {
	case t.Focused:
		style = FocusedTileStyle
	case t.IsMap:
		style = MapTileStyle
	}
	code := t.Code
	if code == "" {
		code = fmt.Sprintf("M%d", t.ID)
	}
	content := TileCodeStyle.Render(code) + "\n" + t.Name
	// borders take one cell on each side
	return style.Width(max(w-2, 1)).Height(max(h-2, 1)).Render(content)
}

// renderDashboard lays tiles out from the frame's plan
func renderDashboard(f engine.Frame, width, height int) string {
	p := f.Plan
	if p == nil || len(f.Tiles) == 0 {
		return ""
	}

	gapX := max(int(float64(width)*p.Gap/100), 1)
	gapY := 0
	if p.Rows > 1 && height > p.Rows*minTileHeight+p.Rows {
		gapY = 1
	}
	cellW := max((width-(p.Columns-1)*gapX)/p.Columns, minTileWidth)
	cellH := max((height-(p.Rows-1)*gapY)/p.Rows, minTileHeight)
	if p.Tile != nil {
		cellW = max(int(float64(width)*p.Tile.WidthPercent/100), minTileWidth)
		cellH = max(int(float64(height)*p.Tile.HeightPercent/100), minTileHeight)
	}

	rows := make([][]string, p.Rows)
	starts := make([]int, p.Rows)

	tmpl, named := TemplateFor(p.Mode)
	for i, t := range f.Tiles {
		row := t.Row
		if named {
			r, half, ok := tmpl.Cell(i)
			if !ok {
				continue
			}
			row = r
			if len(rows[row]) == 0 {
				starts[row] = half * (cellW + gapX) / 2
			}
		} else if row >= len(rows) {
			continue
		}
		rows[row] = append(rows[row], renderTile(t, cellW, cellH))
	}

	gap := strings.Repeat(" ", gapX)
	lines := make([]string, 0, p.Rows)
	for r, tiles := range rows {
		if len(tiles) == 0 {
			continue
		}
		withGaps := make([]string, 0, 2*len(tiles))
		for j, tile := range tiles {
			if j > 0 {
				withGaps = append(withGaps, gap)
			}
			withGaps = append(withGaps, tile)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, withGaps...)

		switch {
		case named:
			line = lipgloss.NewStyle().PaddingLeft(starts[r]).Render(line)
		case p.Justify == layout.JustifyCenter:
			line = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		}
		lines = append(lines, line)
		if gapY > 0 && r < len(rows)-1 {
			lines = append(lines, "")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// widgetLabels are the placeholder panels of the detail view
var widgetLabels = [engine.WidgetCount]string{"Overview", "Trend", "Alarms", "Events"}

func renderDetail(f engine.Frame, width, height int) string {
	if f.Detail == nil {
		return ""
	}
	title := HeaderStyle.Render(f.Detail.Screen.String())
	cellW := max(width/2-1, minTileWidth)
	cellH := max((height-lipgloss.Height(title))/2, minTileHeight)

	var rows []string
	for r := 0; r < engine.WidgetCount/2; r++ {
		var cells []string
		for c := 0; c < 2; c++ {
			i := r*2 + c
			style := WidgetStyle
			if i == f.Detail.Widget {
				style = FocusedWidgetStyle
			}
			cells = append(cells, style.Width(max(cellW-2, 1)).Height(max(cellH-2, 1)).Render(widgetLabels[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[0], " ", cells[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, rows...)...)
}
