package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/navigation"
)

// RenderPlan draws the grid of a plan with list indices in each cell.
// Index 0 is drawn as the map tile.
func RenderPlan(plan *layout.Plan) string {
	if plan == nil {
		return lipgloss.NewStyle().Foreground(MutedColor).Render("  (no tiles)")
	}

	var rows []string
	for r := 0; r < plan.Rows; r++ {
		var cells []string
		for c := 0; c < plan.Columns; c++ {
			i := r*plan.Columns + c
			if i >= plan.Count {
				break
			}
			style := CellStyle
			label := fmt.Sprintf("%d", i)
			if i == 0 {
				style = MapCellStyle
				label = "map"
			}
			cells = append(cells, style.Render(label))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if plan.Justify == layout.JustifyCenter {
			full := plan.Columns * lipgloss.Width(CellStyle.Render("0"))
			row = lipgloss.PlaceHorizontal(full, lipgloss.Center, row)
		}
		rows = append(rows, row)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderPlanDetails returns the key facts of a plan for a result box
func RenderPlanDetails(plan *layout.Plan) map[string]string {
	if plan == nil {
		return map[string]string{"Plan": "none"}
	}
	details := map[string]string{
		"Grid":    fmt.Sprintf("%d x %d", plan.Columns, plan.Rows),
		"Mode":    string(plan.Mode),
		"Justify": string(plan.Justify),
		"Short":   fmt.Sprintf("%d", plan.ShortBy()),
	}
	if plan.Tile != nil {
		details["Tile"] = fmt.Sprintf("%.2f%% x %.2f%%", plan.Tile.WidthPercent, plan.Tile.HeightPercent)
	}
	return details
}

// RenderGraph renders the navigation table of g
func RenderGraph(g *navigation.Graph) string {
	if g == nil || g.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("  %-6s %-6s %-6s %-6s %-6s", "tile", "up", "down", "left", "right")))
	b.WriteByte('\n')
	for i := 0; i < g.Len(); i++ {
		id, _ := g.ID(i)
		cols := []string{fmt.Sprintf("%d", id)}
		for _, d := range navigation.Directions {
			if e, ok := g.Neighbor(i, d); ok {
				cols = append(cols, fmt.Sprintf("%d", e.ID))
			} else {
				cols = append(cols, "-")
			}
		}
		b.WriteString(fmt.Sprintf("  %-6s %-6s %-6s %-6s %-6s\n", cols[0], cols[1], cols[2], cols[3], cols[4]))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
