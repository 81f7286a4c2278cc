package layout

import "fmt"

// DefaultGap is the inter-tile gap in percent of the container
const DefaultGap = 1.0

// FlowColumnsAbove12 is the fixed column count for more than 12 screens
const FlowColumnsAbove12 = 4

// Mode selects how the render surface places tiles
type Mode string

const (
	ModeFlow   Mode = "flow"
	ModeGrid7  Mode = "grid-7"  // 4x2, last row short by one
	ModeGrid8  Mode = "grid-8"  // 4x2 exact
	ModeGrid10 Mode = "grid-10" // 4x3, last row short by two
	ModeGrid11 Mode = "grid-11" // 4x3, last row short by one
	ModeGrid12 Mode = "grid-12" // 4x3 exact
)

// Justification controls horizontal alignment of a short last row
type Justification string

const (
	JustifyStart  Justification = "start"
	JustifyCenter Justification = "center"
)

// Geometry is the size of one flow tile in percent of the container
type Geometry struct {
	WidthPercent  float64 `json:"width_pct"`
	HeightPercent float64 `json:"height_pct"`
}

// Plan is the layout decision for one screen count
type Plan struct {
	Count   int           `json:"count"`
	Columns int           `json:"columns"`
	Rows    int           `json:"rows"`
	Mode    Mode          `json:"mode"`
	Tile    *Geometry     `json:"tile,omitempty"` // nil for named grids
	Justify Justification `json:"justify"`
	Gap     float64       `json:"gap"`
}

type gridSize struct {
	columns int
	rows    int
	mode    Mode
}

// sizes holds the fixed part of the table (counts 1..12)
var sizes = map[int]gridSize{
	1:  {1, 1, ModeFlow},
	2:  {2, 1, ModeFlow},
	3:  {3, 1, ModeFlow},
	4:  {2, 2, ModeFlow},
	5:  {3, 2, ModeFlow},
	6:  {3, 2, ModeFlow},
	7:  {4, 2, ModeGrid7},
	8:  {4, 2, ModeGrid8},
	9:  {3, 3, ModeFlow},
	10: {4, 3, ModeGrid10},
	11: {4, 3, ModeGrid11},
	12: {4, 3, ModeGrid12},
}

// Compute returns the plan for count screens using DefaultGap.
// It returns nil when count is zero or negative.
func Compute(count int) *Plan {
	return ComputeGap(count, DefaultGap)
}

// ComputeGap is Compute with an explicit inter-tile gap
func ComputeGap(count int, gap float64) *Plan {
	if count <= 0 {
		return nil
	}
	if gap < 0 {
		gap = 0
	}

	size, ok := sizes[count]
	if !ok {
		size = gridSize{
			columns: FlowColumnsAbove12,
			rows:    (count + FlowColumnsAbove12 - 1) / FlowColumnsAbove12,
			mode:    ModeFlow,
		}
	}

	plan := &Plan{
		Count:   count,
		Columns: size.columns,
		Rows:    size.rows,
		Mode:    size.mode,
		Justify: JustifyStart,
		Gap:     gap,
	}

	if count == 1 || plan.ShortBy() > 0 {
		plan.Justify = JustifyCenter
	}

	if plan.Mode == ModeFlow {
		plan.Tile = &Geometry{
			WidthPercent:  span(plan.Columns, gap),
			HeightPercent: span(plan.Rows, gap),
		}
	}

	return plan
}

// span sizes one of n tiles so n tiles and n-1 gaps fill 100%
func span(n int, gap float64) float64 {
	fn := float64(n)
	return 100/fn - (fn-1)/fn*gap
}

// Cells returns the number of grid cells (columns * rows)
func (p *Plan) Cells() int {
	if p == nil {
		return 0
	}
	return p.Columns * p.Rows
}

// ShortBy returns how many cells of the last row stay empty
func (p *Plan) ShortBy() int {
	if p == nil {
		return 0
	}
	return p.Cells() - p.Count
}

// LastRowCount returns the number of tiles on the last row
func (p *Plan) LastRowCount() int {
	if p == nil {
		return 0
	}
	return p.Columns - p.ShortBy()
}

// IsNamedGrid reports whether placement comes from a fixed template
func (p *Plan) IsNamedGrid() bool {
	return p != nil && p.Mode != ModeFlow
}

// Position returns the row-major row and column of list index i
func (p *Plan) Position(i int) (row, col int) {
	if p == nil || p.Columns == 0 {
		return 0, 0
	}
	return i / p.Columns, i % p.Columns
}

// String returns a compact description such as "4x2 grid-7"
func (p *Plan) String() string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%dx%d %s", p.Columns, p.Rows, p.Mode)
}
