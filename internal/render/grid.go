package render

import (
	"fmt"
	"strings"

	"github.com/roach88/cssturing/internal/ir"
)

// Grid holds the root row and the activation state of every compiled row.
type Grid struct {
	cells [][]bool // cells[0] is the root row
	rows  int      // requested rows, may exceed len(cells)-1
}

// Evaluate decides every cell of rs for the given root vector.
// len(root) must equal rs.Cols.
func Evaluate(rs *ir.RuleSet, root []bool) (*Grid, error) {
	if rs == nil {
		return nil, fmt.Errorf("cannot evaluate nil rule set")
	}
	if len(root) != rs.Cols {
		return nil, fmt.Errorf("root vector has %d cells, rule set expects %d", len(root), rs.Cols)
	}

	cells := make([][]bool, rs.Depth+1)
	cells[0] = append([]bool(nil), root...)
	for r := 1; r <= rs.Depth; r++ {
		cells[r] = make([]bool, rs.Cols)
	}

	for _, rule := range rs.Rules {
		t := rule.Target
		if t.Row < 1 || t.Row > rs.Depth || t.Col < 0 || t.Col >= rs.Cols {
			return nil, fmt.Errorf("rule targets %s outside the %dx%d grid", t, rs.Depth, rs.Cols)
		}
		if cells[t.Row][t.Col] {
			continue
		}
		if rule.Matches(root) {
			cells[t.Row][t.Col] = true
		}
	}

	return &Grid{cells: cells, rows: rs.Rows}, nil
}

// Depth returns the number of evaluated derived rows.
func (g *Grid) Depth() int {
	return len(g.cells) - 1
}

// Cols returns the row width.
func (g *Grid) Cols() int {
	return len(g.cells[0])
}

// Active reports whether cell (row, col) is alive. Row 0 is the root row.
// Rows beyond the compiled depth are never active.
func (g *Grid) Active(row, col int) bool {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.Cols() {
		return false
	}
	return g.cells[row][col]
}

// Row returns a copy of one evaluated row.
func (g *Grid) Row(row int) []bool {
	return append([]bool(nil), g.cells[row]...)
}

// ActiveCount returns the number of active derived cells.
func (g *Grid) ActiveCount() int {
	n := 0
	for _, row := range g.cells[1:] {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// Uncompiled returns the number of requested rows past the compiled depth.
func (g *Grid) Uncompiled() int {
	return max(0, g.rows-g.Depth())
}

// Lines renders each row (root first) with the given glyphs.
func (g *Grid) Lines(on, off string) []string {
	lines := make([]string, len(g.cells))
	for r, row := range g.cells {
		var b strings.Builder
		for _, cell := range row {
			if cell {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		lines[r] = b.String()
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Lines("#", "."), "\n")
}
