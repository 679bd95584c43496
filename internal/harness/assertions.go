package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/preset"
	"github.com/roach88/cssturing/internal/render"
	"github.com/roach88/cssturing/internal/rule110"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func evaluate(out *compiler.Output, a Assertion) error {
	switch a.Type {
	case AssertRuleCount:
		return assertCount(a.Type, a.Count, out.RuleCount)
	case AssertRulesFor:
		target := ir.Coordinate{Row: a.Row, Col: a.Col}
		return assertCount(a.Type+" "+target.String(), a.Count, len(out.RuleSet.RulesFor(target)))
	case AssertContains:
		if !strings.Contains(out.Text, a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("text containing %q", a.Text), Actual: "no match"}
		}
	case AssertNotContains:
		if strings.Contains(out.Text, a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("no %q", a.Text), Actual: "match found"}
		}
	case AssertNoteContains:
		if !strings.Contains(out.Note, a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("note containing %q", a.Text), Actual: fmt.Sprintf("%q", out.Note)}
		}
	case AssertNoNote:
		if out.Note != "" {
			return &AssertionError{Type: a.Type, Expected: "no note", Actual: fmt.Sprintf("%q", out.Note)}
		}
	case AssertRender:
		return assertRender(out.RuleSet, a)
	case AssertEvolution:
		return assertEvolution(out.RuleSet)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertCount(kind string, want, got int) error {
	if want != got {
		return &AssertionError{Type: kind, Expected: fmt.Sprint(want), Actual: fmt.Sprint(got)}
	}
	return nil
}

func assertRender(rs *ir.RuleSet, a Assertion) error {
	root, err := rootVector(a, rs.Cols)
	if err != nil {
		return err
	}
	grid, err := render.Evaluate(rs, root)
	if err != nil {
		return err
	}

	got := grid.Lines("1", "0")
	if len(got) != len(a.Lines) {
		return &AssertionError{
			Type:     AssertRender,
			Expected: fmt.Sprintf("%d lines", len(a.Lines)),
			Actual:   fmt.Sprintf("%d lines %v", len(got), got),
		}
	}
	for i := range got {
		if got[i] != a.Lines[i] {
			return &AssertionError{
				Type:     AssertRender,
				Expected: fmt.Sprintf("row %d = %s", i, a.Lines[i]),
				Actual:   got[i],
			}
		}
	}
	return nil
}

func rootVector(a Assertion, cols int) ([]bool, error) {
	if a.Preset != "" {
		p, err := preset.Lookup(a.Preset)
		if err != nil {
			return nil, err
		}
		return p.Vector(cols, a.Seed)
	}

	root := make([]bool, len(a.Bits))
	for i, ch := range a.Bits {
		switch ch {
		case '0':
		case '1':
			root[i] = true
		default:
			return nil, fmt.Errorf("bits: invalid character %q at %d", ch, i)
		}
	}
	return root, nil
}

// assertEvolution renders every root vector of width cols and compares each
// compiled cell with the value obtained by simulating its window directly.
func assertEvolution(rs *ir.RuleSet) error {
	if rs.Cols > MaxEvolutionCols {
		return fmt.Errorf("evolution: cols %d exceeds %d", rs.Cols, MaxEvolutionCols)
	}

	root := make([]bool, rs.Cols)
	for bits := uint64(0); bits < 1<<uint(rs.Cols); bits++ {
		for i := range root {
			root[i] = bits&(1<<uint(rs.Cols-1-i)) != 0
		}
		grid, err := render.Evaluate(rs, root)
		if err != nil {
			return err
		}
		for row := 1; row <= rs.Depth; row++ {
			for col := 0; col < rs.Cols; col++ {
				target := ir.Coordinate{Row: row, Col: col}
				want := evolve(root, target)
				if grid.Active(row, col) != want {
					return &AssertionError{
						Type:     AssertEvolution,
						Expected: fmt.Sprintf("%s = %t for root %s", target, want, ir.Assignment(root)),
						Actual:   fmt.Sprint(!want),
					}
				}
			}
		}
	}
	return nil
}

// evolve derives target by simulating its window, with root cells outside
// the row fixed dead.
func evolve(root []bool, target ir.Coordinate) bool {
	w := ir.WindowFor(target)
	window := make([]bool, w.Width())
	for k := range window {
		i := w.Lo + k
		window[k] = i >= 0 && i < len(root) && root[i]
	}
	return rule110.Simulate(window, target.Row)
}
