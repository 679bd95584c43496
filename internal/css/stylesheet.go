package css

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/cssturing/internal/ir"
)

// Declarations applied by the generated stylesheet.
const (
	CellStyle       = "background-color: #1a1a25;"
	ActiveCellStyle = "background-color: var(--primary-color); box-shadow: 0 0 5px var(--primary-color);"
	DerivedStyle    = "background-color: var(--primary-color); box-shadow: 0 0 8px var(--primary-color); border-color: #fff;"
)

// Combinator joins selector parts. The general sibling combinator lets a
// checkbox state select any later sibling, including the grid.
const Combinator = " ~ "

// Render returns the stylesheet text for rs.
func Render(rs *ir.RuleSet) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = Write(&b, rs)
	return b.String()
}

// Write serializes rs to w: a header comment, the default cell styles, one
// line per rule in rule-set order, and the note if there is one.
func Write(w io.Writer, rs *ir.RuleSet) error {
	if rs == nil {
		return fmt.Errorf("cannot serialize nil rule set")
	}

	if _, err := fmt.Fprintf(w, "/*\n * Generated Rule 110 logic\n * rows=%d cols=%d depth=%d rules=%d\n */\n",
		rs.Rows, rs.Cols, rs.Depth, rs.Count()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, ".cell { %s }\n.cell.active { %s }\n", CellStyle, ActiveCellStyle); err != nil {
		return err
	}

	for _, rule := range rs.Rules {
		if _, err := fmt.Fprintf(w, "%s { %s }\n", Selector(rule), DerivedStyle); err != nil {
			return err
		}
	}

	if rs.Note != "" {
		if _, err := fmt.Fprintf(w, "\n/* Note: %s */\n", sanitizeComment(rs.Note)); err != nil {
			return err
		}
	}
	return nil
}

// Selector returns the selector chain for one rule.
//
// Example: #t_0:not(:checked) ~ #t_1:checked ~ .grid .r_1_c_0
func Selector(rule ir.Rule) string {
	parts := make([]string, 0, len(rule.Match)+1)
	for _, lit := range rule.Match {
		parts = append(parts, LiteralSelector(lit))
	}
	parts = append(parts, TargetSelector(rule.Target))
	return strings.Join(parts, Combinator)
}

// LiteralSelector returns the state predicate for one root input.
func LiteralSelector(lit ir.Literal) string {
	if lit.Asserted {
		return "#" + ir.InputID(lit.Index) + ":checked"
	}
	return "#" + ir.InputID(lit.Index) + ":not(:checked)"
}

// TargetSelector returns the selector of a derived cell inside the grid.
func TargetSelector(c ir.Coordinate) string {
	return ".grid ." + c.ID()
}

func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
