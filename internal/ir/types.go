package ir

import "fmt"

// Coordinate addresses one cell. Row 0 is the externally supplied root row;
// rows 1..R are derived.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ID returns the identifier the renderer exposes for this cell.
func (c Coordinate) ID() string {
	return fmt.Sprintf("r_%d_c_%d", c.Row, c.Col)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// InputID returns the identifier of root-row input i.
func InputID(i int) string {
	return fmt.Sprintf("t_%d", i)
}

// Window is the inclusive span of root-row indices that determines one cell.
// Bounds may fall outside the root row; those positions are fixed dead.
type Window struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// WindowFor returns the dependency window of c: [col-row, col+row].
func WindowFor(c Coordinate) Window {
	return Window{Lo: c.Col - c.Row, Hi: c.Col + c.Row}
}

// Width returns hi-lo+1.
func (w Window) Width() int {
	return w.Hi - w.Lo + 1
}

// Contains reports whether root index i lies inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Lo && i <= w.Hi
}

// Assignment is one concrete boolean vector over a window; element k is the
// value of root index Window.Lo+k.
type Assignment []bool

// AssignmentFromIndex expands an enumeration index into width values.
// The most significant bit maps to the leftmost window position.
func AssignmentFromIndex(index uint64, width int) Assignment {
	a := make(Assignment, width)
	for k := 0; k < width; k++ {
		a[k] = index&(1<<uint(width-1-k)) != 0
	}
	return a
}

// Index is the inverse of AssignmentFromIndex.
func (a Assignment) Index() uint64 {
	var index uint64
	for _, bit := range a {
		index <<= 1
		if bit {
			index |= 1
		}
	}
	return index
}

func (a Assignment) String() string {
	b := make([]byte, len(a))
	for i, bit := range a {
		if bit {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Literal is one per-cell state predicate on the root row: input Index is
// asserted (checked) or not asserted.
type Literal struct {
	Index    int  `json:"index"`
	Asserted bool `json:"asserted"`
}

// Holds reports whether the literal is satisfied by root.
// Indices outside root never hold.
func (l Literal) Holds(root []bool) bool {
	if l.Index < 0 || l.Index >= len(root) {
		return false
	}
	return root[l.Index] == l.Asserted
}

// Rule activates Target when every literal in Match holds.
// Literals appear in ascending root-index order.
type Rule struct {
	Match  []Literal  `json:"match"`
	Target Coordinate `json:"target"`
}

// Matches reports whether all literals hold for root.
func (r Rule) Matches(root []bool) bool {
	for _, lit := range r.Match {
		if !lit.Holds(root) {
			return false
		}
	}
	return true
}

// RuleSet is the compiler's sole output: rules in row-major, then column,
// then assignment order, plus an optional derivation note.
type RuleSet struct {
	Rows  int    `json:"rows"`  // requested depth
	Cols  int    `json:"cols"`  // root-row width
	Depth int    `json:"depth"` // compiled depth, min(Rows, Cap)
	Cap   int    `json:"cap"`
	Rules []Rule `json:"rules"`
	Note  string `json:"note,omitempty"`
}

// Count returns the number of emitted rules.
func (rs *RuleSet) Count() int {
	return len(rs.Rules)
}

// Truncated reports whether rows beyond the cap were left uncompiled.
func (rs *RuleSet) Truncated() bool {
	return rs.Rows > rs.Depth
}

// RulesFor returns the rules targeting c, in emission order.
func (rs *RuleSet) RulesFor(c Coordinate) []Rule {
	var out []Rule
	for _, r := range rs.Rules {
		if r.Target == c {
			out = append(out, r)
		}
	}
	return out
}
