package compiler

import (
	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/rule110"
)

// Synthesis is the outcome of turning one alive assignment into a rule.
// It is sealed: only Emittable and Unreachable implement it.
type Synthesis interface {
	synthesis()
}

// Emittable carries a rule ready for the rule set.
type Emittable struct {
	Rule ir.Rule
}

func (Emittable) synthesis() {}

// Unreachable means the assignment needs a live cell outside the root row,
// where every cell is fixed dead. Index is the first such position.
type Unreachable struct {
	Index int
}

func (Unreachable) synthesis() {}

// Synthesize builds the conjunctive predicate for assignment a over window w,
// guarding target. Window positions are visited left to right:
//   - in [0, cols): one literal, asserted iff the assignment bit is set
//   - outside and false: omitted, the fixed dead boundary satisfies it
//   - outside and true: the whole assignment is Unreachable
//
// len(a) must equal w.Width().
func Synthesize(w ir.Window, a ir.Assignment, target ir.Coordinate, cols int) Synthesis {
	if len(a) != w.Width() {
		rule110.Violation("Synthesize", "assignment width %d does not match window width %d", len(a), w.Width())
	}

	match := make([]ir.Literal, 0, len(a))
	for k, bit := range a {
		index := w.Lo + k
		if index < 0 || index >= cols {
			if bit {
				return Unreachable{Index: index}
			}
			continue
		}
		match = append(match, ir.Literal{Index: index, Asserted: bit})
	}

	return Emittable{Rule: ir.Rule{Match: match, Target: target}}
}
