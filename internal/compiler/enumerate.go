package compiler

import (
	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/rule110"
)

// Enumerate visits every assignment of target's dependency window exactly
// once, in ascending index order (most significant bit = leftmost window
// index), together with the cell value it produces at target.Row.
//
// The assignment passed to visit is reused between calls; copy it to retain.
func Enumerate(target ir.Coordinate, visit func(a ir.Assignment, alive bool)) {
	if target.Row < 1 {
		rule110.Violation("Enumerate", "target %s is not a derived row", target)
	}
	width := ir.WindowFor(target).Width()
	a := make(ir.Assignment, width)
	total := uint64(1) << uint(width)

	for index := uint64(0); index < total; index++ {
		for k := 0; k < width; k++ {
			a[k] = index&(1<<uint(width-1-k)) != 0
		}
		visit(a, rule110.Simulate(a, target.Row))
	}
}

// Tally counts alive and dead outcomes over target's window.
// alive+dead is always 2^(2·row+1).
func Tally(target ir.Coordinate) (alive, dead int) {
	Enumerate(target, func(_ ir.Assignment, ok bool) {
		if ok {
			alive++
		} else {
			dead++
		}
	})
	return alive, dead
}
