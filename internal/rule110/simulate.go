package rule110

import "fmt"

// InvariantError reports a violated precondition. It is raised with panic.
type InvariantError struct {
	Op      string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Message)
}

// Violation panics with an *InvariantError.
func Violation(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Message: fmt.Sprintf(format, args...)})
}

// WindowWidth returns the number of root cells that determine one cell at depth.
func WindowWidth(depth int) int {
	return 2*depth + 1
}

// Step applies the rule to every consecutive triple of row and returns the
// len(row)-2 results. Rows shorter than three cells have no complete triple.
func Step(row []bool) []bool {
	if len(row) < 3 {
		Violation("Step", "row of length %d has no complete neighborhood", len(row))
	}
	next := make([]bool, len(row)-2)
	for i := range next {
		next[i] = Apply(row[i], row[i+1], row[i+2])
	}
	return next
}

// Simulate reduces window to the single cell it determines at depth.
// len(window) must equal WindowWidth(depth); anything else panics.
func Simulate(window []bool, depth int) bool {
	if depth < 0 || len(window) != WindowWidth(depth) {
		Violation("Simulate", "window length %d does not match depth %d", len(window), depth)
	}
	current := window
	for i := 0; i < depth; i++ {
		current = Step(current)
	}
	return current[0]
}
