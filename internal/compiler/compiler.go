package compiler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/cssturing/internal/css"
	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/rule110"
)

const (
	// DefaultCap is the deepest row compiled when Options.Cap is unset.
	// Row 6 already needs 2^13 assignments per cell.
	DefaultCap = 6

	// MaxCap bounds a configured cap; row 10 needs 2^21 assignments per cell.
	MaxCap = 10
)

// Options configures a Compiler. The zero value compiles sequentially to
// DefaultCap without logging.
type Options struct {
	// Cap clamps the compiled depth. 0 means DefaultCap.
	Cap int

	// Workers bounds the number of units compiled concurrently.
	// 0 or 1 compiles sequentially.
	Workers int

	// Logger receives per-row debug output and the truncation warning.
	Logger *zap.Logger

	// Progress, if set, is called once per compiled unit. With Workers > 1
	// it is called from several goroutines.
	Progress func(ir.Coordinate)
}

// Compiler turns (rows, cols) into a rule set. It holds no mutable state and
// is safe for concurrent use.
type Compiler struct {
	cap      int
	workers  int
	logger   *zap.Logger
	progress func(ir.Coordinate)
}

// Stats summarizes one compilation.
type Stats struct {
	Units       int `json:"units"`       // (row, col) cells compiled
	Assignments int `json:"assignments"` // assignments enumerated
	Alive       int `json:"alive"`       // assignments whose cell is alive
	Pruned      int `json:"pruned"`      // alive but unreachable at the boundary
	Emitted     int `json:"emitted"`     // rules in the rule set
}

// Output is a compiled rule set together with its serialized form.
type Output struct {
	RuleSet   *ir.RuleSet
	Text      string
	RuleCount int
	Note      string
	Hash      string
	Stats     Stats
}

// New creates a Compiler. Option values are checked by Compile.
func New(opts Options) *Compiler {
	c := &Compiler{
		cap:      opts.Cap,
		workers:  opts.Workers,
		logger:   opts.Logger,
		progress: opts.Progress,
	}
	if c.cap == 0 {
		c.cap = DefaultCap
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Compile compiles with default options.
func Compile(rows, cols int) (*ir.RuleSet, error) {
	return New(Options{}).Compile(rows, cols)
}

// CompileText compiles with default options and serializes the result.
func CompileText(rows, cols int) (*Output, error) {
	return New(Options{}).CompileText(rows, cols)
}

// Cap returns the effective depth cap.
func (c *Compiler) Cap() int {
	return c.cap
}

// Compile builds the rule set for a grid of rows derived rows over a root row
// of cols cells.
func (c *Compiler) Compile(rows, cols int) (*ir.RuleSet, error) {
	rs, _, err := c.compile(rows, cols)
	return rs, err
}

// CompileText compiles and serializes in one step.
func (c *Compiler) CompileText(rows, cols int) (*Output, error) {
	rs, stats, err := c.compile(rows, cols)
	if err != nil {
		return nil, err
	}
	hash, err := ir.RuleSetHash(rs)
	if err != nil {
		return nil, err
	}
	return &Output{
		RuleSet:   rs,
		Text:      css.Render(rs),
		RuleCount: rs.Count(),
		Note:      rs.Note,
		Hash:      hash,
		Stats:     stats,
	}, nil
}

// unitResult is what one (row, col) unit contributes.
type unitResult struct {
	rules  []ir.Rule
	alive  int
	pruned int
	total  int
}

func (c *Compiler) compile(rows, cols int) (*ir.RuleSet, Stats, error) {
	if err := c.validate(rows, cols); err != nil {
		return nil, Stats{}, err
	}

	depth := min(rows, c.cap)
	units := make([]ir.Coordinate, 0, depth*cols)
	for row := 1; row <= depth; row++ {
		for col := 0; col < cols; col++ {
			units = append(units, ir.Coordinate{Row: row, Col: col})
		}
	}

	results, err := c.run(units, cols)
	if err != nil {
		return nil, Stats{}, err
	}

	rs := &ir.RuleSet{Rows: rows, Cols: cols, Depth: depth, Cap: c.cap}
	stats := Stats{Units: len(units)}
	rowRules := 0
	for i, res := range results {
		rs.Rules = append(rs.Rules, res.rules...)
		stats.Assignments += res.total
		stats.Alive += res.alive
		stats.Pruned += res.pruned
		rowRules += len(res.rules)

		if units[i].Col == cols-1 {
			c.logger.Debug("compiled row",
				zap.Int("row", units[i].Row),
				zap.Int("window", ir.WindowFor(units[i]).Width()),
				zap.Int("rules", rowRules))
			rowRules = 0
		}
	}
	stats.Emitted = rs.Count()

	if rows > c.cap {
		rs.Note = TruncationNote(c.cap, rows)
		c.logger.Warn("depth exceeds cap, rows left uncompiled",
			zap.Int("rows", rows),
			zap.Int("cap", c.cap))
	}

	c.logger.Debug("compiled rule set",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("depth", depth),
		zap.Int("rules", stats.Emitted),
		zap.Int("pruned", stats.Pruned))

	return rs, stats, nil
}

// TruncationNote names the uncompiled row range.
func TruncationNote(depthCap, rows int) string {
	return fmt.Sprintf("Rows %d-%d are not compiled: deriving them from the root row needs windows of %d+ cells, beyond the depth cap of %d.",
		depthCap+1, rows, rule110.WindowWidth(depthCap+1), depthCap)
}

func (c *Compiler) validate(rows, cols int) error {
	if rows <= 0 {
		return &ConfigError{Field: "rows", Value: rows, Message: "must be positive"}
	}
	if cols <= 0 {
		return &ConfigError{Field: "cols", Value: cols, Message: "must be positive"}
	}
	if c.cap < 1 || c.cap > MaxCap {
		return &ConfigError{Field: "cap", Value: c.cap, Message: fmt.Sprintf("must be between 1 and %d", MaxCap)}
	}
	if c.workers < 0 {
		return &ConfigError{Field: "workers", Value: c.workers, Message: "must not be negative"}
	}
	return nil
}

// run compiles every unit, sequentially or on the worker pool. results[i]
// always belongs to units[i].
func (c *Compiler) run(units []ir.Coordinate, cols int) ([]unitResult, error) {
	results := make([]unitResult, len(units))

	if c.workers <= 1 {
		for i, u := range units {
			res, err := c.compileUnit(u, cols)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, u := range units {
		g.Go(func() error {
			res, err := c.compileUnit(u, cols)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// compileUnit enumerates one cell's window. An invariant panic aborts the
// unit and comes back as an error wrapping *rule110.InvariantError.
func (c *Compiler) compileUnit(target ir.Coordinate, cols int) (res unitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			var inv *rule110.InvariantError
			e, ok := r.(error)
			if !ok || !errors.As(e, &inv) {
				panic(r)
			}
			err = fmt.Errorf("compile %s: %w", target, inv)
		}
	}()

	w := ir.WindowFor(target)
	Enumerate(target, func(a ir.Assignment, alive bool) {
		res.total++
		if !alive {
			return
		}
		res.alive++
		switch s := Synthesize(w, a, target, cols).(type) {
		case Emittable:
			res.rules = append(res.rules, s.Rule)
		case Unreachable:
			res.pruned++
		}
	})

	if c.progress != nil {
		c.progress(target)
	}
	return res, nil
}
