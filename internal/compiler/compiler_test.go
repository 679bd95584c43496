package compiler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/rule110"
)

func TestCompileSingleRowInterior(t *testing.T) {
	// cols=5, rows=1, col=2: window [1,3] lies inside the root row, so all
	// five alive triples are emitted.
	rs, err := Compile(1, 5)
	require.NoError(t, err)

	target := ir.Coordinate{Row: 1, Col: 2}
	rules := rs.RulesFor(target)
	require.Len(t, rules, 5)

	seen := map[string]bool{}
	for _, r := range rules {
		require.Len(t, r.Match, 3)
		assert.Equal(t, 1, r.Match[0].Index)
		assert.Equal(t, 2, r.Match[1].Index)
		assert.Equal(t, 3, r.Match[2].Index)

		key := ""
		for _, lit := range r.Match {
			if lit.Asserted {
				key += "1"
			} else {
				key += "0"
			}
		}
		seen[key] = true
	}
	assert.Equal(t, map[string]bool{"001": true, "010": true, "011": true, "101": true, "110": true}, seen)
}

func TestCompileSingleRowLeftBoundary(t *testing.T) {
	// cols=3, rows=1, col=0: index -1 is fixed dead, leaving 001, 010, 011.
	rs, err := Compile(1, 3)
	require.NoError(t, err)

	rules := rs.RulesFor(ir.Coordinate{Row: 1, Col: 0})
	require.Len(t, rules, 3)
	assert.Equal(t, []ir.Literal{{Index: 0, Asserted: false}, {Index: 1, Asserted: true}}, rules[0].Match)
	assert.Equal(t, []ir.Literal{{Index: 0, Asserted: true}, {Index: 1, Asserted: false}}, rules[1].Match)
	assert.Equal(t, []ir.Literal{{Index: 0, Asserted: true}, {Index: 1, Asserted: true}}, rules[2].Match)
	for _, r := range rules {
		for _, lit := range r.Match {
			assert.NotEqual(t, -1, lit.Index)
		}
	}
}

func TestCompileBeyondCap(t *testing.T) {
	rs, err := Compile(10, 8)
	require.NoError(t, err)

	assert.Equal(t, 6, rs.Depth)
	assert.Equal(t, 2651, rs.Count())
	assert.True(t, rs.Truncated())
	assert.Contains(t, rs.Note, "7-10")

	capped, err := Compile(6, 8)
	require.NoError(t, err)
	assert.Equal(t, capped.Rules, rs.Rules, "rows past the cap add no rules")
	assert.Empty(t, capped.Note)

	for _, r := range rs.Rules {
		require.LessOrEqual(t, r.Target.Row, 6)
	}
}

func TestCompileRuleCounts(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       int
	}{
		{1, 1, 1},
		{1, 3, 10},
		{1, 5, 20},
		{2, 1, 2},
		{2, 4, 40},
		{3, 3, 35},
		{3, 8, 375},
		{4, 6, 378},
	}

	for _, tt := range tests {
		rs, err := Compile(tt.rows, tt.cols)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rs.Count(), "rows=%d cols=%d", tt.rows, tt.cols)
	}
}

func TestCompileNeverReferencesOutOfRangeIndices(t *testing.T) {
	rs, err := Compile(4, 5)
	require.NoError(t, err)

	for _, r := range rs.Rules {
		for _, lit := range r.Match {
			require.GreaterOrEqual(t, lit.Index, 0)
			require.Less(t, lit.Index, 5)
		}
	}
}

func TestCompileOrdering(t *testing.T) {
	rs, err := Compile(3, 4)
	require.NoError(t, err)

	for i := 1; i < len(rs.Rules); i++ {
		prev, cur := rs.Rules[i-1].Target, rs.Rules[i].Target
		ordered := prev.Row < cur.Row || (prev.Row == cur.Row && prev.Col <= cur.Col)
		require.True(t, ordered, "rule %d targets %s after %s", i, cur, prev)
	}
}

// evolve derives every row up to depth with a dead background on both
// sides: the root is padded by depth cells and each step shrinks it by two.
func evolve(root []bool, depth int) [][]bool {
	padded := make([]bool, len(root)+2*depth)
	copy(padded[depth:], root)

	rows := [][]bool{root}
	current := padded
	for r := 1; r <= depth; r++ {
		current = rule110.Step(current)
		offset := depth - r
		rows = append(rows, current[offset:offset+len(root)])
	}
	return rows
}

func TestCompiledRulesAgreeWithEvolution(t *testing.T) {
	const rows, cols = 3, 5
	rs, err := Compile(rows, cols)
	require.NoError(t, err)

	for index := uint64(0); index < 1<<cols; index++ {
		root := []bool(ir.AssignmentFromIndex(index, cols))
		want := evolve(root, rows)

		for r := 1; r <= rows; r++ {
			for c := 0; c < cols; c++ {
				active := false
				for _, rule := range rs.RulesFor(ir.Coordinate{Row: r, Col: c}) {
					if rule.Matches(root) {
						active = true
					}
				}
				require.Equal(t, want[r][c], active, "root %05b cell (%d,%d)", index, r, c)
			}
		}
	}
}

func TestCompileAtMostOneRulePerRootVector(t *testing.T) {
	// Assignments are disjoint, so no root vector matches two rules for the
	// same target.
	rs, err := Compile(2, 4)
	require.NoError(t, err)

	for index := uint64(0); index < 1<<4; index++ {
		root := []bool(ir.AssignmentFromIndex(index, 4))
		hits := map[ir.Coordinate]int{}
		for _, rule := range rs.Rules {
			if rule.Matches(root) {
				hits[rule.Target]++
			}
		}
		for c, n := range hits {
			assert.Equal(t, 1, n, "root %04b target %s", index, c)
		}
	}
}

func TestCompileConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		rows  int
		cols  int
		field string
	}{
		{"zero rows", Options{}, 0, 5, "rows"},
		{"negative cols", Options{}, 3, -1, "cols"},
		{"cap too deep", Options{Cap: MaxCap + 1}, 3, 3, "cap"},
		{"negative cap", Options{Cap: -2}, 3, 3, "cap"},
		{"negative workers", Options{Workers: -1}, 3, 3, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressed := false
			tt.opts.Progress = func(ir.Coordinate) { progressed = true }

			rs, err := New(tt.opts).Compile(tt.rows, tt.cols)
			require.Error(t, err)
			assert.Nil(t, rs)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.False(t, progressed, "no unit may run before validation")
		})
	}
}

func TestCompileTextDeterministic(t *testing.T) {
	first, err := CompileText(4, 7)
	require.NoError(t, err)
	second, err := CompileText(4, 7)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, first.RuleCount, first.RuleSet.Count())
}

func TestWorkerPoolMatchesSequential(t *testing.T) {
	sequential, err := New(Options{}).CompileText(5, 9)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		parallel, err := New(Options{Workers: workers}).CompileText(5, 9)
		require.NoError(t, err)
		assert.Equal(t, sequential.Text, parallel.Text, "workers=%d", workers)
		assert.Equal(t, sequential.Hash, parallel.Hash, "workers=%d", workers)
		assert.Equal(t, sequential.Stats, parallel.Stats, "workers=%d", workers)
	}
}

func TestCompileStats(t *testing.T) {
	out, err := CompileText(1, 3)
	require.NoError(t, err)

	assert.Equal(t, Stats{Units: 3, Assignments: 24, Alive: 15, Pruned: 5, Emitted: 10}, out.Stats)
	assert.Equal(t, 10, out.RuleCount)
	assert.Empty(t, out.Note)
}

func TestProgressCalledPerUnit(t *testing.T) {
	var calls atomic.Int64
	c := New(Options{
		Workers:  3,
		Progress: func(ir.Coordinate) { calls.Add(1) },
	})

	_, err := c.Compile(3, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(18), calls.Load())
}

func TestCustomCap(t *testing.T) {
	c := New(Options{Cap: 2})
	assert.Equal(t, 2, c.Cap())

	rs, err := c.Compile(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Depth)
	assert.Equal(t, 2, rs.Cap)
	assert.Contains(t, rs.Note, "Rows 3-4")
}

func TestCompileLogsTruncation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(Options{Cap: 2, Logger: zap.New(core)})

	_, err := c.Compile(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, logs.FilterMessage("compiled row").Len())
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(3), warnings[0].ContextMap()["rows"])
}

func TestCompileUnitInvariantAborts(t *testing.T) {
	_, err := New(Options{}).compileUnit(ir.Coordinate{Row: 0, Col: 0}, 3)
	require.Error(t, err)

	var inv *rule110.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "Enumerate", inv.Op)
}

func TestTruncationNote(t *testing.T) {
	assert.Equal(t,
		"Rows 7-15 are not compiled: deriving them from the root row needs windows of 15+ cells, beyond the depth cap of 6.",
		TruncationNote(6, 15))
}

func TestGoldenStylesheets(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		cap        int
	}{
		{"rows1_cols3", 1, 3, 0},
		{"rows2_cols4", 2, 4, 0},
		{"rows4_cols2_cap2", 4, 2, 2},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(Options{Cap: tt.cap}).CompileText(tt.rows, tt.cols)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out.Text))
		})
	}
}
