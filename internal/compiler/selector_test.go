package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/rule110"
)

func TestSynthesizeInRange(t *testing.T) {
	target := ir.Coordinate{Row: 1, Col: 2}
	w := ir.WindowFor(target)

	s := Synthesize(w, ir.Assignment{false, true, true}, target, 5)

	e, ok := s.(Emittable)
	require.True(t, ok, "expected Emittable, got %T", s)
	assert.Equal(t, target, e.Rule.Target)
	assert.Equal(t, []ir.Literal{
		{Index: 1, Asserted: false},
		{Index: 2, Asserted: true},
		{Index: 3, Asserted: true},
	}, e.Rule.Match)
}

func TestSynthesizeOmitsDeadBoundary(t *testing.T) {
	target := ir.Coordinate{Row: 1, Col: 0}
	w := ir.WindowFor(target)

	s := Synthesize(w, ir.Assignment{false, true, false}, target, 3)

	e, ok := s.(Emittable)
	require.True(t, ok)
	assert.Equal(t, []ir.Literal{
		{Index: 0, Asserted: true},
		{Index: 1, Asserted: false},
	}, e.Rule.Match)
}

func TestSynthesizeUnreachable(t *testing.T) {
	tests := []struct {
		name   string
		target ir.Coordinate
		a      ir.Assignment
		cols   int
		index  int
	}{
		{"left boundary", ir.Coordinate{Row: 1, Col: 0}, ir.Assignment{true, false, true}, 3, -1},
		{"right boundary", ir.Coordinate{Row: 1, Col: 2}, ir.Assignment{false, false, true}, 3, 3},
		{"first offending index wins", ir.Coordinate{Row: 2, Col: 0}, ir.Assignment{false, true, false, true, true}, 2, -1},
		{"both sides", ir.Coordinate{Row: 1, Col: 0}, ir.Assignment{true, true, true}, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Synthesize(ir.WindowFor(tt.target), tt.a, tt.target, tt.cols)
			u, ok := s.(Unreachable)
			require.True(t, ok, "expected Unreachable, got %T", s)
			assert.Equal(t, tt.index, u.Index)
		})
	}
}

func TestSynthesizeWidthMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*rule110.InvariantError)
		assert.True(t, ok, "panic value should be *InvariantError, got %T", r)
	}()
	target := ir.Coordinate{Row: 2, Col: 3}
	Synthesize(ir.WindowFor(target), ir.Assignment{true, false, true}, target, 8)
}
