package rule110

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMatchesRule110Table(t *testing.T) {
	tests := []struct {
		pattern string
		l, c, r bool
		want    bool
	}{
		{"000", false, false, false, false},
		{"001", false, false, true, true},
		{"010", false, true, false, true},
		{"011", false, true, true, true},
		{"100", true, false, false, false},
		{"101", true, false, true, true},
		{"110", true, true, false, true},
		{"111", true, true, true, false},
	}

	require.Len(t, tests, 8, "every neighborhood must be covered")
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.l, tt.c, tt.r))
		})
	}
}

func TestTableEncodesRuleNumber(t *testing.T) {
	// Bit i of the Wolfram code is the successor of neighborhood i.
	code := 0
	for i, alive := range Table() {
		if alive {
			code |= 1 << i
		}
	}
	assert.Equal(t, 110, code)
}

func TestTableReturnsCopy(t *testing.T) {
	tbl := Table()
	tbl[0] = true
	assert.False(t, Apply(false, false, false))
}

func TestNeighborhoodOf(t *testing.T) {
	assert.Equal(t, Neighborhood(0), NeighborhoodOf(false, false, false))
	assert.Equal(t, Neighborhood(4), NeighborhoodOf(true, false, false))
	assert.Equal(t, Neighborhood(3), NeighborhoodOf(false, true, true))
	assert.Equal(t, Neighborhood(7), NeighborhoodOf(true, true, true))
}

func TestAliveNeighborhoods(t *testing.T) {
	assert.Equal(t, []Neighborhood{1, 2, 3, 5, 6}, AliveNeighborhoods())
}
