package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuleSet() *RuleSet {
	return &RuleSet{
		Rows: 1, Cols: 3, Depth: 1, Cap: 6,
		Rules: []Rule{
			{
				Match:  []Literal{{Index: 0, Asserted: false}, {Index: 1, Asserted: true}},
				Target: Coordinate{Row: 1, Col: 0},
			},
			{
				Match:  []Literal{{Index: 0, Asserted: true}, {Index: 1, Asserted: false}},
				Target: Coordinate{Row: 1, Col: 0},
			},
		},
	}
}

func TestRuleSetHashDeterminism(t *testing.T) {
	h1, err := RuleSetHash(sampleRuleSet())
	require.NoError(t, err)
	h2, err := RuleSetHash(sampleRuleSet())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestRuleSetHashChangesWithContent(t *testing.T) {
	base := MustRuleSetHash(sampleRuleSet())

	wider := sampleRuleSet()
	wider.Cols = 4
	assert.NotEqual(t, base, MustRuleSetHash(wider), "dimensions participate")

	reordered := sampleRuleSet()
	reordered.Rules[0], reordered.Rules[1] = reordered.Rules[1], reordered.Rules[0]
	assert.NotEqual(t, base, MustRuleSetHash(reordered), "rule order participates")

	noted := sampleRuleSet()
	noted.Note = "Rows 7-8 are not compiled"
	assert.NotEqual(t, base, MustRuleSetHash(noted), "note participates")
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"rows":1}`)
	assert.NotEqual(t,
		hashWithDomain("cssturing/ruleset/v1", data),
		hashWithDomain("cssturing/ruleset/v2", data))
}
