package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir holds stylesheet snapshots, one per scenario name.
const GoldenDir = "testdata/golden"

// RunWithGolden runs a scenario, fails t on any assertion failure, and
// compares the stylesheet text against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}
	if result.Output != nil {
		AssertGolden(t, scenario.Name, result)
	}
	return result, nil
}

// AssertGolden compares an existing result's stylesheet against its golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Output.Text))
}
