package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is one compile configuration plus its expectations.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	Rows    int `yaml:"rows"`
	Cols    int `yaml:"cols"`
	Cap     int `yaml:"cap,omitempty"`
	Workers int `yaml:"workers,omitempty"`

	// ExpectError, when set, requires compilation to fail with an error
	// containing this text. Assertions are not evaluated.
	ExpectError string `yaml:"expect_error,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of the compiled output.
type Assertion struct {
	Type string `yaml:"type"`

	// Count is used by rule_count and rules_for.
	Count int `yaml:"count,omitempty"`

	// Row and Col select the target cell for rules_for.
	Row int `yaml:"row,omitempty"`
	Col int `yaml:"col,omitempty"`

	// Text is used by contains, not_contains and note_contains.
	Text string `yaml:"text,omitempty"`

	// Bits or Preset (with Seed) supply the root vector for render.
	Bits   string `yaml:"bits,omitempty"`
	Preset string `yaml:"preset,omitempty"`
	Seed   uint64 `yaml:"seed,omitempty"`

	// Lines are the expected rows for render, root first.
	Lines []string `yaml:"lines,omitempty"`
}

// Assertion type constants.
const (
	AssertRuleCount    = "rule_count"
	AssertRulesFor     = "rules_for"
	AssertContains     = "contains"
	AssertNotContains  = "not_contains"
	AssertNoteContains = "note_contains"
	AssertNoNote       = "no_note"
	AssertRender       = "render"
	AssertEvolution    = "evolution"
)

// MaxEvolutionCols bounds the width an evolution assertion may enumerate.
const MaxEvolutionCols = 12

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob scenarios: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("scenario directory: %w", err)
		}
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	names := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", filepath.Base(path), s.Name, prev)
		}
		names[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks structural requirements. Dimension limits are
// left to the compiler so that expect_error scenarios can exercise them.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.ExpectError == "" && len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required unless expect_error is set")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRuleCount, AssertNoNote, AssertEvolution:
	case AssertRulesFor:
		if a.Row < 1 {
			return fmt.Errorf("assertions[%d]: row must be >= 1 for rules_for", index)
		}
	case AssertContains, AssertNotContains, AssertNoteContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertRender:
		if (a.Bits == "") == (a.Preset == "") {
			return fmt.Errorf("assertions[%d]: render needs exactly one of bits or preset", index)
		}
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines are required for render", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}

	return nil
}
