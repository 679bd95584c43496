package harness

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/cssturing/internal/compiler"
)

// Result is the outcome of running one scenario.
type Result struct {
	Name string `json:"name"`

	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	RuleCount int    `json:"rule_count"`
	Hash      string `json:"hash,omitempty"`
	Note      string `json:"note,omitempty"`

	// Errors holds one message per failed assertion.
	Errors []string `json:"errors,omitempty"`

	// Output is the compiled output; nil for expect_error scenarios.
	Output *compiler.Output `json:"-"`
}

// NewResult creates a passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Runner executes scenarios with a shared logger.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes a scenario with logging disabled.
func Run(scenario *Scenario) (*Result, error) {
	return NewRunner(nil).Run(scenario)
}

// Run compiles the scenario's configuration and evaluates its assertions.
// Failed assertions are reported in the Result; the returned error is
// reserved for scenarios that cannot be evaluated at all.
func (r *Runner) Run(scenario *Scenario) (*Result, error) {
	log := r.logger.With(zap.String("scenario", scenario.Name))
	result := NewResult(scenario.Name)

	c := compiler.New(compiler.Options{
		Cap:     scenario.Cap,
		Workers: scenario.Workers,
		Logger:  log,
	})
	out, err := c.CompileText(scenario.Rows, scenario.Cols)

	if scenario.ExpectError != "" {
		switch {
		case err == nil:
			result.AddError(fmt.Sprintf("expected error containing %q, compilation succeeded", scenario.ExpectError))
		case !strings.Contains(err.Error(), scenario.ExpectError):
			result.AddError(fmt.Sprintf("expected error containing %q, got %q", scenario.ExpectError, err.Error()))
		}
		log.Debug("scenario finished", zap.Bool("pass", result.Pass))
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result.Output = out
	result.RuleCount = out.RuleCount
	result.Hash = out.Hash
	result.Note = out.Note

	for i, a := range scenario.Assertions {
		if err := evaluate(out, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	log.Debug("scenario finished",
		zap.Bool("pass", result.Pass),
		zap.Int("rules", result.RuleCount),
		zap.Int("failures", len(result.Errors)))
	return result, nil
}

// RunAll runs scenarios in order. It stops at the first scenario that
// cannot be evaluated.
func (r *Runner) RunAll(scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scenarios))
	for _, s := range scenarios {
		res, err := r.Run(s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
