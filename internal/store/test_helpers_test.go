package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/css"
	"github.com/roach88/cssturing/internal/ir"
)

// createTestStore opens a fresh database in a temp dir.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// compileTestRuleSet compiles rows x cols with the default cap.
func compileTestRuleSet(t *testing.T, rows, cols int) (*ir.RuleSet, string) {
	t.Helper()
	rs, err := compiler.Compile(rows, cols)
	if err != nil {
		t.Fatalf("Compile(%d, %d) failed: %v", rows, cols, err)
	}
	return rs, css.Render(rs)
}
