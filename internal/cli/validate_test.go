package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grid.cue", "rows: 15\ncols: 40\n")

	stdout, _, err := execute(t, "validate", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ "+path+" is valid")
	assert.Contains(t, stdout, "  rows=15 cols=40 cap=6 workers=0")
	assert.Contains(t, stdout, "  depth 6, 240 cell(s), 436800 assignment(s) to enumerate")
	assert.Contains(t, stdout, "  Note: Rows 7-15 are not compiled: deriving them from the root row needs windows of 15+ cells, beyond the depth cap of 6.")
}

func TestValidate_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grid.cue", "rows: 2\ncols: 4\nworkers: 3\n")

	stdout, _, err := execute(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var result ValidationResult
	resp := decodeResponse(t, stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Valid)
	assert.Equal(t, Config{Rows: 2, Cols: 4, Cap: 6, Workers: 3}, result.Config)
	assert.Equal(t, 2, result.Depth)
	assert.Equal(t, 8, result.Units)
	assert.Equal(t, 4*(8+32), result.Assignments)
	assert.Empty(t, result.Note)
}

func TestValidate_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", filepath.Join(dir, "missing.cue"), ErrCodeNotFound},
		{"invalid", writeFile(t, dir, "bad.cue", "rows: 0\ncols: 1\n"), ErrCodeInvalidConfig},
		{"unparsable", writeFile(t, dir, "broken.cue", "rows: [\n"), ErrCodeLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "validate", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.code+"]")
		})
	}
}

func TestValidate_RequiresPath(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)
}

func TestPlanCompile(t *testing.T) {
	plan := planCompile(Config{Rows: 3, Cols: 4, Cap: 2})
	assert.Equal(t, 2, plan.Depth)
	assert.Equal(t, 8, plan.Units)
	assert.Equal(t, 4*8+4*32, plan.Assignments)
	assert.Contains(t, plan.Note, "Rows 3-3")
}
