package cli

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/preset"
	"github.com/roach88/cssturing/internal/rule110"
)

//go:embed config.cue
var configSchema string

// Config is a decoded compile configuration.
type Config struct {
	Rows    int `json:"rows"`
	Cols    int `json:"cols"`
	Cap     int `json:"cap"`
	Workers int `json:"workers"`
}

// LoadError is a config or input error with an error code and, for CUE
// errors, a source position.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Location returns "file:line:col" or "" when no position is known.
func (e *LoadError) Location() string {
	if !e.Pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
}

// LoadConfig reads a CUE config file and validates it against #Config.
// Every returned error is a *LoadError.
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing config file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config path is a directory: %s", path)}
	}
	if ext := filepath.Ext(path); ext != ".cue" {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("config file must have a .cue extension, got %q", ext)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading config file: %v", err)}
	}
	return ParseConfig(path, data)
}

// ParseConfig validates CUE source against #Config. filename is used for
// error positions only.
func ParseConfig(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(configSchema, cue.Filename("config.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building config schema: %v", err)}
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeLoadFailed, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeInvalidConfig, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, cueLoadError(ErrCodeInvalidConfig, err)
	}
	return &cfg, nil
}

// cueLoadError converts the first CUE error into a LoadError, preferring a
// position inside the user's file over one inside the embedded schema.
func cueLoadError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() != "config.cue" {
			loadErr.Pos = pos
			break
		}
	}
	return loadErr
}

// Error code constants, shared by every command.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // CUE or YAML load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Embedded schema failed to build
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStoreFailed = "E008" // Rule-set store error

	// Compile configuration errors
	ErrCodeInvalidConfig  = "E101" // Config violates #Config
	ErrCodeInvalidRows    = "E102"
	ErrCodeInvalidCols    = "E103"
	ErrCodeInvalidCap     = "E104"
	ErrCodeInvalidWorkers = "E105"
	ErrCodeInvariant      = "E110" // Compilation aborted on a violated invariant

	// Root vector errors
	ErrCodeUnknownPreset = "E201"
	ErrCodeInvalidBits   = "E202"
)

// MapFieldToErrorCode maps a compiler.ConfigError field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "rows":
		return ErrCodeInvalidRows
	case "cols":
		return ErrCodeInvalidCols
	case "cap":
		return ErrCodeInvalidCap
	case "workers":
		return ErrCodeInvalidWorkers
	default:
		return ErrCodeGeneric
	}
}

// classifyError picks an error code for any error a command may surface.
func classifyError(err error) string {
	var (
		loadErr   *LoadError
		configErr *compiler.ConfigError
		invErr    *rule110.InvariantError
	)
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.As(err, &configErr):
		return MapFieldToErrorCode(configErr.Field)
	case errors.As(err, &invErr):
		return ErrCodeInvariant
	case errors.Is(err, preset.ErrUnknownPreset):
		return ErrCodeUnknownPreset
	default:
		return ErrCodeGeneric
	}
}

// parseBits reads a root vector written as '0'/'1' characters.
// Underscores and spaces are ignored as separators.
func parseBits(s string) ([]bool, error) {
	s = strings.NewReplacer("_", "", " ", "").Replace(s)
	if s == "" {
		return nil, &LoadError{Code: ErrCodeInvalidBits, Message: "bits must not be empty"}
	}
	root := make([]bool, len(s))
	for i, ch := range s {
		switch ch {
		case '0':
		case '1':
			root[i] = true
		default:
			return nil, &LoadError{Code: ErrCodeInvalidBits, Message: fmt.Sprintf("invalid character %q at position %d", ch, i)}
		}
	}
	return root, nil
}
