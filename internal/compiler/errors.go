package compiler

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("invalid compiler configuration")

// ConfigError reports a compile request rejected before enumeration.
type ConfigError struct {
	Field   string
	Value   int
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%d: %s", e.Field, e.Value, e.Message)
}

// Is lets errors.Is(err, ErrInvalidConfig) match.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
