package ir

// Version constants for the IR schema and compiler.
const (
	// IRVersion is the rule-set schema version.
	IRVersion = "1"

	// CompilerVersion is the cssturing compiler version.
	CompilerVersion = "0.1.0"
)
