// Package harness runs compile scenarios described in YAML files.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	rows: 1
//	cols: 5
//	cap: 6          # optional, defaults to the compiler default
//	workers: 0      # optional
//	expect_error: "" # optional, compilation must fail with this substring
//	assertions:
//	  - type: rule_count
//	    count: 20
//	  - type: rules_for
//	    row: 1
//	    col: 2
//	    count: 5
//	  - type: render
//	    bits: "00100"
//	    lines: ["00100", "01100"]
//
// # Assertion Types
//
//   - rule_count: total emitted rules
//   - rules_for: rules targeting one cell
//   - contains / not_contains: substring of the stylesheet text
//   - note_contains: substring of the truncation note
//   - no_note: the rule set is not truncated
//   - render: evaluate the rule set on a root vector (bits or preset) and
//     compare every row, root first, as '0'/'1' strings
//   - evolution: for every root vector of width cols, the rendered grid
//     agrees with direct Rule 110 evolution over a dead background
//
// Golden comparison of the stylesheet text lives in golden.go; run
// `go test ./internal/harness -update` to regenerate fixtures.
package harness
