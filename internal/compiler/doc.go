// Package compiler translates Rule 110 evolution into a static rule set.
//
// For every derived cell (row, col) up to a capped depth, the compiler
// enumerates all 2^(2·row+1) assignments of the cell's dependency window on
// the root row, simulates each one, and synthesizes a conjunctive match rule
// for every assignment that leaves the cell alive. Dead is the implicit
// default, so only alive outcomes are emitted.
//
// Pipeline:
//
//	Enumerate   window -> assignments (MSB = leftmost index) -> Simulate
//	Synthesize  alive assignment -> Emittable(rule) | Unreachable
//	Compile     rows × cols × assignments -> ordered ir.RuleSet
//
// Work per row grows as cols·2^(2·row+1), so depth is clamped to a cap
// (DefaultCap = 6). Rows beyond the cap are reported in the rule set's note
// and stay uncompiled; that is degraded output, not an error.
//
// Every (row, col) unit is independent. With Options.Workers > 0 the units
// run on a bounded errgroup pool; results land in per-unit slots and are
// concatenated in row/column order, so output is byte-identical to the
// sequential path.
package compiler
