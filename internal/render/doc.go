// Package render evaluates a compiled rule set against a root vector.
//
// It plays the renderer's side of the contract: a derived cell is active when
// at least one rule targeting it has every literal satisfied by the root row
// (OR across rules, AND within a rule). There is no step loop here; each cell
// is decided by rule matching alone, which is what a stylesheet engine does
// with the generated selectors.
package render
