package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cssturing/internal/ir"
)

// Entry is a stored rule set with its stylesheet text.
type Entry struct {
	Hash            string
	RuleSet         *ir.RuleSet
	Stylesheet      string
	IRVersion       string
	CompilerVersion string
}

const entryColumns = `hash, grid_rows, grid_cols, depth, depth_cap, note, rules, stylesheet, ir_version, compiler_version`

// GetRuleSet loads the rule set stored under hash. The stored rules are
// re-hashed on load; a mismatch is reported as corruption.
func (s *Store) GetRuleSet(ctx context.Context, hash string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM rule_sets WHERE hash = ?", hash)
	e, err := scanEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get rule set %s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("get rule set %s: %w", hash, err)
	}
	return e, nil
}

// FindRuleSet returns the rule set compiled by the current compiler version
// for the given dimensions and cap.
func (s *Store) FindRuleSet(ctx context.Context, rows, cols, depthCap int) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM rule_sets
		WHERE grid_rows = ? AND grid_cols = ? AND depth_cap = ? AND compiler_version = ?
		ORDER BY hash COLLATE BINARY ASC
		LIMIT 1
	`, rows, cols, depthCap, ir.CompilerVersion)
	e, err := scanEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("find rule set rows=%d cols=%d cap=%d: %w", rows, cols, depthCap, ErrNotFound)
		}
		return nil, fmt.Errorf("find rule set: %w", err)
	}
	return e, nil
}

// ListRuns returns every logged run in seq order.
// Returns an empty slice, not nil, when no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, rule_set_hash, grid_rows, grid_cols, workers, cache_hit
		FROM compile_runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq, &r.Hash, &r.Rows, &r.Cols, &r.Workers, &r.CacheHit); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func scanEntry(row *sql.Row) (*Entry, error) {
	var (
		e     Entry
		rs    ir.RuleSet
		rules string
	)
	err := row.Scan(
		&e.Hash,
		&rs.Rows,
		&rs.Cols,
		&rs.Depth,
		&rs.Cap,
		&rs.Note,
		&rules,
		&e.Stylesheet,
		&e.IRVersion,
		&e.CompilerVersion,
	)
	if err != nil {
		return nil, err
	}

	rs.Rules, err = unmarshalRules(rules)
	if err != nil {
		return nil, err
	}

	got, err := ir.RuleSetHash(&rs)
	if err != nil {
		return nil, err
	}
	if got != e.Hash {
		return nil, fmt.Errorf("stored rule set is corrupt: hash %s does not match content %s", e.Hash, got)
	}

	e.RuleSet = &rs
	return &e, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
