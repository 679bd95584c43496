package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/cssturing/internal/ir"
)

// Run is one logged compile invocation.
type Run struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Hash     string `json:"hash"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Workers  int    `json:"workers"`
	CacheHit bool   `json:"cache_hit"`
}

// PutRuleSet stores rs together with its serialized stylesheet and returns
// the content hash. Uses ON CONFLICT(hash) DO NOTHING: storing the same rule
// set twice is a no-op, reported by inserted=false.
func (s *Store) PutRuleSet(ctx context.Context, rs *ir.RuleSet, stylesheet string) (hash string, inserted bool, err error) {
	if rs == nil {
		return "", false, errors.New("put rule set: nil rule set")
	}

	hash, err = ir.RuleSetHash(rs)
	if err != nil {
		return "", false, fmt.Errorf("put rule set: %w", err)
	}

	rules, err := marshalRules(rs.Rules)
	if err != nil {
		return "", false, fmt.Errorf("put rule set: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO rule_sets
		(hash, grid_rows, grid_cols, depth, depth_cap, rule_count, note, rules, stylesheet, ir_version, compiler_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		hash,
		rs.Rows,
		rs.Cols,
		rs.Depth,
		rs.Cap,
		rs.Count(),
		rs.Note,
		rules,
		stylesheet,
		ir.IRVersion,
		ir.CompilerVersion,
	)
	if err != nil {
		return "", false, fmt.Errorf("put rule set: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("put rule set: %w", err)
	}
	return hash, n > 0, nil
}

// RecordRun appends a run to the log. An empty run.ID is filled from the
// store's generator. Seq is assigned as MAX(seq)+1 inside the insert
// transaction; the stored run is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM compile_runs",
	).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}
	run.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO compile_runs
		(id, seq, rule_set_hash, grid_rows, grid_cols, workers, cache_hit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Hash,
		run.Rows,
		run.Cols,
		run.Workers,
		run.CacheHit,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

func marshalRules(rules []ir.Rule) (string, error) {
	if rules == nil {
		rules = []ir.Rule{}
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("marshal rules: %w", err)
	}
	return string(data), nil
}

func unmarshalRules(data string) ([]ir.Rule, error) {
	var rules []ir.Rule
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	if rules == nil {
		rules = []ir.Rule{}
	}
	return rules, nil
}
