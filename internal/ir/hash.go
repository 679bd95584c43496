package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix leaves
// room for a future algorithm migration.
const (
	DomainRuleSet = "cssturing/ruleset/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RuleSetHash computes the content-addressed identity of a rule set.
// Rule order, dimensions, cap and note all participate.
func RuleSetHash(rs *RuleSet) (string, error) {
	canonical, err := MarshalCanonical(rs.toIR())
	if err != nil {
		return "", fmt.Errorf("RuleSetHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRuleSet, canonical), nil
}

// MustRuleSetHash is like RuleSetHash but panics on error.
func MustRuleSetHash(rs *RuleSet) string {
	h, err := RuleSetHash(rs)
	if err != nil {
		panic(err)
	}
	return h
}

func (rs *RuleSet) toIR() IRObject {
	rules := make(IRArray, len(rs.Rules))
	for i, r := range rs.Rules {
		match := make(IRArray, len(r.Match))
		for j, lit := range r.Match {
			match[j] = IRObject{
				"index":    IRInt(lit.Index),
				"asserted": IRBool(lit.Asserted),
			}
		}
		rules[i] = IRObject{
			"match": match,
			"target": IRObject{
				"row": IRInt(r.Target.Row),
				"col": IRInt(r.Target.Col),
			},
		}
	}
	return IRObject{
		"ir_version": IRString(IRVersion),
		"rows":       IRInt(rs.Rows),
		"cols":       IRInt(rs.Cols),
		"depth":      IRInt(rs.Depth),
		"cap":        IRInt(rs.Cap),
		"note":       IRString(rs.Note),
		"rules":      rules,
	}
}
