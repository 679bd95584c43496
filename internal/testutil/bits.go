// Package testutil holds helpers shared by package tests.
package testutil

import "fmt"

// Bits parses a string of '0' and '1' into a root vector.
// Any other character panics; inputs are test literals.
func Bits(s string) []bool {
	out := make([]bool, len(s))
	for i, ch := range s {
		switch ch {
		case '0':
		case '1':
			out[i] = true
		default:
			panic(fmt.Sprintf("testutil.Bits: invalid character %q at %d", ch, i))
		}
	}
	return out
}

// BitString is the inverse of Bits.
func BitString(v []bool) string {
	b := make([]byte, len(v))
	for i, on := range v {
		if on {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
