// Package rule110 implements the Rule 110 transition function and the
// staged window reduction used to derive one cell from the root row.
//
// Everything here is pure. A window of 2·depth+1 root cells determines
// exactly one cell at the given depth; Simulate reduces the window by two
// cells per step until one value remains.
//
// Precondition violations (a window of the wrong length, an assignment whose
// width disagrees with its window) are programming errors and panic with
// *InvariantError, following the Must* convention: they are never returned
// as ordinary errors.
package rule110
