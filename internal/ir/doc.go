// Package ir provides the immutable rule records produced by the compiler.
//
// This package contains type definitions, canonical serialization and content
// hashing only. All other internal packages import ir; ir imports nothing
// internal.
//
// Key design constraints:
//   - Records are values; nothing in a RuleSet is mutated after compilation
//   - Rule order is significant and part of the content hash
//   - NO float types anywhere - canonical JSON rejects them
//   - All JSON tags use snake_case
package ir
