// Package preset is the catalog of named root vectors.
//
// The catalog ships embedded as presets.yaml. A preset either names a
// generator (random, single, alternating, dense) or carries fixed data that
// is placed near the right edge of the root row.
package preset
