// Package diff compares two configuration trees.
//
// Both trees are first decomposed into the direct libraries and releases of each composite
// configuration. Libraries and releases are then paired by location (project, variant, libtype)
// into a Table. Each pair is classified as identical, first-only, second-only or differing,
// optionally down to the files it holds.
//
// The outcome renders as a text report, aligned in columns, or as a JSON summary.
package diff
