// Package testutil provides utilities for testing dodist components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem implementing types.FS
//   - WriteTree / ReadTree: declarative setup and snapshot of a directory tree
//
// Usage guidelines:
//   - Prefer NewTestFS for speed and isolation; use t.TempDir() with
//     filesystem.NewOS() only where real OS behavior matters
//   - All test data should be defined inline, not in external files
package testutil
