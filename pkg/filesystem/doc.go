// Package filesystem provides filesystem implementations for dodist.
//
// This package contains implementations of the types.FS interface (the
// standard OS filesystem and an afero-backed one used by tests) and the
// copy and write helpers the executor builds the output tree with.
package filesystem
