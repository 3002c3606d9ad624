package testutil

import (
	"github.com/arthur-debert/dodist/pkg/filesystem"
	"github.com/arthur-debert/dodist/pkg/types"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewMemory()
}
