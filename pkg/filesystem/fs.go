package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/spf13/afero"
)

// FS adapts an afero.Fs to types.FS. Stat, Rename, MkdirAll and RemoveAll
// come straight from the embedded afero.Fs.
type FS struct {
	afero.Fs
}

var _ types.FS = (*FS)(nil)

// New wraps base.
func New(base afero.Fs) *FS {
	return &FS{Fs: base}
}

// NewOS returns the real filesystem.
func NewOS() types.FS {
	return New(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() types.FS {
	return New(afero.NewMemMapFs())
}

// ReadFile reads name. Reading a directory fails on every backend, which
// the in-memory one would otherwise allow.
func (f *FS) ReadFile(name string) ([]byte, error) {
	info, err := f.Fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(f.Fs, name)
}

func (f *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(f.Fs, name, data, perm)
}

// ReadDir lists name sorted by file name.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(f.Fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}
