package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/google/uuid"
)

const (
	// DirPerm is the mode used for every directory created in the output tree.
	DirPerm fs.FileMode = 0755
	// FilePerm is used when the source file mode cannot be determined.
	FilePerm fs.FileMode = 0644

	tempSuffix = ".dodist-tmp"
)

// ReadSource reads a source file, mapping a vanished path to ErrNotFound and
// any other failure to ErrFileAccess.
func ReadSource(fsys types.FS, path string) ([]byte, fs.FileMode, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, 0, errors.ForPath(err, errors.ErrFileAccess, path)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, 0, errors.ForPath(err, errors.ErrFileAccess, path)
	}
	perm := info.Mode().Perm()
	if perm == 0 {
		perm = FilePerm
	}
	return data, perm, nil
}

// WriteFileAtomic writes data to a temporary sibling of name and renames it
// into place, so readers never observe a partially written file. Parent
// directories are created first. The temporary name carries a random token,
// so it never matches a path another task writes.
func WriteFileAtomic(fsys types.FS, name string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}

	tmp := TempName(name)
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.RemoveAll(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", name).
			WithDetail("path", name)
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.RemoveAll(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s into place", name).
			WithDetail("path", name)
	}
	return nil
}

// TempName returns a fresh temporary path next to name.
func TempName(name string) string {
	token := uuid.NewString()[:8]
	return filepath.Join(filepath.Dir(name), "."+filepath.Base(name)+"."+token+tempSuffix)
}

// CopyFile copies src to dst byte for byte and returns the number of bytes copied.
func CopyFile(fsys types.FS, src, dst string) (int64, error) {
	data, perm, err := ReadSource(fsys, src)
	if err != nil {
		return 0, err
	}
	if err := WriteFileAtomic(fsys, dst, data, perm); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// CopyTree recursively copies src to dst verbatim, creating directories as
// needed. Nothing below src is classified or filtered, except source paths
// listed in exclude, which are left out with everything under them. It
// returns the number of files and bytes copied.
func CopyTree(fsys types.FS, src, dst string, exclude ...string) (int, int64, error) {
	info, err := fsys.Stat(src)
	if err != nil {
		return 0, 0, errors.ForPath(err, errors.ErrFileAccess, src)
	}
	if !info.IsDir() {
		n, err := CopyFile(fsys, src, dst)
		if err != nil {
			return 0, 0, err
		}
		return 1, n, nil
	}

	if err := fsys.MkdirAll(dst, DirPerm); err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dst).
			WithDetail("path", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return 0, 0, errors.ForPath(err, errors.ErrFileAccess, src)
	}

	var files int
	var total int64
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if slices.Contains(exclude, srcPath) {
			continue
		}

		if entry.IsDir() {
			f, n, err := CopyTree(fsys, srcPath, dstPath, exclude...)
			files += f
			total += n
			if err != nil {
				return files, total, err
			}
			continue
		}

		n, err := CopyFile(fsys, srcPath, dstPath)
		if err != nil {
			return files, total, err
		}
		files++
		total += n
	}

	return files, total, nil
}
