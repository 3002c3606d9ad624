package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys are slash-separated paths relative
// to root; a key ending in "/" creates an (empty) directory.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadTree snapshots everything under root. Files map to their content and
// directories appear with a trailing "/" and empty content. A missing root
// yields an empty map.
func ReadTree(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	if _, err := fsys.Stat(root); err != nil {
		return tree
	}
	readTree(t, fsys, root, "", tree)
	return tree
}

func readTree(t *testing.T, fsys types.FS, dir, prefix string, tree map[string]string) {
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)

	for _, entry := range entries {
		rel := prefix + entry.Name()
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			tree[rel+"/"] = ""
			readTree(t, fsys, path, rel+"/", tree)
			continue
		}
		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		tree[rel] = string(data)
	}
}

// Paths returns the sorted keys of a tree snapshot.
func Paths(tree map[string]string) []string {
	paths := make([]string, 0, len(tree))
	for p := range tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
