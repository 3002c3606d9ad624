// Test Type: Unit Test
// Description: Tests for the planner package - tree walk and task emission

package planner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/filesystem"
	"github.com/arthur-debert/dodist/pkg/planner"
	"github.com/arthur-debert/dodist/pkg/rules"
	"github.com/arthur-debert/dodist/pkg/testutil"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRules(t *testing.T, opts rules.Options) *rules.RuleSet {
	t.Helper()
	if opts.SourceRoot == "" {
		opts.SourceRoot = "/src"
	}
	rs, err := rules.New(opts)
	require.NoError(t, err)
	return rs
}

func taskMap(plan *types.Plan) map[string]types.Task {
	m := make(map[string]types.Task, len(plan.Tasks))
	for _, task := range plan.Tasks {
		m[task.Source] = task
	}
	return m
}

func skipMap(plan *types.Plan) map[string]types.SkipReason {
	m := make(map[string]types.SkipReason, len(plan.Skipped))
	for _, s := range plan.Skipped {
		m[s.Path] = s.Reason
	}
	return m
}

func TestPlan_ClassifiesByExtension(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{
		"a.js":      "x",
		"b.css":     "x",
		"c.html":    "x",
		"d.txt":     "x",
		"e.JS":      "x",
		"lib/f.js":  "x",
		"empty/":    "",
		".env":      "SECRET=1",
		".git/HEAD": "ref",
	})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/out",
		Rules:      newRules(t, rules.Options{SkipHidden: true}),
	})
	require.NoError(t, err)

	tasks := taskMap(plan)
	assert.Equal(t, types.Task{Source: "/src", Dest: "/out", Kind: types.TaskMkdir}, tasks["/src"])
	assert.Equal(t, types.TaskMinifyJS, tasks["/src/a.js"].Kind)
	assert.Equal(t, "/out/a.js", tasks["/src/a.js"].Dest)
	assert.Equal(t, types.TaskMinifyCSS, tasks["/src/b.css"].Kind)
	assert.Equal(t, types.TaskMinifyHTML, tasks["/src/c.html"].Kind)
	assert.Equal(t, types.TaskCopy, tasks["/src/d.txt"].Kind)
	assert.Equal(t, types.TaskCopy, tasks["/src/e.JS"].Kind, "extension match is case-sensitive")
	assert.Equal(t, types.TaskMkdir, tasks["/src/lib"].Kind)
	assert.Equal(t, "/out/lib/f.js", tasks["/src/lib/f.js"].Dest)
	assert.Equal(t, types.TaskMkdir, tasks["/src/empty"].Kind)
	assert.NotContains(t, tasks, "/src/.env")
	assert.NotContains(t, tasks, "/src/.git/HEAD")

	skips := skipMap(plan)
	assert.Equal(t, types.SkipHidden, skips["/src/.env"])
	assert.Equal(t, types.SkipHidden, skips["/src/.git"])
	assert.NotContains(t, skips, "/src/.git/HEAD", "hidden directories are not descended")
}

func TestPlan_HiddenIncludedWhenSkipHiddenOff(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{
		".htaccess": "x",
		"index.js":  "x",
	})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/out",
		Rules:      newRules(t, rules.Options{SkipHidden: false}),
	})
	require.NoError(t, err)

	tasks := taskMap(plan)
	assert.Equal(t, types.TaskCopy, tasks["/src/.htaccess"].Kind)
	assert.Empty(t, plan.Skipped)
}

func TestPlan_IgnoreAndPassthrough(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{
		"demo.gif":        "gif",
		"docs/notes.md":   "x",
		"lib/vue.js":      "x",
		"lib/.keep":       "",
		"js/legacy.js":    "x",
		"js/app.js":       "x",
		"js/deep/skip.js": "x",
	})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/out",
		Rules: newRules(t, rules.Options{
			Ignore:      []string{"demo.gif", "/src/js/deep"},
			Passthrough: []string{"lib", "js/legacy.js"},
			SkipHidden:  true,
		}),
	})
	require.NoError(t, err)

	tasks := taskMap(plan)
	skips := skipMap(plan)

	assert.Equal(t, types.SkipIgnored, skips["/src/demo.gif"])
	assert.Equal(t, types.SkipIgnored, skips["/src/js/deep"])
	assert.NotContains(t, tasks, "/src/js/deep/skip.js")

	assert.Equal(t, types.Task{Source: "/src/lib", Dest: "/out/lib", Kind: types.TaskCopyTree}, tasks["/src/lib"])
	assert.NotContains(t, tasks, "/src/lib/vue.js", "passthrough directories are not descended")
	assert.NotContains(t, skips, "/src/lib/.keep", "hidden rules do not apply inside passthrough")

	assert.Equal(t, types.TaskCopy, tasks["/src/js/legacy.js"].Kind)
	assert.Equal(t, types.TaskMinifyJS, tasks["/src/js/app.js"].Kind)
	assert.Equal(t, types.TaskMkdir, tasks["/src/docs"].Kind)
}

func TestPlan_OutputNestedInSource(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{
		"app.js":      "x",
		"dist/app.js": "old build",
	})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/src/dist",
		Rules:      newRules(t, rules.Options{}),
	})
	require.NoError(t, err)

	tasks := taskMap(plan)
	assert.Equal(t, "/src/dist/app.js", tasks["/src/app.js"].Dest)
	assert.NotContains(t, tasks, "/src/dist/app.js")
	assert.Equal(t, types.SkipOutputRoot, skipMap(plan)["/src/dist"])
}

func TestPlan_MissingSourceRoot(t *testing.T) {
	fs := testutil.NewTestFS()

	t.Run("permissive", func(t *testing.T) {
		plan, err := planner.New(fs).Plan(planner.Options{
			SourceRoot: "/nope",
			OutputRoot: "/out",
			Rules:      newRules(t, rules.Options{SourceRoot: "/nope"}),
		})
		require.NoError(t, err)
		assert.Empty(t, plan.Tasks)
		assert.Equal(t, []types.Skip{{Path: "/nope", Reason: types.SkipMissing}}, plan.Skipped)
	})

	t.Run("strict", func(t *testing.T) {
		_, err := planner.New(fs).Plan(planner.Options{
			SourceRoot: "/nope",
			OutputRoot: "/out",
			Rules:      newRules(t, rules.Options{SourceRoot: "/nope"}),
			Strict:     true,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestPlan_MissingPassthroughEntry(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{"a.txt": "x"})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/out",
		Rules:      newRules(t, rules.Options{Passthrough: []string{"vendor"}}),
	})
	require.NoError(t, err)

	// vendor is never visited because it does not exist in the listing
	assert.Len(t, plan.Tasks, 2)
	assert.Empty(t, plan.Skipped)
}

func TestPlan_SourceRootIsFile(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{"app.js": "x"})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src/app.js",
		OutputRoot: "/out/app.js",
		Rules:      newRules(t, rules.Options{}),
	})
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, types.Task{Source: "/src/app.js", Dest: "/out/app.js", Kind: types.TaskMinifyJS}, plan.Tasks[0])
}

func TestPlan_CustomExtensions(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{
		"app.mjs":  "x",
		"page.htm": "x",
		"old.js":   "x",
	})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/out",
		Rules:      newRules(t, rules.Options{}),
		Extensions: planner.NewExtensions([]string{"mjs"}, nil, []string{".htm"}),
	})
	require.NoError(t, err)

	tasks := taskMap(plan)
	assert.Equal(t, types.TaskMinifyJS, tasks["/src/app.mjs"].Kind)
	assert.Equal(t, types.TaskMinifyHTML, tasks["/src/page.htm"].Kind)
	assert.Equal(t, types.TaskCopy, tasks["/src/old.js"].Kind)
}

func TestPlan_RequiresRoots(t *testing.T) {
	_, err := planner.New(testutil.NewTestFS()).Plan(planner.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExtensions_Kind(t *testing.T) {
	ext := planner.DefaultExtensions()
	assert.Equal(t, types.FileKindJavaScript, ext.Kind("/a/b.js"))
	assert.Equal(t, types.FileKindStylesheet, ext.Kind("b.css"))
	assert.Equal(t, types.FileKindMarkup, ext.Kind("index.html"))
	assert.Equal(t, types.FileKindOther, ext.Kind("b.min.map"))
	assert.Equal(t, types.FileKindOther, ext.Kind("Makefile"))
}

func TestPlan_OutputRootInsidePassthrough(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/src", map[string]string{"lib/x.txt": "x"})

	plan, err := planner.New(fs).Plan(planner.Options{
		SourceRoot: "/src",
		OutputRoot: "/src/lib/out",
		Rules:      newRules(t, rules.Options{Passthrough: []string{"lib"}}),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TaskCopyTree, taskMap(plan)["/src/lib"].Kind)
	assert.Equal(t, types.SkipOutputRoot, skipMap(plan)["/src/lib/out"])
}

func TestPlan_SymlinkLoop(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "a.txt"), []byte("a"), 0644))
	if err := os.Symlink(src, filepath.Join(src, "sub", "back")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	plan, err := planner.New(filesystem.NewOS()).Plan(planner.Options{
		SourceRoot: src,
		OutputRoot: filepath.Join(t.TempDir(), "out"),
		Rules:      newRules(t, rules.Options{SourceRoot: src}),
	})
	require.NoError(t, err)

	assert.Equal(t, types.SkipLoop, skipMap(plan)[filepath.Join(src, "sub", "back")])
	assert.Len(t, plan.Tasks, 3)
}
