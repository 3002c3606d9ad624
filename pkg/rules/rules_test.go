// Test Type: Unit Test
// Description: Tests for the rules package - exact-match routing decisions

package rules_test

import (
	"testing"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_Classify(t *testing.T) {
	rs, err := rules.New(rules.Options{
		SourceRoot:  "/site",
		Ignore:      []string{"/site/demo.gif", "README.md"},
		Passthrough: []string{"lib", "/site/js/legacy.js"},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want rules.Class
	}{
		{"absolute_ignore", "/site/demo.gif", rules.Ignore},
		{"relative_ignore_resolved_against_root", "/site/README.md", rules.Ignore},
		{"passthrough_directory", "/site/lib", rules.Passthrough},
		{"passthrough_file", "/site/js/legacy.js", rules.Passthrough},
		{"descendant_of_passthrough_is_not_listed", "/site/lib/vue.js", rules.Default},
		{"prefix_is_not_a_match", "/site/demo.gif.bak", rules.Default},
		{"unlisted", "/site/index.html", rules.Default},
		{"uncleaned_input", "/site/js/../README.md", rules.Ignore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Classify(tt.path))
		})
	}
}

func TestRuleSet_IsHidden(t *testing.T) {
	t.Run("skip_hidden_enabled", func(t *testing.T) {
		rs, err := rules.New(rules.Options{SourceRoot: "/site", SkipHidden: true})
		require.NoError(t, err)

		assert.True(t, rs.IsHidden(".git"))
		assert.True(t, rs.IsHidden(".env"))
		assert.False(t, rs.IsHidden("index.html"))
		assert.False(t, rs.IsHidden("a.b.c"))
	})

	t.Run("skip_hidden_disabled", func(t *testing.T) {
		rs, err := rules.New(rules.Options{SourceRoot: "/site"})
		require.NoError(t, err)

		assert.False(t, rs.IsHidden(".git"))
		assert.False(t, rs.SkipHidden())
	})
}

func TestNew_RejectsOverlap(t *testing.T) {
	_, err := rules.New(rules.Options{
		SourceRoot:  "/site",
		Ignore:      []string{"lib"},
		Passthrough: []string{"/site/lib"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Contains(t, err.Error(), "/site/lib")
}

func TestRuleSet_Lists(t *testing.T) {
	rs, err := rules.New(rules.Options{
		SourceRoot:  "/site",
		Ignore:      []string{"b.txt", "a.txt", "a.txt", ""},
		Passthrough: []string{"vendor"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/site/a.txt", "/site/b.txt"}, rs.Ignored())
	assert.Equal(t, []string{"/site/vendor"}, rs.PassedThrough())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "ignore", rules.Ignore.String())
	assert.Equal(t, "passthrough", rules.Passthrough.String())
	assert.Equal(t, "default", rules.Default.String())
}
