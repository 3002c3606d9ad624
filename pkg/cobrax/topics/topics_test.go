package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopics() fstest.MapFS {
	return fstest.MapFS{
		"config.md":            {Data: []byte("# Configuration\n\nLayers.")},
		"option-fail-fast.txt": {Data: []byte("Stops after the first failure.")},
		"nested/rules.md":      {Data: []byte("# Rules")},
		"notes.json":           {Data: []byte("{}")},
	}
}

func TestTopicManager_Scan(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testTopics(), Options{})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"config", "option-fail-fast", "rules"}, tm.ListTopics())

		topic, ok := tm.GetTopic("config")
		require.True(t, ok)
		assert.Equal(t, "# Configuration\n\nLayers.", topic.Content)
		assert.Equal(t, "config.md", topic.FilePath)

		_, ok = tm.GetTopic("notes")
		assert.False(t, ok)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := New(testTopics(), Options{Extensions: []string{".json"}})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic_FlagStyle(t *testing.T) {
	tm := New(testTopics(), Options{})
	require.NoError(t, tm.Scan())

	for _, name := range []string{"--fail-fast", "-fail-fast", "fail-fast", "option-fail-fast"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-fail-fast", topic.Name)
	}
}

func TestTopicManager_WriteList(t *testing.T) {
	tm := New(testTopics(), Options{})
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteList(&buf, "dodist")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  config\n  rules\n")
	assert.Contains(t, out, "Option topics:\n  --fail-fast\n")
	assert.Contains(t, out, "Use 'dodist help <topic>'")

	empty := New(fstestEmpty(), Options{})
	require.NoError(t, empty.Scan())
	buf.Reset()
	empty.WriteList(&buf, "dodist")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func fstestEmpty() fstest.MapFS {
	return fstest.MapFS{}
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "dodist", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "build", Short: "Build the output tree", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testTopics(), Options{})
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Equal(t, "# Configuration\n\nLayers.", run("help", "config"))
	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.True(t, strings.Contains(run("help", "build"), "Build the output tree"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Title\n\nSome *body* text.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
