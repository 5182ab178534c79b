package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	t.Run("registers all command groups", func(t *testing.T) {
		cmd := NewRootCommand("1.2.3")

		var names []string
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "profile")
		assert.Contains(t, names, "workspaces")
		assert.Contains(t, names, "collections")
		assert.Contains(t, names, "environments")
		assert.Contains(t, names, "requests")
	})

	t.Run("reports its version", func(t *testing.T) {
		cmd := NewRootCommand("1.2.3")
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--version"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "1.2.3")
	})

	t.Run("missing config is a setup error, not a crash", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope", "config.yaml")
		out, err := runCLI(t, "http://127.0.0.1:0", missing, "workspaces", "list")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no profiles configured")
		assert.Contains(t, err.Error(), `run "pmctl profile add"`)
		assert.Empty(t, out)
	})

	t.Run("unknown profile lists the available ones", func(t *testing.T) {
		server := newSeededServer(t)
		configPath := writeTestConfig(t, "")

		_, err := runCLI(t, server.URL, configPath, "workspaces", "list", "-p", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `profile "nope" not found`)
		assert.Contains(t, err.Error(), "work")
	})
}
