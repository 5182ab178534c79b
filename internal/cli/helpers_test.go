package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/postman/postmantest"
)

// writeTestConfig creates a config file with a default "work" profile
// holding the fake server's API key, optionally scoped to a workspace.
func writeTestConfig(t *testing.T, workspace string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	store := config.NewStore(path)
	_, err := store.Add("work", postmantest.APIKey, "Work account", true)
	require.NoError(t, err)
	if workspace != "" {
		_, err = store.SetWorkspace("work", workspace)
		require.NoError(t, err)
	}
	return path
}

// runCLI executes a full pmctl invocation against the fake server and
// returns everything written to stdout and stderr.
func runCLI(t *testing.T, apiURL, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"--config", configPath, "--api-url", apiURL}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// newSeededServer starts the canned fake API and registers cleanup.
func newSeededServer(t *testing.T) *postmantest.Server {
	t.Helper()
	server := postmantest.NewSeeded()
	t.Cleanup(server.Close)
	return server
}
