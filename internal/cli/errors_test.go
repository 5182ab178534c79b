package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStatusServer answers every request with one canned API error.
func newStatusServer(t *testing.T, status int, name, message string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"name":%q,"message":%q}}`, name, message)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAPIErrorHints(t *testing.T) {
	configPath := writeTestConfig(t, "")

	t.Run("auth failure points at the profile key", func(t *testing.T) {
		server := newSeededServer(t)
		badPath := writeTestConfig(t, "")
		_, err := runCLI(t, server.URL, badPath, "profile", "add", "bad", "-k", "PMAK-wrong", "-d")
		require.NoError(t, err)

		_, err = runCLI(t, server.URL, badPath, "workspaces", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid API Key")
		assert.Contains(t, err.Error(), `"pmctl profile add NAME --api-key KEY"`)
	})

	t.Run("not found names the likely cause", func(t *testing.T) {
		server := newStatusServer(t, http.StatusNotFound, "instanceNotFoundError", "The requested resource was not found.")

		_, err := runCLI(t, server.URL, configPath, "workspaces", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
		assert.Contains(t, err.Error(), "does not exist or this key cannot see it")
	})

	t.Run("rate limit suggests retrying", func(t *testing.T) {
		server := newStatusServer(t, http.StatusTooManyRequests, "rateLimitError", "Rate limit exceeded.")

		_, err := runCLI(t, server.URL, configPath, "workspaces", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited; wait a moment and retry")
	})

	t.Run("server error suggests retrying", func(t *testing.T) {
		server := newStatusServer(t, http.StatusInternalServerError, "serverError", "Something went wrong.")

		_, err := runCLI(t, server.URL, configPath, "workspaces", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error; retry shortly")
	})

	t.Run("local errors pass through unhinted", func(t *testing.T) {
		server := newSeededServer(t)

		_, err := runCLI(t, server.URL, configPath, "workspaces", "show", "no-such-workspace")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no workspace matches")
		assert.NotContains(t, err.Error(), "retry")
	})
}
