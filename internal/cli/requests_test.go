package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pmctl/internal/postman"
)

func TestRequestsList(t *testing.T) {
	server := newSeededServer(t)
	configPath := writeTestConfig(t, "")

	t.Run("flattens folders in document order", func(t *testing.T) {
		out, err := runCLI(t, server.URL, configPath, "requests", "list", "orders")
		require.NoError(t, err)

		assert.Contains(t, out, "List Orders")
		assert.Contains(t, out, "Get Order")
		assert.Contains(t, out, "Create User")
		assert.Contains(t, out, "Orders")
		assert.Contains(t, out, "Total: 4 requests")
		assert.Less(t, strings.Index(out, "List Orders"), strings.Index(out, "Create User"))
	})

	t.Run("search keeps only fuzzy matches in score order", func(t *testing.T) {
		out, err := runCLI(t, server.URL, configPath, "requests", "list", "orders", "--search", "usr")
		require.NoError(t, err)

		assert.Contains(t, out, "Create User")
		assert.Contains(t, out, "List Users")
		assert.NotContains(t, out, "Get Order")
		assert.Contains(t, out, "Total: 2 requests")
		// Tighter match ranks first.
		assert.Less(t, strings.Index(out, "List Users"), strings.Index(out, "Create User"))
	})

	t.Run("search ranking is stable across runs", func(t *testing.T) {
		first, err := runCLI(t, server.URL, configPath, "requests", "list", "orders", "--search", "usr")
		require.NoError(t, err)
		second, err := runCLI(t, server.URL, configPath, "requests", "list", "orders", "--search", "usr")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("json output carries the flattened requests", func(t *testing.T) {
		out, err := runCLI(t, server.URL, configPath, "requests", "list", "orders", "--json")
		require.NoError(t, err)

		var flat []postman.FlatRequest
		require.NoError(t, json.Unmarshal([]byte(out), &flat))
		require.Len(t, flat, 4)
		assert.Equal(t, "Orders", flat[0].Folder)
	})
}

func TestRequestsShow(t *testing.T) {
	server := newSeededServer(t)
	configPath := writeTestConfig(t, "")

	t.Run("shows the full request definition", func(t *testing.T) {
		out, err := runCLI(t, server.URL, configPath, "requests", "show", "orders", "list orders")
		require.NoError(t, err)

		assert.Contains(t, out, "List Orders")
		assert.Contains(t, out, "GET")
		assert.Contains(t, out, "https://api.example.com/orders?limit=20")
		assert.Contains(t, out, "Accept: application/json")
		assert.Contains(t, out, "limit: 20")
	})

	t.Run("shows path variables and body", func(t *testing.T) {
		out, err := runCLI(t, server.URL, configPath, "requests", "show", "orders", "req-create-user")
		require.NoError(t, err)

		assert.Contains(t, out, "Create User")
		assert.Contains(t, out, `{"name":"test"}`)
		assert.Contains(t, out, "Content-Type: application/json")

		out, err = runCLI(t, server.URL, configPath, "requests", "show", "orders", "get order")
		require.NoError(t, err)
		assert.Contains(t, out, "id: 1001")
	})

	t.Run("substring lookup follows resolver rules", func(t *testing.T) {
		// "users" is a substring of only "List Users".
		out, err := runCLI(t, server.URL, configPath, "requests", "show", "orders", "users")
		require.NoError(t, err)
		assert.Contains(t, out, "List Users")

		// "user" is a substring of two request names.
		_, err = runCLI(t, server.URL, configPath, "requests", "show", "orders", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Create User")
		assert.Contains(t, err.Error(), "List Users")
	})

	t.Run("unknown request is reported", func(t *testing.T) {
		_, err := runCLI(t, server.URL, configPath, "requests", "show", "orders", "nonexistent-token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no request matches")
	})
}
