package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("resolves every candidate by its own ID", func(t *testing.T) {
		candidates := []Entity{
			{ID: uuid.NewString(), Name: "API v1"},
			{ID: uuid.NewString(), Name: "API v2"},
			{ID: uuid.NewString(), Name: "Internal Tools"},
		}

		for _, c := range candidates {
			res, err := Resolve(c.ID, candidates)
			require.NoError(t, err)
			assert.Equal(t, Found, res.Outcome)
			assert.Equal(t, c, res.Entity)
		}
	})

	t.Run("ID match is case-sensitive", func(t *testing.T) {
		candidates := []Entity{{ID: "Abc-123", Name: "Staging"}}

		res, err := Resolve("abc-123", candidates)
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.Outcome)
	})

	t.Run("exact name match is case-insensitive", func(t *testing.T) {
		candidates := []Entity{
			{ID: "w1", Name: "Staging"},
			{ID: "w2", Name: "Production"},
		}

		res, err := Resolve("STAGING", candidates)
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, "w1", res.Entity.ID)
	})

	t.Run("exact name beats substring matches elsewhere", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API"},
			{ID: "c2", Name: "API v1"},
			{ID: "c3", Name: "My API"},
		}

		res, err := Resolve("api", candidates)
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, "c1", res.Entity.ID)
	})

	t.Run("unique substring match resolves", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "Payments Service"},
			{ID: "c2", Name: "User Service"},
		}

		res, err := Resolve("paym", candidates)
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, "c1", res.Entity.ID)
	})

	t.Run("multiple substring matches are ambiguous in supplied order", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API v1"},
			{ID: "c2", Name: "My API"},
		}

		res, err := Resolve("api", candidates)
		require.NoError(t, err)
		assert.Equal(t, Ambiguous, res.Outcome)
		assert.Equal(t, candidates, res.Matches)
	})

	t.Run("multiple exact name matches are ambiguous", func(t *testing.T) {
		candidates := []Entity{
			{ID: "e1", Name: "default"},
			{ID: "e2", Name: "Default"},
			{ID: "e3", Name: "default (copy)"},
		}

		res, err := Resolve("default", candidates)
		require.NoError(t, err)
		assert.Equal(t, Ambiguous, res.Outcome)
		require.Len(t, res.Matches, 2)
		assert.Equal(t, "e1", res.Matches[0].ID)
		assert.Equal(t, "e2", res.Matches[1].ID)
	})

	t.Run("no match at any rule is NotFound", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API v1"},
			{ID: "c2", Name: "My API"},
		}

		res, err := Resolve("nonexistent-token", candidates)
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.Outcome)
	})

	t.Run("empty candidate set is NotFound", func(t *testing.T) {
		res, err := Resolve("anything", nil)
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.Outcome)
	})

	t.Run("duplicated row surfaces as ambiguous", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API v1"},
			{ID: "c1", Name: "API v1"},
		}

		res, err := Resolve("c1", candidates)
		require.NoError(t, err)
		assert.Equal(t, Ambiguous, res.Outcome)
		assert.Len(t, res.Matches, 2)
	})

	t.Run("one ID under two names is a contract breach", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API v1"},
			{ID: "c1", Name: "API v2"},
		}

		_, err := Resolve("c1", candidates)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conflicting names")
	})

	t.Run("entities without IDs never collide", func(t *testing.T) {
		candidates := []Entity{
			{Name: "Create User"},
			{Name: "Delete User"},
		}

		res, err := Resolve("create user", candidates)
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, "Create User", res.Entity.Name)
	})

	t.Run("idempotent across calls", func(t *testing.T) {
		candidates := []Entity{
			{ID: "c1", Name: "API v1"},
			{ID: "c2", Name: "My API"},
		}

		first, err := Resolve("api", candidates)
		require.NoError(t, err)
		second, err := Resolve("api", candidates)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
