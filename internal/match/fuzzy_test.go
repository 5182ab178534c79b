package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzy(t *testing.T) {
	t.Run("ordered subsequence matches across gaps", func(t *testing.T) {
		assert.True(t, Fuzzy("getCmp", "get Campaign").Matched)
		assert.True(t, Fuzzy("usr", "List Users").Matched)
		assert.True(t, Fuzzy("lstusr", "List Users").Matched)
	})

	t.Run("out-of-order or missing characters do not match", func(t *testing.T) {
		assert.False(t, Fuzzy("xyz", "get Campaign").Matched)
		assert.False(t, Fuzzy("tmc", "get Campaign").Matched)
		assert.False(t, Fuzzy("users", "user").Matched)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		assert.True(t, Fuzzy("GETCMP", "get campaign").Matched)
		assert.True(t, Fuzzy("getcmp", "GET CAMPAIGN").Matched)
	})

	t.Run("empty query matches everything at the floor", func(t *testing.T) {
		for _, label := range []string{"", "x", "get Campaign", "  "} {
			m := Fuzzy("", label)
			assert.True(t, m.Matched, "label %q", label)
			assert.Equal(t, emptyScore, m.Score)
		}
	})

	t.Run("exact equality outranks any partial match", func(t *testing.T) {
		exact := Fuzzy("users", "Users")
		prefix := Fuzzy("users", "Users and Teams")
		scattered := Fuzzy("users", "Update Sort Orders")

		assert.Greater(t, exact.Score, prefix.Score)
		assert.Greater(t, prefix.Score, scattered.Score)
	})

	t.Run("contiguous prefix outranks scattered match", func(t *testing.T) {
		tight := Fuzzy("get", "get Campaign")
		loose := Fuzzy("get", "global exchange today")

		require.True(t, tight.Matched)
		require.True(t, loose.Matched)
		assert.Greater(t, tight.Score, loose.Score)
	})

	t.Run("earlier match outranks later match", func(t *testing.T) {
		early := Fuzzy("user", "User Detail")
		late := Fuzzy("user", "Current User")

		assert.Greater(t, early.Score, late.Score)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		assert.Equal(t, Fuzzy("getCmp", "get Campaign"), Fuzzy("getCmp", "get Campaign"))
	})
}

func TestFuzzyAll(t *testing.T) {
	labels := func(s string) string { return s }

	t.Run("filters out non-matches and sorts by score", func(t *testing.T) {
		items := []string{"Create User", "List Users", "Delete Order"}

		ranked := FuzzyAll("usr", items, labels)

		require.Len(t, ranked, 2)
		got := []string{ranked[0].Item, ranked[1].Item}
		assert.NotContains(t, got, "Delete Order")
		assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)

		again := FuzzyAll("usr", items, labels)
		assert.Equal(t, ranked, again)
	})

	t.Run("empty query keeps every item in original order", func(t *testing.T) {
		items := []string{"b", "a", "c"}

		ranked := FuzzyAll("", items, labels)

		require.Len(t, ranked, 3)
		assert.Equal(t, "b", ranked[0].Item)
		assert.Equal(t, "a", ranked[1].Item)
		assert.Equal(t, "c", ranked[2].Item)
	})

	t.Run("ties keep candidate order", func(t *testing.T) {
		items := []string{"user one", "user two"}

		ranked := FuzzyAll("user", items, labels)

		require.Len(t, ranked, 2)
		assert.Equal(t, "user one", ranked[0].Item)
		assert.Equal(t, "user two", ranked[1].Item)
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		ranked := FuzzyAll("zzz", []string{"alpha", "beta"}, labels)
		assert.Empty(t, ranked)
	})
}
