package match

import (
	"math"
	"sort"
)

// FuzzyMatch reports whether a query matched a label and how well.
// Score orders multiple matches; it is not a pass/fail threshold.
type FuzzyMatch struct {
	Matched bool
	Score   int
}

// emptyScore is the floor: an empty query matches everything but ranks
// below any real match.
const emptyScore = math.MinInt32

// exactBonus lifts a full-label match above every partial one.
const exactBonus = 1 << 16

// Fuzzy reports whether query occurs as an ordered subsequence of label,
// case-insensitively. Gaps are allowed: "getCmp" matches "get Campaign"
// because g, e, t, c, m, p appear in order. An empty query matches every
// label at the floor score.
//
// Scoring prefers tight, early matches: each gap between consecutive
// matched characters costs two points, the first-match index costs one
// point per character skipped, and a label equal to the query (after
// folding) earns a large bonus. The score is deterministic for a given
// (query, label) pair.
func Fuzzy(query, label string) FuzzyMatch {
	q := []rune(fold(query))
	if len(q) == 0 {
		return FuzzyMatch{Matched: true, Score: emptyScore}
	}
	l := []rune(fold(label))

	first := -1
	prev := -1
	gaps := 0
	pos := 0
	for _, qr := range q {
		found := -1
		for i := pos; i < len(l); i++ {
			if l[i] == qr {
				found = i
				break
			}
		}
		if found < 0 {
			return FuzzyMatch{Matched: false, Score: emptyScore}
		}
		if first < 0 {
			first = found
		} else {
			gaps += found - prev - 1
		}
		prev = found
		pos = found + 1
	}

	score := -2*gaps - first
	if len(q) == len(l) && gaps == 0 {
		score += exactBonus
	}
	return FuzzyMatch{Matched: true, Score: score}
}

// Scored pairs an item with its fuzzy match score.
type Scored[T any] struct {
	Item  T
	Score int
}

// FuzzyAll filters items to those whose label fuzzy-matches query, sorted
// by descending score. The sort is stable, so ties keep their original
// order and repeated runs over the same input produce identical output.
func FuzzyAll[T any](query string, items []T, label func(T) string) []Scored[T] {
	var ranked []Scored[T]
	for _, item := range items {
		m := Fuzzy(query, label(item))
		if !m.Matched {
			continue
		}
		ranked = append(ranked, Scored[T]{Item: item, Score: m.Score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
