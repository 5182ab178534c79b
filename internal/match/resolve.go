// Package match implements the lookup logic behind name-or-ID arguments
// and --search flags: priority-ordered resolution of a user token against
// a candidate set, and fuzzy subsequence filtering with ranked scores.
package match

import (
	"fmt"
	"strings"
)

// Entity is a minimal view of anything resolvable by name or ID:
// a workspace, collection, environment, or request.
type Entity struct {
	ID   string
	Name string
}

// Outcome classifies the result of a resolution attempt.
type Outcome int

const (
	// Found means exactly one candidate matched.
	Found Outcome = iota
	// NotFound means no candidate matched any rule.
	NotFound
	// Ambiguous means more than one candidate matched at the deciding rule.
	Ambiguous
)

// Resolution is the result of resolving a token against a candidate set.
// Entity is set when Outcome is Found; Matches carries all contenders,
// in candidate order, when Outcome is Ambiguous.
type Resolution struct {
	Outcome Outcome
	Entity  Entity
	Matches []Entity
}

// Resolve maps a user-supplied token to a unique candidate. Rules apply in
// strict priority order, stopping at the first that yields any match:
//
//  1. exact ID match (case-sensitive; IDs are opaque)
//  2. exact name match, case-insensitive
//  3. substring name match, case-insensitive
//
// A rule yielding exactly one candidate resolves to Found; several resolve
// to Ambiguous. NotFound is returned only when all three rules come up
// empty. Resolve is pure: it never touches the network and two calls with
// identical inputs return identical results.
//
// The returned error is non-nil only when the candidate set itself is
// inconsistent (one ID appearing under two names), which indicates a bug
// in whatever produced the listing rather than bad user input.
func Resolve(token string, candidates []Entity) (Resolution, error) {
	seen := make(map[string]string, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		if name, ok := seen[c.ID]; ok && name != c.Name {
			return Resolution{}, fmt.Errorf("candidate id %q appears with conflicting names %q and %q", c.ID, name, c.Name)
		}
		seen[c.ID] = c.Name
	}

	var byID []Entity
	for _, c := range candidates {
		if c.ID != "" && c.ID == token {
			byID = append(byID, c)
		}
	}
	if len(byID) == 1 {
		return Resolution{Outcome: Found, Entity: byID[0]}, nil
	}
	if len(byID) > 1 {
		// The same row supplied twice. Surface it rather than guess.
		return Resolution{Outcome: Ambiguous, Matches: byID}, nil
	}

	folded := fold(token)

	var exact []Entity
	for _, c := range candidates {
		if fold(c.Name) == folded {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return Resolution{Outcome: Found, Entity: exact[0]}, nil
	}
	if len(exact) > 1 {
		return Resolution{Outcome: Ambiguous, Matches: exact}, nil
	}

	var partial []Entity
	for _, c := range candidates {
		if strings.Contains(fold(c.Name), folded) {
			partial = append(partial, c)
		}
	}
	switch len(partial) {
	case 0:
		return Resolution{Outcome: NotFound}, nil
	case 1:
		return Resolution{Outcome: Found, Entity: partial[0]}, nil
	default:
		return Resolution{Outcome: Ambiguous, Matches: partial}, nil
	}
}

// fold normalizes a string for case-insensitive comparison. Every
// comparison in this package goes through it so name matching and fuzzy
// matching cannot drift apart.
func fold(s string) string {
	return strings.ToLower(s)
}
