package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/match"
	"github.com/artpar/pmctl/internal/postman"
)

// foldLess compares strings case-insensitively for listing sort order.
func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// resolveEntity runs the shared name-or-ID lookup and turns NotFound and
// Ambiguous outcomes into user-facing errors. Ambiguity lists every
// contender so the user can pick an ID; it is never guessed through.
func resolveEntity(kind, token string, candidates []match.Entity) (match.Entity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return match.Entity{}, fmt.Errorf("empty %s name or ID", kind)
	}

	res, err := match.Resolve(token, candidates)
	if err != nil {
		return match.Entity{}, fmt.Errorf("inconsistent %s listing from the API: %w", kind, err)
	}

	switch res.Outcome {
	case match.Found:
		return res.Entity, nil
	case match.Ambiguous:
		var b strings.Builder
		fmt.Fprintf(&b, "%q matches %d %ss:\n", token, len(res.Matches), kind)
		for _, m := range res.Matches {
			fmt.Fprintf(&b, "  %s  (%s)\n", m.Name, m.ID)
		}
		b.WriteString("use the ID to disambiguate")
		return match.Entity{}, errors.New(b.String())
	default:
		return match.Entity{}, fmt.Errorf("no %s matches %q", kind, token)
	}
}

// resolveScope decides which workspace a listing is scoped to: an explicit
// --workspace value (name or ID, resolved remotely), else the profile's
// default workspace, else unscoped. --all forces unscoped.
func resolveScope(ctx context.Context, client *postman.Client, prof config.Profile, workspace string, all bool) (string, error) {
	if all {
		return "", nil
	}
	if workspace == "" {
		return prof.Workspace, nil
	}
	ent, err := resolveWorkspace(ctx, client, workspace)
	if err != nil {
		return "", err
	}
	return ent.ID, nil
}

// resolveWorkspace resolves a workspace token against the live listing.
func resolveWorkspace(ctx context.Context, client *postman.Client, token string) (match.Entity, error) {
	workspaces, err := client.ListWorkspaces(ctx)
	if err != nil {
		return match.Entity{}, err
	}
	candidates := make([]match.Entity, len(workspaces))
	for i, ws := range workspaces {
		candidates[i] = match.Entity{ID: ws.ID, Name: ws.Name}
	}
	return resolveEntity("workspace", token, candidates)
}

// resolveCollection resolves a collection token against the listing for
// the given workspace scope and returns the matching summary.
func resolveCollection(ctx context.Context, client *postman.Client, token, scope string) (postman.CollectionSummary, error) {
	summaries, err := client.ListCollections(ctx, scope)
	if err != nil {
		return postman.CollectionSummary{}, err
	}
	candidates := make([]match.Entity, len(summaries))
	for i, s := range summaries {
		candidates[i] = match.Entity{ID: s.UID, Name: s.Name}
	}
	ent, err := resolveEntity("collection", token, candidates)
	if err != nil {
		return postman.CollectionSummary{}, err
	}
	for _, s := range summaries {
		if s.UID == ent.ID {
			return s, nil
		}
	}
	return postman.CollectionSummary{}, fmt.Errorf("no collection matches %q", token)
}

// resolveEnvironment resolves an environment token against the listing
// for the given workspace scope.
func resolveEnvironment(ctx context.Context, client *postman.Client, token, scope string) (postman.Environment, error) {
	environments, err := client.ListEnvironments(ctx, scope)
	if err != nil {
		return postman.Environment{}, err
	}
	candidates := make([]match.Entity, len(environments))
	for i, e := range environments {
		candidates[i] = match.Entity{ID: e.ID, Name: e.Name}
	}
	ent, err := resolveEntity("environment", token, candidates)
	if err != nil {
		return postman.Environment{}, err
	}
	for _, e := range environments {
		if e.ID == ent.ID {
			return e, nil
		}
	}
	return postman.Environment{}, fmt.Errorf("no environment matches %q", token)
}
