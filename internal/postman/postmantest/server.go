// Package postmantest provides an in-memory fake of the Postman API for
// tests: canned workspaces, collections, and environments served over
// httptest with API-key enforcement.
package postmantest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/artpar/pmctl/internal/postman"
)

// APIKey is the key the fake server accepts.
const APIKey = "PMAK-test-0123456789abcdef0123456789abcdef-0123456789abcdef"

// SeededCollection pairs a listing summary with its full document and the
// workspace it belongs to.
type SeededCollection struct {
	WorkspaceID string
	Summary     postman.CollectionSummary
	Detail      postman.Collection
}

// SeededEnvironment pairs a listing summary with its full record and the
// workspace it belongs to.
type SeededEnvironment struct {
	WorkspaceID string
	Summary     postman.Environment
	Detail      postman.EnvironmentDetail
}

// Server is a fake Postman API. Mutate the exported fields before issuing
// requests; handlers read them on every call.
type Server struct {
	*httptest.Server

	User         postman.User
	Workspaces   []postman.WorkspaceDetail
	Collections  []SeededCollection
	Environments []SeededEnvironment
}

// New starts an empty fake server. The caller owns Close.
func New() *Server {
	s := &Server{}

	mux := http.NewServeMux()
	mux.HandleFunc("/me", s.withAuth(s.handleMe))
	mux.HandleFunc("/workspaces", s.withAuth(s.handleWorkspaces))
	mux.HandleFunc("/workspaces/", s.withAuth(s.handleWorkspace))
	mux.HandleFunc("/collections", s.withAuth(s.handleCollections))
	mux.HandleFunc("/collections/", s.withAuth(s.handleCollection))
	mux.HandleFunc("/environments", s.withAuth(s.handleEnvironments))
	mux.HandleFunc("/environments/", s.withAuth(s.handleEnvironment))

	s.Server = httptest.NewServer(mux)
	return s
}

// NewSeeded starts a fake server with a small realistic dataset: two
// workspaces, two collections (one with nested folders), and two
// environments.
func NewSeeded() *Server {
	s := New()

	s.User = postman.User{
		ID:         12345678,
		Username:   "casey",
		Email:      "casey@example.com",
		FullName:   "Casey Doe",
		TeamName:   "Example Team",
		TeamDomain: "example",
	}
	s.Workspaces = []postman.WorkspaceDetail{
		{ID: "ws-team", Name: "Team Workspace", Type: "team", Description: "Shared APIs"},
		{ID: "ws-personal", Name: "Personal Sandbox", Type: "personal"},
	}
	s.Collections = []SeededCollection{
		{
			WorkspaceID: "ws-team",
			Summary: postman.CollectionSummary{
				ID:        "col-orders",
				UID:       "12345678-col-orders",
				Name:      "Orders API",
				UpdatedAt: "2026-03-14T09:30:00.000Z",
			},
			Detail: postman.Collection{
				Info: postman.CollectionInfo{ID: "col-orders", Name: "Orders API"},
				Items: []postman.Item{
					{
						Name: "Orders",
						Items: []postman.Item{
							{
								ID:   "req-list-orders",
								Name: "List Orders",
								Request: &postman.RequestSpec{
									Method: "GET",
									URL: postman.URL{
										Raw:   "https://api.example.com/orders?limit=20",
										Query: []postman.KV{{Key: "limit", Value: "20"}},
									},
									Headers: []postman.KV{{Key: "Accept", Value: "application/json"}},
								},
							},
							{
								ID:   "req-get-order",
								Name: "Get Order",
								Request: &postman.RequestSpec{
									Method: "GET",
									URL: postman.URL{
										Raw:       "https://api.example.com/orders/:id",
										Variables: []postman.KV{{Key: "id", Value: "1001"}},
									},
								},
							},
						},
					},
					{
						ID:   "req-create-user",
						Name: "Create User",
						Request: &postman.RequestSpec{
							Method:  "POST",
							URL:     postman.URL{Raw: "https://api.example.com/users"},
							Headers: []postman.KV{{Key: "Content-Type", Value: "application/json"}},
							Body:    &postman.Body{Mode: "raw", Raw: `{"name":"test"}`},
						},
					},
					{
						ID:   "req-list-users",
						Name: "List Users",
						Request: &postman.RequestSpec{
							Method: "GET",
							URL:    postman.URL{Raw: "https://api.example.com/users"},
						},
					},
				},
			},
		},
		{
			WorkspaceID: "ws-personal",
			Summary: postman.CollectionSummary{
				ID:        "col-scratch",
				UID:       "12345678-col-scratch",
				Name:      "Scratchpad",
				UpdatedAt: "2026-01-02T16:45:00.000Z",
			},
			Detail: postman.Collection{
				Info: postman.CollectionInfo{ID: "col-scratch", Name: "Scratchpad"},
				Items: []postman.Item{
					{
						ID:   "req-ping",
						Name: "Ping",
						Request: &postman.RequestSpec{
							Method: "GET",
							URL:    postman.URL{Raw: "https://httpbin.org/get"},
						},
					},
				},
			},
		},
	}
	s.Environments = []SeededEnvironment{
		{
			WorkspaceID: "ws-team",
			Summary:     postman.Environment{ID: "env-staging", UID: "12345678-env-staging", Name: "Staging"},
			Detail: postman.EnvironmentDetail{
				ID:   "env-staging",
				Name: "Staging",
				Values: []postman.EnvVar{
					{Key: "base_url", Value: "https://staging.example.com", Type: "default"},
					{Key: "api_token", Value: "tok-secret-value", Type: "secret"},
				},
			},
		},
		{
			WorkspaceID: "ws-team",
			Summary:     postman.Environment{ID: "env-prod", UID: "12345678-env-prod", Name: "Production"},
			Detail: postman.EnvironmentDetail{
				ID:   "env-prod",
				Name: "Production",
				Values: []postman.EnvVar{
					{Key: "base_url", Value: "https://api.example.com", Type: "default"},
				},
			},
		},
	}

	return s
}

func (s *Server) withAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != APIKey {
			writeError(w, http.StatusUnauthorized, "AuthenticationError", "Invalid API Key.")
			return
		}
		h(w, r)
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"user": s.User})
}

func (s *Server) handleWorkspaces(w http.ResponseWriter, r *http.Request) {
	list := make([]postman.Workspace, 0, len(s.Workspaces))
	for _, ws := range s.Workspaces {
		list = append(list, postman.Workspace{ID: ws.ID, Name: ws.Name, Type: ws.Type, Visibility: ws.Visibility})
	}
	writeJSON(w, map[string]any{"workspaces": list})
}

func (s *Server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/workspaces/")
	for _, ws := range s.Workspaces {
		if ws.ID == id {
			writeJSON(w, map[string]any{"workspace": ws})
			return
		}
	}
	writeError(w, http.StatusNotFound, "instanceNotFoundError", "We could not find the workspace you are looking for.")
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("workspace")
	list := make([]postman.CollectionSummary, 0, len(s.Collections))
	for _, c := range s.Collections {
		if scope != "" && c.WorkspaceID != scope {
			continue
		}
		list = append(list, c.Summary)
	}
	writeJSON(w, map[string]any{"collections": list})
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimPrefix(r.URL.Path, "/collections/")
	for _, c := range s.Collections {
		if c.Summary.UID == uid {
			writeJSON(w, map[string]any{"collection": c.Detail})
			return
		}
	}
	writeError(w, http.StatusNotFound, "instanceNotFoundError", "We could not find the collection you are looking for.")
}

func (s *Server) handleEnvironments(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("workspace")
	list := make([]postman.Environment, 0, len(s.Environments))
	for _, e := range s.Environments {
		if scope != "" && e.WorkspaceID != scope {
			continue
		}
		list = append(list, e.Summary)
	}
	writeJSON(w, map[string]any{"environments": list})
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/environments/")
	for _, e := range s.Environments {
		if e.Summary.ID == id || e.Summary.UID == id {
			writeJSON(w, map[string]any{"environment": e.Detail})
			return
		}
	}
	writeError(w, http.StatusNotFound, "instanceNotFoundError", "We could not find the environment you are looking for.")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, name, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"name": name, "message": message},
	})
}
