package postman

import (
	"encoding/json"
)

// User is the identity behind an API key, as returned by /me.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	TeamName   string `json:"teamName"`
	TeamDomain string `json:"teamDomain"`
}

// Workspace is one entry of the /workspaces listing.
type Workspace struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Visibility string `json:"visibility,omitempty"`
}

// WorkspaceDetail is the full record returned by /workspaces/{id}.
type WorkspaceDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
}

// CollectionSummary is one entry of the /collections listing. UID is the
// owner-qualified identifier the API expects in /collections/{uid} paths.
type CollectionSummary struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Owner     string `json:"owner,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Collection is the full collection document from /collections/{uid}.
type Collection struct {
	Info  CollectionInfo `json:"info"`
	Items []Item         `json:"item"`
}

// CollectionInfo carries collection-level metadata.
type CollectionInfo struct {
	ID          string `json:"_postman_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Item is one node of a collection's tree: a folder when Items is
// non-empty (or Request is nil), otherwise a request.
type Item struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name"`
	Items   []Item       `json:"item,omitempty"`
	Request *RequestSpec `json:"request,omitempty"`
}

// IsFolder reports whether this item groups other items rather than
// describing a request.
func (it Item) IsFolder() bool {
	return it.Request == nil
}

// RequestSpec describes a stored request.
type RequestSpec struct {
	Method  string `json:"method"`
	URL     URL    `json:"url"`
	Headers []KV   `json:"header,omitempty"`
	Body    *Body  `json:"body,omitempty"`
}

// URL is a request URL. The API serializes it either as a bare string or
// as an object with raw/query/variable parts; both decode into this type.
type URL struct {
	Raw       string `json:"raw"`
	Query     []KV   `json:"query,omitempty"`
	Variables []KV   `json:"variable,omitempty"`
}

// UnmarshalJSON accepts both the string and the object encoding.
func (u *URL) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &u.Raw)
	}
	type plain URL
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = URL(p)
	return nil
}

// KV is an ordered key/value pair (header, query param, path variable,
// environment value).
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Body is a request payload. Only the raw mode carries content inline.
type Body struct {
	Mode string `json:"mode,omitempty"`
	Raw  string `json:"raw,omitempty"`
}

// Environment is one entry of the /environments listing.
type Environment struct {
	ID    string `json:"id"`
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
}

// EnvironmentDetail is the full record from /environments/{id},
// including its variables in declaration order.
type EnvironmentDetail struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []EnvVar `json:"values"`
}

// EnvVar is a single environment variable.
type EnvVar struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// FlatRequest is one request lifted out of a collection's item tree.
// Folder is the slash-joined path of enclosing folders, empty for
// requests at the collection root.
type FlatRequest struct {
	ID     string       `json:"id,omitempty"`
	Name   string       `json:"name"`
	Folder string       `json:"folder,omitempty"`
	Method string       `json:"method"`
	URL    string       `json:"url"`
	Spec   *RequestSpec `json:"request,omitempty"`
}

// Requests flattens the collection's item tree depth-first, preserving
// document order.
func (c *Collection) Requests() []FlatRequest {
	var out []FlatRequest
	flattenItems(c.Items, "", &out)
	return out
}

func flattenItems(items []Item, folder string, out *[]FlatRequest) {
	for _, it := range items {
		if it.IsFolder() {
			sub := it.Name
			if folder != "" {
				sub = folder + " / " + it.Name
			}
			flattenItems(it.Items, sub, out)
			continue
		}
		*out = append(*out, FlatRequest{
			ID:     it.ID,
			Name:   it.Name,
			Folder: folder,
			Method: it.Request.Method,
			URL:    it.Request.URL.Raw,
			Spec:   it.Request,
		})
	}
}
