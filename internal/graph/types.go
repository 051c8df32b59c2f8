// Package graph provides a Microsoft Graph REST client shared by the
// Teams action managers.
package graph

import "context"

// DefaultBaseURL is the production Microsoft Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Response carries the status code and raw body of a completed Graph request.
// The body is kept as raw bytes so callers decide how (and whether) to parse
// it; error paths surface it verbatim.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client defines the interface for issuing Microsoft Graph REST requests.
// Paths are relative to the versioned base URL and must start with "/",
// e.g. "/me/joinedTeams".
type Client interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
}
