// Package users provides Microsoft 365 user lookup via the Microsoft Graph
// REST API.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ekipalen/microsoft-teams-actions/internal/graph"
)

// Compile-time interface check.
var _ UserManager = (*GraphUserManager)(nil)

// GraphUserManager implements UserManager using a Microsoft Graph client.
type GraphUserManager struct {
	client graph.Client
}

// NewGraphUserManager returns a new GraphUserManager backed by the provided
// Graph client.
func NewGraphUserManager(client graph.Client) *GraphUserManager {
	if client == nil {
		panic("graph client must not be nil")
	}
	return &GraphUserManager{client: client}
}

// Search looks up users matching the given criteria. The requesting user
// (from /me) is always the first element of the result, so callers creating
// chats have their own id at hand.
func (m *GraphUserManager) Search(ctx context.Context, search UserSearch) ([]map[string]any, error) {
	if err := search.Validate(); err != nil {
		return nil, err
	}

	me, err := m.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	results := []map[string]any{me}

	var resp *graph.Response
	if search.Email != "" {
		resp, err = m.client.Get(ctx, "/users/"+url.PathEscape(search.Email))
	} else {
		query := url.Values{"$filter": {nameFilter(search)}}
		resp, err = m.client.Get(ctx, "/users?"+query.Encode())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search for user: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to search for user: %w", err)
	}

	matches, err := parseMatches(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to search for user: %w", err)
	}
	return append(results, matches...), nil
}

// currentUser fetches the requesting user's profile from /me.
func (m *GraphUserManager) currentUser(ctx context.Context) (map[string]any, error) {
	resp, err := m.client.Get(ctx, "/me")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve current user details: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to retrieve current user details: %w", err)
	}

	var me map[string]any
	if err := json.Unmarshal(resp.Body, &me); err != nil {
		return nil, fmt.Errorf("failed to retrieve current user details: parse response: %w", err)
	}
	return me, nil
}

// nameFilter assembles the OData filter for a name search. First and last
// name predicates are combined with a logical AND when both are given.
func nameFilter(search UserSearch) string {
	var predicates []string
	if search.FirstName != "" {
		predicates = append(predicates,
			fmt.Sprintf("startswith(givenName,'%s')", graph.EscapeOData(search.FirstName)))
	}
	if search.LastName != "" {
		predicates = append(predicates,
			fmt.Sprintf("startswith(surname,'%s')", graph.EscapeOData(search.LastName)))
	}
	return strings.Join(predicates, " and ")
}

// parseMatches extracts user objects from a search response. List endpoints
// wrap matches in a "value" array; the by-email endpoint returns the single
// user object bare.
func parseMatches(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Value []map[string]any `json:"value"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Value != nil {
		return envelope.Value, nil
	}

	var single map[string]any
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(single) == 0 {
		return nil, nil
	}
	return []map[string]any{single}, nil
}
