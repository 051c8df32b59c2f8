// Package teams provides Microsoft Teams team and channel operations via the
// Microsoft Graph REST API.
package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ekipalen/microsoft-teams-actions/internal/graph"
)

// Compile-time interface check.
var _ TeamManager = (*GraphTeamManager)(nil)

// GraphTeamManager implements TeamManager using a Microsoft Graph client.
type GraphTeamManager struct {
	client graph.Client
}

// NewGraphTeamManager returns a new GraphTeamManager backed by the provided
// Graph client.
func NewGraphTeamManager(client graph.Client) *GraphTeamManager {
	if client == nil {
		panic("graph client must not be nil")
	}
	return &GraphTeamManager{client: client}
}

// parseObject decodes a Graph response body into a generic JSON object.
func parseObject(body []byte) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return result, nil
}

// JoinedTeams retrieves every team the requesting user has joined.
func (m *GraphTeamManager) JoinedTeams(ctx context.Context) (map[string]any, error) {
	resp, err := m.client.Get(ctx, "/me/joinedTeams")
	if err != nil {
		return nil, fmt.Errorf("failed to get joined teams: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to get joined teams: %w", err)
	}
	return parseObject(resp.Body)
}

// SearchByName looks up Teams-provisioned groups whose display name equals
// the requested team name.
func (m *GraphTeamManager) SearchByName(ctx context.Context, req TeamSearchRequest) (map[string]any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := fmt.Sprintf(
		"displayName eq '%s' and resourceProvisioningOptions/Any(x:x eq 'Team')",
		graph.EscapeOData(req.TeamName),
	)
	query := url.Values{"$filter": {filter}}

	resp, err := m.client.Get(ctx, "/groups?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to search for team: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to search for team: %w", err)
	}
	return parseObject(resp.Body)
}

// Members retrieves the members of the given team.
func (m *GraphTeamManager) Members(ctx context.Context, teamID string) (map[string]any, error) {
	if teamID == "" {
		return nil, fmt.Errorf("the team_id must be provided")
	}

	resp, err := m.client.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/members")
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	return parseObject(resp.Body)
}

// Channels retrieves the channels of the given team.
func (m *GraphTeamManager) Channels(ctx context.Context, teamID string) (map[string]any, error) {
	if teamID == "" {
		return nil, fmt.Errorf("the team_id must be provided")
	}

	resp, err := m.client.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/channels")
	if err != nil {
		return nil, fmt.Errorf("failed to get team channels: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to get team channels: %w", err)
	}
	return parseObject(resp.Body)
}

// messagePayload is the Graph request body for posting a message.
type messagePayload struct {
	Body messageBody `json:"body"`
}

type messageBody struct {
	Content string `json:"content"`
}

// PostChannelMessage posts a message to a channel in a team.
func (m *GraphTeamManager) PostChannelMessage(ctx context.Context, teamID, channelID, message string) (map[string]any, error) {
	if teamID == "" || channelID == "" || message == "" {
		return nil, fmt.Errorf("the team_id, channel_id, and message must be provided")
	}

	path := fmt.Sprintf("/teams/%s/channels/%s/messages",
		url.PathEscape(teamID), url.PathEscape(channelID))
	payload := messagePayload{Body: messageBody{Content: message}}

	resp, err := m.client.Post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to post channel message: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to post channel message: %w", err)
	}
	return parseObject(resp.Body)
}

// createTeamPayload is the Graph request body for creating a team from the
// standard template. The template bind URL is an identifier interpreted by
// Graph, not a routed URL, so it always uses the canonical base.
type createTeamPayload struct {
	Template    string `json:"template@odata.bind"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

// Placeholder results substituted when team creation succeeds but Graph
// answers with an empty or non-JSON body (creation is asynchronous and a 202
// often carries no payload).
const (
	msgTeamCreatedNoDetails = "Team created successfully, no additional details provided."
	msgTeamCreatedNoJSON    = "Team created successfully, but no JSON response returned."
)

// Create provisions a new team from the standard template. Graph accepts the
// request with 202 and provisions asynchronously, so an empty success body is
// not an error.
func (m *GraphTeamManager) Create(ctx context.Context, details TeamDetails) (map[string]any, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	payload := createTeamPayload{
		Template:    graph.DefaultBaseURL + "/teamsTemplates('standard')",
		DisplayName: details.DisplayName,
		Description: details.Description,
		Visibility:  details.Visibility,
	}

	resp, err := m.client.Post(ctx, "/teams", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := graph.CheckStatus(resp, http.StatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return map[string]any{"message": msgTeamCreatedNoDetails}, nil
	}
	result, err := parseObject(resp.Body)
	if err != nil {
		return map[string]any{"message": msgTeamCreatedNoJSON}, nil
	}
	if len(result) == 0 {
		return map[string]any{"message": msgTeamCreatedNoDetails}, nil
	}
	return result, nil
}
