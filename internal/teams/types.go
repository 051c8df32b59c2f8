// Package teams provides Microsoft Teams team and channel operations via the
// Microsoft Graph REST API.
package teams

import (
	"context"
	"fmt"
)

// TeamDetails describes a team to be created.
type TeamDetails struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	// Visibility is "public" or "private"; empty defaults to "private".
	Visibility string `json:"visibility"`
}

// Validate checks that DisplayName is present and fills in the default
// visibility. It mutates the receiver only to apply the default.
func (d *TeamDetails) Validate() error {
	if d.DisplayName == "" {
		return fmt.Errorf("the display_name must be provided")
	}
	if d.Visibility == "" {
		d.Visibility = "private"
	}
	return nil
}

// TeamSearchRequest carries the name used to look up a team.
type TeamSearchRequest struct {
	TeamName string `json:"team_name"`
}

// Validate checks that TeamName is present.
func (r TeamSearchRequest) Validate() error {
	if r.TeamName == "" {
		return fmt.Errorf("the team_name must be provided")
	}
	return nil
}

// TeamManager defines the interface for team and channel operations. Results
// are the parsed Graph response bodies, returned as generic JSON objects so
// callers see exactly what Graph answered.
type TeamManager interface {
	JoinedTeams(ctx context.Context) (map[string]any, error)
	SearchByName(ctx context.Context, req TeamSearchRequest) (map[string]any, error)
	Members(ctx context.Context, teamID string) (map[string]any, error)
	Channels(ctx context.Context, teamID string) (map[string]any, error)
	PostChannelMessage(ctx context.Context, teamID, channelID, message string) (map[string]any, error)
	Create(ctx context.Context, details TeamDetails) (map[string]any, error)
}
