// Package teams provides Microsoft Teams team and channel operations via the
// Microsoft Graph REST API.
package teams

import (
	"context"
	"fmt"
	"time"

	"github.com/ekipalen/microsoft-teams-actions/internal/safety"
	"github.com/ekipalen/microsoft-teams-actions/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TeamTools returns the tool registrations for all team and channel
// operations. Team-scoped tools consult teamFilter before any Graph request;
// post_channel_message additionally consults channelFilter.
func TeamTools(
	mgr TeamManager,
	teamFilter *safety.Filter,
	channelFilter *safety.Filter,
	audit *safety.AuditLogger,
) []tools.Registration {
	return []tools.Registration{
		toolGetJoinedTeams(mgr, audit),
		toolSearchTeamByName(mgr, audit),
		toolGetTeamMembers(mgr, teamFilter, audit),
		toolGetTeamChannels(mgr, teamFilter, audit),
		toolPostChannelMessage(mgr, teamFilter, channelFilter, audit),
		toolCreateTeam(mgr, audit),
	}
}

func toolGetJoinedTeams(mgr TeamManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "get_joined_teams"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Get all Microsoft Teams the user has joined, with full details. Requires the Team.ReadBasic.All Graph permission."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		params := map[string]any{}

		result, err := mgr.JoinedTeams(ctx)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolSearchTeamByName(mgr TeamManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "search_team_by_name"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Search Microsoft Teams by display name. Only Teams-provisioned groups are returned. Requires the Team.ReadBasic.All Graph permission."),
		mcp.WithString("team_name",
			mcp.Required(),
			mcp.Description("Display name of the team to search for"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		teamName := req.GetString("team_name", "")
		params := map[string]any{"team_name": teamName}

		result, err := mgr.SearchByName(ctx, TeamSearchRequest{TeamName: teamName})
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolGetTeamMembers(mgr TeamManager, teamFilter *safety.Filter, audit *safety.AuditLogger) tools.Registration {
	const toolName = "get_team_members"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Get the members of a specific Microsoft Team. Requires the TeamMember.Read.All Graph permission."),
		mcp.WithString("team_id",
			mcp.Required(),
			mcp.Description("The ID of the Microsoft Team"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		teamID := req.GetString("team_id", "")
		params := map[string]any{"team_id": teamID}

		if teamID != "" && !teamFilter.IsAllowed(teamID) {
			tools.LogAudit(audit, toolName, params, "denied", start)
			return tools.ErrorResult(fmt.Sprintf("access to team %q is not allowed", teamID)), nil
		}

		result, err := mgr.Members(ctx, teamID)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolGetTeamChannels(mgr TeamManager, teamFilter *safety.Filter, audit *safety.AuditLogger) tools.Registration {
	const toolName = "get_team_channels"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Get the channels of a specific Microsoft Team. Requires the Channel.ReadBasic.All Graph permission."),
		mcp.WithString("team_id",
			mcp.Required(),
			mcp.Description("The ID of the Microsoft Team"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		teamID := req.GetString("team_id", "")
		params := map[string]any{"team_id": teamID}

		if teamID != "" && !teamFilter.IsAllowed(teamID) {
			tools.LogAudit(audit, toolName, params, "denied", start)
			return tools.ErrorResult(fmt.Sprintf("access to team %q is not allowed", teamID)), nil
		}

		result, err := mgr.Channels(ctx, teamID)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolPostChannelMessage(
	mgr TeamManager,
	teamFilter *safety.Filter,
	channelFilter *safety.Filter,
	audit *safety.AuditLogger,
) tools.Registration {
	const toolName = "post_channel_message"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Post a message to a specific channel in a Microsoft Team. Always confirm by telling the team name where the post is about to go. Requires the ChannelMessage.Send Graph permission."),
		mcp.WithString("team_id",
			mcp.Required(),
			mcp.Description("The ID of the Microsoft Team"),
		),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("The ID of the channel within the team"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The message to post"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		teamID := req.GetString("team_id", "")
		channelID := req.GetString("channel_id", "")
		message := req.GetString("message", "")

		// Message bodies are never audited, only their length.
		params := map[string]any{
			"team_id":     teamID,
			"channel_id":  channelID,
			"message_len": len(message),
		}

		if teamID != "" && !teamFilter.IsAllowed(teamID) {
			tools.LogAudit(audit, toolName, params, "denied", start)
			return tools.ErrorResult(fmt.Sprintf("access to team %q is not allowed", teamID)), nil
		}
		if channelID != "" && !channelFilter.IsAllowed(channelID) {
			tools.LogAudit(audit, toolName, params, "denied", start)
			return tools.ErrorResult(fmt.Sprintf("access to channel %q is not allowed", channelID)), nil
		}

		result, err := mgr.PostChannelMessage(ctx, teamID, channelID, message)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolCreateTeam(mgr TeamManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "create_team"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Create a new Microsoft Team using the standard template. Requires the Team.Create Graph permission."),
		mcp.WithString("display_name",
			mcp.Required(),
			mcp.Description("Display name of the team"),
		),
		mcp.WithString("description",
			mcp.Description("Description of the team"),
		),
		mcp.WithString("visibility",
			mcp.Description("Visibility of the team: public or private (default: private)"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		details := TeamDetails{
			DisplayName: req.GetString("display_name", ""),
			Description: req.GetString("description", ""),
			Visibility:  req.GetString("visibility", ""),
		}
		params := map[string]any{
			"display_name": details.DisplayName,
			"visibility":   details.Visibility,
		}

		result, err := mgr.Create(ctx, details)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
