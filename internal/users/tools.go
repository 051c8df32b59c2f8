// Package users provides Microsoft 365 user lookup via the Microsoft Graph
// REST API.
package users

import (
	"context"
	"time"

	"github.com/ekipalen/microsoft-teams-actions/internal/safety"
	"github.com/ekipalen/microsoft-teams-actions/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// UserTools returns the tool registrations for user lookup.
func UserTools(mgr UserManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolSearchUser(mgr, audit),
	}
}

func toolSearchUser(mgr UserManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "search_user"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Search for a user by email, first name, or last name. The requesting user's own details are always included first, for use in chats. Requires the User.Read.All Graph permission."),
		mcp.WithString("email",
			mcp.Description("Email address of the user; takes precedence over name fields"),
		),
		mcp.WithString("first_name",
			mcp.Description("First name of the user"),
		),
		mcp.WithString("last_name",
			mcp.Description("Last name of the user"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		search := UserSearch{
			Email:     req.GetString("email", ""),
			FirstName: req.GetString("first_name", ""),
			LastName:  req.GetString("last_name", ""),
		}
		params := map[string]any{
			"email":      search.Email,
			"first_name": search.FirstName,
			"last_name":  search.LastName,
		}

		result, err := mgr.Search(ctx, search)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
