// Package chats provides one-on-one chat creation and messaging via the
// Microsoft Graph REST API.
package chats

import (
	"context"
	"time"

	"github.com/ekipalen/microsoft-teams-actions/internal/safety"
	"github.com/ekipalen/microsoft-teams-actions/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ChatTools returns the tool registrations for chat operations.
func ChatTools(mgr ChatManager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolCreateChat(mgr, audit),
		toolSendMessageToChat(mgr, audit),
	}
}

func toolCreateChat(mgr ChatManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "create_chat"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Create a new one-on-one chat between two users. Use search_user to find the user IDs first. Requires the Chat.Create Graph permission."),
		mcp.WithString("user_id_1",
			mcp.Required(),
			mcp.Description("The ID of the first user, the one asking for the chat"),
		),
		mcp.WithString("user_id_2",
			mcp.Required(),
			mcp.Description("The ID of the second user"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		userID1 := req.GetString("user_id_1", "")
		userID2 := req.GetString("user_id_2", "")
		params := map[string]any{"user_id_1": userID1, "user_id_2": userID2}

		result, err := mgr.Create(ctx, userID1, userID2)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolSendMessageToChat(mgr ChatManager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "send_message_to_chat"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Send a message to a specific chat, which needs to be created first. Requires the ChatMessage.Send Graph permission."),
		mcp.WithString("chat_id",
			mcp.Required(),
			mcp.Description("The ID of the chat to send the message to"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The message content to send"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		chatID := req.GetString("chat_id", "")
		message := req.GetString("message", "")

		// Message bodies are never audited, only their length.
		params := map[string]any{"chat_id": chatID, "message_len": len(message)}

		result, err := mgr.SendMessage(ctx, chatID, message)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
