// Package chats provides one-on-one chat creation and messaging via the
// Microsoft Graph REST API.
package chats

import "context"

// ChatManager defines the interface for chat operations. Results are the
// parsed Graph response bodies.
type ChatManager interface {
	Create(ctx context.Context, userID1, userID2 string) (map[string]any, error)
	SendMessage(ctx context.Context, chatID, message string) (map[string]any, error)
}
