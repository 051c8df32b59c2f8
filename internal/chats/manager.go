// Package chats provides one-on-one chat creation and messaging via the
// Microsoft Graph REST API.
package chats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/ekipalen/microsoft-teams-actions/internal/graph"
)

// Compile-time interface check.
var _ ChatManager = (*GraphChatManager)(nil)

// GraphChatManager implements ChatManager using a Microsoft Graph client.
type GraphChatManager struct {
	client graph.Client
}

// NewGraphChatManager returns a new GraphChatManager backed by the provided
// Graph client.
func NewGraphChatManager(client graph.Client) *GraphChatManager {
	if client == nil {
		panic("graph client must not be nil")
	}
	return &GraphChatManager{client: client}
}

// chatMember is one conversation member in a chat creation request.
type chatMember struct {
	ODataType string   `json:"@odata.type"`
	Roles     []string `json:"roles"`
	UserBind  string   `json:"user@odata.bind"`
}

// createChatPayload is the Graph request body for creating a one-on-one chat.
type createChatPayload struct {
	ChatType string       `json:"chatType"`
	Members  []chatMember `json:"members"`
}

// newChatMember builds an owner member entry for the given user id. The bind
// URL is an identifier interpreted by Graph, not a routed URL, so it always
// uses the canonical base.
func newChatMember(userID string) chatMember {
	return chatMember{
		ODataType: "#microsoft.graph.aadUserConversationMember",
		Roles:     []string{"owner"},
		UserBind:  fmt.Sprintf("%s/users('%s')", graph.DefaultBaseURL, userID),
	}
}

// parseObject decodes a Graph response body into a generic JSON object.
func parseObject(body []byte) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return result, nil
}

// Create opens a new one-on-one chat between the two given users. Both are
// added as owners.
func (m *GraphChatManager) Create(ctx context.Context, userID1, userID2 string) (map[string]any, error) {
	if userID1 == "" || userID2 == "" {
		return nil, fmt.Errorf("the user_id_1 and user_id_2 must be provided")
	}

	payload := createChatPayload{
		ChatType: "oneOnOne",
		Members:  []chatMember{newChatMember(userID1), newChatMember(userID2)},
	}

	resp, err := m.client.Post(ctx, "/chats", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return parseObject(resp.Body)
}

// messagePayload is the Graph request body for sending a chat message.
type messagePayload struct {
	Body messageBody `json:"body"`
}

type messageBody struct {
	Content string `json:"content"`
}

// SendMessage sends a message to an existing chat.
func (m *GraphChatManager) SendMessage(ctx context.Context, chatID, message string) (map[string]any, error) {
	if chatID == "" || message == "" {
		return nil, fmt.Errorf("the chat_id and message must be provided")
	}

	path := "/chats/" + url.PathEscape(chatID) + "/messages"
	payload := messagePayload{Body: messageBody{Content: message}}

	resp, err := m.client.Post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}
	if err := graph.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}
	return parseObject(resp.Body)
}
