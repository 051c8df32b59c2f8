package config

import (
	"encoding/hex"
	"testing"
)

// ---------------------------------------------------------------------------
// ApplyEnvOverrides
// ---------------------------------------------------------------------------

func Test_ApplyEnvOverrides_Cases(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		initial   Config
		wantToken string
		wantURL   string
		wantGraph string
	}{
		{
			name:      "auth token env set on empty config",
			env:       map[string]string{"TEAMS_MCP_AUTH_TOKEN": "my-token"},
			wantToken: "my-token",
		},
		{
			name:      "auth token env overrides existing token",
			env:       map[string]string{"TEAMS_MCP_AUTH_TOKEN": "new"},
			initial:   Config{Server: ServerConfig{AuthToken: "old"}},
			wantToken: "new",
		},
		{
			name:      "unset env preserves existing values",
			initial:   Config{Server: ServerConfig{AuthToken: "existing"}},
			wantToken: "existing",
		},
		{
			name:      "empty env does not override existing token",
			env:       map[string]string{"TEAMS_MCP_AUTH_TOKEN": ""},
			initial:   Config{Server: ServerConfig{AuthToken: "existing"}},
			wantToken: "existing",
		},
		{
			name:    "base url override",
			env:     map[string]string{"MSGRAPH_BASE_URL": "http://127.0.0.1:8080/v1.0"},
			initial: Config{Graph: GraphConfig{BaseURL: "https://graph.microsoft.com/v1.0"}},
			wantURL: "http://127.0.0.1:8080/v1.0",
		},
		{
			name:      "access token override",
			env:       map[string]string{"MSGRAPH_ACCESS_TOKEN": "graph-token"},
			wantGraph: "graph-token",
		},
		{
			name: "all overrides at once",
			env: map[string]string{
				"TEAMS_MCP_AUTH_TOKEN": "inbound",
				"MSGRAPH_BASE_URL":     "https://graph.example.com/v1.0",
				"MSGRAPH_ACCESS_TOKEN": "outbound",
			},
			wantToken: "inbound",
			wantURL:   "https://graph.example.com/v1.0",
			wantGraph: "outbound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"TEAMS_MCP_AUTH_TOKEN", "MSGRAPH_BASE_URL", "MSGRAPH_ACCESS_TOKEN"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg := tt.initial
			ApplyEnvOverrides(&cfg)

			if tt.wantToken != "" && cfg.Server.AuthToken != tt.wantToken {
				t.Errorf("Server.AuthToken = %q, want %q", cfg.Server.AuthToken, tt.wantToken)
			}
			if tt.wantURL != "" && cfg.Graph.BaseURL != tt.wantURL {
				t.Errorf("Graph.BaseURL = %q, want %q", cfg.Graph.BaseURL, tt.wantURL)
			}
			if tt.wantGraph != "" && cfg.Graph.AccessToken != tt.wantGraph {
				t.Errorf("Graph.AccessToken = %q, want %q", cfg.Graph.AccessToken, tt.wantGraph)
			}
		})
	}
}

func Test_ApplyEnvOverrides_DoesNotTouchOtherFields(t *testing.T) {
	t.Setenv("TEAMS_MCP_AUTH_TOKEN", "token")

	cfg := DefaultConfig()
	wantPort := cfg.Server.Port
	wantTimeout := cfg.Graph.Timeout

	ApplyEnvOverrides(cfg)

	if cfg.Server.Port != wantPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, wantPort)
	}
	if cfg.Graph.Timeout != wantTimeout {
		t.Errorf("Graph.Timeout = %d, want %d", cfg.Graph.Timeout, wantTimeout)
	}
}

// ---------------------------------------------------------------------------
// EnsureAuthToken
// ---------------------------------------------------------------------------

func Test_EnsureAuthToken_Cases(t *testing.T) {
	t.Run("existing token is kept", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{AuthToken: "keep-me"}}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "keep-me" {
			t.Errorf("token = %q, want %q", token, "keep-me")
		}
		if cfg.Server.AuthToken != "keep-me" {
			t.Errorf("AuthToken = %q, want unchanged", cfg.Server.AuthToken)
		}
	})

	t.Run("empty token is generated and stored", func(t *testing.T) {
		cfg := &Config{}

		token, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("generated token is empty")
		}
		if cfg.Server.AuthToken != token {
			t.Errorf("AuthToken = %q, want %q", cfg.Server.AuthToken, token)
		}
	})

	t.Run("repeated calls keep the first token", func(t *testing.T) {
		cfg := &Config{}

		first, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := EnsureAuthToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("second call returned %q, want %q", second, first)
		}
	})
}

// ---------------------------------------------------------------------------
// GenerateRandomToken
// ---------------------------------------------------------------------------

func Test_GenerateRandomToken_Cases(t *testing.T) {
	token, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(token) != 32 {
		t.Errorf("len(token) = %d, want 32 hex characters", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token %q is not valid hex: %v", token, err)
	}

	other, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == other {
		t.Error("two generated tokens are identical")
	}
}
