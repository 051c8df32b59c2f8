// Package config provides configuration loading and defaults for the
// microsoft-teams-actions server.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceFilter holds allowlist and denylist entries for a resource category.
type ResourceFilter struct {
	Allowlist []string `yaml:"allowlist"`
	Denylist  []string `yaml:"denylist"`
}

// SafetyConfig groups resource filters for teams and channels.
type SafetyConfig struct {
	Teams    ResourceFilter `yaml:"teams"`
	Channels ResourceFilter `yaml:"channels"`
}

// AuditConfig controls audit logging behaviour.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogPath string `yaml:"log_path"`
}

// ServerConfig holds network and authentication settings for the inbound
// MCP endpoint.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// RateLimitConfig holds client-side throttling settings for outbound
// Microsoft Graph requests. A zero RequestsPerSecond disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// GraphConfig holds connection details for the Microsoft Graph API.
type GraphConfig struct {
	BaseURL string `yaml:"base_url"`
	// AccessToken is the OAuth2 bearer token used for all Graph requests.
	// Token acquisition and refresh happen outside this server.
	AccessToken string `yaml:"access_token"`
	// Timeout is the HTTP request timeout in seconds.
	Timeout   int             `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Config is the top-level configuration structure for the
// microsoft-teams-actions server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Safety SafetyConfig `yaml:"safety"`
	Audit  AuditConfig  `yaml:"audit"`
	Graph  GraphConfig  `yaml:"graph"`
}

// LoadConfig reads and parses a YAML configuration file from the given path.
// It returns a pointer to the populated Config and any error encountered.
// On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Audit: AuditConfig{
			Enabled: false,
			LogPath: "audit.log",
		},
		Graph: GraphConfig{
			BaseURL: "https://graph.microsoft.com/v1.0",
			Timeout: 30,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             15,
			},
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - TEAMS_MCP_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - MSGRAPH_BASE_URL overrides cfg.Graph.BaseURL
//   - MSGRAPH_ACCESS_TOKEN overrides cfg.Graph.AccessToken
func ApplyEnvOverrides(cfg *Config) {
	if token := os.Getenv("TEAMS_MCP_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if url := os.Getenv("MSGRAPH_BASE_URL"); url != "" {
		cfg.Graph.BaseURL = url
	}
	if token := os.Getenv("MSGRAPH_ACCESS_TOKEN"); token != "" {
		cfg.Graph.AccessToken = token
	}
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
