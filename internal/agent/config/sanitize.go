// Package config defines the agent configuration structure.
package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing secrets.
func Sanitize(cfg *AgentConfig) *AgentConfig {
	sanitized := *cfg

	if sanitized.RemoteConfig.APIKey != "" {
		sanitized.RemoteConfig.APIKey = maskSecret(sanitized.RemoteConfig.APIKey)
	}
	if sanitized.Export.APIKey != "" {
		sanitized.Export.APIKey = maskSecret(sanitized.Export.APIKey)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
