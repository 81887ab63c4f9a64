// Package config provides agent configuration for TraceMesh.
//
// This package defines the agent configuration structure and validation:
//
//   - spec.go: AgentConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (required endpoints, value ranges)
//   - sanitize.go: Log sanitization (hide API keys)
//
// Configuration is loaded via internal/infra/confloader and supports
// files and environment variables.
//
// @req RQ-0301
// @design DS-0301
package config
