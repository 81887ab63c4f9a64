// Package logger provides structured logging for TraceMesh.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Handler configuration and dynamic level control
//   - context.go: Context-aware logging with trace/span IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Runtime level adjustment (driven by remote configuration)
//   - Automatic credential masking
//   - Context propagation for span-scoped logging
//
// @req RQ-0401
// @design DS-0401
package logger
