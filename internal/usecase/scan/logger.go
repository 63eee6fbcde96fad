package scan

import "context"

// Logger provides structured logging for the scan use case.
// The interface keeps the orchestrator decoupled from the concrete
// observability adapter.
type Logger interface {
	// LogWarning logs a warning message with structured fields.
	LogWarning(ctx context.Context, message string, fields map[string]interface{})

	// LogInfo logs an informational message with structured fields.
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
}
