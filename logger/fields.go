package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across cqlls.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldSessionID = "session_id"
	FieldComponent = "component"

	// Documents
	FieldURI       = "uri"
	FieldLine      = "line"
	FieldCharacter = "character"

	// Classification and completion
	FieldContext  = "context"
	FieldStrategy = "strategy"
	FieldKeyspace = "keyspace"
	FieldTable    = "table"

	// Schema provider
	FieldCluster = "cluster"
	FieldAddress = "address"
	FieldQuery   = "query"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Service struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewService() *Service {
//	    return &Service{
//	        logger: logger.ComponentLogger("complete"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	docLogger := logger.ChildLogger(baseLogger, logger.FieldURI, uri)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
