package logging

import (
	"maps"

	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil loggers and empty field
// sets are returned untouched.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithResource annotates a logger with the identifiers of a remote resource.
// Blank values are skipped.
func WithResource(logger interfaces.Logger, resourceID, resourceType string) interfaces.Logger {
	fields := map[string]any{}
	if resourceID != "" {
		fields[FieldResourceID] = resourceID
	}
	if resourceType != "" {
		fields[FieldResourceType] = resourceType
	}
	return WithFields(logger, fields)
}
