package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// DefaultCommandTimeout applies to handlers built without WithTimeout.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the execution context. A nil parent becomes
// context.Background; a non-positive timeout adds no deadline.
func commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// EnsureLogger swaps a nil logger for the no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
