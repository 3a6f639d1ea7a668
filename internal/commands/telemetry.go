package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// TelemetryStatus is the outcome of one handler execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to a Telemetry callback once the handler returns.
// Error is already wrapped with its command category.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry replaces the handler's outcome logging.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// statusFor classifies an execution result.
func statusFor(ctx context.Context, err error) TelemetryStatus {
	switch {
	case err != nil:
		return TelemetryStatusFailed
	case ctx.Err() != nil:
		return TelemetryStatusContextError
	default:
		return TelemetryStatusSuccess
	}
}

// logOutcome is the default outcome report: success at info, everything
// else at error with the wrapped error attached.
func logOutcome(info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusSuccess:
		info.Logger.Info("command.execute.success", args...)
	case TelemetryStatusContextError:
		info.Logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		info.Logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}
