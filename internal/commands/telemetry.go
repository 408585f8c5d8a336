package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// LogTelemetry logs the outcome through the handler's logger.
func LogTelemetry[T command.Message](_ context.Context, _ T, info TelemetryInfo) {
	entry := info.Logger
	if entry == nil {
		entry = logging.NoOp()
	}
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusSuccess:
		entry.Info("command.execute.success", args...)
	case TelemetryStatusContextError:
		entry.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		entry.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}
