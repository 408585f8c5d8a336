package commands

import (
	"strings"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// CommandLogger names loggers landing.commands.<operation> and tags every entry
// with the operation so command logs can be filtered across modules.
func CommandLogger(provider interfaces.LoggerProvider, operation string) interfaces.Logger {
	operation = strings.TrimSpace(operation)
	if operation == "" {
		operation = "default"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "landing.commands."+operation),
		map[string]any{"component": "command", "operation": operation},
	)
}
