package commands

import (
	"strings"

	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const (
	commandModuleRoot    = "remotemedia.commands"
	defaultCommandModule = "core"
)

// CommandLogger names the logger remotemedia.commands.<module>, for example
// remotemedia.commands.resources, and tags every entry with the module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = defaultCommandModule
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+module), map[string]any{
		"component":      "command",
		"command_module": module,
	})
}
