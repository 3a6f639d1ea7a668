package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const (
	rootModule       = "remotemedia"
	providerModule   = "remotemedia.provider"
	variationsModule = "remotemedia.variations"
	storageModule    = "remotemedia.storage"
	gatewayModule    = "remotemedia.gateway"
	commandsModule   = "remotemedia.commands"
)

// Field names shared by every module so entries can be filtered uniformly.
const (
	FieldResourceID   = "resource_id"
	FieldResourceType = "resource_type"
	FieldVariation    = "variation"
	FieldGroup        = "variation_group"
	FieldOperation    = "operation"
)

// ModuleLogger returns a module-scoped logger. A nil provider, or one that
// returns nil, yields the no-op logger. The module name is attached as the
// "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// ProviderLogger is used by the remote resource provider facade.
func ProviderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, providerModule)
}

// VariationsLogger is used while loading and resolving variation definitions.
func VariationsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, variationsModule)
}

// StorageLogger is used by the local resource reference store.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// GatewayLogger is used by gateway implementations and decorators.
func GatewayLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, gatewayModule)
}

// CommandsLogger is used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithVariation adds the variation group and name to a logger. Empty values
// are ignored.
func WithVariation(logger interfaces.Logger, group, name string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(group); trimmed != "" {
		fields[FieldGroup] = trimmed
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		fields[FieldVariation] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
