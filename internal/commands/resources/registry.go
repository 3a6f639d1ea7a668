package resourcecmd

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-remote-media/internal/commands"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers built by RegisterResourceCommands.
type HandlerSet struct {
	Upload          *commands.Handler[UploadResourceCommand]
	Delete          *commands.Handler[DeleteResourceCommand]
	UpdateTags      *commands.Handler[UpdateTagsCommand]
	UpdateContext   *commands.Handler[UpdateContextCommand]
	Sync            *commands.Handler[SyncResourceCommand]
	SaveCoordinates *commands.Handler[SaveVariationCoordinatesCommand]
}

// All lists the handlers in registration order.
func (s *HandlerSet) All() []any {
	if s == nil {
		return nil
	}
	return []any{s.Upload, s.Delete, s.UpdateTags, s.UpdateContext, s.Sync, s.SaveCoordinates}
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	store   ResourceStore
	gates   FeatureGates
	timeout *time.Duration
	upload  []commands.HandlerOption[UploadResourceCommand]
	sync    []commands.HandlerOption[SyncResourceCommand]
}

// WithStore mirrors resources into store.
func WithStore(store ResourceStore) Option {
	return func(cfg *options) {
		cfg.store = store
	}
}

// WithFeatureGates installs runtime toggles.
func WithFeatureGates(gates FeatureGates) Option {
	return func(cfg *options) {
		cfg.gates = gates
	}
}

// WithTimeout applies timeout to every handler. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = &timeout
	}
}

// WithUploadHandlerOptions forwards options to the upload handler.
func WithUploadHandlerOptions(opts ...commands.HandlerOption[UploadResourceCommand]) Option {
	return func(cfg *options) {
		cfg.upload = append(cfg.upload, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the sync handler.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncResourceCommand]) Option {
	return func(cfg *options) {
		cfg.sync = append(cfg.sync, opts...)
	}
}

// RegisterResourceCommands builds the resource handlers and registers them
// with reg when it is non-nil.
func RegisterResourceCommands(reg CommandRegistry, provider ProviderService, loggers interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if provider == nil {
		return nil, errors.New("resource command registration: provider is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(loggers, "resources")
	set := &HandlerSet{
		Upload:          NewUploadHandler(provider, cfg.store, logger, cfg.gates, append(timeoutOption[UploadResourceCommand](cfg.timeout), cfg.upload...)...),
		Delete:          NewDeleteHandler(provider, cfg.store, logger, cfg.gates, timeoutOption[DeleteResourceCommand](cfg.timeout)...),
		UpdateTags:      NewUpdateTagsHandler(provider, cfg.store, logger, cfg.gates, timeoutOption[UpdateTagsCommand](cfg.timeout)...),
		UpdateContext:   NewUpdateContextHandler(provider, cfg.store, logger, cfg.gates, timeoutOption[UpdateContextCommand](cfg.timeout)...),
		Sync:            NewSyncHandler(provider, cfg.store, logger, cfg.gates, append(timeoutOption[SyncResourceCommand](cfg.timeout), cfg.sync...)...),
		SaveCoordinates: NewSaveCoordinatesHandler(cfg.store, logger, cfg.gates, timeoutOption[SaveVariationCoordinatesCommand](cfg.timeout)...),
	}

	if reg != nil {
		for _, handler := range set.All() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func timeoutOption[T command.Message](timeout *time.Duration) []commands.HandlerOption[T] {
	if timeout == nil {
		return nil
	}
	return []commands.HandlerOption[T]{commands.WithTimeout[T](*timeout)}
}

// RegisterSyncCron schedules handler with msg under cfg. The handler runs
// with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *commands.Handler[SyncResourceCommand], cfg command.HandlerConfig, msg SyncResourceCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
