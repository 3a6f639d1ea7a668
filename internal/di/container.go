package di

import (
	"context"
	"database/sql"
	"fmt"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	resourcecmd "github.com/goliatone/go-remote-media/internal/commands/resources"
	"github.com/goliatone/go-remote-media/internal/gateway/memory"
	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/logging/console"
	"github.com/goliatone/go-remote-media/internal/logging/gologger"
	"github.com/goliatone/go-remote-media/internal/metrics"
	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/runtimeconfig"
	"github.com/goliatone/go-remote-media/internal/storage"
	"github.com/goliatone/go-remote-media/internal/transformation"
	"github.com/goliatone/go-remote-media/internal/variations"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const metricsNamespace = "remotemedia"

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	document *variations.Document
	resolver *variations.Resolver
	registry *transformation.Registry

	gateway    provider.Gateway
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	provider *provider.Provider
	store    *storage.Store

	commandRegistry resourcecmd.CommandRegistry
	commands        *resourcecmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used by the resource store. The container
// does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache placed in front of the store repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithVariations supplies a parsed variation document instead of loading
// Config.Variations.Path.
func WithVariations(doc *variations.Document) Option {
	return func(c *Container) {
		c.document = doc
	}
}

// WithRegistry overrides the default transformation registry.
func WithRegistry(registry *transformation.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithGateway replaces the in-memory gateway.
func WithGateway(gateway provider.Gateway) Option {
	return func(c *Container) {
		c.gateway = gateway
	}
}

// WithMetricsRegisterer sets where gateway metrics are registered. When the
// registerer is also a Gatherer it backs MetricsGatherer.
func WithMetricsRegisterer(registerer prometheus.Registerer) Option {
	return func(c *Container) {
		c.registerer = registerer
	}
}

// WithCommandRegistry registers the resource command handlers with reg.
func WithCommandRegistry(reg resourcecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLogging,
		c.configureVariations,
		c.configureGateway,
		c.configureProvider,
		c.configureStorage,
		c.configureCommands,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.logger.Info("remotemedia.container.ready",
		"provider", c.provider.Identifier(),
		"store_enabled", c.store != nil,
		"metrics_enabled", c.gatherer != nil,
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		switch c.Config.Logging.Provider {
		case "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     c.Config.Logging.Level,
				Format:    c.Config.Logging.Format,
				AddSource: c.Config.Logging.AddSource,
				Focus:     c.Config.Logging.Focus,
			})
			if err != nil {
				return fmt.Errorf("di: configure go-logger: %w", err)
			}
			c.loggerProvider = provider
		default:
			level, _ := console.ParseLevel(c.Config.Logging.Level)
			c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "remotemedia")
	return nil
}

func (c *Container) configureVariations() error {
	if c.document == nil {
		if path := c.Config.Variations.Path; path != "" {
			doc, err := variations.LoadFile(path)
			if err != nil {
				return err
			}
			c.document = doc
		}
	}
	c.resolver = variations.NewResolver(c.document,
		variations.WithDefaultGroup(c.Config.Variations.DefaultGroup),
		variations.WithEmbedGroup(c.Config.Variations.EmbedGroup),
		variations.WithLogger(logging.VariationsLogger(c.loggerProvider)),
	)
	if c.registry == nil {
		c.registry = transformation.NewDefaultRegistry()
	}
	return nil
}

func (c *Container) configureGateway() error {
	if c.gateway == nil {
		c.gateway = memory.New(
			memory.WithBaseURL(c.Config.Delivery.BaseURL),
			memory.WithCloudName(c.Config.Delivery.CloudName),
			memory.WithPageLimits(c.Config.Search.DefaultLimit, c.Config.Search.MaxLimit),
			memory.WithLogger(logging.GatewayLogger(c.loggerProvider)),
		)
	}
	if !c.Config.Features.Metrics {
		return nil
	}

	if c.registerer == nil {
		c.registerer = prometheus.NewRegistry()
	}
	recorder, err := metrics.NewProm(metricsNamespace, c.registerer)
	if err != nil {
		return fmt.Errorf("di: configure metrics: %w", err)
	}
	if gatherer, ok := c.registerer.(prometheus.Gatherer); ok {
		c.gatherer = gatherer
	}
	c.gateway = metrics.Instrument(c.gateway, recorder)
	return nil
}

func (c *Container) configureProvider() error {
	upload := c.Config.Upload
	c.provider = provider.New(c.gateway, c.registry, c.resolver,
		provider.WithLogger(logging.ProviderLogger(c.loggerProvider)),
		provider.WithIdentifier(c.Config.Provider),
		provider.WithUploadDefaults(provider.UploadDefaults{
			ResourceType:            resources.ResourceType(upload.DefaultResourceType),
			Overwrite:               upload.Overwrite,
			Invalidate:              upload.Invalidate,
			DiscardOriginalFilename: upload.DiscardOriginalFilename,
		}),
	)
	return nil
}

func (c *Container) configureStorage() error {
	if !c.Config.Features.ResourceStore {
		return nil
	}
	if c.bunDB == nil {
		if !c.Config.Storage.Enabled {
			return nil
		}
		db, err := openDB(c.Config.StorageDriver(), c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	c.configureCacheDefaults()

	opts := []storage.StoreOption{storage.WithLogger(logging.StorageLogger(c.loggerProvider))}
	if c.cacheService != nil {
		opts = append(opts, storage.WithCache(c.cacheService, c.keySerializer))
	}
	store, err := storage.NewStore(c.bunDB, opts...)
	if err != nil {
		return err
	}
	c.store = store
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("remotemedia.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureCommands() error {
	opts := []resourcecmd.Option{
		resourcecmd.WithTimeout(c.Config.Commands.Timeout),
		resourcecmd.WithFeatureGates(resourcecmd.FeatureGates{
			ResourceStoreEnabled: func() bool { return c.Config.Features.ResourceStore },
		}),
	}
	if c.store != nil {
		opts = append(opts, resourcecmd.WithStore(c.store))
	}
	set, err := resourcecmd.RegisterResourceCommands(c.commandRegistry, c.provider, c.loggerProvider, opts...)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

func openDB(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "sqlite", "sqlite3":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "postgresql":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, driver)
	}
}

// Migrate creates the resource store schema. It is a no-op without a store.
func (c *Container) Migrate(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return storage.EnsureSchema(ctx, c.bunDB)
}

// Close releases the database opened by the container.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	db := c.bunDB
	c.bunDB = nil
	c.store = nil
	return db.Close()
}

// LoggerProvider returns the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a logger for module routed through the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Provider returns the media provider.
func (c *Container) Provider() *provider.Provider {
	return c.provider
}

// Resolver returns the variation resolver.
func (c *Container) Resolver() *variations.Resolver {
	return c.resolver
}

// Registry returns the transformation registry.
func (c *Container) Registry() *transformation.Registry {
	return c.registry
}

// Gateway returns the gateway the provider talks to, instrumented when
// metrics are enabled.
func (c *Container) Gateway() provider.Gateway {
	return c.gateway
}

// Store returns the resource store, or nil when the feature is off.
func (c *Container) Store() *storage.Store {
	return c.store
}

// Commands returns the resource command handlers.
func (c *Container) Commands() *resourcecmd.HandlerSet {
	return c.commands
}

// MetricsGatherer returns the gatherer backing gateway metrics, or nil.
func (c *Container) MetricsGatherer() prometheus.Gatherer {
	return c.gatherer
}
