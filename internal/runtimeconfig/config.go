package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrProviderIdentifierRequired = errors.New("remotemedia config: provider identifier is required")
	ErrUploadResourceTypeInvalid  = errors.New("remotemedia config: upload default resource type is invalid")
	ErrSearchLimitInvalid         = errors.New("remotemedia config: search limits are invalid")
	ErrStorageFeatureRequired     = errors.New("remotemedia config: resource store feature must be enabled to configure storage")
	ErrStorageDriverUnknown       = errors.New("remotemedia config: storage driver is invalid")
	ErrStorageDSNRequired         = errors.New("remotemedia config: storage dsn is required when storage is enabled")
	ErrCacheTTLInvalid            = errors.New("remotemedia config: cache ttl must be positive when cache is enabled")
	ErrLoggingProviderRequired    = errors.New("remotemedia config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown     = errors.New("remotemedia config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("remotemedia config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("remotemedia config: logging format is invalid")
	ErrDeliveryCloudNameRequired  = errors.New("remotemedia config: delivery cloud name is required")
	ErrCommandTimeoutInvalid      = errors.New("remotemedia config: command timeout must be zero or positive")
)

// MaxSearchLimit is the hard ceiling the remote service applies to page sizes.
const MaxSearchLimit = 500

// Config aggregates everything the module needs at construction time.
type Config struct {
	Provider   string
	Variations VariationsConfig
	Upload     UploadConfig
	Search     SearchConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Delivery   DeliveryConfig
	Commands   CommandsConfig
	Features   Features
	Logging    LoggingConfig
}

// VariationsConfig points at the variation document. DefaultGroup and
// EmbedGroup override the values declared in the document when set; an
// empty document path yields a resolver without variations.
type VariationsConfig struct {
	Path         string
	DefaultGroup string
	EmbedGroup   string
}

// UploadConfig holds the defaults merged into every upload.
type UploadConfig struct {
	DefaultResourceType     string
	Overwrite               bool
	Invalidate              bool
	DiscardOriginalFilename bool
}

// SearchConfig bounds search page sizes.
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// StorageConfig configures the local resource reference store.
type StorageConfig struct {
	Enabled bool
	Driver  string
	DSN     string
}

// CacheConfig toggles the repository cache in front of the store.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// DeliveryConfig is used by gateways that build delivery URLs locally.
type DeliveryConfig struct {
	BaseURL   string
	CloudName string
}

// CommandsConfig controls command handler behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// Features toggles optional subsystems.
type Features struct {
	ResourceStore bool
	Metrics       bool
	Logger        bool
}

// LoggingConfig captures provider-specific logging options.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns defaults matching the remote service behaviour.
func DefaultConfig() Config {
	return Config{
		Provider: "cloudinary",
		Upload: UploadConfig{
			DefaultResourceType:     "auto",
			Overwrite:               true,
			Invalidate:              true,
			DiscardOriginalFilename: true,
		},
		Search: SearchConfig{
			DefaultLimit: 25,
			MaxLimit:     MaxSearchLimit,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:remotemedia.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Delivery: DeliveryConfig{
			BaseURL:   "https://res.cloudinary.com",
			CloudName: "demo",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Provider) == "" {
		return ErrProviderIdentifierRequired
	}
	switch strings.TrimSpace(cfg.Upload.DefaultResourceType) {
	case "auto", "image", "video", "raw":
	default:
		return fmt.Errorf("%w: %q", ErrUploadResourceTypeInvalid, cfg.Upload.DefaultResourceType)
	}
	if cfg.Search.MaxLimit <= 0 || cfg.Search.MaxLimit > MaxSearchLimit {
		return fmt.Errorf("%w: max limit %d", ErrSearchLimitInvalid, cfg.Search.MaxLimit)
	}
	if cfg.Search.DefaultLimit < 0 || cfg.Search.DefaultLimit > cfg.Search.MaxLimit {
		return fmt.Errorf("%w: default limit %d", ErrSearchLimitInvalid, cfg.Search.DefaultLimit)
	}
	if cfg.Storage.Enabled {
		if !cfg.Features.ResourceStore {
			return ErrStorageFeatureRequired
		}
		if !isSupportedDriver(cfg.Storage.Driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if strings.TrimSpace(cfg.Delivery.CloudName) == "" {
		return ErrDeliveryCloudNameRequired
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// StorageDriver returns the normalised storage driver name.
func (cfg Config) StorageDriver() string {
	return strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
}

func isSupportedDriver(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3", "postgres", "postgresql":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
