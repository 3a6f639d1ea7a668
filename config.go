package remotemedia

import "github.com/goliatone/go-remote-media/internal/runtimeconfig"

var (
	ErrProviderIdentifierRequired = runtimeconfig.ErrProviderIdentifierRequired
	ErrUploadResourceTypeInvalid  = runtimeconfig.ErrUploadResourceTypeInvalid
	ErrSearchLimitInvalid         = runtimeconfig.ErrSearchLimitInvalid
	ErrStorageFeatureRequired     = runtimeconfig.ErrStorageFeatureRequired
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrDeliveryCloudNameRequired  = runtimeconfig.ErrDeliveryCloudNameRequired
	ErrCommandTimeoutInvalid      = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config           = runtimeconfig.Config
	VariationsConfig = runtimeconfig.VariationsConfig
	UploadConfig     = runtimeconfig.UploadConfig
	SearchConfig     = runtimeconfig.SearchConfig
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	DeliveryConfig   = runtimeconfig.DeliveryConfig
	CommandsConfig   = runtimeconfig.CommandsConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
