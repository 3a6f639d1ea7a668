// Package remotemedia stores references to assets hosted on a remote media
// service and builds variation URLs from named transformation chains
// without re-uploading.
package remotemedia

import (
	"net/http"

	resourcecmd "github.com/goliatone/go-remote-media/internal/commands/resources"
	"github.com/goliatone/go-remote-media/internal/di"
	"github.com/goliatone/go-remote-media/internal/metrics"
	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
	"github.com/goliatone/go-remote-media/internal/storage"
	"github.com/goliatone/go-remote-media/internal/transformation"
	"github.com/goliatone/go-remote-media/internal/variations"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

type (
	// RemoteResource describes one asset held by the remote service.
	RemoteResource       = resources.RemoteResource
	RemoteResourceParams = resources.Params
	ResourceType         = resources.ResourceType
	MediaType            = resources.MediaType
	Coordinates          = resources.Coordinates

	// Variation is a derived rendition of a RemoteResource.
	Variation = resources.Variation

	TransformationConfig = transformation.Config
	TransformationParams = transformation.Params
	Operation            = transformation.Operation
	Registry             = transformation.Registry
	Handler              = transformation.Handler
	HandlerFunc          = transformation.HandlerFunc
	Target               = transformation.Target
	Wire                 = transformation.Wire

	VariationDocument = variations.Document
	Resolver          = variations.Resolver

	SearchQuery      = search.Query
	SearchQueryInput = search.QueryInput
	SearchResult     = search.Result

	Provider            = provider.Provider
	VariationRequest    = provider.VariationRequest
	Gateway             = provider.Gateway
	VariationURLRequest = provider.VariationURLRequest

	Store = storage.Store

	RemoteResourceNotFoundError = provider.RemoteResourceNotFoundError
	FileNotFoundError           = provider.FileNotFoundError
	UnknownTransformationError  = transformation.UnknownTransformationError
	InvalidQueryError           = search.InvalidQueryError
	MalformedResponseError      = search.MalformedResponseError

	CommandHandlers                 = resourcecmd.HandlerSet
	UploadResourceCommand           = resourcecmd.UploadResourceCommand
	DeleteResourceCommand           = resourcecmd.DeleteResourceCommand
	UpdateTagsCommand               = resourcecmd.UpdateTagsCommand
	UpdateContextCommand            = resourcecmd.UpdateContextCommand
	SyncResourceCommand             = resourcecmd.SyncResourceCommand
	SaveVariationCoordinatesCommand = resourcecmd.SaveVariationCoordinatesCommand
	ResourceRef                     = resourcecmd.ResourceRef
)

const (
	ResourceTypeImage    = resources.ResourceTypeImage
	ResourceTypeVideo    = resources.ResourceTypeVideo
	ResourceTypeRaw      = resources.ResourceTypeRaw
	ResourceTypeDocument = resources.ResourceTypeDocument
	ResourceTypeOther    = resources.ResourceTypeOther
	ResourceTypeAuto     = resources.ResourceTypeAuto
)

var (
	ErrRemoteResourceNotFound = provider.ErrRemoteResourceNotFound
	ErrFileNotFound           = provider.ErrFileNotFound
	ErrGatewayNotFound        = provider.ErrGatewayNotFound
	ErrUnknownTransformation  = transformation.ErrUnknownTransformation
	ErrInvalidQuery           = search.ErrInvalidQuery
	ErrMalformedResponse      = search.ErrMalformedResponse
	ErrNullResource           = resources.ErrNullResource
	ErrInvalidDocument        = variations.ErrInvalidDocument
)

var (
	NewRemoteResource = resources.New
	ParseResourceType = resources.ParseResourceType
	NewQuery          = search.NewQuery
	LoadVariations    = variations.LoadFile
	ParseVariations   = variations.Parse
	NamedVariation    = provider.Named
	OverrideVariation = provider.Override
	Transform         = provider.Transform
	IsNotFound        = provider.IsNotFound
)

// Option customises the wiring performed by New.
type Option = di.Option

var (
	WithLoggerProvider    = di.WithLoggerProvider
	WithBunDB             = di.WithBunDB
	WithCache             = di.WithCache
	WithVariations        = di.WithVariations
	WithRegistry          = di.WithRegistry
	WithGateway           = di.WithGateway
	WithMetricsRegisterer = di.WithMetricsRegisterer
	WithCommandRegistry   = di.WithCommandRegistry
)

// Module is the top level runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional wiring overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Provider returns the remote resource provider.
func (m *Module) Provider() *Provider {
	return m.container.Provider()
}

// Resolver returns the variation resolver.
func (m *Module) Resolver() *Resolver {
	return m.container.Resolver()
}

// Registry returns the transformation registry. Handlers registered on it
// are visible to subsequent BuildVariation calls.
func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

// Store returns the resource store, or nil when it is disabled.
func (m *Module) Store() *Store {
	return m.container.Store()
}

// Commands returns the resource command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// Logger returns a logger scoped to module, routed through the configured
// provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}

// MetricsHandler serves the gateway call metrics, or nil when the metrics
// feature is off.
func (m *Module) MetricsHandler() http.Handler {
	gatherer := m.container.MetricsGatherer()
	if gatherer == nil {
		return nil
	}
	return metrics.Handler(gatherer)
}

// Close releases resources opened by New.
func (m *Module) Close() error {
	return m.container.Close()
}
