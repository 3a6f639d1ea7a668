package provider

import (
	"context"
	"errors"

	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
	"github.com/goliatone/go-remote-media/internal/transformation"
)

// ErrGatewayNotFound is wrapped by gateways when the remote service reports
// that a resource does not exist.
var ErrGatewayNotFound = errors.New("gateway: resource not found")

// VariationURLRequest asks a gateway for the URL of a rendition.
type VariationURLRequest struct {
	ResourceID     string
	ResourceType   resources.ResourceType
	Group          string
	Variation      string
	Transformation transformation.Wire
}

// Gateway is the boundary to the remote media service. Implementations
// return the service's decoded payloads and own authentication, retries
// and rate limiting.
type Gateway interface {
	Get(ctx context.Context, id string, resourceType resources.ResourceType) (map[string]any, error)
	Upload(ctx context.Context, path string, options map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, resourceType resources.ResourceType, options map[string]any) error

	AddTag(ctx context.Context, id string, resourceType resources.ResourceType, tag string) error
	RemoveTag(ctx context.Context, id string, resourceType resources.ResourceType, tag string) error
	RemoveAllTags(ctx context.Context, id string, resourceType resources.ResourceType) error
	ListTags(ctx context.Context) ([]string, error)

	Search(ctx context.Context, query search.Query) (map[string]any, error)
	SearchCount(ctx context.Context, query search.Query) (int, error)
	CountResources(ctx context.Context) (int, error)
	CountResourcesInFolder(ctx context.Context, folder string) (int, error)

	ListFolders(ctx context.Context) ([]string, error)
	ListSubFolders(ctx context.Context, parent string) ([]string, error)
	CreateFolder(ctx context.Context, path string) error

	Usage(ctx context.Context) (map[string]any, error)

	GetVariationURL(ctx context.Context, req VariationURLRequest) (string, error)
	GetVideoThumbnail(ctx context.Context, id string, options map[string]any) (string, error)
	GetVideoTag(ctx context.Context, id string, options map[string]any) (string, error)
	GetDownloadLink(ctx context.Context, id string, resourceType resources.ResourceType, options map[string]any) (string, error)
}
