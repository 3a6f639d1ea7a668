package provider

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
	"github.com/goliatone/go-remote-media/internal/transformation"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// Provider is the facade callers use to work with remote resources. It holds
// no per-call state and is safe for concurrent use once constructed.
type Provider struct {
	gateway          Gateway
	composer         Composer
	resolver         VariationResolver
	logger           interfaces.Logger
	identifier       string
	upload           UploadDefaults
	videoTagFallback string
}

// New wires a provider. A nil composer falls back to the default
// transformation registry and a nil resolver resolves nothing.
func New(gateway Gateway, composer Composer, resolver VariationResolver, opts ...Option) *Provider {
	p := &Provider{
		gateway:          gateway,
		composer:         composer,
		resolver:         resolver,
		logger:           logging.NoOp(),
		identifier:       DefaultIdentifier,
		upload:           DefaultUploadDefaults(),
		videoTagFallback: DefaultVideoTagFallback,
	}
	if p.composer == nil {
		p.composer = transformation.NewDefaultRegistry()
	}
	if p.resolver == nil {
		p.resolver = noResolver{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Identifier names the backing service.
func (p *Provider) Identifier() string {
	return p.identifier
}

// SupportsFolders reports whether the backing service organises assets in
// folders.
func (p *Provider) SupportsFolders() bool {
	return true
}

// GetRemoteResource fetches and hydrates one resource.
func (p *Provider) GetRemoteResource(ctx context.Context, id string, resourceType resources.ResourceType) (*resources.RemoteResource, error) {
	p.logCall(ctx, "get", id, resourceType)
	raw, err := p.gateway.Get(ctx, id, resourceType)
	if err != nil {
		return nil, mapGatewayError("get", id, resourceType, err)
	}

	resource, err := resources.FromRaw(raw)
	if err != nil {
		p.logger.Debug("provider.get.incomplete", logging.FieldResourceID, id, "error", err)
		return nil, &RemoteResourceNotFoundError{ResourceID: id, ResourceType: resourceType}
	}
	return resource, nil
}

// Upload sends a local file to the remote service. Caller options override
// the defaults key by key; the "context" map is merged the same way.
func (p *Provider) Upload(ctx context.Context, path string, options map[string]any) (*resources.RemoteResource, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &FileNotFoundError{Path: path}
	}

	merged := p.uploadOptions(path, options)
	publicID, _ := merged["public_id"].(string)
	p.logCall(ctx, "upload", publicID, "")

	raw, err := p.gateway.Upload(ctx, path, merged)
	if err != nil {
		return nil, mapGatewayError("upload", "", "", err)
	}
	resource, err := resources.FromRaw(raw)
	if err != nil {
		return nil, mapGatewayError("upload", "", "", err)
	}
	return resource, nil
}

func (p *Provider) uploadOptions(path string, options map[string]any) map[string]any {
	defaults := map[string]any{
		"public_id":                 filepath.Base(path),
		"overwrite":                 p.upload.Overwrite,
		"invalidate":                p.upload.Invalidate,
		"discard_original_filename": p.upload.DiscardOriginalFilename,
		"context":                   map[string]any{"alt": "", "caption": ""},
		"resource_type":             string(p.upload.ResourceType),
		"tags":                      []string{},
	}

	for key, value := range options {
		if key == "context" {
			if extra, ok := value.(map[string]any); ok {
				maps.Copy(defaults["context"].(map[string]any), extra)
				continue
			}
		}
		defaults[key] = value
	}
	return defaults
}

// DeleteResource removes the resource from the remote service.
func (p *Provider) DeleteResource(ctx context.Context, resource *resources.RemoteResource) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "delete", resource.ResourceID, resource.ResourceType)
	err := p.gateway.Delete(ctx, resource.ResourceID)
	return mapGatewayError("delete", resource.ResourceID, resource.ResourceType, err)
}

func (p *Provider) AddTagToResource(ctx context.Context, resource *resources.RemoteResource, tag string) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "add_tag", resource.ResourceID, resource.ResourceType)
	err := p.gateway.AddTag(ctx, resource.ResourceID, resource.ResourceType, tag)
	return mapGatewayError("add_tag", resource.ResourceID, resource.ResourceType, err)
}

func (p *Provider) RemoveTagFromResource(ctx context.Context, resource *resources.RemoteResource, tag string) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "remove_tag", resource.ResourceID, resource.ResourceType)
	err := p.gateway.RemoveTag(ctx, resource.ResourceID, resource.ResourceType, tag)
	return mapGatewayError("remove_tag", resource.ResourceID, resource.ResourceType, err)
}

func (p *Provider) RemoveAllTagsFromResource(ctx context.Context, resource *resources.RemoteResource) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "remove_all_tags", resource.ResourceID, resource.ResourceType)
	err := p.gateway.RemoveAllTags(ctx, resource.ResourceID, resource.ResourceType)
	return mapGatewayError("remove_all_tags", resource.ResourceID, resource.ResourceType, err)
}

// UpdateTags replaces the resource's tags. Tags are comma joined without
// escaping, so a tag containing a comma is split by the service.
func (p *Provider) UpdateTags(ctx context.Context, resource *resources.RemoteResource, tags []string) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "update_tags", resource.ResourceID, resource.ResourceType)
	err := p.gateway.Update(ctx, resource.ResourceID, resource.ResourceType, map[string]any{
		"tags": strings.Join(tags, ","),
	})
	return mapGatewayError("update_tags", resource.ResourceID, resource.ResourceType, err)
}

// UpdateResourceContext replaces the resource's context metadata.
func (p *Provider) UpdateResourceContext(ctx context.Context, resource *resources.RemoteResource, values map[string]any) error {
	if resource.IsNull() {
		return resources.ErrNullResource
	}
	p.logCall(ctx, "update_context", resource.ResourceID, resource.ResourceType)
	err := p.gateway.Update(ctx, resource.ResourceID, resource.ResourceType, map[string]any{
		"context": values,
	})
	return mapGatewayError("update_context", resource.ResourceID, resource.ResourceType, err)
}

// SearchResources runs one page of a search. Records the service returns
// incomplete are skipped and reported in Result.Warnings.
func (p *Provider) SearchResources(ctx context.Context, query search.Query) (*search.Result, error) {
	p.logCall(ctx, "search", "", query.ResourceType())
	raw, err := p.gateway.Search(ctx, query)
	if err != nil {
		return nil, mapGatewayError("search", "", "", err)
	}
	result, err := search.FromMap(raw)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		p.logger.Warn("provider.search.skipped", "index", warning.Index, "reason", warning.Reason, "query", query.String())
	}
	return result, nil
}

func (p *Provider) SearchResourcesCount(ctx context.Context, query search.Query) (int, error) {
	p.logCall(ctx, "search_count", "", query.ResourceType())
	count, err := p.gateway.SearchCount(ctx, query)
	if err != nil {
		return 0, mapGatewayError("search_count", "", "", err)
	}
	return count, nil
}

func (p *Provider) CountResources(ctx context.Context) (int, error) {
	p.logCall(ctx, "count", "", "")
	count, err := p.gateway.CountResources(ctx)
	if err != nil {
		return 0, mapGatewayError("count", "", "", err)
	}
	return count, nil
}

func (p *Provider) CountResourcesInFolder(ctx context.Context, folder string) (int, error) {
	p.logCall(ctx, "count_in_folder", "", "")
	count, err := p.gateway.CountResourcesInFolder(ctx, folder)
	if err != nil {
		return 0, mapGatewayError("count_in_folder", "", "", err)
	}
	return count, nil
}

func (p *Provider) ListFolders(ctx context.Context) ([]string, error) {
	p.logCall(ctx, "list_folders", "", "")
	folders, err := p.gateway.ListFolders(ctx)
	if err != nil {
		return nil, mapGatewayError("list_folders", "", "", err)
	}
	return folders, nil
}

func (p *Provider) ListSubFolders(ctx context.Context, parent string) ([]string, error) {
	p.logCall(ctx, "list_sub_folders", "", "")
	folders, err := p.gateway.ListSubFolders(ctx, parent)
	if err != nil {
		return nil, mapGatewayError("list_sub_folders", "", "", err)
	}
	return folders, nil
}

func (p *Provider) CreateFolder(ctx context.Context, path string) error {
	p.logCall(ctx, "create_folder", "", "")
	return mapGatewayError("create_folder", "", "", p.gateway.CreateFolder(ctx, path))
}

func (p *Provider) ListTags(ctx context.Context) ([]string, error) {
	p.logCall(ctx, "list_tags", "", "")
	tags, err := p.gateway.ListTags(ctx)
	if err != nil {
		return nil, mapGatewayError("list_tags", "", "", err)
	}
	return tags, nil
}

// Usage returns the service's account usage report.
func (p *Provider) Usage(ctx context.Context) (map[string]any, error) {
	p.logCall(ctx, "usage", "", "")
	usage, err := p.gateway.Usage(ctx)
	if err != nil {
		return nil, mapGatewayError("usage", "", "", err)
	}
	return usage, nil
}

// BuildVariation renders a variation URL. An empty request, or a name the
// resolver does not know, yields the resource's secure URL without calling
// the gateway.
func (p *Provider) BuildVariation(ctx context.Context, resource *resources.RemoteResource, group string, req VariationRequest) (resources.Variation, error) {
	if resource.IsNull() {
		return resources.Variation{}, resources.ErrNullResource
	}

	wire, ok, err := p.resolveWire(resource, group, req)
	if err != nil {
		return resources.Variation{}, err
	}
	if !ok {
		return resources.NewVariation(resource, resource.SecureURL)
	}

	logger := logging.WithVariation(p.logger, group, req.label())
	logger.Debug("provider.gateway.call",
		logging.FieldOperation, "variation_url",
		logging.FieldResourceID, resource.ResourceID,
		logging.FieldResourceType, string(resource.ResourceType),
	)

	url, err := p.gateway.GetVariationURL(ctx, VariationURLRequest{
		ResourceID:     resource.ResourceID,
		ResourceType:   resource.ResourceType,
		Group:          group,
		Variation:      req.label(),
		Transformation: wire,
	})
	if err != nil {
		return resources.Variation{}, mapGatewayError("variation_url", resource.ResourceID, resource.ResourceType, err)
	}
	return resources.NewVariation(resource, url)
}

// GetVideoThumbnail returns a thumbnail URL for a video. Caller options win
// over the defaults.
func (p *Provider) GetVideoThumbnail(ctx context.Context, resource *resources.RemoteResource, options map[string]any) (string, error) {
	if resource.IsNull() {
		return "", resources.ErrNullResource
	}
	merged := map[string]any{
		"start_offset":  "auto",
		"resource_type": string(resources.ResourceTypeVideo),
	}
	maps.Copy(merged, options)

	p.logCall(ctx, "video_thumbnail", resource.ResourceID, resource.ResourceType)
	url, err := p.gateway.GetVideoThumbnail(ctx, resource.ResourceID, merged)
	if err != nil {
		return "", mapGatewayError("video_thumbnail", resource.ResourceID, resource.ResourceType, err)
	}
	return url, nil
}

// GetVideoThumbnailForVariation resolves req and renders the thumbnail with
// the resulting options.
func (p *Provider) GetVideoThumbnailForVariation(ctx context.Context, resource *resources.RemoteResource, group string, req VariationRequest) (string, error) {
	if resource.IsNull() {
		return "", resources.ErrNullResource
	}
	options, err := p.variationOptions(resource, group, req)
	if err != nil {
		return "", err
	}
	return p.GetVideoThumbnail(ctx, resource, options)
}

// GenerateVideoTag asks the gateway for an HTML video tag. The variation
// options become the poster and are added to the tag options where they do
// not collide.
func (p *Provider) GenerateVideoTag(ctx context.Context, resource *resources.RemoteResource, group string, req VariationRequest) (string, error) {
	if resource.IsNull() {
		return "", resources.ErrNullResource
	}
	variation, err := p.variationOptions(resource, group, req)
	if err != nil {
		return "", err
	}

	options := map[string]any{
		"fallback_content": p.videoTagFallback,
		"controls":         true,
		"poster":           maps.Clone(variation),
	}
	for key, value := range variation {
		if _, exists := options[key]; !exists {
			options[key] = value
		}
	}

	p.logCall(ctx, "video_tag", resource.ResourceID, resource.ResourceType)
	tag, err := p.gateway.GetVideoTag(ctx, resource.ResourceID, options)
	if err != nil {
		return "", mapGatewayError("video_tag", resource.ResourceID, resource.ResourceType, err)
	}
	return tag, nil
}

// GenerateDownloadLink returns an attachment download URL.
func (p *Provider) GenerateDownloadLink(ctx context.Context, resource *resources.RemoteResource) (string, error) {
	if resource.IsNull() {
		return "", resources.ErrNullResource
	}
	options := map[string]any{
		"type":          "upload",
		"resource_type": string(resource.ResourceType),
		"flags":         "attachment",
		"secure":        true,
	}

	p.logCall(ctx, "download_link", resource.ResourceID, resource.ResourceType)
	link, err := p.gateway.GetDownloadLink(ctx, resource.ResourceID, resource.ResourceType, options)
	if err != nil {
		return "", mapGatewayError("download_link", resource.ResourceID, resource.ResourceType, err)
	}
	return link, nil
}

func (p *Provider) logCall(ctx context.Context, operation, id string, resourceType resources.ResourceType) {
	logger := p.logger
	if ctx != nil {
		if scoped := logger.WithContext(ctx); scoped != nil {
			logger = scoped
		}
	}
	logging.WithResource(logger, id, string(resourceType)).Debug("provider.gateway.call", logging.FieldOperation, operation)
}

// IsNotFound reports whether err is a missing resource or upload file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRemoteResourceNotFound) || errors.Is(err, ErrFileNotFound)
}
