package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
)

// InstrumentedGateway decorates a Gateway with call metrics.
type InstrumentedGateway struct {
	next    provider.Gateway
	metrics GatewayMetrics
	now     func() time.Time
}

var _ provider.Gateway = (*InstrumentedGateway)(nil)

// Instrument wraps next. A nil recorder yields Noop.
func Instrument(next provider.Gateway, recorder GatewayMetrics) *InstrumentedGateway {
	if recorder == nil {
		recorder = Noop{}
	}
	return &InstrumentedGateway{next: next, metrics: recorder, now: time.Now}
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, provider.ErrGatewayNotFound):
		return StatusNotFound
	default:
		return StatusError
	}
}

func observe[T any](g *InstrumentedGateway, operation string, call func() (T, error)) (T, error) {
	started := g.now()
	value, err := call()
	g.metrics.ObserveCall(operation, statusOf(err), g.now().Sub(started))
	return value, err
}

func observeErr(g *InstrumentedGateway, operation string, call func() error) error {
	_, err := observe(g, operation, func() (struct{}, error) {
		return struct{}{}, call()
	})
	return err
}

func (g *InstrumentedGateway) Get(ctx context.Context, id string, resourceType resources.ResourceType) (map[string]any, error) {
	return observe(g, "get", func() (map[string]any, error) { return g.next.Get(ctx, id, resourceType) })
}

func (g *InstrumentedGateway) Upload(ctx context.Context, path string, options map[string]any) (map[string]any, error) {
	return observe(g, "upload", func() (map[string]any, error) { return g.next.Upload(ctx, path, options) })
}

func (g *InstrumentedGateway) Delete(ctx context.Context, id string) error {
	return observeErr(g, "delete", func() error { return g.next.Delete(ctx, id) })
}

func (g *InstrumentedGateway) Update(ctx context.Context, id string, resourceType resources.ResourceType, options map[string]any) error {
	return observeErr(g, "update", func() error { return g.next.Update(ctx, id, resourceType, options) })
}

func (g *InstrumentedGateway) AddTag(ctx context.Context, id string, resourceType resources.ResourceType, tag string) error {
	return observeErr(g, "add_tag", func() error { return g.next.AddTag(ctx, id, resourceType, tag) })
}

func (g *InstrumentedGateway) RemoveTag(ctx context.Context, id string, resourceType resources.ResourceType, tag string) error {
	return observeErr(g, "remove_tag", func() error { return g.next.RemoveTag(ctx, id, resourceType, tag) })
}

func (g *InstrumentedGateway) RemoveAllTags(ctx context.Context, id string, resourceType resources.ResourceType) error {
	return observeErr(g, "remove_all_tags", func() error { return g.next.RemoveAllTags(ctx, id, resourceType) })
}

func (g *InstrumentedGateway) ListTags(ctx context.Context) ([]string, error) {
	return observe(g, "list_tags", func() ([]string, error) { return g.next.ListTags(ctx) })
}

func (g *InstrumentedGateway) Search(ctx context.Context, query search.Query) (map[string]any, error) {
	return observe(g, "search", func() (map[string]any, error) { return g.next.Search(ctx, query) })
}

func (g *InstrumentedGateway) SearchCount(ctx context.Context, query search.Query) (int, error) {
	return observe(g, "search_count", func() (int, error) { return g.next.SearchCount(ctx, query) })
}

func (g *InstrumentedGateway) CountResources(ctx context.Context) (int, error) {
	return observe(g, "count", func() (int, error) { return g.next.CountResources(ctx) })
}

func (g *InstrumentedGateway) CountResourcesInFolder(ctx context.Context, folder string) (int, error) {
	return observe(g, "count_in_folder", func() (int, error) { return g.next.CountResourcesInFolder(ctx, folder) })
}

func (g *InstrumentedGateway) ListFolders(ctx context.Context) ([]string, error) {
	return observe(g, "list_folders", func() ([]string, error) { return g.next.ListFolders(ctx) })
}

func (g *InstrumentedGateway) ListSubFolders(ctx context.Context, parent string) ([]string, error) {
	return observe(g, "list_sub_folders", func() ([]string, error) { return g.next.ListSubFolders(ctx, parent) })
}

func (g *InstrumentedGateway) CreateFolder(ctx context.Context, path string) error {
	return observeErr(g, "create_folder", func() error { return g.next.CreateFolder(ctx, path) })
}

func (g *InstrumentedGateway) Usage(ctx context.Context) (map[string]any, error) {
	return observe(g, "usage", func() (map[string]any, error) { return g.next.Usage(ctx) })
}

func (g *InstrumentedGateway) GetVariationURL(ctx context.Context, req provider.VariationURLRequest) (string, error) {
	return observe(g, "variation_url", func() (string, error) { return g.next.GetVariationURL(ctx, req) })
}

func (g *InstrumentedGateway) GetVideoThumbnail(ctx context.Context, id string, options map[string]any) (string, error) {
	return observe(g, "video_thumbnail", func() (string, error) { return g.next.GetVideoThumbnail(ctx, id, options) })
}

func (g *InstrumentedGateway) GetVideoTag(ctx context.Context, id string, options map[string]any) (string, error) {
	return observe(g, "video_tag", func() (string, error) { return g.next.GetVideoTag(ctx, id, options) })
}

func (g *InstrumentedGateway) GetDownloadLink(ctx context.Context, id string, resourceType resources.ResourceType, options map[string]any) (string, error) {
	return observe(g, "download_link", func() (string, error) { return g.next.GetDownloadLink(ctx, id, resourceType, options) })
}
