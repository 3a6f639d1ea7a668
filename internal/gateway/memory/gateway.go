// Package memory provides an in-process Gateway that behaves like the
// remote media service closely enough for local development, the CLI and
// integration tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const (
	DefaultBaseURL   = "https://res.cloudinary.com"
	DefaultCloudName = "demo"
	defaultPageSize  = 25
)

var videoFormats = map[string]bool{
	"mp4": true, "mov": true, "webm": true, "ogv": true, "avi": true, "mkv": true,
	"mp3": true, "wav": true, "ogg": true, "aac": true, "flac": true, "m4a": true,
}

var imageFormats = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "avif": true,
	"svg": true, "bmp": true, "tiff": true, "ico": true, "pdf": true, "heic": true,
}

type asset struct {
	payload map[string]any
	tags    []string
	context map[string]any
}

func (a *asset) snapshot() map[string]any {
	out := maps.Clone(a.payload)
	out["tags"] = slices.Clone(a.tags)
	out["context"] = maps.Clone(a.context)
	return out
}

// Gateway keeps assets in memory. It is safe for concurrent use.
type Gateway struct {
	mu      sync.RWMutex
	assets  map[string]*asset
	folders map[string]struct{}

	urls    *deliveryURLs
	now     func() time.Time
	logger  interfaces.Logger
	version int64

	pageSize int
	maxPage  int
}

// Option customises a Gateway.
type Option func(*gatewayOptions)

type gatewayOptions struct {
	baseURL   string
	cloudName string
	now       func() time.Time
	logger    interfaces.Logger
	pageSize  int
	maxPage   int
}

func WithBaseURL(baseURL string) Option {
	return func(o *gatewayOptions) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

func WithCloudName(cloudName string) Option {
	return func(o *gatewayOptions) {
		if cloudName = strings.TrimSpace(cloudName); cloudName != "" {
			o.cloudName = cloudName
		}
	}
}

// WithPageLimits sets the page size used when a query has no limit and the
// largest page returned. Non-positive values keep the defaults.
func WithPageLimits(pageSize, maxPage int) Option {
	return func(o *gatewayOptions) {
		if pageSize > 0 {
			o.pageSize = pageSize
		}
		if maxPage > 0 {
			o.maxPage = maxPage
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *gatewayOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *gatewayOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New returns an empty gateway.
func New(opts ...Option) *Gateway {
	options := gatewayOptions{
		baseURL:   DefaultBaseURL,
		cloudName: DefaultCloudName,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logging.NoOp(),
		pageSize:  defaultPageSize,
		maxPage:   search.MaxLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Gateway{
		assets:  map[string]*asset{},
		folders: map[string]struct{}{},
		urls:    newDeliveryURLs(options.baseURL, options.cloudName),
		now:     options.now,
		logger:  options.logger,

		pageSize: min(options.pageSize, options.maxPage),
		maxPage:  options.maxPage,
	}
}

var _ provider.Gateway = (*Gateway)(nil)

func assetKey(resourceType resources.ResourceType, id string) string {
	return string(resourceType) + ":" + id
}

func notFound(id string) error {
	return fmt.Errorf("memory gateway: %q: %w", id, provider.ErrGatewayNotFound)
}

// Seed stores a payload as if it had been uploaded. public_id and
// resource_type are required; url and secure_url are filled in when absent.
func (g *Gateway) Seed(payload map[string]any) error {
	id, _ := payload["public_id"].(string)
	rawType, _ := payload["resource_type"].(string)
	resourceType, ok := resources.ParseResourceType(rawType)
	if strings.TrimSpace(id) == "" || !ok {
		return fmt.Errorf("memory gateway: seed requires public_id and resource_type")
	}

	entry := &asset{payload: maps.Clone(payload), context: map[string]any{}}
	entry.tags = resources.ToStrings(payload["tags"])
	if ctxValues, ok := payload["context"].(map[string]any); ok {
		entry.context = maps.Clone(ctxValues)
	}
	delete(entry.payload, "tags")
	delete(entry.payload, "context")
	if err := g.fillURLs(entry.payload, resourceType, id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.assets[assetKey(resourceType, id)] = entry
	if folder := parentFolder(id); folder != "" {
		g.addFolderLocked(folder)
	}
	return nil
}

func (g *Gateway) fillURLs(payload map[string]any, resourceType resources.ResourceType, id string) error {
	if _, ok := payload["secure_url"].(string); !ok {
		secure, err := g.urls.build(string(resourceType), "upload", id, nil, true)
		if err != nil {
			return err
		}
		payload["secure_url"] = secure
	}
	if _, ok := payload["url"].(string); !ok {
		plain, err := g.urls.build(string(resourceType), "upload", id, nil, false)
		if err != nil {
			return err
		}
		payload["url"] = plain
	}
	return nil
}

func (g *Gateway) Get(_ context.Context, id string, resourceType resources.ResourceType) (map[string]any, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	entry, ok := g.assets[assetKey(resourceType, id)]
	if !ok {
		return nil, notFound(id)
	}
	return entry.snapshot(), nil
}

// Upload reads the file size from disk and registers the asset. An existing
// asset is kept when overwrite is false.
func (g *Gateway) Upload(_ context.Context, path string, options map[string]any) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("memory gateway: upload: %w", err)
	}

	publicID, _ := options["public_id"].(string)
	if strings.TrimSpace(publicID) == "" {
		publicID = filepath.Base(path)
	}
	folder := ""
	if rawFolder, ok := options["folder"].(string); ok {
		folder = normalizeFolder(rawFolder)
	}
	if folder != "" {
		publicID = folder + "/" + publicID
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	resourceType := inferResourceType(options["resource_type"], format)
	key := assetKey(resourceType, publicID)

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.assets[key]; ok {
		if overwrite, _ := options["overwrite"].(bool); !overwrite {
			return existing.snapshot(), nil
		}
	}

	g.version++
	payload := map[string]any{
		"public_id":     publicID,
		"resource_type": string(resourceType),
		"format":        format,
		"bytes":         info.Size(),
		"version":       g.version,
		"created_at":    g.now().Format(time.RFC3339),
	}
	if folder != "" {
		payload["folder"] = folder
	}
	if discard, _ := options["discard_original_filename"].(bool); !discard {
		payload["original_filename"] = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := g.fillURLs(payload, resourceType, publicID); err != nil {
		return nil, err
	}

	entry := &asset{payload: payload, tags: resources.ToStrings(options["tags"]), context: map[string]any{}}
	if ctxValues, ok := options["context"].(map[string]any); ok {
		for k, v := range ctxValues {
			if s, isString := v.(string); !isString || s != "" {
				entry.context[k] = v
			}
		}
	}
	g.assets[key] = entry
	if folder != "" {
		g.addFolderLocked(folder)
	}

	g.logger.Debug("memory.upload", logging.FieldResourceID, publicID, logging.FieldResourceType, string(resourceType))
	return entry.snapshot(), nil
}

func (g *Gateway) Delete(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	deleted := false
	for _, resourceType := range resources.ResourceTypes() {
		key := assetKey(resourceType, id)
		if _, ok := g.assets[key]; ok {
			delete(g.assets, key)
			deleted = true
		}
	}
	if !deleted {
		return notFound(id)
	}
	return nil
}

// Update applies "tags" (comma separated) and "context" options.
func (g *Gateway) Update(_ context.Context, id string, resourceType resources.ResourceType, options map[string]any) error {
	return g.withAsset(id, resourceType, func(entry *asset) {
		if _, ok := options["tags"]; ok {
			entry.tags = resources.ToStrings(options["tags"])
		}
		if ctxValues, ok := options["context"].(map[string]any); ok {
			entry.context = maps.Clone(ctxValues)
		}
	})
}

func (g *Gateway) AddTag(_ context.Context, id string, resourceType resources.ResourceType, tag string) error {
	tag = strings.TrimSpace(tag)
	return g.withAsset(id, resourceType, func(entry *asset) {
		if tag != "" && !slices.Contains(entry.tags, tag) {
			entry.tags = append(entry.tags, tag)
		}
	})
}

func (g *Gateway) RemoveTag(_ context.Context, id string, resourceType resources.ResourceType, tag string) error {
	tag = strings.TrimSpace(tag)
	return g.withAsset(id, resourceType, func(entry *asset) {
		entry.tags = slices.DeleteFunc(entry.tags, func(existing string) bool { return existing == tag })
	})
}

func (g *Gateway) RemoveAllTags(_ context.Context, id string, resourceType resources.ResourceType) error {
	return g.withAsset(id, resourceType, func(entry *asset) {
		entry.tags = nil
	})
}

// ListTags returns every tag in use, sorted.
func (g *Gateway) ListTags(context.Context) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, entry := range g.assets {
		for _, tag := range entry.tags {
			seen[tag] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// Usage reports a summary in the shape of the service's usage endpoint.
func (g *Gateway) Usage(context.Context) (map[string]any, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var bytes int64
	for _, entry := range g.assets {
		size, _ := resources.ToInt64(entry.payload["bytes"])
		bytes += size
	}
	return map[string]any{
		"plan":              "memory",
		"resources":         len(g.assets),
		"derived_resources": 0,
		"storage":           map[string]any{"usage": bytes},
	}, nil
}

func (g *Gateway) withAsset(id string, resourceType resources.ResourceType, fn func(*asset)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.assets[assetKey(resourceType, id)]
	if !ok {
		return notFound(id)
	}
	fn(entry)
	return nil
}

func inferResourceType(requested any, format string) resources.ResourceType {
	if raw, ok := requested.(string); ok {
		if parsed, ok := resources.ParseResourceType(raw); ok {
			return parsed
		}
	}
	switch {
	case imageFormats[format]:
		return resources.ResourceTypeImage
	case videoFormats[format]:
		return resources.ResourceTypeVideo
	default:
		return resources.ResourceTypeRaw
	}
}
