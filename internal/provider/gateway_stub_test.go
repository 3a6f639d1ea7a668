package provider_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/search"
)

type gatewayCall struct {
	Method  string
	ID      string
	Type    resources.ResourceType
	Path    string
	Tag     string
	Options map[string]any
	Query   search.Query
	Request provider.VariationURLRequest
}

// recordingGateway answers from canned fields and records every call.
type recordingGateway struct {
	mu    sync.Mutex
	calls []gatewayCall

	getPayload    map[string]any
	uploadPayload map[string]any
	searchPayload map[string]any
	count         int
	folders       []string
	tags          []string
	usage         map[string]any
	url           string
	err           error
}

func (g *recordingGateway) record(call gatewayCall) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

func (g *recordingGateway) Calls() []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]gatewayCall(nil), g.calls...)
}

func (g *recordingGateway) Get(_ context.Context, id string, resourceType resources.ResourceType) (map[string]any, error) {
	g.record(gatewayCall{Method: "Get", ID: id, Type: resourceType})
	return g.getPayload, g.err
}

func (g *recordingGateway) Upload(_ context.Context, path string, options map[string]any) (map[string]any, error) {
	g.record(gatewayCall{Method: "Upload", Path: path, Options: options})
	return g.uploadPayload, g.err
}

func (g *recordingGateway) Delete(_ context.Context, id string) error {
	g.record(gatewayCall{Method: "Delete", ID: id})
	return g.err
}

func (g *recordingGateway) Update(_ context.Context, id string, resourceType resources.ResourceType, options map[string]any) error {
	g.record(gatewayCall{Method: "Update", ID: id, Type: resourceType, Options: options})
	return g.err
}

func (g *recordingGateway) AddTag(_ context.Context, id string, resourceType resources.ResourceType, tag string) error {
	g.record(gatewayCall{Method: "AddTag", ID: id, Type: resourceType, Tag: tag})
	return g.err
}

func (g *recordingGateway) RemoveTag(_ context.Context, id string, resourceType resources.ResourceType, tag string) error {
	g.record(gatewayCall{Method: "RemoveTag", ID: id, Type: resourceType, Tag: tag})
	return g.err
}

func (g *recordingGateway) RemoveAllTags(_ context.Context, id string, resourceType resources.ResourceType) error {
	g.record(gatewayCall{Method: "RemoveAllTags", ID: id, Type: resourceType})
	return g.err
}

func (g *recordingGateway) ListTags(context.Context) ([]string, error) {
	g.record(gatewayCall{Method: "ListTags"})
	return g.tags, g.err
}

func (g *recordingGateway) Search(_ context.Context, query search.Query) (map[string]any, error) {
	g.record(gatewayCall{Method: "Search", Query: query})
	return g.searchPayload, g.err
}

func (g *recordingGateway) SearchCount(_ context.Context, query search.Query) (int, error) {
	g.record(gatewayCall{Method: "SearchCount", Query: query})
	return g.count, g.err
}

func (g *recordingGateway) CountResources(context.Context) (int, error) {
	g.record(gatewayCall{Method: "CountResources"})
	return g.count, g.err
}

func (g *recordingGateway) CountResourcesInFolder(_ context.Context, folder string) (int, error) {
	g.record(gatewayCall{Method: "CountResourcesInFolder", Path: folder})
	return g.count, g.err
}

func (g *recordingGateway) ListFolders(context.Context) ([]string, error) {
	g.record(gatewayCall{Method: "ListFolders"})
	return g.folders, g.err
}

func (g *recordingGateway) ListSubFolders(_ context.Context, parent string) ([]string, error) {
	g.record(gatewayCall{Method: "ListSubFolders", Path: parent})
	return g.folders, g.err
}

func (g *recordingGateway) CreateFolder(_ context.Context, path string) error {
	g.record(gatewayCall{Method: "CreateFolder", Path: path})
	return g.err
}

func (g *recordingGateway) Usage(context.Context) (map[string]any, error) {
	g.record(gatewayCall{Method: "Usage"})
	return g.usage, g.err
}

func (g *recordingGateway) GetVariationURL(_ context.Context, req provider.VariationURLRequest) (string, error) {
	g.record(gatewayCall{Method: "GetVariationURL", ID: req.ResourceID, Type: req.ResourceType, Request: req})
	return g.url, g.err
}

func (g *recordingGateway) GetVideoThumbnail(_ context.Context, id string, options map[string]any) (string, error) {
	g.record(gatewayCall{Method: "GetVideoThumbnail", ID: id, Options: options})
	return g.url, g.err
}

func (g *recordingGateway) GetVideoTag(_ context.Context, id string, options map[string]any) (string, error) {
	g.record(gatewayCall{Method: "GetVideoTag", ID: id, Options: options})
	return "<video></video>", g.err
}

func (g *recordingGateway) GetDownloadLink(_ context.Context, id string, resourceType resources.ResourceType, options map[string]any) (string, error) {
	g.record(gatewayCall{Method: "GetDownloadLink", ID: id, Type: resourceType, Options: options})
	return g.url, g.err
}

var _ provider.Gateway = (*recordingGateway)(nil)
