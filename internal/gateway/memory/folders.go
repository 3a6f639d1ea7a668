package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"
)

// normalizeFolder slugs each path segment: "My Photos/2024 Trip" becomes
// "my-photos/2024-trip". Empty segments are dropped.
func normalizeFolder(path string) string {
	normalizer := slug.Default()
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if normalized, err := normalizer.Normalize(segment); err == nil && normalized != "" {
			segment = normalized
		}
		segments = append(segments, segment)
	}
	return strings.Join(segments, "/")
}

func parentFolder(publicID string) string {
	idx := strings.LastIndex(publicID, "/")
	if idx <= 0 {
		return ""
	}
	return publicID[:idx]
}

func (g *Gateway) addFolderLocked(folder string) {
	segments := strings.Split(folder, "/")
	for i := range segments {
		g.folders[strings.Join(segments[:i+1], "/")] = struct{}{}
	}
}

// ListFolders returns the root folders, sorted.
func (g *Gateway) ListFolders(context.Context) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.childrenLocked(""), nil
}

// ListSubFolders returns the direct children of parent as full paths.
func (g *Gateway) ListSubFolders(_ context.Context, parent string) ([]string, error) {
	parent = normalizeFolder(parent)
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.folders[parent]; !ok || parent == "" {
		return nil, notFound(parent)
	}
	return g.childrenLocked(parent), nil
}

func (g *Gateway) childrenLocked(parent string) []string {
	depth := 1
	prefix := ""
	if parent != "" {
		depth = strings.Count(parent, "/") + 2
		prefix = parent + "/"
	}
	out := make([]string, 0)
	for _, folder := range slices.Sorted(maps.Keys(g.folders)) {
		if strings.HasPrefix(folder, prefix) && strings.Count(folder, "/")+1 == depth {
			out = append(out, folder)
		}
	}
	return out
}

// CreateFolder registers path and its parents.
func (g *Gateway) CreateFolder(_ context.Context, path string) error {
	folder := normalizeFolder(path)
	if folder == "" {
		return fmt.Errorf("memory gateway: folder path is required")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addFolderLocked(folder)
	return nil
}

func (g *Gateway) CountResources(context.Context) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.assets), nil
}

func (g *Gateway) CountResourcesInFolder(_ context.Context, folder string) (int, error) {
	folder = normalizeFolder(folder)
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, entry := range g.assets {
		id, _ := entry.payload["public_id"].(string)
		if inFolder(id, folder) {
			count++
		}
	}
	return count, nil
}

func inFolder(publicID, folder string) bool {
	return folder == "" || strings.HasPrefix(publicID, folder+"/")
}
