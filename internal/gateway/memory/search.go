package memory

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-remote-media/internal/search"
)

const cursorPrefix = "offset:"

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil || !strings.HasPrefix(string(raw), cursorPrefix) {
		return 0, fmt.Errorf("memory gateway: invalid cursor %q", cursor)
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("memory gateway: invalid cursor %q", cursor)
	}
	return offset, nil
}

// matchLocked returns the assets matching query ordered by public id.
func (g *Gateway) matchLocked(query search.Query) []*asset {
	text := strings.ToLower(strings.TrimSpace(query.Text()))
	folder := normalizeFolder(query.Folder())
	tag := strings.TrimSpace(query.Tag())

	matches := make([]*asset, 0)
	for _, entry := range g.assets {
		id, _ := entry.payload["public_id"].(string)
		resourceType, _ := entry.payload["resource_type"].(string)
		if query.ResourceType() != "" && resourceType != string(query.ResourceType()) {
			continue
		}
		if !inFolder(id, folder) {
			continue
		}
		if tag != "" && !slices.Contains(entry.tags, tag) {
			continue
		}
		if text != "" && !matchesText(entry, id, text) {
			continue
		}
		matches = append(matches, entry)
	}
	slices.SortFunc(matches, func(a, b *asset) int {
		left, _ := a.payload["public_id"].(string)
		right, _ := b.payload["public_id"].(string)
		return strings.Compare(left, right)
	})
	return matches
}

func matchesText(entry *asset, id, text string) bool {
	if strings.Contains(strings.ToLower(id), text) {
		return true
	}
	for _, tag := range entry.tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	for _, value := range entry.context {
		if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), text) {
			return true
		}
	}
	return false
}

// Search returns one page in the service's response shape. A zero limit
// uses the configured page size.
func (g *Gateway) Search(_ context.Context, query search.Query) (map[string]any, error) {
	offset, err := decodeCursor(query.NextCursor())
	if err != nil {
		return nil, err
	}
	limit := query.Limit()
	if limit <= 0 {
		limit = g.pageSize
	}
	limit = min(limit, g.maxPage)

	g.mu.RLock()
	defer g.mu.RUnlock()
	matches := g.matchLocked(query)

	offset = min(offset, len(matches))
	end := offset + min(limit, len(matches)-offset)
	page := make([]any, 0, end-offset)
	for i := offset; i < end; i++ {
		page = append(page, matches[i].snapshot())
	}

	response := map[string]any{
		"total_count": len(matches),
		"resources":   page,
	}
	if end < len(matches) {
		response["next_cursor"] = encodeCursor(end)
	}
	return response, nil
}

func (g *Gateway) SearchCount(_ context.Context, query search.Query) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.matchLocked(query)), nil
}
