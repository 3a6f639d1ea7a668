package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-remote-media/internal/resources"
)

var ErrMalformedResponse = errors.New("search: malformed response")

// MalformedResponseError reports a page that cannot be parsed at all.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "search: malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// HitWarning records a resource skipped while parsing a page.
type HitWarning struct {
	Index  int
	Reason string
}

// Result is one page of search hits.
type Result struct {
	TotalCount int
	NextCursor string
	Hits       []*resources.RemoteResource
	Warnings   []HitWarning
}

// HasMore reports whether another page can be requested with NextCursor.
func (r *Result) HasMore() bool {
	return r != nil && r.NextCursor != ""
}

// FromResponse parses a JSON page body.
func FromResponse(body []byte) (*Result, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("decode body: %v", err)}
	}
	return FromMap(raw)
}

// FromMap parses a decoded page. total_count must be a non-negative integer
// and resources an array; next_cursor is optional. Records that cannot be
// hydrated are skipped and reported in Warnings.
func FromMap(raw map[string]any) (*Result, error) {
	if raw == nil {
		return nil, &MalformedResponseError{Reason: "empty body"}
	}

	rawTotal, ok := raw["total_count"]
	if !ok {
		return nil, &MalformedResponseError{Reason: "missing total_count"}
	}
	total, ok := resources.ToInt(rawTotal)
	if _, isString := rawTotal.(string); isString || !ok || total < 0 {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("total_count is not a non-negative integer: %v", rawTotal)}
	}

	var cursor string
	switch value := raw["next_cursor"].(type) {
	case nil:
	case string:
		cursor = value
	default:
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("next_cursor is not a string: %T", value)}
	}

	items, ok := raw["resources"].([]any)
	if !ok {
		return nil, &MalformedResponseError{Reason: "resources is not an array"}
	}

	result := &Result{
		TotalCount: total,
		NextCursor: cursor,
		Hits:       make([]*resources.RemoteResource, 0, len(items)),
	}
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			result.Warnings = append(result.Warnings, HitWarning{Index: i, Reason: fmt.Sprintf("record is %T, not an object", item)})
			continue
		}
		resource, err := resources.FromRaw(record)
		if err != nil {
			result.Warnings = append(result.Warnings, HitWarning{Index: i, Reason: err.Error()})
			continue
		}
		result.Hits = append(result.Hits, resource)
	}
	return result, nil
}
