package resources

import (
	"sort"
	"strings"
)

// ResourceType is the storage category the remote service files an asset
// under.
type ResourceType string

const (
	ResourceTypeImage    ResourceType = "image"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypeRaw      ResourceType = "raw"
	ResourceTypeDocument ResourceType = "document"
	ResourceTypeOther    ResourceType = "other"

	// ResourceTypeAuto asks the service to infer the type. It is only valid
	// as an upload option.
	ResourceTypeAuto ResourceType = "auto"
)

// ResourceTypes lists the types a stored resource can carry.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceTypeImage,
		ResourceTypeVideo,
		ResourceTypeRaw,
		ResourceTypeDocument,
		ResourceTypeOther,
	}
}

// ParseResourceType normalises a wire value. Unknown values report false.
func ParseResourceType(value string) (ResourceType, bool) {
	candidate := ResourceType(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range ResourceTypes() {
		if candidate == known {
			return candidate, true
		}
	}
	return "", false
}

// MediaType is the content classification derived from the resource type
// and its format.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
)

// The service stores PDFs and office files under "image" and audio under
// "video"; these formats decide the reclassification.
var (
	documentFormats = map[string]struct{}{
		"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
		"odt": {}, "ods": {}, "odp": {}, "rtf": {}, "txt": {}, "csv": {}, "eps": {}, "ai": {},
	}
	audioFormats = map[string]struct{}{
		"mp3": {}, "wav": {}, "aac": {}, "ogg": {}, "flac": {}, "m4a": {}, "aiff": {}, "wma": {},
	}
)

// ClassifyMediaType derives the media type of an asset.
func ClassifyMediaType(resourceType ResourceType, format string) MediaType {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	_, isDocument := documentFormats[format]

	switch resourceType {
	case ResourceTypeImage:
		if isDocument {
			return MediaTypeOther
		}
		return MediaTypeImage
	case ResourceTypeVideo:
		if _, ok := audioFormats[format]; ok {
			return MediaTypeAudio
		}
		return MediaTypeVideo
	case ResourceTypeRaw, ResourceTypeDocument:
		if isDocument {
			return MediaTypeDocument
		}
	}
	return MediaTypeOther
}

// Coordinates is a crop rectangle stored for one variation name.
type Coordinates struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"w"`
	Height int `json:"h"`
}

// IsZero reports whether no crop area was set.
func (c Coordinates) IsZero() bool {
	return c == Coordinates{}
}

// ToMap renders the coordinates with their wire keys.
func (c Coordinates) ToMap() map[string]any {
	return map[string]any{"x": c.X, "y": c.Y, "w": c.Width, "h": c.Height}
}

// CoordinatesFromMap reads x, y, w and h. It reports false when any key is
// missing or not numeric.
func CoordinatesFromMap(raw map[string]any) (Coordinates, bool) {
	var out Coordinates
	fields := []struct {
		key    string
		target *int
	}{
		{"x", &out.X}, {"y", &out.Y}, {"w", &out.Width}, {"h", &out.Height},
	}
	for _, field := range fields {
		value, ok := ToInt(raw[field.key])
		if !ok {
			return Coordinates{}, false
		}
		*field.target = value
	}
	return out, true
}

// RemoteResource describes one asset held by the remote service. A value
// with an empty ResourceID is the not-found sentinel.
type RemoteResource struct {
	ResourceID   string
	ResourceType ResourceType
	MediaType    MediaType
	URL          string
	SecureURL    string
	Size         int64
	Format       string
	Metadata     map[string]any
	Variations   map[string]Coordinates
}

// Params is the input accepted by New.
type Params struct {
	ResourceID   string
	ResourceType ResourceType
	URL          string
	SecureURL    string
	Size         int64
	Format       string
	Metadata     map[string]any
	Variations   map[string]Coordinates
}

// New builds a resource from explicit values and derives its media type.
// Maps are copied.
func New(p Params) *RemoteResource {
	size := p.Size
	if size < 0 {
		size = 0
	}
	r := &RemoteResource{
		ResourceID:   strings.TrimSpace(p.ResourceID),
		ResourceType: p.ResourceType,
		MediaType:    ClassifyMediaType(p.ResourceType, p.Format),
		URL:          p.URL,
		SecureURL:    p.SecureURL,
		Size:         size,
		Format:       p.Format,
		Metadata:     cloneMap(p.Metadata),
		Variations:   cloneVariations(p.Variations),
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
	if r.Variations == nil {
		r.Variations = map[string]Coordinates{}
	}
	return r
}

// Null returns the not-found sentinel.
func Null() *RemoteResource {
	return &RemoteResource{}
}

// IsNull reports whether r is the not-found sentinel. A nil pointer counts.
func (r *RemoteResource) IsNull() bool {
	return r == nil || strings.TrimSpace(r.ResourceID) == ""
}

// Clone returns a deep copy.
func (r *RemoteResource) Clone() *RemoteResource {
	if r == nil {
		return nil
	}
	out := *r
	out.Metadata = cloneMap(r.Metadata)
	out.Variations = cloneVariations(r.Variations)
	return &out
}

// Coordinates returns the stored crop for a variation name.
func (r *RemoteResource) Coordinates(variation string) (Coordinates, bool) {
	if r == nil {
		return Coordinates{}, false
	}
	coords, ok := r.Variations[variation]
	return coords, ok
}

// WithCoordinates returns a copy carrying coords for the named variation.
func (r *RemoteResource) WithCoordinates(variation string, coords Coordinates) *RemoteResource {
	out := r.Clone()
	if out == nil {
		return nil
	}
	if out.Variations == nil {
		out.Variations = map[string]Coordinates{}
	}
	out.Variations[variation] = coords
	return out
}

// Tags returns the tags from metadata, sorted.
func (r *RemoteResource) Tags() []string {
	if r == nil {
		return nil
	}
	tags := ToStrings(r.Metadata["tags"])
	sort.Strings(tags)
	return tags
}

// Alt returns the alternative text stored in the resource context.
func (r *RemoteResource) Alt() string {
	return r.contextValue("alt")
}

// Caption returns the caption stored in the resource context.
func (r *RemoteResource) Caption() string {
	return r.contextValue("caption")
}

func (r *RemoteResource) contextValue(key string) string {
	if r == nil {
		return ""
	}
	ctx, _ := r.Metadata["context"].(map[string]any)
	if custom, ok := ctx["custom"].(map[string]any); ok {
		ctx = custom
	}
	value, _ := ctx[key].(string)
	return value
}

func cloneVariations(src map[string]Coordinates) map[string]Coordinates {
	if src == nil {
		return nil
	}
	out := make(map[string]Coordinates, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return v
	}
}
