package resources

import "strings"

// Metadata keys copied from the raw payload.
var metadataKeys = []string{
	"tags",
	"context",
	"width",
	"height",
	"version",
	"created_at",
	"folder",
	"original_filename",
	"duration",
	"alt",
	"caption",
}

// FromRaw hydrates a resource from a decoded service payload. public_id,
// resource_type, url and secure_url are required; a payload missing any of
// them yields an *IncompletePayloadError and no resource.
func FromRaw(raw map[string]any) (*RemoteResource, error) {
	var missing []string
	required := func(key string) string {
		value, _ := raw[key].(string)
		value = strings.TrimSpace(value)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	id := required("public_id")
	resourceType := required("resource_type")
	plainURL := required("url")
	secureURL := required("secure_url")
	if len(missing) > 0 {
		return nil, &IncompletePayloadError{Missing: missing}
	}

	size, _ := ToInt64(raw["bytes"])
	format, _ := raw["format"].(string)

	metadata := map[string]any{}
	for _, key := range metadataKeys {
		if value, ok := raw[key]; ok && value != nil {
			metadata[key] = cloneValue(value)
		}
	}

	variations := map[string]Coordinates{}
	if rawVariations, ok := raw["variations"].(map[string]any); ok {
		for name, value := range rawVariations {
			coords, ok := value.(map[string]any)
			if !ok {
				continue
			}
			if parsed, ok := CoordinatesFromMap(coords); ok {
				variations[name] = parsed
			}
		}
	}

	return New(Params{
		ResourceID:   id,
		ResourceType: ResourceType(strings.ToLower(resourceType)),
		URL:          plainURL,
		SecureURL:    secureURL,
		Size:         size,
		Format:       format,
		Metadata:     metadata,
		Variations:   variations,
	}), nil
}

// ToRaw renders a resource back into the payload shape FromRaw accepts.
func (r *RemoteResource) ToRaw() map[string]any {
	if r.IsNull() {
		return map[string]any{}
	}
	out := cloneMap(r.Metadata)
	if out == nil {
		out = map[string]any{}
	}
	out["public_id"] = r.ResourceID
	out["resource_type"] = string(r.ResourceType)
	out["url"] = r.URL
	out["secure_url"] = r.SecureURL
	out["bytes"] = r.Size
	if r.Format != "" {
		out["format"] = r.Format
	}
	if len(r.Variations) > 0 {
		variations := make(map[string]any, len(r.Variations))
		for name, coords := range r.Variations {
			variations[name] = coords.ToMap()
		}
		out["variations"] = variations
	}
	return out
}
