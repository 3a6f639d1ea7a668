package memory

import (
	"context"
	"fmt"
	"html"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/transformation"
)

// Option keys consumed by the gateway instead of rendered as transformations.
var (
	thumbnailReserved = []string{"resource_type"}
	videoTagReserved  = []string{"fallback_content", "controls", "poster", "resource_type"}
	downloadReserved  = []string{"type", "resource_type", "secure"}
)

func (g *Gateway) GetVariationURL(_ context.Context, req provider.VariationURLRequest) (string, error) {
	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = resources.ResourceTypeImage
	}
	return g.urls.build(string(resourceType), "upload", req.ResourceID, req.Transformation, true)
}

// GetVideoThumbnail renders a jpg frame of the video.
func (g *Gateway) GetVideoThumbnail(_ context.Context, id string, options map[string]any) (string, error) {
	resourceType := stringOption(options, "resource_type", string(resources.ResourceTypeVideo))
	wire := optionsWire(options, thumbnailReserved...)
	return g.urls.build(resourceType, "upload", withFormat(id, "jpg"), wire, true)
}

// GetVideoTag renders an HTML5 video element with an mp4 source and a poster
// frame.
func (g *Gateway) GetVideoTag(ctx context.Context, id string, options map[string]any) (string, error) {
	source, err := g.urls.build(string(resources.ResourceTypeVideo), "upload", withFormat(id, "mp4"), optionsWire(options, videoTagReserved...), true)
	if err != nil {
		return "", err
	}

	posterOptions, _ := options["poster"].(map[string]any)
	poster, err := g.GetVideoThumbnail(ctx, id, posterOptions)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<video")
	if controls, _ := options["controls"].(bool); controls {
		b.WriteString(" controls")
	}
	fmt.Fprintf(&b, " poster=\"%s\">", html.EscapeString(poster))
	fmt.Fprintf(&b, "<source src=\"%s\" type=\"video/mp4\">", html.EscapeString(source))
	b.WriteString(html.EscapeString(stringOption(options, "fallback_content", "")))
	b.WriteString("</video>")
	return b.String(), nil
}

// GetDownloadLink renders a delivery URL carrying the requested flags, for
// example fl_attachment.
func (g *Gateway) GetDownloadLink(_ context.Context, id string, resourceType resources.ResourceType, options map[string]any) (string, error) {
	delivery := stringOption(options, "type", "upload")
	secure := true
	if value, ok := options["secure"].(bool); ok {
		secure = value
	}
	if value := stringOption(options, "resource_type", ""); value != "" {
		resourceType = resources.ResourceType(value)
	}
	return g.urls.build(string(resourceType), delivery, id, optionsWire(options, downloadReserved...), secure)
}

// optionsWire turns flat options into a wire chain. A "transformation" list
// of maps is used as the chain and any remaining keys form a final fragment.
func optionsWire(options map[string]any, reserved ...string) transformation.Wire {
	var wire transformation.Wire
	fragment := transformation.Params{}
	for key, value := range options {
		if slices.Contains(reserved, key) {
			continue
		}
		if key == "transformation" {
			if chain, ok := value.([]map[string]any); ok {
				for _, item := range chain {
					wire = wire.Append(transformation.Params(item))
				}
				continue
			}
		}
		fragment[key] = value
	}
	return wire.Append(fragment)
}

func stringOption(options map[string]any, key, fallback string) string {
	if value, ok := options[key].(string); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// withFormat swaps the extension of a public id.
func withFormat(id, format string) string {
	return strings.TrimSuffix(id, path.Ext(id)) + "." + format
}
