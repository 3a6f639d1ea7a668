package memory

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-remote-media/internal/transformation"
)

const (
	deliveryGroup = "delivery"
	assetRoute    = "asset"
)

// deliveryURLs builds asset URLs in the remote service's layout:
// <base>/<cloud>/<resource_type>/<delivery>/<transformation>/<public_id>.
type deliveryURLs struct {
	manager   *urlkit.RouteManager
	cloudName string
}

func newDeliveryURLs(baseURL, cloudName string) *deliveryURLs {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    deliveryGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					assetRoute: "/:cloud/:resource_type/:delivery",
				},
			},
		},
	})
	return &deliveryURLs{manager: manager, cloudName: cloudName}
}

// build renders the URL. An empty wire omits the transformation segment;
// secure false downgrades the scheme to http.
func (d *deliveryURLs) build(resourceType, delivery, publicID string, wire transformation.Wire, secure bool) (string, error) {
	builder := d.manager.Group(deliveryGroup).Builder(assetRoute)
	builder.WithParam("cloud", d.cloudName)
	builder.WithParam("resource_type", resourceType)
	builder.WithParam("delivery", delivery)

	prefix, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("memory gateway: build delivery url: %w", err)
	}

	segments := make([]string, 0, 2)
	if rendered := transformation.String(wire); rendered != "" {
		segments = append(segments, rendered)
	}
	segments = append(segments, publicID)

	full, err := url.JoinPath(prefix, segments...)
	if err != nil {
		return "", fmt.Errorf("memory gateway: join delivery url: %w", err)
	}
	if !secure {
		full = strings.Replace(full, "https://", "http://", 1)
	}
	return full, nil
}
