package resources

import (
	"fmt"
	"net/url"
	"strings"
)

// Variation is one rendition of a resource. Source is borrowed.
type Variation struct {
	URL    string
	Source *RemoteResource
}

// NewVariation validates rawURL as an absolute URL.
func NewVariation(source *RemoteResource, rawURL string) (Variation, error) {
	trimmed := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || trimmed == "" || parsed.Scheme == "" || parsed.Host == "" {
		return Variation{}, fmt.Errorf("%w: %q", ErrInvalidVariationURL, rawURL)
	}
	return Variation{URL: trimmed, Source: source}, nil
}

func (v Variation) String() string {
	return v.URL
}
