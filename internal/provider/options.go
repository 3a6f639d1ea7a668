package provider

import (
	"strings"

	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

const (
	DefaultIdentifier       = "cloudinary"
	DefaultVideoTagFallback = "Your browser does not support HTML5 video tags"
)

// UploadDefaults are the options sent with every upload unless the caller
// overrides them.
type UploadDefaults struct {
	ResourceType            resources.ResourceType
	Overwrite               bool
	Invalidate              bool
	DiscardOriginalFilename bool
}

// DefaultUploadDefaults mirrors the remote service's recommended upload
// behaviour.
func DefaultUploadDefaults() UploadDefaults {
	return UploadDefaults{
		ResourceType:            resources.ResourceTypeAuto,
		Overwrite:               true,
		Invalidate:              true,
		DiscardOriginalFilename: true,
	}
}

// Option customises a Provider.
type Option func(*Provider)

// WithLogger sets the provider logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithIdentifier overrides the provider identifier.
func WithIdentifier(identifier string) Option {
	return func(p *Provider) {
		if identifier = strings.TrimSpace(identifier); identifier != "" {
			p.identifier = identifier
		}
	}
}

// WithUploadDefaults replaces the upload defaults. A blank resource type
// keeps "auto".
func WithUploadDefaults(defaults UploadDefaults) Option {
	return func(p *Provider) {
		if defaults.ResourceType == "" {
			defaults.ResourceType = resources.ResourceTypeAuto
		}
		p.upload = defaults
	}
}

// WithVideoTagFallback sets the fallback content rendered inside video tags.
func WithVideoTagFallback(text string) Option {
	return func(p *Provider) {
		if text = strings.TrimSpace(text); text != "" {
			p.videoTagFallback = text
		}
	}
}
