package variations

import (
	"sort"
	"strings"

	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/transformation"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// DefaultGroupName is used when neither the document nor the options name a
// default group.
const DefaultGroupName = "default"

// Resolver answers variation lookups against an immutable Document. It is
// safe for concurrent use.
type Resolver struct {
	doc          *Document
	defaultGroup string
	embedGroup   string
	logger       interfaces.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithDefaultGroup overrides the document's default group.
func WithDefaultGroup(group string) Option {
	return func(r *Resolver) {
		if group = strings.TrimSpace(group); group != "" {
			r.defaultGroup = group
		}
	}
}

// WithEmbedGroup overrides the document's embed group.
func WithEmbedGroup(group string) Option {
	return func(r *Resolver) {
		if group = strings.TrimSpace(group); group != "" {
			r.embedGroup = group
		}
	}
}

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver over doc. A nil doc resolves nothing.
func NewResolver(doc *Document, opts ...Option) *Resolver {
	if doc == nil {
		doc = &Document{}
	}
	r := &Resolver{
		doc:          doc,
		defaultGroup: doc.DefaultGroup,
		embedGroup:   doc.EmbedGroup,
		logger:       logging.NoOp(),
	}
	if r.defaultGroup == "" {
		r.defaultGroup = DefaultGroupName
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// DefaultGroup returns the group used when a requested group is absent.
func (r *Resolver) DefaultGroup() string {
	return r.defaultGroup
}

// Groups lists the configured groups, sorted.
func (r *Resolver) Groups() []string {
	return r.doc.GroupNames()
}

// GetVariation returns the configuration of name in group. An absent group
// falls back to the default group; an absent name reports false. Groups are
// never merged.
func (r *Resolver) GetVariation(group, name string) (transformation.Config, bool) {
	definitions, resolvedGroup := r.group(group)
	def, ok := definitions[strings.TrimSpace(name)]
	if !ok {
		logging.WithVariation(r.logger, resolvedGroup, name).Debug("variations.lookup.miss", "requested_group", group)
		return nil, false
	}
	return def.Transformations.Clone(), true
}

// GetVariationsForGroup returns every variation of group, falling back to the
// default group when group is absent.
func (r *Resolver) GetVariationsForGroup(group string) map[string]transformation.Config {
	definitions, _ := r.group(group)
	out := make(map[string]transformation.Config, len(definitions))
	for name, def := range definitions {
		out[name] = def.Transformations.Clone()
	}
	return out
}

// GetEmbedVariations returns the variations offered to rich text editors:
// the whole embed group when one is configured, otherwise the default group
// variations flagged embed.
func (r *Resolver) GetEmbedVariations() map[string]transformation.Config {
	out := map[string]transformation.Config{}
	if r.embedGroup != "" {
		for name, def := range r.doc.Groups[r.embedGroup] {
			out[name] = def.Transformations.Clone()
		}
		return out
	}
	for name, def := range r.doc.Groups[r.defaultGroup] {
		if def.Embed {
			out[name] = def.Transformations.Clone()
		}
	}
	return out
}

// GetEmbedCropVariations reduces the embed variations to their crop
// parameters. Variations without a crop operation are left out.
func (r *Resolver) GetEmbedCropVariations() map[string]transformation.Params {
	out := map[string]transformation.Params{}
	for name, cfg := range r.GetEmbedVariations() {
		if params, ok := cfg.Lookup("crop"); ok {
			if params == nil {
				params = transformation.Params{}
			}
			out[name] = params.Clone()
		}
	}
	return out
}

// Names returns the variation names available for group, sorted.
func (r *Resolver) Names(group string) []string {
	definitions, _ := r.group(group)
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Resolver) group(group string) (map[string]Definition, string) {
	group = strings.TrimSpace(group)
	if definitions, ok := r.doc.Groups[group]; ok {
		return definitions, group
	}
	return r.doc.Groups[r.defaultGroup], r.defaultGroup
}
