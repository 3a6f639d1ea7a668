package provider

import (
	"strings"

	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/transformation"
)

// VariationRequest selects what BuildVariation renders. At most one of the
// fields should be set; when several are, Params wins over Transform, which
// wins over Name.
type VariationRequest struct {
	// Name resolves through the variation resolver.
	Name string
	// Params are raw gateway options passed through untouched.
	Params transformation.Params
	// Transform is an ad-hoc configuration composed by the registry.
	Transform transformation.Config
}

// Named requests a configured variation.
func Named(name string) VariationRequest {
	return VariationRequest{Name: name}
}

// Override requests raw gateway options.
func Override(params transformation.Params) VariationRequest {
	return VariationRequest{Params: params}
}

// Transform requests an ad-hoc transformation chain.
func Transform(ops ...transformation.Operation) VariationRequest {
	return VariationRequest{Transform: transformation.NewConfig(ops...)}
}

// IsEmpty reports whether the request asks for the original asset.
func (r VariationRequest) IsEmpty() bool {
	return strings.TrimSpace(r.Name) == "" && len(r.Params) == 0 && r.Transform.IsEmpty()
}

// label names the request for logs and gateway calls.
func (r VariationRequest) label() string {
	switch {
	case len(r.Params) > 0:
		return "override"
	case !r.Transform.IsEmpty():
		return "adhoc"
	default:
		return strings.TrimSpace(r.Name)
	}
}

// Composer turns a transformation configuration into wire fragments.
// *transformation.Registry satisfies it.
type Composer interface {
	Compose(target transformation.Target, cfg transformation.Config) (transformation.Wire, error)
}

// VariationResolver looks up configured variations.
// *variations.Resolver satisfies it.
type VariationResolver interface {
	GetVariation(group, name string) (transformation.Config, bool)
}

type noResolver struct{}

func (noResolver) GetVariation(string, string) (transformation.Config, bool) {
	return nil, false
}

// resolveWire returns the wire chain for req. ok is false when the request
// resolves to nothing and the original asset should be used.
func (p *Provider) resolveWire(resource *resources.RemoteResource, group string, req VariationRequest) (transformation.Wire, bool, error) {
	if req.IsEmpty() {
		return nil, false, nil
	}

	if len(req.Params) > 0 {
		return transformation.Wire{req.Params.Clone()}, true, nil
	}

	if !req.Transform.IsEmpty() {
		wire, err := p.composer.Compose(transformation.Target{Resource: resource}, req.Transform)
		if err != nil {
			return nil, false, err
		}
		return wire, !wire.IsEmpty(), nil
	}

	name := strings.TrimSpace(req.Name)
	cfg, ok := p.resolver.GetVariation(group, name)
	if !ok || cfg.IsEmpty() {
		return nil, false, nil
	}
	wire, err := p.composer.Compose(transformation.Target{Resource: resource, Variation: name}, cfg)
	if err != nil {
		return nil, false, err
	}
	return wire, !wire.IsEmpty(), nil
}

// variationOptions flattens the resolved chain into gateway options. A
// single fragment is returned as-is; longer chains go under
// "transformation".
func (p *Provider) variationOptions(resource *resources.RemoteResource, group string, req VariationRequest) (map[string]any, error) {
	wire, ok, err := p.resolveWire(resource, group, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]any{}, nil
	}
	if len(wire) == 1 {
		return map[string]any(wire[0].Clone()), nil
	}
	return map[string]any{"transformation": wire.Maps()}, nil
}
