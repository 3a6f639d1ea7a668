package transformation

import (
	"sort"
	"strings"
)

// Registry maps operation names to handlers. It is populated during startup
// and read concurrently afterwards. Register is not synchronised; callers
// that register after startup must serialise those calls themselves.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// NewDefaultRegistry returns a registry holding the built-in handlers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// Register stores handler under name. Re-registering a name replaces the
// previous handler. Blank names and nil handlers are ignored.
func (r *Registry) Register(name string, handler Handler) {
	if r == nil || handler == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	r.handlers[name] = handler
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.handlers[strings.TrimSpace(name)]
	return ok
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (Handler, error) {
	name = strings.TrimSpace(name)
	if r != nil {
		if handler, ok := r.handlers[name]; ok {
			return handler, nil
		}
	}
	return nil, &UnknownTransformationError{Name: name}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compose applies cfg to target in operation order and returns the
// resulting wire chain. The first unknown operation or handler error aborts
// composition.
func (r *Registry) Compose(target Target, cfg Config) (Wire, error) {
	wire := Wire{}
	for _, op := range cfg {
		handler, err := r.Get(op.Name)
		if err != nil {
			return nil, err
		}
		next, err := handler.Apply(target, wire, op.Params)
		if err != nil {
			return nil, err
		}
		wire = next
	}
	return wire, nil
}
