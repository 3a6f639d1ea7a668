package transformation

import "github.com/goliatone/go-remote-media/internal/resources"

// Target identifies what is being rendered. Handlers read it, never write it.
type Target struct {
	Resource  *resources.RemoteResource
	Variation string
}

// Wire is the backend wire form: an ordered chain of parameter fragments,
// one per applied operation.
type Wire []Params

// IsEmpty reports whether the chain has no fragments.
func (w Wire) IsEmpty() bool {
	return len(w) == 0
}

// Clone copies every fragment.
func (w Wire) Clone() Wire {
	if w == nil {
		return nil
	}
	out := make(Wire, len(w))
	for i, fragment := range w {
		out[i] = fragment.Clone()
	}
	return out
}

// Append returns a copy of w with fragment added. Empty fragments are
// skipped.
func (w Wire) Append(fragment Params) Wire {
	out := w.Clone()
	if len(fragment) == 0 {
		return out
	}
	return append(out, fragment)
}

// Maps converts the chain to plain maps for gateways that take untyped
// options.
func (w Wire) Maps() []map[string]any {
	out := make([]map[string]any, len(w))
	for i, fragment := range w {
		out[i] = map[string]any(fragment.Clone())
	}
	return out
}

// Handler turns one operation into wire fragments. Implementations must not
// mutate wire or params and must not perform I/O.
type Handler interface {
	Apply(target Target, wire Wire, params Params) (Wire, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(target Target, wire Wire, params Params) (Wire, error)

func (f HandlerFunc) Apply(target Target, wire Wire, params Params) (Wire, error) {
	return f(target, wire, params)
}
