package transformation

import "strings"

// Operation is one named step of a transformation configuration.
type Operation struct {
	Name   string
	Params Params
}

// Config is an ordered list of operations. Handlers run in list order, and
// the same operation name may appear more than once.
type Config []Operation

// NewConfig builds a config from operations, dropping unnamed entries.
func NewConfig(ops ...Operation) Config {
	out := make(Config, 0, len(ops))
	for _, op := range ops {
		name := strings.TrimSpace(op.Name)
		if name == "" {
			continue
		}
		out = append(out, Operation{Name: name, Params: op.Params.Clone()})
	}
	return out
}

// Op is shorthand for building an Operation.
func Op(name string, params Params) Operation {
	return Operation{Name: name, Params: params}
}

// IsEmpty reports whether the config has no operations.
func (c Config) IsEmpty() bool {
	return len(c) == 0
}

// Names returns operation names in order.
func (c Config) Names() []string {
	names := make([]string, len(c))
	for i, op := range c {
		names[i] = op.Name
	}
	return names
}

// Lookup returns the parameters of the first operation named name.
func (c Config) Lookup(name string) (Params, bool) {
	for _, op := range c {
		if op.Name == name {
			return op.Params, true
		}
	}
	return nil, false
}

// Clone returns a copy that shares nothing with c.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for i, op := range c {
		out[i] = Operation{Name: op.Name, Params: op.Params.Clone()}
	}
	return out
}
