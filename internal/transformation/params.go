package transformation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-remote-media/internal/resources"
)

// Params holds the parameters of one operation, or one fragment of wire
// output.
type Params map[string]any

// ValuesKey holds positional parameters, e.g. the YAML form `resize: [200, 100]`.
const ValuesKey = "values"

// Clone copies p one level deep; nested slices of positional values are
// copied as well.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		if values, ok := v.([]any); ok {
			v = append([]any(nil), values...)
		}
		out[k] = v
	}
	return out
}

// IsEmpty reports whether p carries no keys.
func (p Params) IsEmpty() bool {
	return len(p) == 0
}

// Merge returns a copy of p with other applied on top. Keys in other win.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	if out == nil {
		out = Params{}
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Defaults returns a copy of p with other applied underneath. Keys in p win.
func (p Params) Defaults(other Params) Params {
	return other.Merge(p)
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Values returns the positional parameters.
func (p Params) Values() []any {
	switch values := p[ValuesKey].(type) {
	case []any:
		return values
	case []string:
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = v
		}
		return out
	case []int:
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = v
		}
		return out
	default:
		return nil
	}
}

// lookup returns the named key, falling back to the positional value at
// index when the key is absent. A negative index disables the fallback.
func (p Params) lookup(key string, index int) (any, bool) {
	if value, ok := p[key]; ok && value != nil {
		return value, true
	}
	if index < 0 {
		return nil, false
	}
	values := p.Values()
	if index >= len(values) || values[index] == nil {
		return nil, false
	}
	return values[index], true
}

// Text returns key as a trimmed string. Numbers are formatted.
func (p Params) Text(key string) (string, bool) {
	return p.stringAt(key, -1)
}

func (p Params) stringAt(key string, index int) (string, bool) {
	value, ok := p.lookup(key, index)
	if !ok {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		typed = strings.TrimSpace(typed)
		return typed, typed != ""
	case fmt.Stringer:
		return typed.String(), true
	default:
		if n, ok := resources.ToFloat(value); ok {
			return formatNumber(n), true
		}
		return "", false
	}
}

// Int returns key as an int.
func (p Params) Int(key string) (int, bool) {
	return p.intAt(key, -1)
}

func (p Params) intAt(key string, index int) (int, bool) {
	value, ok := p.lookup(key, index)
	if !ok {
		return 0, false
	}
	return resources.ToInt(value)
}

// Float returns key as a float64.
func (p Params) Float(key string) (float64, bool) {
	value, ok := p.lookup(key, -1)
	if !ok {
		return 0, false
	}
	return resources.ToFloat(value)
}
