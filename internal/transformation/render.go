package transformation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Wire keys in rendering order, with their URL abbreviation.
var wireKeys = []struct {
	key    string
	prefix string
}{
	{"crop", "c"},
	{"width", "w"},
	{"height", "h"},
	{"x", "x"},
	{"y", "y"},
	{"gravity", "g"},
	{"quality", "q"},
	{"fetch_format", "f"},
	{"effect", "e"},
	{"overlay", "l"},
	{"opacity", "o"},
	{"transformation", "t"},
	{"background", "b"},
	{"start_offset", "so"},
	{"flags", "fl"},
}

var knownWireKeys = func() map[string]string {
	out := make(map[string]string, len(wireKeys))
	for _, k := range wireKeys {
		out[k.key] = k.prefix
	}
	return out
}()

// String renders a wire chain in URL form, e.g. "c_fill,w_200,h_200/q_auto".
// Fragments are joined with "/" and keys inside a fragment with ",". Keys
// without an abbreviation are rendered by name after the known ones.
func String(wire Wire) string {
	parts := make([]string, 0, len(wire))
	for _, fragment := range wire {
		if rendered := renderFragment(fragment); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "/")
}

func renderFragment(fragment Params) string {
	items := make([]string, 0, len(fragment))
	for _, k := range wireKeys {
		if value, ok := fragment[k.key]; ok {
			items = append(items, k.prefix+"_"+renderValue(value))
		}
	}

	var extra []string
	for key := range fragment {
		if _, known := knownWireKeys[key]; !known {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		items = append(items, key+"_"+renderValue(fragment[key]))
	}
	return strings.Join(items, ",")
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
