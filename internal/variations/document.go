package variations

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-remote-media/internal/transformation"
)

//go:embed schema/variations.schema.json
var documentSchema []byte

const schemaResource = "inmemory://remotemedia/variations.schema.json"

var (
	ErrInvalidDocument = errors.New("variations: invalid configuration document")
	ErrEmptyDocument   = errors.New("variations: configuration document is empty")
)

// Issue is a single schema violation.
type Issue struct {
	Location string
	Message  string
}

// DocumentError reports why a configuration document was rejected.
type DocumentError struct {
	Issues []Issue
	Cause  error
}

func (e *DocumentError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("variations: invalid configuration document: %v", e.Cause)
		}
		return ErrInvalidDocument.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return "variations: invalid configuration document: " + strings.Join(parts, "; ")
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

// Definition is one named variation inside a group.
type Definition struct {
	Group           string
	Name            string
	Embed           bool
	Transformations transformation.Config
}

// Document is a parsed variation configuration.
type Document struct {
	DefaultGroup string
	EmbedGroup   string
	Groups       map[string]map[string]Definition
}

// GroupNames returns the configured groups, sorted.
func (d *Document) GroupNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Groups))
	for name := range d.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads and parses a YAML or JSON document from path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("variations: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates data against the embedded schema and builds a Document.
// Operation order inside each transformations mapping is preserved. JSON is
// accepted as a YAML subset.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DocumentError{Cause: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	if err := validate(root.Content[0]); err != nil {
		return nil, err
	}

	return build(root.Content[0])
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("variations: add schema resource: %w", err)
	}
	return compiler.Compile(schemaResource)
})

func validate(node *yaml.Node) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var decoded any
	if err := node.Decode(&decoded); err != nil {
		return &DocumentError{Cause: err}
	}
	payload, err := json.Marshal(decoded)
	if err != nil {
		return &DocumentError{Cause: err}
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var normalized any
	if err := decoder.Decode(&normalized); err != nil {
		return &DocumentError{Cause: err}
	}

	if err := schema.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &DocumentError{Issues: collectIssues(validationErr), Cause: err}
		}
		return &DocumentError{Cause: err}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

func build(root *yaml.Node) (*Document, error) {
	doc := &Document{Groups: map[string]map[string]Definition{}}

	for key, value := range pairs(root) {
		switch key {
		case "default_group":
			doc.DefaultGroup = strings.TrimSpace(value.Value)
		case "embed_group":
			doc.EmbedGroup = strings.TrimSpace(value.Value)
		case "groups":
			for groupName, groupNode := range pairs(value) {
				group := make(map[string]Definition)
				for variationName, variationNode := range pairs(groupNode) {
					def, err := buildDefinition(groupName, variationName, variationNode)
					if err != nil {
						return nil, err
					}
					group[variationName] = def
				}
				doc.Groups[groupName] = group
			}
		}
	}
	return doc, nil
}

func buildDefinition(group, name string, node *yaml.Node) (Definition, error) {
	def := Definition{Group: group, Name: name, Transformations: transformation.Config{}}
	for key, value := range pairs(node) {
		switch key {
		case "embed":
			if err := value.Decode(&def.Embed); err != nil {
				return Definition{}, &DocumentError{Cause: fmt.Errorf("%s.%s.embed: %w", group, name, err)}
			}
		case "transformations":
			for opName, opNode := range pairs(value) {
				params, err := decodeParams(opNode)
				if err != nil {
					return Definition{}, &DocumentError{Cause: fmt.Errorf("%s.%s.%s: %w", group, name, opName, err)}
				}
				def.Transformations = append(def.Transformations, transformation.Op(opName, params))
			}
		}
	}
	return def, nil
}

// decodeParams maps mappings to Params, sequences and scalars to positional
// values, and null to empty params.
func decodeParams(node *yaml.Node) (transformation.Params, error) {
	node = dealias(node)
	if node == nil {
		return transformation.Params{}, nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		params := transformation.Params{}
		if err := node.Decode((*map[string]any)(&params)); err != nil {
			return nil, err
		}
		return params, nil
	case yaml.SequenceNode:
		var values []any
		if err := node.Decode(&values); err != nil {
			return nil, err
		}
		return transformation.Params{transformation.ValuesKey: values}, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return transformation.Params{}, nil
		}
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return transformation.Params{transformation.ValuesKey: []any{value}}, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d", node.Kind)
	}
}

// pairs iterates a mapping node in document order, following aliases. A
// merge key (<<) yields the merged entries in its position, skipping keys
// the mapping sets explicitly.
func pairs(node *yaml.Node) func(yield func(string, *yaml.Node) bool) {
	return func(yield func(string, *yaml.Node) bool) {
		walkPairs(dealias(node), map[string]bool{}, yield)
	}
}

func walkPairs(node *yaml.Node, seen map[string]bool, yield func(string, *yaml.Node) bool) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return true
	}
	explicit := map[string]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[node.Content[i].Value] = true
		}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], dealias(node.Content[i+1])
		if isMergeKey(key) {
			sources := []*yaml.Node{value}
			if value != nil && value.Kind == yaml.SequenceNode {
				sources = value.Content
			}
			for _, source := range sources {
				shadowed := maps.Clone(seen)
				maps.Copy(shadowed, explicit)
				ok := walkPairs(dealias(source), shadowed, func(k string, v *yaml.Node) bool {
					seen[k] = true
					return yield(k, v)
				})
				if !ok {
					return false
				}
			}
			continue
		}
		if seen[key.Value] {
			continue
		}
		seen[key.Value] = true
		if !yield(key.Value, value) {
			return false
		}
	}
	return true
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

// dealias follows alias nodes to the node they point at.
func dealias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
