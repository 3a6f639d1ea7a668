package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-remote-media/internal/resources"
)

// MaxLimit is the largest page size the remote service accepts.
const MaxLimit = 500

var ErrInvalidQuery = errors.New("search: invalid query")

// InvalidQueryError lists the rejected query fields.
type InvalidQueryError struct {
	Fields map[string]string
}

func (e *InvalidQueryError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "search: invalid query: " + strings.Join(parts, "; ")
}

func (e *InvalidQueryError) Unwrap() error {
	return ErrInvalidQuery
}

// QueryInput carries the raw search parameters.
type QueryInput struct {
	Query        string
	ResourceType string
	Limit        int
	Folder       string
	Tag          string
	NextCursor   string
}

// Query is a validated search request. It is comparable, so callers and
// tests can check that a query reached the gateway unchanged.
type Query struct {
	text         string
	resourceType resources.ResourceType
	limit        int
	folder       string
	tag          string
	nextCursor   string
}

// NewQuery validates in. Limit is clamped to [0, MaxLimit]; an empty
// resource type means image.
func NewQuery(in QueryInput) (Query, error) {
	in.ResourceType = strings.ToLower(strings.TrimSpace(in.ResourceType))
	if in.ResourceType == "" {
		in.ResourceType = string(resources.ResourceTypeImage)
	}

	allowed := make([]any, 0, len(resources.ResourceTypes()))
	for _, rt := range resources.ResourceTypes() {
		allowed = append(allowed, string(rt))
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.ResourceType, validation.Required, validation.In(allowed...).Error("must be one of image, video, raw, document, other")),
		validation.Field(&in.Folder, validation.By(func(value any) error {
			folder, _ := value.(string)
			if strings.Contains(folder, "..") {
				return validation.NewError("search_folder_invalid", "must not contain '..'")
			}
			return nil
		})),
	)
	if err != nil {
		return Query{}, toInvalidQuery(err)
	}

	return Query{
		text:         strings.TrimSpace(in.Query),
		resourceType: resources.ResourceType(in.ResourceType),
		limit:        clamp(in.Limit),
		folder:       strings.Trim(strings.TrimSpace(in.Folder), "/"),
		tag:          strings.TrimSpace(in.Tag),
		nextCursor:   in.NextCursor,
	}, nil
}

// MustQuery is NewQuery for literals known to be valid. It panics on error.
func MustQuery(in QueryInput) Query {
	q, err := NewQuery(in)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Query) Text() string                         { return q.text }
func (q Query) ResourceType() resources.ResourceType { return q.resourceType }
func (q Query) Limit() int                           { return q.limit }
func (q Query) Folder() string                       { return q.folder }
func (q Query) Tag() string                          { return q.tag }

// NextCursor returns the opaque pagination token, empty on the first page.
func (q Query) NextCursor() string { return q.nextCursor }

// WithCursor returns a copy of q positioned at cursor.
func (q Query) WithCursor(cursor string) Query {
	q.nextCursor = cursor
	return q
}

func (q Query) String() string {
	return fmt.Sprintf("query=%q type=%s limit=%d folder=%q tag=%q cursor=%q",
		q.text, q.resourceType, q.limit, q.folder, q.tag, q.nextCursor)
}

func clamp(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func toInvalidQuery(err error) error {
	fields := map[string]string{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, fieldErr := range verrs {
			fields[field] = fieldErr.Error()
		}
	} else {
		fields["query"] = err.Error()
	}
	return &InvalidQueryError{Fields: fields}
}
