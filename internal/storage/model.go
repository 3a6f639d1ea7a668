package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-remote-media/internal/identity"
	"github.com/goliatone/go-remote-media/internal/resources"
)

// Record is the persisted reference to a remote resource.
type Record struct {
	bun.BaseModel `bun:"table:remote_resources,alias:rr"`

	ID           uuid.UUID                        `bun:",pk,type:uuid" json:"id"`
	ResourceKey  string                           `bun:"resource_key,notnull,unique" json:"resource_key"`
	RemoteID     string                           `bun:"remote_id,notnull" json:"remote_id"`
	ResourceType string                           `bun:"resource_type,notnull" json:"resource_type"`
	MediaType    string                           `bun:"media_type,notnull" json:"media_type"`
	URL          string                           `bun:"url,notnull" json:"url"`
	SecureURL    string                           `bun:"secure_url,notnull" json:"secure_url"`
	Size         int64                            `bun:"size,notnull,default:0" json:"size"`
	Format       string                           `bun:"format" json:"format,omitempty"`
	Metadata     map[string]any                   `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	Variations   map[string]resources.Coordinates `bun:"variations,type:jsonb" json:"variations,omitempty"`
	CreatedAt    time.Time                        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time                        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromResource(resource *resources.RemoteResource) *Record {
	resourceType := string(resource.ResourceType)
	cloned := resource.Clone()
	if cloned.Metadata == nil {
		cloned.Metadata = map[string]any{}
	}
	if cloned.Variations == nil {
		cloned.Variations = map[string]resources.Coordinates{}
	}
	return &Record{
		ID:           identity.RemoteResourceUUID(resourceType, resource.ResourceID),
		ResourceKey:  identity.ResourceKey(resourceType, resource.ResourceID),
		RemoteID:     resource.ResourceID,
		ResourceType: resourceType,
		MediaType:    string(resource.MediaType),
		URL:          resource.URL,
		SecureURL:    resource.SecureURL,
		Size:         resource.Size,
		Format:       resource.Format,
		Metadata:     cloned.Metadata,
		Variations:   cloned.Variations,
	}
}

// Resource converts the record back into a RemoteResource. The media type
// is derived again so classification changes apply to stored rows.
func (r *Record) Resource() *resources.RemoteResource {
	if r == nil {
		return resources.Null()
	}
	return resources.New(resources.Params{
		ResourceID:   r.RemoteID,
		ResourceType: resources.ResourceType(r.ResourceType),
		URL:          r.URL,
		SecureURL:    r.SecureURL,
		Size:         r.Size,
		Format:       r.Format,
		Metadata:     r.Metadata,
		Variations:   r.Variations,
	})
}
