package resourcecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-remote-media/internal/resources"
)

const (
	uploadResourceMessageType  = "remotemedia.resource.upload"
	deleteResourceMessageType  = "remotemedia.resource.delete"
	updateTagsMessageType      = "remotemedia.resource.tags.update"
	updateContextMessageType   = "remotemedia.resource.context.update"
	syncResourceMessageType    = "remotemedia.resource.sync"
	saveCoordinatesMessageType = "remotemedia.resource.variation.coordinates"
)

// UploadResourceCommand sends a local file to the remote service.
type UploadResourceCommand struct {
	Path         string         `json:"path"`
	PublicID     string         `json:"public_id,omitempty"`
	Folder       string         `json:"folder,omitempty"`
	ResourceType string         `json:"resource_type,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
	Overwrite    *bool          `json:"overwrite,omitempty"`
}

// Type implements command.Message.
func (UploadResourceCommand) Type() string { return uploadResourceMessageType }

// Validate requires a path and, when given, a known resource type.
func (m UploadResourceCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.Required),
		validation.Field(&m.ResourceType, validation.In(uploadTypes()...)),
		validation.Field(&m.Tags, validation.Each(validation.Required)),
	)
}

// Options renders the command as gateway upload options.
func (m UploadResourceCommand) Options() map[string]any {
	options := map[string]any{}
	if id := strings.TrimSpace(m.PublicID); id != "" {
		options["public_id"] = id
	}
	if folder := strings.TrimSpace(m.Folder); folder != "" {
		options["folder"] = folder
	}
	if m.ResourceType != "" {
		options["resource_type"] = m.ResourceType
	}
	if len(m.Tags) > 0 {
		options["tags"] = append([]string(nil), m.Tags...)
	}
	if len(m.Context) > 0 {
		options["context"] = m.Context
	}
	if m.Overwrite != nil {
		options["overwrite"] = *m.Overwrite
	}
	return options
}

// ResourceRef identifies a remote asset.
type ResourceRef struct {
	ResourceID   string                 `json:"resource_id"`
	ResourceType resources.ResourceType `json:"resource_type"`
}

func (r ResourceRef) validate() validation.Errors {
	errs := validation.Errors{}
	if strings.TrimSpace(r.ResourceID) == "" {
		errs["resource_id"] = validation.NewError("remotemedia.resource.id_required", "resource_id is required")
	}
	if _, ok := resources.ParseResourceType(string(r.ResourceType)); !ok {
		errs["resource_type"] = validation.NewError("remotemedia.resource.type_invalid", "resource_type must be one of image, video, raw, document or other")
	}
	return errs
}

func (r ResourceRef) resource() *resources.RemoteResource {
	resourceType, _ := resources.ParseResourceType(string(r.ResourceType))
	return resources.New(resources.Params{ResourceID: r.ResourceID, ResourceType: resourceType})
}

// DeleteResourceCommand removes an asset remotely and from the local store.
type DeleteResourceCommand struct {
	ResourceRef
}

// Type implements command.Message.
func (DeleteResourceCommand) Type() string { return deleteResourceMessageType }

// Validate implements command.Message.
func (m DeleteResourceCommand) Validate() error {
	return filterErrors(m.validate())
}

// UpdateTagsCommand replaces the tag set of an asset.
type UpdateTagsCommand struct {
	ResourceRef
	Tags []string `json:"tags"`
}

// Type implements command.Message.
func (UpdateTagsCommand) Type() string { return updateTagsMessageType }

// Validate implements command.Message.
func (m UpdateTagsCommand) Validate() error {
	errs := m.validate()
	for _, tag := range m.Tags {
		if strings.TrimSpace(tag) == "" || strings.Contains(tag, ",") {
			errs["tags"] = validation.NewError("remotemedia.resource.tag_invalid", "tags must be non-empty and may not contain commas")
			break
		}
	}
	return filterErrors(errs)
}

// UpdateContextCommand replaces the alt and caption context of an asset.
type UpdateContextCommand struct {
	ResourceRef
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Type implements command.Message.
func (UpdateContextCommand) Type() string { return updateContextMessageType }

// Validate implements command.Message.
func (m UpdateContextCommand) Validate() error {
	return filterErrors(m.validate())
}

// SyncResourceCommand copies the remote state of an asset into the local
// store.
type SyncResourceCommand struct {
	ResourceRef
}

// Type implements command.Message.
func (SyncResourceCommand) Type() string { return syncResourceMessageType }

// Validate implements command.Message.
func (m SyncResourceCommand) Validate() error {
	return filterErrors(m.validate())
}

// SaveVariationCoordinatesCommand stores the crop rectangle picked for one
// variation of an asset.
type SaveVariationCoordinatesCommand struct {
	ResourceRef
	Variation   string                `json:"variation"`
	Coordinates resources.Coordinates `json:"coordinates"`
}

// Type implements command.Message.
func (SaveVariationCoordinatesCommand) Type() string { return saveCoordinatesMessageType }

// Validate requires a variation name and a non-degenerate rectangle.
func (m SaveVariationCoordinatesCommand) Validate() error {
	errs := m.validate()
	if strings.TrimSpace(m.Variation) == "" {
		errs["variation"] = validation.NewError("remotemedia.resource.variation_required", "variation is required")
	}
	c := m.Coordinates
	if c.X < 0 || c.Y < 0 || c.Width <= 0 || c.Height <= 0 {
		errs["coordinates"] = validation.NewError("remotemedia.resource.coordinates_invalid", "coordinates need a non-negative origin and a positive size")
	}
	return filterErrors(errs)
}

func filterErrors(errs validation.Errors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func uploadTypes() []any {
	out := []any{string(resources.ResourceTypeAuto)}
	for _, t := range resources.ResourceTypes() {
		out = append(out, string(t))
	}
	return out
}
