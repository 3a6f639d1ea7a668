package provider

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-remote-media/internal/resources"
)

// TextCodeGatewayFailed tags unexpected gateway failures.
const TextCodeGatewayFailed = "REMOTE_MEDIA_GATEWAY_FAILED"

var (
	ErrRemoteResourceNotFound = errors.New("provider: remote resource not found")
	ErrFileNotFound           = errors.New("provider: upload file not found")
)

// RemoteResourceNotFoundError is the normal "does not exist" outcome of a
// fetch: either the service reported not found or it answered with an
// incomplete payload.
type RemoteResourceNotFoundError struct {
	ResourceID   string
	ResourceType resources.ResourceType
}

func (e *RemoteResourceNotFoundError) Error() string {
	return fmt.Sprintf("Remote resource with ID '%s' of '%s' type not found.", e.ResourceID, e.ResourceType)
}

func (e *RemoteResourceNotFoundError) Unwrap() error {
	return ErrRemoteResourceNotFound
}

// FileNotFoundError is returned before any network call when an upload
// source is missing.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("upload file %q not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// mapGatewayError translates a gateway failure. Not-found signals on
// resource-scoped operations become RemoteResourceNotFoundError; everything
// else is wrapped as an external failure.
func mapGatewayError(operation, id string, resourceType resources.ResourceType, err error) error {
	if err == nil {
		return nil
	}
	if id != "" || resourceType != "" {
		if errors.Is(err, ErrGatewayNotFound) {
			return &RemoteResourceNotFoundError{ResourceID: id, ResourceType: resourceType}
		}
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "remote media gateway: "+operation+" failed").
		WithTextCode(TextCodeGatewayFailed).
		WithMetadata(map[string]any{"operation": operation})
}
