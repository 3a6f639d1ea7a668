package resourcecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-remote-media/internal/commands"
	"github.com/goliatone/go-remote-media/internal/logging"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/storage"
	"github.com/goliatone/go-remote-media/pkg/interfaces"
)

// ErrStoreUnavailable is returned by handlers that need the local resource
// store when it is not configured or gated off.
var ErrStoreUnavailable = errors.New("resourcecmd: resource store unavailable")

// ProviderService is the subset of the media provider used by the handlers.
type ProviderService interface {
	GetRemoteResource(ctx context.Context, id string, resourceType resources.ResourceType) (*resources.RemoteResource, error)
	Upload(ctx context.Context, path string, options map[string]any) (*resources.RemoteResource, error)
	DeleteResource(ctx context.Context, resource *resources.RemoteResource) error
	UpdateTags(ctx context.Context, resource *resources.RemoteResource, tags []string) error
	UpdateResourceContext(ctx context.Context, resource *resources.RemoteResource, values map[string]any) error
}

// ResourceStore is the subset of the local store used by the handlers.
type ResourceStore interface {
	Save(ctx context.Context, resource *resources.RemoteResource) (*resources.RemoteResource, error)
	Delete(ctx context.Context, remoteID string, resourceType resources.ResourceType) error
	SaveVariationCoordinates(ctx context.Context, remoteID string, resourceType resources.ResourceType, variation string, coords resources.Coordinates) (*resources.RemoteResource, error)
}

type deps struct {
	provider ProviderService
	store    ResourceStore
	logger   interfaces.Logger
	gates    FeatureGates
}

func (d deps) storeEnabled() bool {
	return d.store != nil && d.gates.resourceStoreEnabled()
}

// mirror saves resource locally when the store is enabled.
func (d deps) mirror(ctx context.Context, resource *resources.RemoteResource) error {
	if !d.storeEnabled() || resource.IsNull() {
		return nil
	}
	_, err := d.store.Save(ctx, resource)
	return err
}

// NewUploadHandler uploads a file and mirrors the created resource.
func NewUploadHandler(provider ProviderService, store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UploadResourceCommand]) *commands.Handler[UploadResourceCommand] {
	d := deps{provider: provider, store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[UploadResourceCommand]{
		commands.WithLogger[UploadResourceCommand](d.logger),
		commands.WithOperation[UploadResourceCommand]("resource.upload"),
	}
	return commands.NewHandler(func(ctx context.Context, msg UploadResourceCommand) error {
		resource, err := d.provider.Upload(ctx, msg.Path, msg.Options())
		if err != nil {
			return err
		}
		if err := d.mirror(ctx, resource); err != nil {
			return err
		}
		logging.WithResource(d.logger, resource.ResourceID, string(resource.ResourceType)).
			Info("resource.command.uploaded", "path", msg.Path)
		return nil
	}, append(base, opts...)...)
}

// NewDeleteHandler removes the remote asset and its local mirror.
func NewDeleteHandler(provider ProviderService, store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteResourceCommand]) *commands.Handler[DeleteResourceCommand] {
	d := deps{provider: provider, store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[DeleteResourceCommand]{
		commands.WithLogger[DeleteResourceCommand](d.logger),
		commands.WithOperation[DeleteResourceCommand]("resource.delete"),
	}
	return commands.NewHandler(func(ctx context.Context, msg DeleteResourceCommand) error {
		resource := msg.resource()
		if err := d.provider.DeleteResource(ctx, resource); err != nil {
			return err
		}
		if d.storeEnabled() {
			err := d.store.Delete(ctx, resource.ResourceID, resource.ResourceType)
			if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
				return err
			}
		}
		return nil
	}, append(base, opts...)...)
}

// NewUpdateTagsHandler replaces the remote tag set and refreshes the mirror.
func NewUpdateTagsHandler(provider ProviderService, store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UpdateTagsCommand]) *commands.Handler[UpdateTagsCommand] {
	d := deps{provider: provider, store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[UpdateTagsCommand]{
		commands.WithLogger[UpdateTagsCommand](d.logger),
		commands.WithOperation[UpdateTagsCommand]("resource.tags.update"),
	}
	return commands.NewHandler(func(ctx context.Context, msg UpdateTagsCommand) error {
		resource := msg.resource()
		if err := d.provider.UpdateTags(ctx, resource, msg.Tags); err != nil {
			return err
		}
		return d.refresh(ctx, resource)
	}, append(base, opts...)...)
}

// NewUpdateContextHandler replaces the alt and caption of an asset.
func NewUpdateContextHandler(provider ProviderService, store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UpdateContextCommand]) *commands.Handler[UpdateContextCommand] {
	d := deps{provider: provider, store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[UpdateContextCommand]{
		commands.WithLogger[UpdateContextCommand](d.logger),
		commands.WithOperation[UpdateContextCommand]("resource.context.update"),
	}
	return commands.NewHandler(func(ctx context.Context, msg UpdateContextCommand) error {
		resource := msg.resource()
		values := map[string]any{"alt": msg.Alt, "caption": msg.Caption}
		if err := d.provider.UpdateResourceContext(ctx, resource, values); err != nil {
			return err
		}
		return d.refresh(ctx, resource)
	}, append(base, opts...)...)
}

// NewSyncHandler copies the remote state of an asset into the store.
func NewSyncHandler(provider ProviderService, store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncResourceCommand]) *commands.Handler[SyncResourceCommand] {
	d := deps{provider: provider, store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[SyncResourceCommand]{
		commands.WithLogger[SyncResourceCommand](d.logger),
		commands.WithOperation[SyncResourceCommand]("resource.sync"),
	}
	return commands.NewHandler(func(ctx context.Context, msg SyncResourceCommand) error {
		if !d.storeEnabled() {
			return ErrStoreUnavailable
		}
		resource := msg.resource()
		remote, err := d.provider.GetRemoteResource(ctx, resource.ResourceID, resource.ResourceType)
		if err != nil {
			return err
		}
		_, err = d.store.Save(ctx, remote)
		return err
	}, append(base, opts...)...)
}

// NewSaveCoordinatesHandler stores a crop rectangle for one variation.
func NewSaveCoordinatesHandler(store ResourceStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SaveVariationCoordinatesCommand]) *commands.Handler[SaveVariationCoordinatesCommand] {
	d := deps{store: store, logger: commands.EnsureLogger(logger), gates: gates}
	base := []commands.HandlerOption[SaveVariationCoordinatesCommand]{
		commands.WithLogger[SaveVariationCoordinatesCommand](d.logger),
		commands.WithOperation[SaveVariationCoordinatesCommand]("resource.variation.coordinates"),
	}
	return commands.NewHandler(func(ctx context.Context, msg SaveVariationCoordinatesCommand) error {
		if !d.storeEnabled() {
			return ErrStoreUnavailable
		}
		resource := msg.resource()
		_, err := d.store.SaveVariationCoordinates(ctx, resource.ResourceID, resource.ResourceType, msg.Variation, msg.Coordinates)
		return err
	}, append(base, opts...)...)
}

// refresh re-reads a mutated asset so the mirror carries its new metadata.
func (d deps) refresh(ctx context.Context, resource *resources.RemoteResource) error {
	if !d.storeEnabled() {
		return nil
	}
	remote, err := d.provider.GetRemoteResource(ctx, resource.ResourceID, resource.ResourceType)
	if err != nil {
		return err
	}
	return d.mirror(ctx, remote)
}
