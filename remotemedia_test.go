package remotemedia_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	remotemedia "github.com/goliatone/go-remote-media"
)

func newModule(t *testing.T, mutate func(*remotemedia.Config), opts ...remotemedia.Option) *remotemedia.Module {
	t.Helper()
	cfg := remotemedia.DefaultConfig()
	cfg.Variations.Path = filepath.Join("internal", "variations", "testdata", "variations.yaml")
	cfg.Delivery.CloudName = "acme"
	if mutate != nil {
		mutate(&cfg)
	}
	module, err := remotemedia.New(cfg, opts...)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func writeAsset(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, 512), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return path
}

func TestModuleUploadAndBuildVariation(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, nil)

	uploaded, err := module.Provider().Upload(ctx, writeAsset(t, "cover.png"), map[string]any{"folder": "books"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	thumb, err := module.Provider().BuildVariation(ctx, uploaded.WithCoordinates("thumbnail", remotemedia.Coordinates{X: 10, Y: 20, Width: 300, Height: 200}), "article", remotemedia.NamedVariation("thumbnail"))
	if err != nil {
		t.Fatalf("build variation: %v", err)
	}
	want := "https://res.cloudinary.com/acme/image/upload/c_crop,w_300,h_200,x_10,y_20/w_200,h_200/q_auto/books/cover.png"
	if thumb.URL != want {
		t.Fatalf("expected %s, got %s", want, thumb.URL)
	}

	unknown, err := module.Provider().BuildVariation(ctx, uploaded, "article", remotemedia.NamedVariation("poster"))
	if err != nil || unknown.URL != uploaded.SecureURL {
		t.Fatalf("expected unknown variation to return the secure url, got %q (%v)", unknown.URL, err)
	}
}

func TestModuleCustomTransformationHandler(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, nil)
	module.Registry().Register("grayscale", remotemedia.HandlerFunc(func(_ remotemedia.Target, wire remotemedia.Wire, _ remotemedia.TransformationParams) (remotemedia.Wire, error) {
		return wire.Append(remotemedia.TransformationParams{"effect": "grayscale"}), nil
	}))

	uploaded, err := module.Provider().Upload(ctx, writeAsset(t, "cover.png"), nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	variation, err := module.Provider().BuildVariation(ctx, uploaded, "", remotemedia.Transform(remotemedia.Operation{Name: "grayscale"}))
	if err != nil {
		t.Fatalf("build variation: %v", err)
	}
	want := "https://res.cloudinary.com/acme/image/upload/e_grayscale/cover.png"
	if variation.URL != want {
		t.Fatalf("expected %s, got %s", want, variation.URL)
	}

	_, err = module.Provider().BuildVariation(ctx, uploaded, "", remotemedia.Transform(remotemedia.Operation{Name: "sepia"}))
	if !errors.Is(err, remotemedia.ErrUnknownTransformation) {
		t.Fatalf("expected ErrUnknownTransformation, got %v", err)
	}
}

func TestModuleNotFound(t *testing.T) {
	module := newModule(t, nil)
	_, err := module.Provider().GetRemoteResource(context.Background(), "missing", remotemedia.ResourceTypeImage)
	var notFound *remotemedia.RemoteResourceNotFoundError
	if !errors.As(err, &notFound) || !remotemedia.IsNotFound(err) {
		t.Fatalf("expected RemoteResourceNotFoundError, got %v", err)
	}
	if notFound.ResourceID != "missing" {
		t.Fatalf("unexpected not found id %q", notFound.ResourceID)
	}
}

func TestModuleCommandsMirrorIntoStore(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, func(cfg *remotemedia.Config) {
		cfg.Features.ResourceStore = true
		cfg.Storage.Enabled = true
		cfg.Storage.DSN = fmt.Sprintf("file:remotemedia_module_%d?mode=memory&cache=shared", time.Now().UnixNano())
	})
	if err := module.Container().Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	err := module.Commands().Upload.Execute(ctx, remotemedia.UploadResourceCommand{Path: writeAsset(t, "cover.png"), Folder: "books"})
	if err != nil {
		t.Fatalf("upload command: %v", err)
	}
	err = module.Commands().SaveCoordinates.Execute(ctx, remotemedia.SaveVariationCoordinatesCommand{
		ResourceRef: remotemedia.ResourceRef{ResourceID: "books/cover.png", ResourceType: remotemedia.ResourceTypeImage},
		Variation:   "thumbnail",
		Coordinates: remotemedia.Coordinates{X: 1, Y: 2, Width: 30, Height: 40},
	})
	if err != nil {
		t.Fatalf("save coordinates: %v", err)
	}

	stored, err := module.Store().Get(ctx, "books/cover.png", remotemedia.ResourceTypeImage)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	thumb, err := module.Provider().BuildVariation(ctx, stored, "article", remotemedia.NamedVariation("thumbnail"))
	if err != nil {
		t.Fatalf("build variation: %v", err)
	}
	want := "https://res.cloudinary.com/acme/image/upload/c_crop,w_30,h_40,x_1,y_2/w_200,h_200/q_auto/books/cover.png"
	if thumb.URL != want {
		t.Fatalf("expected %s, got %s", want, thumb.URL)
	}
}

func TestModuleEmbedCropVariations(t *testing.T) {
	module := newModule(t, nil)
	crops := module.Resolver().GetEmbedCropVariations()
	if _, ok := crops["small"]; !ok || len(crops) != 1 {
		t.Fatalf("expected only the small default-group crop variation, got %v", crops)
	}
}

func TestModuleMetricsHandler(t *testing.T) {
	if handler := newModule(t, nil).MetricsHandler(); handler != nil {
		t.Fatal("expected no metrics handler when metrics are disabled")
	}

	module := newModule(t, func(cfg *remotemedia.Config) {
		cfg.Features.Metrics = true
	})
	if _, err := module.Provider().Upload(context.Background(), writeAsset(t, "cover.png"), nil); err != nil {
		t.Fatalf("upload: %v", err)
	}

	rec := httptest.NewRecorder()
	module.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "remotemedia_gateway_calls_total") {
		t.Fatalf("expected gateway call counter in metrics output, got:\n%s", body)
	}
}
