package memory_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-remote-media/internal/provider"
	"github.com/goliatone/go-remote-media/internal/resources"
	"github.com/goliatone/go-remote-media/internal/transformation"
	"github.com/goliatone/go-remote-media/internal/variations"
)

func TestProviderOverMemoryGateway(t *testing.T) {
	ctx := context.Background()
	doc, err := variations.LoadFile(filepath.Join("..", "..", "variations", "testdata", "variations.yaml"))
	if err != nil {
		t.Fatalf("load variations: %v", err)
	}
	p := provider.New(newGateway(), transformation.NewDefaultRegistry(), variations.NewResolver(doc))

	uploaded, err := p.Upload(ctx, writeFile(t, "cover.png", 256), map[string]any{"folder": "books"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploaded.ResourceID != "books/cover.png" || uploaded.ResourceType != resources.ResourceTypeImage || uploaded.Size != 256 {
		t.Fatalf("unexpected upload result %+v", uploaded)
	}

	fetched, err := p.GetRemoteResource(ctx, "books/cover.png", resources.ResourceTypeImage)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	hero, err := p.BuildVariation(ctx, fetched, "article", provider.Named("hero"))
	if err != nil {
		t.Fatalf("build variation: %v", err)
	}
	want := "https://res.cloudinary.com/acme/image/upload/c_fill,w_1200,h_600/f_webp/books/cover.png"
	if hero.URL != want {
		t.Fatalf("expected %s, got %s", want, hero.URL)
	}

	original, err := p.BuildVariation(ctx, fetched, "article", provider.VariationRequest{})
	if err != nil || original.URL != fetched.SecureURL {
		t.Fatalf("expected secure url, got %q (%v)", original.URL, err)
	}

	if err := p.UpdateTags(ctx, fetched, []string{"covers", "2026"}); err != nil {
		t.Fatalf("update tags: %v", err)
	}
	tags, _ := p.ListTags(ctx)
	if len(tags) != 2 {
		t.Fatalf("expected two tags, got %v", tags)
	}

	if err := p.DeleteResource(ctx, fetched); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = p.GetRemoteResource(ctx, "books/cover.png", resources.ResourceTypeImage)
	if !errors.Is(err, provider.ErrRemoteResourceNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
