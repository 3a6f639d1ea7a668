package remotemedia_test

import (
	"context"
	"io/fs"
	"path"
	"strings"
	"testing"

	remotemedia "github.com/goliatone/go-remote-media"
	"github.com/goliatone/go-remote-media/pkg/testsupport"
)

func TestMigrationsShipUpAndDownPerDialect(t *testing.T) {
	migrations := remotemedia.GetMigrationsFS()
	for _, dialect := range []string{"postgres", "sqlite"} {
		entries, err := fs.ReadDir(migrations, path.Join("data/sql/migrations", dialect))
		if err != nil {
			t.Fatalf("%s: read dir: %v", dialect, err)
		}
		ups, downs := 0, 0
		for _, entry := range entries {
			switch {
			case strings.HasSuffix(entry.Name(), ".up.sql"):
				ups++
			case strings.HasSuffix(entry.Name(), ".down.sql"):
				downs++
			}
		}
		if ups == 0 || ups != downs {
			t.Fatalf("%s: expected paired migrations, got %d up and %d down", dialect, ups, downs)
		}
	}
}

func TestSQLiteMigrationMatchesStoreModel(t *testing.T) {
	ctx := context.Background()
	db, err := testsupport.NewBunSQLiteDB("remotemedia_migrations")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	script, err := fs.ReadFile(remotemedia.GetMigrationsFS(), "data/sql/migrations/sqlite/20260301090000_remote_resources.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, statement := range strings.Split(string(script), ";") {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, statement); err != nil {
			t.Fatalf("apply migration: %v", err)
		}
	}

	module := newModule(t, func(cfg *remotemedia.Config) {
		cfg.Features.ResourceStore = true
		cfg.Cache.Enabled = false
	}, remotemedia.WithBunDB(db))

	resource := remotemedia.NewRemoteResource(remotemedia.RemoteResourceParams{
		ResourceID:   "books/cover",
		ResourceType: remotemedia.ResourceTypeImage,
		URL:          "http://res.cloudinary.com/acme/image/upload/books/cover",
		SecureURL:    "https://res.cloudinary.com/acme/image/upload/books/cover",
		Size:         64,
		Format:       "jpg",
		Metadata:     map[string]any{"alt": "Cover"},
	})
	if _, err := module.Store().Save(ctx, resource); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := module.Store().Get(ctx, "books/cover", remotemedia.ResourceTypeImage)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Size != 64 || loaded.Metadata["alt"] != "Cover" {
		t.Fatalf("unexpected stored resource %+v", loaded)
	}
}
