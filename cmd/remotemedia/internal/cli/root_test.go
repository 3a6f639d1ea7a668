package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestVariationsValidate(t *testing.T) {
	out, err := runCommand(t, "variations", "validate", fixture("variations.yaml"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok, 2 group(s)") || !strings.Contains(out, `default "default"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestVariationsValidateReportsIssues(t *testing.T) {
	out, err := runCommand(t, "variations", "validate", fixture("invalid.yaml"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "issue(s)") {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("expected issues to be printed")
	}
}

func TestVariationsList(t *testing.T) {
	out, err := runCommand(t, "-f", fixture("variations.yaml"), "variations", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "article: hero, thumbnail\ndefault (default): large, small\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}

	out, err = runCommand(t, "-f", fixture("variations.yaml"), "variations", "list", "article")
	if err != nil {
		t.Fatalf("list article: %v", err)
	}
	if out != "hero\nthumbnail\n" {
		t.Fatalf("unexpected names %q", out)
	}
}

func TestVariationsResolve(t *testing.T) {
	out, err := runCommand(t, "-f", fixture("variations.yaml"), "variations", "resolve", "hero", "--group", "article")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, fragment := range []string{"name: fill", "width: 1200", "height: 600", "name: format"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}

	if _, err := runCommand(t, "-f", fixture("variations.yaml"), "variations", "resolve", "missing"); err == nil {
		t.Fatal("expected error for unknown variation")
	}
}

func TestURLRendersVariation(t *testing.T) {
	out, err := runCommand(t,
		"-f", fixture("variations.yaml"),
		"--cloud", "acme",
		"url", "books/cover.png",
		"--group", "article",
		"--variation", "thumbnail",
		"--crop", "10,20,300,200",
	)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	want := "https://res.cloudinary.com/acme/image/upload/c_crop,w_300,h_200,x_10,y_20/w_200,h_200/q_auto/books/cover.png\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestURLWithoutVariationPrintsOriginal(t *testing.T) {
	out, err := runCommand(t, "-f", fixture("variations.yaml"), "--cloud", "acme", "url", "books/cover.png")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if out != "https://res.cloudinary.com/acme/image/upload/books/cover.png\n" {
		t.Fatalf("unexpected url %q", out)
	}
}

func TestParseCrop(t *testing.T) {
	coords, err := parseCrop("1, 2, 3, 4")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if coords.X != 1 || coords.Y != 2 || coords.Width != 3 || coords.Height != 4 {
		t.Fatalf("unexpected coords %+v", coords)
	}
	for _, input := range []string{"1,2,3", "a,2,3,4", "1,2,0,4", "-1,2,3,4"} {
		if _, err := parseCrop(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestURLRejectsUnknownType(t *testing.T) {
	if _, err := runCommand(t, "-f", fixture("variations.yaml"), "url", "cover", "--type", "font"); err == nil {
		t.Fatal("expected error for unknown resource type")
	}
}

func TestURLAcceptsResourceTypesCaseInsensitively(t *testing.T) {
	out, err := runCommand(t, "-f", fixture("variations.yaml"), "--cloud", "acme", "url", "clips/intro.mp4", "--type", "VIDEO")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if out != "https://res.cloudinary.com/acme/video/upload/clips/intro.mp4\n" {
		t.Fatalf("unexpected url %q", out)
	}
}
