package transformation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-remote-media/internal/resources"
)

func TestRegistryRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	first := HandlerFunc(func(_ Target, wire Wire, _ Params) (Wire, error) {
		return wire.Append(Params{"first": true}), nil
	})
	second := HandlerFunc(func(_ Target, wire Wire, _ Params) (Wire, error) {
		return wire.Append(Params{"second": true}), nil
	})

	r.Register("custom", first)
	r.Register(" custom ", second)

	if !r.Has("custom") {
		t.Fatal("expected custom handler to be registered")
	}
	handler, err := r.Get("custom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wire, _ := handler.Apply(Target{}, nil, nil)
	if !wire[0].Has("second") {
		t.Fatalf("expected second handler to win, got %v", wire)
	}
}

func TestRegistryIgnoresBlankRegistrations(t *testing.T) {
	r := NewRegistry()
	r.Register("  ", HandlerFunc(applyResize))
	r.Register("nil", nil)
	if names := r.Names(); len(names) != 0 {
		t.Fatalf("expected empty registry, got %v", names)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := NewDefaultRegistry().Get("sepia_tone")
	if !errors.Is(err, ErrUnknownTransformation) {
		t.Fatalf("expected ErrUnknownTransformation, got %v", err)
	}
	var unknown *UnknownTransformationError
	if !errors.As(err, &unknown) || unknown.Name != "sepia_tone" {
		t.Fatalf("expected typed error naming the operation, got %v", err)
	}
}

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{
		"crop", "effect", "fill", "fit", "format", "gravity", "lfill", "limit", "lpad",
		"mfit", "mpad", "named_transformation", "pad", "quality", "resize", "scale", "thumb", "watermark",
	}
	if got := NewDefaultRegistry().Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected names\nwant %v\ngot  %v", want, got)
	}
}

func TestComposeAppliesOperationsInOrder(t *testing.T) {
	resource := resources.New(resources.Params{
		ResourceID: "testId",
		Variations: map[string]resources.Coordinates{"small": {X: 10, Y: 10, Width: 300, Height: 200}},
	})
	cfg := NewConfig(
		Op("crop", nil),
		Op("fit", Params{"width": 200, "height": 200}),
		Op("quality", Params{"value": "auto"}),
	)

	wire, err := NewDefaultRegistry().Compose(Target{Resource: resource, Variation: "small"}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Wire{
		{"crop": "crop", "x": 10, "y": 10, "width": 300, "height": 200},
		{"crop": "fit", "width": 200, "height": 200},
		{"quality": "auto"},
	}
	if !reflect.DeepEqual(wire, want) {
		t.Fatalf("unexpected wire\nwant %v\ngot  %v", want, wire)
	}

	reordered := NewConfig(cfg[2], cfg[1], cfg[0])
	other, err := NewDefaultRegistry().Compose(Target{Resource: resource, Variation: "small"}, reordered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if String(other) == String(wire) {
		t.Fatal("expected operation order to change the rendered chain")
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	cfg := NewConfig(Op("fill", Params{"width": 1200, "height": 600}), Op("format", Params{"value": "webp"}))
	registry := NewDefaultRegistry()

	first, err := registry.Compose(Target{}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := registry.Compose(Target{}, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v and %v", first, second)
	}
}

func TestComposeStopsOnUnknownOperation(t *testing.T) {
	cfg := NewConfig(Op("fit", Params{"width": 10}), Op("missing", nil))
	_, err := NewDefaultRegistry().Compose(Target{}, cfg)
	if !errors.Is(err, ErrUnknownTransformation) {
		t.Fatalf("expected ErrUnknownTransformation, got %v", err)
	}
}

func TestComposeEmptyConfig(t *testing.T) {
	wire, err := NewDefaultRegistry().Compose(Target{}, nil)
	if err != nil || !wire.IsEmpty() {
		t.Fatalf("expected empty wire, got %v %v", wire, err)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := NewConfig(Op("fit", Params{"width": 1}), Op(" ", nil), Op("fit", Params{"width": 2}))
	if len(cfg) != 2 {
		t.Fatalf("expected blank operation to be dropped, got %d", len(cfg))
	}
	if names := cfg.Names(); !reflect.DeepEqual(names, []string{"fit", "fit"}) {
		t.Fatalf("unexpected names %v", names)
	}
	params, ok := cfg.Lookup("fit")
	if !ok || params["width"] != 1 {
		t.Fatalf("expected first fit operation, got %v", params)
	}

	clone := cfg.Clone()
	clone[0].Params["width"] = 99
	if cfg[0].Params["width"] != 1 {
		t.Fatal("expected Clone to copy params")
	}
}
