package transformation

import "strings"

// Crop modes the remote service understands as resize operations.
const (
	ModeCrop  = "crop"
	ModeFit   = "fit"
	ModeFill  = "fill"
	ModeLFill = "lfill"
	ModeLimit = "limit"
	ModeLPad  = "lpad"
	ModeMFit  = "mfit"
	ModeMPad  = "mpad"
	ModePad   = "pad"
	ModeScale = "scale"
	ModeThumb = "thumb"
)

// RegisterDefaults registers every built-in handler on r.
func RegisterDefaults(r *Registry) {
	r.Register("crop", HandlerFunc(applyCrop))
	r.Register("resize", HandlerFunc(applyResize))
	for _, mode := range []string{ModeFit, ModeFill, ModeLFill, ModeLimit, ModeMFit, ModeScale} {
		r.Register(mode, resizeMode(mode))
	}
	for _, mode := range []string{ModePad, ModeLPad, ModeMPad} {
		r.Register(mode, padMode(mode))
	}
	r.Register(ModeThumb, HandlerFunc(applyThumb))
	r.Register("format", HandlerFunc(applyFormat))
	r.Register("quality", HandlerFunc(applyQuality))
	r.Register("effect", HandlerFunc(applyEffect))
	r.Register("named_transformation", HandlerFunc(applyNamedTransformation))
	r.Register("watermark", HandlerFunc(applyWatermark))
	r.Register("gravity", HandlerFunc(applyGravity))
}

// applyCrop uses explicit x/y/width/height parameters when given, otherwise
// the coordinates stored on the resource for the target variation. Without
// either the wire is returned unchanged.
func applyCrop(target Target, wire Wire, params Params) (Wire, error) {
	if params.Has("width") || params.Has("height") || len(params.Values()) > 0 {
		width, height, err := dimensions("crop", params)
		if err != nil {
			return nil, err
		}
		x, _ := params.intAt("x", 2)
		y, _ := params.intAt("y", 3)
		return wire.Append(Params{"crop": ModeCrop, "x": x, "y": y, "width": width, "height": height}), nil
	}

	coords, ok := target.Resource.Coordinates(target.Variation)
	if !ok || coords.IsZero() {
		return wire.Clone(), nil
	}
	return wire.Append(Params{
		"crop":   ModeCrop,
		"x":      coords.X,
		"y":      coords.Y,
		"width":  coords.Width,
		"height": coords.Height,
	}), nil
}

func applyResize(_ Target, wire Wire, params Params) (Wire, error) {
	width, height, err := dimensions("resize", params)
	if err != nil {
		return nil, err
	}
	return wire.Append(sized(Params{}, width, height)), nil
}

func resizeMode(mode string) Handler {
	return HandlerFunc(func(_ Target, wire Wire, params Params) (Wire, error) {
		width, height, err := dimensions(mode, params)
		if err != nil {
			return nil, err
		}
		return wire.Append(sized(Params{"crop": mode}, width, height)), nil
	})
}

func padMode(mode string) Handler {
	return HandlerFunc(func(_ Target, wire Wire, params Params) (Wire, error) {
		width, height, err := dimensions(mode, params)
		if err != nil {
			return nil, err
		}
		fragment := sized(Params{"crop": mode}, width, height)
		if background, ok := params.stringAt("background", 2); ok {
			fragment["background"] = background
		}
		return wire.Append(fragment), nil
	})
}

func applyThumb(_ Target, wire Wire, params Params) (Wire, error) {
	width, height, err := dimensions(ModeThumb, params)
	if err != nil {
		return nil, err
	}
	fragment := sized(Params{"crop": ModeThumb}, width, height)
	if gravity, ok := params.stringAt("gravity", 2); ok {
		fragment["gravity"] = gravity
	}
	return wire.Append(fragment), nil
}

func applyFormat(_ Target, wire Wire, params Params) (Wire, error) {
	format, ok := params.stringAt("value", 0)
	if !ok {
		return nil, invalidParams("format", "a format value is required")
	}
	return wire.Append(Params{"fetch_format": strings.ToLower(format)}), nil
}

// applyQuality accepts a numeric quality or a keyword such as "auto", with
// an optional level rendered as "auto:good".
func applyQuality(_ Target, wire Wire, params Params) (Wire, error) {
	value, ok := params.stringAt("value", 0)
	if !ok {
		return nil, invalidParams("quality", "a quality value is required")
	}
	if n, isInt := params.intAt("value", 0); isInt && (n < 1 || n > 100) {
		return nil, invalidParams("quality", "quality %d is outside 1..100", n)
	}
	if level, ok := params.stringAt("level", 1); ok {
		value += ":" + level
	}
	return wire.Append(Params{"quality": value}), nil
}

func applyEffect(_ Target, wire Wire, params Params) (Wire, error) {
	name, ok := params.stringAt("name", 0)
	if !ok {
		name, ok = params.Text("value")
	}
	if !ok {
		return nil, invalidParams("effect", "an effect name is required")
	}
	if argument, ok := params.stringAt("argument", 1); ok {
		name += ":" + argument
	}
	return wire.Append(Params{"effect": name}), nil
}

// applyNamedTransformation references transformations defined on the remote
// service. Several names are chained with ".".
func applyNamedTransformation(_ Target, wire Wire, params Params) (Wire, error) {
	var names []string
	if name, ok := params.Text("name"); ok {
		names = append(names, name)
	}
	for _, value := range params.Values() {
		if name, ok := value.(string); ok && strings.TrimSpace(name) != "" {
			names = append(names, strings.TrimSpace(name))
		}
	}
	if len(names) == 0 {
		return nil, invalidParams("named_transformation", "at least one transformation name is required")
	}
	return wire.Append(Params{"transformation": strings.Join(names, ".")}), nil
}

func applyWatermark(_ Target, wire Wire, params Params) (Wire, error) {
	overlay, ok := params.stringAt("overlay", 0)
	if !ok {
		return nil, invalidParams("watermark", "an overlay public id is required")
	}
	fragment := Params{"overlay": strings.ReplaceAll(overlay, "/", ":")}
	if opacity, ok := params.Int("opacity"); ok {
		if opacity < 0 || opacity > 100 {
			return nil, invalidParams("watermark", "opacity %d is outside 0..100", opacity)
		}
		fragment["opacity"] = opacity
	}
	if gravity, ok := params.Text("gravity"); ok {
		fragment["gravity"] = gravity
	}
	if width, ok := params.Int("width"); ok && width > 0 {
		fragment["width"] = width
	}
	for _, key := range []string{"x", "y"} {
		if v, ok := params.Int(key); ok {
			fragment[key] = v
		}
	}
	return wire.Append(fragment), nil
}

func applyGravity(_ Target, wire Wire, params Params) (Wire, error) {
	gravity, ok := params.stringAt("value", 0)
	if !ok {
		return nil, invalidParams("gravity", "a gravity value is required")
	}
	return wire.Append(Params{"gravity": gravity}), nil
}

// dimensions reads width and height from named keys or positional values.
// At least one must be set and neither may be negative.
func dimensions(handler string, params Params) (int, int, error) {
	width, hasWidth := params.intAt("width", 0)
	height, hasHeight := params.intAt("height", 1)
	if (params.Has("width") && !hasWidth) || (params.Has("height") && !hasHeight) {
		return 0, 0, invalidParams(handler, "width and height must be integers")
	}
	if !hasWidth && !hasHeight {
		return 0, 0, invalidParams(handler, "width or height is required")
	}
	if width < 0 || height < 0 {
		return 0, 0, invalidParams(handler, "negative dimensions %dx%d", width, height)
	}
	if width == 0 && height == 0 {
		return 0, 0, invalidParams(handler, "width or height must be positive")
	}
	return width, height, nil
}

func sized(fragment Params, width, height int) Params {
	if width > 0 {
		fragment["width"] = width
	}
	if height > 0 {
		fragment["height"] = height
	}
	return fragment
}
