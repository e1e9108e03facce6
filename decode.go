package canopy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

var errShape = errors.New("unexpected value shape")

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %w", v, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%T is not a number: %w", raw, errShape)
}

func toFloats(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []int:
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out, nil
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			f, err := toFloat(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}

func toList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []float64:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

func decodeFloat(raw any) (any, error) {
	return toFloat(raw)
}

func decodeInt(raw any) (any, error) {
	if n, ok := raw.(int); ok {
		return n, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	return int(f), nil
}

func decodeString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	}
	return fmt.Sprint(raw), nil
}

func decodeEnum(allowed ...string) func(any) (any, error) {
	return func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%T is not a string: %w", raw, errShape)
		}
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(allowed, ", "))
	}
}

func decodeVec(raw any) (any, error) {
	switch v := raw.(type) {
	case geom.Vec2:
		return v, nil
	case map[string]any:
		x, err := toFloat(v["x"])
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		y, err := toFloat(v["y"])
		if err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
		return geom.Vec2{X: x, Y: y}, nil
	}
	fs, err := toFloats(raw)
	if err != nil {
		return nil, err
	}
	switch len(fs) {
	case 1:
		return geom.Vec2{X: fs[0], Y: fs[0]}, nil
	case 2:
		return geom.Vec2{X: fs[0], Y: fs[1]}, nil
	}
	return nil, fmt.Errorf("want 1 or 2 numbers, got %d", len(fs))
}

func sizeDim(raw any) (float64, error) {
	if s, ok := raw.(string); ok && (s == "" || s == "auto") {
		return Auto, nil
	}
	return toFloat(raw)
}

func decodeSize(raw any) (any, error) {
	if s, ok := raw.(Size); ok {
		return s, nil
	}
	if list, ok := toList(raw); ok {
		if len(list) != 2 {
			return nil, fmt.Errorf("want 2 dimensions, got %d", len(list))
		}
		w, err := sizeDim(list[0])
		if err != nil {
			return nil, fmt.Errorf("width: %w", err)
		}
		h, err := sizeDim(list[1])
		if err != nil {
			return nil, fmt.Errorf("height: %w", err)
		}
		return Size{w, h}, nil
	}
	d, err := sizeDim(raw)
	if err != nil {
		return nil, err
	}
	return Size{d, d}, nil
}

// decodePadding expands 1 to 4 numbers the way CSS does.
func decodePadding(raw any) (any, error) {
	if p, ok := raw.(Padding); ok {
		return p, nil
	}
	fs, err := toFloats(raw)
	if err != nil {
		return nil, err
	}
	switch len(fs) {
	case 1:
		return Padding{fs[0], fs[0], fs[0], fs[0]}, nil
	case 2:
		return Padding{fs[0], fs[1], fs[0], fs[1]}, nil
	case 3:
		return Padding{fs[0], fs[1], fs[2], fs[1]}, nil
	case 4:
		return Padding{fs[0], fs[1], fs[2], fs[3]}, nil
	}
	return nil, fmt.Errorf("want 1 to 4 numbers, got %d", len(fs))
}

func toColor(raw any) (canvas.Color, error) {
	switch v := raw.(type) {
	case canvas.Color:
		return v, nil
	case string:
		return canvas.ParseColor(v)
	case nil:
		return canvas.Transparent, nil
	}
	return canvas.Color{}, fmt.Errorf("%T is not a color: %w", raw, errShape)
}

func decodeColor(raw any) (any, error) {
	return toColor(raw)
}

func decodeBorder(raw any) (any, error) {
	switch v := raw.(type) {
	case Border:
		return v, nil
	case map[string]any:
		w, err := toFloat(v["width"])
		if err != nil {
			return nil, fmt.Errorf("width: %w", err)
		}
		c, err := toColor(v["color"])
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		return Border{Width: w, Color: c}, nil
	}
	if list, ok := toList(raw); ok {
		if len(list) == 0 || len(list) > 2 {
			return nil, fmt.Errorf("want [width, color], got %d values", len(list))
		}
		w, err := toFloat(list[0])
		if err != nil {
			return nil, fmt.Errorf("width: %w", err)
		}
		b := Border{Width: w, Color: canvas.Black}
		if len(list) == 2 {
			if b.Color, err = toColor(list[1]); err != nil {
				return nil, fmt.Errorf("color: %w", err)
			}
		}
		return b, nil
	}
	w, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	return Border{Width: w, Color: canvas.Black}, nil
}

func decodeMatrix(raw any) (any, error) {
	if m, ok := raw.(geom.Matrix); ok {
		return m, nil
	}
	fs, err := toFloats(raw)
	if err != nil {
		return nil, err
	}
	if len(fs) != 6 {
		return nil, fmt.Errorf("want 6 numbers, got %d", len(fs))
	}
	var m geom.Matrix
	copy(m[:], fs)
	return m, nil
}

func decodeRect(raw any) (geom.Rect, error) {
	fs, err := toFloats(raw)
	if err != nil {
		return geom.Rect{}, err
	}
	if len(fs) != 4 {
		return geom.Rect{}, fmt.Errorf("want 4 numbers, got %d", len(fs))
	}
	return geom.Rect{X: fs[0], Y: fs[1], Width: fs[2], Height: fs[3]}, nil
}

func decodeGradient(raw any) (*canvas.LinearGradient, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *canvas.LinearGradient:
		return v, nil
	case canvas.LinearGradient:
		return &v, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%T is not a gradient: %w", raw, errShape)
	}
	g := &canvas.LinearGradient{}
	if vec, ok := m["vector"]; ok {
		fs, err := toFloats(vec)
		if err != nil || len(fs) != 4 {
			return nil, fmt.Errorf("vector: want 4 numbers")
		}
		g.Vector = fs
	}
	if r, ok := m["rect"]; ok {
		rect, err := decodeRect(r)
		if err != nil {
			return nil, fmt.Errorf("rect: %w", err)
		}
		g.Rect = &rect
	}
	stops, _ := toList(m["colors"])
	for i, s := range stops {
		stop, err := decodeStop(s)
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}
		g.Colors = append(g.Colors, stop)
	}
	if len(g.Colors) == 0 {
		return nil, errors.New("gradient has no colors")
	}
	return g, nil
}

func decodeStop(raw any) (canvas.ColorStop, error) {
	var off, col any
	switch v := raw.(type) {
	case canvas.ColorStop:
		return v, nil
	case map[string]any:
		off, col = v["offset"], v["color"]
	case []any:
		if len(v) != 2 {
			return canvas.ColorStop{}, fmt.Errorf("want [offset, color]")
		}
		off, col = v[0], v[1]
	default:
		return canvas.ColorStop{}, fmt.Errorf("%T is not a color stop: %w", raw, errShape)
	}
	o, err := toFloat(off)
	if err != nil {
		return canvas.ColorStop{}, fmt.Errorf("offset: %w", err)
	}
	c, err := toColor(col)
	if err != nil {
		return canvas.ColorStop{}, fmt.Errorf("color: %w", err)
	}
	return canvas.ColorStop{Offset: o, Color: c}, nil
}

func decodeGradients(raw any) (any, error) {
	switch v := raw.(type) {
	case Gradients:
		return v, nil
	case nil:
		return Gradients{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%T is not a gradient map: %w", raw, errShape)
	}
	var out Gradients
	for key, g := range m {
		lg, err := decodeGradient(g)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "border":
			out.Border = lg
		case "bgcolor":
			out.Bgcolor = lg
		case "text":
			out.Text = lg
		default:
			return nil, fmt.Errorf("unknown gradient target %q", key)
		}
	}
	return out, nil
}

// nanSize is returned by getters when an attribute holds a malformed value.
var nanSize = Size{math.NaN(), math.NaN()}
