package ggcanvas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
)

type faceKey struct {
	family string
	size   float64
}

// fontRegistry maps CSS font families to parsed font sources. Families
// are matched case-insensitively; unknown families use Go Regular.
type fontRegistry struct {
	mu       sync.RWMutex
	sources  map[string]*text.FontSource
	faces    map[faceKey]text.Face
	fallback *text.FontSource
}

var fonts = &fontRegistry{
	sources: make(map[string]*text.FontSource),
	faces:   make(map[faceKey]text.Face),
}

// RegisterFont makes a TrueType or OpenType font available under family.
// Registering a family again replaces it.
func RegisterFont(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("ggcanvas: font %q: %w", family, err)
	}
	fonts.add(strings.ToLower(family), src)
	return nil
}

// RegisterFontFile is RegisterFont reading the font from path.
func RegisterFontFile(family, path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return fmt.Errorf("ggcanvas: font %q: %w", family, err)
	}
	fonts.add(strings.ToLower(family), src)
	return nil
}

func (r *fontRegistry) add(family string, src *text.FontSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[family] = src
	for k := range r.faces {
		if k.family == family {
			delete(r.faces, k)
		}
	}
}

// face resolves a CSS font string such as "bold 14px Arial".
func (r *fontRegistry) face(font string) (text.Face, error) {
	f, err := canvas.ParseFont(font)
	if err != nil {
		return nil, err
	}
	family := strings.ToLower(f.Family)
	key := faceKey{family: family, size: f.Size}

	r.mu.RLock()
	face, ok := r.faces[key]
	src := r.sources[family]
	r.mu.RUnlock()
	if ok {
		return face, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if src == nil {
		if r.fallback == nil {
			r.fallback, err = text.NewFontSource(goregular.TTF)
			if err != nil {
				return nil, fmt.Errorf("ggcanvas: fallback font: %w", err)
			}
		}
		canopy.Logger().Debug("ggcanvas: unknown font family, using Go Regular", "family", f.Family)
		src = r.fallback
	}
	face = src.Face(f.Size)
	r.faces[key] = face
	return face, nil
}
