package ebitencanvas

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
)

// fontRegistry maps lower-cased CSS families to text/v2 face sources.
type fontRegistry struct {
	mu       sync.RWMutex
	sources  map[string]*text.GoTextFaceSource
	fallback *text.GoTextFaceSource
}

var fonts = &fontRegistry{sources: make(map[string]*text.GoTextFaceSource)}

// RegisterFont makes TrueType or OpenType data available under family.
func RegisterFont(family string, data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ebitencanvas: font %q: %w", family, err)
	}
	fonts.mu.Lock()
	fonts.sources[strings.ToLower(family)] = src
	fonts.mu.Unlock()
	return nil
}

// face resolves a CSS font string. Unknown families use Go Regular.
func (r *fontRegistry) face(font string) (*text.GoTextFace, error) {
	f, err := canvas.ParseFont(font)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	src := r.sources[strings.ToLower(f.Family)]
	r.mu.RUnlock()
	if src == nil {
		if src, err = r.defaultSource(); err != nil {
			return nil, err
		}
		canopy.Logger().Debug("ebitencanvas: unknown font family, using Go Regular", "family", f.Family)
	}
	return &text.GoTextFace{Source: src, Size: f.Size}, nil
}

func (r *fontRegistry) defaultSource() (*text.GoTextFaceSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallback == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("ebitencanvas: fallback font: %w", err)
		}
		r.fallback = src
	}
	return r.fallback, nil
}
