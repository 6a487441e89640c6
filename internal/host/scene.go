// Package host runs the overlay surface: it owns every window-side object and steps them on
// a single thread.
package host

import (
	"fmt"
	"image"

	"github.com/vedantwpatil/Viewfinder/internal/magnifier"
	"github.com/vedantwpatil/Viewfinder/internal/overlay"
)

// Scene is everything the owning thread draws.
type Scene struct {
	Dispatcher *overlay.Dispatcher
	Crosshair  *overlay.Crosshair
	Display    *magnifier.Display
	Lens       *magnifier.Lens

	// Screen overrides the detected screen size when non-zero.
	Screen image.Point
}

// DefaultScreen is the headless screen size when none is given.
var DefaultScreen = image.Pt(1920, 1080)

// ParseScreenSize reads a "WIDTHxHEIGHT" string such as "2560x1440".
func ParseScreenSize(s string) (image.Point, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return image.Point{}, fmt.Errorf("screen size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("screen size %q: dimensions must be positive", s)
	}
	return image.Pt(w, h), nil
}

// Step applies queued requests and pulls in new frames, lens placements and crosshair
// renders. It reports whether anything visible may have changed.
func (s *Scene) Step() bool {
	changed := s.Dispatcher.Drain() > 0
	if s.Crosshair.Refresh() {
		changed = true
	}
	if s.Display.Refresh() {
		changed = true
	}
	if s.Lens.Refresh() {
		changed = true
	}
	return changed
}

// Layer is one image placed on the overlay surface.
type Layer struct {
	Name       string
	Image      *image.RGBA
	Origin     image.Point
	Generation uint64
}

// Layers lists the visible images bottom to top: the magnified display, then the crosshair.
func (s *Scene) Layers() []Layer {
	var layers []Layer
	if s.Display.Visible() {
		if canvas, pos, gen := s.Display.Canvas(); canvas != nil {
			layers = append(layers, Layer{Name: "display", Image: canvas, Origin: pos, Generation: gen})
		}
	}
	if s.Crosshair.Visible() {
		if sprite, origin, gen := s.Crosshair.Sprite(); sprite != nil {
			layers = append(layers, Layer{Name: "crosshair", Image: sprite, Origin: origin, Generation: gen})
		}
	}
	return layers
}

// LensRect is the lens border to draw, or an empty rectangle when the lens is hidden.
func (s *Scene) LensRect() image.Rectangle {
	if !s.Lens.Visible() {
		return image.Rectangle{}
	}
	return s.Lens.Rect()
}
