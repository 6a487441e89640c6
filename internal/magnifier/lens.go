package magnifier

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/vedantwpatil/Viewfinder/internal/overlay"
)

const LensBorderWidth = 3

var LensBorderColor = color.RGBA{G: 0xFF, A: 0xFF}

// Lens marks the region that is currently being captured.
type Lens struct {
	pending atomic.Pointer[image.Rectangle]

	rect    image.Rectangle
	visible bool
}

func NewLens() *Lens {
	return &Lens{visible: true}
}

// Place records where the lens should be drawn next. Safe from any goroutine.
func (l *Lens) Place(rect image.Rectangle) {
	l.pending.Store(&rect)
}

// Refresh applies the latest placement. Owning thread only.
func (l *Lens) Refresh() bool {
	r := l.pending.Swap(nil)
	if r == nil || *r == l.rect {
		return false
	}
	l.rect = *r
	return true
}

func (l *Lens) Rect() image.Rectangle {
	return l.rect
}

func (l *Lens) Visible() bool {
	return l.visible
}

// Overlay groups the magnified display and its lens so they are shown and hidden together.
type Overlay struct {
	Display *Display
	Lens    *Lens
	post    overlay.Poster
}

func NewOverlay(display *Display, lens *Lens, post overlay.Poster) *Overlay {
	return &Overlay{Display: display, Lens: lens, post: post}
}

func (o *Overlay) SetVisibility(visible bool) error {
	return o.post.Post(func() {
		o.Display.visible = visible
		o.Lens.visible = visible
	})
}
