package magnifier

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/vedantwpatil/Viewfinder/internal/config"
	"github.com/vedantwpatil/Viewfinder/internal/overlay"
)

var displayBackground = color.RGBA{A: 0xFF}

// Display is the magnified view: a square canvas of side window_size that shows the latest
// frame. PresentFrame may be called from any goroutine; everything else belongs to the
// owning thread.
type Display struct {
	store *config.Store
	post  overlay.Poster

	pending atomic.Pointer[Frame]

	canvas     *image.RGBA
	pos        image.Point
	visible    bool
	generation uint64
	tap        func(*image.RGBA)
}

func NewDisplay(store *config.Store, post overlay.Poster) *Display {
	m := store.Magnifier()
	return &Display{
		store:   store,
		post:    post,
		pos:     image.Pt(m.DisplayPos.X(), m.DisplayPos.Y()),
		visible: true,
	}
}

// PresentFrame hands a frame over to the owning thread. Only the newest unpresented frame is
// kept; older ones are dropped.
func (d *Display) PresentFrame(f *Frame) {
	d.pending.Store(f)
}

// MoveTo repositions the display on the overlay surface.
func (d *Display) MoveTo(pt image.Point) error {
	return d.post.Post(func() {
		d.pos = pt
	})
}

// SetTap registers a function that sees every blitted canvas, e.g. a recorder. Owning thread.
func (d *Display) SetTap(tap func(*image.RGBA)) {
	d.tap = tap
}

// Refresh blits the pending frame, if any. Reports whether the canvas changed.
func (d *Display) Refresh() bool {
	f := d.pending.Swap(nil)
	if f == nil {
		return false
	}
	d.blit(f)
	d.generation++
	if d.tap != nil {
		d.tap(d.canvas)
	}
	return true
}

func (d *Display) blit(f *Frame) {
	size := d.store.Magnifier().WindowSize
	if size <= 0 {
		size = config.DefaultMagnifier().WindowSize
	}
	if d.canvas == nil || d.canvas.Bounds().Dx() != size {
		d.canvas = image.NewRGBA(image.Rect(0, 0, size, size))
	}
	draw.Draw(d.canvas, d.canvas.Bounds(), image.NewUniform(displayBackground), image.Point{}, draw.Src)
	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	src := f.RGBA()
	if f.Width < size || f.Height < size {
		// Smaller frames are scaled to fit, keeping their aspect ratio.
		ratio := math.Min(float64(size)/float64(f.Width), float64(size)/float64(f.Height))
		w := int(math.Round(float64(f.Width) * ratio))
		h := int(math.Round(float64(f.Height) * ratio))
		dr := centered(size, w, h)
		draw.CatmullRom.Scale(d.canvas, dr, src, src.Bounds(), draw.Src, nil)
		return
	}

	// Larger frames are shown unscaled around the center, the rest is cropped.
	draw.Draw(d.canvas, centered(size, f.Width, f.Height), src, image.Point{}, draw.Src)
}

func centered(size, w, h int) image.Rectangle {
	x := (size - w) / 2
	y := (size - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func (d *Display) Visible() bool {
	return d.visible
}

// Canvas returns the current canvas, its top-left position, and a generation counter that
// changes with every blit. The canvas is nil until the first frame arrives.
func (d *Display) Canvas() (*image.RGBA, image.Point, uint64) {
	return d.canvas, d.pos, d.generation
}
