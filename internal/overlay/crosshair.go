package overlay

import (
	"image"

	"github.com/vedantwpatil/Viewfinder/internal/config"
	"github.com/vedantwpatil/Viewfinder/internal/crosshair"
)

// Crosshair is the live crosshair overlay: a full screen, input-transparent layer with the
// marker at the screen center. Fields other than store and post belong to the owning thread.
type Crosshair struct {
	store *config.Store
	post  Poster

	center     image.Point
	screen     image.Rectangle
	visible    bool
	rendered   bool
	version    uint64
	sprite     *image.RGBA
	origin     image.Point
	generation uint64
}

func NewCrosshair(store *config.Store, post Poster) *Crosshair {
	return &Crosshair{
		store:   store,
		post:    post,
		visible: true,
	}
}

// SetVisibility shows or hides the overlay. Safe from any goroutine; the change is applied by
// the owning thread on its next step. The rendered sprite survives hiding.
func (c *Crosshair) SetVisibility(visible bool) error {
	return c.post.Post(func() {
		c.visible = visible
	})
}

// SetCenter moves the reference point, normally the true screen midpoint. Owning thread only.
func (c *Crosshair) SetCenter(center image.Point) {
	if center != c.center {
		c.center = center
		c.rendered = false
	}
}

// SetScreen places the crosshair at the midpoint of screen and clips the marker to it.
// Owning thread only.
func (c *Crosshair) SetScreen(screen image.Rectangle) {
	c.screen = screen
	c.SetCenter(image.Pt((screen.Min.X+screen.Max.X)/2, (screen.Min.Y+screen.Max.Y)/2))
}

// reach is the farthest a marker pixel can be from the center and still be on screen.
func (c *Crosshair) reach() int {
	if c.screen.Empty() {
		return 0
	}
	return max(c.center.X-c.screen.Min.X, c.screen.Max.X-c.center.X,
		c.center.Y-c.screen.Min.Y, c.screen.Max.Y-c.center.Y) + 1
}

// Refresh redraws the sprite when the crosshair settings or the center changed since the
// last render. Owning thread only. Reports whether a new sprite was produced.
func (c *Crosshair) Refresh() bool {
	version := c.store.CrosshairVersion()
	if c.rendered && version == c.version {
		return false
	}

	sprite, anchor := crosshair.Sprite(c.store.Crosshair(), c.reach())
	c.sprite = sprite
	c.origin = c.center.Sub(anchor)
	c.version = version
	c.rendered = true
	c.generation++
	return true
}

func (c *Crosshair) Visible() bool {
	return c.visible
}

// Sprite returns the rendered marker, the screen position of its top-left corner, and a
// generation counter that changes whenever the image is replaced.
func (c *Crosshair) Sprite() (*image.RGBA, image.Point, uint64) {
	return c.sprite, c.origin, c.generation
}
