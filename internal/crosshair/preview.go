package crosshair

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

const (
	PreviewSize = 400
	GridSpacing = 20

	// MaxReach bounds a sprite when the caller has no surface size to offer.
	MaxReach = 2048
)

// previewReach covers the whole preview canvas from its center.
const previewReach = PreviewSize/2 + 1

var (
	previewBackground = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	gridColor         = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// Sprite renders cfg onto a transparent image just large enough to hold it. The crosshair is
// centered on the returned anchor, so placing the image at target.Sub(anchor) puts the
// crosshair center on target. Both the overlay and the preview place this image, which keeps
// the two pixel-identical.
//
// maxReach is the farthest distance from the center that can still land on the target
// surface; anything beyond it is clipped. Non-positive values mean MaxReach.
func Sprite(cfg config.Crosshair, maxReach int) (*image.RGBA, image.Point) {
	if maxReach <= 0 || maxReach > MaxReach {
		maxReach = MaxReach
	}
	e := Extent(cfg) + 1
	if e <= 0 || e > maxReach {
		e = maxReach
	}
	img := image.NewRGBA(image.Rect(0, 0, 2*e, 2*e))
	anchor := image.Pt(e, e)
	Render(cfg, anchor, NewRaster(img))
	return img, anchor
}

// Preview draws the editing canvas: a grid with the crosshair at its center. Without a
// config only the grid is drawn.
func Preview(cfg *config.Crosshair) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PreviewSize, PreviewSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)

	for i := 0; i < PreviewSize; i += GridSpacing {
		for j := 0; j < PreviewSize; j++ {
			img.SetRGBA(i, j, gridColor)
			img.SetRGBA(j, i, gridColor)
		}
	}

	if cfg == nil {
		return img
	}

	sprite, anchor := Sprite(*cfg, previewReach)
	center := image.Pt(PreviewSize/2, PreviewSize/2)
	dr := sprite.Bounds().Add(center.Sub(anchor))
	draw.Draw(img, dr, sprite, image.Point{}, draw.Over)
	return img
}
