package crosshair

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so that four segments approximate a circle.
const kappa = 0.5522847498

// Raster is an anti-aliased Surface backed by an RGBA image. Every primitive is filled as a
// single path and composited with source-over, so overlapping parts of one primitive never
// double up their alpha.
type Raster struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func NewRaster(dst *image.RGBA) *Raster {
	b := dst.Bounds()
	return &Raster{
		dst: dst,
		z:   vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.dst
}

func (r *Raster) FillCircle(center image.Point, radius int, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	r.begin()
	x, y := r.local(center)
	r.circle(x, y, float32(radius), false)
	r.fill(c)
}

func (r *Raster) StrokeCircle(center image.Point, radius, width int, c color.NRGBA) {
	if width <= 0 {
		return
	}
	x, y := r.local(center)
	half := float32(width) / 2
	outer := float32(radius) + half
	inner := float32(radius) - half
	if outer <= 0 {
		return
	}

	r.begin()
	r.circle(x, y, outer, false)
	if inner > 0 {
		// Opposite winding cuts the hole out of the disc.
		r.circle(x, y, inner, true)
	}
	r.fill(c)
}

func (r *Raster) StrokeLine(from, to image.Point, width int, c color.NRGBA) {
	if width <= 0 {
		return
	}
	half := float32(width) / 2
	ax, ay := r.local(from)
	bx, by := r.local(to)

	r.begin()
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		r.circle(ax, ay, half, false)
		r.fill(c)
		return
	}

	// d runs along the segment, n is its normal.
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux

	r.z.MoveTo(ax+nx*half, ay+ny*half)
	r.z.LineTo(bx+nx*half, by+ny*half)
	r.arc(bx, by, half, nx, ny, ux, uy)
	r.arc(bx, by, half, ux, uy, -nx, -ny)
	r.z.LineTo(ax-nx*half, ay-ny*half)
	r.arc(ax, ay, half, -nx, -ny, -ux, -uy)
	r.arc(ax, ay, half, -ux, -uy, nx, ny)
	r.z.ClosePath()
	r.fill(c)
}

func (r *Raster) begin() {
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func (r *Raster) fill(c color.NRGBA) {
	r.z.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) local(p image.Point) (float32, float32) {
	min := r.dst.Bounds().Min
	return float32(p.X - min.X), float32(p.Y - min.Y)
}

// circle adds a closed circle to the current path, clockwise on screen unless ccw is set.
func (r *Raster) circle(cx, cy, radius float32, ccw bool) {
	s := float32(1)
	if ccw {
		s = -1
	}
	r.z.MoveTo(cx+radius, cy)
	r.arc(cx, cy, radius, 1, 0, 0, s)
	r.arc(cx, cy, radius, 0, s, -1, 0)
	r.arc(cx, cy, radius, -1, 0, 0, -s)
	r.arc(cx, cy, radius, 0, -s, 1, 0)
	r.z.ClosePath()
}

// arc adds a quarter turn around (cx, cy) from direction u to the perpendicular direction v.
// The pen must already be at c + radius*u.
func (r *Raster) arc(cx, cy, radius, ux, uy, vx, vy float32) {
	k := radius * kappa
	r.z.CubeTo(
		cx+ux*radius+vx*k, cy+uy*radius+vy*k,
		cx+vx*radius+ux*k, cy+vy*radius+uy*k,
		cx+vx*radius, cy+vy*radius,
	)
}
