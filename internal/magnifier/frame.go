package magnifier

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
)

var ErrEmptyFrame = errors.New("empty frame")

// Frame is a tightly packed RGB buffer, three bytes per pixel.
type Frame struct {
	Width, Height int
	Pix           []byte
}

// FrameFromRGBA copies img into an RGB frame, dropping the alpha channel.
func FrameFromRGBA(img *image.RGBA) *Frame {
	b := img.Bounds()
	f := &Frame{Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, b.Dx()*b.Dy()*3)}
	for y := 0; y < f.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := f.Pix[y*f.Width*3:]
		for x := 0; x < f.Width; x++ {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return f
}

// RGBA expands the frame into an opaque RGBA image.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// dropAlpha forces every pixel opaque in place, keeping the raw color channels.
func dropAlpha(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xFF
		}
	}
}

// Resize scales src by factor with a bilinear filter. Output dimensions are rounded.
func Resize(src *image.RGBA, factor float64) (*image.RGBA, error) {
	sb := src.Bounds()
	if sb.Empty() {
		return nil, ErrEmptyFrame
	}
	w := int(math.Round(float64(sb.Dx()) * factor))
	h := int(math.Round(float64(sb.Dy()) * factor))
	if w <= 0 || h <= 0 {
		return nil, errors.New("scale produces an empty frame")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst, nil
}
