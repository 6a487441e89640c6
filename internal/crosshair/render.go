// Package crosshair draws the crosshair marker. Render is the single drawing routine used by
// both the live overlay and the preview, it keeps no state between calls.
package crosshair

import (
	"image"
	"image/color"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

// Surface is anything the crosshair can be drawn onto. Coordinates are in surface pixels.
type Surface interface {
	FillCircle(center image.Point, radius int, c color.NRGBA)
	StrokeCircle(center image.Point, radius, width int, c color.NRGBA)
	// StrokeLine draws a segment with round caps.
	StrokeLine(from, to image.Point, width int, c color.NRGBA)
}

// Segment is one arm of a cross.
type Segment struct {
	From, To image.Point
}

// Segments returns the arms of a cross centered on center: top, bottom, left, right.
// The top arm is left out for T-style crosshairs.
func Segments(cfg config.Crosshair, center image.Point) []Segment {
	cx, cy := center.X, center.Y
	gap, size := cfg.Gap, cfg.Size

	segments := make([]Segment, 0, 4)
	if !cfg.TStyle {
		segments = append(segments, Segment{image.Pt(cx, cy-gap-size), image.Pt(cx, cy-gap)})
	}
	segments = append(segments,
		Segment{image.Pt(cx, cy+gap), image.Pt(cx, cy+gap+size)},
		Segment{image.Pt(cx-gap-size, cy), image.Pt(cx-gap, cy)},
		Segment{image.Pt(cx+gap, cy), image.Pt(cx+gap+size, cy)},
	)
	return segments
}

// Render draws cfg onto s around center.
func Render(cfg config.Crosshair, center image.Point, s Surface) {
	primary := cfg.Color.WithAlpha(cfg.Alpha)
	outline := cfg.OutlineColor.WithAlpha(cfg.Alpha)
	outlined := cfg.OutlineEnabled()

	switch cfg.Style {
	case config.StyleDot:
		drawDot(cfg, center, s, primary, outline, outlined)

	case config.StyleCircle:
		if outlined {
			s.StrokeCircle(center, cfg.Size, cfg.Thickness+2*cfg.OutlineThickness, outline)
		}
		s.StrokeCircle(center, cfg.Size, cfg.Thickness, primary)
		if cfg.CenterDot {
			drawDot(cfg, center, s, primary, outline, outlined)
		}

	default:
		segments := Segments(cfg, center)
		if outlined {
			width := cfg.Thickness + 2*cfg.OutlineThickness
			for _, seg := range segments {
				s.StrokeLine(seg.From, seg.To, width, outline)
			}
		}
		for _, seg := range segments {
			s.StrokeLine(seg.From, seg.To, cfg.Thickness, primary)
		}
		if cfg.CenterDot {
			drawDot(cfg, center, s, primary, outline, outlined)
		}
	}
}

func drawDot(cfg config.Crosshair, center image.Point, s Surface, primary, outline color.NRGBA, outlined bool) {
	if outlined {
		s.FillCircle(center, cfg.CenterDotSize+cfg.OutlineThickness, outline)
	}
	s.FillCircle(center, cfg.CenterDotSize, primary)
}

// Extent is how far from the center anything drawn for cfg can reach, in pixels.
func Extent(cfg config.Crosshair) int {
	outline := 0
	if cfg.OutlineEnabled() {
		outline = cfg.OutlineThickness
	}
	halfStroke := (cfg.Thickness+2*outline+1)/2 + 1

	reach := 0
	switch cfg.Style {
	case config.StyleDot:
	case config.StyleCircle:
		reach = cfg.Size + halfStroke
	default:
		reach = cfg.Gap + cfg.Size + halfStroke
	}
	if dot := cfg.CenterDotSize + outline; (cfg.Style == config.StyleDot || cfg.CenterDot) && dot > reach {
		reach = dot
	}
	if reach < 0 {
		reach = 0
	}
	return reach
}
