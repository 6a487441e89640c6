//go:build headless

package host

import (
	"context"
	"image"
	"testing"
	"time"
)

func TestRun_HeadlessCentersOnScreen(t *testing.T) {
	s, _ := newScene()
	s.Screen = image.Pt(2560, 1440)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := Run(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sprite, origin, _ := s.Crosshair.Sprite()
	if sprite == nil {
		t.Fatal("expected the crosshair to be rendered")
	}
	center := origin.Add(image.Pt(sprite.Bounds().Dx()/2, sprite.Bounds().Dy()/2))
	if center != image.Pt(1280, 720) {
		t.Fatalf("crosshair centered at %v, want (1280,720)", center)
	}
}
