//go:build headless

package host

import (
	"context"
	"image"
	"time"
)

// Run steps the scene at 60 Hz without opening a window, for machines without a display.
// The crosshair is centered on scene.Screen, or on DefaultScreen when that is unset.
func Run(ctx context.Context, scene *Scene) error {
	size := scene.Screen
	if size.X <= 0 || size.Y <= 0 {
		size = DefaultScreen
	}
	scene.Crosshair.SetScreen(image.Rectangle{Max: size})
	defer scene.Dispatcher.Close()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			scene.Step()
		}
	}
}
