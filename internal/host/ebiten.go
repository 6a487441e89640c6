//go:build !headless

package host

import (
	"context"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vedantwpatil/Viewfinder/internal/magnifier"
	"github.com/vedantwpatil/Viewfinder/internal/tracking"
)

// overlayGame is a borderless, transparent, click-through window covering the main display.
type overlayGame struct {
	ctx    context.Context
	scene  *Scene
	width  int
	height int

	textures map[string]*texture
}

type texture struct {
	img        *ebiten.Image
	generation uint64
}

// Run opens the overlay window and steps the scene every frame until ctx is cancelled. It
// must be called from the main goroutine.
func Run(ctx context.Context, scene *Scene) error {
	w, h := scene.Screen.X, scene.Screen.Y
	if w <= 0 || h <= 0 {
		w, h = tracking.ScreenSize()
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", w, h)
	}
	scene.Crosshair.SetScreen(image.Rect(0, 0, w, h))
	defer scene.Dispatcher.Close()

	ebiten.SetWindowTitle("Viewfinder")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	game := &overlayGame{
		ctx:      ctx,
		scene:    scene,
		width:    w,
		height:   h,
		textures: make(map[string]*texture),
	}
	opts := &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
		SkipTaskbar:       true,
	}
	if err := ebiten.RunGameWithOptions(game, opts); err != nil {
		return fmt.Errorf("overlay window: %w", err)
	}
	return nil
}

func (g *overlayGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	g.scene.Step()
	return nil
}

func (g *overlayGame) Draw(screen *ebiten.Image) {
	for _, layer := range g.scene.Layers() {
		img := g.upload(layer)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(layer.Origin.X), float64(layer.Origin.Y))
		screen.DrawImage(img, op)
	}

	if r := g.scene.LensRect(); !r.Empty() {
		vector.StrokeRect(screen,
			float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()),
			magnifier.LensBorderWidth, magnifier.LensBorderColor, false)
	}
}

// upload keeps one GPU image per layer and rewrites its pixels only when the source
// generation moves on.
func (g *overlayGame) upload(layer Layer) *ebiten.Image {
	t, ok := g.textures[layer.Name]
	if !ok || t.img.Bounds().Size() != layer.Image.Bounds().Size() {
		if ok {
			t.img.Deallocate()
		}
		t = &texture{img: ebiten.NewImageFromImage(layer.Image), generation: layer.Generation}
		g.textures[layer.Name] = t
		return t.img
	}
	if t.generation != layer.Generation {
		t.img.WritePixels(layer.Image.Pix)
		t.generation = layer.Generation
	}
	return t.img
}

// Layout keeps one logical pixel per screen pixel so overlay coordinates match the cursor.
func (g *overlayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
