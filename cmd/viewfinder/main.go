package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedantwpatil/Viewfinder/internal/config"
	"github.com/vedantwpatil/Viewfinder/internal/crosshair"
	"github.com/vedantwpatil/Viewfinder/internal/host"
	"github.com/vedantwpatil/Viewfinder/internal/hotkey"
	"github.com/vedantwpatil/Viewfinder/internal/magnifier"
	"github.com/vedantwpatil/Viewfinder/internal/overlay"
	"github.com/vedantwpatil/Viewfinder/internal/recording"
	"github.com/vedantwpatil/Viewfinder/internal/tracking"
	"github.com/vedantwpatil/Viewfinder/internal/visibility"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the JSON settings file")
	previewPath := flag.String("preview", "", "write a crosshair preview PNG to this path and exit")
	fps := flag.Int("fps", 0, "override the magnifier refresh rate")
	screenFlag := flag.String("screen", "", "screen size as WIDTHxHEIGHT, detected when empty")
	flag.Parse()

	var screen image.Point
	if *screenFlag != "" {
		var err error
		if screen, err = host.ParseScreenSize(*screenFlag); err != nil {
			log.Fatalf("Invalid -screen: %v", err)
		}
	}

	store, err := config.Open(*configPath)
	if err != nil {
		log.Printf("Using default settings: %v", err)
	}
	if *fps > 0 {
		store.UpdateMagnifier(func(m *config.Magnifier) { m.SetFPS(*fps) })
	}

	if *previewPath != "" {
		cfg := store.Crosshair()
		if err := writePreview(*previewPath, &cfg); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		fmt.Printf("Crosshair preview saved to %s\n", *previewPath)
		return
	}

	if err := run(store, screen); err != nil {
		log.Fatalf("Viewfinder stopped: %v", err)
	}
}

func writePreview(path string, cfg *config.Crosshair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, crosshair.Preview(cfg)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(store *config.Store, screen image.Point) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := overlay.NewDispatcher(0)
	cross := overlay.NewCrosshair(store, dispatcher)
	display := magnifier.NewDisplay(store, dispatcher)
	lens := magnifier.NewLens()
	mag := magnifier.NewOverlay(display, lens, dispatcher)

	controller := visibility.NewController()
	controller.Attach(visibility.Crosshair, cross)
	controller.Attach(visibility.Magnifier, mag)

	recorder := recording.NewRecorder(store)
	display.SetTap(recorder.WriteFrame)

	loop := magnifier.NewLoop(store, tracking.Cursor{}, magnifier.ScreenGrabber{}, display, lens)

	handlers := map[string]func(){
		hotkey.ActionToggleMagnifier: func() { controller.ToggleMagnifier() },
		hotkey.ActionToggleCrosshair: func() { controller.ToggleCrosshair() },
		hotkey.ActionHideAll:         func() { controller.ToggleAll() },
		hotkey.ActionExit: func() {
			fmt.Println("Exiting application...")
			cancel()
		},
		hotkey.ActionToggleRecording: func() { toggleRecording(recorder, store) },
	}
	bindings := hotkey.Bindings(store.Keybinds(), handlers)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigChan:
				if sig == syscall.SIGHUP {
					reload(store, display)
					continue
				}
				fmt.Printf("\nReceived signal: %v\n", sig)
				cancel()
				return
			}
		}
	}()

	go func() {
		if err := loop.Run(ctx); err != nil {
			log.Printf("Magnifier loop stopped: %v", err)
		}
	}()
	go hotkey.Listen(ctx, bindings)

	fmt.Println(hotkey.Describe(bindings))

	err := host.Run(ctx, &host.Scene{
		Dispatcher: dispatcher,
		Crosshair:  cross,
		Display:    display,
		Lens:       lens,
		Screen:     screen,
	})
	cancel()

	if recorder.IsRecording() {
		if stopErr := recorder.Stop(); stopErr != nil {
			log.Printf("Failed to stop recording: %v", stopErr)
		}
	}
	return err
}

func toggleRecording(recorder *recording.Recorder, store *config.Store) {
	if recorder.IsRecording() {
		if err := recorder.Stop(); err != nil {
			log.Printf("Failed to stop recording: %v", err)
		}
		return
	}
	size := store.Magnifier().WindowSize
	if size <= 0 {
		size = config.DefaultMagnifier().WindowSize
	}
	name := "magnifier_" + time.Now().Format("20060102_150405")
	if err := recorder.Start(name, size, size); err != nil {
		log.Printf("Failed to start recording: %v", err)
	}
}

// reload re-reads the settings file. The crosshair and capture loop pick the new values up
// on their own; the display has to be moved explicitly.
func reload(store *config.Store, display *magnifier.Display) {
	if err := store.Reload(); err != nil {
		log.Printf("Failed to reload %s: %v", store.Path(), err)
		return
	}
	pos := store.Magnifier().DisplayPos
	if err := display.MoveTo(image.Pt(pos.X(), pos.Y())); err != nil {
		log.Printf("Failed to move magnifier: %v", err)
	}
	fmt.Printf("Reloaded settings from %s\n", store.Path())
}
