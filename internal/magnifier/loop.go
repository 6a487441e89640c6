package magnifier

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

// CursorSource reports the global cursor position in screen pixels.
type CursorSource interface {
	Location() (x, y int)
}

// Grabber copies a rectangle of the screen. Rectangles may extend past the screen edges;
// how much of that is filled in is up to the implementation.
type Grabber interface {
	Grab(rect image.Rectangle) (*image.RGBA, error)
}

// FrameSink receives magnified frames. It is called from the capture goroutine.
type FrameSink interface {
	PresentFrame(f *Frame)
}

// LensPlacer moves the on-screen indicator of the captured region.
type LensPlacer interface {
	Place(rect image.Rectangle)
}

// Stats describes the capture loop so far.
type Stats struct {
	Ticks           uint64
	Failures        uint64
	LastCapture     time.Duration
	LastResize      time.Duration
	LastFrameWidth  int
	LastFrameHeight int
}

// Loop periodically grabs the screen around the cursor, scales it, and hands the result to
// the sink. Settings are read from the store on every tick.
type Loop struct {
	store   *config.Store
	cursor  CursorSource
	grabber Grabber
	sink    FrameSink
	lens    LensPlacer

	mu    sync.Mutex
	stats Stats
}

func NewLoop(store *config.Store, cursor CursorSource, grabber Grabber, sink FrameSink, lens LensPlacer) *Loop {
	return &Loop{
		store:   store,
		cursor:  cursor,
		grabber: grabber,
		sink:    sink,
		lens:    lens,
	}
}

// CaptureRect is the square of side 2*radius centered on (x, y).
func CaptureRect(x, y, radius int) image.Rectangle {
	return image.Rect(x-radius, y-radius, x+radius, y+radius)
}

// Tick runs one capture cycle. A failed grab or resize is returned and nothing is presented.
func (l *Loop) Tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capture panicked: %v", r)
		}
		l.mu.Lock()
		l.stats.Ticks++
		if err != nil {
			l.stats.Failures++
		}
		l.mu.Unlock()
	}()

	cfg := l.store.Magnifier()
	x, y := l.cursor.Location()
	rect := CaptureRect(x, y, cfg.Radius)

	// Keep the lens on the cursor even when this tick's grab fails.
	if l.lens != nil {
		l.lens.Place(rect)
	}

	captureStart := time.Now()
	img, err := l.grabber.Grab(rect)
	captureDuration := time.Since(captureStart)
	if err != nil {
		return fmt.Errorf("failed to grab %v: %w", rect, err)
	}
	if img == nil {
		return fmt.Errorf("failed to grab %v: %w", rect, ErrEmptyFrame)
	}
	dropAlpha(img)

	resizeStart := time.Now()
	scaled, err := Resize(img, cfg.Scale)
	resizeDuration := time.Since(resizeStart)
	if err != nil {
		return fmt.Errorf("failed to resize by %.2f: %w", cfg.Scale, err)
	}

	frame := FrameFromRGBA(scaled)
	l.sink.PresentFrame(frame)

	l.mu.Lock()
	l.stats.LastCapture = captureDuration
	l.stats.LastResize = resizeDuration
	l.stats.LastFrameWidth = frame.Width
	l.stats.LastFrameHeight = frame.Height
	l.mu.Unlock()
	return nil
}

// Run ticks every timer_ms until ctx is cancelled. Failed ticks are logged and skipped.
// Ticks that fire while a previous one is still running are dropped, never queued.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.store.Magnifier().Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stats := l.Stats()
			log.Printf("Capture loop stopped after %d ticks (%d failed)", stats.Ticks, stats.Failures)
			return nil
		case <-ticker.C:
			if err := l.Tick(); err != nil {
				log.Printf("Capture failed: %v", err)
			}

			if next := l.store.Magnifier().Interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
