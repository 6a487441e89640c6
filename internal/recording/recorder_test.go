package recording

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

type fakeWriter struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (f *fakeWriter) Write(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeWriter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func newTestRecorder(t *testing.T) (*Recorder, *fakeWriter, *float64) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Recording.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Magnifier.TimerMS = 50

	r := NewRecorder(config.NewStore(cfg))
	w := &fakeWriter{}
	var gotFPS float64
	r.newWriter = func(path string, width, height int, fps float64) (FrameWriter, error) {
		gotFPS = fps
		return w, nil
	}
	return r, w, &gotFPS
}

func TestRecorder_WritesFramesInOrder(t *testing.T) {
	r, w, fps := newTestRecorder(t)

	if err := r.Start("session", 2, 2); err != nil {
		t.Fatalf("start: %v", err)
	}
	if *fps != 20 {
		t.Fatalf("expected 20 fps from timer_ms 50, got %v", *fps)
	}
	if _, err := os.Stat(filepath.Dir(r.GetOutputPath())); err != nil {
		t.Fatalf("output directory not created: %v", err)
	}
	if filepath.Base(r.GetOutputPath()) != "session.mp4" {
		t.Fatalf("unexpected output path %s", r.GetOutputPath())
	}

	for i := 0; i < 3; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Pix[0] = byte(i + 1)
		r.WriteFrame(img)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if !w.closed {
		t.Fatal("writer not closed")
	}
	written, dropped := r.Counts()
	if written+dropped != 3 || written != len(w.frames) {
		t.Fatalf("written=%d dropped=%d frames=%d", written, dropped, len(w.frames))
	}
	for i, frame := range w.frames {
		if len(frame) != 16 {
			t.Fatalf("frame %d has %d bytes", i, len(frame))
		}
		if i > 0 && frame[0] <= w.frames[i-1][0] {
			t.Fatalf("frames out of order")
		}
	}
}

func TestRecorder_DropsMismatchedFrames(t *testing.T) {
	r, w, _ := newTestRecorder(t)
	if err := r.Start("mismatch", 4, 4); err != nil {
		t.Fatal(err)
	}
	r.WriteFrame(image.NewRGBA(image.Rect(0, 0, 3, 4)))
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if len(w.frames) != 0 {
		t.Fatalf("expected no frames, got %d", len(w.frames))
	}
	if _, dropped := r.Counts(); dropped != 1 {
		t.Fatalf("expected 1 dropped frame, got %d", dropped)
	}
}

func TestRecorder_SubImageRowsAreCopied(t *testing.T) {
	r, w, _ := newTestRecorder(t)
	if err := r.Start("sub", 2, 2); err != nil {
		t.Fatal(err)
	}
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	base.Pix[base.PixOffset(1, 1)] = 200
	r.WriteFrame(base.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA))
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if len(w.frames) != 1 || w.frames[0][0] != 200 {
		t.Fatalf("expected the sub-image pixel, got %v", w.frames)
	}
}

func TestRecorder_OddSizeCroppedToEven(t *testing.T) {
	r, w, _ := newTestRecorder(t)
	var gotW, gotH int
	r.newWriter = func(path string, width, height int, fps float64) (FrameWriter, error) {
		gotW, gotH = width, height
		return w, nil
	}

	if err := r.Start("odd", 401, 3); err != nil {
		t.Fatal(err)
	}
	if gotW != 400 || gotH != 2 {
		t.Fatalf("expected a 400x2 encoder, got %dx%d", gotW, gotH)
	}

	img := image.NewRGBA(image.Rect(0, 0, 401, 3))
	img.Pix[img.PixOffset(399, 1)] = 7
	img.Pix[img.PixOffset(400, 1)] = 9
	r.WriteFrame(img)
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	if len(w.frames) != 1 || len(w.frames[0]) != 400*2*4 {
		t.Fatalf("expected one 400x2 frame, got %d frames", len(w.frames))
	}
	frame := w.frames[0]
	if frame[(1*400+399)*4] != 7 {
		t.Fatal("expected the last kept column in place")
	}
	for _, b := range frame {
		if b == 9 {
			t.Fatal("the odd column must be cropped")
		}
	}
}

func TestRecorder_StateErrors(t *testing.T) {
	r, _, _ := newTestRecorder(t)

	if err := r.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("expected ErrNotRecording, got %v", err)
	}
	if err := r.Start("bad", 0, 10); err == nil {
		t.Fatal("expected invalid size error")
	}
	if err := r.Start("bad", 1, 10); err == nil {
		t.Fatal("a single column cannot be encoded")
	}
	if err := r.Start("a", 2, 2); err != nil {
		t.Fatal(err)
	}
	if !r.IsRecording() {
		t.Fatal("expected recording")
	}
	if err := r.Start("b", 2, 2); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if r.IsRecording() {
		t.Fatal("expected stopped")
	}
	// Frames after stop are ignored.
	r.WriteFrame(image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

func TestRecorder_WriterOpenFailure(t *testing.T) {
	r, _, _ := newTestRecorder(t)
	r.newWriter = func(string, int, int, float64) (FrameWriter, error) {
		return nil, errors.New("ffmpeg not found")
	}
	if err := r.Start("x", 2, 2); err == nil {
		t.Fatal("expected error")
	}
	if r.IsRecording() {
		t.Fatal("must not be recording after a failed start")
	}
}
