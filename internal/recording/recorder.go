package recording

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// frameBacklog is how many frames may wait for the encoder before new ones are dropped.
const frameBacklog = 8

// FrameWriter encodes raw RGBA frames into a video file.
type FrameWriter interface {
	Write(frame []byte) error
	Close()
}

type vidioWriter struct {
	w *vidio.VideoWriter
}

func (v vidioWriter) Write(frame []byte) error {
	return v.w.Write(frame)
}

func (v vidioWriter) Close() {
	v.w.Close()
}

func newVidioWriter(path string, width, height int, fps float64) (FrameWriter, error) {
	options := vidio.Options{
		FPS: fps,
	}
	w, err := vidio.NewVideoWriter(path, width, height, &options)
	if err != nil {
		return nil, err
	}
	return vidioWriter{w: w}, nil
}

// Recorder writes the magnified display to an mp4 file. Frames come from the display's
// owning thread and are encoded on a separate goroutine so a slow encoder never stalls
// drawing; frames that arrive while the backlog is full are dropped.
type Recorder struct {
	store     *config.Store
	newWriter func(path string, width, height int, fps float64) (FrameWriter, error)

	mu          sync.Mutex
	isRecording bool
	outputPath  string
	frameWidth  int
	frameHeight int
	width       int
	height      int
	frames      chan []byte
	doneChan    chan struct{}
	written     int
	dropped     int
	startTime   time.Time
}

func NewRecorder(store *config.Store) *Recorder {
	return &Recorder{
		store:     store,
		newWriter: newVidioWriter,
	}
}

// Start opens baseName.mp4 in the configured output directory for frames of the given size.
func (r *Recorder) Start(baseName string, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRecording {
		return ErrAlreadyRecording
	}
	// yuv420p needs even dimensions; odd frames lose their last column or row.
	encWidth, encHeight := width&^1, height&^1
	if encWidth <= 0 || encHeight <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	outputDir := r.store.Recording().OutputDir
	if outputDir == "" {
		outputDir = "recordings"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, baseName+".mp4")
	fps := float64(r.store.Magnifier().FPS())
	if fps <= 0 {
		fps = 30
	}
	writer, err := r.newWriter(outputPath, encWidth, encHeight, fps)
	if err != nil {
		return fmt.Errorf("failed to open video writer: %w", err)
	}

	r.isRecording = true
	r.outputPath = outputPath
	r.frameWidth, r.frameHeight = width, height
	r.width, r.height = encWidth, encHeight
	r.frames = make(chan []byte, frameBacklog)
	r.doneChan = make(chan struct{})
	r.written, r.dropped = 0, 0
	r.startTime = time.Now()

	go r.encode(writer, r.frames, r.doneChan)

	fmt.Printf("Recording magnifier to %s at %.0f fps\n", outputPath, fps)
	return nil
}

func (r *Recorder) encode(writer FrameWriter, frames <-chan []byte, done chan<- struct{}) {
	defer close(done)
	defer writer.Close()

	for frame := range frames {
		if err := writer.Write(frame); err != nil {
			log.Printf("Failed to write frame: %v", err)
			continue
		}
		r.mu.Lock()
		r.written++
		r.mu.Unlock()
	}
}

// WriteFrame queues a copy of img, cropped to the encoded size. Frames whose size differs
// from the one given to Start, or that arrive while the encoder is behind, are dropped.
func (r *Recorder) WriteFrame(img *image.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRecording {
		return
	}
	b := img.Bounds()
	if b.Dx() != r.frameWidth || b.Dy() != r.frameHeight {
		r.dropped++
		return
	}

	frame := make([]byte, 0, r.width*r.height*4)
	for y := b.Min.Y; y < b.Min.Y+r.height; y++ {
		frame = append(frame, img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Min.X+r.width, y)]...)
	}

	select {
	case r.frames <- frame:
	default:
		r.dropped++
	}
}

// Stop closes the file after every queued frame has been encoded.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if !r.isRecording {
		r.mu.Unlock()
		return ErrNotRecording
	}
	r.isRecording = false
	close(r.frames)
	done := r.doneChan
	r.mu.Unlock()

	<-done

	r.mu.Lock()
	fmt.Printf("Recording saved to %s: %d frames in %v (%d dropped)\n",
		r.outputPath, r.written, time.Since(r.startTime).Round(time.Second), r.dropped)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRecording
}

func (r *Recorder) GetOutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputPath
}

// Counts reports frames written and dropped in the current or last recording.
func (r *Recorder) Counts() (written, dropped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written, r.dropped
}
