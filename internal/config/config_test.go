package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDecode_MissingScaleUsesDefault(t *testing.T) {
	doc := []byte(`{
		"magnifier": {"radius": 80, "window_size": 600, "timer_ms": 20, "mag_detection_pos": [10, 20]},
		"keybinds": {"toggle_magnifier": "x"}
	}`)

	cfg, err := Decode(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Magnifier.Scale != 2.0 {
		t.Fatalf("expected default scale 2.0, got %v", cfg.Magnifier.Scale)
	}
	if cfg.Magnifier.Radius != 80 || cfg.Magnifier.WindowSize != 600 || cfg.Magnifier.TimerMS != 20 {
		t.Fatalf("document fields not applied: %+v", cfg.Magnifier)
	}
	if cfg.Magnifier.DetectionPos != (Position{10, 20}) {
		t.Fatalf("expected detection pos [10 20], got %v", cfg.Magnifier.DetectionPos)
	}
	if cfg.Crosshair != DefaultCrosshair() {
		t.Fatalf("missing crosshair section should keep defaults, got %+v", cfg.Crosshair)
	}
	if cfg.Keybinds.ToggleMagnifier != "x" || cfg.Keybinds.ToggleCrosshair != "c" {
		t.Fatalf("unexpected keybinds: %+v", cfg.Keybinds)
	}
}

func TestDecode_CrosshairSection(t *testing.T) {
	doc := []byte(`{"crosshair": {"style": "circle", "color": "#FF8000", "alpha": 128, "t_style": true}}`)

	cfg, err := Decode(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cfg.Crosshair
	if c.Style != StyleCircle || c.Alpha != 128 || !c.TStyle {
		t.Fatalf("document fields not applied: %+v", c)
	}
	if c.Color != (Color{R: 0xFF, G: 0x80, B: 0x00}) {
		t.Fatalf("expected #FF8000, got %s", c.Color)
	}
	if c.Size != 10 || c.OutlineColor != (Color{}) {
		t.Fatalf("expected defaults for missing fields, got %+v", c)
	}
}

func TestDecode_DetectionPosAlias(t *testing.T) {
	cfg, err := Decode([]byte(`{"magnifier": {"detection_pos": [5, 6]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Magnifier.DetectionPos != (Position{5, 6}) {
		t.Fatalf("expected [5 6], got %v", cfg.Magnifier.DetectionPos)
	}
	if cfg.Magnifier.Radius != 120 {
		t.Fatalf("expected default radius, got %d", cfg.Magnifier.Radius)
	}
}

func TestDecode_MalformedFallsBackToDefaults(t *testing.T) {
	cfg, err := Decode([]byte(`{"crosshair": {"size": 40, "color": "green"`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg != NewConfig() {
		t.Fatalf("expected defaults after failure, got %+v", cfg)
	}

	cfg, err = Decode([]byte(`{"crosshair": {"size": 40, "color": "green"}}`))
	if err == nil {
		t.Fatal("expected invalid color error")
	}
	if cfg.Crosshair.Size != 10 {
		t.Fatalf("partial document must not leak into defaults, got size %d", cfg.Crosshair.Size)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if cfg != NewConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestMagnifier_FPSIsDerived(t *testing.T) {
	m := DefaultMagnifier()
	if m.FPS() != 30 {
		t.Fatalf("expected 30 fps for 33ms, got %d", m.FPS())
	}
	m.SetFPS(60)
	if m.TimerMS != 16 {
		t.Fatalf("expected 16ms for 60 fps, got %d", m.TimerMS)
	}
	if m.Interval() != 16*time.Millisecond {
		t.Fatalf("unexpected interval %v", m.Interval())
	}
	m.SetFPS(0)
	if m.TimerMS != 16 {
		t.Fatalf("zero fps must be ignored, got %d", m.TimerMS)
	}
	m.TimerMS = 0
	if m.FPS() != 0 || m.Interval() != 33*time.Millisecond {
		t.Fatalf("unexpected fallback fps=%d interval=%v", m.FPS(), m.Interval())
	}
}

func TestColor_ParseAndAlpha(t *testing.T) {
	c, err := ParseColor("#00FF00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.WithAlpha(77)
	if got.R != 0 || got.G != 0xFF || got.B != 0 || got.A != 77 {
		t.Fatalf("expected {0 255 0 77}, got %v", got)
	}
	if c.WithAlpha(400).A != 255 || c.WithAlpha(-3).A != 0 {
		t.Fatal("alpha must be clamped")
	}

	short, err := ParseColor("#0f0")
	if err != nil || short != c {
		t.Fatalf("expected short form to match, got %v %v", short, err)
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatal("expected error for five digit color")
	}
	if c.String() != "#00FF00" {
		t.Fatalf("expected #00FF00, got %s", c.String())
	}
}

func TestStore_VersionsAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewfinder_config.json")
	if err := os.WriteFile(path, []byte(`{"crosshair": {"size": 14}}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Crosshair().Size != 14 {
		t.Fatalf("expected size 14, got %d", s.Crosshair().Size)
	}

	cv, mv := s.CrosshairVersion(), s.MagnifierVersion()
	s.UpdateCrosshair(func(c *Crosshair) { c.Gap = 0 })
	if s.CrosshairVersion() == cv || s.MagnifierVersion() != mv {
		t.Fatal("crosshair update must only bump the crosshair version")
	}
	if s.Crosshair().Gap != 0 {
		t.Fatal("update not applied")
	}

	if err := os.WriteFile(path, []byte(`{"magnifier": {"scale": 3.5}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("unexpected reload error: %v", err)
	}
	if s.Magnifier().Scale != 3.5 || s.Crosshair().Size != 10 {
		t.Fatalf("reload not applied: %+v", s.Snapshot())
	}

	if err := os.WriteFile(path, []byte(`not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if s.Magnifier().Scale != 3.5 {
		t.Fatal("failed reload must keep current values")
	}
}

func TestOpen_FailureStillUsable(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Magnifier() != DefaultMagnifier() {
		t.Fatalf("expected default magnifier, got %+v", s.Magnifier())
	}
}
