package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultPath is where the settings document lives unless overridden on the command line
const DefaultPath = "viewfinder_config.json"

type Style string

const (
	StyleCross  Style = "cross"
	StyleDot    Style = "dot"
	StyleCircle Style = "circle"
)

// Crosshair describes the marker drawn at the reference point of an overlay.
type Crosshair struct {
	Style            Style `json:"style"`
	Size             int   `json:"size"`      // Half-length of cross arms, radius of the circle
	Thickness        int   `json:"thickness"` // Primary stroke width
	Gap              int   `json:"gap"`       // Distance from center to the start of each arm
	OutlineThickness int   `json:"outline_thickness"`
	Color            Color `json:"color"`
	OutlineColor     Color `json:"outline_color"`
	Alpha            int   `json:"alpha"`
	CenterDot        bool  `json:"center_dot"`
	CenterDotSize    int   `json:"center_dot_size"`
	DrawOutline      bool  `json:"draw_outline"`
	TStyle           bool  `json:"t_style"` // Drops the upward arm of a cross
}

// OutlineEnabled reports whether an outline pass should run at all.
func (c Crosshair) OutlineEnabled() bool {
	return c.DrawOutline && c.OutlineThickness > 0
}

// Position is an (x, y) screen coordinate persisted as a two element array.
type Position [2]int

func (p Position) X() int { return p[0] }
func (p Position) Y() int { return p[1] }

// Magnifier holds the lens settings. The capture interval is stored once as TimerMS,
// FPS is always derived from it.
type Magnifier struct {
	Scale        float64  `json:"scale"`
	Radius       int      `json:"radius"`
	WindowSize   int      `json:"window_size"`
	TimerMS      int      `json:"timer_ms"`
	DetectionPos Position `json:"mag_detection_pos"`
	DisplayPos   Position `json:"display_pos"`
}

// UnmarshalJSON accepts "detection_pos" as an alias for "mag_detection_pos".
func (m *Magnifier) UnmarshalJSON(data []byte) error {
	type plain Magnifier
	aux := struct {
		*plain
		DetectionPosAlias *Position `json:"detection_pos"`
	}{plain: (*plain)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DetectionPosAlias != nil {
		m.DetectionPos = *aux.DetectionPosAlias
	}
	return nil
}

// FPS is the refresh rate shown to users, derived from the capture interval.
func (m Magnifier) FPS() int {
	if m.TimerMS <= 0 {
		return 0
	}
	return 1000 / m.TimerMS
}

// SetFPS stores a refresh rate by converting it back into the capture interval.
func (m *Magnifier) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	m.TimerMS = 1000 / fps
}

// Interval is the capture period. Non-positive timer values fall back to the default.
func (m Magnifier) Interval() time.Duration {
	ms := m.TimerMS
	if ms <= 0 {
		ms = DefaultMagnifier().TimerMS
	}
	return time.Duration(ms) * time.Millisecond
}

// Keybinds maps actions to gohook key names. An empty key disables the action.
type Keybinds struct {
	AutoDetect      string `json:"auto_detect"`
	HideAll         string `json:"hide_all"`
	Exit            string `json:"exit"`
	ToggleMagnifier string `json:"toggle_magnifier"`
	ToggleCrosshair string `json:"toggle_crosshair"`
	ToggleRecording string `json:"toggle_recording"`
}

type Recording struct {
	OutputDir string `json:"output_dir"`
}

type Config struct {
	Crosshair Crosshair `json:"crosshair"`
	Magnifier Magnifier `json:"magnifier"`
	Keybinds  Keybinds  `json:"keybinds"`
	Recording Recording `json:"recording"`
}

func DefaultCrosshair() Crosshair {
	return Crosshair{
		Style:            StyleCross,
		Size:             10,
		Thickness:        2,
		Gap:              5,
		OutlineThickness: 1,
		Color:            Color{R: 0x00, G: 0xFF, B: 0x00},
		OutlineColor:     Color{R: 0x00, G: 0x00, B: 0x00},
		Alpha:            255,
		CenterDot:        true,
		CenterDotSize:    2,
		DrawOutline:      true,
		TStyle:           false,
	}
}

func DefaultMagnifier() Magnifier {
	return Magnifier{
		Scale:        2.0,
		Radius:       120,
		WindowSize:   400,
		TimerMS:      33,
		DetectionPos: Position{1718, 877},
		DisplayPos:   Position{20, 20},
	}
}

func DefaultKeybinds() Keybinds {
	return Keybinds{
		AutoDetect:      "up",
		HideAll:         "right",
		Exit:            "down",
		ToggleMagnifier: "m",
		ToggleCrosshair: "c",
		ToggleRecording: "f8",
	}
}

func NewConfig() Config {
	return Config{
		Crosshair: DefaultCrosshair(),
		Magnifier: DefaultMagnifier(),
		Keybinds:  DefaultKeybinds(),
		Recording: Recording{OutputDir: "recordings"},
	}
}

// Decode merges a settings document over the defaults. Fields missing from the document
// keep their default values, unknown fields are ignored.
func Decode(data []byte) (Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return NewConfig(), fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Load reads the settings document at path. On any failure it returns the defaults together
// with the error so the caller can log it and keep running.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
