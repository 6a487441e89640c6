package config

import (
	"sync"
	"sync/atomic"
)

// Store is the shared, in-memory settings document. Readers always receive a copy of the
// current values, writers bump a per-section version so renderers know when to redraw.
type Store struct {
	mu   sync.RWMutex
	cfg  Config
	path string

	crosshairVersion atomic.Uint64
	magnifierVersion atomic.Uint64
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Open loads path into a new store. The store is always usable: when loading fails it holds
// the defaults and the load error is returned alongside it.
func Open(path string) (*Store, error) {
	cfg, err := Load(path)
	s := NewStore(cfg)
	s.path = path
	return s, err
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Store) Crosshair() Crosshair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Crosshair
}

func (s *Store) Magnifier() Magnifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Magnifier
}

func (s *Store) Keybinds() Keybinds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Keybinds
}

func (s *Store) Recording() Recording {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Recording
}

func (s *Store) UpdateCrosshair(fn func(*Crosshair)) {
	s.mu.Lock()
	fn(&s.cfg.Crosshair)
	s.mu.Unlock()
	s.crosshairVersion.Add(1)
}

func (s *Store) UpdateMagnifier(fn func(*Magnifier)) {
	s.mu.Lock()
	fn(&s.cfg.Magnifier)
	s.mu.Unlock()
	s.magnifierVersion.Add(1)
}

// Replace swaps the whole document, e.g. after the file changed on disk.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.crosshairVersion.Add(1)
	s.magnifierVersion.Add(1)
}

// Reload re-reads the backing file. A failed reload leaves the current values untouched.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.Replace(cfg)
	return nil
}

func (s *Store) CrosshairVersion() uint64 {
	return s.crosshairVersion.Load()
}

func (s *Store) MagnifierVersion() uint64 {
	return s.magnifierVersion.Load()
}
