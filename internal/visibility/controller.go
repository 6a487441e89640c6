// Package visibility tracks whether each overlay family is shown and keeps that state in step
// with the overlays themselves.
package visibility

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrNotInitialized = errors.New("overlay not initialized")

type Family int

const (
	Magnifier Family = iota
	Crosshair
	familyCount
)

func (f Family) String() string {
	switch f {
	case Magnifier:
		return "Magnifier"
	case Crosshair:
		return "Crosshair"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "ON"
	}
	return "OFF"
}

// Target is an overlay that can be shown or hidden.
type Target interface {
	SetVisibility(visible bool) error
}

type family struct {
	state  State
	target Target
}

// Controller owns the visibility state of every overlay family. A transition only sticks when
// the overlay accepted it; otherwise the previous state is restored and the error returned.
type Controller struct {
	mu       sync.Mutex
	families [familyCount]family
}

// NewController starts with every family visible, matching freshly created overlays.
func NewController() *Controller {
	c := &Controller{}
	for i := range c.families {
		c.families[i].state = Visible
	}
	return c
}

// Attach connects an overlay to its family. A nil target detaches it.
func (c *Controller) Attach(f Family, target Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.families[f].target = target
}

func (c *Controller) State(f Family) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.families[f].state
}

// Toggle flips one family. On failure the state is unchanged and the error explains why.
func (c *Controller) Toggle(f Family) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Visible
	if c.families[f].state == Visible {
		next = Hidden
	}
	return c.transition(f, next)
}

// Set moves one family to the requested state.
func (c *Controller) Set(f Family, s State) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition(f, s)
}

func (c *Controller) ToggleMagnifier() error {
	_, err := c.Toggle(Magnifier)
	return err
}

func (c *Controller) ToggleCrosshair() error {
	_, err := c.Toggle(Crosshair)
	return err
}

// ToggleAll hides every family when any of them is visible, otherwise shows them all. Each
// family succeeds or rolls back on its own.
func (c *Controller) ToggleAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Visible
	for _, fam := range c.families {
		if fam.state == Visible {
			next = Hidden
			break
		}
	}

	var errs []error
	for f := Family(0); f < familyCount; f++ {
		if _, err := c.transition(f, next); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// transition must be called with c.mu held.
func (c *Controller) transition(f Family, next State) (State, error) {
	fam := &c.families[f]
	prev := fam.state
	fam.state = next

	if err := apply(fam.target, next == Visible); err != nil {
		fam.state = prev
		log.Printf("Failed to toggle %s: %v", f, err)
		return prev, fmt.Errorf("toggle %s: %w", f, err)
	}
	log.Printf("%s %s", f, next)
	return next, nil
}

func apply(target Target, visible bool) (err error) {
	if target == nil {
		return ErrNotInitialized
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("set visibility panicked: %v", r)
		}
	}()
	return target.SetVisibility(visible)
}
