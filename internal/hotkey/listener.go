// Package hotkey binds global key presses to overlay actions.
package hotkey

import (
	"context"
	"fmt"
	"log"
	"strings"

	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

// Action names, matching the keys of the keybinds section.
const (
	ActionAutoDetect      = "auto_detect"
	ActionHideAll         = "hide_all"
	ActionExit            = "exit"
	ActionToggleMagnifier = "toggle_magnifier"
	ActionToggleCrosshair = "toggle_crosshair"
	ActionToggleRecording = "toggle_recording"
)

type Binding struct {
	Action string
	Key    string
	Run    func()
}

// Bindings pairs each configured key with its handler. Actions without a key or without a
// handler are skipped; a key bound twice keeps its first action.
func Bindings(keys config.Keybinds, handlers map[string]func()) []Binding {
	configured := []struct{ action, key string }{
		{ActionAutoDetect, keys.AutoDetect},
		{ActionHideAll, keys.HideAll},
		{ActionExit, keys.Exit},
		{ActionToggleMagnifier, keys.ToggleMagnifier},
		{ActionToggleCrosshair, keys.ToggleCrosshair},
		{ActionToggleRecording, keys.ToggleRecording},
	}

	seen := make(map[string]string)
	var bindings []Binding
	for _, c := range configured {
		key := strings.ToLower(strings.TrimSpace(c.key))
		if key == "" {
			continue
		}
		run, ok := handlers[c.action]
		if !ok || run == nil {
			log.Printf("No handler for %s, key %q ignored", c.action, key)
			continue
		}
		if other, dup := seen[key]; dup {
			log.Printf("Key %q already bound to %s, skipping %s", key, other, c.action)
			continue
		}
		seen[key] = c.action
		bindings = append(bindings, Binding{Action: c.action, Key: key, Run: run})
	}
	return bindings
}

// Describe renders the bindings as the instruction text shown at startup.
func Describe(bindings []Binding) string {
	var b strings.Builder
	b.WriteString("--------- Instructions ---------\n")
	for _, binding := range bindings {
		fmt.Fprintf(&b, "    %s - %s\n", binding.Key, strings.ReplaceAll(binding.Action, "_", " "))
	}
	b.WriteString("--------------------------------")
	return b.String()
}

// Listen registers the bindings with the global keyboard hook and blocks until ctx is
// cancelled. Handlers run on the hook goroutine and must not touch windows directly.
func Listen(ctx context.Context, bindings []Binding) {
	for _, binding := range bindings {
		run := binding.Run
		hook.Register(hook.KeyDown, []string{binding.Key}, func(e hook.Event) {
			run()
		})
	}

	evChan := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()

	fmt.Println("Hotkey listener started")
	// Blocks until hook.End() is called.
	<-hook.Process(evChan)
	fmt.Println("Hotkey listener stopped")
}
