package hotkey

import (
	"strings"
	"testing"

	"github.com/vedantwpatil/Viewfinder/internal/config"
)

func TestBindings_DefaultKeys(t *testing.T) {
	var fired []string
	handlers := map[string]func(){
		ActionToggleMagnifier: func() { fired = append(fired, "mag") },
		ActionToggleCrosshair: func() { fired = append(fired, "cross") },
		ActionHideAll:         func() {},
		ActionExit:            func() {},
	}

	bindings := Bindings(config.DefaultKeybinds(), handlers)
	if len(bindings) != 4 {
		t.Fatalf("expected 4 bindings (auto_detect and recording unhandled), got %d", len(bindings))
	}

	byAction := make(map[string]Binding)
	for _, b := range bindings {
		byAction[b.Action] = b
	}
	if byAction[ActionToggleMagnifier].Key != "m" || byAction[ActionToggleCrosshair].Key != "c" {
		t.Fatalf("unexpected keys %+v", byAction)
	}
	if byAction[ActionExit].Key != "down" {
		t.Fatalf("expected exit on down, got %q", byAction[ActionExit].Key)
	}

	byAction[ActionToggleCrosshair].Run()
	if len(fired) != 1 || fired[0] != "cross" {
		t.Fatalf("expected crosshair handler, got %v", fired)
	}
}

func TestBindings_EmptyAndDuplicateKeys(t *testing.T) {
	keys := config.Keybinds{
		ToggleMagnifier: " M ",
		ToggleCrosshair: "m",
		HideAll:         "",
	}
	handlers := map[string]func(){
		ActionToggleMagnifier: func() {},
		ActionToggleCrosshair: func() {},
		ActionHideAll:         func() {},
	}

	bindings := Bindings(keys, handlers)
	if len(bindings) != 1 {
		t.Fatalf("expected a single binding, got %+v", bindings)
	}
	if bindings[0].Action != ActionToggleMagnifier || bindings[0].Key != "m" {
		t.Fatalf("expected magnifier on m, got %+v", bindings[0])
	}
}

func TestDescribe(t *testing.T) {
	text := Describe([]Binding{{Action: ActionToggleCrosshair, Key: "c"}})
	if !strings.Contains(text, "c - toggle crosshair") {
		t.Fatalf("unexpected description:\n%s", text)
	}
}
