// Package scriptjs records marionette scripts from JavaScript.
//
// A host exposes a single global, register(category, name, fn), to the
// scripts it runs. The function receives a builder whose methods mirror
// the [marionette.Script] appenders under their op names; it runs
// immediately, records its commands, and the finished script is
// registered with the engine for later replay:
//
//	register("demo", "click-ok", function (b) {
//		b.setRef("Main");
//		b.itemClick("OK");
//		b.assertItemReadStrEq("Result", "done");
//	});
//
// Key, modifier, and button constants are exposed as the keys, mods, and
// buttons globals, with chord(key, mods) combining the first two.
package scriptjs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dop251/goja"

	"github.com/phanxgames/marionette"
)

// Host owns a JavaScript runtime wired to one engine. It is not safe for
// concurrent use; run scripts from the goroutine that owns the engine.
type Host struct {
	vm  *goja.Runtime
	eng *marionette.Engine
}

// New creates a host that registers scripts with the given engine.
func New(eng *marionette.Engine) *Host {
	h := &Host{vm: goja.New(), eng: eng}
	h.setupGlobals()
	return h
}

// Run executes JavaScript source under the given name. Any uncaught
// exception or syntax error is returned.
func (h *Host) Run(name, src string) error {
	if _, err := h.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("scriptjs: %s: %w", name, err)
	}
	return nil
}

// RunFile reads and executes a JavaScript file.
func (h *Host) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scriptjs: %w", err)
	}
	return h.Run(filepath.Base(path), string(data))
}

func (h *Host) setupGlobals() {
	h.vm.Set("register", h.jsRegister)
	h.vm.Set("chord", func(key, mods int) int {
		return int(marionette.Chord(marionette.Key(key), marionette.KeyModifiers(mods)))
	})
	h.vm.Set("print", func(args ...any) {
		fmt.Println(args...)
	})

	keys := map[string]any{
		"none":      int(marionette.KeyNone),
		"enter":     int(marionette.KeyEnter),
		"escape":    int(marionette.KeyEscape),
		"tab":       int(marionette.KeyTab),
		"space":     int(marionette.KeySpace),
		"backspace": int(marionette.KeyBackspace),
		"delete":    int(marionette.KeyDelete),
		"left":      int(marionette.KeyLeft),
		"right":     int(marionette.KeyRight),
		"up":        int(marionette.KeyUp),
		"down":      int(marionette.KeyDown),
		"home":      int(marionette.KeyHome),
		"end":       int(marionette.KeyEnd),
		"pageUp":    int(marionette.KeyPageUp),
		"pageDown":  int(marionette.KeyPageDown),
	}
	for i := 0; i < 26; i++ {
		keys[string(rune('a'+i))] = int(marionette.KeyA) + i
	}
	h.vm.Set("keys", keys)

	h.vm.Set("mods", map[string]any{
		"shift": int(marionette.ModShift),
		"ctrl":  int(marionette.ModCtrl),
		"alt":   int(marionette.ModAlt),
		"meta":  int(marionette.ModMeta),
	})
	h.vm.Set("buttons", map[string]any{
		"left":   int(marionette.MouseButtonLeft),
		"right":  int(marionette.MouseButtonRight),
		"middle": int(marionette.MouseButtonMiddle),
	})
}

// jsRegister is the JS-facing register(category, name, fn): it records a
// script by calling fn with a fresh builder and registers the result.
func (h *Host) jsRegister(category, name string, fn goja.Value) {
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		panic(h.vm.NewTypeError("register: third argument must be a function"))
	}
	s := marionette.NewScript(category)
	if _, err := callable(goja.Undefined(), h.builderFor(s)); err != nil {
		s.Discard()
		// Rethrow so the calling script's own try/catch can see it.
		panic(err)
	}
	h.eng.RegisterScript(category, name, s)
}
