// Package marionette is a scripted UI-test engine for [Ebitengine]
// interfaces.
//
// Marionette drives a user interface the way a person would: it moves the
// cursor, clicks, types, scrolls, walks menus, and then asserts on what
// the interface reports back. Tests run in strict lockstep with the host's
// frame loop, one frame at a time, so every run of a test plays out
// identically.
//
// # Quick start
//
// A test is either a plain Go function or a [Script]: a recorded sequence
// of commands built up front and replayed later.
//
//	s := marionette.NewScript("demo")
//	s.SetRef("Main")
//	s.ItemClick("OK", marionette.MouseButtonLeft)
//	s.AssertItemReadStrEq("Result", "done")
//
//	eng := marionette.NewEngine(surface, marionette.Options{
//		Verbosity: marionette.VerbosityInfo,
//	})
//	eng.RegisterScript("demo", "click-ok", s)
//	eng.QueueTests(marionette.GroupAll, "all", 0)
//	eng.Start()
//	for !eng.QueueEmpty() {
//		app.Step()      // advance the UI under test by one frame
//		eng.PostFrame() // resume the running test
//	}
//	eng.Shutdown()
//
// Go-function tests get a [Context] with the same operations plus direct
// reads, and can branch on what they see:
//
//	eng.RegisterTest("demo", "toggle", func(c *marionette.Context) {
//		c.ItemCheck("Main/Enabled")
//		if v, ok := c.ItemReadInt("Main/Count"); ok && v > 0 {
//			c.ItemClick("Main/Reset", marionette.MouseButtonLeft)
//		}
//	})
//
// Windowed hosts can use [Run] instead of pumping by hand; it wraps an
// [ebiten.Game], calls [Engine.PostFrame] after every update, and draws
// the status overlay and queued screen captures.
//
// # Scripts and commands
//
// Every recorded interaction is a [Cmd]: a kind tag plus a small generic
// payload whose meaning the kind alone determines. Appending to a script
// validates nothing and never fails; problems surface when the script
// runs. A script is owned by its creator until [Engine.RegisterScript],
// which transfers ownership to the engine; the engine releases every
// registered script at [Engine.Shutdown]. Scripts that are never
// registered should be released with [Script.Discard].
//
// Scripts round-trip through a small JSON format via [LoadScript] and
// [SaveScript], and can be written in JavaScript through the scriptjs
// subpackage (via [goja]).
//
// # The frame pump
//
// Tests execute on their own goroutine, but only ever between two
// [Engine.PostFrame] calls: a test runs until it needs a frame to pass,
// suspends, and resumes when the host has stepped the UI and pumped the
// engine again. Exactly one side runs at any instant.
//
// Commands that take time (cursor glides, waits, [Context.Yield]) suspend
// once per frame they consume. Wait commands poll once per frame up to a
// frame budget and fail with a timeout that names the item and the budget.
// The first failure in a run stops it: every later command short-circuits,
// and the next run of the same test starts clean.
//
// # Surfaces
//
// The engine sees the interface under test only through the [Surface]
// interface: resolve an item path, read a value, inject an input event.
// Any retained or immediate-mode UI can be tested by implementing it. The
// simui subpackage provides a small simulated UI used by marionette's own
// tests and examples.
//
// Cursor glides are eased with [gween] when the run speed asks for them;
// [RunSpeedFast] skips gliding entirely.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [goja]: https://github.com/dop251/goja
package marionette
