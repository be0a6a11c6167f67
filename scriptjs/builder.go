package scriptjs

import (
	"github.com/dop251/goja"

	"github.com/phanxgames/marionette"
)

// btnArg resolves the optional trailing button argument of builder
// methods; omitting it means the left button.
func btnArg(opt []int) marionette.MouseButton {
	if len(opt) > 0 {
		return marionette.MouseButton(opt[0])
	}
	return marionette.MouseButtonLeft
}

// builderFor wraps a script in a JS object whose methods append one
// command each, named after the command ops.
func (h *Host) builderFor(s *marionette.Script) goja.Value {
	return h.vm.ToValue(map[string]any{
		"setRef": s.SetRef,

		"itemClick": func(ref string, button ...int) { s.ItemClick(ref, btnArg(button)) },
		"itemDoubleClick": func(ref string, button ...int) {
			s.ItemDoubleClick(ref, btnArg(button))
		},
		"itemCheck":           s.ItemCheck,
		"itemUncheck":         s.ItemUncheck,
		"itemOpen":            s.ItemOpen,
		"itemClose":           s.ItemClose,
		"itemOpenAll":         s.ItemOpenAll,
		"itemCloseAll":        s.ItemCloseAll,
		"itemInputInt":        s.ItemInputInt,
		"itemInputStr":        s.ItemInputStr,
		"itemHold":            s.ItemHold,
		"itemDragWithDelta":   s.ItemDragWithDelta,
		"itemDragAndDrop":     s.ItemDragAndDrop,
		"itemDragOverAndHold": s.ItemDragOverAndHold,

		"mouseMove":          s.MouseMove,
		"mouseMoveToPos":     s.MouseMoveToPos,
		"mouseTeleportToPos": s.MouseTeleportToPos,
		"mouseMoveToVoid":    s.MouseMoveToVoid,
		"mouseClick":         func(button ...int) { s.MouseClick(btnArg(button)) },
		"mouseClickMulti": func(button, count int) {
			s.MouseClickMulti(marionette.MouseButton(button), count)
		},
		"mouseDoubleClick": func(button ...int) { s.MouseDoubleClick(btnArg(button)) },
		"mouseDown":        func(button ...int) { s.MouseDown(btnArg(button)) },
		"mouseUp":          func(button ...int) { s.MouseUp(btnArg(button)) },
		"mouseClickOnVoid": func(button ...int) { s.MouseClickOnVoid(btnArg(button)) },
		"mouseWheelX":      s.MouseWheelX,
		"mouseWheelY":      s.MouseWheelY,

		"keyDown":  func(chord int) { s.KeyDown(marionette.KeyChord(chord)) },
		"keyUp":    func(chord int) { s.KeyUp(marionette.KeyChord(chord)) },
		"keyPress": func(chord int) { s.KeyPress(marionette.KeyChord(chord)) },
		"keyHold": func(chord, frames int) {
			s.KeyHold(marionette.KeyChord(chord), frames)
		},
		"keyChars":             s.KeyChars,
		"keyCharsAppend":       s.KeyCharsAppend,
		"keyCharsAppendEnter":  s.KeyCharsAppendEnter,
		"keyCharsReplace":      s.KeyCharsReplace,
		"keyCharsReplaceEnter": s.KeyCharsReplaceEnter,

		"scrollToItemX":  s.ScrollToItemX,
		"scrollToItemY":  s.ScrollToItemY,
		"scrollToTop":    s.ScrollToTop,
		"scrollToBottom": s.ScrollToBottom,

		"menuClick":   s.MenuClick,
		"menuCheck":   s.MenuCheck,
		"menuUncheck": s.MenuUncheck,

		"comboClick":    s.ComboClick,
		"comboClickAll": s.ComboClickAll,
		"tableClickHeader": func(ref, label string, button ...int) {
			s.TableClickHeader(ref, label, btnArg(button))
		},

		"windowClose":        s.WindowClose,
		"windowCollapse":     s.WindowCollapse,
		"windowFocus":        s.WindowFocus,
		"windowBringToFront": s.WindowBringToFront,
		"windowMove":         s.WindowMove,
		"windowResize":       s.WindowResize,

		"navMoveTo":   s.NavMoveTo,
		"navActivate": s.NavActivate,

		"sleep":             s.Sleep,
		"captureScreenshot": s.CaptureScreenshot,

		"assertItemExists":      s.AssertItemExists,
		"assertItemVisible":     s.AssertItemVisible,
		"assertItemChecked":     s.AssertItemChecked,
		"assertItemOpened":      s.AssertItemOpened,
		"assertItemReadIntEq":   s.AssertItemReadIntEq,
		"assertItemReadStrEq":   s.AssertItemReadStrEq,
		"assertItemReadFloatEq": s.AssertItemReadFloatEq,

		"waitForItemExists":  s.WaitForItemExists,
		"waitForItemVisible": s.WaitForItemVisible,
		"waitForItemChecked": s.WaitForItemChecked,
		"waitForItemOpened":  s.WaitForItemOpened,

		"yield": s.Yield,
	})
}
