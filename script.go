package marionette

import (
	"fmt"
	"strings"
)

// CmdKind tags a command with its interaction kind. The kind alone
// determines how the generic payload fields of a [Cmd] are interpreted.
//
// The set below grows as new interactions are needed; kinds are never
// repurposed or removed.
type CmdKind uint8

const (
	CmdSetRef                CmdKind = iota // A=base path for later relative refs
	CmdItemClick                            // A=ref, I=button
	CmdItemDoubleClick                      // A=ref, I=button
	CmdItemCheck                            // A=ref
	CmdItemUncheck                          // A=ref
	CmdItemOpen                             // A=ref
	CmdItemClose                            // A=ref
	CmdItemOpenAll                          // A=ref, opens the item and every openable descendant
	CmdItemCloseAll                         // A=ref, closes every openable descendant then the item
	CmdItemInputInt                         // A=ref, I=value
	CmdItemInputStr                         // A=ref, B=text
	CmdItemHold                             // A=ref, I=frames to hold the button down
	CmdItemDragWithDelta                    // A=ref, F/G=delta x/y
	CmdItemDragAndDrop                      // A=source ref, B=target ref
	CmdItemDragOverAndHold                  // A=source ref, B=target ref
	CmdMouseMove                            // A=ref, moves the cursor over the item
	CmdMouseMoveToPos                       // F/G=screen x/y
	CmdMouseTeleportToPos                   // F/G=screen x/y, no glide regardless of run speed
	CmdMouseMoveToVoid                      // moves the cursor over empty space
	CmdMouseClick                           // I=button
	CmdMouseClickMulti                      // I=button, J=click count
	CmdMouseDoubleClick                     // I=button
	CmdMouseDown                            // I=button
	CmdMouseUp                              // I=button
	CmdMouseClickOnVoid                     // I=button, clicks over empty space
	CmdMouseWheelX                          // F=horizontal scroll amount
	CmdMouseWheelY                          // F=vertical scroll amount
	CmdKeyDown                              // I=key chord
	CmdKeyUp                                // I=key chord
	CmdKeyPress                             // I=key chord
	CmdKeyHold                              // I=key chord, J=frames to hold
	CmdKeyChars                             // B=text typed into the focused item
	CmdKeyCharsAppend                       // B=text appended to the focused item
	CmdKeyCharsAppendEnter                  // B=text appended, then Enter
	CmdKeyCharsReplace                      // B=text replacing the focused item's content
	CmdKeyCharsReplaceEnter                 // B=replacement text, then Enter
	CmdScrollToItemX                        // A=ref, scrolls horizontally until visible
	CmdScrollToItemY                        // A=ref, scrolls vertically until visible
	CmdScrollToTop                          // A=window ref
	CmdScrollToBottom                       // A=window ref
	CmdMenuClick                            // A=menu path, e.g. "File/Save"
	CmdMenuCheck                            // A=menu path of a checkable entry
	CmdMenuUncheck                          // A=menu path of a checkable entry
	CmdComboClick                           // A=combo path including the option, e.g. "Mode/Fast"
	CmdComboClickAll                        // A=combo ref, selects every option in turn
	CmdTableClickHeader                     // A=table ref, B=column label, I=button
	CmdWindowClose                          // A=window ref
	CmdWindowCollapse                       // A=window ref, I=1 collapse, 0 expand
	CmdWindowFocus                          // A=window ref
	CmdWindowBringToFront                   // A=window ref
	CmdWindowMove                           // A=window ref, F/G=target x/y
	CmdWindowResize                         // A=window ref, F/G=target width/height
	CmdNavMoveTo                            // A=ref, moves keyboard focus directly
	CmdNavActivate                          // activates the focused item
	CmdSleep                                // F=seconds, converted to frames at the engine's FPS
	CmdCaptureScreenshot                    // A=label for the capture file
	CmdAssertItemExists                     // A=ref
	CmdAssertItemVisible                    // A=ref
	CmdAssertItemChecked                    // A=ref
	CmdAssertItemOpened                     // A=ref
	CmdAssertItemReadIntEq                  // A=ref, I=expected
	CmdAssertItemReadStrEq                  // A=ref, B=expected
	CmdAssertItemReadFloatEq                // A=ref, F=expected, G=epsilon (inclusive)
	CmdWaitForItemExists                    // A=ref, I=max frames
	CmdWaitForItemVisible                   // A=ref, I=max frames
	CmdWaitForItemChecked                   // A=ref, I=max frames
	CmdWaitForItemOpened                    // A=ref, I=max frames
	CmdYield                                // I=frames to advance unconditionally

	cmdKindCount // keep last
)

// Cmd is one recorded interaction. Fields beyond Kind form a fixed generic
// payload; which of them carry meaning is determined entirely by Kind, as
// documented on the CmdKind constants.
type Cmd struct {
	Kind CmdKind
	A, B string
	I, J int
	F, G float64
}

// String renders the command compactly for traces and error context.
func (c Cmd) String() string {
	var b strings.Builder
	b.WriteString(kindName(c.Kind))
	b.WriteByte('(')
	sep := ""
	if c.A != "" {
		fmt.Fprintf(&b, "%q", c.A)
		sep = ", "
	}
	if c.B != "" {
		fmt.Fprintf(&b, "%s%q", sep, c.B)
		sep = ", "
	}
	if c.I != 0 || c.J != 0 {
		fmt.Fprintf(&b, "%s%d, %d", sep, c.I, c.J)
		sep = ", "
	}
	if c.F != 0 || c.G != 0 {
		fmt.Fprintf(&b, "%s%g, %g", sep, c.F, c.G)
	}
	b.WriteByte(')')
	return b.String()
}

// liveScripts counts scripts that have been created and not yet released.
// Engine teardown releases every script it owns, so a host that shuts its
// engines down cleanly ends with the counter back where it started.
var liveScripts int

// Script is an append-only buffer of commands plus a category label, built
// up front and replayed later by the engine as the body of a registered
// test.
//
// A script is owned by its creator until passed to [Engine.RegisterScript],
// at which point ownership moves to the engine and the script is released
// during [Engine.Shutdown]. Appending after registration is undefined.
// A script that is never registered should be released with [Script.Discard].
type Script struct {
	Category string

	cmds       []Cmd
	registered bool
	released   bool
}

// NewScript creates an empty script under the given category label.
func NewScript(category string) *Script {
	liveScripts++
	return &Script{Category: category}
}

// Len returns the number of recorded commands.
func (s *Script) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cmds)
}

// Discard releases a script that was never registered. Safe to call more
// than once; a no-op for registered scripts, which the engine releases.
func (s *Script) Discard() {
	if s == nil || s.registered {
		return
	}
	s.release()
}

func (s *Script) release() {
	if s.released {
		return
	}
	s.released = true
	liveScripts--
}

// push appends one command. Every appender funnels through here; a nil
// receiver is silently ignored so builders never have to check for one.
func (s *Script) push(c Cmd) {
	if s == nil {
		return
	}
	s.cmds = append(s.cmds, c)
}

// SetRef records a change of the base path that later relative refs
// resolve against.
func (s *Script) SetRef(ref string) { s.push(Cmd{Kind: CmdSetRef, A: ref}) }

// ItemClick records a click on the item at ref with the given button.
func (s *Script) ItemClick(ref string, button MouseButton) {
	s.push(Cmd{Kind: CmdItemClick, A: ref, I: int(button)})
}

// ItemDoubleClick records a double click on the item at ref.
func (s *Script) ItemDoubleClick(ref string, button MouseButton) {
	s.push(Cmd{Kind: CmdItemDoubleClick, A: ref, I: int(button)})
}

// ItemCheck records checking the item at ref (clicks only if unchecked).
func (s *Script) ItemCheck(ref string) { s.push(Cmd{Kind: CmdItemCheck, A: ref}) }

// ItemUncheck records unchecking the item at ref.
func (s *Script) ItemUncheck(ref string) { s.push(Cmd{Kind: CmdItemUncheck, A: ref}) }

// ItemOpen records opening the item at ref (clicks only if closed).
func (s *Script) ItemOpen(ref string) { s.push(Cmd{Kind: CmdItemOpen, A: ref}) }

// ItemClose records closing the item at ref.
func (s *Script) ItemClose(ref string) { s.push(Cmd{Kind: CmdItemClose, A: ref}) }

// ItemOpenAll records opening the item at ref and all openable descendants.
func (s *Script) ItemOpenAll(ref string) { s.push(Cmd{Kind: CmdItemOpenAll, A: ref}) }

// ItemCloseAll records closing all openable descendants of ref, then ref.
func (s *Script) ItemCloseAll(ref string) { s.push(Cmd{Kind: CmdItemCloseAll, A: ref}) }

// ItemInputInt records typing an integer value into the item at ref.
func (s *Script) ItemInputInt(ref string, value int) {
	s.push(Cmd{Kind: CmdItemInputInt, A: ref, I: value})
}

// ItemInputStr records typing text into the item at ref, replacing its
// current content.
func (s *Script) ItemInputStr(ref, text string) {
	s.push(Cmd{Kind: CmdItemInputStr, A: ref, B: text})
}

// ItemHold records pressing the item at ref and holding for the given
// number of frames before releasing.
func (s *Script) ItemHold(ref string, frames int) {
	s.push(Cmd{Kind: CmdItemHold, A: ref, I: frames})
}

// ItemDragWithDelta records dragging the item at ref by (dx, dy).
func (s *Script) ItemDragWithDelta(ref string, dx, dy float64) {
	s.push(Cmd{Kind: CmdItemDragWithDelta, A: ref, F: dx, G: dy})
}

// ItemDragAndDrop records dragging the item at src onto the item at dst.
func (s *Script) ItemDragAndDrop(src, dst string) {
	s.push(Cmd{Kind: CmdItemDragAndDrop, A: src, B: dst})
}

// ItemDragOverAndHold records dragging the item at src over dst and holding
// there before releasing, for targets that react to hover while dragging.
func (s *Script) ItemDragOverAndHold(src, dst string) {
	s.push(Cmd{Kind: CmdItemDragOverAndHold, A: src, B: dst})
}

// MouseMove records moving the cursor over the item at ref.
func (s *Script) MouseMove(ref string) { s.push(Cmd{Kind: CmdMouseMove, A: ref}) }

// MouseMoveToPos records moving the cursor to a screen position.
func (s *Script) MouseMoveToPos(x, y float64) {
	s.push(Cmd{Kind: CmdMouseMoveToPos, F: x, G: y})
}

// MouseTeleportToPos records placing the cursor at a screen position
// without any glide, regardless of run speed.
func (s *Script) MouseTeleportToPos(x, y float64) {
	s.push(Cmd{Kind: CmdMouseTeleportToPos, F: x, G: y})
}

// MouseMoveToVoid records moving the cursor over empty space.
func (s *Script) MouseMoveToVoid() { s.push(Cmd{Kind: CmdMouseMoveToVoid}) }

// MouseClick records clicking the given button at the current cursor
// position.
func (s *Script) MouseClick(button MouseButton) {
	s.push(Cmd{Kind: CmdMouseClick, I: int(button)})
}

// MouseClickMulti records clicking the given button count times in a row.
func (s *Script) MouseClickMulti(button MouseButton, count int) {
	s.push(Cmd{Kind: CmdMouseClickMulti, I: int(button), J: count})
}

// MouseDoubleClick records a double click at the current cursor position.
func (s *Script) MouseDoubleClick(button MouseButton) {
	s.push(Cmd{Kind: CmdMouseDoubleClick, I: int(button)})
}

// MouseDown records pressing and holding the given button.
func (s *Script) MouseDown(button MouseButton) {
	s.push(Cmd{Kind: CmdMouseDown, I: int(button)})
}

// MouseUp records releasing the given button.
func (s *Script) MouseUp(button MouseButton) {
	s.push(Cmd{Kind: CmdMouseUp, I: int(button)})
}

// MouseClickOnVoid records moving over empty space and clicking there,
// typically to dismiss popups or clear focus.
func (s *Script) MouseClickOnVoid(button MouseButton) {
	s.push(Cmd{Kind: CmdMouseClickOnVoid, I: int(button)})
}

// MouseWheelX records horizontal wheel scrolling at the current cursor
// position.
func (s *Script) MouseWheelX(amount float64) {
	s.push(Cmd{Kind: CmdMouseWheelX, F: amount})
}

// MouseWheelY records vertical wheel scrolling at the current cursor
// position.
func (s *Script) MouseWheelY(amount float64) {
	s.push(Cmd{Kind: CmdMouseWheelY, F: amount})
}

// KeyDown records pressing (and leaving down) the keys in chord.
func (s *Script) KeyDown(chord KeyChord) { s.push(Cmd{Kind: CmdKeyDown, I: int(chord)}) }

// KeyUp records releasing the keys in chord.
func (s *Script) KeyUp(chord KeyChord) { s.push(Cmd{Kind: CmdKeyUp, I: int(chord)}) }

// KeyPress records pressing and releasing the keys in chord.
func (s *Script) KeyPress(chord KeyChord) { s.push(Cmd{Kind: CmdKeyPress, I: int(chord)}) }

// KeyHold records holding the keys in chord down for the given number of
// frames.
func (s *Script) KeyHold(chord KeyChord, frames int) {
	s.push(Cmd{Kind: CmdKeyHold, I: int(chord), J: frames})
}

// KeyChars records typing text into whatever currently has focus.
func (s *Script) KeyChars(text string) { s.push(Cmd{Kind: CmdKeyChars, B: text}) }

// KeyCharsAppend records typing text after the focused item's current
// content.
func (s *Script) KeyCharsAppend(text string) { s.push(Cmd{Kind: CmdKeyCharsAppend, B: text}) }

// KeyCharsAppendEnter records appending text and pressing Enter.
func (s *Script) KeyCharsAppendEnter(text string) {
	s.push(Cmd{Kind: CmdKeyCharsAppendEnter, B: text})
}

// KeyCharsReplace records replacing the focused item's content with text.
func (s *Script) KeyCharsReplace(text string) { s.push(Cmd{Kind: CmdKeyCharsReplace, B: text}) }

// KeyCharsReplaceEnter records replacing the focused item's content with
// text and pressing Enter.
func (s *Script) KeyCharsReplaceEnter(text string) {
	s.push(Cmd{Kind: CmdKeyCharsReplaceEnter, B: text})
}

// ScrollToItemX records scrolling horizontally until the item at ref is
// visible.
func (s *Script) ScrollToItemX(ref string) { s.push(Cmd{Kind: CmdScrollToItemX, A: ref}) }

// ScrollToItemY records scrolling vertically until the item at ref is
// visible.
func (s *Script) ScrollToItemY(ref string) { s.push(Cmd{Kind: CmdScrollToItemY, A: ref}) }

// ScrollToTop records scrolling the window at ref back to the top.
func (s *Script) ScrollToTop(ref string) { s.push(Cmd{Kind: CmdScrollToTop, A: ref}) }

// ScrollToBottom records scrolling the window at ref to the bottom.
func (s *Script) ScrollToBottom(ref string) { s.push(Cmd{Kind: CmdScrollToBottom, A: ref}) }

// MenuClick records walking a menu path segment by segment and clicking the
// final entry, e.g. "File/Save".
func (s *Script) MenuClick(path string) { s.push(Cmd{Kind: CmdMenuClick, A: path}) }

// MenuCheck records walking a menu path and checking its final entry.
func (s *Script) MenuCheck(path string) { s.push(Cmd{Kind: CmdMenuCheck, A: path}) }

// MenuUncheck records walking a menu path and unchecking its final entry.
func (s *Script) MenuUncheck(path string) { s.push(Cmd{Kind: CmdMenuUncheck, A: path}) }

// ComboClick records opening a combo and selecting the option named by the
// last path segment, e.g. "Mode/Fast".
func (s *Script) ComboClick(path string) { s.push(Cmd{Kind: CmdComboClick, A: path}) }

// ComboClickAll records selecting every option of the combo at ref, one
// after another.
func (s *Script) ComboClickAll(ref string) { s.push(Cmd{Kind: CmdComboClickAll, A: ref}) }

// TableClickHeader records clicking the header of the named column in the
// table at ref.
func (s *Script) TableClickHeader(ref, label string, button MouseButton) {
	s.push(Cmd{Kind: CmdTableClickHeader, A: ref, B: label, I: int(button)})
}

// WindowClose records closing the window at ref.
func (s *Script) WindowClose(ref string) { s.push(Cmd{Kind: CmdWindowClose, A: ref}) }

// WindowCollapse records collapsing (true) or expanding (false) the window
// at ref.
func (s *Script) WindowCollapse(ref string, collapsed bool) {
	i := 0
	if collapsed {
		i = 1
	}
	s.push(Cmd{Kind: CmdWindowCollapse, A: ref, I: i})
}

// WindowFocus records giving the window at ref input focus.
func (s *Script) WindowFocus(ref string) { s.push(Cmd{Kind: CmdWindowFocus, A: ref}) }

// WindowBringToFront records raising the window at ref above its siblings.
func (s *Script) WindowBringToFront(ref string) {
	s.push(Cmd{Kind: CmdWindowBringToFront, A: ref})
}

// WindowMove records dragging the window at ref to a screen position.
func (s *Script) WindowMove(ref string, x, y float64) {
	s.push(Cmd{Kind: CmdWindowMove, A: ref, F: x, G: y})
}

// WindowResize records resizing the window at ref to the given size.
func (s *Script) WindowResize(ref string, w, h float64) {
	s.push(Cmd{Kind: CmdWindowResize, A: ref, F: w, G: h})
}

// NavMoveTo records moving keyboard focus directly to the item at ref.
func (s *Script) NavMoveTo(ref string) { s.push(Cmd{Kind: CmdNavMoveTo, A: ref}) }

// NavActivate records activating whatever currently has keyboard focus.
func (s *Script) NavActivate() { s.push(Cmd{Kind: CmdNavActivate}) }

// Sleep records pausing for the given number of seconds, converted to
// frames at the engine's configured FPS.
func (s *Script) Sleep(seconds float64) { s.push(Cmd{Kind: CmdSleep, F: seconds}) }

// CaptureScreenshot records requesting a labeled screen capture.
func (s *Script) CaptureScreenshot(label string) {
	s.push(Cmd{Kind: CmdCaptureScreenshot, A: label})
}

// AssertItemExists records asserting that the item at ref resolves.
func (s *Script) AssertItemExists(ref string) { s.push(Cmd{Kind: CmdAssertItemExists, A: ref}) }

// AssertItemVisible records asserting that the item at ref resolves and is
// visible on screen.
func (s *Script) AssertItemVisible(ref string) { s.push(Cmd{Kind: CmdAssertItemVisible, A: ref}) }

// AssertItemChecked records asserting that the item at ref is checked.
func (s *Script) AssertItemChecked(ref string) { s.push(Cmd{Kind: CmdAssertItemChecked, A: ref}) }

// AssertItemOpened records asserting that the item at ref is opened.
func (s *Script) AssertItemOpened(ref string) { s.push(Cmd{Kind: CmdAssertItemOpened, A: ref}) }

// AssertItemReadIntEq records asserting that the item's integer value
// equals expected.
func (s *Script) AssertItemReadIntEq(ref string, expected int) {
	s.push(Cmd{Kind: CmdAssertItemReadIntEq, A: ref, I: expected})
}

// AssertItemReadStrEq records asserting that the item's text equals
// expected.
func (s *Script) AssertItemReadStrEq(ref, expected string) {
	s.push(Cmd{Kind: CmdAssertItemReadStrEq, A: ref, B: expected})
}

// AssertItemReadFloatEq records asserting that the item's float value is
// within epsilon of expected. The comparison is inclusive:
// |got-expected| <= |epsilon| passes.
func (s *Script) AssertItemReadFloatEq(ref string, expected, epsilon float64) {
	s.push(Cmd{Kind: CmdAssertItemReadFloatEq, A: ref, F: expected, G: epsilon})
}

// WaitForItemExists records polling until the item at ref resolves, up to
// maxFrames frame advances. Budgets below 1 behave as 1.
func (s *Script) WaitForItemExists(ref string, maxFrames int) {
	s.push(Cmd{Kind: CmdWaitForItemExists, A: ref, I: maxFrames})
}

// WaitForItemVisible records polling until the item at ref is visible.
func (s *Script) WaitForItemVisible(ref string, maxFrames int) {
	s.push(Cmd{Kind: CmdWaitForItemVisible, A: ref, I: maxFrames})
}

// WaitForItemChecked records polling until the item at ref is checked.
func (s *Script) WaitForItemChecked(ref string, maxFrames int) {
	s.push(Cmd{Kind: CmdWaitForItemChecked, A: ref, I: maxFrames})
}

// WaitForItemOpened records polling until the item at ref is opened.
func (s *Script) WaitForItemOpened(ref string, maxFrames int) {
	s.push(Cmd{Kind: CmdWaitForItemOpened, A: ref, I: maxFrames})
}

// Yield records advancing the frame loop by the given number of frames with
// no condition attached, to let animations and transitions settle.
func (s *Script) Yield(frames int) { s.push(Cmd{Kind: CmdYield, I: frames}) }
