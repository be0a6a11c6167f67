package marionette

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Interaction pacing constants, in frames.
const (
	dragMinFrames   = 4   // shortest drag glide, used at fast speed
	dragHoldFrames  = 20  // hover time for drag-over-and-hold
	scrollMaxSteps  = 64  // wheel attempts before scroll-to-item gives up
	scrollWheelStep = 3   // wheel amount per scroll-to-item attempt
	scrollWheelPage = 1e4 // wheel amount for scroll-to-top/bottom, clamped by the surface
	inputDrainMax   = 600 // frames to wait for injected input to be consumed
)

// Cursor position used for move-to-void. Surfaces treat negative
// coordinates as empty space.
const voidX, voidY = -1, -1

// Context is the execution context handed to a running test. It exposes the
// interaction primitives tests are written against: item queries, pointer
// and keyboard synthesis, frame control, and the structured failure sink.
//
// A Context is valid only for the duration of one run and only on the
// goroutine the engine started for it. Failures are reported with [Context.Errorf];
// once failed, every primitive becomes a no-op for the rest of the run.
type Context struct {
	eng  *Engine
	sur  Surface
	test *Test
	run  *run
	log  *slog.Logger

	refBase string
	cursor  Vec2
	failed  bool
	failMsg string
}

// Failed reports whether this run has already flagged an error.
func (c *Context) Failed() bool { return c.failed }

// FailureMessage returns the first failure message of the run, or "".
func (c *Context) FailureMessage() string { return c.failMsg }

// Errorf flags the run as failed and logs the message through the engine's
// error sink. Only the first message is retained as the run's failure
// reason; later calls still log. Execution continues until the caller
// checks [Context.Failed]; the engine's command interpreter does so before
// every command.
func (c *Context) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !c.failed {
		c.failed = true
		c.failMsg = msg
	}
	c.log.Error(msg)
}

// Logf writes an informational line to the engine log, tagged with the
// running test.
func (c *Context) Logf(format string, args ...any) {
	c.log.Info(fmt.Sprintf(format, args...))
}

// Frame returns the engine's current frame counter.
func (c *Context) Frame() int { return c.eng.frame }

// Yield suspends the run for the given number of frames, returning control
// to the host loop once per frame. Yield(0) is a no-op.
func (c *Context) Yield(frames int) {
	for i := 0; i < frames; i++ {
		c.yieldFrame()
	}
}

func (c *Context) yieldFrame() {
	r := c.run
	select {
	case r.yielded <- struct{}{}:
	case <-r.abort:
		panic(errAborted)
	}
	select {
	case <-r.resume:
	case <-r.abort:
		panic(errAborted)
	}
}

// Sleep suspends for the given number of seconds, converted to frames at
// the engine's configured FPS. Always at least one frame.
func (c *Context) Sleep(seconds float64) {
	frames := int(seconds*float64(c.eng.fps()) + 0.5)
	if frames < 1 {
		frames = 1
	}
	c.Yield(frames)
}

// SetRef sets the base path that later relative refs resolve against.
// Leading and trailing slashes are ignored; the base itself is always
// interpreted as absolute.
func (c *Context) SetRef(ref string) {
	c.refBase = strings.Trim(ref, "/")
}

// resolvePath canonicalizes a ref: a leading slash marks it absolute,
// anything else resolves relative to the current base.
func (c *Context) resolvePath(ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.Trim(ref, "/")
	}
	ref = strings.TrimSuffix(ref, "/")
	if ref == "" {
		return c.refBase
	}
	if c.refBase == "" {
		return ref
	}
	return c.refBase + "/" + ref
}

// ItemExists reports whether the item at ref currently resolves.
func (c *Context) ItemExists(ref string) bool {
	_, ok := c.sur.Resolve(c.resolvePath(ref))
	return ok
}

// ItemInfo resolves the item at ref, reporting ok=false if it does not
// currently exist.
func (c *Context) ItemInfo(ref string) (ItemInfo, bool) {
	return c.sur.Resolve(c.resolvePath(ref))
}

// ItemReadInt reads the item's integer value. ok is false when the item
// does not resolve.
func (c *Context) ItemReadInt(ref string) (int, bool) {
	return c.sur.ReadInt(c.resolvePath(ref))
}

// ItemReadStr reads the item's text value.
func (c *Context) ItemReadStr(ref string) (string, bool) {
	return c.sur.ReadStr(c.resolvePath(ref))
}

// ItemReadFloat reads the item's float value.
func (c *Context) ItemReadFloat(ref string) (float64, bool) {
	return c.sur.ReadFloat(c.resolvePath(ref))
}

// locate resolves ref and flags a failure when the item is missing.
func (c *Context) locate(ref string) (ItemInfo, bool) {
	path := c.resolvePath(ref)
	info, ok := c.sur.Resolve(path)
	if !ok {
		c.Errorf("unable to locate item %q", path)
	}
	return info, ok
}

// inject queues one event on the surface.
func (c *Context) inject(ev Event) {
	c.sur.Inject(ev)
}

// flushInput yields until the surface has consumed every injected event.
// Surfaces apply one event per frame, so this normally takes exactly as
// many frames as there are pending events.
func (c *Context) flushInput() {
	for i := 0; i < inputDrainMax; i++ {
		if c.sur.Pending() == 0 {
			return
		}
		c.Yield(1)
		if c.failed {
			return
		}
	}
	c.Errorf("injected input not consumed after %d frames", inputDrainMax)
}

// MouseMoveToPos moves the cursor to a screen position, gliding according
// to the engine's run speed.
func (c *Context) MouseMoveToPos(x, y float64) {
	if c.failed {
		return
	}
	c.moveCursorTo(x, y)
}

// MouseTeleportToPos places the cursor at a screen position in a single
// frame, regardless of run speed.
func (c *Context) MouseTeleportToPos(x, y float64) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventPointerMove, X: x, Y: y})
	c.flushInput()
	c.cursor = Vec2{x, y}
}

// MouseMoveToVoid moves the cursor over empty space.
func (c *Context) MouseMoveToVoid() {
	c.MouseTeleportToPos(voidX, voidY)
}

// MouseMove moves the cursor over the center of the item at ref.
func (c *Context) MouseMove(ref string) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	center := info.Rect.Center()
	c.moveCursorTo(center.X, center.Y)
}

func (c *Context) moveCursorTo(x, y float64) {
	frames, fn, glide := glideFor(c.eng.speed())
	if !glide {
		c.inject(Event{Kind: EventPointerMove, X: x, Y: y})
		c.flushInput()
		c.cursor = Vec2{x, y}
		return
	}
	g := newPointerGlide(c.cursor.X, c.cursor.Y, x, y, frames, fn)
	for !g.Done && !c.failed {
		gx, gy := g.Update()
		c.inject(Event{Kind: EventPointerMove, X: gx, Y: gy})
		c.Yield(1)
	}
	c.flushInput()
	c.cursor = Vec2{x, y}
}

// MouseDown presses and holds the given button at the current cursor
// position.
func (c *Context) MouseDown(button MouseButton) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventPointerDown, X: c.cursor.X, Y: c.cursor.Y, Button: button})
	c.flushInput()
}

// MouseUp releases the given button at the current cursor position.
func (c *Context) MouseUp(button MouseButton) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventPointerUp, X: c.cursor.X, Y: c.cursor.Y, Button: button})
	c.flushInput()
}

// MouseClick presses and releases the given button at the current cursor
// position.
func (c *Context) MouseClick(button MouseButton) {
	c.MouseDown(button)
	c.MouseUp(button)
}

// MouseClickMulti clicks the given button count times in a row.
func (c *Context) MouseClickMulti(button MouseButton, count int) {
	for i := 0; i < count && !c.failed; i++ {
		c.MouseClick(button)
	}
}

// MouseDoubleClick clicks the given button twice.
func (c *Context) MouseDoubleClick(button MouseButton) {
	c.MouseClickMulti(button, 2)
}

// MouseClickOnVoid moves over empty space and clicks there, dismissing
// popups or clearing focus.
func (c *Context) MouseClickOnVoid(button MouseButton) {
	c.MouseMoveToVoid()
	c.MouseClick(button)
}

// MouseWheelX scrolls horizontally at the current cursor position.
func (c *Context) MouseWheelX(amount float64) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventWheel, X: c.cursor.X, Y: c.cursor.Y, WheelX: amount})
	c.flushInput()
}

// MouseWheelY scrolls vertically at the current cursor position.
func (c *Context) MouseWheelY(amount float64) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventWheel, X: c.cursor.X, Y: c.cursor.Y, WheelY: amount})
	c.flushInput()
}

// ItemClick moves over the item at ref and clicks it with the given button.
func (c *Context) ItemClick(ref string, button MouseButton) {
	c.MouseMove(ref)
	if c.failed {
		return
	}
	c.MouseClick(button)
}

// ItemDoubleClick moves over the item at ref and double clicks it.
func (c *Context) ItemDoubleClick(ref string, button MouseButton) {
	c.MouseMove(ref)
	if c.failed {
		return
	}
	c.MouseDoubleClick(button)
}

// ItemCheck ensures the checkable item at ref ends up checked, clicking it
// only when needed, and verifies the result.
func (c *Context) ItemCheck(ref string) {
	c.setChecked(ref, true)
}

// ItemUncheck ensures the checkable item at ref ends up unchecked.
func (c *Context) ItemUncheck(ref string) {
	c.setChecked(ref, false)
}

func (c *Context) setChecked(ref string, want bool) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	if info.Flags&ItemStatusCheckable == 0 {
		c.Errorf("item %q is not checkable", info.Path)
		return
	}
	if checked := info.Flags&ItemStatusChecked != 0; checked == want {
		return
	}
	path := info.Path
	c.ItemClick(ref, MouseButtonLeft)
	if c.failed {
		return
	}
	info, ok = c.sur.Resolve(path)
	if checked := ok && info.Flags&ItemStatusChecked != 0; !ok || checked != want {
		if want {
			c.Errorf("unable to check item %q", path)
		} else {
			c.Errorf("unable to uncheck item %q", path)
		}
	}
}

// ItemOpen ensures the openable item at ref ends up opened.
func (c *Context) ItemOpen(ref string) {
	c.setOpened(ref, true)
}

// ItemClose ensures the openable item at ref ends up closed.
func (c *Context) ItemClose(ref string) {
	c.setOpened(ref, false)
}

func (c *Context) setOpened(ref string, want bool) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	if info.Flags&ItemStatusOpenable == 0 {
		c.Errorf("item %q is not openable", info.Path)
		return
	}
	if opened := info.Flags&ItemStatusOpened != 0; opened == want {
		return
	}
	path := info.Path
	c.ItemClick(ref, MouseButtonLeft)
	if c.failed {
		return
	}
	info, ok = c.sur.Resolve(path)
	if opened := ok && info.Flags&ItemStatusOpened != 0; !ok || opened != want {
		if want {
			c.Errorf("unable to open item %q", path)
		} else {
			c.Errorf("unable to close item %q", path)
		}
	}
}

// ItemOpenAll opens the item at ref and every openable descendant,
// depth first.
func (c *Context) ItemOpenAll(ref string) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	c.openAll(info)
}

func (c *Context) openAll(info ItemInfo) {
	if c.failed {
		return
	}
	if info.Flags&ItemStatusOpenable != 0 && info.Flags&ItemStatusOpened == 0 {
		c.setOpened("/"+info.Path, true)
		if c.failed {
			return
		}
	}
	for _, child := range c.sur.Children(info.Path) {
		c.openAll(child)
	}
}

// ItemCloseAll closes every openable descendant of ref, deepest first,
// then ref itself.
func (c *Context) ItemCloseAll(ref string) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	c.closeAll(info)
}

func (c *Context) closeAll(info ItemInfo) {
	if c.failed || info.Flags&ItemStatusOpened == 0 {
		return
	}
	for _, child := range c.sur.Children(info.Path) {
		c.closeAll(child)
	}
	c.setOpened("/"+info.Path, false)
}

// ItemInputInt clicks the item at ref and types value into it, replacing
// its current content.
func (c *Context) ItemInputInt(ref string, value int) {
	c.ItemInputStr(ref, strconv.Itoa(value))
}

// ItemInputStr clicks the item at ref and types text into it, replacing
// its current content and committing with Enter.
func (c *Context) ItemInputStr(ref, text string) {
	c.ItemClick(ref, MouseButtonLeft)
	c.KeyCharsReplaceEnter(text)
}

// ItemHold presses the item at ref, holds the button for the given number
// of frames, then releases.
func (c *Context) ItemHold(ref string, frames int) {
	c.MouseMove(ref)
	c.MouseDown(MouseButtonLeft)
	if c.failed {
		return
	}
	c.Yield(frames)
	c.MouseUp(MouseButtonLeft)
}

// ItemDragWithDelta drags the item at ref by (dx, dy).
func (c *Context) ItemDragWithDelta(ref string, dx, dy float64) {
	c.MouseMove(ref)
	c.MouseDown(MouseButtonLeft)
	if c.failed {
		return
	}
	c.dragTo(c.cursor.X+dx, c.cursor.Y+dy)
	c.MouseUp(MouseButtonLeft)
}

// ItemDragAndDrop drags the item at src onto the item at dst.
func (c *Context) ItemDragAndDrop(src, dst string) {
	c.MouseMove(src)
	if c.failed {
		return
	}
	target, ok := c.locate(dst)
	if !ok {
		return
	}
	c.MouseDown(MouseButtonLeft)
	center := target.Rect.Center()
	c.dragTo(center.X, center.Y)
	c.MouseUp(MouseButtonLeft)
}

// ItemDragOverAndHold drags the item at src over dst, hovers there for a
// few frames so hover-sensitive targets can react, then releases.
func (c *Context) ItemDragOverAndHold(src, dst string) {
	c.MouseMove(src)
	if c.failed {
		return
	}
	target, ok := c.locate(dst)
	if !ok {
		return
	}
	c.MouseDown(MouseButtonLeft)
	center := target.Rect.Center()
	c.dragTo(center.X, center.Y)
	if c.failed {
		return
	}
	c.Yield(dragHoldFrames)
	c.MouseUp(MouseButtonLeft)
}

// dragTo glides the held cursor to (x, y), always in multiple steps so the
// surface sees a continuous drag.
func (c *Context) dragTo(x, y float64) {
	frames, fn, glide := glideFor(c.eng.speed())
	if !glide {
		frames, fn = dragMinFrames, ease.Linear
	}
	g := newPointerGlide(c.cursor.X, c.cursor.Y, x, y, frames, fn)
	for !g.Done && !c.failed {
		gx, gy := g.Update()
		c.inject(Event{Kind: EventPointerMove, X: gx, Y: gy})
		c.Yield(1)
	}
	c.flushInput()
	c.cursor = Vec2{x, y}
}

// KeyDown presses and leaves down the keys in chord.
func (c *Context) KeyDown(chord KeyChord) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventKeyDown, Key: chord.Key(), Mods: chord.Mods()})
	c.flushInput()
}

// KeyUp releases the keys in chord.
func (c *Context) KeyUp(chord KeyChord) {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventKeyUp, Key: chord.Key(), Mods: chord.Mods()})
	c.flushInput()
}

// KeyPress presses and releases the keys in chord.
func (c *Context) KeyPress(chord KeyChord) {
	c.KeyDown(chord)
	c.KeyUp(chord)
}

// KeyHold keeps the keys in chord down for the given number of frames.
func (c *Context) KeyHold(chord KeyChord, frames int) {
	c.KeyDown(chord)
	if c.failed {
		return
	}
	c.Yield(frames)
	c.KeyUp(chord)
}

// KeyChars types text into whatever currently has focus, one character per
// frame.
func (c *Context) KeyChars(text string) {
	if c.failed {
		return
	}
	for _, r := range text {
		c.inject(Event{Kind: EventChar, Ch: r})
	}
	c.flushInput()
}

// KeyCharsAppend types text after the focused item's current content.
func (c *Context) KeyCharsAppend(text string) {
	c.KeyChars(text)
}

// KeyCharsAppendEnter appends text and presses Enter.
func (c *Context) KeyCharsAppendEnter(text string) {
	c.KeyChars(text)
	c.KeyPress(Chord(KeyEnter, 0))
}

// KeyCharsReplace selects the focused item's content and types text over
// it.
func (c *Context) KeyCharsReplace(text string) {
	c.KeyPress(Chord(KeyA, ModCtrl))
	c.KeyChars(text)
}

// KeyCharsReplaceEnter replaces the focused item's content with text and
// presses Enter.
func (c *Context) KeyCharsReplaceEnter(text string) {
	c.KeyCharsReplace(text)
	c.KeyPress(Chord(KeyEnter, 0))
}

// ScrollToItemX scrolls horizontally until the item at ref is visible.
func (c *Context) ScrollToItemX(ref string) {
	c.scrollToItem(ref, true)
}

// ScrollToItemY scrolls vertically until the item at ref is visible.
func (c *Context) ScrollToItemY(ref string) {
	c.scrollToItem(ref, false)
}

func (c *Context) scrollToItem(ref string, horizontal bool) {
	if c.failed {
		return
	}
	info, ok := c.locate(ref)
	if !ok {
		return
	}
	path := info.Path
	winPath := rootSegment(path)
	win, ok := c.sur.Resolve(winPath)
	if !ok {
		c.Errorf("unable to locate window %q for item %q", winPath, path)
		return
	}
	c.moveCursorTo(win.Rect.Center().X, win.Rect.Center().Y)
	for i := 0; i < scrollMaxSteps && !c.failed; i++ {
		info, ok = c.sur.Resolve(path)
		if !ok {
			c.Errorf("item %q disappeared while scrolling", path)
			return
		}
		if info.Flags&ItemStatusVisible != 0 {
			return
		}
		win, _ = c.sur.Resolve(winPath)
		ev := Event{Kind: EventWheel, X: c.cursor.X, Y: c.cursor.Y}
		if horizontal {
			ev.WheelX = scrollDirection(info.Rect.Center().X, win.Rect.Center().X)
		} else {
			ev.WheelY = scrollDirection(info.Rect.Center().Y, win.Rect.Center().Y)
		}
		c.inject(ev)
		c.flushInput()
	}
	if !c.failed {
		c.Errorf("unable to scroll item %q into view", info.Path)
	}
}

// scrollDirection returns the wheel amount that moves content so an item at
// itemPos approaches winPos. Wheel values are positive toward the start of
// the content.
func scrollDirection(itemPos, winPos float64) float64 {
	if itemPos > winPos {
		return -scrollWheelStep
	}
	return scrollWheelStep
}

// ScrollToTop scrolls the window at ref back to the top.
func (c *Context) ScrollToTop(ref string) {
	c.scrollToEdge(ref, scrollWheelPage)
}

// ScrollToBottom scrolls the window at ref to the bottom.
func (c *Context) ScrollToBottom(ref string) {
	c.scrollToEdge(ref, -scrollWheelPage)
}

func (c *Context) scrollToEdge(ref string, amount float64) {
	if c.failed {
		return
	}
	win, ok := c.locate(ref)
	if !ok {
		return
	}
	c.moveCursorTo(win.Rect.Center().X, win.Rect.Center().Y)
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventWheel, X: c.cursor.X, Y: c.cursor.Y, WheelY: amount})
	c.flushInput()
}

// MenuClick walks a slash-separated menu path, opening each level, and
// clicks the final entry.
func (c *Context) MenuClick(path string) {
	c.menuWalk(path, func(ref string) { c.ItemClick(ref, MouseButtonLeft) })
}

// MenuCheck walks a menu path and checks its final entry.
func (c *Context) MenuCheck(path string) {
	c.menuWalk(path, c.ItemCheck)
}

// MenuUncheck walks a menu path and unchecks its final entry.
func (c *Context) MenuUncheck(path string) {
	c.menuWalk(path, c.ItemUncheck)
}

// menuWalk opens every intermediate segment of path and applies final to
// the last one. For absolute paths the first segment is the window and is
// not opened.
func (c *Context) menuWalk(path string, final func(ref string)) {
	if c.failed {
		return
	}
	canonical := c.resolvePath(path)
	segs := strings.Split(canonical, "/")
	start := 0
	if strings.HasPrefix(path, "/") || c.refBase == "" {
		start = 1
	} else {
		start = len(strings.Split(c.refBase, "/"))
	}
	accum := strings.Join(segs[:start], "/")
	for i := start; i < len(segs) && !c.failed; i++ {
		accum += "/" + segs[i]
		if i == len(segs)-1 {
			final("/" + accum)
			return
		}
		info, ok := c.sur.Resolve(accum)
		if !ok {
			c.Errorf("unable to locate menu %q", accum)
			return
		}
		if info.Flags&ItemStatusOpened == 0 {
			c.ItemClick("/"+accum, MouseButtonLeft)
		}
	}
}

// ComboClick opens the combo named by all but the last path segment and
// selects the option named by the last one.
func (c *Context) ComboClick(path string) {
	if c.failed {
		return
	}
	canonical := c.resolvePath(path)
	idx := strings.LastIndex(canonical, "/")
	if idx < 0 {
		c.Errorf("combo path %q has no option segment", canonical)
		return
	}
	comboPath, option := canonical[:idx], canonical[idx+1:]
	c.comboSelect(comboPath, comboPath+"/"+option)
}

// ComboClickAll selects every option of the combo at ref, one after
// another, in layout order.
func (c *Context) ComboClickAll(ref string) {
	if c.failed {
		return
	}
	combo, ok := c.locate(ref)
	if !ok {
		return
	}
	// Snapshot option paths first; selections close the combo as they go.
	var options []string
	c.setOpened("/"+combo.Path, true)
	for _, child := range c.sur.Children(combo.Path) {
		options = append(options, child.Path)
	}
	c.setOpened("/"+combo.Path, false)
	for _, opt := range options {
		if c.failed {
			return
		}
		c.comboSelect(combo.Path, opt)
	}
}

func (c *Context) comboSelect(comboPath, optionPath string) {
	combo, ok := c.sur.Resolve(comboPath)
	if !ok {
		c.Errorf("unable to locate item %q", comboPath)
		return
	}
	if combo.Flags&ItemStatusOpened == 0 {
		c.ItemClick("/"+comboPath, MouseButtonLeft)
		if c.failed {
			return
		}
	}
	c.ItemClick("/"+optionPath, MouseButtonLeft)
}

// TableClickHeader clicks the header of the named column in the table at
// ref.
func (c *Context) TableClickHeader(ref, label string, button MouseButton) {
	if c.failed {
		return
	}
	c.ItemClick(strings.TrimSuffix(ref, "/")+"/"+label, button)
}

// WindowClose closes the window at ref through its close box.
func (c *Context) WindowClose(ref string) {
	c.ItemClick(strings.TrimSuffix(ref, "/")+"/#CLOSE", MouseButtonLeft)
}

// WindowCollapse collapses or expands the window at ref. A collapsed
// window shows only its title bar and its content no longer resolves.
func (c *Context) WindowCollapse(ref string, collapsed bool) {
	if c.failed {
		return
	}
	win, ok := c.locate(ref)
	if !ok {
		return
	}
	cur := win.Flags&ItemStatusOpened == 0
	if cur == collapsed {
		return
	}
	c.ItemClick("/"+win.Path+"/#COLLAPSE", MouseButtonLeft)
}

// WindowFocus gives the window at ref input focus by clicking its title
// bar.
func (c *Context) WindowFocus(ref string) {
	c.ItemClick(strings.TrimSuffix(ref, "/")+"/#TITLE", MouseButtonLeft)
}

// WindowBringToFront raises the window at ref above its siblings.
// Focusing a window raises it, so this is an alias for WindowFocus.
func (c *Context) WindowBringToFront(ref string) {
	c.WindowFocus(ref)
}

// WindowMove drags the window at ref by its title bar to the given screen
// position.
func (c *Context) WindowMove(ref string, x, y float64) {
	if c.failed {
		return
	}
	win, ok := c.locate(ref)
	if !ok {
		return
	}
	title, ok := c.sur.Resolve(win.Path + "/#TITLE")
	if !ok {
		c.Errorf("window %q has no title bar", win.Path)
		return
	}
	center := title.Rect.Center()
	c.moveCursorTo(center.X, center.Y)
	c.MouseDown(MouseButtonLeft)
	if c.failed {
		return
	}
	c.dragTo(center.X+(x-win.Rect.X), center.Y+(y-win.Rect.Y))
	c.MouseUp(MouseButtonLeft)
}

// WindowResize drags the window's resize grip until the window reaches the
// given size.
func (c *Context) WindowResize(ref string, w, h float64) {
	if c.failed {
		return
	}
	win, ok := c.locate(ref)
	if !ok {
		return
	}
	grip, ok := c.sur.Resolve(win.Path + "/#RESIZE")
	if !ok {
		c.Errorf("window %q has no resize grip", win.Path)
		return
	}
	center := grip.Rect.Center()
	c.moveCursorTo(center.X, center.Y)
	c.MouseDown(MouseButtonLeft)
	if c.failed {
		return
	}
	c.dragTo(center.X+(w-win.Rect.Width), center.Y+(h-win.Rect.Height))
	c.MouseUp(MouseButtonLeft)
}

// NavMoveTo moves keyboard focus directly to the item at ref.
func (c *Context) NavMoveTo(ref string) {
	if c.failed {
		return
	}
	path := c.resolvePath(ref)
	if _, ok := c.sur.Resolve(path); !ok {
		c.Errorf("unable to locate item %q", path)
		return
	}
	c.inject(Event{Kind: EventNavFocus, Path: path})
	c.flushInput()
}

// NavActivate activates whatever currently has keyboard focus.
func (c *Context) NavActivate() {
	if c.failed {
		return
	}
	c.inject(Event{Kind: EventNavActivate})
	c.flushInput()
}

// CaptureScreenshot queues a labeled screen capture with the engine. The
// capture is written by the harness at the end of the current frame's
// draw; headless runs drop it with a warning at shutdown.
func (c *Context) CaptureScreenshot(label string) {
	if c.failed {
		return
	}
	c.eng.requestCapture(label)
}

// rootSegment returns the first segment of a canonical path.
func rootSegment(path string) string {
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return path
}
