// Package simui is a small simulated retained-mode UI for exercising
// marionette.
//
// It implements [marionette.Surface] over a tree of [Item] nodes: windows
// with title bars, buttons, checkboxes, tree nodes, text and integer
// inputs, sliders, menus, combos, and tables. Layout is a fixed-height
// vertical stack per container, scrolled by wheel events, with menu
// dropdowns and combo popups drawn on top.
//
// The app is deterministic and headless: the host steps it once per frame
// with [App.Step], which applies at most one injected input event, then
// pumps the engine. marionette's own tests and examples drive it; it can
// also back a windowed harness by drawing the tree however the host
// likes.
//
//	app := simui.New(800, 600)
//	win := app.Window("Main", 40, 40, 320, 240)
//	win.Label("Status", "ready")
//	win.Button("OK")
package simui

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/phanxgames/marionette"
)

// Layout metrics, in pixels.
const (
	titleH     = 24  // window title bar height
	rowH       = 24  // height of one stacked item row
	rowW       = 160 // default item row width
	colW       = 80  // table header cell width
	pad        = 8   // window content padding
	indent     = 16  // child indent for open tree nodes and popups
	gripSize   = 12  // resize grip square
	wheelScale = 8   // pixels scrolled per wheel unit
	minWinW    = 64  // smallest width a resize drag can reach
	minWinH    = 48  // smallest height a resize drag can reach
)

// App is the root of a simulated UI. It owns the window list in z-order,
// the injected event queue, and the transient input state (pointer,
// focus, in-progress edit).
type App struct {
	W, H float64

	// LastDrop records the most recent completed drag-and-drop: a press
	// on one item released over a different one.
	LastDrop struct{ Src, Dst string }

	// LastKey records the chord of the most recent key-down event.
	LastKey marionette.KeyChord

	windows []*Item // back to front
	events  []marionette.Event
	frame   int
	dirty   bool

	pointer   marionette.Vec2
	buttons   [3]bool
	pressItem *Item
	focus     *Item
	editing   bool
	editBuf   string
	selectAll bool
}

// New creates an empty app with the given screen size.
func New(w, h float64) *App {
	return &App{W: w, H: h, dirty: true}
}

// Window adds a window at the given position and size and returns it. New
// windows open in front. The window gets its chrome children (#TITLE,
// #COLLAPSE, #CLOSE, #RESIZE) automatically.
func (a *App) Window(name string, x, y, w, h float64) *Item {
	win := &Item{Name: name, Kind: KindWindow, X: x, Y: y, W: w, H: h, app: a}
	for _, s := range []string{"#TITLE", "#COLLAPSE", "#CLOSE", "#RESIZE"} {
		win.add(&Item{Name: s, Kind: KindSpecial})
	}
	a.windows = append(a.windows, win)
	a.dirty = true
	return win
}

// Item returns the item at the given path, or nil. The lookup is
// structural: it finds items inside closed containers and closed windows
// too.
func (a *App) Item(path string) *Item {
	return a.lookup(path)
}

// Frame returns the number of Step calls so far.
func (a *App) Frame() int { return a.frame }

// Windows returns the app's windows in z-order, back to front, closed
// ones included. Hosts drawing the app should skip windows that no
// longer resolve.
func (a *App) Windows() []*Item {
	return append([]*Item(nil), a.windows...)
}

// Pointer returns the position of the last applied pointer event, for
// hosts that draw a cursor.
func (a *App) Pointer() marionette.Vec2 { return a.pointer }

// Step advances the app by one frame, applying at most one queued input
// event. The host calls it once per frame, before [marionette.Engine.PostFrame].
func (a *App) Step() {
	a.frame++
	a.dirty = true
	if len(a.events) > 0 {
		ev := a.events[0]
		a.events = a.events[1:]
		a.applyEvent(ev)
	}
}

// Inject queues one synthetic input event.
func (a *App) Inject(ev marionette.Event) {
	a.events = append(a.events, ev)
}

// Pending reports how many injected events have not yet been applied.
func (a *App) Pending() int { return len(a.events) }

// Resolve looks up the item at path, reporting whether it currently
// exists on screen.
func (a *App) Resolve(path string) (marionette.ItemInfo, bool) {
	a.ensureLayout()
	it := a.lookup(path)
	if it == nil || !a.resolvable(it) {
		return marionette.ItemInfo{}, false
	}
	return a.info(it), true
}

// Children returns the resolvable children of the item at path, in layout
// order. Window chrome is not included.
func (a *App) Children(path string) []marionette.ItemInfo {
	a.ensureLayout()
	it := a.lookup(path)
	if it == nil || !a.resolvable(it) {
		return nil
	}
	var out []marionette.ItemInfo
	for _, ch := range it.children {
		if ch.Kind == KindSpecial || !a.resolvable(ch) {
			continue
		}
		out = append(out, a.info(ch))
	}
	return out
}

// ReadInt reads the item's value as an integer.
func (a *App) ReadInt(path string) (int, bool) {
	it := a.lookup(path)
	if it == nil || !a.resolvable(it) {
		return 0, false
	}
	switch it.Kind {
	case KindCheckbox, KindMenuItem:
		if it.Checked {
			return 1, true
		}
		return 0, true
	case KindInputInt:
		return it.IntValue, true
	case KindSlider:
		return int(it.FloatValue), true
	case KindButton:
		return it.Clicks, true
	case KindInputText:
		n, _ := strconv.Atoi(it.Value)
		return n, true
	case KindLabel:
		n, _ := strconv.Atoi(it.Text)
		return n, true
	}
	return 0, true
}

// ReadStr reads the item's value as text.
func (a *App) ReadStr(path string) (string, bool) {
	it := a.lookup(path)
	if it == nil || !a.resolvable(it) {
		return "", false
	}
	switch it.Kind {
	case KindLabel:
		return it.Text, true
	case KindInputText, KindCombo, KindTable:
		return it.Value, true
	case KindInputInt:
		return strconv.Itoa(it.IntValue), true
	case KindSlider:
		return strconv.FormatFloat(it.FloatValue, 'g', -1, 64), true
	case KindCheckbox:
		if it.Checked {
			return "1", true
		}
		return "0", true
	}
	return it.Name, true
}

// ReadFloat reads the item's value as a float.
func (a *App) ReadFloat(path string) (float64, bool) {
	it := a.lookup(path)
	if it == nil || !a.resolvable(it) {
		return 0, false
	}
	switch it.Kind {
	case KindSlider:
		return it.FloatValue, true
	case KindInputInt:
		return float64(it.IntValue), true
	case KindCheckbox:
		if it.Checked {
			return 1, true
		}
		return 0, true
	case KindInputText:
		f, _ := strconv.ParseFloat(it.Value, 64)
		return f, true
	case KindLabel:
		f, _ := strconv.ParseFloat(it.Text, 64)
		return f, true
	}
	return 0, true
}

func (a *App) lookup(path string) *Item {
	if path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	var cur *Item
	for _, w := range a.windows {
		if w.Name == segs[0] {
			cur = w
			break
		}
	}
	for _, seg := range segs[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.child(seg)
	}
	return cur
}

func (a *App) info(it *Item) marionette.ItemInfo {
	path := it.Path()
	return marionette.ItemInfo{ID: pathID(path), Path: path, Rect: it.rect, Flags: a.flags(it)}
}

// resolvable reports whether the item currently exists on screen: it and
// its ancestors are shown, its window is not closed, and every openable
// ancestor is open. Window chrome stays resolvable while the window is
// collapsed, except the resize grip.
func (a *App) resolvable(it *Item) bool {
	if !it.shown(a.frame) {
		return false
	}
	if it.Kind == KindWindow {
		return !it.Closed
	}
	win := it.root()
	if win.Closed || !win.shown(a.frame) {
		return false
	}
	if it.Kind == KindSpecial {
		return !(it.Name == "#RESIZE" && win.Collapsed)
	}
	if win.Collapsed {
		return false
	}
	for p := it.parent; p != nil && p.Kind != KindWindow; p = p.parent {
		if !p.shown(a.frame) {
			return false
		}
		switch p.Kind {
		case KindTreeNode, KindMenu, KindCombo:
			if !p.Opened {
				return false
			}
		}
	}
	return true
}

// visible reports whether the resolvable item is actually on screen:
// inside its window's content viewport, or part of a popup, which is
// never clipped.
func (a *App) visible(it *Item) bool {
	if !a.resolvable(it) {
		return false
	}
	screen := marionette.Rect{Width: a.W, Height: a.H}
	if it.Kind == KindWindow {
		return it.rect.Intersects(screen)
	}
	win := it.root()
	if !win.rect.Intersects(screen) {
		return false
	}
	if it.Kind == KindSpecial || inPopup(it) {
		return true
	}
	return it.rect.Intersects(contentViewport(win))
}

func (a *App) flags(it *Item) marionette.ItemStatus {
	var f marionette.ItemStatus
	if a.visible(it) {
		f |= marionette.ItemStatusVisible
	}
	switch it.Kind {
	case KindWindow:
		if !it.Collapsed {
			f |= marionette.ItemStatusOpened
		}
		if a.front() == it {
			f |= marionette.ItemStatusFocused
		}
	case KindTreeNode, KindMenu, KindCombo:
		f |= marionette.ItemStatusOpenable
		if it.Opened {
			f |= marionette.ItemStatusOpened
		}
	}
	if it.checkable {
		f |= marionette.ItemStatusCheckable
		if it.Checked {
			f |= marionette.ItemStatusChecked
		}
	}
	if it.Disabled {
		f |= marionette.ItemStatusDisabled
	}
	if a.focus == it {
		f |= marionette.ItemStatusFocused
	}
	return f
}

// front returns the frontmost window that still exists.
func (a *App) front() *Item {
	for i := len(a.windows) - 1; i >= 0; i-- {
		w := a.windows[i]
		if !w.Closed && w.shown(a.frame) {
			return w
		}
	}
	return nil
}

// raise moves the window to the front of the z-order.
func (a *App) raise(win *Item) {
	for i, w := range a.windows {
		if w == win {
			a.windows = append(append(a.windows[:i], a.windows[i+1:]...), win)
			a.dirty = true
			return
		}
	}
}

func pathID(path string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(path))
	return h.Sum32()
}
