package marionette

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a keyboard key independent of layout.
type Key uint8

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// KeyChord packs a Key together with its KeyModifiers into a single value,
// suitable for storage in a command's integer slot. Build one with [Chord].
type KeyChord int

const chordModShift = 16

// Chord combines a key and a set of modifiers into a KeyChord.
func Chord(key Key, mods KeyModifiers) KeyChord {
	return KeyChord(int(key) | int(mods)<<chordModShift)
}

// Key returns the key component of the chord.
func (c KeyChord) Key() Key {
	return Key(c & (1<<chordModShift - 1))
}

// Mods returns the modifier component of the chord.
func (c KeyChord) Mods() KeyModifiers {
	return KeyModifiers(c >> chordModShift)
}

// ItemStatus is a bitmask describing the transient state of a resolved UI
// item. It is queried fresh on every check, never cached across frames.
type ItemStatus uint8

const (
	ItemStatusVisible   ItemStatus = 1 << iota // on screen and not clipped or collapsed away
	ItemStatusChecked                          // checkable item is currently checked
	ItemStatusOpened                           // openable item (tree node, menu, combo) is expanded
	ItemStatusFocused                          // item has keyboard focus
	ItemStatusDisabled                         // item does not respond to activation
	ItemStatusCheckable                        // item toggles its checked state when activated
	ItemStatusOpenable                         // item can expand to reveal children
)

// ItemInfo describes a UI item resolved through a [Surface]. Rect is the
// item's absolute screen rectangle, used for pointer targeting.
type ItemInfo struct {
	ID    uint32
	Path  string
	Rect  Rect
	Flags ItemStatus
}

// EventKind identifies a kind of synthetic input event.
type EventKind uint8

const (
	EventPointerMove EventKind = iota // pointer moved to (X, Y)
	EventPointerDown                  // Button pressed at (X, Y)
	EventPointerUp                    // Button released at (X, Y)
	EventWheel                        // scroll by (WheelX, WheelY) at the current pointer position
	EventKeyDown                      // Key pressed, with Mods held
	EventKeyUp                        // Key released
	EventChar                         // character Ch typed into the focused item
	EventNavFocus                     // keyboard focus jumps to the item at Path
	EventNavActivate                  // focused item is activated
)

// Event is a single synthetic input event injected into a [Surface].
// Only the fields relevant to Kind are meaningful.
type Event struct {
	Kind           EventKind
	X, Y           float64
	Button         MouseButton
	WheelX, WheelY float64
	Key            Key
	Mods           KeyModifiers
	Ch             rune
	Path           string
}

// RunSpeed selects how fast driven interactions play out. It affects pointer
// movement only; frame budgets and waits are unchanged.
type RunSpeed uint8

const (
	RunSpeedFast      RunSpeed = iota // teleport the cursor, fastest possible playback
	RunSpeedNormal                    // short linear cursor glides
	RunSpeedCinematic                 // slow eased glides, for watching a run live
)

// Verbosity controls how much the engine logs during runs.
type Verbosity uint8

const (
	VerbositySilent  Verbosity = iota // no output at all
	VerbosityError                    // test failures only
	VerbosityWarning                  // failures and warnings
	VerbosityInfo                     // per-test start/result lines
	VerbosityDebug                    // internal engine activity
	VerbosityTrace                    // every executed command
)

// TestStatus is the lifecycle state of a registered test.
type TestStatus uint8

const (
	TestStatusUnknown TestStatus = iota // registered, never queued
	TestStatusQueued                    // waiting in the run queue
	TestStatusRunning                   // currently executing
	TestStatusSuccess                   // last run completed without error
	TestStatusError                     // last run failed or was aborted
)

// String returns a short human-readable status name.
func (s TestStatus) String() string {
	switch s {
	case TestStatusQueued:
		return "queued"
	case TestStatusRunning:
		return "running"
	case TestStatusSuccess:
		return "success"
	case TestStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// TestGroup partitions registered tests into coarse categories for queueing.
type TestGroup int8

// GroupAll selects every group when passed to [Engine.QueueTests].
const GroupAll TestGroup = -1

const (
	GroupTests TestGroup = iota // functional tests (default)
	GroupPerfs                  // performance measurements
)

// RunFlags adjust how a queued batch of tests is run.
// Values can be combined with bitwise OR.
type RunFlags uint8

const (
	RunFlagNoSuccessMsg RunFlags = 1 << iota // do not log per-test success lines
	RunFlagStopOnError                       // clear the remaining queue after the first failure
)

// Summary is a snapshot of aggregate test results, computed from the status
// of every registered test.
type Summary struct {
	Tested  int // tests that have finished a run (success or error)
	Success int // tests whose last run succeeded
	InQueue int // tests queued or currently running
}

// Failed returns the number of finished tests that did not succeed.
func (s Summary) Failed() int {
	return s.Tested - s.Success
}
