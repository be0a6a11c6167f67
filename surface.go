package marionette

// Surface is the UI under test. The engine drives it exclusively through
// this interface: items are resolved by path, state is read back through
// typed queries, and interactions arrive as synthetic input events.
//
// Paths are slash-separated and canonical (no leading slash), for example
// "Settings/Advanced/Apply". Resolution reflects what the UI currently
// shows: an item inside a closed tree node or a closed window does not
// resolve at all, while an item that is merely scrolled out of view
// resolves with the Visible flag clear.
//
// Frame advancement is owned by the host loop, not by the Surface: the host
// steps the surface once per frame and then calls [Engine.PostFrame].
// A Surface is expected to apply at most one injected event per step, so
// that event order maps deterministically onto frames.
type Surface interface {
	// Resolve looks up the item at path, reporting whether it currently
	// exists.
	Resolve(path string) (ItemInfo, bool)

	// Children returns the resolvable children of the item at path, in
	// layout order. A missing or childless item yields nil.
	Children(path string) []ItemInfo

	// ReadInt, ReadStr, and ReadFloat read the item's current value through
	// its natural typed channel. The bool result is false when the item
	// does not resolve.
	ReadInt(path string) (int, bool)
	ReadStr(path string) (string, bool)
	ReadFloat(path string) (float64, bool)

	// Inject queues one synthetic input event. Events are applied in
	// injection order, at most one per frame step.
	Inject(ev Event)

	// Pending reports how many injected events have not yet been applied.
	Pending() int
}
