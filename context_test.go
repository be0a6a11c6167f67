package marionette

import (
	"strings"
	"testing"
)

// runFn registers a single Go test function, pumps it to completion, and
// returns the test for status checks.
func runFn(t *testing.T, sur *stubSurface, opts Options, fn func(*Context)) *Test {
	t.Helper()
	eng := quietEngine(sur, opts)
	t.Cleanup(eng.Shutdown)
	tst := eng.RegisterTest("ctx", "fn", fn)
	eng.QueueTests(GroupAll, "all", 0)
	eng.Start()
	pump(t, sur, eng)
	return tst
}

// kinds projects the applied events down to their kinds.
func kinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestResolvePath(t *testing.T) {
	c := &Context{}
	cases := []struct {
		base, ref, want string
	}{
		{"", "OK", "OK"},
		{"Settings", "OK", "Settings/OK"},
		{"Settings", "Advanced/OK", "Settings/Advanced/OK"},
		{"Settings", "", "Settings"},
		{"Settings", "/Other/OK", "Other/OK"},
		{"/Main/", "OK", "Main/OK"}, // base slashes are trimmed
		{"Settings", "Sub/", "Settings/Sub"},
		{"", "", ""},
	}
	for _, tc := range cases {
		c.SetRef(tc.base)
		if got := c.resolvePath(tc.ref); got != tc.want {
			t.Errorf("base %q + ref %q = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}

func TestMoveEventCounts(t *testing.T) {
	cases := []struct {
		speed RunSpeed
		moves int
	}{
		{RunSpeedFast, 1},
		{RunSpeedNormal, normalMoveFrames},
		{RunSpeedCinematic, cinematicMoveFrames},
	}
	for _, tc := range cases {
		sur := newStubSurface()
		tst := runFn(t, sur, Options{Speed: tc.speed}, func(ctx *Context) {
			ctx.MouseMoveToPos(100, 80)
		})
		if tst.Status != TestStatusSuccess {
			t.Fatalf("speed %d: %s", tc.speed, tst.LastFailure())
		}
		if len(sur.applied) != tc.moves {
			t.Errorf("speed %d: %d move events, want %d", tc.speed, len(sur.applied), tc.moves)
			continue
		}
		// Glides must land exactly on the target.
		last := sur.applied[len(sur.applied)-1]
		if last.X != 100 || last.Y != 80 {
			t.Errorf("speed %d: final move at (%g, %g), want (100, 80)", tc.speed, last.X, last.Y)
		}
	}
}

func TestTeleportIgnoresSpeed(t *testing.T) {
	sur := newStubSurface()
	runFn(t, sur, Options{Speed: RunSpeedCinematic}, func(ctx *Context) {
		ctx.MouseTeleportToPos(33, 44)
	})
	if len(sur.applied) != 1 {
		t.Fatalf("%d events, want 1", len(sur.applied))
	}
	if ev := sur.applied[0]; ev.Kind != EventPointerMove || ev.X != 33 || ev.Y != 44 {
		t.Errorf("event = %+v, want a move to (33, 44)", ev)
	}
}

func TestMouseMoveToVoid(t *testing.T) {
	sur := newStubSurface()
	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.MouseMoveToVoid()
	})
	if len(sur.applied) != 1 || sur.applied[0].X != voidX || sur.applied[0].Y != voidY {
		t.Fatalf("applied = %+v, want one move to the void position", sur.applied)
	}
}

func TestItemClickMissingItem(t *testing.T) {
	sur := newStubSurface()
	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemClick("Ghost", MouseButtonLeft)
	})
	if tst.Status != TestStatusError {
		t.Fatal("clicking a missing item should fail the run")
	}
	if !strings.Contains(tst.LastFailure(), `"Ghost"`) {
		t.Errorf("LastFailure = %q, want the path in it", tst.LastFailure())
	}
	if len(sur.applied)+len(sur.pending) != 0 {
		t.Error("no input should have been synthesized")
	}
}

func TestItemCheckAlreadyChecked(t *testing.T) {
	sur := newStubSurface()
	box := sur.add("Box", nil)
	box.flags |= ItemStatusCheckable | ItemStatusChecked

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemCheck("Box")
	})
	if tst.Status != TestStatusSuccess {
		t.Fatalf("status = %v: %s", tst.Status, tst.LastFailure())
	}
	// Already in the wanted state: no click.
	if len(sur.applied) != 0 {
		t.Errorf("%d events applied, want 0", len(sur.applied))
	}
}

func TestItemCheckVerifiesResult(t *testing.T) {
	sur := newStubSurface()
	// Checkable but inert: the click will not change its state, and the
	// re-resolve after the click must catch that.
	sur.add("Box", nil).flags |= ItemStatusCheckable

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemCheck("Box")
	})
	if tst.Status != TestStatusError {
		t.Fatal("expected the post-click verification to fail")
	}
	if !strings.Contains(tst.LastFailure(), "unable to check") {
		t.Errorf("LastFailure = %q, want an unable-to-check message", tst.LastFailure())
	}
	want := []EventKind{EventPointerMove, EventPointerDown, EventPointerUp}
	got := kinds(sur.applied)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestItemCheckRejectsUncheckable(t *testing.T) {
	sur := newStubSurface()
	sur.add("Label", nil)

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemCheck("Label")
	})
	if tst.Status != TestStatusError || !strings.Contains(tst.LastFailure(), "not checkable") {
		t.Fatalf("LastFailure = %q, want a not-checkable failure", tst.LastFailure())
	}
}

func TestKeyCharsReplaceEnterSequence(t *testing.T) {
	sur := newStubSurface()
	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.KeyCharsReplaceEnter("hi")
	})

	want := []EventKind{
		EventKeyDown, EventKeyUp, // ctrl-a select all
		EventChar, EventChar, // "h", "i"
		EventKeyDown, EventKeyUp, // enter commit
	}
	got := kinds(sur.applied)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %d, want %d", i, got[i], want[i])
		}
	}
	if ev := sur.applied[0]; ev.Key != KeyA || ev.Mods != ModCtrl {
		t.Errorf("select-all chord = %v+%v, want ctrl+a", ev.Mods, ev.Key)
	}
	if sur.applied[2].Ch != 'h' || sur.applied[3].Ch != 'i' {
		t.Error("typed characters out of order")
	}
	if ev := sur.applied[4]; ev.Key != KeyEnter || ev.Mods != 0 {
		t.Errorf("commit chord = %v+%v, want plain enter", ev.Mods, ev.Key)
	}
}

func TestItemHoldFrames(t *testing.T) {
	sur := newStubSurface()
	sur.add("Button", nil)

	const holdFrames = 5
	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemHold("Button", holdFrames)
	})

	got := kinds(sur.applied)
	want := []EventKind{EventPointerMove, EventPointerDown, EventPointerUp}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	// The hold sits between press and release: the release lands the held
	// frame count past the press, plus the frame the injection itself takes.
	gap := sur.appliedStep[2] - sur.appliedStep[1]
	if gap != holdFrames+1 {
		t.Errorf("press-to-release gap = %d steps, want %d", gap, holdFrames+1)
	}
}

func TestDragWithDeltaSequence(t *testing.T) {
	sur := newStubSurface()
	sur.add("Knob", nil) // rect {10 10 80 20}, center (50, 20)

	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ItemDragWithDelta("Knob", 30, 10)
	})

	// Fast speed still glides drags: move, down, four drag moves, up.
	got := kinds(sur.applied)
	want := []EventKind{
		EventPointerMove, EventPointerDown,
		EventPointerMove, EventPointerMove, EventPointerMove, EventPointerMove,
		EventPointerUp,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %d, want %d", i, got[i], want[i])
		}
	}
	if last := sur.applied[5]; last.X != 80 || last.Y != 30 {
		t.Errorf("drag ended at (%g, %g), want (80, 30)", last.X, last.Y)
	}
}

func TestScrollToItemGivesUp(t *testing.T) {
	sur := newStubSurface()
	sur.add("Win", nil)
	deep := sur.add("Win/Deep", nil)
	deep.flags &^= ItemStatusVisible // exists but never scrolls into view

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ScrollToItemY("Win/Deep")
	})
	if tst.Status != TestStatusError {
		t.Fatal("scrolling toward an unreachable item should fail")
	}
	if !strings.Contains(tst.LastFailure(), "unable to scroll") {
		t.Errorf("LastFailure = %q, want an unable-to-scroll message", tst.LastFailure())
	}

	wheels := 0
	for _, ev := range sur.applied {
		if ev.Kind == EventWheel {
			wheels++
			if ev.WheelY != scrollWheelStep {
				t.Fatalf("wheel amount = %g, want %g (toward content start)", ev.WheelY, float64(scrollWheelStep))
			}
		}
	}
	if wheels != scrollMaxSteps {
		t.Errorf("%d wheel attempts, want %d", wheels, scrollMaxSteps)
	}
}

func TestScrollToEdges(t *testing.T) {
	sur := newStubSurface()
	sur.add("Win", nil)

	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.ScrollToTop("Win")
		ctx.ScrollToBottom("Win")
	})

	var amounts []float64
	for _, ev := range sur.applied {
		if ev.Kind == EventWheel {
			amounts = append(amounts, ev.WheelY)
		}
	}
	if len(amounts) != 2 || amounts[0] != scrollWheelPage || amounts[1] != -scrollWheelPage {
		t.Fatalf("wheel amounts = %v, want [%g, %g]", amounts, float64(scrollWheelPage), float64(-scrollWheelPage))
	}
}

func TestMenuWalkSkipsOpenLevels(t *testing.T) {
	sur := newStubSurface()
	sur.add("Win", nil)
	file := sur.add("Win/File", nil)
	file.flags |= ItemStatusOpenable | ItemStatusOpened
	save := sur.add("Win/File/Save", nil)
	save.rect = Rect{X: 200, Y: 40, Width: 80, Height: 20}

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.SetRef("Win")
		ctx.MenuClick("File/Save")
	})
	if tst.Status != TestStatusSuccess {
		t.Fatalf("status = %v: %s", tst.Status, tst.LastFailure())
	}
	// File is already open, so the only click targets Save.
	got := kinds(sur.applied)
	want := []EventKind{EventPointerMove, EventPointerDown, EventPointerUp}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	center := save.rect.Center()
	if ev := sur.applied[1]; ev.X != center.X || ev.Y != center.Y {
		t.Errorf("click at (%g, %g), want Save center (%g, %g)", ev.X, ev.Y, center.X, center.Y)
	}
}

func TestNavEvents(t *testing.T) {
	sur := newStubSurface()
	sur.add("Panel/Target", nil)

	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.SetRef("Panel")
		ctx.NavMoveTo("Target")
		ctx.NavActivate()
	})

	got := kinds(sur.applied)
	want := []EventKind{EventNavFocus, EventNavActivate}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if sur.applied[0].Path != "Panel/Target" {
		t.Errorf("nav focus path = %q, want Panel/Target", sur.applied[0].Path)
	}
}

func TestFailedStopsPrimitives(t *testing.T) {
	sur := newStubSurface()
	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.Errorf("stop here")
		ctx.MouseTeleportToPos(5, 5)
		ctx.KeyChars("nope")
		ctx.NavActivate()
	})
	if tst.Status != TestStatusError {
		t.Fatal("run should be failed")
	}
	if tst.LastFailure() != "stop here" {
		t.Errorf("LastFailure = %q, want the first message", tst.LastFailure())
	}
	if len(sur.applied)+len(sur.pending) != 0 {
		t.Errorf("%d events synthesized after failure, want 0", len(sur.applied)+len(sur.pending))
	}
}

func TestWindowMoveDragsByTitle(t *testing.T) {
	sur := newStubSurface()
	win := sur.add("Win", nil)
	win.rect = Rect{X: 100, Y: 100, Width: 200, Height: 150}
	title := sur.add("Win/#TITLE", nil)
	title.rect = Rect{X: 100, Y: 100, Width: 152, Height: 24}

	runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.WindowMove("Win", 160, 130)
	})

	// The drag ends at title center plus the window delta (60, 30).
	start := title.rect.Center()
	var lastMove Event
	for _, ev := range sur.applied {
		if ev.Kind == EventPointerMove {
			lastMove = ev
		}
	}
	if lastMove.X != start.X+60 || lastMove.Y != start.Y+30 {
		t.Errorf("drag ended at (%g, %g), want (%g, %g)",
			lastMove.X, lastMove.Y, start.X+60, start.Y+30)
	}
}

func TestWindowMoveRequiresTitle(t *testing.T) {
	sur := newStubSurface()
	sur.add("Bare", nil)

	tst := runFn(t, sur, Options{}, func(ctx *Context) {
		ctx.WindowMove("Bare", 10, 10)
	})
	if tst.Status != TestStatusError || !strings.Contains(tst.LastFailure(), "no title bar") {
		t.Fatalf("LastFailure = %q, want a no-title-bar failure", tst.LastFailure())
	}
}

func TestCaptureScreenshotQueues(t *testing.T) {
	sur := newStubSurface()
	eng := quietEngine(sur, Options{})
	eng.RegisterTest("cap", "snap", func(ctx *Context) {
		ctx.CaptureScreenshot("before-click")
	})
	eng.QueueTests(GroupAll, "all", 0)
	eng.Start()
	pump(t, sur, eng)

	got := eng.takeCaptures()
	if len(got) != 1 || got[0] != "before-click" {
		t.Fatalf("captures = %v, want [before-click]", got)
	}
	if eng.takeCaptures() != nil {
		t.Error("takeCaptures should drain the queue")
	}
	eng.Shutdown()
}
