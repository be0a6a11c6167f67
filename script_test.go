package marionette

import (
	"strings"
	"testing"
)

func TestScriptAppendersRecordFields(t *testing.T) {
	s := NewScript("fields")
	defer s.Discard()

	s.SetRef("Settings")
	s.ItemClick("OK", MouseButtonRight)
	s.ItemInputInt("Count", 7)
	s.ItemInputStr("Name", "ace")
	s.ItemDragWithDelta("Knob", 12.5, -3)
	s.MouseClickMulti(MouseButtonLeft, 3)
	s.KeyHold(Chord(KeyA, ModCtrl), 9)
	s.TableClickHeader("Grid", "Size", MouseButtonLeft)
	s.WindowCollapse("Main", true)
	s.AssertItemReadFloatEq("Gauge", 1.5, 0.25)
	s.WaitForItemVisible("Late", 30)
	s.Sleep(1.5)
	s.Yield(4)

	want := []Cmd{
		{Kind: CmdSetRef, A: "Settings"},
		{Kind: CmdItemClick, A: "OK", I: int(MouseButtonRight)},
		{Kind: CmdItemInputInt, A: "Count", I: 7},
		{Kind: CmdItemInputStr, A: "Name", B: "ace"},
		{Kind: CmdItemDragWithDelta, A: "Knob", F: 12.5, G: -3},
		{Kind: CmdMouseClickMulti, I: int(MouseButtonLeft), J: 3},
		{Kind: CmdKeyHold, I: int(Chord(KeyA, ModCtrl)), J: 9},
		{Kind: CmdTableClickHeader, A: "Grid", B: "Size", I: int(MouseButtonLeft)},
		{Kind: CmdWindowCollapse, A: "Main", I: 1},
		{Kind: CmdAssertItemReadFloatEq, A: "Gauge", F: 1.5, G: 0.25},
		{Kind: CmdWaitForItemVisible, A: "Late", I: 30},
		{Kind: CmdSleep, F: 1.5},
		{Kind: CmdYield, I: 4},
	}
	if s.Len() != len(want) {
		t.Fatalf("recorded %d commands, want %d", s.Len(), len(want))
	}
	for i, w := range want {
		if s.cmds[i] != w {
			t.Errorf("cmd %d = %+v, want %+v", i, s.cmds[i], w)
		}
	}
}

func TestScriptNilReceiver(t *testing.T) {
	var s *Script
	// Appends on a nil script are silently ignored, so builders can chain
	// without checking.
	s.SetRef("X")
	s.ItemClick("Y", MouseButtonLeft)
	s.Yield(1)
	if s.Len() != 0 {
		t.Fatalf("nil script Len = %d, want 0", s.Len())
	}
	s.Discard() // must not panic either
}

func TestScriptDiscard(t *testing.T) {
	before := liveScripts
	s := NewScript("tmp")
	if liveScripts != before+1 {
		t.Fatalf("liveScripts = %d after create, want %d", liveScripts, before+1)
	}
	s.Discard()
	if liveScripts != before {
		t.Fatalf("liveScripts = %d after discard, want %d", liveScripts, before)
	}
	s.Discard()
	if liveScripts != before {
		t.Fatal("second Discard must not double-release")
	}
}

func TestDiscardIgnoresRegisteredScripts(t *testing.T) {
	sur := newStubSurface()
	eng := quietEngine(sur, Options{})

	before := liveScripts
	s := NewScript("owned")
	eng.RegisterScript("", "owned", s)

	// Ownership moved to the engine: Discard is a no-op now.
	s.Discard()
	if liveScripts != before+1 {
		t.Fatalf("liveScripts = %d, want %d (engine still owns the script)",
			liveScripts, before+1)
	}
	eng.Shutdown()
	if liveScripts != before {
		t.Fatalf("liveScripts = %d after shutdown, want %d", liveScripts, before)
	}
}

func TestCmdString(t *testing.T) {
	cases := []struct {
		cmd  Cmd
		want string
	}{
		{Cmd{Kind: CmdSetRef, A: "Main"}, `setRef("Main")`},
		{Cmd{Kind: CmdItemInputStr, A: "Name", B: "ace"}, `itemInputStr("Name", "ace")`},
		{Cmd{Kind: CmdYield, I: 3}, `yield(3, 0)`},
		{Cmd{Kind: CmdMouseMoveToVoid}, `mouseMoveToVoid()`},
		{Cmd{Kind: CmdMouseWheelY, F: -2.5}, `mouseWheelY(-2.5, 0)`},
	}
	for _, c := range cases {
		if got := c.cmd.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
	// Out-of-range kinds render as a numeric placeholder instead of
	// panicking.
	if got := (Cmd{Kind: cmdKindCount}).String(); !strings.HasPrefix(got, "cmd(") {
		t.Errorf("out-of-range String() = %q, want a cmd(...) placeholder", got)
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := CmdKind(0); k < cmdKindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("command kind %d has no name", k)
		}
		if got, ok := opKinds[kindNames[k]]; !ok || got != k {
			t.Errorf("op %q does not round-trip (got %d, want %d)", kindNames[k], got, k)
		}
	}
}

func TestChord(t *testing.T) {
	c := Chord(KeyEnter, ModCtrl|ModShift)
	if c.Key() != KeyEnter {
		t.Errorf("Key() = %v, want KeyEnter", c.Key())
	}
	if c.Mods() != ModCtrl|ModShift {
		t.Errorf("Mods() = %v, want ctrl+shift", c.Mods())
	}
}
