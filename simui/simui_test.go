package simui

import (
	"testing"

	"github.com/phanxgames/marionette"
)

// pump injects events and steps until the queue drains.
func pump(a *App, evs ...marionette.Event) {
	for _, ev := range evs {
		a.Inject(ev)
	}
	for a.Pending() > 0 {
		a.Step()
	}
}

func click(a *App, x, y float64) {
	pump(a,
		marionette.Event{Kind: marionette.EventPointerMove, X: x, Y: y},
		marionette.Event{Kind: marionette.EventPointerDown, X: x, Y: y, Button: marionette.MouseButtonLeft},
		marionette.Event{Kind: marionette.EventPointerUp, X: x, Y: y, Button: marionette.MouseButtonLeft},
	)
}

func clickItem(t *testing.T, a *App, path string) {
	t.Helper()
	info, ok := a.Resolve(path)
	if !ok {
		t.Fatalf("Resolve(%q) failed before click", path)
	}
	c := info.Rect.Center()
	click(a, c.X, c.Y)
}

func typeText(a *App, text string) {
	var evs []marionette.Event
	for _, r := range text {
		evs = append(evs, marionette.Event{Kind: marionette.EventChar, Ch: r})
	}
	pump(a, evs...)
}

func pressKey(a *App, key marionette.Key, mods marionette.KeyModifiers) {
	pump(a,
		marionette.Event{Kind: marionette.EventKeyDown, Key: key, Mods: mods},
		marionette.Event{Kind: marionette.EventKeyUp, Key: key, Mods: mods},
	)
}

func TestResolveAndLayout(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Label("Status", "ready")
	win.Button("OK")

	info, ok := a.Resolve("Main")
	if !ok {
		t.Fatal("window did not resolve")
	}
	if info.Rect.X != 40 || info.Rect.Width != 320 {
		t.Fatalf("window rect = %+v", info.Rect)
	}
	if info.Flags&marionette.ItemStatusVisible == 0 {
		t.Error("window not visible")
	}
	if info.Flags&marionette.ItemStatusOpened == 0 {
		t.Error("uncollapsed window should report opened")
	}

	status, ok := a.Resolve("Main/Status")
	if !ok {
		t.Fatal("label did not resolve")
	}
	wantY := 40.0 + titleH + pad
	if status.Rect.X != 40+pad || status.Rect.Y != wantY {
		t.Fatalf("first row rect = %+v", status.Rect)
	}
	okBtn, ok := a.Resolve("Main/OK")
	if !ok {
		t.Fatal("button did not resolve")
	}
	if okBtn.Rect.Y != wantY+rowH {
		t.Fatalf("second row y = %g, want %g", okBtn.Rect.Y, wantY+rowH)
	}

	if _, ok := a.Resolve("Main/Missing"); ok {
		t.Error("missing item resolved")
	}
	if v, ok := a.ReadStr("Main/Status"); !ok || v != "ready" {
		t.Errorf("ReadStr = %q, %v", v, ok)
	}
}

func TestOneEventPerStep(t *testing.T) {
	a := New(800, 600)
	for i := 0; i < 3; i++ {
		a.Inject(marionette.Event{Kind: marionette.EventPointerMove, X: float64(i), Y: 0})
	}
	for want := 3; want > 0; want-- {
		if got := a.Pending(); got != want {
			t.Fatalf("Pending = %d, want %d", got, want)
		}
		a.Step()
	}
	if a.Pending() != 0 {
		t.Fatalf("Pending = %d after draining", a.Pending())
	}
}

func TestButtonAndCheckbox(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	btn := win.Button("OK")
	win.Checkbox("Enabled", false)

	clickItem(t, a, "Main/OK")
	clickItem(t, a, "Main/OK")
	if btn.Clicks != 2 {
		t.Fatalf("Clicks = %d, want 2", btn.Clicks)
	}
	if n, _ := a.ReadInt("Main/OK"); n != 2 {
		t.Fatalf("ReadInt(button) = %d", n)
	}

	info, _ := a.Resolve("Main/Enabled")
	if info.Flags&marionette.ItemStatusCheckable == 0 {
		t.Fatal("checkbox not checkable")
	}
	if info.Flags&marionette.ItemStatusChecked != 0 {
		t.Fatal("checkbox started checked")
	}
	clickItem(t, a, "Main/Enabled")
	info, _ = a.Resolve("Main/Enabled")
	if info.Flags&marionette.ItemStatusChecked == 0 {
		t.Fatal("click did not check")
	}
	clickItem(t, a, "Main/Enabled")
	if n, _ := a.ReadInt("Main/Enabled"); n != 0 {
		t.Fatalf("second click did not uncheck, ReadInt = %d", n)
	}
}

func TestTreeNode(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	tree := win.TreeNode("Advanced")
	tree.Label("Inner", "x")

	if _, ok := a.Resolve("Main/Advanced/Inner"); ok {
		t.Fatal("closed tree child resolved")
	}
	if got := a.Children("Main/Advanced"); got != nil {
		t.Fatalf("closed tree Children = %v", got)
	}

	clickItem(t, a, "Main/Advanced")
	inner, ok := a.Resolve("Main/Advanced/Inner")
	if !ok {
		t.Fatal("open tree child did not resolve")
	}
	node, _ := a.Resolve("Main/Advanced")
	if inner.Rect.X != node.Rect.X+indent {
		t.Errorf("child not indented: %g vs %g", inner.Rect.X, node.Rect.X)
	}
	if len(a.Children("Main/Advanced")) != 1 {
		t.Error("open tree should list one child")
	}

	clickItem(t, a, "Main/Advanced")
	if _, ok := a.Resolve("Main/Advanced/Inner"); ok {
		t.Fatal("re-closed tree child still resolves")
	}
}

func TestInputEditing(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.InputText("Name", "old")
	win.InputInt("Count", 3)

	clickItem(t, a, "Main/Name")
	info, _ := a.Resolve("Main/Name")
	if info.Flags&marionette.ItemStatusFocused == 0 {
		t.Fatal("clicked input not focused")
	}
	pressKey(a, marionette.KeyA, marionette.ModCtrl)
	typeText(a, "new")
	pressKey(a, marionette.KeyEnter, 0)
	if v, _ := a.ReadStr("Main/Name"); v != "new" {
		t.Fatalf("committed value = %q", v)
	}
	info, _ = a.Resolve("Main/Name")
	if info.Flags&marionette.ItemStatusFocused != 0 {
		t.Error("input still focused after Enter")
	}

	// Escape discards the edit.
	clickItem(t, a, "Main/Name")
	pressKey(a, marionette.KeyA, marionette.ModCtrl)
	typeText(a, "scrap")
	pressKey(a, marionette.KeyEscape, 0)
	if v, _ := a.ReadStr("Main/Name"); v != "new" {
		t.Fatalf("escape committed %q", v)
	}

	clickItem(t, a, "Main/Count")
	pressKey(a, marionette.KeyA, marionette.ModCtrl)
	typeText(a, "42")
	pressKey(a, marionette.KeyEnter, 0)
	if n, _ := a.ReadInt("Main/Count"); n != 42 {
		t.Fatalf("committed int = %d", n)
	}

	// Unparseable text leaves the value alone.
	clickItem(t, a, "Main/Count")
	pressKey(a, marionette.KeyA, marionette.ModCtrl)
	typeText(a, "4x2")
	pressKey(a, marionette.KeyEnter, 0)
	if n, _ := a.ReadInt("Main/Count"); n != 42 {
		t.Fatalf("bad parse overwrote value: %d", n)
	}
}

func TestMenus(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	file := win.Menu("File")
	save := file.MenuItem("Save")
	opts := win.Menu("Options")
	opts.MenuItemCheckable("Wrap", false)

	if _, ok := a.Resolve("Main/File/Save"); ok {
		t.Fatal("closed menu entry resolved")
	}
	clickItem(t, a, "Main/File")
	if _, ok := a.Resolve("Main/File/Save"); !ok {
		t.Fatal("open menu entry did not resolve")
	}

	// Opening a sibling menu closes the first.
	clickItem(t, a, "Main/Options")
	if _, ok := a.Resolve("Main/File/Save"); ok {
		t.Fatal("first menu stayed open")
	}
	if _, ok := a.Resolve("Main/Options/Wrap"); !ok {
		t.Fatal("second menu did not open")
	}

	// Checkable entries toggle and keep the menu open.
	clickItem(t, a, "Main/Options/Wrap")
	info, ok := a.Resolve("Main/Options/Wrap")
	if !ok {
		t.Fatal("menu closed after toggling a checkable entry")
	}
	if info.Flags&marionette.ItemStatusChecked == 0 {
		t.Fatal("entry did not check")
	}

	// Plain entries close the chain.
	clickItem(t, a, "Main/Options")
	clickItem(t, a, "Main/File")
	clickItem(t, a, "Main/File/Save")
	if save.Clicks != 1 {
		t.Fatalf("Save.Clicks = %d", save.Clicks)
	}
	if _, ok := a.Resolve("Main/File/Save"); ok {
		t.Fatal("menu stayed open after clicking a plain entry")
	}
}

func TestCombo(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Combo("Mode", "Fast", "Slow")

	if v, _ := a.ReadStr("Main/Mode"); v != "Fast" {
		t.Fatalf("initial value = %q", v)
	}
	clickItem(t, a, "Main/Mode")
	kids := a.Children("Main/Mode")
	if len(kids) != 2 || kids[0].Path != "Main/Mode/Fast" || kids[1].Path != "Main/Mode/Slow" {
		t.Fatalf("open combo children = %+v", kids)
	}
	clickItem(t, a, "Main/Mode/Slow")
	if v, _ := a.ReadStr("Main/Mode"); v != "Slow" {
		t.Fatalf("selected value = %q", v)
	}
	if _, ok := a.Resolve("Main/Mode/Slow"); ok {
		t.Fatal("popup stayed open after selection")
	}
}

func TestTableHeaders(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Table("Files", "Name", "Size")

	name, ok := a.Resolve("Main/Files/Name")
	if !ok {
		t.Fatal("header did not resolve")
	}
	size, _ := a.Resolve("Main/Files/Size")
	if size.Rect.X != name.Rect.X+colW {
		t.Errorf("headers not side by side: %+v %+v", name.Rect, size.Rect)
	}
	clickItem(t, a, "Main/Files/Size")
	if v, _ := a.ReadStr("Main/Files"); v != "Size" {
		t.Fatalf("sort column = %q", v)
	}
}

func TestWindowChrome(t *testing.T) {
	a := New(800, 600)
	a.Window("Main", 40, 40, 320, 400)
	tools := a.Window("Tools", 400, 40, 200, 200)
	tools.Label("Tip", "hi")

	// Tools opened last, so it is in front.
	main, _ := a.Resolve("Main")
	if main.Flags&marionette.ItemStatusFocused != 0 {
		t.Fatal("back window reports focus")
	}
	clickItem(t, a, "Main/#TITLE")
	main, _ = a.Resolve("Main")
	if main.Flags&marionette.ItemStatusFocused == 0 {
		t.Fatal("clicking the title bar did not raise the window")
	}

	clickItem(t, a, "Tools/#COLLAPSE")
	if _, ok := a.Resolve("Tools/Tip"); ok {
		t.Fatal("collapsed window content resolved")
	}
	info, ok := a.Resolve("Tools")
	if !ok {
		t.Fatal("collapsed window gone")
	}
	if info.Flags&marionette.ItemStatusOpened != 0 {
		t.Fatal("collapsed window reports opened")
	}
	if _, ok := a.Resolve("Tools/#COLLAPSE"); !ok {
		t.Fatal("collapse box unavailable while collapsed")
	}
	clickItem(t, a, "Tools/#COLLAPSE")
	if _, ok := a.Resolve("Tools/Tip"); !ok {
		t.Fatal("content missing after expand")
	}

	clickItem(t, a, "Tools/#CLOSE")
	if _, ok := a.Resolve("Tools"); ok {
		t.Fatal("closed window still resolves")
	}
	if _, ok := a.Resolve("Tools/Tip"); ok {
		t.Fatal("closed window content still resolves")
	}
}

func TestTitleDragMovesWindow(t *testing.T) {
	a := New(800, 600)
	a.Window("Main", 40, 40, 320, 400)

	title, _ := a.Resolve("Main/#TITLE")
	c := title.Rect.Center()
	pump(a,
		marionette.Event{Kind: marionette.EventPointerMove, X: c.X, Y: c.Y},
		marionette.Event{Kind: marionette.EventPointerDown, X: c.X, Y: c.Y, Button: marionette.MouseButtonLeft},
		marionette.Event{Kind: marionette.EventPointerMove, X: c.X + 20, Y: c.Y + 10},
		marionette.Event{Kind: marionette.EventPointerMove, X: c.X + 30, Y: c.Y + 15},
		marionette.Event{Kind: marionette.EventPointerUp, X: c.X + 30, Y: c.Y + 15, Button: marionette.MouseButtonLeft},
	)
	info, _ := a.Resolve("Main")
	if info.Rect.X != 70 || info.Rect.Y != 55 {
		t.Fatalf("window rect after drag = %+v", info.Rect)
	}
}

func TestSliderDrag(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Slider("Vol", 0.5, 0, 1)

	info, _ := a.Resolve("Main/Vol")
	c := info.Rect.Center()
	right := info.Rect.X + info.Rect.Width
	pump(a,
		marionette.Event{Kind: marionette.EventPointerMove, X: c.X, Y: c.Y},
		marionette.Event{Kind: marionette.EventPointerDown, X: c.X, Y: c.Y, Button: marionette.MouseButtonLeft},
		marionette.Event{Kind: marionette.EventPointerMove, X: right, Y: c.Y},
		marionette.Event{Kind: marionette.EventPointerUp, X: right, Y: c.Y, Button: marionette.MouseButtonLeft},
	)
	if v, _ := a.ReadFloat("Main/Vol"); v != 1 {
		t.Fatalf("slider value after drag to end = %g", v)
	}
}

func TestDragAndDropRecorded(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Label("A", "")
	win.Label("B", "")

	src, _ := a.Resolve("Main/A")
	dst, _ := a.Resolve("Main/B")
	sc, dc := src.Rect.Center(), dst.Rect.Center()
	pump(a,
		marionette.Event{Kind: marionette.EventPointerMove, X: sc.X, Y: sc.Y},
		marionette.Event{Kind: marionette.EventPointerDown, X: sc.X, Y: sc.Y, Button: marionette.MouseButtonLeft},
		marionette.Event{Kind: marionette.EventPointerMove, X: dc.X, Y: dc.Y},
		marionette.Event{Kind: marionette.EventPointerUp, X: dc.X, Y: dc.Y, Button: marionette.MouseButtonLeft},
	)
	if a.LastDrop.Src != "Main/A" || a.LastDrop.Dst != "Main/B" {
		t.Fatalf("LastDrop = %+v", a.LastDrop)
	}
}

func TestScrollingRevealsItems(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 200)
	for i := 0; i < 20; i++ {
		win.Label("L"+string(rune('A'+i)), "")
	}

	last, ok := a.Resolve("Main/LT")
	if !ok {
		t.Fatal("scrolled-out item should still resolve")
	}
	if last.Flags&marionette.ItemStatusVisible != 0 {
		t.Fatal("item 20 visible in a 200px window")
	}

	winInfo, _ := a.Resolve("Main")
	c := winInfo.Rect.Center()
	for i := 0; i < 64; i++ {
		pump(a, marionette.Event{Kind: marionette.EventWheel, X: c.X, Y: c.Y, WheelY: -3})
		last, _ = a.Resolve("Main/LT")
		if last.Flags&marionette.ItemStatusVisible != 0 {
			break
		}
	}
	if last.Flags&marionette.ItemStatusVisible == 0 {
		t.Fatal("item never scrolled into view")
	}

	// A big positive wheel goes back to the top.
	pump(a, marionette.Event{Kind: marionette.EventWheel, X: c.X, Y: c.Y, WheelY: 1e4})
	first, _ := a.Resolve("Main/LA")
	if first.Flags&marionette.ItemStatusVisible == 0 {
		t.Fatal("first item not visible after scroll to top")
	}
}

func TestShowAfterFrame(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	late := win.Label("Late", "")
	late.ShowAfterFrame = a.Frame() + 3

	if _, ok := a.Resolve("Main/Late"); ok {
		t.Fatal("item resolved before its frame")
	}
	a.Step()
	a.Step()
	if _, ok := a.Resolve("Main/Late"); ok {
		t.Fatal("item resolved one frame early")
	}
	a.Step()
	if _, ok := a.Resolve("Main/Late"); !ok {
		t.Fatal("item missing after its frame")
	}
}

func TestNavFocusAndActivate(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	btn := win.Button("OK")

	pump(a,
		marionette.Event{Kind: marionette.EventNavFocus, Path: "Main/OK"},
	)
	info, _ := a.Resolve("Main/OK")
	if info.Flags&marionette.ItemStatusFocused == 0 {
		t.Fatal("nav focus did not land")
	}
	pump(a, marionette.Event{Kind: marionette.EventNavActivate})
	if btn.Clicks != 1 {
		t.Fatalf("nav activate Clicks = %d", btn.Clicks)
	}
}

func TestClickOnVoidDismissesPopups(t *testing.T) {
	a := New(800, 600)
	win := a.Window("Main", 40, 40, 320, 400)
	win.Combo("Mode", "Fast", "Slow")

	clickItem(t, a, "Main/Mode")
	if _, ok := a.Resolve("Main/Mode/Fast"); !ok {
		t.Fatal("combo did not open")
	}
	click(a, -1, -1)
	if _, ok := a.Resolve("Main/Mode/Fast"); ok {
		t.Fatal("void click left the popup open")
	}
}
