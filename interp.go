package marionette

import (
	"context"
	"math"
)

// run replays the script's commands against ctx, strictly in append order.
// The error flag is checked before every command: the first failure stops
// the run, whether it was raised by an assertion below or by the context
// itself during a delegated interaction. The next run of the same test
// starts fresh.
func (s *Script) run(ctx *Context) {
	for i := range s.cmds {
		if ctx.Failed() {
			return
		}
		cmd := &s.cmds[i]
		ctx.traceCmd(i, cmd)
		execCmd(ctx, cmd)
	}
}

// execCmd marshals one command's generic fields back into typed arguments
// and dispatches it. Interaction kinds delegate to a context primitive;
// assertion and wait kinds are handled here.
func execCmd(ctx *Context, cmd *Cmd) {
	switch cmd.Kind {
	case CmdSetRef:
		ctx.SetRef(cmd.A)
	case CmdItemClick:
		ctx.ItemClick(cmd.A, MouseButton(cmd.I))
	case CmdItemDoubleClick:
		ctx.ItemDoubleClick(cmd.A, MouseButton(cmd.I))
	case CmdItemCheck:
		ctx.ItemCheck(cmd.A)
	case CmdItemUncheck:
		ctx.ItemUncheck(cmd.A)
	case CmdItemOpen:
		ctx.ItemOpen(cmd.A)
	case CmdItemClose:
		ctx.ItemClose(cmd.A)
	case CmdItemOpenAll:
		ctx.ItemOpenAll(cmd.A)
	case CmdItemCloseAll:
		ctx.ItemCloseAll(cmd.A)
	case CmdItemInputInt:
		ctx.ItemInputInt(cmd.A, cmd.I)
	case CmdItemInputStr:
		ctx.ItemInputStr(cmd.A, cmd.B)
	case CmdItemHold:
		ctx.ItemHold(cmd.A, cmd.I)
	case CmdItemDragWithDelta:
		ctx.ItemDragWithDelta(cmd.A, cmd.F, cmd.G)
	case CmdItemDragAndDrop:
		ctx.ItemDragAndDrop(cmd.A, cmd.B)
	case CmdItemDragOverAndHold:
		ctx.ItemDragOverAndHold(cmd.A, cmd.B)
	case CmdMouseMove:
		ctx.MouseMove(cmd.A)
	case CmdMouseMoveToPos:
		ctx.MouseMoveToPos(cmd.F, cmd.G)
	case CmdMouseTeleportToPos:
		ctx.MouseTeleportToPos(cmd.F, cmd.G)
	case CmdMouseMoveToVoid:
		ctx.MouseMoveToVoid()
	case CmdMouseClick:
		ctx.MouseClick(MouseButton(cmd.I))
	case CmdMouseClickMulti:
		ctx.MouseClickMulti(MouseButton(cmd.I), cmd.J)
	case CmdMouseDoubleClick:
		ctx.MouseDoubleClick(MouseButton(cmd.I))
	case CmdMouseDown:
		ctx.MouseDown(MouseButton(cmd.I))
	case CmdMouseUp:
		ctx.MouseUp(MouseButton(cmd.I))
	case CmdMouseClickOnVoid:
		ctx.MouseClickOnVoid(MouseButton(cmd.I))
	case CmdMouseWheelX:
		ctx.MouseWheelX(cmd.F)
	case CmdMouseWheelY:
		ctx.MouseWheelY(cmd.F)
	case CmdKeyDown:
		ctx.KeyDown(KeyChord(cmd.I))
	case CmdKeyUp:
		ctx.KeyUp(KeyChord(cmd.I))
	case CmdKeyPress:
		ctx.KeyPress(KeyChord(cmd.I))
	case CmdKeyHold:
		ctx.KeyHold(KeyChord(cmd.I), cmd.J)
	case CmdKeyChars:
		ctx.KeyChars(cmd.B)
	case CmdKeyCharsAppend:
		ctx.KeyCharsAppend(cmd.B)
	case CmdKeyCharsAppendEnter:
		ctx.KeyCharsAppendEnter(cmd.B)
	case CmdKeyCharsReplace:
		ctx.KeyCharsReplace(cmd.B)
	case CmdKeyCharsReplaceEnter:
		ctx.KeyCharsReplaceEnter(cmd.B)
	case CmdScrollToItemX:
		ctx.ScrollToItemX(cmd.A)
	case CmdScrollToItemY:
		ctx.ScrollToItemY(cmd.A)
	case CmdScrollToTop:
		ctx.ScrollToTop(cmd.A)
	case CmdScrollToBottom:
		ctx.ScrollToBottom(cmd.A)
	case CmdMenuClick:
		ctx.MenuClick(cmd.A)
	case CmdMenuCheck:
		ctx.MenuCheck(cmd.A)
	case CmdMenuUncheck:
		ctx.MenuUncheck(cmd.A)
	case CmdComboClick:
		ctx.ComboClick(cmd.A)
	case CmdComboClickAll:
		ctx.ComboClickAll(cmd.A)
	case CmdTableClickHeader:
		ctx.TableClickHeader(cmd.A, cmd.B, MouseButton(cmd.I))
	case CmdWindowClose:
		ctx.WindowClose(cmd.A)
	case CmdWindowCollapse:
		ctx.WindowCollapse(cmd.A, cmd.I != 0)
	case CmdWindowFocus:
		ctx.WindowFocus(cmd.A)
	case CmdWindowBringToFront:
		ctx.WindowBringToFront(cmd.A)
	case CmdWindowMove:
		ctx.WindowMove(cmd.A, cmd.F, cmd.G)
	case CmdWindowResize:
		ctx.WindowResize(cmd.A, cmd.F, cmd.G)
	case CmdNavMoveTo:
		ctx.NavMoveTo(cmd.A)
	case CmdNavActivate:
		ctx.NavActivate()
	case CmdSleep:
		ctx.Sleep(cmd.F)
	case CmdCaptureScreenshot:
		ctx.CaptureScreenshot(cmd.A)
	case CmdAssertItemExists:
		assertItemExists(ctx, cmd.A)
	case CmdAssertItemVisible:
		assertItemFlag(ctx, cmd.A, ItemStatusVisible, "visible")
	case CmdAssertItemChecked:
		assertItemFlag(ctx, cmd.A, ItemStatusChecked, "checked")
	case CmdAssertItemOpened:
		assertItemFlag(ctx, cmd.A, ItemStatusOpened, "opened")
	case CmdAssertItemReadIntEq:
		assertItemReadIntEq(ctx, cmd.A, cmd.I)
	case CmdAssertItemReadStrEq:
		assertItemReadStrEq(ctx, cmd.A, cmd.B)
	case CmdAssertItemReadFloatEq:
		assertItemReadFloatEq(ctx, cmd.A, cmd.F, cmd.G)
	case CmdWaitForItemExists:
		waitForItem(ctx, cmd.A, cmd.I, 0, "")
	case CmdWaitForItemVisible:
		waitForItem(ctx, cmd.A, cmd.I, ItemStatusVisible, "visible")
	case CmdWaitForItemChecked:
		waitForItem(ctx, cmd.A, cmd.I, ItemStatusChecked, "checked")
	case CmdWaitForItemOpened:
		waitForItem(ctx, cmd.A, cmd.I, ItemStatusOpened, "opened")
	case CmdYield:
		ctx.Yield(cmd.I)
	default:
		ctx.Errorf("unknown command kind %d", cmd.Kind)
	}
}

// assertItemExists flags a failure unless the item at ref resolves.
func assertItemExists(ctx *Context, ref string) {
	path := ctx.resolvePath(ref)
	if _, ok := ctx.sur.Resolve(path); !ok {
		ctx.Errorf("item %q does not exist", path)
	}
}

// assertItemFlag flags a failure unless the item at ref resolves and
// carries the given status flag. The existence check comes first so a
// missing item reports as missing, not as lacking the flag.
func assertItemFlag(ctx *Context, ref string, flag ItemStatus, what string) {
	path := ctx.resolvePath(ref)
	info, ok := ctx.sur.Resolve(path)
	if !ok {
		ctx.Errorf("item %q does not exist", path)
		return
	}
	if info.Flags&flag == 0 {
		ctx.Errorf("item %q is not %s", path, what)
	}
}

func assertItemReadIntEq(ctx *Context, ref string, expected int) {
	path := ctx.resolvePath(ref)
	got, ok := ctx.sur.ReadInt(path)
	if !ok {
		ctx.Errorf("unable to read item %q as int", path)
		return
	}
	if got != expected {
		ctx.Errorf("item %q int value = %d, expected %d", path, got, expected)
	}
}

func assertItemReadStrEq(ctx *Context, ref, expected string) {
	path := ctx.resolvePath(ref)
	got, ok := ctx.sur.ReadStr(path)
	if !ok {
		ctx.Errorf("unable to read item %q as string", path)
		return
	}
	if got != expected {
		ctx.Errorf("item %q text = %q, expected %q", path, got, expected)
	}
}

// assertItemReadFloatEq compares with an inclusive absolute-difference
// bound: |got-expected| <= |epsilon| passes, so an epsilon of zero demands
// exact equality and a difference landing exactly on epsilon still passes.
func assertItemReadFloatEq(ctx *Context, ref string, expected, epsilon float64) {
	path := ctx.resolvePath(ref)
	got, ok := ctx.sur.ReadFloat(path)
	if !ok {
		ctx.Errorf("unable to read item %q as float", path)
		return
	}
	if diff := math.Abs(got - expected); diff > math.Abs(epsilon) {
		ctx.Errorf("item %q float value = %g, expected %g (eps=%g)", path, got, expected, epsilon)
	}
}

// waitForItem polls for the item at ref to resolve (and, when flag is
// nonzero, to carry the flag), advancing one frame between attempts, up to
// maxFrames advances. Budgets below 1 behave as 1 so there is always one
// check. The error flag is re-checked after every advance so a failure
// raised mid-wait aborts immediately instead of spinning out the budget.
func waitForItem(ctx *Context, ref string, maxFrames int, flag ItemStatus, what string) {
	if maxFrames < 1 {
		maxFrames = 1
	}
	path := ctx.resolvePath(ref)
	for n := 0; n < maxFrames; n++ {
		if itemHasFlag(ctx, path, flag) {
			return
		}
		ctx.Yield(1)
		if ctx.Failed() {
			return
		}
	}
	if itemHasFlag(ctx, path, flag) {
		return
	}
	if what == "" {
		ctx.Errorf("timed out waiting for item %q (max_frames=%d)", path, maxFrames)
	} else {
		ctx.Errorf("timed out waiting for %s item %q (max_frames=%d)", what, path, maxFrames)
	}
}

func itemHasFlag(ctx *Context, path string, flag ItemStatus) bool {
	info, ok := ctx.sur.Resolve(path)
	return ok && info.Flags&flag == flag
}

// traceCmd logs one command at trace verbosity before it executes.
func (c *Context) traceCmd(index int, cmd *Cmd) {
	c.log.Log(context.Background(), LevelTrace, cmd.String(), "index", index)
}
