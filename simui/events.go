package simui

import (
	"strconv"
	"strings"

	"github.com/phanxgames/marionette"
)

func (a *App) applyEvent(ev marionette.Event) {
	switch ev.Kind {
	case marionette.EventPointerMove:
		a.pointerMove(ev.X, ev.Y)
	case marionette.EventPointerDown:
		a.pointerDown(ev.X, ev.Y, ev.Button)
	case marionette.EventPointerUp:
		a.pointerUp(ev.X, ev.Y, ev.Button)
	case marionette.EventWheel:
		a.wheel(ev.X, ev.Y, ev.WheelX, ev.WheelY)
	case marionette.EventKeyDown:
		a.keyDown(ev.Key, ev.Mods)
	case marionette.EventKeyUp:
		// No held-key state beyond the press itself.
	case marionette.EventChar:
		a.typeChar(ev.Ch)
	case marionette.EventNavFocus:
		if it := a.lookup(ev.Path); it != nil && a.resolvable(it) {
			a.blur(true)
			a.focus = it
		}
	case marionette.EventNavActivate:
		if a.focus != nil {
			a.activate(a.focus)
		}
	}
	a.dirty = true
}

func (a *App) pointerMove(x, y float64) {
	dx, dy := x-a.pointer.X, y-a.pointer.Y
	a.pointer = marionette.Vec2{X: x, Y: y}
	if !a.buttons[marionette.MouseButtonLeft] || a.pressItem == nil {
		return
	}
	switch a.pressItem.Kind {
	case KindSpecial:
		win := a.pressItem.parent
		switch a.pressItem.Name {
		case "#TITLE":
			win.X += dx
			win.Y += dy
		case "#RESIZE":
			win.W = max(win.W+dx, minWinW)
			win.H = max(win.H+dy, minWinH)
		}
	case KindSlider:
		a.slideTo(a.pressItem, x)
	}
}

func (a *App) pointerDown(x, y float64, btn marionette.MouseButton) {
	if int(btn) < len(a.buttons) {
		a.buttons[btn] = true
	}
	a.pointer = marionette.Vec2{X: x, Y: y}
	hit := a.hitTest(x, y)
	a.pressItem = hit
	if hit == nil {
		// Clicking empty space dismisses popups and clears focus.
		a.closePopups()
		a.blur(true)
		return
	}
	a.raise(hit.root())
	if hit.Kind == KindSlider && btn == marionette.MouseButtonLeft {
		a.slideTo(hit, x)
	}
}

func (a *App) pointerUp(x, y float64, btn marionette.MouseButton) {
	if int(btn) < len(a.buttons) {
		a.buttons[btn] = false
	}
	a.pointer = marionette.Vec2{X: x, Y: y}
	press := a.pressItem
	a.pressItem = nil
	if press == nil {
		return
	}
	hit := a.hitTest(x, y)
	switch {
	case hit == press:
		a.activate(press)
	case hit != nil:
		a.LastDrop.Src = press.Path()
		a.LastDrop.Dst = hit.Path()
	}
}

func (a *App) wheel(x, y, wx, wy float64) {
	a.pointer = marionette.Vec2{X: x, Y: y}
	win := a.windowAt(x, y)
	if win == nil || win.Collapsed {
		return
	}
	// Positive wheel values scroll toward the start of the content.
	win.scrollX = clamp(win.scrollX-wx*wheelScale, 0, maxScroll(win.contentW, win.W-2*pad))
	win.scrollY = clamp(win.scrollY-wy*wheelScale, 0, maxScroll(win.contentH, win.H-titleH-2*pad))
}

func (a *App) keyDown(key marionette.Key, mods marionette.KeyModifiers) {
	a.LastKey = marionette.Chord(key, mods)
	if !a.editing {
		return
	}
	switch {
	case key == marionette.KeyA && mods&marionette.ModCtrl != 0:
		a.selectAll = true
	case key == marionette.KeyEnter:
		a.commitEdit()
		a.blur(false)
	case key == marionette.KeyEscape:
		a.blur(false)
	case key == marionette.KeyBackspace:
		if a.selectAll {
			a.editBuf = ""
			a.selectAll = false
		} else if len(a.editBuf) > 0 {
			a.editBuf = a.editBuf[:len(a.editBuf)-1]
		}
	}
}

func (a *App) typeChar(ch rune) {
	if !a.editing {
		return
	}
	if a.selectAll {
		a.editBuf = ""
		a.selectAll = false
	}
	a.editBuf += string(ch)
}

// activate applies an item's click reaction.
func (a *App) activate(it *Item) {
	if it.Disabled {
		return
	}
	it.Clicks++
	switch it.Kind {
	case KindCheckbox:
		it.Checked = !it.Checked
	case KindTreeNode:
		it.Opened = !it.Opened
	case KindMenu:
		it.Opened = !it.Opened
		if it.Opened {
			a.closeSiblingMenus(it)
		}
	case KindMenuItem:
		if it.checkable {
			it.Checked = !it.Checked
		} else {
			a.closeMenuChain(it)
		}
	case KindCombo:
		it.Opened = !it.Opened
	case KindComboOption:
		combo := it.parent
		combo.Value = it.Name
		combo.Opened = false
	case KindInputText, KindInputInt:
		a.focusInput(it)
	case KindHeader:
		it.parent.Value = it.Name
	case KindSpecial:
		win := it.parent
		switch it.Name {
		case "#CLOSE":
			win.Closed = true
		case "#COLLAPSE":
			win.Collapsed = !win.Collapsed
		}
	}
	if it.OnActivate != nil {
		it.OnActivate(it)
	}
}

func (a *App) focusInput(it *Item) {
	if a.focus == it && a.editing {
		return
	}
	a.blur(true)
	a.focus = it
	a.editing = true
	a.editBuf = it.editText()
	a.selectAll = false
}

// blur drops keyboard focus. A commit writes an in-progress edit back to
// the item first; Enter commits explicitly and Escape discards, so both
// blur without one.
func (a *App) blur(commit bool) {
	if a.focus == nil {
		return
	}
	if a.editing && commit {
		a.commitEdit()
	}
	a.focus = nil
	a.editing = false
	a.editBuf = ""
	a.selectAll = false
}

func (a *App) commitEdit() {
	it := a.focus
	if it == nil || !a.editing {
		return
	}
	switch it.Kind {
	case KindInputText:
		it.Value = a.editBuf
	case KindInputInt:
		if n, err := strconv.Atoi(strings.TrimSpace(a.editBuf)); err == nil {
			it.IntValue = n
		}
	}
}

func (a *App) slideTo(s *Item, x float64) {
	if s.rect.Width <= 0 {
		return
	}
	t := clamp((x-s.rect.X)/s.rect.Width, 0, 1)
	s.FloatValue = s.Min + t*(s.Max-s.Min)
}

// closePopups closes every open menu and combo.
func (a *App) closePopups() {
	for _, win := range a.windows {
		closePopupsIn(win)
	}
}

func closePopupsIn(it *Item) {
	for _, ch := range it.children {
		if ch.Kind == KindMenu || ch.Kind == KindCombo {
			ch.Opened = false
		}
		closePopupsIn(ch)
	}
}

// closeSiblingMenus closes other open menus next to the one just opened,
// so only one dropdown chain shows at a time.
func (a *App) closeSiblingMenus(menu *Item) {
	if menu.parent == nil {
		return
	}
	for _, sib := range menu.parent.children {
		if sib != menu && sib.Kind == KindMenu {
			sib.Opened = false
		}
	}
}

// closeMenuChain closes the menus a just-clicked leaf entry hangs from.
func (a *App) closeMenuChain(it *Item) {
	for p := it.parent; p != nil && p.Kind == KindMenu; p = p.parent {
		p.Opened = false
	}
}

// hitTest returns the topmost item under (x, y), or nil over empty space.
// Popup content wins over everything else; among windows, the frontmost
// containing the point wins, and within a window the deepest item wins.
func (a *App) hitTest(x, y float64) *Item {
	a.ensureLayout()
	for i := len(a.windows) - 1; i >= 0; i-- {
		win := a.windows[i]
		if !a.resolvable(win) {
			continue
		}
		if hit := a.hitPopup(win, x, y); hit != nil {
			return hit
		}
	}
	for i := len(a.windows) - 1; i >= 0; i-- {
		win := a.windows[i]
		if !a.resolvable(win) || !win.rect.Contains(x, y) {
			continue
		}
		if hit := a.hitChildren(win, x, y); hit != nil {
			return hit
		}
		return win
	}
	return nil
}

func (a *App) hitChildren(it *Item, x, y float64) *Item {
	for i := len(it.children) - 1; i >= 0; i-- {
		ch := it.children[i]
		if !a.resolvable(ch) {
			continue
		}
		if hit := a.hitChildren(ch, x, y); hit != nil {
			return hit
		}
		if a.visible(ch) && ch.rect.Contains(x, y) {
			return ch
		}
	}
	return nil
}

func (a *App) hitPopup(it *Item, x, y float64) *Item {
	for i := len(it.children) - 1; i >= 0; i-- {
		ch := it.children[i]
		if !a.resolvable(ch) {
			continue
		}
		if hit := a.hitPopup(ch, x, y); hit != nil {
			return hit
		}
		if inPopup(ch) && ch.rect.Contains(x, y) {
			return ch
		}
	}
	return nil
}

// inPopup reports whether the item is direct popup content: a child of an
// open menu or combo.
func inPopup(it *Item) bool {
	p := it.parent
	return p != nil && (p.Kind == KindMenu || p.Kind == KindCombo)
}

// windowAt returns the frontmost window containing the point.
func (a *App) windowAt(x, y float64) *Item {
	a.ensureLayout()
	for i := len(a.windows) - 1; i >= 0; i-- {
		win := a.windows[i]
		if a.resolvable(win) && win.rect.Contains(x, y) {
			return win
		}
	}
	return nil
}
