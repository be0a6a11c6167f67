package simui

import "github.com/phanxgames/marionette"

// ensureLayout recomputes every item rectangle if anything changed since
// the last pass. Content is laid out in window-local coordinates first, so
// the content extent is known before scroll offsets are clamped and
// applied.
func (a *App) ensureLayout() {
	if !a.dirty {
		return
	}
	a.dirty = false
	for _, win := range a.windows {
		if win.Closed || !win.shown(a.frame) {
			continue
		}
		if win.Collapsed {
			win.rect = marionette.Rect{X: win.X, Y: win.Y, Width: win.W, Height: titleH}
		} else {
			win.rect = marionette.Rect{X: win.X, Y: win.Y, Width: win.W, Height: win.H}
		}
		a.layoutChrome(win)
		if win.Collapsed {
			continue
		}
		var ext marionette.Vec2
		a.layoutChildren(win, 0, 0, &ext)
		win.contentW, win.contentH = ext.X, ext.Y
		win.scrollX = clamp(win.scrollX, 0, maxScroll(ext.X, win.W-2*pad))
		win.scrollY = clamp(win.scrollY, 0, maxScroll(ext.Y, win.H-titleH-2*pad))
		translate(win, win.X+pad-win.scrollX, win.Y+titleH+pad-win.scrollY)
	}
}

// layoutChrome positions the window's title bar parts and resize grip in
// screen coordinates. Chrome is never scrolled.
func (a *App) layoutChrome(win *Item) {
	for _, ch := range win.children {
		if ch.Kind != KindSpecial {
			continue
		}
		switch ch.Name {
		case "#TITLE":
			ch.rect = marionette.Rect{X: win.X, Y: win.Y, Width: win.W - 2*titleH, Height: titleH}
		case "#COLLAPSE":
			ch.rect = marionette.Rect{X: win.X + win.W - 2*titleH, Y: win.Y, Width: titleH, Height: titleH}
		case "#CLOSE":
			ch.rect = marionette.Rect{X: win.X + win.W - titleH, Y: win.Y, Width: titleH, Height: titleH}
		case "#RESIZE":
			ch.rect = marionette.Rect{
				X: win.X + win.W - gripSize, Y: win.Y + win.H - gripSize,
				Width: gripSize, Height: gripSize,
			}
		}
	}
}

// layoutChildren stacks the shown children of parent downward from (x, y)
// in content-local coordinates and returns the y below the last row. Open
// tree nodes lay their children inline, indented; menu dropdowns and
// combo popups are overlays and advance neither the stack nor the content
// extent.
func (a *App) layoutChildren(parent *Item, x, y float64, ext *marionette.Vec2) float64 {
	for _, ch := range parent.children {
		if ch.Kind == KindSpecial || !ch.shown(a.frame) {
			continue
		}
		ch.rect = marionette.Rect{X: x, Y: y, Width: rowW, Height: rowH}
		grow(ext, x+rowW, y+rowH)
		y += rowH
		switch ch.Kind {
		case KindTable:
			hx := x
			for _, h := range ch.children {
				h.rect = marionette.Rect{X: hx, Y: y, Width: colW, Height: rowH}
				grow(ext, hx+colW, y+rowH)
				hx += colW
			}
			y += rowH
		case KindTreeNode:
			if ch.Opened {
				y = a.layoutChildren(ch, x+indent, y, ext)
			}
		case KindMenu:
			if ch.Opened {
				// Dropdowns cascade to the side, top-aligned with their
				// row, so they never cover sibling entries.
				a.layoutChildren(ch, x+rowW, y-rowH, nil)
			}
		case KindCombo:
			if ch.Opened {
				a.layoutChildren(ch, x+indent, y, nil)
			}
		}
	}
	return y
}

// translate shifts every non-chrome descendant rect from content-local to
// screen coordinates.
func translate(it *Item, dx, dy float64) {
	for _, ch := range it.children {
		if ch.Kind == KindSpecial {
			continue
		}
		ch.rect.X += dx
		ch.rect.Y += dy
		translate(ch, dx, dy)
	}
}

// contentViewport is the window area below the title bar, in screen
// coordinates.
func contentViewport(win *Item) marionette.Rect {
	return marionette.Rect{X: win.X, Y: win.Y + titleH, Width: win.W, Height: win.H - titleH}
}

func grow(ext *marionette.Vec2, right, bottom float64) {
	if ext == nil {
		return
	}
	if right > ext.X {
		ext.X = right
	}
	if bottom > ext.Y {
		ext.Y = bottom
	}
}

func maxScroll(content, view float64) float64 {
	if content <= view {
		return 0
	}
	return content - view
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
