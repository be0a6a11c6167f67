package simui

import (
	"strconv"

	"github.com/phanxgames/marionette"
)

// Kind identifies what a UI item is and how it reacts to activation.
type Kind uint8

const (
	KindWindow      Kind = iota // top-level container with title bar and scrolling
	KindLabel                   // static text
	KindButton                  // counts clicks
	KindCheckbox                // toggles on activation
	KindTreeNode                // expands inline children on activation
	KindInputText               // focused on click, edited by typed characters
	KindInputInt                // like InputText, committed values parsed as int
	KindSlider                  // horizontal drag sets a float in [Min, Max]
	KindMenu                    // opens a dropdown of children on activation
	KindMenuItem                // leaf menu entry, optionally checkable
	KindCombo                   // opens a popup of options on activation
	KindComboOption             // selecting one sets the combo value and closes it
	KindTable                   // row of header cells below it
	KindHeader                  // clicking sets the table's sort column
	KindSpecial                 // window chrome: #TITLE, #COLLAPSE, #CLOSE, #RESIZE
)

// Item is one node of the simulated UI tree. Fields are plain state; the
// app recomputes layout and status flags from them on demand.
//
// Sibling names must be unique, since items are addressed by
// slash-separated paths.
type Item struct {
	Name string
	Kind Kind

	// Window placement in screen coordinates. Windows only.
	X, Y, W, H float64

	Text       string  // labels
	Value      string  // text inputs, combo selection, table sort column
	IntValue   int     // integer inputs
	FloatValue float64 // sliders
	Min, Max   float64 // slider range

	Checked   bool
	Opened    bool
	Closed    bool // window close box was clicked
	Collapsed bool // window shows only its title bar
	Disabled  bool

	// ShowAfterFrame hides the item until the app reaches the given
	// frame. Zero means always shown.
	ShowAfterFrame int

	// Clicks counts activations.
	Clicks int

	// OnActivate, when set, runs after the item reacts to an activation.
	OnActivate func(*Item)

	app       *App
	parent    *Item
	children  []*Item
	rect      marionette.Rect
	checkable bool

	scrollX, scrollY   float64 // windows
	contentW, contentH float64 // windows, content extent from last layout
}

func (it *Item) add(child *Item) *Item {
	child.app = it.app
	child.parent = it
	it.children = append(it.children, child)
	it.app.dirty = true
	return child
}

// Label adds a static text child.
func (it *Item) Label(name, text string) *Item {
	return it.add(&Item{Name: name, Kind: KindLabel, Text: text})
}

// Button adds a clickable child that counts its activations.
func (it *Item) Button(name string) *Item {
	return it.add(&Item{Name: name, Kind: KindButton})
}

// Checkbox adds a checkable child.
func (it *Item) Checkbox(name string, checked bool) *Item {
	return it.add(&Item{Name: name, Kind: KindCheckbox, Checked: checked, checkable: true})
}

// TreeNode adds a collapsible child whose own children lay out inline,
// indented, while it is open.
func (it *Item) TreeNode(name string) *Item {
	return it.add(&Item{Name: name, Kind: KindTreeNode})
}

// InputText adds a text field child.
func (it *Item) InputText(name, value string) *Item {
	return it.add(&Item{Name: name, Kind: KindInputText, Value: value})
}

// InputInt adds an integer field child. Committed text that does not
// parse as an integer leaves the value unchanged.
func (it *Item) InputInt(name string, value int) *Item {
	return it.add(&Item{Name: name, Kind: KindInputInt, IntValue: value})
}

// Slider adds a horizontal slider child with the given value and range.
func (it *Item) Slider(name string, value, min, max float64) *Item {
	return it.add(&Item{Name: name, Kind: KindSlider, FloatValue: value, Min: min, Max: max})
}

// Menu adds a menu child. Its children form the dropdown shown while the
// menu is open; nested menus open to the side.
func (it *Item) Menu(name string) *Item {
	return it.add(&Item{Name: name, Kind: KindMenu})
}

// MenuItem adds a leaf menu entry. Activating it closes the menu chain it
// belongs to.
func (it *Item) MenuItem(name string) *Item {
	return it.add(&Item{Name: name, Kind: KindMenuItem})
}

// MenuItemCheckable adds a checkable menu entry. Activating it toggles the
// check and keeps the menu open.
func (it *Item) MenuItemCheckable(name string, checked bool) *Item {
	mi := it.MenuItem(name)
	mi.Checked = checked
	mi.checkable = true
	return mi
}

// Combo adds a dropdown selector child with the given options. The first
// option starts selected.
func (it *Item) Combo(name string, options ...string) *Item {
	c := it.add(&Item{Name: name, Kind: KindCombo})
	for _, opt := range options {
		c.add(&Item{Name: opt, Kind: KindComboOption})
	}
	if len(options) > 0 {
		c.Value = options[0]
	}
	return c
}

// Table adds a table child with one header cell per column. Clicking a
// header stores its label as the table's value.
func (it *Item) Table(name string, columns ...string) *Item {
	t := it.add(&Item{Name: name, Kind: KindTable})
	for _, col := range columns {
		t.add(&Item{Name: col, Kind: KindHeader})
	}
	return t
}

// Path returns the item's slash-separated path from its window root.
func (it *Item) Path() string {
	if it.parent == nil {
		return it.Name
	}
	return it.parent.Path() + "/" + it.Name
}

func (it *Item) root() *Item {
	p := it
	for p.parent != nil {
		p = p.parent
	}
	return p
}

func (it *Item) child(name string) *Item {
	for _, ch := range it.children {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

func (it *Item) shown(frame int) bool {
	return it.ShowAfterFrame == 0 || frame >= it.ShowAfterFrame
}

// editText is the string the item's editor starts from when it gains
// focus.
func (it *Item) editText() string {
	if it.Kind == KindInputInt {
		return strconv.Itoa(it.IntValue)
	}
	return it.Value
}
