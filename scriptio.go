package marionette

import (
	"encoding/json"
	"fmt"
	"os"
)

// kindNames maps every command kind to its op name. The names are shared
// by the JSON script format, the JS builder API, and trace output, so they
// never change once released.
var kindNames = [cmdKindCount]string{
	CmdSetRef:                "setRef",
	CmdItemClick:             "itemClick",
	CmdItemDoubleClick:       "itemDoubleClick",
	CmdItemCheck:             "itemCheck",
	CmdItemUncheck:           "itemUncheck",
	CmdItemOpen:              "itemOpen",
	CmdItemClose:             "itemClose",
	CmdItemOpenAll:           "itemOpenAll",
	CmdItemCloseAll:          "itemCloseAll",
	CmdItemInputInt:          "itemInputInt",
	CmdItemInputStr:          "itemInputStr",
	CmdItemHold:              "itemHold",
	CmdItemDragWithDelta:     "itemDragWithDelta",
	CmdItemDragAndDrop:       "itemDragAndDrop",
	CmdItemDragOverAndHold:   "itemDragOverAndHold",
	CmdMouseMove:             "mouseMove",
	CmdMouseMoveToPos:        "mouseMoveToPos",
	CmdMouseTeleportToPos:    "mouseTeleportToPos",
	CmdMouseMoveToVoid:       "mouseMoveToVoid",
	CmdMouseClick:            "mouseClick",
	CmdMouseClickMulti:       "mouseClickMulti",
	CmdMouseDoubleClick:      "mouseDoubleClick",
	CmdMouseDown:             "mouseDown",
	CmdMouseUp:               "mouseUp",
	CmdMouseClickOnVoid:      "mouseClickOnVoid",
	CmdMouseWheelX:           "mouseWheelX",
	CmdMouseWheelY:           "mouseWheelY",
	CmdKeyDown:               "keyDown",
	CmdKeyUp:                 "keyUp",
	CmdKeyPress:              "keyPress",
	CmdKeyHold:               "keyHold",
	CmdKeyChars:              "keyChars",
	CmdKeyCharsAppend:        "keyCharsAppend",
	CmdKeyCharsAppendEnter:   "keyCharsAppendEnter",
	CmdKeyCharsReplace:       "keyCharsReplace",
	CmdKeyCharsReplaceEnter:  "keyCharsReplaceEnter",
	CmdScrollToItemX:         "scrollToItemX",
	CmdScrollToItemY:         "scrollToItemY",
	CmdScrollToTop:           "scrollToTop",
	CmdScrollToBottom:        "scrollToBottom",
	CmdMenuClick:             "menuClick",
	CmdMenuCheck:             "menuCheck",
	CmdMenuUncheck:           "menuUncheck",
	CmdComboClick:            "comboClick",
	CmdComboClickAll:         "comboClickAll",
	CmdTableClickHeader:      "tableClickHeader",
	CmdWindowClose:           "windowClose",
	CmdWindowCollapse:        "windowCollapse",
	CmdWindowFocus:           "windowFocus",
	CmdWindowBringToFront:    "windowBringToFront",
	CmdWindowMove:            "windowMove",
	CmdWindowResize:          "windowResize",
	CmdNavMoveTo:             "navMoveTo",
	CmdNavActivate:           "navActivate",
	CmdSleep:                 "sleep",
	CmdCaptureScreenshot:     "captureScreenshot",
	CmdAssertItemExists:      "assertItemExists",
	CmdAssertItemVisible:     "assertItemVisible",
	CmdAssertItemChecked:     "assertItemChecked",
	CmdAssertItemOpened:      "assertItemOpened",
	CmdAssertItemReadIntEq:   "assertItemReadIntEq",
	CmdAssertItemReadStrEq:   "assertItemReadStrEq",
	CmdAssertItemReadFloatEq: "assertItemReadFloatEq",
	CmdWaitForItemExists:     "waitForItemExists",
	CmdWaitForItemVisible:    "waitForItemVisible",
	CmdWaitForItemChecked:    "waitForItemChecked",
	CmdWaitForItemOpened:     "waitForItemOpened",
	CmdYield:                 "yield",
}

// opKinds is the reverse of kindNames, for decoding script files.
var opKinds = make(map[string]CmdKind, cmdKindCount)

func init() {
	for k, name := range kindNames {
		opKinds[name] = CmdKind(k)
	}
}

func kindName(k CmdKind) string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("cmd(%d)", k)
}

// scriptFile is the on-disk form of a recorded script.
type scriptFile struct {
	Category string      `json:"category"`
	Name     string      `json:"name"`
	Commands []scriptCmd `json:"commands"`
}

// scriptCmd is one command in a script file. The payload fields mirror
// [Cmd]; fields an op does not use are omitted.
type scriptCmd struct {
	Op   string  `json:"op"`
	Ref  string  `json:"ref,omitempty"`
	Text string  `json:"text,omitempty"`
	I    int     `json:"i,omitempty"`
	J    int     `json:"j,omitempty"`
	F    float64 `json:"f,omitempty"`
	G    float64 `json:"g,omitempty"`
}

// ParseScript decodes a script from its JSON form and returns it together
// with the name recorded in the file. The caller owns the returned script
// until it is registered.
func ParseScript(data []byte) (*Script, string, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse script: %w", err)
	}
	if f.Category == "" {
		return nil, "", fmt.Errorf("parse script: missing category")
	}
	if f.Name == "" {
		return nil, "", fmt.Errorf("parse script: missing name")
	}
	if len(f.Commands) == 0 {
		return nil, "", fmt.Errorf("parse script %q: no commands", f.Name)
	}
	s := NewScript(f.Category)
	for i, c := range f.Commands {
		kind, ok := opKinds[c.Op]
		if !ok {
			s.Discard()
			return nil, "", fmt.Errorf("parse script %q: unknown op %q at index %d", f.Name, c.Op, i)
		}
		s.push(Cmd{Kind: kind, A: c.Ref, B: c.Text, I: c.I, J: c.J, F: c.F, G: c.G})
	}
	return s, f.Name, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// MarshalScript encodes a script to its JSON form under the given name.
func MarshalScript(name string, s *Script) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal script: nil script")
	}
	f := scriptFile{
		Category: s.Category,
		Name:     name,
		Commands: make([]scriptCmd, 0, len(s.cmds)),
	}
	for _, c := range s.cmds {
		f.Commands = append(f.Commands, scriptCmd{
			Op: kindName(c.Kind), Ref: c.A, Text: c.B, I: c.I, J: c.J, F: c.F, G: c.G,
		})
	}
	return json.MarshalIndent(&f, "", "  ")
}

// SaveScript writes a script to a JSON file under the given name.
func SaveScript(path, name string, s *Script) error {
	data, err := MarshalScript(name, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save script: %w", err)
	}
	return nil
}

// RegisterScriptFile loads a script file and registers it under the
// category and name recorded in the file.
func (e *Engine) RegisterScriptFile(path string) (*Test, error) {
	s, name, err := LoadScript(path)
	if err != nil {
		return nil, err
	}
	return e.RegisterScript(s.Category, name, s), nil
}
