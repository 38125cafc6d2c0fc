package input

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key independently of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
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
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyShift
	KeyControl
	KeyAlt
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "Unknown",
	KeyA:          "A",
	KeyB:          "B",
	KeyC:          "C",
	KeyD:          "D",
	KeyE:          "E",
	KeyF:          "F",
	KeyG:          "G",
	KeyH:          "H",
	KeyI:          "I",
	KeyJ:          "J",
	KeyK:          "K",
	KeyL:          "L",
	KeyM:          "M",
	KeyN:          "N",
	KeyO:          "O",
	KeyP:          "P",
	KeyQ:          "Q",
	KeyR:          "R",
	KeyS:          "S",
	KeyT:          "T",
	KeyU:          "U",
	KeyV:          "V",
	KeyW:          "W",
	KeyX:          "X",
	KeyY:          "Y",
	KeyZ:          "Z",
	Key0:          "0",
	Key1:          "1",
	Key2:          "2",
	Key3:          "3",
	Key4:          "4",
	Key5:          "5",
	Key6:          "6",
	Key7:          "7",
	Key8:          "8",
	Key9:          "9",
	KeySpace:      "Space",
	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyShift:      "Shift",
	KeyControl:    "Control",
	KeyAlt:        "Alt",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey resolves a key name case-insensitively. "Up", "Down", "Left" and
// "Right" are accepted as aliases for the arrow keys.
func ParseKey(name string) (Key, error) {
	switch strings.ToLower(name) {
	case "up":
		return KeyArrowUp, nil
	case "down":
		return KeyArrowDown, nil
	case "left":
		return KeyArrowLeft, nil
	case "right":
		return KeyArrowRight, nil
	}

	for k := KeyA; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

// Mouse is a snapshot of the pointer state.
type Mouse struct {
	X, Y float32
	// Held reports buttons currently down.
	Held [mouseButtonCount]bool
	// JustPressed reports buttons that went down since the previous frame.
	JustPressed [mouseButtonCount]bool
}

// Pressed reports whether b went down this frame.
func (m Mouse) Pressed(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	return m.JustPressed[b]
}
