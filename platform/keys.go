package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/warpcore/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA:            input.KeyA,
	ebiten.KeyB:            input.KeyB,
	ebiten.KeyC:            input.KeyC,
	ebiten.KeyD:            input.KeyD,
	ebiten.KeyE:            input.KeyE,
	ebiten.KeyF:            input.KeyF,
	ebiten.KeyG:            input.KeyG,
	ebiten.KeyH:            input.KeyH,
	ebiten.KeyI:            input.KeyI,
	ebiten.KeyJ:            input.KeyJ,
	ebiten.KeyK:            input.KeyK,
	ebiten.KeyL:            input.KeyL,
	ebiten.KeyM:            input.KeyM,
	ebiten.KeyN:            input.KeyN,
	ebiten.KeyO:            input.KeyO,
	ebiten.KeyP:            input.KeyP,
	ebiten.KeyQ:            input.KeyQ,
	ebiten.KeyR:            input.KeyR,
	ebiten.KeyS:            input.KeyS,
	ebiten.KeyT:            input.KeyT,
	ebiten.KeyU:            input.KeyU,
	ebiten.KeyV:            input.KeyV,
	ebiten.KeyW:            input.KeyW,
	ebiten.KeyX:            input.KeyX,
	ebiten.KeyY:            input.KeyY,
	ebiten.KeyZ:            input.KeyZ,
	ebiten.KeyDigit0:       input.Key0,
	ebiten.KeyDigit1:       input.Key1,
	ebiten.KeyDigit2:       input.Key2,
	ebiten.KeyDigit3:       input.Key3,
	ebiten.KeyDigit4:       input.Key4,
	ebiten.KeyDigit5:       input.Key5,
	ebiten.KeyDigit6:       input.Key6,
	ebiten.KeyDigit7:       input.Key7,
	ebiten.KeyDigit8:       input.Key8,
	ebiten.KeyDigit9:       input.Key9,
	ebiten.KeySpace:        input.KeySpace,
	ebiten.KeyEnter:        input.KeyEnter,
	ebiten.KeyEscape:       input.KeyEscape,
	ebiten.KeyTab:          input.KeyTab,
	ebiten.KeyBackspace:    input.KeyBackspace,
	ebiten.KeyShiftLeft:    input.KeyShift,
	ebiten.KeyShiftRight:   input.KeyShift,
	ebiten.KeyControlLeft:  input.KeyControl,
	ebiten.KeyControlRight: input.KeyControl,
	ebiten.KeyAltLeft:      input.KeyAlt,
	ebiten.KeyAltRight:     input.KeyAlt,
	ebiten.KeyArrowUp:      input.KeyArrowUp,
	ebiten.KeyArrowDown:    input.KeyArrowDown,
	ebiten.KeyArrowLeft:    input.KeyArrowLeft,
	ebiten.KeyArrowRight:   input.KeyArrowRight,
	ebiten.KeyF1:           input.KeyF1,
	ebiten.KeyF2:           input.KeyF2,
	ebiten.KeyF3:           input.KeyF3,
	ebiten.KeyF4:           input.KeyF4,
}

var mouseMap = map[ebiten.MouseButton]input.MouseButton{
	ebiten.MouseButtonLeft:   input.MouseLeft,
	ebiten.MouseButtonRight:  input.MouseRight,
	ebiten.MouseButtonMiddle: input.MouseMiddle,
}

// poller turns ebiten's per-frame key edges into tracker events.
type poller struct {
	keys []ebiten.Key
}

func (p *poller) poll(t *input.Tracker) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, ek := range p.keys {
		if k, ok := keyMap[ek]; ok {
			t.Press(k)
		}
	}

	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, ek := range p.keys {
		k, ok := keyMap[ek]
		if !ok {
			continue
		}
		// Shift, Control and Alt have two physical keys.
		if !anyHeld(k) {
			t.Release(k)
		}
	}

	x, y := ebiten.CursorPosition()
	t.SetMousePosition(float32(x), float32(y))

	for eb, b := range mouseMap {
		if inpututil.IsMouseButtonJustPressed(eb) {
			t.PressMouse(b)
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			t.ReleaseMouse(b)
		}
	}
}

func anyHeld(k input.Key) bool {
	for ek, mapped := range keyMap {
		if mapped == k && ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}
