package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/cpu"
)

// KeyMap maps the keypad keys 0-F to keyboard keys. The default places the
// 4x4 keypad on the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
type KeyMap [cpu.KeyCount]ebiten.Key

// DefaultKeyMap is the default keyboard layout.
var DefaultKeyMap = KeyMap{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Poll returns the keypad state using the given key state function.
func (m KeyMap) Poll(pressed func(ebiten.Key) bool) cpu.Keys {
	var keys cpu.Keys
	for i, key := range m {
		keys[i] = pressed(key)
	}
	return keys
}
