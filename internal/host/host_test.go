package host

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestKeyMapPoll(t *testing.T) {
	pressed := map[ebiten.Key]bool{
		ebiten.KeyX:      true,
		ebiten.KeyDigit4: true,
		ebiten.KeyV:      true,
	}

	keys := DefaultKeyMap.Poll(func(key ebiten.Key) bool { return pressed[key] })

	var expected cpu.Keys
	expected[0x0] = true
	expected[0xC] = true
	expected[0xF] = true
	assert.Equal(t, expected, keys)
}

func TestDefaultKeyMapUnique(t *testing.T) {
	seen := map[ebiten.Key]bool{}
	for _, key := range DefaultKeyMap {
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Len(t, seen, cpu.KeyCount)
}

func newGame(t *testing.T, program []byte) *Game {
	t.Helper()
	vm, err := cpu.New(program)
	assert.NoError(t, err)
	logger := log.NewTestLogger(t)
	r, err := runner.New(vm, logger, runner.Config{CyclesPerFrame: 5})
	assert.NoError(t, err)
	g, err := New(r, logger, Config{Scale: 4, KeyMap: DefaultKeyMap})
	assert.NoError(t, err)
	return g
}

func TestStep(t *testing.T) {
	// skp V0 / jp $200 / ld V1, $01 / jp $206
	g := newGame(t, []byte{0xE0, 0x9E, 0x12, 0x00, 0x61, 0x01, 0x12, 0x06})
	g.pressed = func(key ebiten.Key) bool { return key == ebiten.KeyX }

	assert.NoError(t, g.step())
	vm := g.runner.Interpreter()
	assert.Equal(t, uint8(1), vm.Register(1))
	assert.Equal(t, uint64(1), g.runner.Frames())

	g.paused = true
	assert.NoError(t, g.step())
	assert.Equal(t, uint64(1), g.runner.Frames())
	assert.Equal(t, "PAUSED", g.status(false))
}

func TestStepError(t *testing.T) {
	g := newGame(t, []byte{0x00, 0xEE})
	g.pressed = func(ebiten.Key) bool { return false }

	err := g.step()
	assert.ErrorContains(t, err, "executing frame 0")
}

func TestLayout(t *testing.T) {
	g := newGame(t, []byte{0x12, 0x00})
	w, h := g.Layout(1000, 1000)
	assert.Equal(t, display.Width*4, w)
	assert.Equal(t, display.Height*4, h)
	assert.Equal(t, "BEEP", g.status(true))
	assert.Equal(t, "", g.status(false))

	_, err := New(g.runner, log.NewTestLogger(t), Config{})
	assert.Error(t, err)
}
