package display

import (
	"errors"
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// setPixels returns the coordinates of all set pixels as [x, y] pairs.
func setPixels(s *Screen) [][2]int {
	var result [][2]int
	for y := range Height {
		for x := range Width {
			if s.pixels[y*Width+x] {
				result = append(result, [2]int{x, y})
			}
		}
	}
	return result
}

func TestDrawSpriteEmpty(t *testing.T) {
	s := New()
	assert.False(t, s.DrawSprite(0, 0, nil))
	assert.Len(t, setPixels(s), 0)
}

func TestDrawSpriteSimple(t *testing.T) {
	s := New()
	collision := s.DrawSprite(1, 1, []byte{0b1100_1100, 0b0011_0011})
	assert.False(t, collision)

	expected := [][2]int{
		{1, 1}, {2, 1}, {5, 1}, {6, 1},
		{3, 2}, {4, 2}, {7, 2}, {8, 2},
	}
	assert.Equal(t, expected, setPixels(s))
}

func TestDrawSpriteOverlap(t *testing.T) {
	// XX.   ...   XX.
	// XX. + .XX = X.X
	// ...   .XX   .XX
	s := New()
	assert.False(t, s.DrawSprite(0, 0, []byte{0b1100_0000, 0b1100_0000}))
	assert.True(t, s.DrawSprite(0, 0, []byte{0b0000_0000, 0b0110_0000, 0b0110_0000}))

	expected := [][2]int{
		{0, 0}, {1, 0},
		{0, 1}, {2, 1},
		{1, 2}, {2, 2},
	}
	assert.Equal(t, expected, setPixels(s))
}

func TestDrawSpriteNoOverlap(t *testing.T) {
	// XXX   ...   XXX
	// X.X + .X. = XXX
	// XXX   ...   XXX
	s := New()
	assert.False(t, s.DrawSprite(0, 0, []byte{0b1110_0000, 0b1010_0000, 0b1110_0000}))
	assert.False(t, s.DrawSprite(0, 0, []byte{0b0000_0000, 0b0100_0000}))
	assert.Len(t, setPixels(s), 9)
}

func TestDrawSpriteTwiceErases(t *testing.T) {
	s := New()
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

	assert.False(t, s.DrawSprite(10, 5, sprite))
	assert.Len(t, setPixels(s), 14)

	assert.True(t, s.DrawSprite(10, 5, sprite))
	assert.Len(t, setPixels(s), 0)
}

func TestDrawSpriteClipsAtEdge(t *testing.T) {
	s := New()
	sprite := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.False(t, s.DrawSprite(62, 30, sprite))

	expected := [][2]int{{62, 30}, {63, 30}, {62, 31}, {63, 31}}
	assert.Equal(t, expected, setPixels(s))
}

func TestDrawSpriteWrapsAnchor(t *testing.T) {
	s := New()
	assert.False(t, s.DrawSprite(Width+1, Height+2, []byte{0x80}))
	assert.Equal(t, [][2]int{{1, 2}}, setPixels(s))

	s.Clear()
	// a wrapped anchor near the edge is still clipped, not wrapped mid-sprite
	assert.False(t, s.DrawSprite(Width*2+60, 0, []byte{0xFF}))
	assert.Equal(t, [][2]int{{60, 0}, {61, 0}, {62, 0}, {63, 0}}, setPixels(s))
}

func TestClear(t *testing.T) {
	s := New()
	s.DrawSprite(0, 0, []byte{0xFF, 0xFF})
	s.Clear()
	assert.Len(t, setPixels(s), 0)
}

func TestPixel(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetPixel(63, 31, true))

	set, err := s.Pixel(63, 31)
	assert.NoError(t, err)
	assert.True(t, set)

	set, err = s.Pixel(0, 0)
	assert.NoError(t, err)
	assert.False(t, set)

	tests := []struct {
		name string
		x, y int
	}{
		{name: "x too large", x: Width, y: 0},
		{name: "y too large", x: 0, y: Height},
		{name: "negative x", x: -1, y: 0},
		{name: "negative y", x: 0, y: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Pixel(tt.x, tt.y)
			assert.True(t, errors.Is(err, ErrOutOfBounds))
			err = s.SetPixel(tt.x, tt.y, true)
			assert.True(t, errors.Is(err, ErrOutOfBounds))
		})
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := New()
	snapshot := s.Snapshot()
	snapshot[0] = true

	set, err := s.Pixel(0, 0)
	assert.NoError(t, err)
	assert.False(t, set)
}

func TestRGBA(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetPixel(1, 0, true))

	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	pix := s.RGBA(on, off)

	assert.Len(t, pix, Width*Height*4)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, pix[0:4])
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, pix[4:8])
}
