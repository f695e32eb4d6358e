// Package display implements the monochrome CHIP-8 framebuffer.
package display

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// Width is the horizontal resolution in pixels.
	Width = 64
	// Height is the vertical resolution in pixels.
	Height = 32

	spriteWidth = 8
)

// ErrOutOfBounds is returned for pixel coordinates outside of the screen.
var ErrOutOfBounds = errors.New("pixel coordinate out of bounds")

// View is the read-only access to a framebuffer that is handed out to hosts.
type View interface {
	// Pixel returns whether the pixel at the given coordinate is set.
	Pixel(x, y int) (bool, error)
	// Snapshot returns a copy of all pixels in row-major order.
	Snapshot() [Width * Height]bool
	// RGBA expands the pixels into RGBA8888 data using the given colors.
	RGBA(on, off color.RGBA) []byte
}

// Screen is a row-major grid of pixels.
type Screen struct {
	pixels [Width * Height]bool
}

var _ View = (*Screen)(nil)

// New returns a cleared screen.
func New() *Screen {
	return &Screen{}
}

// Clear turns all pixels off.
func (s *Screen) Clear() {
	s.pixels = [Width * Height]bool{}
}

// DrawSprite XORs the sprite rows onto the screen and reports whether a set
// pixel was turned off. Every byte of rows is one row of 8 pixels with the
// most significant bit drawn leftmost.
//
// The anchor coordinate wraps around the screen, the sprite itself is clipped
// at the right and bottom edges.
func (s *Screen) DrawSprite(x, y uint8, rows []byte) bool {
	if len(rows) == 0 {
		return false
	}

	originX := int(x) % Width
	originY := int(y) % Height
	width := min(spriteWidth, Width-originX)
	height := min(len(rows), Height-originY)

	collision := false
	for row := range height {
		line := rows[row]
		offset := (originY+row)*Width + originX
		for col := range width {
			if line&(0x80>>col) == 0 {
				continue
			}
			index := offset + col
			if s.pixels[index] {
				collision = true
			}
			s.pixels[index] = !s.pixels[index]
		}
	}
	return collision
}

// Pixel returns whether the pixel at the given coordinate is set.
func (s *Screen) Pixel(x, y int) (bool, error) {
	index, err := pixelIndex(x, y)
	if err != nil {
		return false, err
	}
	return s.pixels[index], nil
}

// SetPixel sets the pixel at the given coordinate.
func (s *Screen) SetPixel(x, y int, value bool) error {
	index, err := pixelIndex(x, y)
	if err != nil {
		return err
	}
	s.pixels[index] = value
	return nil
}

// Snapshot returns a copy of all pixels in row-major order.
func (s *Screen) Snapshot() [Width * Height]bool {
	return s.pixels
}

// RGBA expands the pixels into a Width*Height*4 byte slice.
func (s *Screen) RGBA(on, off color.RGBA) []byte {
	pix := make([]byte, Width*Height*4)
	for i, set := range s.pixels {
		c := off
		if set {
			c = on
		}
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return pix
}

func pixelIndex(x, y int) (int, error) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return y*Width + x, nil
}
