// Package memory implements the 4KB CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory map:
//
//	0x000-0x04F: built-in hex digit glyphs (16 x 5 bytes)
//	0x050-0x1FF: unused, reserved for the interpreter on the COSMAC VIP
//	0x200-0xFFF: user program space
const (
	// Size is the number of addressable bytes.
	Size = 4096

	// FontStart is the address of the glyph for digit 0.
	FontStart = 0x000

	// GlyphSize is the number of bytes (rows) of a single digit glyph.
	GlyphSize = 5

	// ProgramStart is the address the program is loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrOutOfBounds is returned for accesses that reach past the end of memory.
	ErrOutOfBounds = errors.New("memory access out of bounds")

	// ErrProgramTooLarge is returned when a program does not fit into the program space.
	ErrProgramTooLarge = errors.New("program too large")
)

// font contains the glyphs for the hex digits 0-F, one byte per 8 pixel wide row.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the byte addressable RAM of the virtual machine.
type Memory struct {
	data [Size]byte
}

// New returns a memory that contains the digit glyphs and the given program.
func New(program []byte) (*Memory, error) {
	if len(program) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m := &Memory{}
	copy(m.data[FontStart:], font[:])
	copy(m.data[ProgramStart:], program)
	return m, nil
}

// Get returns the byte at the given address.
func (m *Memory) Get(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// Set writes a byte to the given address.
func (m *Memory) Set(address uint16, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// Bytes returns a view of length bytes starting at address.
// The returned slice aliases the memory and must not be modified.
func (m *Memory) Bytes(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	end := int(address) + length
	return m.data[address:end:end], nil
}

// Word returns the big-endian 16 bit value at the given address.
func (m *Memory) Word(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// GlyphAddress returns the address of the glyph for the lower nibble of digit.
func GlyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*GlyphSize
}

// CheckRange returns an error if length bytes starting at address are not
// fully inside of memory.
func CheckRange(address uint16, length int) error {
	return checkRange(address, length)
}

func checkRange(address uint16, length int) error {
	if length < 0 || int(address)+length > Size {
		return fmt.Errorf("%w: address $%04X length %d", ErrOutOfBounds, address, length)
	}
	return nil
}
