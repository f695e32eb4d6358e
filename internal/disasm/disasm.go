// Package disasm implements a linear CHIP-8 program disassembler.
package disasm

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Line is a single instruction or data word of the listing.
type Line struct {
	Address uint16
	Label   string
	Code    string // instruction text, empty for data
	Data    []byte // the bytes of the word
	Comment string

	instruction instruction.Instruction
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	program []byte

	calls set.Set[uint16] // addresses that are called as subroutine
	jumps set.Set[uint16] // addresses that are jumped to
	data  set.Set[uint16] // addresses that register I is pointed to

	lines []*Line
}

// New creates a new disassembler for a program that is loaded at the program start address.
func New(logger *log.Logger, program []byte, options options.Disassembler) (*Disasm, error) {
	if len(program) > memory.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", memory.ErrProgramTooLarge, len(program), memory.MaxProgramSize)
	}

	return &Disasm{
		logger:  logger,
		options: options,
		program: program,
		calls:   set.New[uint16](),
		jumps:   set.New[uint16](),
		data:    set.New[uint16](),
	}, nil
}

// Process disassembles the program and writes the listing.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if err := dis.decode(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()
	dis.setComments()

	if err := dis.write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Lines returns the processed listing lines.
func (dis *Disasm) Lines() []*Line {
	return dis.lines
}

// decode converts every word of the program into a line. Programs commonly
// mix code and sprite data, words that do not decode are kept as data.
func (dis *Disasm) decode(ctx context.Context) error {
	dis.lines = make([]*Line, 0, (len(dis.program)+1)/2)

	for offset := 0; offset < len(dis.program); offset += 2 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("decoding offset %d: %w", offset, err)
		}

		address := uint16(memory.ProgramStart + offset)
		end := min(offset+2, len(dis.program))
		line := &Line{
			Address: address,
			Data:    dis.program[offset:end],
		}
		dis.lines = append(dis.lines, line)

		if len(line.Data) < 2 {
			continue
		}

		word := uint16(line.Data[0])<<8 | uint16(line.Data[1])
		ins, err := instruction.Decode(word)
		if err != nil {
			dis.logger.Debug("Undecodable word",
				log.Hex("address", address),
				log.Hex("word", word))
			continue
		}

		line.instruction = ins
		line.Code = ins.String()
		dis.addDestination(ins)
	}

	return nil
}

func (dis *Disasm) addDestination(ins instruction.Instruction) {
	address, ok := instruction.Target(ins)
	if !ok || !dis.inProgram(address) {
		return
	}

	switch ins.(type) {
	case instruction.Call:
		dis.calls.Add(address)
	case instruction.Jump:
		dis.jumps.Add(address)
	default:
		dis.data.Add(address)
	}
}

// inProgram returns whether the address is the start of a listing line.
func (dis *Disasm) inProgram(address uint16) bool {
	if address < memory.ProgramStart || (address-memory.ProgramStart)%2 != 0 {
		return false
	}
	return int(address-memory.ProgramStart) < len(dis.program)
}

func (dis *Disasm) setComments() {
	for _, line := range dis.lines {
		var comments []string
		if dis.options.OffsetComments {
			comments = append(comments, fmt.Sprintf("$%04X", line.Address))
		}
		if dis.options.HexComments {
			comments = append(comments, hexCodeComment(line.Data))
		}
		if line.Comment != "" {
			comments = append(comments, line.Comment)
		}
		line.Comment = strings.Join(comments, "  ")
	}
}

func hexCodeComment(data []byte) string {
	buf := &strings.Builder{}
	for _, b := range data {
		fmt.Fprintf(buf, "%02X ", b)
	}
	return strings.TrimRight(buf.String(), " ")
}

// Checksum returns the CRC32 checksum of the program.
func (dis *Disasm) Checksum() uint32 {
	return crc32.ChecksumIEEE(dis.program)
}
