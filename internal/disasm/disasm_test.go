package disasm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var testProgram = []byte{
	0x00, 0xE0, // cls
	0xA2, 0x0A, // ld I, $20A
	0x22, 0x08, // call $208
	0x12, 0x06, // jp $206
	0x00, 0xEE, // ret
	0xF0, 0x90, // sprite data
	0xFF,
}

func runDisasm(t *testing.T, program []byte, opts options.Disassembler) (*Disasm, string) {
	t.Helper()
	dis, err := New(log.NewTestLogger(t), program, opts)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))
	return dis, buf.String()
}

func TestProcess(t *testing.T) {
	dis, output := runDisasm(t, testProgram, options.Disassembler{})

	expected := fmt.Sprintf("; CHIP-8 program disassembly\n; CRC32: %08X\n\n.org $200\n\n", crc32.ChecksumIEEE(testProgram)) +
		"    cls\n" +
		"    ld I, _data_020a\n" +
		"    call _func_0208\n" +
		"_label_0206:\n" +
		"    jp _label_0206\n" +
		"_func_0208:\n" +
		"    ret\n" +
		"_data_020a:\n" +
		"    .word $F090\n" +
		"    .byte $FF\n"
	assert.Equal(t, expected, output)
	assert.Len(t, dis.Lines(), 7)
}

func TestProcessComments(t *testing.T) {
	dis, _ := runDisasm(t, testProgram, options.NewDisassembler())

	lines := dis.Lines()
	assert.Equal(t, "$0200  00 E0", lines[0].Comment)
	assert.Equal(t, "$020C  FF", lines[6].Comment)

	dis, output := runDisasm(t, []byte{0x00, 0xE0}, options.Disassembler{HexComments: true})
	assert.Equal(t, "00 E0", dis.Lines()[0].Comment)
	assert.Contains(t, output, fmt.Sprintf("%-32s ; 00 E0\n", "    cls"))
}

func TestLabelsOutsideProgram(t *testing.T) {
	// jump out of the program, call into the middle of a word, data in the font area
	program := []byte{0x13, 0x00, 0x22, 0x03, 0xA0, 0x00}
	dis, _ := runDisasm(t, program, options.Disassembler{})

	for _, line := range dis.Lines() {
		assert.Equal(t, "", line.Label)
	}
	assert.Equal(t, "jp $300", dis.Lines()[0].Code)
	assert.Equal(t, "call $203", dis.Lines()[1].Code)
	assert.Equal(t, "ld I, $000", dis.Lines()[2].Code)
}

func TestCallOverridesJumpLabel(t *testing.T) {
	// call $204 / jp $204 / ret
	program := []byte{0x22, 0x04, 0x12, 0x04, 0x00, 0xEE}
	dis, _ := runDisasm(t, program, options.Disassembler{})

	assert.Equal(t, "_func_0204", dis.Lines()[2].Label)
	assert.Equal(t, "jp _func_0204", dis.Lines()[1].Code)
}

func TestNewErrors(t *testing.T) {
	_, err := New(log.NewTestLogger(t), make([]byte, memory.MaxProgramSize+1), options.Disassembler{})
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
}

func TestProcessCanceled(t *testing.T) {
	dis, err := New(log.NewTestLogger(t), testProgram, options.Disassembler{})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = dis.Process(ctx, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}
