package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
)

var (
	// ErrUnknownMachineSubroutine is returned when a 0NNN instruction gets executed.
	ErrUnknownMachineSubroutine = errors.New("unknown machine code subroutine")

	// ErrEmptyStackReturn is returned when returning from a subroutine with an empty stack.
	ErrEmptyStackReturn = errors.New("return with empty stack")

	// ErrStackOverflow is returned when calling a subroutine with a full stack.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrSpriteOutOfBounds is returned when sprite data would be read past the end of memory.
	ErrSpriteOutOfBounds = errors.New("sprite data exceeds memory")
)

// ExecuteError describes a failure to execute a successfully decoded instruction.
type ExecuteError struct {
	Instruction instruction.Instruction
	Address     uint16 // subroutine or memory address the failure refers to
	Length      int    // number of bytes of the failed memory access
	Err         error
}

func (e *ExecuteError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownMachineSubroutine):
		return fmt.Sprintf("%s: $%03X", e.Err, e.Address)
	case e.Length > 0:
		return fmt.Sprintf("executing '%s': %s (address $%04X, length %d)", e.Instruction, e.Err, e.Address, e.Length)
	default:
		return fmt.Sprintf("executing '%s': %s", e.Instruction, e.Err)
	}
}

func (e *ExecuteError) Unwrap() error {
	return e.Err
}

// CycleError is returned by Cycle and wraps either a decode or an execute failure.
type CycleError struct {
	PC   uint16
	Word uint16
	Err  error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle at $%04X (word $%04X): %s", e.PC, e.Word, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
