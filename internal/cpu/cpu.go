// Package cpu implements the CHIP-8 interpreter: registers, call stack,
// timers and the fetch-decode-execute cycle.
//
// The interpreter performs no I/O and never blocks. The host is expected to
// call Cycle at a rate of its choosing and UpdateTimers at 60 Hz, both from
// the same goroutine.
package cpu

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, which doubles as carry, borrow,
	// shifted out bit and collision flag.
	FlagRegister = 0xF

	// StackSize is the maximum call depth.
	StackSize = 12

	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16

	// soundThreshold is the sound timer value from which on a tone is played.
	soundThreshold = 2
)

// Keys is the pressed state of the 16 keys of the hex keypad, indexed by key value.
type Keys [KeyCount]bool

// Random is a source of pseudo-random numbers. *rand.Rand of math/rand/v2
// satisfies it.
type Random interface {
	Uint32() uint32
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRandom sets the random source used by the RND instruction.
func WithRandom(random Random) Option {
	return func(c *Interpreter) {
		c.random = random
	}
}

// WithLogger enables debug logging of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(c *Interpreter) {
		c.logger = logger
	}
}

// Interpreter is a CHIP-8 virtual machine.
type Interpreter struct {
	program []byte
	memory  *memory.Memory
	screen  *display.Screen
	random  Random
	logger  *log.Logger

	v     [RegisterCount]uint8
	index uint16
	pc    uint16
	stack [StackSize]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	cycles  uint64
	waiting bool
}

// New returns an interpreter that has the program loaded at the program start address.
func New(program []byte, options ...Option) (*Interpreter, error) {
	mem, err := memory.New(program)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	c := &Interpreter{
		program: slices.Clone(program),
		memory:  mem,
		screen:  display.New(),
		pc:      memory.ProgramStart,
	}
	for _, option := range options {
		option(c)
	}
	if c.random == nil {
		c.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c, nil
}

// Reset restores the power on state and reloads the program.
func (c *Interpreter) Reset() {
	mem, err := memory.New(c.program)
	if err != nil {
		panic(fmt.Sprintf("reloading validated program: %v", err))
	}

	c.memory = mem
	c.screen.Clear()
	c.v = [RegisterCount]uint8{}
	c.index = 0
	c.pc = memory.ProgramStart
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.delayTimer = 0
	c.soundTimer = 0
	c.cycles = 0
	c.waiting = false
}

// Cycle fetches, decodes and executes one instruction. current and previous
// are the keypad states of this and the preceding cycle, the difference is
// used to detect key releases.
//
// On error the program counter is left unchanged.
func (c *Interpreter) Cycle(current, previous Keys) error {
	pc := c.pc
	word, err := c.memory.Word(pc)
	if err != nil {
		return &CycleError{PC: pc, Err: fmt.Errorf("fetching instruction: %w", err)}
	}

	ins, err := instruction.Decode(word)
	if err != nil {
		return &CycleError{PC: pc, Word: word, Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("word", word),
			log.String("instruction", ins.String()))
	}

	action, err := c.execute(ins, current, previous)
	if err != nil {
		return &CycleError{PC: pc, Word: word, Err: err}
	}

	switch action {
	case pcNext:
		c.pc += 2
	case pcSkip:
		c.pc += 4
	case pcHold:
		// set by a jump or stalled on a key wait
	}
	_, isKeyWait := ins.(instruction.WaitForKey)
	c.waiting = isKeyWait && action == pcHold
	c.cycles++
	return nil
}

// UpdateTimers decrements the delay and sound timers, stopping at zero.
// It has to be called at 60 Hz independent of the cycle rate.
func (c *Interpreter) UpdateTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// IsSoundPlaying returns whether the host should play a tone.
// The tone stops one tick before the sound timer reaches zero.
func (c *Interpreter) IsSoundPlaying() bool {
	return c.soundTimer >= soundThreshold
}

// Screen returns a read-only view of the framebuffer.
func (c *Interpreter) Screen() display.View {
	return c.screen
}

// PC returns the program counter.
func (c *Interpreter) PC() uint16 {
	return c.pc
}

// Index returns the address register I.
func (c *Interpreter) Index() uint16 {
	return c.index
}

// SP returns the current call depth.
func (c *Interpreter) SP() uint8 {
	return c.sp
}

// Register returns the value of the register VX.
func (c *Interpreter) Register(x uint8) uint8 {
	return c.v[x&0x0F]
}

// Registers returns a copy of all general purpose registers.
func (c *Interpreter) Registers() [RegisterCount]uint8 {
	return c.v
}

// Stack returns the return addresses on the call stack, the most recent last.
func (c *Interpreter) Stack() []uint16 {
	return slices.Clone(c.stack[:c.sp])
}

// DelayTimer returns the value of the delay timer.
func (c *Interpreter) DelayTimer() uint8 {
	return c.delayTimer
}

// SoundTimer returns the value of the sound timer.
func (c *Interpreter) SoundTimer() uint8 {
	return c.soundTimer
}

// Cycles returns the number of successfully executed cycles.
func (c *Interpreter) Cycles() uint64 {
	return c.cycles
}

// Waiting returns whether the last cycle stalled on a key wait.
func (c *Interpreter) Waiting() bool {
	return c.waiting
}
