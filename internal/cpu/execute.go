package cpu

import (
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
)

// pcAction is the program counter update that follows a successful execution.
type pcAction int

const (
	pcNext pcAction = iota // advance to the next instruction
	pcSkip                 // skip the next instruction
	pcHold                 // program counter was set explicitly or stalls
)

func skipIf(condition bool) pcAction {
	if condition {
		return pcSkip
	}
	return pcNext
}

// execute runs a decoded instruction. All preconditions are checked before
// any state is modified, a returned error leaves the machine unchanged.
//
//nolint:funlen,cyclop // one case per opcode
func (c *Interpreter) execute(ins instruction.Instruction, current, previous Keys) (pcAction, error) {
	switch i := ins.(type) {
	case instruction.Exe:
		return pcHold, &ExecuteError{Instruction: i, Address: i.Address, Err: ErrUnknownMachineSubroutine}

	case instruction.Clear:
		c.screen.Clear()

	case instruction.Return:
		if c.sp == 0 {
			return pcHold, &ExecuteError{Instruction: i, Err: ErrEmptyStackReturn}
		}
		c.sp--
		c.pc = c.stack[c.sp]
		// continues after the call instruction

	case instruction.Jump:
		c.pc = i.Address
		return pcHold, nil

	case instruction.Call:
		if c.sp == StackSize {
			return pcHold, &ExecuteError{Instruction: i, Address: i.Address, Err: ErrStackOverflow}
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = i.Address
		return pcHold, nil

	case instruction.SkipEqualValue:
		return skipIf(c.v[i.X] == i.Value), nil

	case instruction.SkipNotEqualValue:
		return skipIf(c.v[i.X] != i.Value), nil

	case instruction.SkipEqualRegister:
		return skipIf(c.v[i.X] == c.v[i.Y]), nil

	case instruction.SkipNotEqualRegister:
		return skipIf(c.v[i.X] != c.v[i.Y]), nil

	case instruction.LoadValue:
		c.v[i.X] = i.Value

	case instruction.AddValue:
		c.v[i.X] += i.Value

	case instruction.LoadRegister:
		c.v[i.X] = c.v[i.Y]

	case instruction.Or:
		c.v[i.X] |= c.v[i.Y]

	case instruction.And:
		c.v[i.X] &= c.v[i.Y]

	case instruction.Xor:
		c.v[i.X] ^= c.v[i.Y]

	case instruction.AddRegister:
		sum := uint16(c.v[i.X]) + uint16(c.v[i.Y])
		c.v[i.X] = uint8(sum)
		c.v[FlagRegister] = boolToFlag(sum > 0xFF)

	case instruction.SubRegisterXY:
		c.subtract(i.X, c.v[i.X], c.v[i.Y])

	case instruction.SubRegisterYX:
		c.subtract(i.X, c.v[i.Y], c.v[i.X])

	case instruction.ShiftRight:
		value := c.v[i.Y]
		c.v[i.X] = value >> 1
		c.v[FlagRegister] = value & 0x01

	case instruction.ShiftLeft:
		value := c.v[i.Y]
		c.v[i.X] = value << 1
		c.v[FlagRegister] = value >> 7

	case instruction.LoadIndex:
		c.index = i.Address

	case instruction.JumpAdd:
		c.pc = i.Address + uint16(c.v[0])
		return pcHold, nil

	case instruction.LoadRandom:
		c.v[i.X] = uint8(c.random.Uint32()) & i.Value

	case instruction.DrawSprite:
		return c.drawSprite(i)

	case instruction.SkipIfKey:
		return skipIf(current[c.v[i.X]&0x0F]), nil

	case instruction.SkipIfNotKey:
		return skipIf(!current[c.v[i.X]&0x0F]), nil

	case instruction.LoadDelay:
		c.v[i.X] = c.delayTimer

	case instruction.WaitForKey:
		return c.waitForKey(i, current, previous), nil

	case instruction.SetDelay:
		c.delayTimer = c.v[i.X]

	case instruction.SetSound:
		c.soundTimer = c.v[i.X]

	case instruction.AddToIndex:
		// saturates at $FFFF, an index past the end of memory stays out of bounds
		sum := uint32(c.index) + uint32(c.v[i.X])
		c.index = uint16(min(sum, 0xFFFF))

	case instruction.LoadDigitSprite:
		c.index = memory.GlyphAddress(c.v[i.X])

	case instruction.StoreBCD:
		return c.storeBCD(i)

	case instruction.StoreRegisters:
		return c.storeRegisters(i)

	case instruction.LoadRegisters:
		return c.loadRegisters(i)
	}

	return pcNext, nil
}

// subtract stores minuend - subtrahend in VX, VF is 1 if no borrow occurred.
func (c *Interpreter) subtract(x, minuend, subtrahend uint8) {
	c.v[x] = minuend - subtrahend
	c.v[FlagRegister] = boolToFlag(minuend >= subtrahend)
}

func (c *Interpreter) drawSprite(i instruction.DrawSprite) (pcAction, error) {
	rows, err := c.memory.Bytes(c.index, int(i.Rows))
	if err != nil {
		return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: int(i.Rows), Err: ErrSpriteOutOfBounds}
	}

	collision := c.screen.DrawSprite(c.v[i.X], c.v[i.Y], rows)
	c.v[FlagRegister] = boolToFlag(collision)
	return pcNext, nil
}

// waitForKey completes when a key that was pressed in the previous cycle has
// been released in the current one. Otherwise the program counter stalls and
// the instruction gets executed again in the next cycle.
func (c *Interpreter) waitForKey(i instruction.WaitForKey, current, previous Keys) pcAction {
	for key := range KeyCount {
		if previous[key] && !current[key] {
			c.v[i.X] = uint8(key)
			return pcNext
		}
	}
	return pcHold
}

func (c *Interpreter) storeBCD(i instruction.StoreBCD) (pcAction, error) {
	if err := memory.CheckRange(c.index, 3); err != nil {
		return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: 3, Err: err}
	}

	value := c.v[i.X]
	digits := [3]uint8{value / 100, value / 10 % 10, value % 10}
	for offset, digit := range digits {
		if err := c.memory.Set(c.index+uint16(offset), digit); err != nil {
			return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: 3, Err: err}
		}
	}
	return pcNext, nil
}

func (c *Interpreter) storeRegisters(i instruction.StoreRegisters) (pcAction, error) {
	count := int(i.X) + 1
	if err := memory.CheckRange(c.index, count); err != nil {
		return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: count, Err: err}
	}

	for x := range count {
		if err := c.memory.Set(c.index+uint16(x), c.v[x]); err != nil {
			return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: count, Err: err}
		}
	}
	c.index += uint16(count)
	return pcNext, nil
}

func (c *Interpreter) loadRegisters(i instruction.LoadRegisters) (pcAction, error) {
	count := int(i.X) + 1
	data, err := c.memory.Bytes(c.index, count)
	if err != nil {
		return pcHold, &ExecuteError{Instruction: i, Address: c.index, Length: count, Err: err}
	}

	copy(c.v[:count], data)
	c.index += uint16(count)
	return pcNext, nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
