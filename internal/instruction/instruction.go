// Package instruction contains the CHIP-8 instruction set and its decoder.
package instruction

// Instruction is a decoded CHIP-8 instruction. The set of implementations is
// closed, every type of this package that implements it is one of the 35
// CHIP-8 opcodes.
type Instruction interface {
	// Opcode encodes the instruction back into its 16 bit instruction word.
	Opcode() uint16
	// String returns the assembler representation of the instruction.
	String() string

	instruction()
}

// Exe is 0NNN: execute the machine language subroutine at Address.
type Exe struct{ Address uint16 }

// Clear is 00E0: clear the screen.
type Clear struct{}

// Return is 00EE: return from a subroutine.
type Return struct{}

// Jump is 1NNN: jump to Address.
type Jump struct{ Address uint16 }

// Call is 2NNN: execute the subroutine at Address.
type Call struct{ Address uint16 }

// SkipEqualValue is 3XNN: skip the next instruction if VX equals Value.
type SkipEqualValue struct {
	X     uint8
	Value uint8
}

// SkipNotEqualValue is 4XNN: skip the next instruction if VX does not equal Value.
type SkipNotEqualValue struct {
	X     uint8
	Value uint8
}

// SkipEqualRegister is 5XY0: skip the next instruction if VX equals VY.
type SkipEqualRegister struct{ X, Y uint8 }

// LoadValue is 6XNN: store Value in VX.
type LoadValue struct {
	X     uint8
	Value uint8
}

// AddValue is 7XNN: add Value to VX without changing VF.
type AddValue struct {
	X     uint8
	Value uint8
}

// LoadRegister is 8XY0: store VY in VX.
type LoadRegister struct{ X, Y uint8 }

// Or is 8XY1: set VX to VX OR VY.
type Or struct{ X, Y uint8 }

// And is 8XY2: set VX to VX AND VY.
type And struct{ X, Y uint8 }

// Xor is 8XY3: set VX to VX XOR VY.
type Xor struct{ X, Y uint8 }

// AddRegister is 8XY4: add VY to VX, VF is set to 1 on carry and 0 otherwise.
type AddRegister struct{ X, Y uint8 }

// SubRegisterXY is 8XY5: set VX to VX - VY, VF is set to 0 on borrow and 1 otherwise.
type SubRegisterXY struct{ X, Y uint8 }

// ShiftRight is 8XY6: store VY shifted right by one bit in VX,
// VF is set to the least significant bit of VY before the shift.
type ShiftRight struct{ X, Y uint8 }

// SubRegisterYX is 8XY7: set VX to VY - VX, VF is set to 0 on borrow and 1 otherwise.
type SubRegisterYX struct{ X, Y uint8 }

// ShiftLeft is 8XYE: store VY shifted left by one bit in VX,
// VF is set to the most significant bit of VY before the shift.
type ShiftLeft struct{ X, Y uint8 }

// SkipNotEqualRegister is 9XY0: skip the next instruction if VX does not equal VY.
type SkipNotEqualRegister struct{ X, Y uint8 }

// LoadIndex is ANNN: store Address in register I.
type LoadIndex struct{ Address uint16 }

// JumpAdd is BNNN: jump to Address + V0.
type JumpAdd struct{ Address uint16 }

// LoadRandom is CXNN: set VX to a random number masked with Value.
type LoadRandom struct {
	X     uint8
	Value uint8
}

// DrawSprite is DXYN: draw the Rows bytes of sprite data at I to position VX, VY.
// VF is set to 1 if a set pixel gets unset and 0 otherwise.
type DrawSprite struct {
	X, Y uint8
	Rows uint8
}

// SkipIfKey is EX9E: skip the next instruction if the key in VX is pressed.
type SkipIfKey struct{ X uint8 }

// SkipIfNotKey is EXA1: skip the next instruction if the key in VX is not pressed.
type SkipIfNotKey struct{ X uint8 }

// LoadDelay is FX07: store the delay timer in VX.
type LoadDelay struct{ X uint8 }

// WaitForKey is FX0A: wait for a key release and store the key in VX.
type WaitForKey struct{ X uint8 }

// SetDelay is FX15: set the delay timer to VX.
type SetDelay struct{ X uint8 }

// SetSound is FX18: set the sound timer to VX.
type SetSound struct{ X uint8 }

// AddToIndex is FX1E: add VX to register I.
type AddToIndex struct{ X uint8 }

// LoadDigitSprite is FX29: set I to the address of the glyph for the digit in VX.
type LoadDigitSprite struct{ X uint8 }

// StoreBCD is FX33: store the decimal digits of VX at I, I+1 and I+2.
type StoreBCD struct{ X uint8 }

// StoreRegisters is FX55: store V0 to VX inclusive at I, then I is set to I+X+1.
type StoreRegisters struct{ X uint8 }

// LoadRegisters is FX65: load V0 to VX inclusive from I, then I is set to I+X+1.
type LoadRegisters struct{ X uint8 }

func (Exe) instruction()                  {}
func (Clear) instruction()                {}
func (Return) instruction()               {}
func (Jump) instruction()                 {}
func (Call) instruction()                 {}
func (SkipEqualValue) instruction()       {}
func (SkipNotEqualValue) instruction()    {}
func (SkipEqualRegister) instruction()    {}
func (LoadValue) instruction()            {}
func (AddValue) instruction()             {}
func (LoadRegister) instruction()         {}
func (Or) instruction()                   {}
func (And) instruction()                  {}
func (Xor) instruction()                  {}
func (AddRegister) instruction()          {}
func (SubRegisterXY) instruction()        {}
func (ShiftRight) instruction()           {}
func (SubRegisterYX) instruction()        {}
func (ShiftLeft) instruction()            {}
func (SkipNotEqualRegister) instruction() {}
func (LoadIndex) instruction()            {}
func (JumpAdd) instruction()              {}
func (LoadRandom) instruction()           {}
func (DrawSprite) instruction()           {}
func (SkipIfKey) instruction()            {}
func (SkipIfNotKey) instruction()         {}
func (LoadDelay) instruction()            {}
func (WaitForKey) instruction()           {}
func (SetDelay) instruction()             {}
func (SetSound) instruction()             {}
func (AddToIndex) instruction()           {}
func (LoadDigitSprite) instruction()      {}
func (StoreBCD) instruction()             {}
func (StoreRegisters) instruction()       {}
func (LoadRegisters) instruction()        {}

func (i Exe) Opcode() uint16                  { return i.Address & 0x0FFF }
func (Clear) Opcode() uint16                  { return 0x00E0 }
func (Return) Opcode() uint16                 { return 0x00EE }
func (i Jump) Opcode() uint16                 { return 0x1000 | i.Address&0x0FFF }
func (i Call) Opcode() uint16                 { return 0x2000 | i.Address&0x0FFF }
func (i SkipEqualValue) Opcode() uint16       { return encodeXNN(0x3000, i.X, i.Value) }
func (i SkipNotEqualValue) Opcode() uint16    { return encodeXNN(0x4000, i.X, i.Value) }
func (i SkipEqualRegister) Opcode() uint16    { return encodeXYN(0x5000, i.X, i.Y, 0x0) }
func (i LoadValue) Opcode() uint16            { return encodeXNN(0x6000, i.X, i.Value) }
func (i AddValue) Opcode() uint16             { return encodeXNN(0x7000, i.X, i.Value) }
func (i LoadRegister) Opcode() uint16         { return encodeXYN(0x8000, i.X, i.Y, 0x0) }
func (i Or) Opcode() uint16                   { return encodeXYN(0x8000, i.X, i.Y, 0x1) }
func (i And) Opcode() uint16                  { return encodeXYN(0x8000, i.X, i.Y, 0x2) }
func (i Xor) Opcode() uint16                  { return encodeXYN(0x8000, i.X, i.Y, 0x3) }
func (i AddRegister) Opcode() uint16          { return encodeXYN(0x8000, i.X, i.Y, 0x4) }
func (i SubRegisterXY) Opcode() uint16        { return encodeXYN(0x8000, i.X, i.Y, 0x5) }
func (i ShiftRight) Opcode() uint16           { return encodeXYN(0x8000, i.X, i.Y, 0x6) }
func (i SubRegisterYX) Opcode() uint16        { return encodeXYN(0x8000, i.X, i.Y, 0x7) }
func (i ShiftLeft) Opcode() uint16            { return encodeXYN(0x8000, i.X, i.Y, 0xE) }
func (i SkipNotEqualRegister) Opcode() uint16 { return encodeXYN(0x9000, i.X, i.Y, 0x0) }
func (i LoadIndex) Opcode() uint16            { return 0xA000 | i.Address&0x0FFF }
func (i JumpAdd) Opcode() uint16              { return 0xB000 | i.Address&0x0FFF }
func (i LoadRandom) Opcode() uint16           { return encodeXNN(0xC000, i.X, i.Value) }
func (i DrawSprite) Opcode() uint16           { return encodeXYN(0xD000, i.X, i.Y, i.Rows) }
func (i SkipIfKey) Opcode() uint16            { return encodeXNN(0xE000, i.X, 0x9E) }
func (i SkipIfNotKey) Opcode() uint16         { return encodeXNN(0xE000, i.X, 0xA1) }
func (i LoadDelay) Opcode() uint16            { return encodeXNN(0xF000, i.X, 0x07) }
func (i WaitForKey) Opcode() uint16           { return encodeXNN(0xF000, i.X, 0x0A) }
func (i SetDelay) Opcode() uint16             { return encodeXNN(0xF000, i.X, 0x15) }
func (i SetSound) Opcode() uint16             { return encodeXNN(0xF000, i.X, 0x18) }
func (i AddToIndex) Opcode() uint16           { return encodeXNN(0xF000, i.X, 0x1E) }
func (i LoadDigitSprite) Opcode() uint16      { return encodeXNN(0xF000, i.X, 0x29) }
func (i StoreBCD) Opcode() uint16             { return encodeXNN(0xF000, i.X, 0x33) }
func (i StoreRegisters) Opcode() uint16       { return encodeXNN(0xF000, i.X, 0x55) }
func (i LoadRegisters) Opcode() uint16        { return encodeXNN(0xF000, i.X, 0x65) }

func encodeXNN(family uint16, x, nn uint8) uint16 {
	return family | uint16(x&0x0F)<<8 | uint16(nn)
}

func encodeXYN(family uint16, x, y, n uint8) uint16 {
	return family | uint16(x&0x0F)<<8 | uint16(y&0x0F)<<4 | uint16(n&0x0F)
}
