package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// sysName is the mnemonic of the machine language subroutine call.
const sysName = "sys"

func (i Exe) String() string    { return fmt.Sprintf("%s $%03X", sysName, i.Address) }
func (Clear) String() string    { return chip8.ClsInst.Name }
func (Return) String() string   { return chip8.RetInst.Name }
func (i Jump) String() string   { return formatAddress(chip8.JpInst.Name, i.Address) }
func (i Call) String() string   { return formatAddress(chip8.CallInst.Name, i.Address) }
func (i JumpAdd) String() string {
	return fmt.Sprintf("%s V0, $%03X", chip8.JpInst.Name, i.Address)
}

func (i SkipEqualValue) String() string    { return formatValue(chip8.SeInst.Name, i.X, i.Value) }
func (i SkipNotEqualValue) String() string { return formatValue(chip8.SneInst.Name, i.X, i.Value) }
func (i LoadValue) String() string         { return formatValue(chip8.LdInst.Name, i.X, i.Value) }
func (i AddValue) String() string          { return formatValue(chip8.AddInst.Name, i.X, i.Value) }
func (i LoadRandom) String() string        { return formatValue(chip8.RndInst.Name, i.X, i.Value) }

func (i SkipEqualRegister) String() string    { return formatRegisters(chip8.SeInst.Name, i.X, i.Y) }
func (i SkipNotEqualRegister) String() string { return formatRegisters(chip8.SneInst.Name, i.X, i.Y) }
func (i LoadRegister) String() string         { return formatRegisters(chip8.LdInst.Name, i.X, i.Y) }
func (i Or) String() string                   { return formatRegisters(chip8.OrInst.Name, i.X, i.Y) }
func (i And) String() string                  { return formatRegisters(chip8.AndInst.Name, i.X, i.Y) }
func (i Xor) String() string                  { return formatRegisters(chip8.XorInst.Name, i.X, i.Y) }
func (i AddRegister) String() string          { return formatRegisters(chip8.AddInst.Name, i.X, i.Y) }
func (i SubRegisterXY) String() string        { return formatRegisters(chip8.SubInst.Name, i.X, i.Y) }
func (i SubRegisterYX) String() string        { return formatRegisters(chip8.SubnInst.Name, i.X, i.Y) }

// The shifts read VY, so both registers are printed.
func (i ShiftRight) String() string { return formatRegisters(chip8.ShrInst.Name, i.X, i.Y) }
func (i ShiftLeft) String() string  { return formatRegisters(chip8.ShlInst.Name, i.X, i.Y) }

func (i LoadIndex) String() string { return fmt.Sprintf("%s I, $%03X", chip8.LdInst.Name, i.Address) }

func (i DrawSprite) String() string {
	return fmt.Sprintf("%s V%X, V%X, $%X", chip8.DrwInst.Name, i.X, i.Y, i.Rows)
}

func (i SkipIfKey) String() string    { return fmt.Sprintf("%s V%X", chip8.SkpInst.Name, i.X) }
func (i SkipIfNotKey) String() string { return fmt.Sprintf("%s V%X", chip8.SknpInst.Name, i.X) }

func (i LoadDelay) String() string       { return fmt.Sprintf("%s V%X, DT", chip8.LdInst.Name, i.X) }
func (i WaitForKey) String() string      { return fmt.Sprintf("%s V%X, K", chip8.LdInst.Name, i.X) }
func (i SetDelay) String() string        { return fmt.Sprintf("%s DT, V%X", chip8.LdInst.Name, i.X) }
func (i SetSound) String() string        { return fmt.Sprintf("%s ST, V%X", chip8.LdInst.Name, i.X) }
func (i AddToIndex) String() string      { return fmt.Sprintf("%s I, V%X", chip8.AddInst.Name, i.X) }
func (i LoadDigitSprite) String() string { return fmt.Sprintf("%s F, V%X", chip8.LdInst.Name, i.X) }
func (i StoreBCD) String() string        { return fmt.Sprintf("%s B, V%X", chip8.LdInst.Name, i.X) }
func (i StoreRegisters) String() string  { return fmt.Sprintf("%s [I], V%X", chip8.LdInst.Name, i.X) }
func (i LoadRegisters) String() string   { return fmt.Sprintf("%s V%X, [I]", chip8.LdInst.Name, i.X) }

func formatAddress(name string, address uint16) string {
	return fmt.Sprintf("%s $%03X", name, address)
}

func formatValue(name string, x, value uint8) string {
	return fmt.Sprintf("%s V%X, $%02X", name, x, value)
}

func formatRegisters(name string, x, y uint8) string {
	return fmt.Sprintf("%s V%X, V%X", name, x, y)
}

// Target returns the absolute address an instruction transfers control or
// points register I to, and whether it has one. JumpAdd is not included as
// its target depends on V0.
func Target(ins Instruction) (uint16, bool) {
	switch i := ins.(type) {
	case Jump:
		return i.Address, true
	case Call:
		return i.Address, true
	case LoadIndex:
		return i.Address, true
	default:
		return 0, false
	}
}
