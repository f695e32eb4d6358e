package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations names all referenced addresses and updates the
// referencing instructions to use the generated label name.
func (dis *Disasm) processJumpDestinations() {
	names := make(map[uint16]string)
	nameDestinations(names, dis.data, dataNaming)
	nameDestinations(names, dis.jumps, labelNaming)
	nameDestinations(names, dis.calls, funcNaming)

	addresses := make([]uint16, 0, len(names))
	for address := range names {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)

	for _, address := range addresses {
		line := dis.lines[(address-dis.lines[0].Address)/2]
		line.Label = names[address]
	}

	for _, line := range dis.lines {
		if line.instruction == nil {
			continue
		}
		address, ok := instruction.Target(line.instruction)
		if !ok {
			continue
		}
		if name, ok := names[address]; ok {
			line.Code = codeWithLabel(line.instruction, name)
		}
	}
}

// nameDestinations sets the naming for all addresses of the set, overwriting
// names set by a previous call.
func nameDestinations(names map[uint16]string, destinations set.Set[uint16], naming string) {
	for address := range destinations {
		names[address] = fmt.Sprintf(naming, address)
	}
}

// codeWithLabel returns the instruction text with the address operand
// replaced by a label name.
func codeWithLabel(ins instruction.Instruction, label string) string {
	switch ins.(type) {
	case instruction.Jump:
		return chip8.JpInst.Name + " " + label
	case instruction.Call:
		return chip8.CallInst.Name + " " + label
	case instruction.LoadIndex:
		return chip8.LdInst.Name + " I, " + label
	default:
		return ins.String()
	}
}
