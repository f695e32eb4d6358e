package instruction

import (
	"errors"
	"fmt"
)

// ErrUnknownInstruction is matched by all errors returned by Decode.
var ErrUnknownInstruction = errors.New("unknown instruction")

// DecodeError is returned for instruction words that do not map to an instruction.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown instruction: $%04X", e.Word)
}

// Is makes errors.Is(err, ErrUnknownInstruction) report true for decode errors.
func (e *DecodeError) Is(target error) bool {
	return target == ErrUnknownInstruction
}

// Decode maps a big-endian instruction word to its instruction.
//
// 0NNN words other than 00E0 and 00EE decode to Exe, the decoder does not
// judge whether a machine code subroutine call can be executed.
func Decode(word uint16) (Instruction, error) {
	x := uint8(word>>8) & 0x0F
	y := uint8(word>>4) & 0x0F
	n := uint8(word) & 0x0F
	nn := uint8(word)
	nnn := word & 0x0FFF

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return Clear{}, nil
		case 0x00EE:
			return Return{}, nil
		default:
			return Exe{Address: nnn}, nil
		}

	case 0x1:
		return Jump{Address: nnn}, nil

	case 0x2:
		return Call{Address: nnn}, nil

	case 0x3:
		return SkipEqualValue{X: x, Value: nn}, nil

	case 0x4:
		return SkipNotEqualValue{X: x, Value: nn}, nil

	case 0x5:
		if n == 0 {
			return SkipEqualRegister{X: x, Y: y}, nil
		}

	case 0x6:
		return LoadValue{X: x, Value: nn}, nil

	case 0x7:
		return AddValue{X: x, Value: nn}, nil

	case 0x8:
		return decodeArithmetic(x, y, n, word)

	case 0x9:
		if n == 0 {
			return SkipNotEqualRegister{X: x, Y: y}, nil
		}

	case 0xA:
		return LoadIndex{Address: nnn}, nil

	case 0xB:
		return JumpAdd{Address: nnn}, nil

	case 0xC:
		return LoadRandom{X: x, Value: nn}, nil

	case 0xD:
		return DrawSprite{X: x, Y: y, Rows: n}, nil

	case 0xE:
		switch nn {
		case 0x9E:
			return SkipIfKey{X: x}, nil
		case 0xA1:
			return SkipIfNotKey{X: x}, nil
		}

	case 0xF:
		return decodeMisc(x, nn, word)
	}

	return nil, &DecodeError{Word: word}
}

// decodeArithmetic decodes the 8XYN register to register operations.
func decodeArithmetic(x, y, n uint8, word uint16) (Instruction, error) {
	switch n {
	case 0x0:
		return LoadRegister{X: x, Y: y}, nil
	case 0x1:
		return Or{X: x, Y: y}, nil
	case 0x2:
		return And{X: x, Y: y}, nil
	case 0x3:
		return Xor{X: x, Y: y}, nil
	case 0x4:
		return AddRegister{X: x, Y: y}, nil
	case 0x5:
		return SubRegisterXY{X: x, Y: y}, nil
	case 0x6:
		return ShiftRight{X: x, Y: y}, nil
	case 0x7:
		return SubRegisterYX{X: x, Y: y}, nil
	case 0xE:
		return ShiftLeft{X: x, Y: y}, nil
	default:
		return nil, &DecodeError{Word: word}
	}
}

// decodeMisc decodes the FXNN timer, index and memory operations.
func decodeMisc(x, nn uint8, word uint16) (Instruction, error) {
	switch nn {
	case 0x07:
		return LoadDelay{X: x}, nil
	case 0x0A:
		return WaitForKey{X: x}, nil
	case 0x15:
		return SetDelay{X: x}, nil
	case 0x18:
		return SetSound{X: x}, nil
	case 0x1E:
		return AddToIndex{X: x}, nil
	case 0x29:
		return LoadDigitSprite{X: x}, nil
	case 0x33:
		return StoreBCD{X: x}, nil
	case 0x55:
		return StoreRegisters{X: x}, nil
	case 0x65:
		return LoadRegisters{X: x}, nil
	default:
		return nil, &DecodeError{Word: word}
	}
}
