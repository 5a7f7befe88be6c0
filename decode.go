package intcode

import (
	"fmt"
	"strings"
)

// Opcode selects an operation; it is the low two decimal digits of an
// instruction word.
type Opcode int64

// The instruction set.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpInput       Opcode = 3
	OpOutput      Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

type opcodeInfo struct {
	name   string
	params int
	writes int // 1-based index of the parameter written, 0 if none
}

var opcodes = map[Opcode]opcodeInfo{
	OpAdd:         {"add", 3, 3},
	OpMul:         {"mul", 3, 3},
	OpInput:       {"in", 1, 1},
	OpOutput:      {"out", 1, 0},
	OpJumpIfTrue:  {"jt", 2, 0},
	OpJumpIfFalse: {"jf", 2, 0},
	OpLessThan:    {"lt", 3, 3},
	OpEquals:      {"eq", 3, 3},
	OpAdjustBase:  {"arb", 1, 0},
	OpHalt:        {"hlt", 0, 0},
}

// Valid returns true if op is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters taken by op.
func (op Opcode) Params() int { return opcodes[op].params }

// Width returns the number of memory cells occupied by an op instruction.
func (op Opcode) Width() int64 { return int64(op.Params()) + 1 }

// Writes returns the 1-based index of the parameter that op writes to, or 0.
func (op Opcode) Writes() int { return opcodes[op].writes }

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return fmt.Sprintf("op%d", int64(op))
}

// Mode is a parameter addressing mode.
type Mode uint8

// Parameter modes.
const (
	Position  Mode = 0 // operand is an address
	Immediate Mode = 1 // operand is the value
	Relative  Mode = 2 // operand is an address offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "pos"
	case Immediate:
		return "imm"
	case Relative:
		return "rel"
	}
	return fmt.Sprintf("mode%d", uint8(m))
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

func (in Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	for i := 0; i < in.Op.Params() && i < len(in.Modes); i++ {
		sb.WriteByte(' ')
		sb.WriteString(in.Modes[i].String())
	}
	return sb.String()
}

// Decode splits an instruction word into its opcode and parameter modes.
//
// The two least significant decimal digits are the opcode, the next three
// digits are the modes of the first, second, and third parameters. Mode
// digits are not checked for OpHalt. Any other mode digit outside of {0, 1, 2},
// including any non-zero digit past the fifth, is a ModeError.
//
// Negative words decode to an invalid opcode, and are left for the caller to
// reject along with any other unknown opcode.
func Decode(raw int64) (in Instruction, err error) {
	if raw < 0 {
		in.Op = Opcode(raw)
		return in, nil
	}

	in.Op = Opcode(raw % 100)
	if in.Op == OpHalt {
		return in, nil
	}

	rest := raw / 100
	for param := 1; rest != 0; param++ {
		digit := rest % 10
		rest /= 10
		if param > len(in.Modes) {
			if digit != 0 {
				return in, ModeError{Value: raw, Param: param, Digit: digit}
			}
			continue
		}
		if digit > int64(Relative) {
			return in, ModeError{Value: raw, Param: param, Digit: digit}
		}
		in.Modes[param-1] = Mode(digit)
	}
	return in, nil
}
