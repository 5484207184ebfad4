package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of every instruction in bytes.
const OpcodeSize = 2

// Opcode is a 2-byte instruction word. For an opcode ABCD the fields are
// named: x = B, y = C, n = D, nn = CD, nnn = BCD.
type Opcode uint16

// Family returns the leading nibble that selects the instruction group.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// X returns the first register field.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the second register field.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// NN returns the low byte.
func (o Opcode) NN() uint8 {
	return uint8(o)
}

// NNN returns the 12-bit address field.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}

// Instruction returns the instruction descriptor of the opcode from the shared
// CHIP-8 opcode table or nil if the opcode is not part of the table.
func (o Opcode) Instruction() *chip8cpu.Instruction {
	w := uint16(o)
	for _, op := range chip8cpu.Opcodes[int(o.Family())] {
		if op.Info.Mask&w == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Mnemonic returns the instruction name of the opcode or an empty string.
func (o Opcode) Mnemonic() string {
	ins := o.Instruction()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// IsSkip returns whether the opcode conditionally skips the next instruction.
func (o Opcode) IsSkip() bool {
	ins := o.Instruction()
	if ins == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(ins.Name)
}
