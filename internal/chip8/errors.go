package chip8

import (
	"errors"
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Errors reported by the interpreter. The stack and memory errors are shared
// with the CPU package of retrogolib.
var (
	ErrCapacity       = errors.New("program exceeds available memory")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = chip8cpu.ErrStackOverflow
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow
	ErrOutOfBounds    = chip8cpu.ErrMemoryOutOfBounds
)

// OpcodeError is returned when an instruction word does not match any decode rule.
type OpcodeError struct {
	Address uint16 // address the opcode was fetched from
	Opcode  Opcode
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %s at address $%04X", e.Opcode, e.Address)
}

// Unwrap returns ErrUnknownOpcode.
func (e *OpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// AddressError is returned when a fetch or a memory access built from I
// resolves to an address outside of memory.
type AddressError struct {
	Address int // first address that is out of range
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address $%04X is outside of memory", e.Address)
}

// Unwrap returns ErrOutOfBounds.
func (e *AddressError) Unwrap() error {
	return ErrOutOfBounds
}
