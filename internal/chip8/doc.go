// Package chip8 implements the CHIP-8 virtual machine interpreter.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language from the 1970s. A program is a
// sequence of 2-byte instructions executed against a small machine state:
//   - 4KB of memory (0x000-0xFFF), programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a 16 entry return address stack
//   - delay and sound timers that count down at 60 Hz
//   - a 64x32 monochrome display and a 16 key hexadecimal keypad
//
// # Memory Layout
//
//	0x000-0x1FF: reserved interpreter area, the hex digit font lives at FontStart
//	0x200-0xFFF: program and data space
//
// # Execution Model
//
// The Machine does not own a clock. The host calls Step at its chosen
// instruction rate and TickTimers at TimerFrequency. Both are ordinary
// synchronous calls and must be made from a single goroutine, or be externally
// synchronized with any reader of the display.
//
// The key wait instruction (Fx0A) never blocks: Step returns StepWaitKey and
// the host keeps calling Step after updating the keypad until a key goes down.
//
// # Errors
//
// Step and LoadProgram report ErrCapacity, ErrUnknownOpcode, ErrStackOverflow,
// ErrStackUnderflow and ErrOutOfBounds. A failed Step leaves the machine state
// exactly as it was before the failing instruction was fetched.
//
// # Usage Example
//
//	machine := chip8.New(logger)
//	if err := machine.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		result, err := machine.Step()
//		if err != nil {
//			return fmt.Errorf("executing instruction: %w", err)
//		}
//		if result == chip8.StepEnd {
//			break
//		}
//	}
package chip8
