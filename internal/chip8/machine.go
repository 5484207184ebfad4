package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine size constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, used as carry, borrow and collision output.
	FlagRegister = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// TimerFrequency is the rate in Hz at which TickTimers has to be called.
	TimerFrequency = 60
)

// StepResult describes the outcome of a successful Step.
type StepResult int

// Step results.
const (
	StepExecuted StepResult = iota // an instruction was executed
	StepDraw                       // an instruction changed the display
	StepWaitKey                    // the key wait instruction is not satisfied yet
	StepEnd                        // the program counter reached the end of the loaded program
)

func (r StepResult) String() string {
	switch r {
	case StepExecuted:
		return "executed"
	case StepDraw:
		return "draw"
	case StepWaitKey:
		return "wait key"
	case StepEnd:
		return "end"
	default:
		return fmt.Sprintf("StepResult(%d)", int(r))
	}
}

// RandomSource provides the random numbers for the Cxnn instruction.
// *rand.Rand of math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the random source used by the Cxnn instruction.
func WithRandom(random RandomSource) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithTrace enables a debug log record for every executed instruction.
func WithTrace(enabled bool) Option {
	return func(m *Machine) {
		m.trace = enabled
	}
}

// Machine is the complete CHIP-8 machine state. All fields are fixed size
// values, the machine can be copied to take a snapshot.
type Machine struct {
	Memory     [MemorySize]byte
	V          [RegisterCount]byte
	I          uint16
	PC         uint16
	Stack      [StackSize]uint16
	SP         uint8 // number of used stack entries
	DelayTimer byte
	SoundTimer byte
	Display    Display
	Keypad     Keypad

	logger *log.Logger
	random RandomSource
	trace  bool

	programEnd uint16 // first address after the loaded program, 0 if no program was loaded

	waiting      bool // Fx0A is pending
	waitRegister uint8
	waitHeld     [KeyCount]bool // keys that were down when the wait began
}

// New returns a new machine in its reset state.
func New(logger *log.Logger, options ...Option) *Machine {
	m := &Machine{
		logger: logger,
		random: globalRandom{},
	}
	for _, option := range options {
		option(m)
	}
	m.Reset()
	return m
}

// Reset zeroes memory, registers, stack, timers and display, reloads the font
// and sets the program counter to ProgramStart. The keypad is owned by the
// input collaborator and is left untouched.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]byte{}
	copy(m.Memory[FontStart:], fontSet[:])
	m.V = [RegisterCount]byte{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = [StackSize]uint16{}
	m.SP = 0
	m.DelayTimer = 0
	m.SoundTimer = 0
	m.Display.Clear()
	m.programEnd = 0
	m.cancelKeyWait()
}

// LoadProgram copies the program into memory starting at ProgramStart and
// records the first address after it as program end, see ProgramEnd.
// It does not modify the program counter or any register, call Reset first
// when reusing a machine.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program has %d bytes, available are %d bytes",
			ErrCapacity, len(program), MaxProgramSize)
	}

	copy(m.Memory[ProgramStart:], program)
	m.programEnd = ProgramStart + uint16(len(program))

	m.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("end", m.programEnd))
	return nil
}

// ProgramEnd returns the first address after the loaded program or 0 if no
// program was loaded since the last reset.
func (m *Machine) ProgramEnd() uint16 {
	return m.programEnd
}

// Step executes a single instruction. The program counter is advanced past
// the instruction before it is executed, jumps and calls overwrite it.
// While a key wait is pending, Step only checks the keypad and does not fetch.
// On error the machine state is left as it was before the call.
func (m *Machine) Step() (StepResult, error) {
	if m.waiting {
		return m.resolveKeyWait(), nil
	}
	pc := m.PC
	op, err := m.fetch(pc)
	if err != nil {
		return StepExecuted, err
	}
	if m.programEnd != 0 && pc >= m.programEnd {
		return StepEnd, nil
	}

	m.PC += OpcodeSize
	result, err := m.execute(op)
	if err != nil {
		m.PC = pc
		return StepExecuted, err
	}

	if m.trace {
		m.logger.Debug("Executed instruction",
			log.Hex("pc", pc),
			log.Stringer("opcode", op),
			log.String("mnemonic", op.Mnemonic()),
			log.Stringer("result", result))
	}
	return result, nil
}

// TickTimers decrements the delay and sound timers by one if they are not
// zero. It has to be called at TimerFrequency, independent of Step.
func (m *Machine) TickTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// SoundActive returns whether a tone should currently be played.
func (m *Machine) SoundActive() bool {
	return m.SoundTimer > 0
}

// KeyDown marks a keypad key as down.
func (m *Machine) KeyDown(key Key) {
	m.Keypad.Press(key)
}

// KeyUp marks a keypad key as up.
func (m *Machine) KeyUp(key Key) {
	m.Keypad.Release(key)
}

// Waiting returns whether a key wait instruction is pending.
func (m *Machine) Waiting() bool {
	return m.waiting
}

// fetch reads the big endian instruction word at the given address.
func (m *Machine) fetch(address uint16) (Opcode, error) {
	if err := checkRange(address, OpcodeSize); err != nil {
		return 0, err
	}
	return Opcode(uint16(m.Memory[address])<<8 | uint16(m.Memory[address+1])), nil
}

// beginKeyWait starts a pending key wait. Keys that are already down have to
// be released before they can satisfy the wait.
func (m *Machine) beginKeyWait(register uint8) {
	m.waiting = true
	m.waitRegister = register
	m.waitHeld = m.Keypad.keys
}

// resolveKeyWait completes a pending key wait if a key transitioned to down.
func (m *Machine) resolveKeyWait() StepResult {
	for i := range KeyCount {
		if !m.Keypad.keys[i] {
			m.waitHeld[i] = false
			continue
		}
		if m.waitHeld[i] {
			continue
		}

		m.V[m.waitRegister] = byte(i)
		m.cancelKeyWait()
		return StepExecuted
	}
	return StepWaitKey
}

func (m *Machine) cancelKeyWait() {
	m.waiting = false
	m.waitRegister = 0
	m.waitHeld = [KeyCount]bool{}
}

// checkRange returns an error if the memory range starting at address with
// the given length is not fully inside of memory.
func checkRange(address uint16, length int) error {
	if length > 0 && int(address)+length > MemorySize {
		first := max(int(address), MemorySize)
		return &AddressError{Address: first}
	}
	return nil
}
