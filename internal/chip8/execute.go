package chip8

import "fmt"

// execute applies the effect of a single decoded instruction. The program
// counter already points to the following instruction.
func (m *Machine) execute(op Opcode) (StepResult, error) {
	x, y := op.X(), op.Y()

	switch op.Family() {
	case 0x0:
		return m.executeSystem(op)

	case 0x1: // JP nnn
		m.PC = op.NNN()

	case 0x2: // CALL nnn
		if err := m.call(op.NNN()); err != nil {
			return StepExecuted, err
		}

	case 0x3: // SE Vx, nn
		m.skipIf(m.V[x] == op.NN())

	case 0x4: // SNE Vx, nn
		m.skipIf(m.V[x] != op.NN())

	case 0x5: // SE Vx, Vy
		if op.N() != 0 {
			return StepExecuted, m.unknownOpcode(op)
		}
		m.skipIf(m.V[x] == m.V[y])

	case 0x6: // LD Vx, nn
		m.V[x] = op.NN()

	case 0x7: // ADD Vx, nn, VF is not affected
		m.V[x] += op.NN()

	case 0x8:
		return m.executeALU(op)

	case 0x9: // SNE Vx, Vy
		if op.N() != 0 {
			return StepExecuted, m.unknownOpcode(op)
		}
		m.skipIf(m.V[x] != m.V[y])

	case 0xA: // LD I, nnn
		m.I = op.NNN()

	case 0xB: // JP V0, nnn
		m.PC = op.NNN() + uint16(m.V[0])

	case 0xC: // RND Vx, nn
		m.V[x] = byte(m.random.IntN(256)) & op.NN()

	case 0xD: // DRW Vx, Vy, n
		if err := m.draw(x, y, op.N()); err != nil {
			return StepExecuted, err
		}
		return StepDraw, nil

	case 0xE:
		return m.executeKey(op)

	case 0xF:
		return m.executeMisc(op)
	}

	return StepExecuted, nil
}

func (m *Machine) executeSystem(op Opcode) (StepResult, error) {
	switch op {
	case 0x00E0: // CLS
		m.Display.Clear()
		return StepDraw, nil

	case 0x00EE: // RET
		if err := m.ret(); err != nil {
			return StepExecuted, err
		}
		return StepExecuted, nil

	default: // SYS nnn, machine code routines of the original interpreter are ignored
		return StepExecuted, nil
	}
}

// executeALU handles the 8xyN register to register family. VF is written
// after the result, so the flag wins when x is F.
func (m *Machine) executeALU(op Opcode) (StepResult, error) {
	x, y := op.X(), op.Y()
	vx, vy := m.V[x], m.V[y]

	switch op.N() {
	case 0x0: // LD Vx, Vy
		m.V[x] = vy

	case 0x1: // OR Vx, Vy
		m.V[x] = vx | vy

	case 0x2: // AND Vx, Vy
		m.V[x] = vx & vy

	case 0x3: // XOR Vx, Vy
		m.V[x] = vx ^ vy

	case 0x4: // ADD Vx, Vy, VF = carry
		sum := uint16(vx) + uint16(vy)
		m.V[x] = byte(sum)
		m.V[FlagRegister] = boolToByte(sum > 0xFF)

	case 0x5: // SUB Vx, Vy, VF = not borrow
		m.V[x] = vx - vy
		m.V[FlagRegister] = boolToByte(vx >= vy)

	case 0x6: // SHR Vx, VF = dropped low bit
		m.V[x] = vx >> 1
		m.V[FlagRegister] = vx & 0x01

	case 0x7: // SUBN Vx, Vy, VF = not borrow
		m.V[x] = vy - vx
		m.V[FlagRegister] = boolToByte(vy >= vx)

	case 0xE: // SHL Vx, VF = dropped high bit
		m.V[x] = vx << 1
		m.V[FlagRegister] = vx >> 7

	default:
		return StepExecuted, m.unknownOpcode(op)
	}

	return StepExecuted, nil
}

func (m *Machine) executeKey(op Opcode) (StepResult, error) {
	key := Key(m.V[op.X()] & 0x0F)

	switch op.NN() {
	case 0x9E: // SKP Vx
		m.skipIf(m.Keypad.IsDown(key))

	case 0xA1: // SKNP Vx
		m.skipIf(!m.Keypad.IsDown(key))

	default:
		return StepExecuted, m.unknownOpcode(op)
	}

	return StepExecuted, nil
}

func (m *Machine) executeMisc(op Opcode) (StepResult, error) {
	x := op.X()

	switch op.NN() {
	case 0x07: // LD Vx, DT
		m.V[x] = m.DelayTimer

	case 0x0A: // LD Vx, K
		m.beginKeyWait(x)
		return StepWaitKey, nil

	case 0x15: // LD DT, Vx
		m.DelayTimer = m.V[x]

	case 0x18: // LD ST, Vx
		m.SoundTimer = m.V[x]

	case 0x1E: // ADD I, Vx
		m.I += uint16(m.V[x])

	case 0x29: // LD F, Vx
		m.I = FontAddress(m.V[x])

	case 0x33: // LD B, Vx
		if err := checkRange(m.I, 3); err != nil {
			return StepExecuted, err
		}
		value := m.V[x]
		m.Memory[m.I] = value / 100
		m.Memory[m.I+1] = value / 10 % 10
		m.Memory[m.I+2] = value % 10

	case 0x55: // LD [I], Vx, I is not modified
		count := int(x) + 1
		if err := checkRange(m.I, count); err != nil {
			return StepExecuted, err
		}
		copy(m.Memory[m.I:], m.V[:count])

	case 0x65: // LD Vx, [I], I is not modified
		count := int(x) + 1
		if err := checkRange(m.I, count); err != nil {
			return StepExecuted, err
		}
		copy(m.V[:count], m.Memory[m.I:int(m.I)+count])

	default:
		return StepExecuted, m.unknownOpcode(op)
	}

	return StepExecuted, nil
}

// draw XORs an n byte sprite read from memory at I onto the display at
// (Vx, Vy) and sets VF to the collision state.
func (m *Machine) draw(x, y, n uint8) error {
	if err := checkRange(m.I, int(n)); err != nil {
		return err
	}

	sprite := m.Memory[m.I : int(m.I)+int(n)]
	collision := m.Display.DrawSprite(m.V[x], m.V[y], sprite)
	m.V[FlagRegister] = boolToByte(collision)
	return nil
}

func (m *Machine) call(address uint16) error {
	if int(m.SP) >= StackSize {
		return fmt.Errorf("%w: calling $%03X with %d return addresses on the stack",
			ErrStackOverflow, address, m.SP)
	}

	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = address
	return nil
}

func (m *Machine) ret() error {
	if m.SP == 0 {
		return fmt.Errorf("%w: returning at address $%04X", ErrStackUnderflow, m.PC-OpcodeSize)
	}

	m.SP--
	m.PC = m.Stack[m.SP]
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.PC += OpcodeSize
	}
}

func (m *Machine) unknownOpcode(op Opcode) error {
	return &OpcodeError{
		Address: m.PC - OpcodeSize,
		Opcode:  op,
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
