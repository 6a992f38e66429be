package brainfuck

import (
	"fmt"
	"io"
)

// The OPs for Brainfuck. Only the eight canonical operations are
// meaningful. Every other byte is a comment: it executes as NO_OP but
// still occupies a tape position, so jump targets and the instruction
// pointer are always positions in the raw source.

type OP byte

const (
	OP_POINTER_LEFT  = OP('<')
	OP_POINTER_RIGHT = OP('>')
	OP_INC           = OP('+')
	OP_DEC           = OP('-')
	OP_WRITE         = OP('.')
	OP_READ          = OP(',')
	OP_WHILE         = OP('[')
	OP_WHILE_END     = OP(']')
	NO_OP            = OP(0)
)

var OP_SET = [...]OP{
	OP_POINTER_LEFT,
	OP_POINTER_RIGHT,
	OP_INC,
	OP_DEC,
	OP_WRITE,
	OP_READ,
	OP_WHILE,
	OP_WHILE_END,
}

// Canonical reports whether o is one of the eight Brainfuck operations.
func (o OP) Canonical() bool {
	for _, op := range OP_SET {
		if o == op {
			return true
		}
	}
	return false
}

func (o OP) Execute(m *Machine) (bool, error) {
	switch o {
	case OP_INC:
		m.Memory.Increment()
	case OP_DEC:
		m.Memory.Decrement()
	case OP_POINTER_LEFT:
		if ok, err := m.Memory.MovePointerLeft(); !ok {
			return false, &MachineError{
				Code:     ErrCodePointerUnderflow,
				Position: m.Tape.InstructionPointer,
				Cause:    err,
			}
		}
	case OP_POINTER_RIGHT:
		m.Memory.MovePointerRight()
	case OP_WRITE:
		if err := m.writeByte(m.Memory.GetCurrentCell()); err != nil {
			return false, &MachineError{
				Code:     ErrCodeOutputFailed,
				Position: m.Tape.InstructionPointer,
				Cause:    err,
			}
		}
	case OP_READ:
		if val, ok, err := m.readByte(); err != nil {
			return false, &MachineError{
				Code:     ErrCodeInputFailed,
				Position: m.Tape.InstructionPointer,
				Cause:    err,
			}
		} else if ok {
			// Exhausted input leaves the current cell unmodified. A
			// script that pre-loads a sentinel value can detect
			// end-of-input by reading it back unchanged.
			m.Memory.SetCurrentCell(val)
		}
	case OP_WHILE:
		if m.Memory.GetCurrentCell() == 0 {
			if ok, err := m.Tape.JumpToLoopEnd(); !ok {
				return false, fmt.Errorf("OP_WHILE at tape index [%d] failed to jump to matching OP_WHILE_END. %v", m.Tape.InstructionPointer, err)
			}
		}
	case OP_WHILE_END:
		if m.Memory.GetCurrentCell() != 0 {
			if ok, err := m.Tape.JumpToLoopStart(); !ok {
				return false, fmt.Errorf("OP_WHILE_END at tape index [%d] failed to jump to matching OP_WHILE. %v", m.Tape.InstructionPointer, err)
			}
		}
	default:
		// Comment byte. Fall through to the advance below.
	}

	if !m.Tape.Advance() {
		return false, nil
	}

	return true, nil
}

// readByte pulls one byte from the machine's input. The second return
// is false when the input is exhausted; only genuine read failures
// produce an error.
func (m *Machine) readByte() (uint8, bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(m.Input, buf[:]); err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	return buf[0], true, nil
}

func (m *Machine) writeByte(val uint8) error {
	_, err := m.Output.Write([]byte{val})
	return err
}
