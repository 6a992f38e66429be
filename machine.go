package brainfuck

import (
	"fmt"
	"io"
)

type MachineConfig struct {
	// MaxInstructionExecutionCount bounds the number of dispatched
	// instructions per run. Zero means unlimited. This is a budget, not
	// a cancellation mechanism; callers wanting wall-clock bounds must
	// wrap the Run call themselves.
	MaxInstructionExecutionCount uint          `toml:"max_instruction_execution_count"`
	MemoryConfig                 *MemoryConfig `toml:"memory"`
}

func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		MaxInstructionExecutionCount: 0,
		MemoryConfig:                 &MemoryConfig{CellCount: DEFAULT_CELL_COUNT},
	}
}

// Machine interprets Brainfuck programs against injected byte streams.
// The input and output are opaque: a file, a terminal, or an in-memory
// buffer all drive the same dispatch loop. Reads and writes block until
// the underlying stream completes them.
type Machine struct {
	Tape             *Tape
	Memory           *Memory
	Config           *MachineConfig
	Input            io.Reader
	Output           io.Writer
	InstructionCount uint
}

func NewMachine(mc *MachineConfig, input io.Reader, output io.Writer) *Machine {
	if mc == nil {
		mc = DefaultMachineConfig()
	}
	return &Machine{
		Memory: NewMemoryFromConfig(mc.MemoryConfig),
		Config: mc,
		Input:  input,
		Output: output,
	}
}

// Run executes one program to completion. Memory, the instruction
// pointer, and the instruction count are reset at the start of every
// call, so repeated Runs on one machine behave exactly like runs on
// freshly constructed machines. Loop resolution happens before any
// cell is touched: an unbalanced program fails without executing
// anything. A nil return means the instruction pointer ran off the end
// of the source; any other outcome is a *MachineError.
func (m *Machine) Run(instructions string) error {
	m.InstructionCount = 0

	tape, err := NewTape(instructions)
	if err != nil {
		return err
	}
	m.Tape = tape
	m.Memory.Reset()

	if len(instructions) == 0 {
		return nil
	}

	var exception error

	halt := false
	for !halt {
		ok, op, err := m.Tape.GetCurrentInstruction()
		if !ok {
			return fmt.Errorf("Failed to fetch current instruction: %v", err)
		}
		if ok, err := op.Execute(m); !ok {
			halt = true
			exception = err
		}
		m.InstructionCount = m.InstructionCount + 1
		if !halt && m.Config.MaxInstructionExecutionCount > 0 && m.InstructionCount >= m.Config.MaxInstructionExecutionCount {
			halt = true
			exception = &MachineError{
				Code:     ErrCodeInstructionLimit,
				Position: m.Tape.InstructionPointer,
				Cause:    ErrMaxInstructionExecutionCountReached,
			}
		}
	}

	return exception
}
