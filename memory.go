package brainfuck

import (
	"fmt"
)

const DEFAULT_CELL_COUNT = 30000

type MemoryConfig struct {
	CellCount uint `toml:"cell_count"`
}

// Memory is the byte tape a program operates on: zero-initialized cells
// addressed by MemoryPointer. The tape is unbounded to the right; cells
// are allocated on demand as the pointer advances past the current end.
// Moving left of index 0 is an error, cell arithmetic wraps mod 256.
type Memory struct {
	Cells         []uint8
	MemoryPointer uint
}

func NewMemoryFromConfig(mc *MemoryConfig) *Memory {
	count := uint(DEFAULT_CELL_COUNT)
	if mc != nil && mc.CellCount > 0 {
		count = mc.CellCount
	}
	return NewMemory(count)
}

func NewMemory(cellCount uint) *Memory {
	return &Memory{
		Cells:         make([]uint8, cellCount),
		MemoryPointer: 0,
	}
}

func (m *Memory) Reset() {
	for i := 0; i < len(m.Cells); i++ {
		m.Cells[i] = 0
	}
	m.MemoryPointer = 0
}

func (m *Memory) GetCurrentCell() uint8 {
	return m.Cells[m.MemoryPointer]
}

func (m *Memory) SetCurrentCell(val uint8) {
	m.Cells[m.MemoryPointer] = val
}

func (m *Memory) Increment() {
	m.Cells[m.MemoryPointer] = m.Cells[m.MemoryPointer] + 1
}

func (m *Memory) Decrement() {
	m.Cells[m.MemoryPointer] = m.Cells[m.MemoryPointer] - 1
}

func (m *Memory) MovePointerLeft() (bool, error) {
	if m.MemoryPointer == 0 {
		return false, fmt.Errorf("Failed to move memory pointer [%d] left. Out of bounds (Memory length: [%d])", m.MemoryPointer, len(m.Cells))
	}
	m.MemoryPointer = m.MemoryPointer - 1
	return true, nil
}

func (m *Memory) MovePointerRight() {
	m.MemoryPointer = m.MemoryPointer + 1
	if m.MemoryPointer == uint(len(m.Cells)) {
		m.Cells = append(m.Cells, 0)
	}
}
