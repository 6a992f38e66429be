package brainfuck

import (
	"testing"
)

func TestNewMemoryFromConfig(t *testing.T) {
	memory := NewMemoryFromConfig(&MemoryConfig{CellCount: 100})
	if memory == nil {
		t.Fatalf("NewMemoryFromConfig returned nil")
	}

	if len(memory.Cells) != 100 {
		t.Errorf("Memory length [%d] isn't [100]", len(memory.Cells))
	}

	memory = NewMemoryFromConfig(nil)
	if len(memory.Cells) != DEFAULT_CELL_COUNT {
		t.Errorf("Memory length [%d] isn't the default [%d]", len(memory.Cells), DEFAULT_CELL_COUNT)
	}
}

func TestIncrementWraps(t *testing.T) {
	memory := NewMemory(1)
	memory.Cells[0] = 255

	memory.Increment()

	if val := memory.GetCurrentCell(); val != 0 {
		t.Errorf("Increment of [255] produced [%d], expected wrap to [0]", val)
	}
}

func TestDecrementWraps(t *testing.T) {
	memory := NewMemory(1)

	memory.Decrement()

	if val := memory.GetCurrentCell(); val != 255 {
		t.Errorf("Decrement of [0] produced [%d], expected wrap to [255]", val)
	}
}

func TestNetModularArithmetic(t *testing.T) {
	memory := NewMemory(1)

	for i := 0; i < 300; i++ {
		memory.Increment()
	}
	for i := 0; i < 45; i++ {
		memory.Decrement()
	}

	expected := uint8((300 - 45) % 256)
	if val := memory.GetCurrentCell(); val != expected {
		t.Errorf("Net arithmetic produced [%d], expected [(300-45) mod 256 = %d]", val, expected)
	}
}

func TestMovePointerLeft(t *testing.T) {
	memory := NewMemory(10)

	if ok, err := memory.MovePointerLeft(); ok {
		t.Errorf("Unexpected success moving memory pointer left of index 0")
	} else if err == nil {
		t.Errorf("MovePointerLeft returned !ok but with an undefined err")
	}

	for i := range memory.Cells {
		if memory.Cells[i] != 0 {
			t.Errorf("Memory cell [%d] mutated to [%d] by a failed pointer move", i, memory.Cells[i])
		}
	}

	memory.MovePointerRight()
	if ok, err := memory.MovePointerLeft(); !ok {
		t.Errorf("Unexpected failure calling Memory.MovePointerLeft: %v", err)
	}

	if memory.MemoryPointer != 0 {
		t.Errorf("Memory pointer [%d] isn't [0]", memory.MemoryPointer)
	}
}

func TestMovePointerRightGrows(t *testing.T) {
	memory := NewMemory(1)

	for i := 0; i < 5; i++ {
		memory.MovePointerRight()
	}

	if memory.MemoryPointer != 5 {
		t.Errorf("Memory pointer [%d] isn't [5]", memory.MemoryPointer)
	}

	if len(memory.Cells) < 6 {
		t.Fatalf("Memory length [%d] didn't grow to cover pointer [5]", len(memory.Cells))
	}

	if val := memory.GetCurrentCell(); val != 0 {
		t.Errorf("Freshly grown cell holds [%d], expected [0]", val)
	}
}

func TestMemoryReset(t *testing.T) {
	memory := NewMemory(3)
	memory.Cells[0] = 7
	memory.MovePointerRight()
	memory.SetCurrentCell(9)

	memory.Reset()

	if memory.MemoryPointer != 0 {
		t.Errorf("Memory pointer [%d] isn't [0] after Reset", memory.MemoryPointer)
	}

	for i := range memory.Cells {
		if memory.Cells[i] != 0 {
			t.Errorf("Memory cell [%d] holds [%d] after Reset, expected [0]", i, memory.Cells[i])
		}
	}
}
