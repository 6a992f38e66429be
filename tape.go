package brainfuck

import (
	"fmt"
)

// Tape holds the instruction source and the instruction pointer. Loops
// are resolved up front: NewTape fails on unbalanced brackets, so a
// tape that exists always has a complete jump table and dispatch never
// searches for a matching bracket.
type Tape struct {
	Instructions       string
	InstructionPointer int
	Jumps              JumpTable
}

func NewTape(instructions string) (*Tape, error) {
	jumps, err := ResolveLoops(instructions)
	if err != nil {
		return nil, err
	}
	return &Tape{
		Instructions:       instructions,
		InstructionPointer: 0,
		Jumps:              jumps,
	}, nil
}

func (t *Tape) Reset() {
	t.InstructionPointer = 0
}

func (t *Tape) InBounds(new_val int) bool {
	return new_val >= 0 && new_val <= len(t.Instructions)-1
}

func (t *Tape) Advance() bool {
	if t.InBounds(t.InstructionPointer + 1) {
		t.InstructionPointer = t.InstructionPointer + 1
		return true
	} else {
		return false
	}
}

func (t *Tape) GetCurrentInstruction() (bool, OP, error) {
	if !t.InBounds(t.InstructionPointer) {
		return false, NO_OP, fmt.Errorf("InstructionPointer [%d] out of bounds (Instruction length: [%d])", t.InstructionPointer, len(t.Instructions))
	}
	return true, OP(t.Instructions[t.InstructionPointer]), nil
}

// JumpToLoopEnd moves the instruction pointer from an OP_WHILE to its
// matching OP_WHILE_END. The caller advances past it on the next step.
func (t *Tape) JumpToLoopEnd() (bool, error) {
	target, found := t.Jumps[t.InstructionPointer]
	if !found {
		return false, fmt.Errorf("No jump target for tape index [%d]", t.InstructionPointer)
	}
	t.InstructionPointer = target
	return true, nil
}

// JumpToLoopStart moves the instruction pointer from an OP_WHILE_END
// back to its matching OP_WHILE. The advance on the next step re-enters
// the loop body.
func (t *Tape) JumpToLoopStart() (bool, error) {
	target, found := t.Jumps[t.InstructionPointer]
	if !found {
		return false, fmt.Errorf("No jump target for tape index [%d]", t.InstructionPointer)
	}
	t.InstructionPointer = target
	return true, nil
}
