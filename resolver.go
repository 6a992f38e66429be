package brainfuck

import (
	"fmt"
)

// JumpTable maps every loop-open position to its matching loop-close
// position and back again, so dispatch never re-scans the source for a
// bracket at runtime. For any bracket position p, table[table[p]] == p.
type JumpTable map[int]int

const WHILE_STACK_CAP = 10

// ResolveLoops scans the instruction source once and pairs every
// OP_WHILE with its matching OP_WHILE_END. Matching is strictly nested:
// an OP_WHILE_END always closes the most recent open loop. Unbalanced
// sources fail with the position of the stray OP_WHILE_END, or with the
// position of the first unclosed OP_WHILE when input ends early.
func ResolveLoops(instructions string) (JumpTable, error) {
	jumps := make(JumpTable)
	stack := make([]int, 0, WHILE_STACK_CAP)

	for i := 0; i < len(instructions); i++ {
		switch OP(instructions[i]) {
		case OP_WHILE:
			stack = append(stack, i)
		case OP_WHILE_END:
			if len(stack) == 0 {
				return nil, &MachineError{
					Code:     ErrCodeUnexpectedLoopEnd,
					Position: i,
					Cause:    fmt.Errorf("OP_WHILE_END at tape index [%d] has no open OP_WHILE", i),
				}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[open] = i
			jumps[i] = open
		}
	}

	if len(stack) > 0 {
		return nil, &MachineError{
			Code:     ErrCodeUnclosedLoop,
			Position: stack[0],
			Cause:    fmt.Errorf("OP_WHILE at tape index [%d] is never closed by an OP_WHILE_END", stack[0]),
		}
	}

	return jumps, nil
}
