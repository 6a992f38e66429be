package brainfuck

import (
	"fmt"
)

var ErrMaxInstructionExecutionCountReached error = fmt.Errorf("Instruction execution count limit reached")

type ErrCode int

const (
	ErrCodeUnclosedLoop ErrCode = iota
	ErrCodeUnexpectedLoopEnd
	ErrCodePointerUnderflow
	ErrCodeOutputFailed
	ErrCodeInputFailed
	ErrCodeInstructionLimit
)

func (c ErrCode) String() string {
	switch c {
	case ErrCodeUnclosedLoop:
		return "unclosed loop"
	case ErrCodeUnexpectedLoopEnd:
		return "unexpected loop end"
	case ErrCodePointerUnderflow:
		return "memory pointer underflow"
	case ErrCodeOutputFailed:
		return "output failed"
	case ErrCodeInputFailed:
		return "input failed"
	case ErrCodeInstructionLimit:
		return "instruction limit reached"
	default:
		return fmt.Sprintf("unknown error code [%d]", int(c))
	}
}

// MachineError is the structured result of a failed run: what went
// wrong, where on the instruction tape it went wrong, and the
// underlying cause if one exists. The machine never prints anything;
// presentation belongs to the caller.
type MachineError struct {
	Code     ErrCode
	Position int
	Cause    error
}

func (e *MachineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at tape index [%d]. %v", e.Code, e.Position, e.Cause)
	}
	return fmt.Sprintf("%s at tape index [%d]", e.Code, e.Position)
}

func (e *MachineError) Unwrap() error {
	return e.Cause
}
