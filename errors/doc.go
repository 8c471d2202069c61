// Package errors provides structured error types for the stack VM.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Execution faults raised by the engine use the fault kinds (KindStackUnderflow,
// KindIllegalInstruction, ...) with PhaseExecute and carry the program counter and
// opcode of the faulting instruction.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExecute, errors.KindStackUnderflow).
//		PC(3).
//		Opcode("Add").
//		Detail("need 2 operands, have %d", 1).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Fault(errors.KindIllegalInstruction, pc, "Jump", "target 9 out of range")
//	err := errors.Truncated(pos, "operand")
//
// KindOf maps any error (including nil) back onto the fault taxonomy:
//
//	switch errors.KindOf(m.Step()) {
//	case errors.KindOk:
//	case errors.KindStackUnderflow:
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
