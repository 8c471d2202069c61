// Package engine executes bytecode programs one instruction at a time.
//
// A Machine owns all run state: the operand stack, the loaded program, the
// program counter and the halted flag. Nothing else mutates it; callers
// drive it through Step and inspect it through read-only accessors.
//
// # Driving a Machine
//
//	m := engine.New()
//	m.Load(program)
//	for !m.Halted() {
//	    if err := m.Step(); err != nil {
//	        // err is an *errors.Error; errors.KindOf(err) gives the fault
//	        break
//	    }
//	}
//	fmt.Print(m.StackListing())
//
// Step never blocks and never retries. A fault is terminal for the run:
// the machine is left as it was when the faulting check ran, and the
// caller decides whether to report, persist or discard it.
//
// # Faults
//
//	StackUnderflow      an instruction needs more operands than the stack holds
//	IllegalInstruction  pc or jump target out of range, negative Duplicate depth,
//	                    or an opcode outside the set
//	DivisionByZero      Divide with a zero divisor
//	StackOverflow       push past the WithMaxStack bound
//
// IllegalInstructionAccess is part of the taxonomy but never raised here.
//
// # Control Flow
//
// Jump checks its target. JumpIfTrue does not: when the top of the stack is
// exactly 1 it pops it and jumps, and an out-of-range target faults on the
// following Step. When the top is anything else the value stays on the stack
// and execution falls through.
//
// # Snapshots
//
// Snapshot copies the state; MarshalSnapshot encodes it as canonical CBOR
// and Restore rebuilds a Machine from it.
package engine
