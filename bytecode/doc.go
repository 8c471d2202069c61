// Package bytecode defines the instruction set of the stack VM and the
// binary format used to persist programs.
//
// # Instruction Set
//
// The set is closed; each instruction pairs an Opcode with an int32 operand:
//
//	Push v        push v
//	Duplicate k   push a copy of the element k positions below the top (0 = top)
//	Add           pop b, pop a, push a+b
//	Subtract      pop b, pop a, push a-b
//	Multiply      pop b, pop a, push a*b
//	Divide        pop b, pop a, push a/b (truncating)
//	Jump t        pc = t
//	JumpIfTrue t  if top == 1: pop, pc = t; otherwise pc++ and leave the top
//	Equal         pop b, pop a, push 1 if a == b else 0
//	End           halt
//
// Build programs with the constructors:
//
//	p := bytecode.Program{
//	    bytecode.Push(1),
//	    bytecode.Push(1),
//	    bytecode.Add(),
//	    bytecode.End(),
//	}
//
// # Binary Format
//
//	magic    "SVMB"
//	version  u16 little-endian (currently 1)
//	count    unsigned LEB128
//	count x  opcode u8, operand s32 little-endian
//
// Encode and Decode round-trip any valid program, including the empty one:
//
//	data, _ := bytecode.Encode(p)
//	q, err := bytecode.Decode(data) // q.Equal(p)
//
// Decode failures are *errors.Error values in PhaseDecode with a byte
// position: KindTruncated, KindInvalidMagic, KindUnsupportedVersion,
// KindInvalidOpcode or KindTrailingData.
//
// # Files
//
// SaveFile appends by default, so repeated saves to one path accumulate
// programs. Pass SaveTruncate to overwrite, and LoadAllFile to read every
// appended program back.
package bytecode
