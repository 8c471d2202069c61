package bytecode

import (
	"fmt"
	"strings"
)

// Instruction is a single opcode with its operand.
// Opcodes that ignore the operand carry zero.
type Instruction struct {
	Operand int32
	Opcode  Opcode
}

// String renders the instruction as "Push 5" or "Add".
func (in Instruction) String() string {
	if in.Opcode.HasOperand() {
		return fmt.Sprintf("%s %d", in.Opcode, in.Operand)
	}
	return in.Opcode.String()
}

// New creates an instruction from its parts.
func New(op Opcode, operand int32) Instruction {
	return Instruction{Opcode: op, Operand: operand}
}

// Push creates a push of v.
func Push(v int32) Instruction { return New(OpPush, v) }

// Duplicate creates a duplicate of the element k positions below the top.
func Duplicate(k int32) Instruction { return New(OpDuplicate, k) }

// Add creates an addition.
func Add() Instruction { return New(OpAdd, 0) }

// Subtract creates a subtraction.
func Subtract() Instruction { return New(OpSubtract, 0) }

// Multiply creates a multiplication.
func Multiply() Instruction { return New(OpMultiply, 0) }

// Divide creates a truncating division.
func Divide() Instruction { return New(OpDivide, 0) }

// Jump creates an unconditional jump to target.
func Jump(target int32) Instruction { return New(OpJump, target) }

// JumpIfTrue creates a conditional jump to target.
func JumpIfTrue(target int32) Instruction { return New(OpJumpIfTrue, target) }

// Equal creates an equality comparison.
func Equal() Instruction { return New(OpEqual, 0) }

// End creates a halt.
func End() Instruction { return New(OpEnd, 0) }

// Program is an ordered instruction sequence. Indices are jump targets.
type Program []Instruction

// Clone returns an independent copy of p.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	out := make(Program, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and other hold the same instructions in the same order.
func (p Program) Equal(other Program) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns an index-labelled listing, one instruction per line.
func (p Program) String() string {
	var b strings.Builder
	for i, in := range p {
		fmt.Fprintf(&b, "%04d: %s\n", i, in)
	}
	return b.String()
}
