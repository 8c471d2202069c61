package bytecode

import "fmt"

// Program binary format magic and version.
const (
	// Magic is the program file signature ("SVMB").
	Magic = "SVMB"

	// Version is the supported program format version.
	Version uint16 = 1

	// InstructionSize is the encoded width of one instruction: opcode tag + int32 operand.
	InstructionSize = 5
)

// Opcode identifies the operation of an instruction.
// The set is closed; the byte values double as the wire tags.
type Opcode byte

const (
	OpPush       Opcode = 0x00 // push operand
	OpDuplicate  Opcode = 0x01 // push copy of the element operand positions below the top
	OpAdd        Opcode = 0x02
	OpSubtract   Opcode = 0x03
	OpMultiply   Opcode = 0x04
	OpDivide     Opcode = 0x05 // truncating integer division
	OpJump       Opcode = 0x06 // pc = operand
	OpJumpIfTrue Opcode = 0x07 // pop and jump if top == 1
	OpEqual      Opcode = 0x08
	OpEnd        Opcode = 0x09 // halt

	opCount = 10
)

var opcodeNames = [opCount]string{
	OpPush:       "Push",
	OpDuplicate:  "Duplicate",
	OpAdd:        "Add",
	OpSubtract:   "Subtract",
	OpMultiply:   "Multiply",
	OpDivide:     "Divide",
	OpJump:       "Jump",
	OpJumpIfTrue: "JumpIfTrue",
	OpEqual:      "Equal",
	OpEnd:        "End",
}

// Opcodes returns every opcode in tag order.
func Opcodes() []Opcode {
	ops := make([]Opcode, opCount)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

// Valid reports whether op is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op < opCount
}

// String returns the opcode name, or Opcode(0xNN) for out-of-set values.
func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(0x%02x)", byte(op))
}

// HasOperand reports whether the operand is meaningful for op.
// Other opcodes conventionally carry a zero operand.
func (op Opcode) HasOperand() bool {
	switch op {
	case OpPush, OpDuplicate, OpJump, OpJumpIfTrue:
		return true
	}
	return false
}

// OpcodeFromByte maps a raw tag onto the instruction set.
// Unknown tags fall back to OpEnd, so an unrecognized byte halts execution.
// Decode rejects such tags; the disassembler uses this mapping to print them.
func OpcodeFromByte(b byte) Opcode {
	op := Opcode(b)
	if !op.Valid() {
		return OpEnd
	}
	return op
}

// ParseOpcode looks up an opcode by its name ("Push", "JumpIfTrue", ...).
func ParseOpcode(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}
	return 0, false
}
