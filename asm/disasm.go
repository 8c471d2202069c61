package asm

import (
	"strconv"
	"strings"

	"github.com/wippyai/stackvm/bytecode"
)

// Disassemble renders p as assembly text, one instruction per line.
// Opcodes without an operand print only the mnemonic. Assemble of the
// result yields p again, in both lenient and strict mode.
func Disassemble(p bytecode.Program) string {
	var b strings.Builder
	for _, in := range p {
		// Out-of-set opcodes have no mnemonic; they print as end.
		op := bytecode.OpcodeFromByte(byte(in.Opcode))
		b.WriteString(names[op])
		if op.HasOperand() || in.Operand != 0 {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatInt(int64(in.Operand), 10))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
