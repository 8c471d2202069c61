package asm

import (
	"strconv"
	"strings"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/errors"
)

var mnemonics = map[string]bytecode.Opcode{
	"psh":  bytecode.OpPush,
	"dplc": bytecode.OpDuplicate,
	"sum":  bytecode.OpAdd,
	"sub":  bytecode.OpSubtract,
	"mul":  bytecode.OpMultiply,
	"div":  bytecode.OpDivide,
	"jmp":  bytecode.OpJump,
	"jif":  bytecode.OpJumpIfTrue,
	"eq":   bytecode.OpEqual,
	"end":  bytecode.OpEnd,
}

var names = func() map[bytecode.Opcode]string {
	m := make(map[bytecode.Opcode]string, len(mnemonics))
	for name, op := range mnemonics {
		m[op] = name
	}
	return m
}()

// Mnemonic returns the assembly mnemonic for op.
func Mnemonic(op bytecode.Opcode) (string, bool) {
	name, ok := names[op]
	return name, ok
}

// Lookup returns the opcode for a mnemonic.
func Lookup(mnemonic string) (bytecode.Opcode, bool) {
	op, ok := mnemonics[mnemonic]
	return op, ok
}

// TranslateLine converts one line of assembly text into an instruction.
//
// The line is split on single spaces. An empty line is End 0. Two tokens
// are a mnemonic and an integer operand; any other token count uses the
// first token as the mnemonic with operand 0. Unknown mnemonics map to End.
// The only error is an operand that is not a 32-bit integer.
func TranslateLine(line string) (bytecode.Instruction, error) {
	if line == "" {
		return bytecode.End(), nil
	}

	tokens := strings.Split(line, " ")
	op, ok := mnemonics[tokens[0]]
	if !ok {
		op = bytecode.OpEnd
	}

	if len(tokens) != 2 {
		return bytecode.New(op, 0), nil
	}

	v, err := parseOperand(tokens[1])
	if err != nil {
		return bytecode.Instruction{}, err
	}
	return bytecode.New(op, v), nil
}

func parseOperand(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.New(errors.PhaseAssemble, errors.KindInvalidInput).
			Value(s).
			Cause(err).
			Detail("operand %q is not a 32-bit integer", s).
			Build()
	}
	return int32(v), nil
}
