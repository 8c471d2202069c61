package asm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/stackvm/asm"
	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/errors"
)

func TestTranslateLine(t *testing.T) {
	tests := []struct {
		line string
		want bytecode.Instruction
	}{
		{"", bytecode.End()},
		{"psh 5", bytecode.Push(5)},
		{"psh -12", bytecode.Push(-12)},
		{"dplc 1", bytecode.Duplicate(1)},
		{"sum", bytecode.Add()},
		{"sub", bytecode.Subtract()},
		{"mul", bytecode.Multiply()},
		{"div", bytecode.Divide()},
		{"jmp 3", bytecode.Jump(3)},
		{"jif 0", bytecode.JumpIfTrue(0)},
		{"eq", bytecode.Equal()},
		{"end", bytecode.End()},
		{"sum 4", bytecode.New(bytecode.OpAdd, 4)},

		// Unknown mnemonics fall back to End and keep the operand.
		{"nop", bytecode.End()},
		{"nop 7", bytecode.New(bytecode.OpEnd, 7)},
		{"PSH 1", bytecode.New(bytecode.OpEnd, 1)},

		// Token counts other than two drop the operand.
		{"psh 1 2", bytecode.Push(0)},
		{"psh", bytecode.Push(0)},
		{"psh  1", bytecode.Push(0)},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := asm.TranslateLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateLineBadOperand(t *testing.T) {
	for _, line := range []string{"psh x", "psh 2147483648", "jmp 1.5", "psh "} {
		_, err := asm.TranslateLine(line)
		require.Error(t, err, line)

		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errors.PhaseAssemble, e.Phase)
		assert.Equal(t, errors.KindInvalidInput, e.Kind)
	}
}

func TestAssemble(t *testing.T) {
	src := "psh 1\npsh 1\nsum\nend\n"
	got, err := asm.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, bytecode.Program{
		bytecode.Push(1), bytecode.Push(1), bytecode.Add(), bytecode.End(),
	}, got)

	crlf, err := asm.Assemble("psh 2\r\neq\r\n")
	require.NoError(t, err)
	assert.Equal(t, bytecode.Program{bytecode.Push(2), bytecode.Equal()}, crlf)

	// Interior blank lines are explicit halts.
	blank, err := asm.Assemble("psh 1\n\npsh 2")
	require.NoError(t, err)
	assert.Equal(t, bytecode.Program{bytecode.Push(1), bytecode.End(), bytecode.Push(2)}, blank)

	empty, err := asm.Assemble("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAssembleReportsLine(t *testing.T) {
	_, err := asm.Assemble("psh 1\npsh one\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAssembleStrict(t *testing.T) {
	got, err := asm.Assemble("psh 3\ndplc 0\nend\n", asm.WithStrict())
	require.NoError(t, err)
	assert.Equal(t, bytecode.Program{bytecode.Push(3), bytecode.Duplicate(0), bytecode.End()}, got)

	tests := []struct {
		name string
		src  string
		kind errors.Kind
	}{
		{"unknown mnemonic", "psh 1\nnop\n", errors.KindUnknownOperand},
		{"missing operand", "psh\n", errors.KindInvalidInput},
		{"extra tokens", "psh 1 2\n", errors.KindInvalidInput},
		{"bad operand", "jmp x\n", errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asm.Assemble(tt.src, asm.WithStrict())
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}

	_, err = asm.Assemble("nop\n", asm.WithStrict())
	assert.ErrorIs(t, err, errors.ErrUnknownOperand)
}

func TestAssembleLabels(t *testing.T) {
	src := `
# labels and comments
psh 3
:loop
psh 1
sub
dplc 0
psh 0
eq
jif done
jmp loop

:done
end
`
	got, err := asm.Assemble(src, asm.WithLabels(), asm.WithStrict())
	require.NoError(t, err)
	assert.Equal(t, bytecode.Program{
		bytecode.Push(3),
		bytecode.Push(1),
		bytecode.Subtract(),
		bytecode.Duplicate(0),
		bytecode.Push(0),
		bytecode.Equal(),
		bytecode.JumpIfTrue(8),
		bytecode.Jump(1),
		bytecode.End(),
	}, got)
}

func TestAssembleLabelErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
	}{
		{"undeclared", "jmp nowhere\n", errors.KindNotFound},
		{"duplicate", ":a\n:a\nend\n", errors.KindInvalidInput},
		{"bad name", ":1x\nend\n", errors.KindInvalidInput},
		{"empty name", ":\nend\n", errors.KindInvalidInput},
		{"label as push operand", ":a\npsh a\n", errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asm.Assemble(tt.src, asm.WithLabels())
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestDisassembleRoundTrip(t *testing.T) {
	programs := []bytecode.Program{
		{},
		{bytecode.Push(1), bytecode.Push(1), bytecode.Add(), bytecode.End()},
		{bytecode.Push(0), bytecode.Push(1), bytecode.JumpIfTrue(0), bytecode.End()},
		{bytecode.Push(-2147483648), bytecode.Duplicate(0), bytecode.Multiply(), bytecode.Divide()},
		{bytecode.Push(0), bytecode.Jump(3), bytecode.Subtract(), bytecode.Equal()},
		{bytecode.New(bytecode.OpAdd, 9), bytecode.New(bytecode.OpEnd, -1)},
	}

	for _, p := range programs {
		text := asm.Disassemble(p)
		for _, opts := range [][]asm.Option{nil, {asm.WithStrict()}} {
			got, err := asm.Assemble(text, opts...)
			require.NoError(t, err, text)
			assert.True(t, p.Equal(got), "round trip of %q gave %v", text, got)
		}
	}
}

func TestDisassemble(t *testing.T) {
	text := asm.Disassemble(bytecode.Program{bytecode.Push(7), bytecode.Add(), bytecode.End()})
	assert.Equal(t, "psh 7\nsum\nend\n", text)
}

func TestDisassembleOutOfSet(t *testing.T) {
	p := bytecode.Program{{Opcode: 0x7f, Operand: 3}, {Opcode: 0x2a}}
	assert.Equal(t, "end 3\nend\n", asm.Disassemble(p))
}

func TestMnemonics(t *testing.T) {
	for _, op := range bytecode.Opcodes() {
		name, ok := asm.Mnemonic(op)
		require.True(t, ok, "%v has no mnemonic", op)

		back, ok := asm.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, op, back)
	}
}
