package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "execution fault",
			err:      Fault(KindStackUnderflow, 3, "Add", "need 2 operand(s), have 1"),
			contains: []string{"[execute]", "stack_underflow", "at pc 3", "(Add)", "need 2"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindInvalidMagic,
			},
			contains: []string{"[decode]", "invalid_magic"},
		},
		{
			name:     "decode position",
			err:      Truncated(9, "operand"),
			contains: []string{"[decode]", "truncated", "at byte 9", "operand"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindIO,
				Detail: "read program",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "io", "read program", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
		})
	}
}

func TestError_NoPCWhenUnset(t *testing.T) {
	err := InvalidInput(PhaseAssemble, "bad operand")

	assert.NotContains(t, err.Error(), "pc")
	assert.False(t, err.HasPC(), "constructor without location should not report a pc")
	assert.False(t, err.HasPosition(), "constructor without location should not report a position")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseSave, KindIO, cause, "write program")

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestError_Is(t *testing.T) {
	err := Fault(KindIllegalInstruction, 7, "Jump", "target out of range")

	assert.True(t, err.Is(&Error{Phase: PhaseExecute, Kind: KindIllegalInstruction}), "same phase and kind")
	assert.False(t, err.Is(&Error{Phase: PhaseDecode, Kind: KindIllegalInstruction}), "different phase")
	assert.False(t, err.Is(&Error{Phase: PhaseExecute, Kind: KindStackUnderflow}), "different kind")
	assert.ErrorIs(t, err, ErrIllegalInstruction, "phase-less sentinel")
	assert.ErrorIs(t, fmt.Errorf("run: %w", err), ErrIllegalInstruction)
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseExecute, KindDivisionByZero).
		PC(4).
		Opcode("Divide").
		Value(int32(5)).
		Cause(cause).
		Detail("divide %d by %d", 5, 0).
		Build()

	assert.Equal(t, PhaseExecute, err.Phase)
	assert.Equal(t, KindDivisionByZero, err.Kind)
	assert.True(t, err.HasPC())
	assert.Equal(t, 4, err.PC)
	assert.Equal(t, "Divide", err.Opcode)
	assert.Equal(t, int32(5), err.Value)
	assert.ErrorIs(t, err.Cause, cause)
	assert.Equal(t, "divide 5 by 0", err.Detail)

	pos := New(PhaseDecode, KindTrailingData).Position(12).Build()
	assert.True(t, pos.HasPosition())
	assert.Equal(t, 12, pos.Position)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindOk},
		{Underflow(0, "Add", 2, 0), KindStackUnderflow},
		{Overflow(0, "Push", 4), KindStackOverflow},
		{fmt.Errorf("wrapped: %w", InvalidOpcode(5, 0xff)), KindInvalidOpcode},
		{errors.New("plain"), KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "KindOf(%v)", tt.err)
	}
}

func TestFaultTaxonomy(t *testing.T) {
	want := []Kind{
		KindOk,
		KindStackOverflow,
		KindStackUnderflow,
		KindIllegalInstruction,
		KindIllegalInstructionAccess,
		KindDivisionByZero,
		KindUnknownOperand,
	}
	require.Equal(t, want, Faults)

	for _, k := range want[1:] {
		assert.True(t, k.IsFault(), "%v should be a fault kind", k)
	}
	assert.False(t, KindOk.IsFault(), "ok is not a fault")
	assert.False(t, KindTruncated.IsFault(), "codec kinds are not faults")
	assert.False(t, KindUnknown.IsFault(), "foreign errors are not faults")
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidOpcode", func(t *testing.T) {
		err := InvalidOpcode(8, 0x42)
		assert.Equal(t, KindInvalidOpcode, err.Kind)
		assert.Equal(t, byte(0x42), err.Value)
		assert.Contains(t, err.Detail, "0x42")
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseAssemble, "label", "loop")
		assert.Equal(t, KindNotFound, err.Kind)
		assert.Contains(t, err.Detail, `"loop"`)
	})

	t.Run("IO", func(t *testing.T) {
		cause := errors.New("disk full")
		err := IO(PhaseSave, "write", cause)
		assert.Equal(t, KindIO, err.Kind)
		assert.ErrorIs(t, err, cause)
	})
}
