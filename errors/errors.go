package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseExecute  Phase = "execute"  // single-step execution
	PhaseEncode   Phase = "encode"   // program to bytes
	PhaseDecode   Phase = "decode"   // bytes to program
	PhaseAssemble Phase = "assemble" // assembly text to program
	PhaseLoad     Phase = "load"     // reading program files
	PhaseSave     Phase = "save"     // writing program files
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

// Fault kinds. KindOk is never carried by an Error; it is what KindOf returns for nil.
const (
	KindOk                       Kind = "ok"
	KindStackOverflow            Kind = "stack_overflow"
	KindStackUnderflow           Kind = "stack_underflow"
	KindIllegalInstruction       Kind = "illegal_instruction"
	KindIllegalInstructionAccess Kind = "illegal_instruction_access" // reserved
	KindDivisionByZero           Kind = "division_by_zero"
	KindUnknownOperand           Kind = "unknown_operand"
)

// Codec and collaborator kinds.
const (
	KindTruncated          Kind = "truncated"
	KindInvalidMagic       Kind = "invalid_magic"
	KindUnsupportedVersion Kind = "unsupported_version"
	KindInvalidOpcode      Kind = "invalid_opcode"
	KindTrailingData       Kind = "trailing_data"
	KindInvalidData        Kind = "invalid_data"
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
	KindIO                 Kind = "io"
	KindUnknown            Kind = "unknown"
)

// Faults lists the execution fault taxonomy in declaration order, starting with KindOk.
var Faults = []Kind{
	KindOk,
	KindStackOverflow,
	KindStackUnderflow,
	KindIllegalInstruction,
	KindIllegalInstructionAccess,
	KindDivisionByZero,
	KindUnknownOperand,
}

// IsFault reports whether k is a fault raised by execution.
// KindOk is part of the taxonomy but is not a fault.
func (k Kind) IsFault() bool {
	if k == KindOk {
		return false
	}
	for _, f := range Faults {
		if f == k {
			return true
		}
	}
	return false
}

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Opcode   string
	Detail   string
	PC       int
	Position int
	hasPC    bool
	hasPos   bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.hasPC {
		fmt.Fprintf(&b, " at pc %d", e.PC)
	}
	if e.hasPos {
		fmt.Fprintf(&b, " at byte %d", e.Position)
	}

	if e.Opcode != "" {
		b.WriteString(" (")
		b.WriteString(e.Opcode)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return (t.Phase == "" || e.Phase == t.Phase) && e.Kind == t.Kind
	}
	return false
}

// HasPC reports whether the error carries a program counter.
func (e *Error) HasPC() bool {
	return e.hasPC
}

// HasPosition reports whether the error carries a byte position.
func (e *Error) HasPosition() bool {
	return e.hasPos
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// PC sets the program counter of the faulting instruction
func (b *Builder) PC(pc int) *Builder {
	b.err.PC = pc
	b.err.hasPC = true
	return b
}

// Position sets the byte offset at which decoding failed
func (b *Builder) Position(pos int) *Builder {
	b.err.Position = pos
	b.err.hasPos = true
	return b
}

// Opcode sets the opcode name
func (b *Builder) Opcode(name string) *Builder {
	b.err.Opcode = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is checks. They match on Kind regardless of Phase.
var (
	ErrStackOverflow            = &Error{Kind: KindStackOverflow}
	ErrStackUnderflow           = &Error{Kind: KindStackUnderflow}
	ErrIllegalInstruction       = &Error{Kind: KindIllegalInstruction}
	ErrIllegalInstructionAccess = &Error{Kind: KindIllegalInstructionAccess}
	ErrDivisionByZero           = &Error{Kind: KindDivisionByZero}
	ErrUnknownOperand           = &Error{Kind: KindUnknownOperand}
	ErrTruncated                = &Error{Kind: KindTruncated}
	ErrInvalidMagic             = &Error{Kind: KindInvalidMagic}
	ErrUnsupportedVersion       = &Error{Kind: KindUnsupportedVersion}
	ErrInvalidOpcode            = &Error{Kind: KindInvalidOpcode}
	ErrTrailingData             = &Error{Kind: KindTrailingData}
	ErrInvalidData              = &Error{Kind: KindInvalidData}
)

// KindOf returns the Kind of the first *Error in err's chain.
// nil maps to KindOk and foreign errors map to KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindOk
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Convenience constructors for common error patterns

// Fault creates an execution fault for the instruction at pc
func Fault(kind Kind, pc int, opcode, detail string) *Error {
	return &Error{
		Phase:  PhaseExecute,
		Kind:   kind,
		PC:     pc,
		Opcode: opcode,
		Detail: detail,
		hasPC:  true,
	}
}

// Underflow creates a stack underflow fault
func Underflow(pc int, opcode string, need, have int) *Error {
	return Fault(KindStackUnderflow, pc, opcode, fmt.Sprintf("need %d operand(s), have %d", need, have))
}

// Overflow creates a stack overflow fault
func Overflow(pc int, opcode string, limit int) *Error {
	return Fault(KindStackOverflow, pc, opcode, fmt.Sprintf("stack limit %d reached", limit))
}

// Truncated creates a decode error for input that ended early
func Truncated(pos int, what string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindTruncated,
		Position: pos,
		Detail:   fmt.Sprintf("unexpected end of input reading %s", what),
		hasPos:   true,
	}
}

// InvalidOpcode creates a decode error for an out-of-set opcode tag
func InvalidOpcode(pos int, tag byte) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidOpcode,
		Position: pos,
		Value:    tag,
		Detail:   fmt.Sprintf("opcode tag 0x%02x outside the instruction set", tag),
		hasPos:   true,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// IO wraps a filesystem failure
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
