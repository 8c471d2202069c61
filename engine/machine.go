package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/stackvm/bytecode"
)

// Machine owns the state of one run: operand stack, program, program
// counter and halted flag. It is not safe for concurrent use; a run has
// exactly one owner that drives it through Step.
type Machine struct {
	logger   *zap.Logger
	stack    []int32
	program  bytecode.Program
	pc       int
	maxStack int
	halted   bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for step tracing.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMaxStack bounds the operand stack. Pushing past n faults with
// StackOverflow. Zero or negative leaves the stack unbounded.
func WithMaxStack(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.maxStack = n
		} else {
			m.maxStack = 0
		}
	}
}

// New creates an empty running machine with pc 0 and no program.
func New(opts ...Option) *Machine {
	m := &Machine{
		logger: Logger(),
		stack:  make([]int32, 0, 16),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("machine")
	return m
}

// Load attaches a copy of p as the program for this run.
// It does not touch the stack, pc or halted flag.
func (m *Machine) Load(p bytecode.Program) {
	m.program = p.Clone()
	m.logger.Debug("program loaded", zap.Int("instructions", len(p)))
}

// PC returns the index of the next instruction to execute.
func (m *Machine) PC() int {
	return m.pc
}

// Halted reports whether End has executed.
func (m *Machine) Halted() bool {
	return m.halted
}

// MaxStack returns the configured stack bound, or 0 if unbounded.
func (m *Machine) MaxStack() int {
	return m.maxStack
}

// Depth returns the number of values on the stack.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// Stack returns a copy of the stack, bottom first.
func (m *Machine) Stack() []int32 {
	out := make([]int32, len(m.stack))
	copy(out, m.stack)
	return out
}

// Program returns a copy of the loaded program.
func (m *Machine) Program() bytecode.Program {
	return m.program.Clone()
}

// Current returns the instruction at pc, if pc is in range.
func (m *Machine) Current() (bytecode.Instruction, bool) {
	if m.pc < 0 || m.pc >= len(m.program) {
		return bytecode.Instruction{}, false
	}
	return m.program[m.pc], true
}

// StackListing renders the stack bottom to top, one index-labelled value per line.
func (m *Machine) StackListing() string {
	var b strings.Builder
	b.WriteString("Stack:\n")
	if len(m.stack) == 0 {
		b.WriteString("\tEmpty\n")
	}
	for i, v := range m.stack {
		fmt.Fprintf(&b, "\t%d: %d\n", i, v)
	}
	return b.String()
}

// ProgramListing renders the program with index labels and marks the
// instruction at pc with '>'.
func (m *Machine) ProgramListing() string {
	var b strings.Builder
	b.WriteString("Instructions:\n")
	if len(m.program) == 0 {
		b.WriteString("\tEmpty\n")
	}
	for i, in := range m.program {
		marker := " "
		if i == m.pc && !m.halted {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s\t%d: %s %d\n", marker, i, in.Opcode, in.Operand)
	}
	return b.String()
}
