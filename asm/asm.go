package asm

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/errors"
)

type options struct {
	strict bool
	labels bool
}

// Option configures Assemble.
type Option func(*options)

// WithStrict rejects unknown mnemonics and malformed lines instead of
// translating them leniently.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithLabels enables labels, comments and blank-line skipping.
func WithLabels() Option {
	return func(o *options) { o.labels = true }
}

type fixup struct {
	label string
	index int
	line  int
}

// Assemble translates src, one instruction per line, into a program.
// A trailing newline does not produce an extra instruction.
func Assemble(src string, opts ...Option) (bytecode.Program, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	prog := make(bytecode.Program, 0, len(lines))
	labels := make(map[string]int)
	var fixups []fixup

	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")

		if !o.labels {
			in, err := translate(strings.Split(line, " "), line == "", o.strict)
			if err != nil {
				return nil, atLine(lineNo, err)
			}
			prog = append(prog, in)
			continue
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, ":"):
			name := line[1:]
			if !isLabel(name) {
				return nil, atLine(lineNo, errors.InvalidInput(errors.PhaseAssemble,
					fmt.Sprintf("invalid label name %q", name)))
			}
			if _, dup := labels[name]; dup {
				return nil, atLine(lineNo, errors.InvalidInput(errors.PhaseAssemble,
					fmt.Sprintf("label %q declared twice", name)))
			}
			labels[name] = len(prog)
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 2 && isLabel(tokens[1]) {
			op, ok := mnemonics[tokens[0]]
			if ok && (op == bytecode.OpJump || op == bytecode.OpJumpIfTrue) {
				fixups = append(fixups, fixup{label: tokens[1], index: len(prog), line: lineNo})
				prog = append(prog, bytecode.New(op, 0))
				continue
			}
		}

		in, err := translate(tokens, false, o.strict)
		if err != nil {
			return nil, atLine(lineNo, err)
		}
		prog = append(prog, in)
	}

	for _, f := range fixups {
		target, ok := labels[f.label]
		if !ok {
			return nil, atLine(f.line, errors.NotFound(errors.PhaseAssemble, "label", f.label))
		}
		prog[f.index].Operand = int32(target)
	}

	return prog, nil
}

// MustAssemble is like Assemble but panics on error.
func MustAssemble(src string, opts ...Option) bytecode.Program {
	p, err := Assemble(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func translate(tokens []string, empty, strict bool) (bytecode.Instruction, error) {
	if empty {
		return bytecode.End(), nil
	}
	if !strict {
		return TranslateLine(strings.Join(tokens, " "))
	}

	op, ok := mnemonics[tokens[0]]
	if !ok {
		return bytecode.Instruction{}, errors.New(errors.PhaseAssemble, errors.KindUnknownOperand).
			Value(tokens[0]).
			Detail("unknown mnemonic %q", tokens[0]).
			Build()
	}

	switch len(tokens) {
	case 1:
		if op.HasOperand() {
			return bytecode.Instruction{}, errors.InvalidInput(errors.PhaseAssemble,
				fmt.Sprintf("%s requires an operand", tokens[0]))
		}
		return bytecode.New(op, 0), nil
	case 2:
		v, err := parseOperand(tokens[1])
		if err != nil {
			return bytecode.Instruction{}, err
		}
		return bytecode.New(op, v), nil
	default:
		return bytecode.Instruction{}, errors.InvalidInput(errors.PhaseAssemble,
			fmt.Sprintf("expected mnemonic and at most one operand, got %d tokens", len(tokens)))
	}
}

func atLine(line int, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		e.Detail = fmt.Sprintf("line %d: %s", line, e.Detail)
		return e
	}
	return fmt.Errorf("line %d: %w", line, err)
}

func isLabel(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
