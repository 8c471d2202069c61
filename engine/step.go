package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/errors"
)

// Step executes exactly one instruction.
//
// It returns nil (Ok) or an *errors.Error whose Kind is the fault. A fault
// leaves the machine as it was before the faulting check; the caller must
// stop stepping. Stepping a halted machine does nothing and returns nil.
func (m *Machine) Step() error {
	if m.halted {
		return nil
	}

	if m.pc < 0 || m.pc >= len(m.program) {
		return errors.Fault(errors.KindIllegalInstruction, m.pc, "",
			fmt.Sprintf("pc outside program of length %d", len(m.program)))
	}

	in := m.program[m.pc]
	if ce := m.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Int("pc", m.pc),
			zap.Stringer("opcode", in.Opcode),
			zap.Int32("operand", in.Operand),
			zap.Int("depth", len(m.stack)),
		)
	}

	switch in.Opcode {
	case bytecode.OpPush:
		if err := m.checkRoom(in); err != nil {
			return err
		}
		m.stack = append(m.stack, in.Operand)
		m.pc++

	case bytecode.OpDuplicate:
		k := int(in.Operand)
		// Underflow is checked before the sign of k.
		if len(m.stack)-k <= 0 {
			return errors.New(errors.PhaseExecute, errors.KindStackUnderflow).
				PC(m.pc).
				Opcode(in.Opcode.String()).
				Value(in.Operand).
				Detail("depth %d on stack of %d", k, len(m.stack)).
				Build()
		}
		if k < 0 {
			return errors.New(errors.PhaseExecute, errors.KindIllegalInstruction).
				PC(m.pc).
				Opcode(in.Opcode.String()).
				Value(in.Operand).
				Detail("negative depth %d", k).
				Build()
		}
		if err := m.checkRoom(in); err != nil {
			return err
		}
		m.stack = append(m.stack, m.stack[len(m.stack)-1-k])
		m.pc++

	case bytecode.OpAdd, bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide:
		if err := m.need(in, 2); err != nil {
			return err
		}
		top := len(m.stack) - 1
		a, b := m.stack[top-1], m.stack[top]

		var result int32
		switch in.Opcode {
		case bytecode.OpAdd:
			result = a + b
		case bytecode.OpSubtract:
			result = a - b
		case bytecode.OpMultiply:
			result = a * b
		case bytecode.OpDivide:
			if b == 0 {
				return errors.New(errors.PhaseExecute, errors.KindDivisionByZero).
					PC(m.pc).
					Opcode(in.Opcode.String()).
					Value(a).
					Detail("divide %d by zero", a).
					Build()
			}
			result = a / b
		}

		m.stack[top-1] = result
		m.stack = m.stack[:top]
		m.pc++

	case bytecode.OpJump:
		target := int(in.Operand)
		if target < 0 || target >= len(m.program) {
			return errors.New(errors.PhaseExecute, errors.KindIllegalInstruction).
				PC(m.pc).
				Opcode(in.Opcode.String()).
				Value(in.Operand).
				Detail("jump target %d outside program of length %d", target, len(m.program)).
				Build()
		}
		m.pc = target

	case bytecode.OpJumpIfTrue:
		if err := m.need(in, 1); err != nil {
			return err
		}
		top := len(m.stack) - 1
		if m.stack[top] != 1 {
			// Not taken: the condition stays on the stack.
			m.pc++
			break
		}
		// Taken: the target is not range checked; an invalid one faults on the next step.
		m.stack = m.stack[:top]
		m.pc = int(in.Operand)

	case bytecode.OpEqual:
		if err := m.need(in, 2); err != nil {
			return err
		}
		top := len(m.stack) - 1
		var eq int32
		if m.stack[top-1] == m.stack[top] {
			eq = 1
		}
		m.stack[top-1] = eq
		m.stack = m.stack[:top]
		m.pc++

	case bytecode.OpEnd:
		m.halted = true
		m.pc++
		m.logger.Debug("halted", zap.Int("pc", m.pc), zap.Int("depth", len(m.stack)))

	default:
		return errors.New(errors.PhaseExecute, errors.KindIllegalInstruction).
			PC(m.pc).
			Opcode(in.Opcode.String()).
			Detail("opcode outside the instruction set").
			Build()
	}

	return nil
}

func (m *Machine) need(in bytecode.Instruction, n int) error {
	if len(m.stack) < n {
		return errors.Underflow(m.pc, in.Opcode.String(), n, len(m.stack))
	}
	return nil
}

func (m *Machine) checkRoom(in bytecode.Instruction) error {
	if m.maxStack > 0 && len(m.stack) >= m.maxStack {
		return errors.Overflow(m.pc, in.Opcode.String(), m.maxStack)
	}
	return nil
}
