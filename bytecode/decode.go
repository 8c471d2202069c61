package bytecode

import (
	"bytes"
	stderrors "errors"
	"io"

	"github.com/wippyai/stackvm/bytecode/internal/binary"
	"github.com/wippyai/stackvm/errors"
)

// Decode parses exactly one encoded program. Bytes left over after the
// program are reported as trailing data; use DecodeAll for files that hold
// several appended programs.
func Decode(data []byte) (Program, error) {
	r := binary.NewReader(bytes.NewReader(data))

	p, err := readProgram(r)
	if err != nil {
		return nil, err
	}

	if rest := r.Len(); rest > 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindTrailingData).
			Position(r.Position()).
			Detail("%d byte(s) after program", rest).
			Build()
	}
	return p, nil
}

// DecodeAll parses a concatenation of encoded programs, in order.
// Empty input yields no programs.
func DecodeAll(data []byte) ([]Program, error) {
	r := binary.NewReader(bytes.NewReader(data))

	var programs []Program
	for r.Len() > 0 {
		p, err := readProgram(r)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func readProgram(r *binary.Reader) (Program, error) {
	start := r.Position()

	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return nil, decodeError(r, "magic", err)
	}
	if string(magic) != Magic {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidMagic).
			Position(start).
			Value(magic).
			Detail("got %q, want %q", magic, Magic).
			Build()
	}

	version, err := r.ReadU16LE()
	if err != nil {
		return nil, decodeError(r, "version", err)
	}
	if version != Version {
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupportedVersion).
			Position(start+len(Magic)).
			Value(version).
			Detail("version %d, supported %d", version, Version).
			Build()
	}

	count, err := r.ReadU32()
	if err != nil {
		return nil, decodeError(r, "count", err)
	}

	// Reject impossible counts before allocating.
	if rest := r.Len(); rest >= 0 && uint64(count)*InstructionSize > uint64(rest) {
		return nil, errors.New(errors.PhaseDecode, errors.KindTruncated).
			Position(r.Position()).
			Detail("count %d needs %d byte(s), %d left", count, uint64(count)*InstructionSize, rest).
			Build()
	}

	p := make(Program, 0, count)
	for i := uint32(0); i < count; i++ {
		pos := r.Position()
		tag, err := r.ReadByte()
		if err != nil {
			return nil, decodeError(r, "opcode", err)
		}
		op := Opcode(tag)
		if !op.Valid() {
			return nil, errors.InvalidOpcode(pos, tag)
		}

		operand, err := r.ReadS32LE()
		if err != nil {
			return nil, decodeError(r, "operand", err)
		}
		p = append(p, Instruction{Opcode: op, Operand: operand})
	}
	return p, nil
}

// decodeError classifies a reader failure as truncation or malformed data.
func decodeError(r *binary.Reader, field string, err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		e := errors.Truncated(r.Position(), field)
		e.Cause = r.WrapError(field, err)
		return e
	}
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Position(r.Position()).
		Cause(r.WrapError(field, err)).
		Detail("malformed %s", field).
		Build()
}
