package bytecode

import (
	"github.com/wippyai/stackvm/bytecode/internal/binary"
	"github.com/wippyai/stackvm/errors"
)

// headerSize is magic + version; the LEB128 count follows.
const headerSize = len(Magic) + 2

// Encode serializes p into the versioned program format:
//
//	magic "SVMB" | version u16 LE | count LEB128 | count * (opcode u8, operand s32 LE)
//
// Instructions with opcodes outside the set are rejected.
func Encode(p Program) ([]byte, error) {
	w := binary.NewWriter()
	w.Grow(headerSize + 5 + len(p)*InstructionSize)
	if err := encodeTo(w, p); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// MustEncode is like Encode but panics on error. Intended for tests and
// programs built from the constructors, which are always valid.
func MustEncode(p Program) []byte {
	data, err := Encode(p)
	if err != nil {
		panic(err)
	}
	return data
}

func encodeTo(w *binary.Writer, p Program) error {
	w.WriteBytes([]byte(Magic))
	w.WriteU16LE(Version)
	w.WriteU32(uint32(len(p)))

	for i, in := range p {
		if !in.Opcode.Valid() {
			return errors.New(errors.PhaseEncode, errors.KindInvalidOpcode).
				PC(i).
				Value(byte(in.Opcode)).
				Detail("cannot encode %s", in.Opcode).
				Build()
		}
		w.Byte(byte(in.Opcode))
		w.WriteS32LE(in.Operand)
	}
	return nil
}
