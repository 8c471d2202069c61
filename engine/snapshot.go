package engine

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/stackvm/bytecode"
)

// Snapshot is a read-only copy of machine state, taken for diagnostics or
// for persisting the final state of a run.
type Snapshot struct {
	Stack   []int32          `cbor:"1,keyasint"`
	Program bytecode.Program `cbor:"2,keyasint"`
	PC      int              `cbor:"3,keyasint"`
	Halted  bool             `cbor:"4,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("engine: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Stack:   m.Stack(),
		Program: m.Program(),
		PC:      m.pc,
		Halted:  m.halted,
	}
}

// MarshalSnapshot serializes s to canonical CBOR.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("engine: unmarshal snapshot: %w", err)
	}
	return s, nil
}

// Restore builds a machine in the state captured by s.
func Restore(s Snapshot, opts ...Option) *Machine {
	m := New(opts...)
	m.program = s.Program.Clone()
	m.stack = append(m.stack, s.Stack...)
	m.pc = s.PC
	m.halted = s.Halted
	return m
}
