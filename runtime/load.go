package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/stackvm/asm"
	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/engine"
	"github.com/wippyai/stackvm/errors"
)

// IsAssemblyPath reports whether path names an assembly text file.
func IsAssemblyPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asm", ".svm":
		return true
	}
	return false
}

// LoadProgram reads a program from path. Files ending in .asm or .svm are
// assembled with the options in cfg; anything else is decoded as binary.
func LoadProgram(path string, cfg Config) (bytecode.Program, error) {
	if IsAssemblyPath(path) {
		return LoadAssembly(path, cfg)
	}
	return bytecode.LoadFile(path)
}

// LoadAssembly reads and assembles the text file at path.
func LoadAssembly(path string, cfg Config) (bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, fmt.Sprintf("read %s", path), err)
	}
	p, err := asm.Assemble(string(data), cfg.AsmOptions()...)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", path, err)
	}
	return p, nil
}

// SaveProgram writes p to path in the save mode selected by cfg.
func SaveProgram(path string, p bytecode.Program, cfg Config) error {
	return bytecode.SaveFile(path, p, cfg.Mode())
}

// SaveSnapshot writes s to path as CBOR, replacing any existing file.
func SaveSnapshot(path string, s engine.Snapshot) error {
	data, err := engine.MarshalSnapshot(s)
	if err != nil {
		return errors.Wrap(errors.PhaseSave, errors.KindInvalidData, err, "encode snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseSave, fmt.Sprintf("write %s", path), err)
	}
	return nil
}

// LoadSnapshot reads a CBOR snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (engine.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Snapshot{}, errors.IO(errors.PhaseLoad, fmt.Sprintf("read %s", path), err)
	}
	s, err := engine.UnmarshalSnapshot(data)
	if err != nil {
		return engine.Snapshot{}, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, path)
	}
	return s, nil
}
