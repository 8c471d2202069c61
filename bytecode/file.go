package bytecode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/stackvm/errors"
)

// SaveMode selects what SaveFile does with an existing destination.
type SaveMode int

const (
	// SaveAppend adds the encoded program after any existing content.
	// Repeated saves accumulate programs; read them back with LoadAllFile.
	SaveAppend SaveMode = iota
	// SaveTruncate replaces the destination.
	SaveTruncate
)

// String returns the config spelling of m.
func (m SaveMode) String() string {
	switch m {
	case SaveAppend:
		return "append"
	case SaveTruncate:
		return "truncate"
	}
	return fmt.Sprintf("SaveMode(%d)", int(m))
}

// ParseSaveMode accepts "append" or "truncate" (case-insensitive).
// The empty string selects SaveAppend.
func ParseSaveMode(s string) (SaveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return SaveAppend, nil
	case "truncate":
		return SaveTruncate, nil
	}
	return 0, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown save mode %q", s))
}

// SaveFile encodes p and writes it to path, creating parent directories.
// The file is closed on every path, including encode or write failures.
func SaveFile(path string, p Program, mode SaveMode) (err error) {
	data, err := Encode(p)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IO(errors.PhaseSave, "create directory "+dir, err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE
	switch mode {
	case SaveAppend:
		flags |= os.O_APPEND
	case SaveTruncate:
		flags |= os.O_TRUNC
	default:
		return errors.InvalidInput(errors.PhaseSave, fmt.Sprintf("unknown save mode %d", int(mode)))
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.IO(errors.PhaseSave, "open "+path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IO(errors.PhaseSave, "close "+path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.IO(errors.PhaseSave, "write "+path, err)
	}
	return nil
}

// LoadFile reads path and returns the first program it holds.
// Programs appended after it are ignored but must still be well formed.
func LoadFile(path string) (Program, error) {
	programs, err := LoadAllFile(path)
	if err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindTruncated).
			Detail("%s holds no program", path).
			Build()
	}
	return programs[0], nil
}

// LoadAllFile reads path and returns every program appended to it.
func LoadAllFile(path string) ([]Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, "read "+path, err)
	}

	programs, err := DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return programs, nil
}
