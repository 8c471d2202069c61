package runtime

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/stackvm/asm"
	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/engine"
	"github.com/wippyai/stackvm/errors"
)

// Config controls how programs are loaded, run and saved.
type Config struct {
	// StepLimit stops a run after this many steps. Zero means unlimited.
	StepLimit int `toml:"step_limit"`
	// MaxStack bounds the operand stack. Zero means unbounded.
	MaxStack int `toml:"max_stack"`
	// SaveMode is "append" or "truncate".
	SaveMode string `toml:"save_mode"`
	// StrictAsm rejects unknown mnemonics when assembling.
	StrictAsm bool `toml:"strict_asm"`
	// Labels enables labels and comments in assembly input.
	Labels bool `toml:"labels"`
	// LogLevel is a zap level name.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		SaveMode: bytecode.SaveAppend.String(),
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig and validates it.
// Keys the Config does not know are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.IO(errors.PhaseConfig, fmt.Sprintf("read %s", path), err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err,
			fmt.Sprintf("parse %s", path))
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("%s: unknown keys %s", path, strings.Join(keys, ", ")))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and names.
func (c Config) Validate() error {
	if c.StepLimit < 0 {
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("step_limit must not be negative, got %d", c.StepLimit))
	}
	if c.MaxStack < 0 {
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("max_stack must not be negative, got %d", c.MaxStack))
	}
	if _, err := bytecode.ParseSaveMode(c.SaveMode); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed save mode, SaveAppend if unset or invalid.
func (c Config) Mode() bytecode.SaveMode {
	m, err := bytecode.ParseSaveMode(c.SaveMode)
	if err != nil {
		return bytecode.SaveAppend
	}
	return m
}

// Level returns the parsed log level. An empty name is info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err,
			fmt.Sprintf("log_level %q", c.LogLevel))
	}
	return lvl, nil
}

// AsmOptions returns the assembler options selected by the config.
func (c Config) AsmOptions() []asm.Option {
	var opts []asm.Option
	if c.StrictAsm {
		opts = append(opts, asm.WithStrict())
	}
	if c.Labels {
		opts = append(opts, asm.WithLabels())
	}
	return opts
}

// MachineOptions returns the engine options selected by the config.
func (c Config) MachineOptions() []engine.Option {
	return []engine.Option{engine.WithMaxStack(c.MaxStack)}
}
