package runtime_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/errors"
	"github.com/wippyai/stackvm/runtime"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stackvm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := runtime.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.StepLimit)
	assert.Zero(t, cfg.MaxStack)
	assert.Equal(t, bytecode.SaveAppend, cfg.Mode())
	assert.Empty(t, cfg.AsmOptions())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
step_limit = 500
max_stack  = 64
save_mode  = "truncate"
strict_asm = true
labels     = true
log_level  = "debug"
`)
	cfg, err := runtime.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, runtime.Config{
		StepLimit: 500,
		MaxStack:  64,
		SaveMode:  "truncate",
		StrictAsm: true,
		Labels:    true,
		LogLevel:  "debug",
	}, cfg)
	assert.Equal(t, bytecode.SaveTruncate, cfg.Mode())
	assert.Len(t, cfg.AsmOptions(), 2)
	assert.Len(t, cfg.MachineOptions(), 1)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	cfg, err := runtime.LoadConfig(writeConfig(t, "step_limit = 7\n"))

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.StepLimit)
	assert.Equal(t, "append", cfg.SaveMode)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		kind     errors.Kind
		fragment string
	}{
		{"unknown key", "step_limt = 3\n", errors.KindInvalidInput, "step_limt"},
		{"syntax error", "step_limit = \n", errors.KindInvalidData, "parse"},
		{"wrong type", `step_limit = "many"` + "\n", errors.KindInvalidData, "parse"},
		{"negative limit", "step_limit = -1\n", errors.KindInvalidInput, "step_limit"},
		{"negative stack", "max_stack = -4\n", errors.KindInvalidInput, "max_stack"},
		{"save mode", `save_mode = "rotate"` + "\n", errors.KindInvalidInput, "rotate"},
		{"log level", `log_level = "loud"` + "\n", errors.KindInvalidInput, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runtime.LoadConfig(writeConfig(t, tt.body))

			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
			assert.Contains(t, err.Error(), tt.fragment)
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := runtime.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))

	assert.Equal(t, errors.KindIO, errors.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
