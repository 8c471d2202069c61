package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/stackvm/asm"
	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/engine"
	"github.com/wippyai/stackvm/errors"
	"github.com/wippyai/stackvm/runtime"
)

type options struct {
	input     string
	output    string
	statePath string
	forceAsm  bool
	disasm    bool
	truncate  bool
}

func main() {
	var (
		input       = flag.String("input", "", "Program to run (.asm/.svm assembly, anything else binary)")
		output      = flag.String("output", "", "Save the program in binary form to this file")
		configFile  = flag.String("config", "", "TOML configuration file")
		limit       = flag.Int("limit", -1, "Step limit, overrides the config (0 = unlimited)")
		forceAsm    = flag.Bool("asm", false, "Treat input as assembly regardless of extension")
		disasm      = flag.Bool("disasm", false, "Print the program as assembly and exit")
		statePath   = flag.String("state", "", "Write the final machine state (CBOR) to this file")
		truncate    = flag.Bool("truncate", false, "Overwrite -output instead of appending")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive step debugger")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -input <prog.asm|prog.bin> [-config file.toml] [-limit n] [-output file] [-state file]")
		fmt.Fprintln(os.Stderr, "       run -input <prog> -disasm")
		fmt.Fprintln(os.Stderr, "       run -input <prog> -i  (interactive mode)")
		atexit.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	if *limit >= 0 {
		cfg.StepLimit = *limit
	}

	logger, err := newLogger(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Register(func() { _ = logger.Sync() })
	engine.SetLogger(logger)

	opts := options{
		input:     *input,
		output:    *output,
		statePath: *statePath,
		forceAsm:  *forceAsm,
		disasm:    *disasm,
		truncate:  *truncate,
	}

	if *interactive && !*disasm {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if err := runInteractive(opts, cfg, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				atexit.Exit(1)
			}
			atexit.Exit(0)
		}
		logger.Info("stdout is not a terminal, running in batch mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code, err := run(ctx, os.Stdout, opts, cfg, logger)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	atexit.Exit(code)
}

func loadConfig(path string) (runtime.Config, error) {
	if path == "" {
		return runtime.DefaultConfig(), nil
	}
	return runtime.LoadConfig(path)
}

func newLogger(cfg runtime.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return zc.Build()
	}

	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	return zc.Build()
}

func loadProgram(opts options, cfg runtime.Config) (bytecode.Program, error) {
	if opts.forceAsm {
		return runtime.LoadAssembly(opts.input, cfg)
	}
	return runtime.LoadProgram(opts.input, cfg)
}

// run executes the batch flow and returns the process exit code. A non-nil
// error is a usage or IO failure; faults are reported on w.
func run(ctx context.Context, w io.Writer, opts options, cfg runtime.Config, logger *zap.Logger) (int, error) {
	prog, err := loadProgram(opts, cfg)
	if err != nil {
		return 1, err
	}
	logger.Debug("program loaded", zap.String("path", opts.input), zap.Int("instructions", len(prog)))

	if opts.output != "" {
		mode := cfg.Mode()
		if opts.truncate {
			mode = bytecode.SaveTruncate
		}
		if err := bytecode.SaveFile(opts.output, prog, mode); err != nil {
			return 1, err
		}
		logger.Info("program saved", zap.String("path", opts.output), zap.Stringer("mode", mode))
	}

	if opts.disasm {
		fmt.Fprint(w, asm.Disassemble(prog))
		return 0, nil
	}

	runner := runtime.NewRunner(cfg, runtime.WithLogger(logger))
	m := runner.NewMachine(prog)

	fmt.Fprint(w, m.ProgramListing())

	res, runErr := runner.RunMachine(ctx, m)

	code := 0
	switch {
	case runErr == nil:
		fmt.Fprintf(w, "Result: %s after %d steps\n", errors.KindOk, res.Steps)
	case res.Fault.IsFault():
		fmt.Fprintf(w, "Result: %s after %d steps\n", res.Fault, res.Steps)
		fmt.Fprintf(w, "\t%v\n", runErr)
		code = 1
	case stderrors.Is(runErr, runtime.ErrStepLimit):
		fmt.Fprintf(w, "Result: step limit of %d reached\n", cfg.StepLimit)
		code = 1
	default:
		fmt.Fprintf(w, "Result: stopped after %d steps: %v\n", res.Steps, runErr)
		code = 1
	}
	fmt.Fprint(w, m.StackListing())

	if opts.statePath != "" {
		if err := runtime.SaveSnapshot(opts.statePath, m.Snapshot()); err != nil {
			return 1, err
		}
	}

	return code, nil
}
