package runtime

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/stackvm/bytecode"
	"github.com/wippyai/stackvm/engine"
	"github.com/wippyai/stackvm/errors"
)

// ErrStepLimit is returned when a run is stopped by Config.StepLimit.
var ErrStepLimit = stderrors.New("runtime: step limit reached")

// Result describes how a run ended. It is returned for every run,
// including ones that stopped with an error.
type Result struct {
	// Err is the error that ended the run, nil if the program halted.
	Err error
	// Stack is the final stack, bottom first.
	Stack []int32
	// Fault is the fault kind, KindOk unless the engine faulted.
	Fault errors.Kind
	// Steps counts instructions executed successfully.
	Steps int
	// PC is the final program counter.
	PC int
	// Halted reports whether End executed.
	Halted bool
}

// Runner drives machines to completion. A Runner holds no machine state
// and may be used for many runs; each Run owns a fresh machine.
type Runner struct {
	logger    *zap.Logger
	observers []Observer
	cfg       Config
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger. Machines log through a child of it.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver adds an observer notified before each step.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the runner's configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// NewMachine returns a machine configured by the runner with prog loaded.
func (r *Runner) NewMachine(prog bytecode.Program) *engine.Machine {
	opts := append(r.cfg.MachineOptions(), engine.WithLogger(r.logger))
	m := engine.New(opts...)
	m.Load(prog)
	return m
}

// Run executes prog on a fresh machine until it halts, faults, reaches
// the step limit or ctx is done. The returned error equals Result.Err.
func (r *Runner) Run(ctx context.Context, prog bytecode.Program) (*Result, error) {
	return r.RunMachine(ctx, r.NewMachine(prog))
}

// RunMachine drives m from its current state like Run. The step limit
// counts steps taken by this call only.
func (r *Runner) RunMachine(ctx context.Context, m *engine.Machine) (*Result, error) {
	r.logger.Debug("run started",
		zap.Int("pc", m.PC()),
		zap.Int("instructions", len(m.Program())),
		zap.Int("step_limit", r.cfg.StepLimit),
	)

	res := r.drive(ctx, m)

	fields := []zap.Field{
		zap.Int("steps", res.Steps),
		zap.Int("pc", res.PC),
		zap.Int("depth", len(res.Stack)),
		zap.String("fault", string(res.Fault)),
	}
	switch {
	case res.Err == nil:
		r.logger.Debug("run halted", fields...)
	case res.Fault.IsFault():
		r.logger.Info("run faulted", append(fields, zap.Error(res.Err))...)
	default:
		r.logger.Info("run stopped", append(fields, zap.Error(res.Err))...)
	}

	return res, res.Err
}

func (r *Runner) drive(ctx context.Context, m *engine.Machine) *Result {
	res := &Result{Fault: errors.KindOk}

	for !m.Halted() {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		if r.cfg.StepLimit > 0 && res.Steps >= r.cfg.StepLimit {
			res.Err = ErrStepLimit
			break
		}

		if in, ok := m.Current(); ok {
			for _, o := range r.observers {
				o.OnStep(m.PC(), in, m.Depth())
			}
		}

		if err := m.Step(); err != nil {
			res.Err = err
			res.Fault = errors.KindOf(err)
			break
		}
		res.Steps++
	}

	res.Stack = m.Stack()
	res.PC = m.PC()
	res.Halted = m.Halted()
	return res
}
