// Package runtime drives stack machine programs to completion.
//
// # Quick Start
//
//	cfg := runtime.DefaultConfig()
//	cfg.StepLimit = 10000
//
//	prog, err := runtime.LoadProgram("count.asm", cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := runtime.NewRunner(cfg).Run(ctx, prog)
//	fmt.Println(res.Fault, res.Stack)
//
// # Ending a Run
//
// A run ends when End executes (err is nil), when the engine faults (err is
// the fault and Result.Fault its kind), when Config.StepLimit steps have run
// (ErrStepLimit), or when ctx is done (ctx.Err()). The final stack is always
// reported in the Result.
//
// # Configuration
//
// Config is loaded from TOML:
//
//	step_limit = 10000
//	max_stack  = 256
//	save_mode  = "truncate"
//	strict_asm = true
//	labels     = true
//	log_level  = "debug"
//
// # Files
//
// LoadProgram assembles .asm and .svm files and decodes anything else as a
// binary program. SaveProgram honors Config.SaveMode. SaveSnapshot and
// LoadSnapshot persist machine state as CBOR.
package runtime
