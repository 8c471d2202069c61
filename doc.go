// Package stackvm is a small stack-based bytecode virtual machine.
//
// Programs are sequences of ten fixed instructions operating on a stack of
// 32-bit signed integers. The machine executes one instruction per step and
// reports problems as typed faults rather than panics.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	stackvm/
//	├── bytecode/        Instruction set, programs, binary codec and program files
//	├── engine/          Machine state and the single-step interpreter
//	├── asm/             Assembly text to programs and back
//	├── runtime/         Run loop, step limits, observers, TOML config
//	├── errors/          Structured errors and the fault taxonomy
//	└── cmd/run/         Command line runner and interactive debugger
//
// # Quick Start
//
// Assemble and run a program:
//
//	prog, err := asm.Assemble("psh 1\npsh 1\nsum\nend\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := runtime.NewRunner(runtime.DefaultConfig()).Run(ctx, prog)
//	fmt.Println(res.Stack) // [2]
//
// Or drive the engine directly:
//
//	m := engine.New()
//	m.Load(bytecode.Program{bytecode.Push(5), bytecode.Push(0), bytecode.Divide()})
//	for !m.Halted() {
//	    if err := m.Step(); err != nil {
//	        fmt.Println(errors.KindOf(err)) // division_by_zero
//	        break
//	    }
//	}
//
// # Faults
//
// Step returns nil or an *errors.Error whose Kind is one of the fault kinds:
// stack_overflow, stack_underflow, illegal_instruction, division_by_zero or
// unknown_operand. illegal_instruction_access is declared but never raised.
//
// # Binary Format
//
// Programs persist as "SVMB", a little-endian u16 version, a LEB128
// instruction count and five bytes per instruction. Saving appends by
// default, so one file can hold several programs.
package stackvm
