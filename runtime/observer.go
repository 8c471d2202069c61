package runtime

import "github.com/wippyai/stackvm/bytecode"

// Observer is notified before each instruction executes.
type Observer interface {
	OnStep(pc int, in bytecode.Instruction, stackDepth int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(pc int, in bytecode.Instruction, stackDepth int)

// OnStep calls f.
func (f ObserverFunc) OnStep(pc int, in bytecode.Instruction, stackDepth int) {
	f(pc, in, stackDepth)
}
