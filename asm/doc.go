// Package asm translates between assembly text and bytecode programs.
//
// The line format is one instruction per line, a mnemonic optionally
// followed by a single space and a decimal operand:
//
//	psh 1
//	psh 1
//	sum
//	end
//
// Mnemonics:
//
//	psh   Push          jmp  Jump
//	dplc  Duplicate     jif  JumpIfTrue
//	sum   Add           eq   Equal
//	sub   Subtract      end  End
//	mul   Multiply
//	div   Divide
//
// By default translation is lenient: an empty line or an unrecognized
// mnemonic becomes End, and a line with more than two tokens keeps its
// mnemonic but drops the operand. WithStrict rejects unknown mnemonics with
// an UnknownOperand error and malformed lines with an invalid_input error.
//
// WithLabels enables the source dialect: blank lines and lines starting
// with '#' are skipped, ":name" declares a label at the next instruction,
// and jmp/jif may name a label instead of an index. Labels may be used
// before they are declared.
//
// Disassemble produces text that assembles back to the same program.
package asm
