package bytecode

import (
	"fmt"
	"strings"
)

// Engine limits. Both are part of the engine's resource contract: together
// they bound every match attempt, guaranteeing termination.
const (
	// MaxProgramSize is the instruction capacity of a compiled program.
	MaxProgramSize = 512

	// MaxStackDepth is the number of call/backtrack frames a match attempt
	// may hold.
	MaxStackDepth = 8
)

// Numeric error codes recorded in a Program, kept alongside the Go error
// surface for callers that prefer the raw numeric form.
const (
	// CodeOK means compilation succeeded.
	CodeOK = 0

	// CodeTooLarge means the compiled form exceeded MaxProgramSize.
	CodeTooLarge = 1

	// Negative codes encode a syntax error: code -e-1 is the index of the
	// pattern byte that caused it.
)

// Program is a compiled pattern. It is produced once by Compile and never
// mutated afterwards, so it may be shared freely across goroutines and across
// repeated match calls.
//
// A Program always carries its error state: check Err (or ErrCode) before
// matching. Find and Run refuse to execute an erroring program.
type Program struct {
	code [MaxProgramSize]Inst
	size int

	// errCode is 0 for none, CodeTooLarge for capacity overflow, or a
	// negative value e such that -e-1 is the offending pattern byte index.
	errCode int
}

// Len returns the number of emitted instructions.
func (p *Program) Len() int {
	return p.size
}

// Inst returns the instruction at index i.
func (p *Program) Inst(i int) Inst {
	return p.code[i]
}

// ErrCode returns the raw numeric error code: CodeOK, CodeTooLarge, or a
// negative syntax-error code encoding the byte offset.
func (p *Program) ErrCode() int {
	return p.errCode
}

// Err returns the compile error, if any: ErrTooLarge for capacity overflow, a
// *SyntaxError (wrapping ErrSyntax) for malformed pattern text, or nil.
func (p *Program) Err() error {
	switch {
	case p.errCode == CodeOK:
		return nil
	case p.errCode == CodeTooLarge:
		return ErrTooLarge
	default:
		return &SyntaxError{Pos: -p.errCode - 1}
	}
}

// StartAnchored reports whether the program's first instruction is the '^'
// anchor, in which case a search need only try offset 0. Only the first
// instruction is inspected: a pattern ending in '$' with no leading '^' is
// still probed at every offset.
func (p *Program) StartAnchored() bool {
	return p.size > 0 && p.code[0].Op() == OpAnchor && p.code[0].Arg() == '^'
}

// add appends an instruction. Once the program is in an error state this is a
// no-op; overflowing the instruction buffer records CodeTooLarge.
func (p *Program) add(op Opcode, arg uint16) {
	if p.errCode != CodeOK {
		return
	}
	if p.size < MaxProgramSize {
		p.code[p.size] = makeInst(op, arg)
		p.size++
	} else {
		p.errCode = CodeTooLarge
	}
}

// Dump disassembles the program, one instruction per line.
//
// Example output for the pattern "a+":
//
//	0x0000: match.f   'a'
//	0x0001: match.rpt 'a'
//	0x0002: ret       true
func (p *Program) Dump() string {
	var b strings.Builder
	for i := 0; i < p.size; i++ {
		fmt.Fprintf(&b, "0x%04x: %s\n", i, p.code[i])
	}
	return b.String()
}
