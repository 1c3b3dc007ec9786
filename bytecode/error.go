package bytecode

import (
	"errors"
	"fmt"
)

// Common engine errors.
var (
	// ErrSyntax indicates the pattern text is malformed.
	ErrSyntax = errors.New("malformed pattern")

	// ErrTooLarge indicates the compiled program exceeded MaxProgramSize.
	ErrTooLarge = errors.New("pattern program too large")

	// ErrProgram indicates a match was attempted against a program that
	// carries a compile error.
	ErrProgram = errors.New("program has a compile error")

	// ErrStackOverflow indicates a match attempt exceeded the machine's
	// call-stack depth (MaxStackDepth frames).
	ErrStackOverflow = errors.New("machine call stack overflow")

	// ErrInternal indicates a machine invariant violation such as an invalid
	// opcode or an out-of-range program counter. It points at a compiler
	// defect, not at user input.
	ErrInternal = errors.New("internal machine inconsistency")
)

// SyntaxError reports a malformed pattern together with the byte index that
// caused the error. Pos equals len(pattern) for an unterminated bracket class.
type SyntaxError struct {
	Pos int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed pattern at byte %d", e.Pos)
}

// Unwrap returns ErrSyntax so callers can test with errors.Is.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
