// Package bytecode implements the pattern engine core: a single-pass compiler
// that turns pattern text into a fixed-capacity 16-bit instruction program, and
// a small virtual machine that executes one match attempt per input offset with
// an explicit bounded call/return stack.
//
// A compiled Program is immutable and safe for concurrent readers. All mutable
// match state lives in a per-attempt machine that is created and discarded
// inside a single Find call, so the package never allocates on the match path.
package bytecode

import "fmt"

// Inst is one encoded instruction: a 4-bit opcode in the low bits and a 12-bit
// argument above it. The argument is an ASCII byte for match instructions, a
// class letter (or '.') for class instructions, an anchor byte for OpAnchor, a
// target instruction index for OpJump/OpCall, and a truth flag for OpReturn.
type Inst uint16

const (
	opMask   = 0x0f
	argShift = 4
)

// Opcode identifies the operation encoded in an instruction.
type Opcode uint16

// The instruction set. Match variants compare the argument byte against the
// byte at the input cursor; class variants evaluate the built-in class named
// by the argument letter instead. The variants differ only in what they do
// with the outcome: nothing (optional atom), fail the attempt (required atom),
// return from the enclosing class subroutine with a fixed verdict (class
// members), or re-run themselves (greedy repetition).
const (
	// OpReturn returns from a class subroutine, or ends the attempt when the
	// stack is empty. A non-zero argument is a successful return; a failed
	// return also rewinds the input cursor to its value at the call.
	OpReturn Opcode = 0x00

	// OpJump continues execution at instruction arg. Emitted over a class
	// placeholder so linear execution skips the subroutine body.
	OpJump Opcode = 0x01

	// OpAnchor fails the attempt unless the cursor is at the input start
	// (arg '^') or the input end (arg '$').
	OpAnchor Opcode = 0x02

	// OpMatch consumes the argument byte if present. Used for '?'.
	OpMatch Opcode = 0x03

	// OpMatchOrFail consumes the argument byte or fails the attempt.
	// Used for bare atoms and the required first occurrence of '+'.
	OpMatchOrFail Opcode = 0x04

	// OpMatchRetTrue consumes the argument byte and succeeds the subroutine.
	// Used for bracket-class members.
	OpMatchRetTrue Opcode = 0x05

	// OpMatchRetFalse consumes the argument byte and fails the subroutine.
	// Used for negated bracket-class members.
	OpMatchRetFalse Opcode = 0x06

	// OpMatchRepeat consumes the argument byte and re-runs itself.
	// Used for '*' and the tail of '+'.
	OpMatchRepeat Opcode = 0x07

	// OpCall pushes a (pc, cursor) frame and continues at instruction arg.
	OpCall Opcode = 0x08

	// OpRepeatIfTrue re-runs the preceding call if the last return succeeded.
	OpRepeatIfTrue Opcode = 0x09

	// OpFailIfFalse fails the attempt if the last return failed.
	OpFailIfFalse Opcode = 0x0a

	// OpClass consumes a byte of the argument class if present.
	OpClass Opcode = 0x0b

	// OpClassOrFail consumes a byte of the argument class or fails the attempt.
	OpClassOrFail Opcode = 0x0c

	// OpClassRetTrue consumes a byte of the argument class and succeeds the
	// subroutine.
	OpClassRetTrue Opcode = 0x0d

	// OpClassRetFalse consumes a byte of the argument class and fails the
	// subroutine.
	OpClassRetFalse Opcode = 0x0e

	// OpClassRepeat consumes a byte of the argument class and re-runs itself.
	OpClassRepeat Opcode = 0x0f
)

// String returns the disassembly mnemonic for the opcode.
func (op Opcode) String() string {
	switch op {
	case OpReturn:
		return "ret"
	case OpJump:
		return "jmp"
	case OpAnchor:
		return "anchor"
	case OpMatch:
		return "match"
	case OpMatchOrFail:
		return "match.f"
	case OpMatchRetTrue:
		return "match.rt"
	case OpMatchRetFalse:
		return "match.rf"
	case OpMatchRepeat:
		return "match.rpt"
	case OpCall:
		return "call"
	case OpRepeatIfTrue:
		return "rpt.t"
	case OpFailIfFalse:
		return "fail.f"
	case OpClass:
		return "class"
	case OpClassOrFail:
		return "class.f"
	case OpClassRetTrue:
		return "class.rt"
	case OpClassRetFalse:
		return "class.rf"
	case OpClassRepeat:
		return "class.rpt"
	}
	return fmt.Sprintf("op(%#x)", uint16(op))
}

// makeInst encodes an opcode and argument into a single instruction word.
func makeInst(op Opcode, arg uint16) Inst {
	return Inst(uint16(op)&opMask | arg<<argShift)
}

// Op returns the instruction's opcode.
func (i Inst) Op() Opcode {
	return Opcode(i) & opMask
}

// Arg returns the instruction's 12-bit argument.
func (i Inst) Arg() uint16 {
	return uint16(i) >> argShift
}

// String renders the instruction in disassembly form. Instructions whose
// argument is a byte value show it as a character; control-flow instructions
// show the target index, and OpReturn shows its verdict.
func (i Inst) String() string {
	op, arg := i.Op(), i.Arg()
	switch op {
	case OpReturn:
		if arg != 0 {
			return "ret       true"
		}
		return "ret       false"
	case OpJump, OpCall:
		return fmt.Sprintf("%-9s %#06x", op, arg)
	case OpRepeatIfTrue, OpFailIfFalse:
		return op.String()
	default:
		return fmt.Sprintf("%-9s %q", op, byte(arg))
	}
}
