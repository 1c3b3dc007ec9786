package bytecode

import (
	"fmt"

	"github.com/strkit/patmatch/ascii"
)

// frame is a saved continuation: the call-site program counter and the input
// cursor at call time. A successful return restores only the program counter;
// a failed return restores both, rewinding any input the subroutine consumed.
type frame struct {
	pc     int
	cursor int
}

// machine is the mutable state of one match attempt. It borrows the program
// and the input for the duration of a single run and owns nothing else; a
// fresh machine is created per start offset and discarded immediately after.
type machine struct {
	input  []byte
	cursor int

	prog *Program
	pc   int

	// result is the verdict of the most recent subroutine return; the
	// post-call control instructions inspect it.
	result bool

	sp    int
	stack [MaxStackDepth]frame
}

// Run executes one match attempt of p against input, starting at offset at.
// It reports whether the attempt matched and, on a match, the cursor position
// one past the last byte consumed.
//
// Run returns ErrProgram if p carries a compile error. ErrStackOverflow and
// ErrInternal-wrapped errors indicate exhausted machine resources or a
// defective program; they say nothing about the input. Programs produced by
// Compile never trigger either.
func Run(p *Program, input []byte, at int) (end int, matched bool, err error) {
	if p.Err() != nil {
		return at, false, ErrProgram
	}
	m := machine{input: input, cursor: at, prog: p}
	matched, err = m.run()
	return m.cursor, matched, err
}

// run interprets instructions until a return on an empty stack decides the
// attempt. The loop mirrors the instruction encoding: every iteration ends by
// advancing the program counter, so repeat instructions step it back and jumps
// store the target minus one.
func (m *machine) run() (bool, error) {
	for {
		if m.pc < 0 || m.pc >= m.prog.size {
			return false, fmt.Errorf("%w: program counter %d out of range", ErrInternal, m.pc)
		}
		inst := m.prog.code[m.pc]
		op, arg := inst.Op(), inst.Arg()

		switch op {
		case OpReturn:
			if done, verdict := m.ret(arg != 0); done {
				return verdict, nil
			}

		case OpJump:
			m.pc = int(arg) - 1

		case OpAnchor:
			at := 0
			if arg != '^' {
				at = len(m.input)
			}
			if m.cursor != at {
				if done, verdict := m.ret(false); done {
					return verdict, nil
				}
			}

		case OpCall:
			if m.sp == MaxStackDepth {
				return false, fmt.Errorf("%w at instruction %#06x", ErrStackOverflow, m.pc)
			}
			m.stack[m.sp] = frame{pc: m.pc, cursor: m.cursor}
			m.sp++
			m.pc = int(arg) - 1

		case OpRepeatIfTrue:
			// Step back over the preceding call. Repetition cannot loop
			// without progress: the subroutine only returns true after
			// consuming a byte.
			if m.result {
				m.pc -= 2
			}

		case OpFailIfFalse:
			if !m.result {
				if done, verdict := m.ret(false); done {
					return verdict, nil
				}
			}

		case OpMatch, OpMatchOrFail, OpMatchRetTrue, OpMatchRetFalse, OpMatchRepeat:
			hit := false
			if b, ok := m.current(); ok && uint16(b) == arg {
				m.cursor++
				hit = true
			}
			if done, verdict, err := m.afterMatch(op, hit); done || err != nil {
				return verdict, err
			}

		case OpClass, OpClassOrFail, OpClassRetTrue, OpClassRetFalse, OpClassRepeat:
			hit := false
			if b, ok := m.current(); ok {
				in, known := classMatch(byte(arg), b)
				if !known {
					return false, fmt.Errorf("%w: unknown class letter %q", ErrInternal, byte(arg))
				}
				if in {
					m.cursor++
					hit = true
				}
			}
			if done, verdict, err := m.afterMatch(op, hit); done || err != nil {
				return verdict, err
			}
		}

		m.pc++
	}
}

// afterMatch applies the side effect a match-family opcode attaches to its
// outcome: fail the attempt, return from the subroutine, or self-repeat.
func (m *machine) afterMatch(op Opcode, hit bool) (done, verdict bool, err error) {
	switch op {
	case OpMatchOrFail, OpClassOrFail:
		if !hit {
			done, verdict = m.ret(false)
		}
	case OpMatchRetTrue, OpClassRetTrue:
		if hit {
			done, verdict = m.ret(true)
		}
	case OpMatchRetFalse, OpClassRetFalse:
		if hit {
			done, verdict = m.ret(false)
		}
	case OpMatchRepeat, OpClassRepeat:
		if hit {
			m.pc--
		}
	case OpMatch, OpClass:
		// No side effect: the byte was consumed if present.
	default:
		return false, false, fmt.Errorf("%w: opcode %v is not a match instruction", ErrInternal, op)
	}
	return done, verdict, nil
}

// ret records the verdict of a return. With an empty stack the whole attempt
// is decided; otherwise the saved continuation resumes after the call site,
// and a failed return additionally rewinds the input cursor.
func (m *machine) ret(ok bool) (done, verdict bool) {
	m.result = ok
	if m.sp == 0 {
		return true, ok
	}
	m.sp--
	f := m.stack[m.sp]
	m.pc = f.pc
	if !ok {
		m.cursor = f.cursor
	}
	return false, false
}

// current returns the byte at the input cursor. ok is false at end of input,
// where every match and class check fails, complements included.
func (m *machine) current() (byte, bool) {
	if m.cursor < len(m.input) {
		return m.input[m.cursor], true
	}
	return 0, false
}

// classMatch evaluates the built-in class named by letter against the byte c.
// Uppercase letters are complements. known is false for letters the compiler
// never emits.
func classMatch(letter, c byte) (in, known bool) {
	switch letter {
	case '.':
		return true, true
	case 'a':
		return ascii.IsLetter(c), true
	case 'A':
		return !ascii.IsLetter(c), true
	case 'c':
		return ascii.IsControl(c), true
	case 'C':
		return !ascii.IsControl(c), true
	case 'd':
		return ascii.IsDigit(c), true
	case 'D':
		return !ascii.IsDigit(c), true
	case 'l':
		return ascii.IsLower(c), true
	case 'L':
		return !ascii.IsLower(c), true
	case 'p':
		return ascii.IsPunct(c), true
	case 'P':
		return !ascii.IsPunct(c), true
	case 's':
		return ascii.IsSpace(c), true
	case 'S':
		return !ascii.IsSpace(c), true
	case 'u':
		return ascii.IsUpper(c), true
	case 'U':
		return !ascii.IsUpper(c), true
	case 'w':
		return ascii.IsAlnum(c), true
	case 'W':
		return !ascii.IsAlnum(c), true
	case 'x':
		return ascii.IsHexDigit(c), true
	case 'X':
		return !ascii.IsHexDigit(c), true
	case 'z':
		return c == 0, true
	case 'Z':
		return c != 0, true
	}
	return false, false
}
