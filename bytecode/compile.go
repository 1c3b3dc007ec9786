package bytecode

import "strings"

// Escape tokens: a '%' followed by a metacharacter matches that byte
// literally, a '%' followed by a class letter matches the built-in class
// (uppercase letters are complements).
const (
	literalEscapes = "%.+*?^$[]"
	classLetters   = "acdlpsuwxzACDLPSUWXZ"
)

// Compile translates pattern text into a bytecode program in a single
// left-to-right pass with one-token lookahead. It never allocates beyond the
// returned Program and never exceeds the fixed instruction buffer.
//
// Compile does not fail: errors are recorded in the returned Program. A
// capacity overflow sets CodeTooLarge and turns further emission into no-ops;
// a syntax error aborts the scan and records the offending byte index. Check
// Program.Err before matching.
func Compile(pattern []byte) *Program {
	p := &Program{}

	inClass := false     // scanning a bracket-class body
	invertClass := false // the class was opened with '[^'
	classPos := 0        // index of the class placeholder instruction

	// none marks absent lookahead bytes; it compares unequal to every byte.
	const none = -1

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		next, nnext := none, none
		if i+1 < len(pattern) {
			next = int(pattern[i+1])
		}
		if i+2 < len(pattern) {
			nnext = int(pattern[i+2])
		}

		if inClass {
			switch {
			case c == ']':
				inClass = false
				if invertClass {
					// No member rejected the byte: accept and consume it.
					// This is what makes [^a] match any byte other than 'a'
					// instead of nothing at all.
					p.add(OpClassRetTrue, '.')
				}
				p.add(OpReturn, 0)

				// Patch the placeholder into a jump over the subroutine body.
				if p.errCode == CodeOK {
					p.code[classPos] = makeInst(OpJump, uint16(p.size))
				}

				// The subroutine must run to completion before a quantifier
				// can inspect its verdict, so quantified classes are compiled
				// as call-then-test sequences rather than self-looping
				// instructions.
				entry := uint16(classPos + 1)
				switch next {
				case '?':
					p.add(OpCall, entry)
					i++
				case '*':
					p.add(OpCall, entry)
					p.add(OpRepeatIfTrue, 0)
					i++
				case '+':
					p.add(OpCall, entry)
					p.add(OpFailIfFalse, 0)
					p.add(OpCall, entry)
					p.add(OpRepeatIfTrue, 0)
					i++
				default:
					p.add(OpCall, entry)
					p.add(OpFailIfFalse, 0)
				}

			case c == '%':
				switch {
				case next == none:
					return p.syntaxError(i)
				case strings.IndexByte(literalEscapes, byte(next)) >= 0:
					p.addMember(uint16(next), false, invertClass)
				case strings.IndexByte(classLetters, byte(next)) >= 0:
					p.addMember(uint16(next), true, invertClass)
				default:
					return p.syntaxError(i)
				}
				i++

			default:
				p.addMember(uint16(c), false, invertClass)
			}
			continue
		}

		switch c {
		case '+', '*', '?':
			// Quantifier with no preceding atom.
			return p.syntaxError(i)

		case ']':
			// Stray class terminator; match it with the %] escape.
			return p.syntaxError(i)

		case '%':
			switch {
			case next == none:
				return p.syntaxError(i)
			case strings.IndexByte(literalEscapes, byte(next)) >= 0:
				i += 1 + p.addAtom(uint16(next), false, nnext)
			case strings.IndexByte(classLetters, byte(next)) >= 0:
				i += 1 + p.addAtom(uint16(next), true, nnext)
			default:
				return p.syntaxError(i)
			}

		case '.':
			i += p.addAtom('.', true, next)

		case '^', '$':
			p.add(OpAnchor, uint16(c))

		case '[':
			inClass = true
			classPos = p.size
			p.add(OpReturn, 0) // placeholder, patched into a jump at ']'
			if next == '^' {
				invertClass = true
				i++
			} else {
				invertClass = false
			}

		default:
			i += p.addAtom(uint16(c), false, next)
		}
	}

	if inClass {
		// Unterminated class: report index len(pattern).
		return p.syntaxError(len(pattern))
	}

	p.add(OpReturn, 1)
	return p
}

// addAtom emits a single literal or built-in-class atom combined with its
// optional quantifier, given the lookahead byte that follows the atom.
// It returns the number of extra pattern bytes the quantifier consumed.
func (p *Program) addAtom(arg uint16, class bool, quant int) int {
	required, repeat, optional := OpMatchOrFail, OpMatchRepeat, OpMatch
	if class {
		required, repeat, optional = OpClassOrFail, OpClassRepeat, OpClass
	}

	switch quant {
	case '+':
		p.add(required, arg)
		p.add(repeat, arg)
		return 1
	case '*':
		p.add(repeat, arg)
		return 1
	case '?':
		p.add(optional, arg)
		return 1
	default:
		p.add(required, arg)
		return 0
	}
}

// addMember emits one bracket-class member. Negation is per member: in a
// negated class each member consumes its byte and fails the subroutine, so a
// byte equal to any member is rejected.
func (p *Program) addMember(arg uint16, class, invert bool) {
	op := OpMatchRetTrue
	switch {
	case class && invert:
		op = OpClassRetFalse
	case class:
		op = OpClassRetTrue
	case invert:
		op = OpMatchRetFalse
	}
	p.add(op, arg)
}

// syntaxError records the offending byte index and aborts compilation.
func (p *Program) syntaxError(pos int) *Program {
	p.errCode = -1 - pos
	return p
}
