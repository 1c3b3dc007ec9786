package prefilter

import "github.com/strkit/patmatch/bytecode"

// FromProgram builds the best prefilter for a compiled program, or nil when
// none applies.
//
// Extraction is deliberately conservative: it only reads instructions every
// match attempt must execute unconditionally, so a skipped offset can never
// have matched.
//
//   - A run of required-literal instructions at the top of the program is a
//     literal prefix every match begins with.
//   - A program that opens with a bracket-class subroutine whose call is
//     required, where every member is a plain non-negated literal, admits
//     exactly those member bytes as first bytes.
//
// Anything else (a leading anchor, an optional or repeating first atom, a
// built-in class, a negated class) yields no prefilter, and the driver falls
// back to probing every offset. Start-anchored programs need no prefilter
// because only offset 0 is ever tried.
func FromProgram(p *bytecode.Program) Prefilter {
	if p.Err() != nil || p.StartAnchored() {
		return nil
	}

	if prefix := literalPrefix(p); len(prefix) > 0 {
		return newLiteral(prefix)
	}
	if alts := leadingClassBytes(p); len(alts) > 0 {
		return newByteSet(alts)
	}
	return nil
}

// literalPrefix collects the longest run of require-and-consume literal
// instructions at the start of the program. Each one must match for the
// attempt to survive, so together they form a mandatory prefix.
func literalPrefix(p *bytecode.Program) []byte {
	var prefix []byte
	for i := 0; i < p.Len(); i++ {
		inst := p.Inst(i)
		if inst.Op() != bytecode.OpMatchOrFail {
			break
		}
		prefix = append(prefix, byte(inst.Arg()))
	}
	return prefix
}

// leadingClassBytes returns the alternative first bytes of a program that
// begins with a required bracket class of plain literal members, or nil.
//
// The compiler lays such a program out as:
//
//	0x0000: jmp    T
//	0x0001..T-2:   members (match.rt only, for this extraction)
//	T-1:           ret false
//	T:             call 0x0001
//	T+1:           fail.f
func leadingClassBytes(p *bytecode.Program) []byte {
	if p.Len() == 0 || p.Inst(0).Op() != bytecode.OpJump {
		return nil
	}
	after := int(p.Inst(0).Arg())
	if after+1 >= p.Len() || after < 2 {
		return nil
	}

	// The class must be required: called immediately and failing the whole
	// attempt when it fails. Bare classes and '+' both compile to this
	// call-then-fail.f shape; '?' and '*' do not, and are skipped because
	// their first occurrence is optional.
	call, test := p.Inst(after), p.Inst(after+1)
	if call.Op() != bytecode.OpCall || call.Arg() != 1 {
		return nil
	}
	if test.Op() != bytecode.OpFailIfFalse {
		return nil
	}

	var alts []byte
	seen := [256]bool{}
	for i := 1; i < after-1; i++ {
		inst := p.Inst(i)
		if inst.Op() != bytecode.OpMatchRetTrue {
			// Built-in class or negated member: first bytes are not a small
			// literal set.
			return nil
		}
		b := byte(inst.Arg())
		if !seen[b] {
			seen[b] = true
			alts = append(alts, b)
		}
	}
	if p.Inst(after-1).Op() != bytecode.OpReturn {
		return nil
	}
	return alts
}
