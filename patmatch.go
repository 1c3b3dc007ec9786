// Package patmatch provides lightweight text pattern matching without a
// general regex engine's size or dependencies.
//
// Patterns are a compact Lua-style grammar over ASCII bytes: literals, the '.'
// wildcard, '^'/'$' anchors, '%'-escaped built-in classes (%a letters, %d
// digits, %s whitespace, and so on; uppercase for complements), bracket classes
// with per-member negation, and the greedy quantifiers '+', '*', '?'. A
// pattern is compiled once into a fixed-size bytecode program and can then be
// matched repeatedly, concurrently, and without allocation.
//
// Basic usage:
//
//	p, err := patmatch.Compile("%d+")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loc := p.FindStringIndex("order 1042 shipped")
//	// loc = [6, 10]
//
// Matching is leftmost-first with greedy quantifiers, and backtracking is
// local to a single atom or class, so an unanchored search is bounded by
// O(len(input) * len(pattern)) in the worst case.
//
// Limitations: no Unicode (bytes only), no capture groups, no alternation
// beyond bracket classes.
package patmatch

import (
	"github.com/strkit/patmatch/bytecode"
	"github.com/strkit/patmatch/prefilter"
)

// Pattern is a compiled pattern. It is immutable and safe for concurrent use
// by multiple goroutines.
type Pattern struct {
	prog    *bytecode.Program
	pre     prefilter.Prefilter
	pattern string
}

// Compile compiles a pattern. The returned error is a
// *bytecode.SyntaxError carrying the offending byte index, or
// bytecode.ErrTooLarge when the compiled form exceeds the instruction capacity.
//
// Example:
//
//	p, err := patmatch.Compile("^name: %a+$")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	prog := bytecode.Compile([]byte(pattern))
	if err := prog.Err(); err != nil {
		return nil, err
	}
	return &Pattern{
		prog:    prog,
		pre:     prefilter.FromProgram(prog),
		pattern: pattern,
	}, nil
}

// MustCompile compiles a pattern and panics if it is malformed.
// Useful for patterns known to be valid at program start.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("patmatch: Compile(" + pattern + "): " + err.Error())
	}
	return p
}

// String returns the source text the pattern was compiled from.
func (p *Pattern) String() string {
	return p.pattern
}

// Program returns the compiled bytecode program. The program is shared and
// must be treated as read-only; it is mainly useful for disassembly via
// Program.Dump.
func (p *Pattern) Program() *bytecode.Program {
	return p.prog
}

// findIndex is the common driver: it returns the start offset and consumed
// length of the leftmost match, or start -1.
//
// With a prefilter, candidate offsets are enumerated in increasing order and
// each one is verified by a full machine run, which preserves leftmost-first
// semantics exactly. Without one, every offset is probed. Machine resource
// errors cannot occur for programs built by Compile, so they report as no
// match here; the bytecode layer surfaces them for hand-built programs.
func (p *Pattern) findIndex(b []byte) (start, length int) {
	if p.pre == nil {
		start, length, err := bytecode.Find(p.prog, b)
		if err != nil {
			return -1, 0
		}
		return start, length
	}

	for i := 0; i < len(b); {
		c := p.pre.Find(b, i)
		if c < 0 {
			break
		}
		end, matched, err := bytecode.Run(p.prog, b, c)
		if err != nil {
			return -1, 0
		}
		if matched {
			return c, end - c
		}
		i = c + 1
	}
	return -1, 0
}

// Match reports whether b contains any match of the pattern.
func (p *Pattern) Match(b []byte) bool {
	start, _ := p.findIndex(b)
	return start >= 0
}

// MatchString reports whether s contains any match of the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.Match([]byte(s))
}

// Find returns the text of the leftmost match in b, or nil if there is none.
// A zero-length match returns an empty, non-nil slice.
func (p *Pattern) Find(b []byte) []byte {
	start, length := p.findIndex(b)
	if start < 0 {
		return nil
	}
	return b[start : start+length]
}

// FindString returns the text of the leftmost match in s, or "" if there is
// none (indistinguishable from an empty match; use FindStringIndex to tell
// them apart).
func (p *Pattern) FindString(s string) string {
	return string(p.Find([]byte(s)))
}

// FindIndex returns the location of the leftmost match in b as a two-element
// slice: the match is b[loc[0]:loc[1]]. It returns nil if there is no match.
func (p *Pattern) FindIndex(b []byte) []int {
	start, length := p.findIndex(b)
	if start < 0 {
		return nil
	}
	return []int{start, start + length}
}

// FindStringIndex returns the location of the leftmost match in s, or nil.
func (p *Pattern) FindStringIndex(s string) []int {
	return p.FindIndex([]byte(s))
}

// FindAll returns all successive non-overlapping matches in b.
// If n > 0 it returns at most n matches; n <= 0 means all matches.
// Note that '^' re-anchors at the position after each match.
func (p *Pattern) FindAll(b []byte, n int) [][]byte {
	indices := p.FindAllIndex(b, n)
	if indices == nil {
		return nil
	}
	matches := make([][]byte, len(indices))
	for i, loc := range indices {
		matches[i] = b[loc[0]:loc[1]]
	}
	return matches
}

// FindAllString returns all successive non-overlapping matches in s.
// If n > 0 it returns at most n matches; n <= 0 means all matches.
func (p *Pattern) FindAllString(s string, n int) []string {
	matches := p.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = string(m)
	}
	return result
}

// FindAllIndex returns the locations of all successive non-overlapping
// matches in b as [start, end] pairs.
// If n > 0 it returns at most n matches; n <= 0 means all matches.
func (p *Pattern) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	var indices [][]int
	pos := 0
	for pos <= len(b) {
		start, length := p.findIndex(b[pos:])
		if start < 0 {
			break
		}

		absStart := pos + start
		absEnd := absStart + length
		indices = append(indices, []int{absStart, absEnd})

		if absEnd > pos {
			pos = absEnd
		} else {
			// Empty match: advance by one to avoid looping in place.
			pos++
		}

		if n > 0 && len(indices) >= n {
			break
		}
	}
	return indices
}

// FindAllStringIndex returns the locations of all successive non-overlapping
// matches in s as [start, end] pairs.
func (p *Pattern) FindAllStringIndex(s string, n int) [][]int {
	return p.FindAllIndex([]byte(s), n)
}

// ReplaceAllLiteral returns a copy of src with every match of the pattern
// replaced by repl. The replacement is substituted directly.
func (p *Pattern) ReplaceAllLiteral(src, repl []byte) []byte {
	indices := p.FindAllIndex(src, -1)
	if len(indices) == 0 {
		result := make([]byte, len(src))
		copy(result, src)
		return result
	}

	result := make([]byte, 0, len(src))
	lastEnd := 0
	for _, loc := range indices {
		result = append(result, src[lastEnd:loc[0]]...)
		result = append(result, repl...)
		lastEnd = loc[1]
	}
	return append(result, src[lastEnd:]...)
}

// ReplaceAllLiteralString returns a copy of src with every match of the
// pattern replaced by repl.
func (p *Pattern) ReplaceAllLiteralString(src, repl string) string {
	return string(p.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// Split slices s into the substrings between matches of the pattern.
//
// The count n determines the number of substrings:
//
//	n > 0: at most n substrings; the last one is the unsplit remainder
//	n == 0: nil
//	n < 0: all substrings
func (p *Pattern) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	indices := p.FindAllStringIndex(s, -1)
	if len(indices) == 0 {
		return []string{s}
	}

	result := make([]string, 0, len(indices)+1)
	lastEnd := 0
	for _, loc := range indices {
		if n > 0 && len(result) >= n-1 {
			break
		}
		result = append(result, s[lastEnd:loc[0]])
		lastEnd = loc[1]
	}
	return append(result, s[lastEnd:])
}

// Cut finds the first match in s and returns the match together with the text
// that follows it, for consuming a buffer pattern by pattern:
//
//	p := patmatch.MustCompile("%d+")
//	rest := []byte("a1b22c333")
//	for {
//	    match, tail, ok := p.Cut(rest)
//	    if !ok {
//	        break
//	    }
//	    // match = "1", "22", "333"
//	    rest = tail
//	}
//
// When there is no match, Cut returns (nil, s, false).
func (p *Pattern) Cut(s []byte) (match, rest []byte, found bool) {
	start, length := p.findIndex(s)
	if start < 0 {
		return nil, s, false
	}
	return s[start : start+length], s[start+length:], true
}

// CutString is Cut for strings.
func (p *Pattern) CutString(s string) (match, rest string, found bool) {
	m, r, ok := p.Cut([]byte(s))
	return string(m), string(r), ok
}
