// Package prefilter provides fast candidate filtering for pattern search.
//
// A prefilter quickly rejects start offsets that cannot possibly begin a
// match, so the bytecode machine only runs at plausible candidates. Filters
// are built from the literals a compiled program requires at its start:
//
//   - required literal prefix of one byte → byte search (bytes.IndexByte)
//   - required literal prefix of several bytes → substring search (bytes.Index)
//   - required leading bracket class of plain literals → Aho-Corasick over the
//     member bytes
//
// A prefilter never changes match results. It only skips offsets where the
// required prefix provably cannot match, candidates are produced in increasing
// offset order, and every candidate is still verified by the machine. Programs
// that are start-anchored, erroring, or begin with anything optional get no
// prefilter at all.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// Prefilter finds candidate start offsets for a pattern search.
type Prefilter interface {
	// Find returns the first candidate offset at or after start, or -1 when
	// no candidate remains. A candidate is a position where the program's
	// required prefix occurs; the caller must verify the full match there.
	Find(haystack []byte, start int) int
}

// bytePrefilter searches for a single required first byte.
type bytePrefilter struct {
	needle byte
}

func (p *bytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// substringPrefilter searches for a required multi-byte literal prefix.
type substringPrefilter struct {
	needle []byte
}

func (p *substringPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// multiBytePrefilter searches for any of several alternative first bytes
// using an Aho-Corasick automaton, the same way large literal alternations
// are searched.
type multiBytePrefilter struct {
	auto *ahocorasick.Automaton
}

func (p *multiBytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// newLiteral builds a prefilter for a required literal prefix.
func newLiteral(prefix []byte) Prefilter {
	if len(prefix) == 1 {
		return &bytePrefilter{needle: prefix[0]}
	}
	needle := make([]byte, len(prefix))
	copy(needle, prefix)
	return &substringPrefilter{needle: needle}
}

// newByteSet builds a prefilter for a set of alternative first bytes.
// Returns nil if the automaton cannot be built.
func newByteSet(alts []byte) Prefilter {
	if len(alts) == 0 {
		return nil
	}
	if len(alts) == 1 {
		return &bytePrefilter{needle: alts[0]}
	}

	builder := ahocorasick.NewBuilder()
	for _, b := range alts {
		builder.AddPattern([]byte{b})
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &multiBytePrefilter{auto: auto}
}
