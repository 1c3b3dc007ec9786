package bytecode

// Find result sentinels for the start index.
const (
	// NotFound means no start offset produced a match.
	NotFound = -1

	// BadProgram means the program carries a compile error and nothing ran.
	BadProgram = -2
)

// Find searches input for the leftmost match of p and returns the start
// offset and the number of bytes the match consumed.
//
// If p carries a compile error, Find returns (BadProgram, 0, ErrProgram)
// without running anything. Otherwise it runs a fresh match attempt at each
// offset 0..len(input)-1 in increasing order and reports the first success;
// when no offset matches, start is NotFound with a nil error. When the first
// instruction is the '^' anchor only offset 0 is tried.
//
// The unanchored search is O(len(input) * len(pattern)) in the worst case:
// acceptable for the short inputs and patterns this engine targets, and the
// price of keeping attempts independent and allocation-free. Note that the
// offset loop never runs for empty input, so no pattern matches inside an
// empty input.
func Find(p *Program, input []byte) (start, length int, err error) {
	if p.Err() != nil {
		return BadProgram, 0, ErrProgram
	}

	anchored := p.StartAnchored()
	for i := 0; i < len(input); i++ {
		end, matched, err := Run(p, input, i)
		if err != nil {
			return NotFound, 0, err
		}
		if matched {
			return i, end - i, nil
		}
		if anchored {
			break
		}
	}
	return NotFound, 0, nil
}
