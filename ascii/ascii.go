// Package ascii provides per-byte character classification for the pattern
// engine. The predicates back the %a/%c/%d/... built-in classes: the compiler
// uses them to validate escape letters and the machine evaluates them against
// input bytes at match time.
//
// All predicates operate on single bytes. Bytes >= 0x80 are never members of
// any class.
package ascii

import "strings"

// punct is the ASCII punctuation set matched by %p.
const punct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsLetter reports whether c is an ASCII letter (a-z, A-Z).
func IsLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsControl reports whether c is an ASCII control byte (0x00-0x1F, 0x7F).
func IsControl(c byte) bool {
	return c <= 0x1f || c == 0x7f
}

// IsDigit reports whether c is an ASCII digit (0-9).
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsLower reports whether c is an ASCII lowercase letter (a-z).
func IsLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// IsUpper reports whether c is an ASCII uppercase letter (A-Z).
func IsUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// IsPunct reports whether c is an ASCII punctuation byte:
//
//	!"#$%&'()*+,-./:;<=>?@[\]^_`{|}~
func IsPunct(c byte) bool {
	return strings.IndexByte(punct, c) >= 0
}

// IsSpace reports whether c is ASCII whitespace (space, \t, \r, \n, \f, \v).
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// IsAlnum reports whether c is an ASCII letter or digit.
func IsAlnum(c byte) bool {
	return IsLetter(c) || IsDigit(c)
}

// IsHexDigit reports whether c is a hexadecimal digit (0-9, a-f, A-F).
func IsHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
