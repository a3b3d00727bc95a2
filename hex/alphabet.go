package hex

import "unicode"

const upperDigits = "0123456789ABCDEF"

// Nibble maps one character of the hex alphabet (0-9, a-f, A-F) to its value.
// It reports false for every other byte.
func Nibble(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// IsSpace reports whether c is skipped while decoding. Every byte is
// classified as the Latin-1 code point of the same value, so NEL (0x85) and
// NBSP (0xA0) count as whitespace too.
func IsSpace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

// cursor is the half-pair state of a decode pass. The zero value is empty;
// a pending high nibble is stored together with pendingBit, so a cursor is
// only ever built by feed and cannot hold a stale nibble.
type cursor uint8

const pendingBit cursor = 0x10

func (c cursor) pending() bool {
	return c&pendingBit != 0
}

// feed pushes the nibble n. When n completes a pair, the combined byte is
// returned with full set and the next cursor is empty.
func (c cursor) feed(n byte) (next cursor, b byte, full bool) {
	if !c.pending() {
		return pendingBit | cursor(n), 0, false
	}
	return 0, byte(c&^pendingBit)<<4 | n, true
}
