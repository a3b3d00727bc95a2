package hex

import (
	"errors"
	"fmt"
)

var (
	ErrNotHex = errors.New("character does not match hex alphabet, only 0-9, a-f and A-F are allowed; " +
		"make sure not to confuse decoding with encoding, or ignore garbage to skip non-hex characters")
	ErrOddLength = errors.New("input had an odd number of hex characters, the trailing unpaired character was dropped")
)

// CharError reports the first byte outside the hex alphabet met while
// garbage is not ignored. It matches ErrNotHex with errors.Is.
type CharError struct {
	Char   byte
	Offset int64
}

func (e *CharError) Error() string {
	return fmt.Sprintf("invalid byte 0x%02X at offset %d: %v", e.Char, e.Offset, ErrNotHex)
}

func (e *CharError) Unwrap() error {
	return ErrNotHex
}
