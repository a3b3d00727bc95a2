package hex

import "io"

// Decode reads hex text from src and writes the bytes it spells to dst.
//
// Whitespace is always skipped. Any other byte outside the hex alphabet
// fails the call with a *CharError, unless ignoreGarbage is set, in which
// case it is dropped as if it were never there. If src ends after an
// unpaired digit, ErrOddLength is returned. In both failure cases every
// pair completed before the failure has already been written to dst.
func Decode(dst io.Writer, src io.Reader, ignoreGarbage bool) error {
	d := decoder{ignoreGarbage: ignoreGarbage}
	in := make([]byte, chunkSize)
	buf := make([]byte, 0, chunkSize/2+1)
	for {
		n, rerr := src.Read(in)
		out, err := d.feed(buf[:0], in[:n])
		if len(out) > 0 {
			if _, werr := dst.Write(out); werr != nil {
				return werr
			}
		}
		if err != nil {
			return err
		}
		if rerr == io.EOF {
			return d.finish()
		}
		if rerr != nil {
			return rerr
		}
	}
}

type decoder struct {
	cur           cursor
	offset        int64
	ignoreGarbage bool
}

// feed appends the bytes completed by in to out. On a non-hex byte it stops
// and returns the bytes completed so far together with the error.
func (d *decoder) feed(out, in []byte) ([]byte, error) {
	for i, c := range in {
		if IsSpace(c) {
			continue
		}
		n, ok := Nibble(c)
		if !ok {
			if d.ignoreGarbage {
				continue
			}
			return out, &CharError{Char: c, Offset: d.offset + int64(i)}
		}
		var b byte
		var full bool
		d.cur, b, full = d.cur.feed(n)
		if full {
			out = append(out, b)
		}
	}
	d.offset += int64(len(in))
	return out, nil
}

func (d *decoder) finish() error {
	if d.cur.pending() {
		return ErrOddLength
	}
	return nil
}
