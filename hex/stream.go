package hex

import "io"

// NewEncoder returns a writer that writes the hex form of everything
// written to it into w.
func NewEncoder(w io.Writer) io.Writer {
	return &encodeWriter{w: w}
}

type encodeWriter struct {
	w   io.Writer
	out [2 * chunkSize]byte
}

func (e *encodeWriter) Write(p []byte) (int, error) {
	var n int
	for len(p) > 0 {
		chunk := p
		if len(chunk) > chunkSize {
			chunk = chunk[:chunkSize]
		}
		encodeTo(e.out[:], chunk)
		written, err := e.w.Write(e.out[:2*len(chunk)])
		n += written / 2
		if err != nil {
			return n, err
		}
		p = p[len(chunk):]
	}
	return n, nil
}

// NewDecoder returns a reader that yields the bytes spelled by the hex text
// read from r, following the rules of Decode. A trailing unpaired digit is
// reported as ErrOddLength in place of io.EOF.
func NewDecoder(r io.Reader, ignoreGarbage bool) io.Reader {
	return &decodeReader{
		r:   r,
		dec: decoder{ignoreGarbage: ignoreGarbage},
		buf: make([]byte, 0, chunkSize/2+1),
	}
}

type decodeReader struct {
	r   io.Reader
	dec decoder
	in  [chunkSize]byte
	buf []byte
	out []byte
	err error
}

func (d *decodeReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(d.out) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		n, err := d.r.Read(d.in[:])
		d.out, d.err = d.dec.feed(d.buf[:0], d.in[:n])
		if d.err != nil || err == nil {
			continue
		}
		if err == io.EOF {
			if d.err = d.dec.finish(); d.err == nil {
				d.err = io.EOF
			}
			continue
		}
		d.err = err
	}
	n := copy(p, d.out)
	d.out = d.out[n:]
	return n, nil
}

// Codec adapts Encode and Decode to the stream signature shared by the
// container encodings.
type Codec struct {
	IgnoreGarbage bool
}

func (c Codec) Encode(dst io.Writer, src io.Reader) error {
	return Encode(dst, src)
}

func (c Codec) Decode(dst io.Writer, src io.Reader) error {
	return Decode(dst, src, c.IgnoreGarbage)
}
