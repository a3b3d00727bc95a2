package encoding

import (
	"compress/gzip"
	"io"
)

// GzipEncoderDecoder implements the EncoderAndDecoder interface using gzip.
type GzipEncoderDecoder struct{}

// Encode compresses src into dst using gzip.
func (g GzipEncoderDecoder) Encode(dst io.Writer, src io.Reader) error {
	gw := gzip.NewWriter(dst)
	if _, err := io.Copy(gw, src); err != nil {
		_ = gw.Close()
		return err
	}
	// It's important to close the writer to flush the data
	return gw.Close()
}

// Decode decompresses src into dst using gzip.
func (g GzipEncoderDecoder) Decode(dst io.Writer, src io.Reader) error {
	gr, err := gzip.NewReader(src)
	if err != nil {
		return err
	}
	defer gr.Close()
	_, err = io.Copy(dst, gr)
	return err
}
