package encoding

import (
	"compress/flate"
	"io"
)

// DeflateEncoderDecoder implements the EncoderAndDecoder interface using deflate.
type DeflateEncoderDecoder struct{}

// Encode compresses src into dst using deflate.
func (d DeflateEncoderDecoder) Encode(dst io.Writer, src io.Reader) error {
	fw, err := flate.NewWriter(dst, flate.DefaultCompression)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, src); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

// Decode decompresses src into dst using deflate.
func (d DeflateEncoderDecoder) Decode(dst io.Writer, src io.Reader) error {
	fr := flate.NewReader(src)
	defer fr.Close()
	_, err := io.Copy(dst, fr)
	return err
}
