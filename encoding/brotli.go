package encoding

import (
	"io"

	"github.com/andybalholm/brotli"
)

// BrotliEncoderDecoder implements the EncoderAndDecoder interface using Brotli.
type BrotliEncoderDecoder struct{}

// Encode compresses src into dst using Brotli.
func (b BrotliEncoderDecoder) Encode(dst io.Writer, src io.Reader) error {
	bw := brotli.NewWriter(dst)
	if _, err := io.Copy(bw, src); err != nil {
		_ = bw.Close()
		return err
	}
	return bw.Close()
}

// Decode decompresses src into dst using Brotli.
func (b BrotliEncoderDecoder) Decode(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, brotli.NewReader(src))
	return err
}
