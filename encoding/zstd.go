package encoding

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdEncoderDecoder implements the EncoderAndDecoder interface using Zstandard.
type ZstdEncoderDecoder struct{}

// Encode compresses src into dst using Zstandard.
func (z ZstdEncoderDecoder) Encode(dst io.Writer, src io.Reader) error {
	encoder, err := zstd.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(encoder, src); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// Decode decompresses src into dst using Zstandard.
func (z ZstdEncoderDecoder) Decode(dst io.Writer, src io.Reader) error {
	decoder, err := zstd.NewReader(src)
	if err != nil {
		return err
	}
	defer decoder.Close()

	_, err = io.Copy(dst, decoder)
	return err
}
