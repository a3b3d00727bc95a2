package encoding

import "io"

// PlainEncoderDecoder passes data through unchanged.
type PlainEncoderDecoder struct{}

func (p PlainEncoderDecoder) Encode(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

func (p PlainEncoderDecoder) Decode(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}
