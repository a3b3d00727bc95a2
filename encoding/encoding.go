package encoding

import "io"

type Encoder interface {
	Encode(dst io.Writer, src io.Reader) error
}

type Decoder interface {
	Decode(dst io.Writer, src io.Reader) error
}

type EncoderAndDecoder interface {
	Encoder
	Decoder
}
