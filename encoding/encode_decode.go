package encoding

import (
	"fmt"
	"io"
	"strings"
)

// Lookup returns the codec registered under encoding. Both "" and "plain"
// name the pass-through codec.
func Lookup(encoding string) (EncoderAndDecoder, error) {
	switch encoding {
	case "gzip":
		return GzipEncoderDecoder{}, nil
	case "brotli", "br":
		return BrotliEncoderDecoder{}, nil
	case "deflate":
		return DeflateEncoderDecoder{}, nil
	case "zstd":
		return ZstdEncoderDecoder{}, nil
	case "plain", "":
		return PlainEncoderDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown encoding: %s", encoding)
	}
}

func IsKnown(encoding string) bool {
	_, err := Lookup(encoding)
	return err == nil
}

func IsPlain(encoding string) bool {
	return encoding == "" || encoding == "plain"
}

func Encode(dst io.Writer, src io.Reader, encoding string) error {
	encoder, err := Lookup(encoding)
	if err != nil {
		return err
	}
	return encoder.Encode(dst, src)
}

func Decode(dst io.Writer, src io.Reader, encoding string) error {
	decoder, err := Lookup(encoding)
	if err != nil {
		return err
	}
	return decoder.Decode(dst, src)
}

// Negotiate picks the first encoding of an Accept-Encoding header that can be
// produced, ignoring quality values. It returns "" when nothing matches.
func Negotiate(acceptEncoding string) string {
	acceptEncodingChunks := strings.Split(acceptEncoding, ",")
	for _, encoding := range acceptEncodingChunks {
		if i := strings.IndexByte(encoding, ';'); i >= 0 {
			encoding = encoding[:i]
		}
		encoding = strings.ToLower(strings.TrimSpace(encoding))
		if encoding == "" || encoding == "identity" || IsPlain(encoding) {
			continue
		}
		if IsKnown(encoding) {
			return encoding
		}
	}

	return ""
}
