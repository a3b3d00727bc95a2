package hex

import "io"

const chunkSize = 4096

// Encode reads src to exhaustion and writes two uppercase hex digits for
// every byte to dst, without separators. Read and write errors are returned
// as they are.
func Encode(dst io.Writer, src io.Reader) error {
	in := make([]byte, chunkSize)
	out := make([]byte, 2*chunkSize)
	for {
		n, err := src.Read(in)
		if n > 0 {
			encodeTo(out, in[:n])
			if _, werr := dst.Write(out[:2*n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func encodeTo(dst, src []byte) {
	for i, b := range src {
		dst[2*i] = upperDigits[b>>4]
		dst[2*i+1] = upperDigits[b&0x0f]
	}
}
