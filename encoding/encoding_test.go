package encoding

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(uniuri.NewLen(64), 100))

	for _, name := range []string{"gzip", "br", "brotli", "deflate", "zstd", "plain", ""} {
		codec, err := Lookup(name)
		require.NoError(t, err, name)

		var packed, unpacked bytes.Buffer
		require.NoError(t, codec.Encode(&packed, bytes.NewReader(payload)), name)
		require.NoError(t, codec.Decode(&unpacked, &packed), name)
		assert.Equal(t, payload, unpacked.Bytes(), name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("lzma")
	require.EqualError(t, err, "unknown encoding: lzma")
	assert.False(t, IsKnown("lzma"))
	assert.Error(t, Encode(io.Discard, strings.NewReader("x"), "lzma"))
	assert.Error(t, Decode(io.Discard, strings.NewReader("x"), "lzma"))
}

func TestNegotiate(t *testing.T) {
	testCases := []struct {
		Header string
		Expect string
	}{
		{Header: "", Expect: ""},
		{Header: "identity", Expect: ""},
		{Header: "gzip, deflate, br", Expect: "gzip"},
		{Header: "compress;q=1.0, zstd;q=0.5", Expect: "zstd"},
		{Header: " BR ", Expect: "br"},
		{Header: "sdch, *", Expect: ""},
	}

	for i, tc := range testCases {
		if got := Negotiate(tc.Header); got != tc.Expect {
			t.Errorf("case %d: Expected %q, got %q", i, tc.Expect, got)
		}
	}
}

func upper(dst io.Writer, src io.Reader) error {
	b, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	_, err = dst.Write(bytes.ToUpper(b))
	return err
}

func TestChain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Chain(&out, strings.NewReader("hello")))
	assert.Equal(t, "hello", out.String())

	out.Reset()
	require.NoError(t, Chain(&out, strings.NewReader("hello"), GzipEncoderDecoder{}.Encode, GzipEncoderDecoder{}.Decode, upper))
	assert.Equal(t, "HELLO", out.String())
}

func TestChainEarliestErrorWins(t *testing.T) {
	errFirst := errors.New("first stage failed")
	failing := func(dst io.Writer, src io.Reader) error {
		_, _ = dst.Write([]byte("partial"))
		return errFirst
	}

	var out bytes.Buffer
	err := Chain(&out, strings.NewReader("ignored"), failing, upper)
	assert.Same(t, errFirst, err)
}

func TestChainDrainsUpstream(t *testing.T) {
	errTrailing := errors.New("trailing input")
	producer := func(dst io.Writer, src io.Reader) error {
		if _, err := dst.Write([]byte("ab")); err != nil {
			return err
		}
		if _, err := dst.Write([]byte("cd")); err != nil {
			return err
		}
		return errTrailing
	}
	firstTwo := func(dst io.Writer, src io.Reader) error {
		_, err := io.CopyN(dst, src, 2)
		return err
	}

	var out bytes.Buffer
	err := Chain(&out, strings.NewReader(""), producer, firstTwo)
	assert.Same(t, errTrailing, err)
	assert.Equal(t, "ab", out.String())
}
