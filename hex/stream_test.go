package hex

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexlify/encoding"
)

var _ encoding.EncoderAndDecoder = Codec{}

func TestStripSpace(t *testing.T) {
	in := "a b c d"

	got, err := io.ReadAll(NewDecoder(strings.NewReader(in), false))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, 0xcd}, got)
}

func TestEncoder(t *testing.T) {
	var out strings.Builder
	w := NewEncoder(&out)

	n, err := w.Write([]byte("\xab\xcd"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	big := bytes.Repeat([]byte{0x01}, chunkSize+3)
	n, err = w.Write(big)
	require.NoError(t, err)
	assert.Equal(t, len(big), n)

	assert.Equal(t, "ABCD"+strings.Repeat("01", chunkSize+3), out.String())
}

func TestDecoderErrors(t *testing.T) {
	got, err := io.ReadAll(NewDecoder(strings.NewReader("AABBC"), false))
	assert.ErrorIs(t, err, ErrOddLength)
	assert.Equal(t, []byte{0xAA, 0xBB}, got)

	got, err = io.ReadAll(NewDecoder(strings.NewReader("AAxBB"), false))
	assert.ErrorIs(t, err, ErrNotHex)
	assert.Equal(t, []byte{0xAA}, got)

	got, err = io.ReadAll(NewDecoder(strings.NewReader("AAxBB"), true))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, got)
}

func TestDecoderSmallReads(t *testing.T) {
	r := iotest.OneByteReader(NewDecoder(strings.NewReader("0102 0304"), false))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestCodec(t *testing.T) {
	var text, out bytes.Buffer
	require.NoError(t, Codec{}.Encode(&text, strings.NewReader("hi")))
	assert.Equal(t, "6869", text.String())

	require.NoError(t, Codec{IgnoreGarbage: true}.Decode(&out, strings.NewReader("68:69")))
	assert.Equal(t, "hi", out.String())

	err := Codec{}.Decode(&out, strings.NewReader("68:69"))
	assert.ErrorIs(t, err, ErrNotHex)
}
