package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		desc  string
		input []byte
		enc   string
	}{
		{desc: "empty", input: []byte{}, enc: "0x"},
		{desc: "bytes", input: []byte{0x01, 0xab, 0xff}, enc: "0x01abff"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.enc, Encode(tc.input))
			dec, err := Decode(tc.enc)
			require.NoError(t, err)
			require.Equal(t, tc.input, dec)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("0xabc")
	require.ErrorIs(t, err, ErrOddLength)

	_, err = Decode("zz")
	require.ErrorIs(t, err, ErrSyntax)

	b, err := Decode("  ABCD\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0xab, 0xcd}, b)
}

func TestUnmarshalFixedText(t *testing.T) {
	out := make([]byte, 2)
	require.NoError(t, UnmarshalFixedText("Hash", []byte("0x0102"), out))
	require.Equal(t, []byte{1, 2}, out)

	err := UnmarshalFixedText("Hash", []byte("0x01"), out)
	require.ErrorContains(t, err, "hex string has length 2, want 4")
}
