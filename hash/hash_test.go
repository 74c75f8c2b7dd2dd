package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumKnownVector(t *testing.T) {
	// blake2b-256 of the empty input
	expected := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	sum := Sum(nil)
	require.Equal(t, expected, hex.EncodeToString(sum[:]))
}

func TestPooledHasherMatchesSum(t *testing.T) {
	data := []byte("relay parent")
	h := GetHasher()
	h.Reset()
	_, err := h.Write(data)
	require.NoError(t, err)
	got := h.Sum256()
	h.Reset()
	PutHasher(h)

	require.Equal(t, Sum(data), got)

	// reused hasher must not carry state
	h = GetHasher()
	_, err = h.Write(data)
	require.NoError(t, err)
	require.Equal(t, Sum(data), h.Sum256())
	h.Reset()
	PutHasher(h)
}
