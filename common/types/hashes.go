package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/util"
	"github.com/spacemeshos/go-parachain/hash"
)

const (
	// Hash32Length is 32, the expected length of the hash.
	Hash32Length = hash.Size
)

// Hash32 represents the 32-byte blake2b-256 hash of arbitrary data.
type Hash32 [Hash32Length]byte

// EmptyHash32 is a canonical empty hash.
var EmptyHash32 Hash32

// CalcHash32 returns the 32-byte blake2b-256 sum of the given data.
func CalcHash32(data []byte) Hash32 {
	return hash.Sum(data)
}

// CalcObjectHash32 returns the blake2b-256 sum of the scale encoding of obj.
func CalcObjectHash32(obj scale.Encodable) Hash32 {
	hasher := hash.GetHasher()
	defer func() {
		hasher.Reset()
		hash.PutHasher(hasher)
	}()
	if _, err := codec.EncodeTo(hasher, obj); err != nil {
		panic(fmt.Sprintf("encoding %T for hashing: %v", obj, err))
	}
	return hasher.Sum256()
}

// BytesToHash copies b into a hash. If b is larger than the hash, it is cropped from the left.
func BytesToHash(b []byte) Hash32 {
	var h Hash32
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash32) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash32) Hex() string { return util.Encode(h[:]) }

// String implements the stringer interface and is used also by the logger when
// doing full logging into a file.
func (h Hash32) String() string {
	return h.Hex()
}

// ShortString returns the first 10 hex characters of the hash, for logging purposes.
func (h Hash32) ShortString() string {
	return Shorten(h.Hex()[2:], 10)
}

// Shorten shortens a string to a specified length.
func Shorten(s string, maxlen int) string {
	return s[:min(maxlen, len(s))]
}

// IsZero reports whether all bytes of the hash are zero.
func (h Hash32) IsZero() bool {
	return h == EmptyHash32
}

// MarshalText returns the hex representation of h.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash32) UnmarshalText(input []byte) error {
	return util.UnmarshalFixedText("Hash32", input, h[:])
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
