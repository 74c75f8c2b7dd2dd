package hash

import "golang.org/x/crypto/blake2b"

const (
	// Size of a BLAKE2b-256 digest in bytes.
	Size = blake2b.Size256
)

// Sum is an alias to blake2b.Sum256.
var Sum = blake2b.Sum256

// New returns an unkeyed BLAKE2b-256 hasher.
func New() *Hasher {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only possible with a key longer than 64 bytes
		panic(err)
	}
	return &Hasher{Hash: h}
}
