package hash

import (
	"hash"
	"sync"
)

// Hasher wraps a BLAKE2b-256 state so it can be pooled and summed into a fixed array.
type Hasher struct {
	hash.Hash
}

// Sum256 appends nothing and returns the digest of everything written so far.
func (h *Hasher) Sum256() (out [Size]byte) {
	h.Sum(out[:0])
	return out
}

// Pool is a global blake2b hasher pool. It is meant to amortize allocations
// of hashers over time by allowing clients to reuse them.
var pool = &sync.Pool{
	New: func() any {
		return New()
	},
}

// GetHasher will get a blake2b hasher from the pool.
// It may or may not allocate a new one. Consumers are expected
// to call Reset() on the hasher before putting it back in
// the pool.
func GetHasher() *Hasher {
	return pool.Get().(*Hasher)
}

// PutHasher returns the hasher back to the pool.
// Consumers are expected to call Reset() on the
// instance before putting it back in the pool.
func PutHasher(hasher *Hasher) {
	pool.Put(hasher)
}
