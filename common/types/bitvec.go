package types

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/spacemeshos/go-scale"
)

// MaxBitVecLen bounds the number of bits accepted when decoding a BitVec.
const MaxBitVecLen = 1 << 16

// BitVec is a growable bit vector. The zero value is an empty vector.
//
// The scale encoding is the compact bit length followed by the bits packed into bytes,
// least significant bit first: bit i lives in byte i/8 at position i%8.
type BitVec struct {
	set *bitset.BitSet
}

func byteLen(n int) int { return (n + 7) / 8 }

// NewBitVec returns a vector of n zero bits.
func NewBitVec(n int) BitVec {
	if n == 0 {
		return BitVec{}
	}
	return BitVec{set: bitset.New(uint(n))}
}

// BitVecFromBools builds a vector from a list of flags.
func BitVecFromBools(flags ...bool) BitVec {
	b := NewBitVec(len(flags))
	for i, f := range flags {
		b.Set(i, f)
	}
	return b
}

// BitVecFromBytes builds a vector of len(raw)*8 bits from bytes packed least
// significant bit first.
func BitVecFromBytes(raw []byte) BitVec {
	b := NewBitVec(len(raw) * 8)
	for i, v := range raw {
		for j := range 8 {
			if v&(1<<j) != 0 {
				b.set.Set(uint(i*8 + j))
			}
		}
	}
	return b
}

// Len returns the number of bits.
func (b BitVec) Len() int {
	if b.set == nil {
		return 0
	}
	return int(b.set.Len())
}

// Get returns the bit at position i. Panics if i is out of range.
func (b BitVec) Get(i int) bool {
	b.check(i)
	return b.set.Test(uint(i))
}

// Set sets the bit at position i. Panics if i is out of range.
func (b *BitVec) Set(i int, value bool) {
	b.check(i)
	b.set.SetTo(uint(i), value)
}

func (b BitVec) check(i int) {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("bit index %d out of range [0, %d)", i, b.Len()))
	}
}

// Push appends a bit.
func (b *BitVec) Push(value bool) {
	if b.set == nil {
		b.set = bitset.New(0)
	}
	i := b.set.Len()
	// Set grows the length, Clear never does
	b.set.Set(i)
	if !value {
		b.set.Clear(i)
	}
}

// Extend appends all bits of other.
func (b *BitVec) Extend(other BitVec) {
	for i := range other.Len() {
		b.Push(other.Get(i))
	}
}

// ExtendUint8 appends the 8 bits of value, least significant first.
func (b *BitVec) ExtendUint8(value uint8) {
	for i := range 8 {
		b.Push(value&(1<<i) != 0)
	}
}

// SplitAt returns copies of the bits [0, mid) and [mid, Len()).
func (b BitVec) SplitAt(mid int) (BitVec, BitVec) {
	n := b.Len()
	if mid < 0 || mid > n {
		panic(fmt.Sprintf("split index %d out of range [0, %d]", mid, n))
	}
	head := NewBitVec(mid)
	tail := NewBitVec(n - mid)
	for i, ok := b.nextSet(0); ok; i, ok = b.nextSet(i + 1) {
		if i < mid {
			head.set.Set(uint(i))
		} else {
			tail.set.Set(uint(i - mid))
		}
	}
	return head, tail
}

func (b BitVec) nextSet(i int) (int, bool) {
	if b.set == nil {
		return 0, false
	}
	next, ok := b.set.NextSet(uint(i))
	return int(next), ok
}

// LoadUint8 interprets up to the first 8 bits as an unsigned integer, bit i being 2^i.
func (b BitVec) LoadUint8() uint8 {
	var value uint8
	for i := range min(b.Len(), 8) {
		if b.Get(i) {
			value |= 1 << i
		}
	}
	return value
}

// CountOnes returns the number of set bits.
func (b BitVec) CountOnes() int {
	if b.set == nil {
		return 0
	}
	return int(b.set.Count())
}

// Ones returns the positions of the set bits in ascending order.
func (b BitVec) Ones() []int {
	var rst []int
	for i, ok := b.nextSet(0); ok; i, ok = b.nextSet(i + 1) {
		rst = append(rst, i)
	}
	return rst
}

// Clone returns a deep copy.
func (b BitVec) Clone() BitVec {
	if b.Len() == 0 {
		return BitVec{}
	}
	return BitVec{set: b.set.Clone()}
}

// Equal reports whether both vectors hold the same bits.
func (b BitVec) Equal(other BitVec) bool {
	if b.Len() != other.Len() {
		return false
	}
	return b.Len() == 0 || b.set.Equal(other.set)
}

// Bytes returns the bits packed into bytes, least significant bit first.
func (b BitVec) Bytes() []byte {
	n := b.Len()
	if n == 0 {
		return []byte{}
	}
	out := make([]byte, byteLen(n))
	for i, word := range b.set.Words() {
		for j := range 8 {
			k := i*8 + j
			if k == len(out) {
				return out
			}
			out[k] = byte(word >> (8 * j))
		}
	}
	return out
}

// String renders the bits as 0 and 1 characters, lowest index first.
func (b BitVec) String() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	for i := range b.Len() {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// EncodeScale implements scale codec interface.
func (b *BitVec) EncodeScale(e *scale.Encoder) (int, error) {
	n := b.Len()
	if n > MaxBitVecLen {
		return 0, fmt.Errorf("bitvec of %d bits exceeds limit %d", n, MaxBitVecLen)
	}
	total, err := scale.EncodeCompact32(e, uint32(n))
	if err != nil {
		return total, err
	}
	if n == 0 {
		return total, nil
	}
	written, err := scale.EncodeByteArray(e, b.Bytes())
	return total + written, err
}

// DecodeScale implements scale codec interface. Padding bits of the last byte are ignored.
func (b *BitVec) DecodeScale(d *scale.Decoder) (int, error) {
	length, total, err := scale.DecodeCompact32(d)
	if err != nil {
		return total, err
	}
	if length > MaxBitVecLen {
		return total, fmt.Errorf("bitvec of %d bits exceeds limit %d", length, MaxBitVecLen)
	}
	n := int(length)
	decoded := NewBitVec(n)
	if n > 0 {
		raw := make([]byte, byteLen(n))
		read, err := scale.DecodeByteArray(d, raw)
		total += read
		if err != nil {
			return total, err
		}
		for i := range n {
			if raw[i/8]&(1<<(i%8)) != 0 {
				decoded.set.Set(uint(i))
			}
		}
	}
	*b = decoded
	return total, nil
}
