package types

import (
	"strconv"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/util"
)

const (
	// MaxHeadDataSize bounds decoded head data.
	MaxHeadDataSize = 1 << 20
	// MaxCodeSize bounds decoded validation code.
	MaxCodeSize = 3 << 20
)

// ParaID is the identifier of a parachain.
type ParaID uint32

// String returns the decimal para id.
func (id ParaID) String() string { return strconv.FormatUint(uint64(id), 10) }

// EncodeScale implements scale codec interface.
func (id ParaID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(id))
}

// DecodeScale implements scale codec interface.
func (id *ParaID) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*id = ParaID(value)
	return n, err
}

// CoreIndex is the index of an availability core.
type CoreIndex uint32

// String returns the decimal core index.
func (c CoreIndex) String() string { return strconv.FormatUint(uint64(c), 10) }

// EncodeScale implements scale codec interface.
func (c CoreIndex) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(c))
}

// DecodeScale implements scale codec interface.
func (c *CoreIndex) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*c = CoreIndex(value)
	return n, err
}

// GroupIndex is the index of a validator backing group.
type GroupIndex uint32

// EncodeScale implements scale codec interface.
func (g GroupIndex) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(g))
}

// DecodeScale implements scale codec interface.
func (g *GroupIndex) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*g = GroupIndex(value)
	return n, err
}

// ValidatorIndex is the index of a validator in the active set of a session.
type ValidatorIndex uint32

// EncodeScale implements scale codec interface.
func (v ValidatorIndex) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(v))
}

// DecodeScale implements scale codec interface.
func (v *ValidatorIndex) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*v = ValidatorIndex(value)
	return n, err
}

// SessionIndex is the index of a relay chain session.
type SessionIndex uint32

// EncodeScale implements scale codec interface.
func (s SessionIndex) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(s))
}

// DecodeScale implements scale codec interface.
func (s *SessionIndex) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*s = SessionIndex(value)
	return n, err
}

// BlockNumber is a relay chain block number.
type BlockNumber uint32

// EncodeScale implements scale codec interface.
func (b BlockNumber) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(b))
}

// DecodeScale implements scale codec interface.
func (b *BlockNumber) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*b = BlockNumber(value)
	return n, err
}

// HeadData is the opaque head of a parachain block.
type HeadData []byte

// Hash returns the blake2b-256 hash of the raw head data.
func (h HeadData) Hash() Hash32 { return CalcHash32(h) }

// String returns the hex representation of the head data.
func (h HeadData) String() string { return util.Encode(h) }

// EncodeScale implements scale codec interface.
func (h HeadData) EncodeScale(e *scale.Encoder) (int, error) {
	return codec.EncodeBytes(e, h)
}

// DecodeScale implements scale codec interface.
func (h *HeadData) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeByteSliceWithLimit(d, MaxHeadDataSize)
	*h = value
	return n, err
}

// ValidationCode is the wasm blob that validates parachain blocks.
type ValidationCode []byte

// Hash returns the hash of the raw validation code.
func (c ValidationCode) Hash() ValidationCodeHash { return ValidationCodeHash(CalcHash32(c)) }

// ValidationCodeHash is the blake2b-256 hash of validation code.
type ValidationCodeHash Hash32

// String returns the hex representation of the hash.
func (h ValidationCodeHash) String() string { return Hash32(h).Hex() }

// EncodeScale implements scale codec interface.
func (h *ValidationCodeHash) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *ValidationCodeHash) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}

// CandidateHash is the canonical hash of a candidate receipt.
type CandidateHash Hash32

// String returns the hex representation of the hash.
func (h CandidateHash) String() string { return Hash32(h).Hex() }

// ShortString returns a shortened hash for logging purposes.
func (h CandidateHash) ShortString() string { return Hash32(h).ShortString() }

// EncodeScale implements scale codec interface.
func (h *CandidateHash) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *CandidateHash) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
