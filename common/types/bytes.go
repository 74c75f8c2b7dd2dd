package types

import (
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-parachain/common/util"
)

const (
	// CollatorIDSize is the size of an sr25519 collator public key.
	CollatorIDSize = 32
	// SignatureSize is the size of an sr25519 signature.
	SignatureSize = 64
)

// CollatorID is the public key of a collator.
type CollatorID [CollatorIDSize]byte

// String returns the hex representation of the collator key.
func (id CollatorID) String() string { return util.Encode(id[:]) }

// EncodeScale implements scale codec interface.
func (id *CollatorID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *CollatorID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}

// CollatorSignature is a collator's signature over a V1 descriptor payload.
type CollatorSignature [SignatureSize]byte

// String returns the hex representation of the signature.
func (s CollatorSignature) String() string { return util.Encode(s[:]) }

// EncodeScale implements scale codec interface.
func (s *CollatorSignature) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, s[:])
}

// DecodeScale implements scale codec interface.
func (s *CollatorSignature) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, s[:])
}

// ValidatorSignature is a validator's signature over a backing statement.
type ValidatorSignature [SignatureSize]byte

// EncodeScale implements scale codec interface.
func (s *ValidatorSignature) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, s[:])
}

// DecodeScale implements scale codec interface.
func (s *ValidatorSignature) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, s[:])
}
