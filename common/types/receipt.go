package types

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// CandidateReceipt is the plain form of a receipt, committing to the commitments by hash.
type CandidateReceipt struct {
	Descriptor      CandidateDescriptor
	CommitmentsHash Hash32
}

// Hash computes the blake2b-256 hash of the receipt.
func (r *CandidateReceipt) Hash() CandidateHash {
	return CandidateHash(CalcObjectHash32(r))
}

// ToV1 converts the receipt to the legacy layout. The hash is unchanged.
func (r *CandidateReceipt) ToV1() CandidateReceiptV1 {
	return CandidateReceiptV1{Descriptor: r.Descriptor.ToV1(), CommitmentsHash: r.CommitmentsHash}
}

// EncodeScale implements scale codec interface.
func (r *CandidateReceipt) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := r.Descriptor.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := r.CommitmentsHash.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (r *CandidateReceipt) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := r.Descriptor.DecodeScale(d)
	if err != nil {
		return total, err
	}
	n, err := r.CommitmentsHash.DecodeScale(d)
	return total + n, err
}

// MarshalLogObject implements logging interface.
func (r *CandidateReceipt) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("candidate_hash", r.Hash().ShortString())
	encoder.AddString("commitments_hash", r.CommitmentsHash.ShortString())
	return encoder.AddObject("descriptor", &r.Descriptor)
}

// CommittedCandidateReceipt is a candidate receipt with the commitments included.
type CommittedCandidateReceipt struct {
	Descriptor  CandidateDescriptor
	Commitments CandidateCommitments
}

// ToPlain replaces the commitments with their hash.
func (r *CommittedCandidateReceipt) ToPlain() CandidateReceipt {
	return CandidateReceipt{
		Descriptor:      r.Descriptor,
		CommitmentsHash: r.Commitments.Hash(),
	}
}

// Hash computes the canonical hash of the receipt, which is the hash of its plain form
// and not of the directly encoded data.
func (r *CommittedCandidateReceipt) Hash() CandidateHash {
	plain := r.ToPlain()
	return plain.Hash()
}

// CorrespondsTo reports whether the plain receipt describes this committed receipt.
func (r *CommittedCandidateReceipt) CorrespondsTo(receipt *CandidateReceipt) bool {
	return receipt.Descriptor == r.Descriptor && receipt.CommitmentsHash == r.Commitments.Hash()
}

// Compare orders receipts by para id and then by head data.
func (r *CommittedCandidateReceipt) Compare(other *CommittedCandidateReceipt) int {
	if c := cmp.Compare(r.Descriptor.ParaID(), other.Descriptor.ParaID()); c != 0 {
		return c
	}
	return bytes.Compare(r.Commitments.HeadData, other.Commitments.HeadData)
}

// ToV1 converts the receipt to the legacy layout. The hash is unchanged.
func (r *CommittedCandidateReceipt) ToV1() CommittedCandidateReceiptV1 {
	return CommittedCandidateReceiptV1{Descriptor: r.Descriptor.ToV1(), Commitments: r.Commitments}
}

// EncodeScale implements scale codec interface.
func (r *CommittedCandidateReceipt) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := r.Descriptor.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := r.Commitments.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (r *CommittedCandidateReceipt) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := r.Descriptor.DecodeScale(d)
	if err != nil {
		return total, err
	}
	n, err := r.Commitments.DecodeScale(d)
	return total + n, err
}

// MarshalLogObject implements logging interface.
func (r *CommittedCandidateReceipt) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("candidate_hash", r.Hash().ShortString())
	if err := encoder.AddObject("descriptor", &r.Descriptor); err != nil {
		return err
	}
	return encoder.AddObject("commitments", &r.Commitments)
}

// SortCommittedReceipts sorts receipts in place by para id and head data.
func SortCommittedReceipts(receipts []CommittedCandidateReceipt) {
	slices.SortFunc(receipts, func(a, b CommittedCandidateReceipt) int {
		return a.Compare(&b)
	})
}

// CandidateReceiptV1 is the plain receipt with a legacy descriptor.
type CandidateReceiptV1 struct {
	Descriptor      CandidateDescriptorV1
	CommitmentsHash Hash32
}

// Hash computes the blake2b-256 hash of the receipt.
func (r *CandidateReceiptV1) Hash() CandidateHash {
	return CandidateHash(CalcObjectHash32(r))
}

// EncodeScale implements scale codec interface.
func (r *CandidateReceiptV1) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := r.Descriptor.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := r.CommitmentsHash.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (r *CandidateReceiptV1) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := r.Descriptor.DecodeScale(d)
	if err != nil {
		return total, err
	}
	n, err := r.CommitmentsHash.DecodeScale(d)
	return total + n, err
}

// CommittedCandidateReceiptV1 is the committed receipt with a legacy descriptor.
type CommittedCandidateReceiptV1 struct {
	Descriptor  CandidateDescriptorV1
	Commitments CandidateCommitments
}

// ToPlain replaces the commitments with their hash.
func (r *CommittedCandidateReceiptV1) ToPlain() CandidateReceiptV1 {
	return CandidateReceiptV1{Descriptor: r.Descriptor, CommitmentsHash: r.Commitments.Hash()}
}

// Hash computes the canonical hash of the receipt.
func (r *CommittedCandidateReceiptV1) Hash() CandidateHash {
	plain := r.ToPlain()
	return plain.Hash()
}

// ToV2 reinterprets the receipt in the current layout. The hash is unchanged.
func (r *CommittedCandidateReceiptV1) ToV2() CommittedCandidateReceipt {
	return CommittedCandidateReceipt{Descriptor: r.Descriptor.ToV2(), Commitments: r.Commitments}
}

// EncodeScale implements scale codec interface.
func (r *CommittedCandidateReceiptV1) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := r.Descriptor.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := r.Commitments.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (r *CommittedCandidateReceiptV1) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := r.Descriptor.DecodeScale(d)
	if err != nil {
		return total, err
	}
	n, err := r.Commitments.DecodeScale(d)
	return total + n, err
}
