package types

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// coreIndexBits is the number of trailing bitfield bits that carry the core index
// when elastic scaling is enabled.
const coreIndexBits = 8

// BackedCandidate is a candidate together with the validity votes of its backing group.
//
// The validator bitfield has one bit per member of the backing group. With elastic
// scaling the core index is appended to it as 8 extra bits. The encoding doesn't
// tell which convention is in use, callers have to know.
//
// A BackedCandidate is not safe for concurrent mutation.
type BackedCandidate struct {
	candidate        CommittedCandidateReceipt
	validityVotes    []ValidityAttestation
	validatorIndices BitVec
}

// NewBackedCandidate creates a backed candidate. If coreIndex is not nil its low
// byte is appended to the validator bitfield.
func NewBackedCandidate(
	candidate CommittedCandidateReceipt,
	votes []ValidityAttestation,
	validatorIndices BitVec,
	coreIndex *CoreIndex,
) *BackedCandidate {
	bc := &BackedCandidate{
		candidate:        candidate,
		validityVotes:    votes,
		validatorIndices: validatorIndices.Clone(),
	}
	if coreIndex != nil {
		bc.injectCoreIndex(*coreIndex)
	}
	return bc
}

// Candidate returns the committed candidate receipt.
func (b *BackedCandidate) Candidate() *CommittedCandidateReceipt { return &b.candidate }

// Descriptor returns the descriptor of the candidate.
func (b *BackedCandidate) Descriptor() *CandidateDescriptor { return &b.candidate.Descriptor }

// ValidityVotes returns the validity votes of the candidate.
func (b *BackedCandidate) ValidityVotes() []ValidityAttestation { return b.validityVotes }

// AddValidityVote appends a validity vote.
func (b *BackedCandidate) AddValidityVote(vote ValidityAttestation) {
	b.validityVotes = append(b.validityVotes, vote)
}

// SetValidityVotes replaces the validity votes.
func (b *BackedCandidate) SetValidityVotes(votes []ValidityAttestation) {
	b.validityVotes = votes
}

// Hash returns the canonical hash of the candidate.
func (b *BackedCandidate) Hash() CandidateHash { return b.candidate.Hash() }

// Receipt returns the plain receipt of the candidate.
func (b *BackedCandidate) Receipt() CandidateReceipt { return b.candidate.ToPlain() }

// ValidatorIndices returns a copy of the raw bitfield, including an injected core index.
func (b *BackedCandidate) ValidatorIndices() BitVec { return b.validatorIndices.Clone() }

// ValidatorIndicesAndCoreIndex returns the validator bitfield and, if coreIndexEnabled,
// the core index stored in its trailing 8 bits.
//
// If the bitfield isn't longer than 8 bits it can't contain both, and the whole
// bitfield is returned without a core index.
func (b *BackedCandidate) ValidatorIndicesAndCoreIndex(coreIndexEnabled bool) (BitVec, CoreIndex, bool) {
	if coreIndexEnabled {
		offset := max(b.validatorIndices.Len()-coreIndexBits, 0)
		if offset > 0 {
			indices, core := b.validatorIndices.SplitAt(offset)
			return indices, CoreIndex(core.LoadUint8()), true
		}
	}
	return b.validatorIndices.Clone(), 0, false
}

// SetValidatorIndicesAndCoreIndex replaces the validator bitfield, appending the core
// index if it is not nil.
func (b *BackedCandidate) SetValidatorIndicesAndCoreIndex(indices BitVec, coreIndex *CoreIndex) {
	b.validatorIndices = indices.Clone()
	if coreIndex != nil {
		b.injectCoreIndex(*coreIndex)
	}
}

func (b *BackedCandidate) injectCoreIndex(core CoreIndex) {
	b.validatorIndices.ExtendUint8(uint8(core))
}

// EncodeScale implements scale codec interface.
func (b *BackedCandidate) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := b.candidate.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeStructSlice(e, b.validityVotes)
	total += n
	if err != nil {
		return total, err
	}
	n, err = b.validatorIndices.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (b *BackedCandidate) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := b.candidate.DecodeScale(d)
	if err != nil {
		return total, err
	}
	votes, n, err := scale.DecodeStructSlice[ValidityAttestation](d)
	total += n
	if err != nil {
		return total, err
	}
	b.validityVotes = votes
	n, err = b.validatorIndices.DecodeScale(d)
	return total + n, err
}

// MarshalLogObject implements logging interface.
func (b *BackedCandidate) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("candidate_hash", b.Hash().ShortString())
	encoder.AddInt("votes", len(b.validityVotes))
	encoder.AddString("validator_indices", b.validatorIndices.String())
	return encoder.AddObject("descriptor", &b.candidate.Descriptor)
}
