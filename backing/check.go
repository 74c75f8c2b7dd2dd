package backing

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-parachain/common/types"
)

var (
	// ErrBitfieldLength is returned when the validator bitfield doesn't match the group size.
	ErrBitfieldLength = errors.New("validator bitfield length mismatch")
	// ErrVoteCount is returned when the number of votes differs from the number of set bits.
	ErrVoteCount = errors.New("validity vote count mismatch")
)

// CheckBacked checks the shape of a backed candidate received for a backing group of
// groupSize validators. If elastic is set the bitfield must carry a core index, which
// is returned.
//
// Signatures of the votes are not checked.
func CheckBacked(bc *types.BackedCandidate, groupSize int, elastic bool) (types.CoreIndex, bool, error) {
	indices, core, ok := bc.ValidatorIndicesAndCoreIndex(elastic)
	if elastic && !ok {
		return 0, false, fmt.Errorf("%w: no room for a core index in %d bits",
			ErrBitfieldLength, bc.ValidatorIndices().Len())
	}
	if indices.Len() != groupSize {
		return 0, false, fmt.Errorf("%w: %d bits, group size %d", ErrBitfieldLength, indices.Len(), groupSize)
	}
	if votes := len(bc.ValidityVotes()); votes != indices.CountOnes() {
		return 0, false, fmt.Errorf("%w: %d votes, %d validators", ErrVoteCount, votes, indices.CountOnes())
	}
	return core, ok, nil
}
