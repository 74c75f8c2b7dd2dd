package backing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-parachain/backing"
	"github.com/spacemeshos/go-parachain/common/types"
)

func TestCheckBacked(t *testing.T) {
	core := types.CoreIndex(9)
	for _, tc := range []struct {
		desc      string
		bits      types.BitVec
		votes     int
		core      *types.CoreIndex
		groupSize int
		elastic   bool
		err       error
	}{
		{
			desc:      "valid",
			bits:      types.BitVecFromBools(true, false, true),
			votes:     2,
			groupSize: 3,
		},
		{
			desc:      "valid with core",
			bits:      types.BitVecFromBools(true, false, true),
			votes:     2,
			core:      &core,
			groupSize: 3,
			elastic:   true,
		},
		{
			desc:      "short bitfield",
			bits:      types.BitVecFromBools(true, true),
			votes:     2,
			groupSize: 3,
			err:       backing.ErrBitfieldLength,
		},
		{
			desc:      "core index not expected",
			bits:      types.BitVecFromBools(true, false, true),
			votes:     2,
			core:      &core,
			groupSize: 3,
			err:       backing.ErrBitfieldLength,
		},
		{
			desc:      "core index missing",
			bits:      types.BitVecFromBools(true, false, true),
			votes:     2,
			groupSize: 3,
			elastic:   true,
			err:       backing.ErrBitfieldLength,
		},
		{
			desc:      "too many votes",
			bits:      types.BitVecFromBools(true, false, true),
			votes:     3,
			groupSize: 3,
			err:       backing.ErrVoteCount,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			votes := make([]types.ValidityAttestation, tc.votes)
			for i := range votes {
				votes[i] = vote(i)
			}
			bc := types.NewBackedCandidate(*newReceipt(1), votes, tc.bits, tc.core)
			got, ok, err := backing.CheckBacked(bc, tc.groupSize, tc.elastic)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.core != nil, ok)
			if tc.core != nil {
				require.Equal(t, *tc.core, got)
			}
		})
	}
}
