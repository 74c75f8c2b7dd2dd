package candidates_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-parachain/candidates"
	"github.com/spacemeshos/go-parachain/common/types"
)

func newReceipt(para types.ParaID, core types.CoreIndex, signal *types.UMPSignal) *types.CommittedCandidateReceipt {
	receipt := &types.CommittedCandidateReceipt{
		Descriptor: types.NewCandidateDescriptor(
			para,
			types.Hash32{1},
			core,
			1,
			types.Hash32{2},
			types.Hash32{3},
			types.Hash32{4},
			types.Hash32{5},
			types.ValidationCodeHash{6},
		),
		Commitments: types.CandidateCommitments{
			UpwardMessages: [][]byte{{0xaa}},
			HeadData:       types.HeadData{byte(para), byte(core)},
		},
	}
	if signal != nil {
		receipt.Commitments.AppendSignal(*signal)
	}
	return receipt
}

func legacyReceipt(para types.ParaID) *types.CommittedCandidateReceipt {
	legacy := types.CandidateDescriptorV1{
		ParaID:    para,
		Collator:  types.CollatorID{0xc0},
		Signature: types.CollatorSignature{0x51},
	}
	return &types.CommittedCandidateReceipt{
		Descriptor:  legacy.ToV2(),
		Commitments: types.CandidateCommitments{HeadData: types.HeadData{1}},
	}
}

func selectCore(selector types.CoreSelector, offset types.ClaimQueueOffset) *types.UMPSignal {
	signal := types.SelectCore(selector, offset)
	return &signal
}

func TestCheckCoreIndex(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		receipt  *types.CommittedCandidateReceipt
		assigned []types.CoreIndex
		err      error
	}{
		{
			desc:     "single core",
			receipt:  newReceipt(1, 7, selectCore(0, 0)),
			assigned: []types.CoreIndex{7},
		},
		{
			desc:     "mismatch",
			receipt:  newReceipt(1, 8, selectCore(0, 0)),
			assigned: []types.CoreIndex{7},
			err:      candidates.ErrCoreIndexMismatch,
		},
		{
			desc:     "selector wraps around",
			receipt:  newReceipt(1, 4, selectCore(5, 0)),
			assigned: []types.CoreIndex{2, 3, 4},
		},
		{
			desc:     "selector wraps to other core",
			receipt:  newReceipt(1, 4, selectCore(6, 0)),
			assigned: []types.CoreIndex{2, 3, 4},
			err:      candidates.ErrCoreIndexMismatch,
		},
		{
			desc:     "no assignment",
			receipt:  newReceipt(1, 7, selectCore(0, 0)),
			assigned: nil,
			err:      candidates.ErrNoAssignment,
		},
		{
			desc:     "no assignment takes precedence over missing signal",
			receipt:  newReceipt(1, 7, nil),
			assigned: nil,
			err:      candidates.ErrNoAssignment,
		},
		{
			desc:     "no signal",
			receipt:  newReceipt(1, 7, nil),
			assigned: []types.CoreIndex{7},
			err:      candidates.ErrNoCoreSelected,
		},
		{
			desc:     "legacy without signal",
			receipt:  legacyReceipt(1),
			assigned: []types.CoreIndex{7},
		},
		{
			desc:     "legacy without assignment",
			receipt:  legacyReceipt(1),
			assigned: nil,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			err := candidates.CheckCoreIndex(tc.receipt, tc.assigned)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestCheckCoreIndexGarbageSignal(t *testing.T) {
	receipt := newReceipt(1, 7, nil)
	receipt.Commitments.UpwardMessages = append(receipt.Commitments.UpwardMessages,
		types.UMPSeparator, []byte{9, 9, 9})
	require.ErrorIs(t,
		candidates.CheckCoreIndex(receipt, []types.CoreIndex{7}),
		candidates.ErrNoCoreSelected,
	)
}
