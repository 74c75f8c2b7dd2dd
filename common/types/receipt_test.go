package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/types"
)

func TestReceiptEncodedSizeMatchesLegacy(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	signal := types.SelectCore(1, 1)
	receipt := types.CommittedCandidateReceipt{
		Descriptor:  newDescriptor(t, f, 100, 1),
		Commitments: commitmentsWithSignal([]byte{1, 2, 3}, &signal),
	}
	legacy := receipt.ToV1()

	size, err := codec.EncodedSize(&receipt)
	require.NoError(t, err)
	legacySize, err := codec.EncodedSize(&legacy)
	require.NoError(t, err)
	require.Equal(t, legacySize, size)

	plain := receipt.ToPlain()
	legacyPlain := legacy.ToPlain()
	size, err = codec.EncodedSize(&plain)
	require.NoError(t, err)
	legacySize, err = codec.EncodedSize(&legacyPlain)
	require.NoError(t, err)
	require.Equal(t, legacySize, size)
}

func TestReceiptHashStableAcrossVersions(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	for range 50 {
		legacy := types.CommittedCandidateReceiptV1{
			Descriptor:  legacyDescriptor(t, f),
			Commitments: commitmentsWithSignal([]byte{9}, nil),
		}
		raw := mustEncode(t, &legacy)

		var decodedLegacy types.CommittedCandidateReceiptV1
		require.NoError(t, codec.DecodeExact(raw, &decodedLegacy))
		var decoded types.CommittedCandidateReceipt
		require.NoError(t, codec.DecodeExact(raw, &decoded))

		require.Equal(t, types.DescriptorV1, decoded.Descriptor.Version())
		require.Equal(t, decodedLegacy.Hash(), decoded.Hash())
		require.Equal(t, raw, mustEncode(t, &decoded))
		if diff := cmp.Diff(legacy.Commitments, decoded.Commitments, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("commitments mismatch (-want +got):\n%s", diff)
		}

		plain := decoded.ToPlain()
		legacyPlain := decodedLegacy.ToPlain()
		require.Equal(t, legacyPlain.Hash(), plain.Hash())
	}
}

func TestReceiptHashIsPlainHash(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	receipt := types.CommittedCandidateReceipt{
		Descriptor:  newDescriptor(t, f, 1, 0),
		Commitments: commitmentsWithSignal([]byte{1}, nil),
	}
	plain := receipt.ToPlain()
	require.Equal(t, plain.Hash(), receipt.Hash())
	require.Equal(t, types.CandidateHash(types.CalcHash32(mustEncode(t, &plain))), receipt.Hash())
	require.NotEqual(t, types.CandidateHash(types.CalcHash32(mustEncode(t, &receipt))), receipt.Hash())
	require.True(t, receipt.CorrespondsTo(&plain))

	other := receipt
	other.Commitments.HrmpWatermark++
	require.False(t, other.CorrespondsTo(&plain))
	require.NotEqual(t, receipt.Hash(), other.Hash())
}

func TestReceiptOrdering(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	mk := func(para types.ParaID, head []byte) types.CommittedCandidateReceipt {
		return types.CommittedCandidateReceipt{
			Descriptor:  newDescriptor(t, f, para, 0),
			Commitments: types.CandidateCommitments{HeadData: head},
		}
	}
	receipts := []types.CommittedCandidateReceipt{
		mk(3, []byte{1}),
		mk(1, []byte{2}),
		mk(2, []byte{0}),
		mk(1, []byte{1, 5}),
	}
	types.SortCommittedReceipts(receipts)

	var got []types.ParaID
	for _, r := range receipts {
		got = append(got, r.Descriptor.ParaID())
	}
	require.Equal(t, []types.ParaID{1, 1, 2, 3}, got)
	require.Equal(t, types.HeadData{1, 5}, receipts[0].Commitments.HeadData)
	require.Equal(t, types.HeadData{2}, receipts[1].Commitments.HeadData)
	require.Zero(t, receipts[0].Compare(&receipts[0]))
}

func TestCommittedReceiptRoundTrip(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	signal := types.SelectCore(7, 0)
	receipt := types.CommittedCandidateReceipt{
		Descriptor:  newDescriptor(t, f, 4, 2),
		Commitments: commitmentsWithSignal([]byte{5, 5}, &signal),
	}
	receipt.Commitments.NewValidationCode = types.ValidationCode{0xde, 0xad}
	receipt.Commitments.HorizontalMessages = []types.OutboundHrmpMessage{{Recipient: 9, Data: []byte{1}}}

	var decoded types.CommittedCandidateReceipt
	require.NoError(t, codec.DecodeExact(mustEncode(t, &receipt), &decoded))
	require.Equal(t, receipt.Descriptor, decoded.Descriptor)
	if diff := cmp.Diff(receipt.Commitments, decoded.Commitments, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("commitments mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, receipt.Hash(), decoded.Hash())
}
