package types_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/types"
)

func randomHash(tb testing.TB, f *fuzz.Fuzzer) types.Hash32 {
	tb.Helper()
	var h types.Hash32
	f.Fuzz(&h)
	return h
}

func newDescriptor(tb testing.TB, f *fuzz.Fuzzer, para types.ParaID, core types.CoreIndex) types.CandidateDescriptor {
	tb.Helper()
	return types.NewCandidateDescriptor(
		para,
		randomHash(tb, f),
		core,
		11,
		randomHash(tb, f),
		randomHash(tb, f),
		randomHash(tb, f),
		randomHash(tb, f),
		types.ValidationCodeHash(randomHash(tb, f)),
	)
}

func legacyDescriptor(tb testing.TB, f *fuzz.Fuzzer) types.CandidateDescriptorV1 {
	tb.Helper()
	var d types.CandidateDescriptorV1
	f.Fuzz(&d)
	// a non-zero signature keeps it distinguishable from the current layout
	d.Signature[0] |= 1
	return d
}

func commitmentsWithSignal(head []byte, signal *types.UMPSignal) types.CandidateCommitments {
	c := types.CandidateCommitments{
		UpwardMessages:            [][]byte{{1, 2, 3}, {4}},
		HeadData:                  head,
		ProcessedDownwardMessages: 2,
		HrmpWatermark:             100,
	}
	if signal != nil {
		c.AppendSignal(*signal)
	}
	return c
}

func mustEncode(tb testing.TB, value codec.Encodable) []byte {
	tb.Helper()
	buf, err := codec.Encode(value)
	require.NoError(tb, err)
	return buf
}
