package types_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/spacemeshos/go-scale/tester"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/types"
)

func TestAvailabilityThreshold(t *testing.T) {
	for _, tc := range []struct{ n, threshold int }{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 4},
		{6, 5},
		{7, 5},
		{10, 7},
		{100, 67},
	} {
		require.Equal(t, tc.threshold, types.AvailabilityThreshold(tc.n), "n=%d", tc.n)
	}
}

func TestOccupiedCoreTransitions(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	next := types.ScheduledCore{ParaID: 9}
	occupied := types.OccupiedCore{
		NextUpOnAvailable: &next,
		OccupiedSince:     10,
		TimeOutAt:         20,
		Availability:      types.NewBitVec(4),
		GroupResponsible:  1,
		Descriptor:        newDescriptor(t, f, 3, 0),
	}
	require.False(t, occupied.IsAvailable())
	for i := range 3 {
		occupied.Availability.Set(i, true)
	}
	require.True(t, occupied.IsAvailable())

	require.False(t, occupied.TimedOut(19))
	require.True(t, occupied.TimedOut(20))

	state := occupied.OnAvailable()
	require.Equal(t, types.CoreScheduled, state.Kind)
	require.Equal(t, &next, state.Scheduled)
	next.ParaID = 10
	require.Equal(t, types.ParaID(9), state.Scheduled.ParaID)

	state = occupied.OnTimeout()
	require.Equal(t, types.FreeCore(), state)
	_, ok := state.ParaID()
	require.False(t, ok)
}

func TestCoreStateEncoding(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	collator := types.CollatorID{1}
	states := []types.CoreState{
		types.FreeCore(),
		{Kind: types.CoreScheduled, Scheduled: &types.ScheduledCore{ParaID: 2, Collator: &collator}},
		{Kind: types.CoreOccupied, Occupied: &types.OccupiedCore{
			NextUpOnTimeOut: &types.ScheduledCore{ParaID: 4},
			TimeOutAt:       7,
			Availability:    types.BitVecFromBools(true, false),
			Descriptor:      newDescriptor(t, f, 4, 1),
		}},
	}
	for i, state := range states {
		buf := mustEncode(t, &state)
		require.Equal(t, []byte{2, 1, 0}[i], buf[0])

		var decoded types.CoreState
		require.NoError(t, codec.DecodeExact(buf, &decoded))
		require.Equal(t, state, decoded)
	}
	require.Equal(t, []byte{1, 2, 0, 0, 0, 0}, mustEncode(t, &types.CoreState{
		Kind:      types.CoreScheduled,
		Scheduled: &types.ScheduledCore{ParaID: 2},
	}))

	var decoded types.CoreState
	require.Error(t, codec.Decode([]byte{3}, &decoded))
	_, err := codec.Encode(&types.CoreState{Kind: types.CoreOccupied})
	require.Error(t, err)
}

func TestCoreStateZeroValue(t *testing.T) {
	var state types.CoreState
	require.Equal(t, types.FreeCore(), state)
	require.False(t, state.IsOccupied())
	_, ok := state.ParaID()
	require.False(t, ok)
	require.Equal(t, []byte{2}, mustEncode(t, &state))

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, state.MarshalLogObject(enc))
	require.Equal(t, "free", enc.Fields["kind"])

	for _, kind := range []types.CoreStateKind{types.CoreOccupied, types.CoreScheduled} {
		partial := types.CoreState{Kind: kind}
		_, ok := partial.ParaID()
		require.False(t, ok)
		require.NotPanics(t, func() {
			require.NoError(t, partial.MarshalLogObject(zapcore.NewMapObjectEncoder()))
		})
	}
}

func TestCandidateEventEncoding(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	receipt := types.CandidateReceipt{Descriptor: newDescriptor(t, f, 1, 2)}
	backed := types.CandidateEvent{
		Kind:     types.CandidateBacked,
		Receipt:  receipt,
		HeadData: types.HeadData{1},
		Core:     2,
		Group:    3,
	}
	timedOut := backed
	timedOut.Kind = types.CandidateTimedOut
	timedOut.Group = 0

	backedBuf := mustEncode(t, &backed)
	timedOutBuf := mustEncode(t, &timedOut)
	require.Equal(t, byte(0), backedBuf[0])
	require.Equal(t, byte(2), timedOutBuf[0])
	require.Len(t, timedOutBuf, len(backedBuf)-4)

	for _, ev := range []types.CandidateEvent{backed, timedOut} {
		var decoded types.CandidateEvent
		require.NoError(t, codec.DecodeExact(mustEncode(t, &ev), &decoded))
		require.Equal(t, ev, decoded)
	}
}

func FuzzCoreStateSafety(f *testing.F) {
	tester.FuzzSafety[types.CoreState](f)
}

func FuzzCandidateEventSafety(f *testing.F) {
	tester.FuzzSafety[types.CandidateEvent](f)
}
