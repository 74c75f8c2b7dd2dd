package backing_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-parachain/backing"
	"github.com/spacemeshos/go-parachain/common/types"
	"github.com/spacemeshos/go-parachain/log/logtest"
)

func newReceipt(para types.ParaID) *types.CommittedCandidateReceipt {
	return &types.CommittedCandidateReceipt{
		Descriptor: types.NewCandidateDescriptor(
			para, types.Hash32{1}, 0, 1,
			types.Hash32{2}, types.Hash32{3}, types.Hash32{4}, types.Hash32{5},
			types.ValidationCodeHash{6},
		),
		Commitments: types.CandidateCommitments{HeadData: types.HeadData{byte(para)}},
	}
}

func vote(pos int) types.ValidityAttestation {
	return types.Explicit(types.ValidatorSignature{byte(pos)})
}

func newTable(tb testing.TB, groupSize int, cfg backing.Config) *backing.Table {
	return backing.New(groupSize, backing.WithConfig(cfg), backing.WithLogger(logtest.New(tb)))
}

func TestTableBacking(t *testing.T) {
	table := newTable(t, 5, backing.DefaultConfig())
	receipt := newReceipt(1)
	hash := receipt.Hash()

	require.False(t, table.Backable(hash))
	_, err := table.Attested(hash, 0)
	require.ErrorIs(t, err, backing.ErrUnknownCandidate)

	require.NoError(t, table.Import(receipt, 3, vote(3)))
	require.False(t, table.Backable(hash))
	_, err = table.Attested(hash, 0)
	require.ErrorIs(t, err, backing.ErrNotBackable)

	require.NoError(t, table.Import(receipt, 1, vote(1)))
	require.True(t, table.Backable(hash))

	bc, err := table.Attested(hash, 4)
	require.NoError(t, err)
	require.Equal(t, hash, bc.Hash())
	require.Equal(t, []types.ValidityAttestation{vote(1), vote(3)}, bc.ValidityVotes())
	indices, _, ok := bc.ValidatorIndicesAndCoreIndex(false)
	require.False(t, ok)
	require.Equal(t, "01010", indices.String())

	core, ok, err := backing.CheckBacked(bc, 5, false)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, core)
}

func TestTableElasticScaling(t *testing.T) {
	cfg := backing.DefaultConfig()
	cfg.ElasticScaling = true
	table := newTable(t, 3, cfg)
	receipt := newReceipt(2)
	for pos := range 3 {
		require.NoError(t, table.Import(receipt, pos, vote(pos)))
	}

	bc, err := table.Attested(receipt.Hash(), 5)
	require.NoError(t, err)
	require.Equal(t, 11, bc.ValidatorIndices().Len())

	core, ok, err := backing.CheckBacked(bc, 3, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, types.CoreIndex(5), core)

	_, _, err = backing.CheckBacked(bc, 3, false)
	require.ErrorIs(t, err, backing.ErrBitfieldLength)
}

func TestTableRejectsVotes(t *testing.T) {
	table := newTable(t, 2, backing.DefaultConfig())
	receipt := newReceipt(1)

	require.ErrorIs(t, table.Import(receipt, 2, vote(2)), backing.ErrNotInGroup)
	require.ErrorIs(t, table.Import(receipt, -1, vote(0)), backing.ErrNotInGroup)
	require.Empty(t, table.Candidates())

	require.NoError(t, table.Import(receipt, 0, vote(0)))
	require.ErrorIs(t, table.Import(receipt, 0, vote(0)), backing.ErrDuplicateVote)
	require.False(t, table.Backable(receipt.Hash()))
}

func TestTableThresholdCappedAtGroupSize(t *testing.T) {
	cfg := backing.DefaultConfig()
	cfg.MinBackingVotes = 3
	table := newTable(t, 1, cfg)
	receipt := newReceipt(1)
	require.NoError(t, table.Import(receipt, 0, vote(0)))
	require.True(t, table.Backable(receipt.Hash()))

	empty := newTable(t, 0, cfg)
	require.ErrorIs(t, empty.Import(receipt, 0, vote(0)), backing.ErrNotInGroup)
	require.False(t, empty.Backable(receipt.Hash()))
}

func TestTableImportOversizedCommitments(t *testing.T) {
	table := newTable(t, 3, backing.DefaultConfig())
	receipt := newReceipt(1)
	receipt.Commitments.UpwardMessages = make([][]byte, types.MaxUpwardMessageNum+1)

	require.NoError(t, table.Import(receipt, 0, vote(0)))
	require.NoError(t, table.Import(receipt, 1, vote(1)))
	require.True(t, table.Backable(receipt.Hash()))
}

func TestTableDrop(t *testing.T) {
	table := newTable(t, 3, backing.DefaultConfig())
	first, second := newReceipt(1), newReceipt(2)
	require.NoError(t, table.Import(first, 0, vote(0)))
	require.NoError(t, table.Import(second, 0, vote(0)))
	require.Len(t, table.Candidates(), 2)

	table.Drop(first.Hash())
	require.Equal(t, []types.CandidateHash{second.Hash()}, table.Candidates())
	_, err := table.Attested(first.Hash(), 0)
	require.ErrorIs(t, err, backing.ErrUnknownCandidate)
}

func TestTableConcurrentImport(t *testing.T) {
	const size = 50
	table := newTable(t, size, backing.DefaultConfig())
	receipt := newReceipt(1)

	var wg sync.WaitGroup
	for pos := range size {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, table.Import(receipt, pos, vote(pos)))
		}()
	}
	wg.Wait()

	bc, err := table.Attested(receipt.Hash(), 0)
	require.NoError(t, err)
	require.Len(t, bc.ValidityVotes(), size)
	require.Equal(t, size, bc.ValidatorIndices().CountOnes())
}
