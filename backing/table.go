// Package backing collects validity attestations of a backing group and builds backed
// candidates out of them.
package backing

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-parachain/common/types"
)

var (
	// ErrDuplicateVote is returned when a group member votes twice for the same candidate.
	ErrDuplicateVote = errors.New("duplicate vote")
	// ErrNotInGroup is returned for votes from a position outside of the backing group.
	ErrNotInGroup = errors.New("validator not in backing group")
	// ErrUnknownCandidate is returned for candidates that have no votes in the table.
	ErrUnknownCandidate = errors.New("unknown candidate")
	// ErrNotBackable is returned when a candidate doesn't have enough votes to be backed.
	ErrNotBackable = errors.New("candidate not backable")
)

// Config for the Table.
type Config struct {
	// MinBackingVotes is the number of votes needed to back a candidate. Groups smaller
	// than that need votes from every member.
	MinBackingVotes int `mapstructure:"min-backing-votes"`
	// ElasticScaling appends the core index to the validator bitfield of backed candidates.
	ElasticScaling bool `mapstructure:"elastic-scaling"`
}

func DefaultConfig() Config {
	return Config{
		MinBackingVotes: 2,
	}
}

type Opt func(*Table)

func WithLogger(logger *zap.Logger) Opt {
	return func(t *Table) {
		t.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(t *Table) {
		t.cfg = cfg
	}
}

type entry struct {
	receipt types.CommittedCandidateReceipt
	// votes by position in the backing group
	votes map[int]types.ValidityAttestation
}

// Table accumulates votes of a single backing group.
//
// Table is safe for concurrent use.
type Table struct {
	logger    *zap.Logger
	cfg       Config
	groupSize int

	mu         sync.Mutex
	candidates map[types.CandidateHash]*entry
}

// New creates a table for a backing group of groupSize validators.
func New(groupSize int, opts ...Opt) *Table {
	t := &Table{
		logger:     zap.NewNop(),
		cfg:        DefaultConfig(),
		groupSize:  groupSize,
		candidates: map[types.CandidateHash]*entry{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) threshold() int {
	return min(t.cfg.MinBackingVotes, t.groupSize)
}

// Import records the vote of the validator at groupPos for the receipt.
func (t *Table) Import(
	receipt *types.CommittedCandidateReceipt,
	groupPos int,
	vote types.ValidityAttestation,
) error {
	if groupPos < 0 || groupPos >= t.groupSize {
		notInGroupVotes.Inc()
		return fmt.Errorf("%w: position %d, group size %d", ErrNotInGroup, groupPos, t.groupSize)
	}
	hash := receipt.Hash()

	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.candidates[hash]
	if !ok {
		e = &entry{receipt: *receipt, votes: map[int]types.ValidityAttestation{}}
		t.candidates[hash] = e
		trackedCandidates.Inc()
	}
	if _, ok := e.votes[groupPos]; ok {
		duplicateVotes.Inc()
		return fmt.Errorf("%w: position %d for %s", ErrDuplicateVote, groupPos, hash.ShortString())
	}
	e.votes[groupPos] = vote
	importedVotes.Inc()
	if len(e.votes) == t.threshold() {
		t.logger.Debug("candidate backable",
			zap.Stringer("candidate_hash", hash),
			zap.Uint32("para_id", uint32(receipt.Descriptor.ParaID())),
			zap.Int("votes", len(e.votes)),
		)
	}
	return nil
}

// Backable reports whether the candidate has enough votes to be backed.
func (t *Table) Backable(hash types.CandidateHash) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.candidates[hash]
	return ok && t.backable(e)
}

func (t *Table) backable(e *entry) bool {
	return t.threshold() > 0 && len(e.votes) >= t.threshold()
}

// Attested builds the backed candidate for the hash. The votes are ordered by group
// position. With elastic scaling the core index is appended to the validator bitfield.
func (t *Table) Attested(hash types.CandidateHash, core types.CoreIndex) (*types.BackedCandidate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.candidates[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCandidate, hash.ShortString())
	}
	if !t.backable(e) {
		return nil, fmt.Errorf("%w: %d of %d votes", ErrNotBackable, len(e.votes), t.threshold())
	}

	positions := make([]int, 0, len(e.votes))
	for pos := range e.votes {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	bits := types.NewBitVec(t.groupSize)
	votes := make([]types.ValidityAttestation, 0, len(positions))
	for _, pos := range positions {
		bits.Set(pos, true)
		votes = append(votes, e.votes[pos])
	}

	var coreIndex *types.CoreIndex
	if t.cfg.ElasticScaling {
		coreIndex = &core
	}
	backedCandidates.Inc()
	return types.NewBackedCandidate(e.receipt, votes, bits, coreIndex), nil
}

// Drop forgets the candidate and its votes.
func (t *Table) Drop(hash types.CandidateHash) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.candidates[hash]; ok {
		delete(t.candidates, hash)
		trackedCandidates.Dec()
	}
}

// Candidates returns the hashes of candidates with at least one vote, in ascending order.
func (t *Table) Candidates() []types.CandidateHash {
	t.mu.Lock()
	defer t.mu.Unlock()
	hashes := make([]types.CandidateHash, 0, len(t.candidates))
	for hash := range t.candidates {
		hashes = append(hashes, hash)
	}
	slices.SortFunc(hashes, func(a, b types.CandidateHash) int {
		return bytes.Compare(a[:], b[:])
	})
	return hashes
}
