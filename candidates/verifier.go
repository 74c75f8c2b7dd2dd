package candidates

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-parachain/common/types"
	"github.com/spacemeshos/go-parachain/log"
)

// Config for the Verifier.
type Config struct {
	// ClaimQueueDepth is the number of claim queue entries a candidate may commit to.
	// Offsets at or beyond it are rejected.
	ClaimQueueDepth uint8 `mapstructure:"claim-queue-depth"`
	// CacheSize is the number of verdicts kept by candidate hash.
	CacheSize int `mapstructure:"cache-size"`
	// Workers limits the number of candidates verified concurrently by VerifyBatch.
	Workers int `mapstructure:"workers"`
}

// DefaultConfig derives the claim queue depth from the default scheduler parameters.
func DefaultConfig() Config {
	scheduler := types.DefaultSchedulerParams()
	return Config{
		ClaimQueueDepth: scheduler.ClaimQueueDepth(),
		CacheSize:       1024,
		Workers:         8,
	}
}

type Opt func(*Verifier)

func WithLogger(logger *zap.Logger) Opt {
	return func(v *Verifier) {
		v.logger = logger
	}
}

func WithConfig(cfg Config) Opt {
	return func(v *Verifier) {
		v.cfg = cfg
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(v *Verifier) {
		v.clock = clock
	}
}

// Verifier checks that candidates are backed on the cores they committed to, resolving
// the assigned cores from a claim queue. Verdicts that don't depend on the claim queue
// being reachable are cached by candidate hash.
//
// Verifier is safe for concurrent use.
type Verifier struct {
	logger *zap.Logger
	cfg    Config
	clock  clockwork.Clock
	queue  ClaimQueue
	cache  *lru.Cache[types.CandidateHash, error]
}

// NewVerifier creates a Verifier backed by the claim queue.
func NewVerifier(queue ClaimQueue, opts ...Opt) (*Verifier, error) {
	v := &Verifier{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
		clock:  clockwork.NewRealClock(),
		queue:  queue,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.cfg.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", v.cfg.Workers)
	}
	cache, err := lru.New[types.CandidateHash, error](v.cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create verdict cache: %w", err)
	}
	v.cache = cache
	return v, nil
}

// Verify checks the core assignment of a single candidate.
//
// Claim queue failures are returned wrapped in ErrClaimQueue and are not cached.
func (v *Verifier) Verify(ctx context.Context, receipt *types.CommittedCandidateReceipt) error {
	start := v.clock.Now()
	defer func() { verifyLatency.Observe(v.clock.Since(start).Seconds()) }()

	hash := receipt.Hash()
	if verdict, ok := v.cache.Get(hash); ok {
		cacheHit.Inc()
		return verdict
	}
	cacheMiss.Inc()

	verdict := v.verify(ctx, receipt)
	if errors.Is(verdict, ErrClaimQueue) {
		claimQueueErrors.Inc()
		v.logger.Warn("claim queue lookup failed",
			log.ZContext(ctx),
			zap.Stringer("candidate_hash", hash),
			zap.Error(verdict),
		)
		return verdict
	}
	countVerdict(receipt, verdict)
	if verdict != nil {
		v.logger.Debug("candidate rejected",
			log.ZContext(ctx),
			zap.Stringer("candidate_hash", hash),
			zap.Object("descriptor", &receipt.Descriptor),
			zap.Error(verdict),
		)
	}
	v.cache.Add(hash, verdict)
	return verdict
}

func (v *Verifier) verify(ctx context.Context, receipt *types.CommittedCandidateReceipt) error {
	descriptor := &receipt.Descriptor
	if descriptor.Version() == types.DescriptorV1 {
		return nil
	}
	offset := types.DefaultClaimQueueOffset
	if _, committed, ok := receipt.Commitments.SelectedCore(); ok {
		offset = committed
	}
	if uint8(offset) >= v.cfg.ClaimQueueDepth {
		return fmt.Errorf("%w: claim queue offset %d, depth %d",
			ErrInvalidSelectedCore, offset, v.cfg.ClaimQueueDepth)
	}
	assigned, err := v.queue.AssignedCores(ctx, descriptor.RelayParent(), descriptor.ParaID(), offset)
	if err != nil {
		return fmt.Errorf("%w: para %d at %s: %w",
			ErrClaimQueue, descriptor.ParaID(), descriptor.RelayParent().ShortString(), err)
	}
	return CheckCoreIndex(receipt, assigned)
}

func countVerdict(receipt *types.CommittedCandidateReceipt, verdict error) {
	switch {
	case verdict == nil && receipt.Descriptor.Version() == types.DescriptorV1:
		legacyVerdict.Inc()
	case verdict == nil:
		acceptedVerdict.Inc()
	case errors.Is(verdict, ErrNoAssignment):
		noAssignmentVerdict.Inc()
	case errors.Is(verdict, ErrNoCoreSelected):
		noCoreSelectedVerdict.Inc()
	case errors.Is(verdict, ErrInvalidCoreIndex):
		invalidCoreIndexVerdict.Inc()
	case errors.Is(verdict, ErrCoreIndexMismatch):
		mismatchVerdict.Inc()
	case errors.Is(verdict, ErrInvalidSelectedCore):
		invalidSelectedVerdict.Inc()
	}
}

// VerifyBatch verifies receipts concurrently and returns the result of each receipt at
// the same position.
func (v *Verifier) VerifyBatch(ctx context.Context, receipts []*types.CommittedCandidateReceipt) []error {
	results := make([]error, len(receipts))
	var eg errgroup.Group
	eg.SetLimit(v.cfg.Workers)
	for i, receipt := range receipts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return nil
			}
			results[i] = v.Verify(ctx, receipt)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
