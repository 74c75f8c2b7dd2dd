package types

import (
	"errors"
	"math"
)

// SchedulerParams are the scheduling parameters of the relay chain that candidate
// checks depend on. On-demand pricing parameters are not carried.
type SchedulerParams struct {
	// How often backing groups are rotated across cores, in blocks. Must be non-zero.
	GroupRotationFrequency BlockNumber `mapstructure:"group-rotation-frequency"`
	// Blocks a candidate occupying a core has to become available at a group rotation
	// boundary. Must be at least 1.
	ParasAvailabilityPeriod BlockNumber `mapstructure:"paras-availability-period"`
	// Maximum number of validators per core, nil for no maximum.
	MaxValidatorsPerCore *uint32 `mapstructure:"max-validators-per-core"`
	// Number of blocks ahead paras are scheduled, which is the depth of the claim queue.
	Lookahead uint32 `mapstructure:"lookahead"`
	// Number of cores managed by the coretime chain.
	NumCores uint32 `mapstructure:"num-cores"`
	// Number of times a claim may time out in availability.
	MaxAvailabilityTimeouts uint32 `mapstructure:"max-availability-timeouts"`
	// Blocks a claim stays in the claim queue before it is cleared.
	TTL BlockNumber `mapstructure:"ttl"`
}

// DefaultSchedulerParams returns the parameters of an asynchronous backing relay chain.
func DefaultSchedulerParams() SchedulerParams {
	return SchedulerParams{
		GroupRotationFrequency:  1,
		ParasAvailabilityPeriod: 1,
		Lookahead:               3,
		TTL:                     5,
	}
}

// Validate checks the constraints between the parameters.
func (p *SchedulerParams) Validate() error {
	if p.GroupRotationFrequency == 0 {
		return errors.New("group rotation frequency must be non-zero")
	}
	if p.ParasAvailabilityPeriod == 0 {
		return errors.New("paras availability period must be at least 1")
	}
	if p.Lookahead == 0 {
		return errors.New("lookahead must be non-zero")
	}
	if p.MaxValidatorsPerCore != nil && *p.MaxValidatorsPerCore == 0 {
		return errors.New("max validators per core must be non-zero if set")
	}
	return nil
}

// ClaimQueueDepth returns the number of claim queue entries, capped to the range of a
// claim queue offset.
func (p *SchedulerParams) ClaimQueueDepth() uint8 {
	return uint8(min(p.Lookahead, math.MaxUint8))
}

// AvailabilityTimeout returns the block at which a candidate that occupied a core at
// since times out.
func (p *SchedulerParams) AvailabilityTimeout(since BlockNumber) BlockNumber {
	return since + p.ParasAvailabilityPeriod
}
