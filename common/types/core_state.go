package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-parachain/codec"
)

// ScheduledCore is a para scheduled on a core.
type ScheduledCore struct {
	ParaID ParaID
	// Collator is always nil on current relay chains and kept for wire compatibility.
	Collator *CollatorID
}

// EncodeScale implements scale codec interface.
func (s *ScheduledCore) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := s.ParaID.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := codec.EncodeOption(e, s.Collator)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (s *ScheduledCore) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := s.ParaID.DecodeScale(d)
	if err != nil {
		return total, err
	}
	collator, n, err := codec.DecodeOption[CollatorID](d)
	s.Collator = collator
	return total + n, err
}

// AvailabilityThreshold returns the number of availability votes needed among n
// validators: a strict supermajority of more than 2/3.
func AvailabilityThreshold(n int) int {
	if n <= 0 {
		return 0
	}
	return n - (n-1)/3
}

// OccupiedCore is a core occupied by a candidate pending availability.
type OccupiedCore struct {
	// Para to schedule once the candidate becomes available, if any.
	NextUpOnAvailable *ScheduledCore
	// Relay block number at which the core got occupied.
	OccupiedSince BlockNumber
	// Relay block number at which the candidate times out.
	TimeOutAt BlockNumber
	// Para to schedule if the candidate times out, if any.
	NextUpOnTimeOut *ScheduledCore
	// One bit per validator, set when the validator has its chunk.
	Availability     BitVec
	GroupResponsible GroupIndex
	CandidateHash    CandidateHash
	Descriptor       CandidateDescriptor
}

// IsAvailable reports whether a supermajority of validators has the candidate's chunks.
func (o *OccupiedCore) IsAvailable() bool {
	n := o.Availability.Len()
	return n > 0 && o.Availability.CountOnes() >= AvailabilityThreshold(n)
}

// TimedOut reports whether the candidate has timed out at relay block now.
func (o *OccupiedCore) TimedOut(now BlockNumber) bool {
	return now >= o.TimeOutAt
}

// OnAvailable returns the state of the core once the candidate is available.
func (o *OccupiedCore) OnAvailable() CoreState {
	return nextUp(o.NextUpOnAvailable)
}

// OnTimeout returns the state of the core once the candidate times out.
func (o *OccupiedCore) OnTimeout() CoreState {
	return nextUp(o.NextUpOnTimeOut)
}

func nextUp(next *ScheduledCore) CoreState {
	if next == nil {
		return FreeCore()
	}
	scheduled := *next
	return CoreState{Kind: CoreScheduled, Scheduled: &scheduled}
}

// EncodeScale implements scale codec interface.
func (o *OccupiedCore) EncodeScale(e *scale.Encoder) (int, error) {
	var total int
	{
		n, err := codec.EncodeOption(e, o.NextUpOnAvailable)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.OccupiedSince.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.TimeOutAt.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := codec.EncodeOption(e, o.NextUpOnTimeOut)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.Availability.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.GroupResponsible.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.CandidateHash.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.Descriptor.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (o *OccupiedCore) DecodeScale(d *scale.Decoder) (int, error) {
	var total int
	{
		field, n, err := codec.DecodeOption[ScheduledCore](d)
		if err != nil {
			return total, err
		}
		total += n
		o.NextUpOnAvailable = field
	}
	{
		n, err := o.OccupiedSince.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.TimeOutAt.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := codec.DecodeOption[ScheduledCore](d)
		if err != nil {
			return total, err
		}
		total += n
		o.NextUpOnTimeOut = field
	}
	{
		n, err := o.Availability.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.GroupResponsible.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.CandidateHash.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := o.Descriptor.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// CoreStateKind is the variant of a CoreState. The zero value is a free core.
type CoreStateKind uint8

const (
	CoreFree CoreStateKind = iota
	CoreScheduled
	CoreOccupied
)

// scale enum indices of the core state variants.
const (
	occupiedIndex byte = iota
	scheduledIndex
	freeIndex
)

func (k CoreStateKind) String() string {
	switch k {
	case CoreOccupied:
		return "occupied"
	case CoreScheduled:
		return "scheduled"
	case CoreFree:
		return "free"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// CoreState is the state of an availability core. Exactly one of Occupied and
// Scheduled is set, matching Kind, or neither for a free core.
type CoreState struct {
	Kind      CoreStateKind
	Occupied  *OccupiedCore
	Scheduled *ScheduledCore
}

// FreeCore returns the state of an unassigned core. It is the zero value.
func FreeCore() CoreState { return CoreState{Kind: CoreFree} }

// ParaID returns the para occupying or scheduled on the core.
func (c *CoreState) ParaID() (ParaID, bool) {
	switch {
	case c.Kind == CoreOccupied && c.Occupied != nil:
		return c.Occupied.Descriptor.ParaID(), true
	case c.Kind == CoreScheduled && c.Scheduled != nil:
		return c.Scheduled.ParaID, true
	}
	return 0, false
}

// IsOccupied reports whether a candidate is pending availability on the core.
func (c *CoreState) IsOccupied() bool { return c.Kind == CoreOccupied }

// EncodeScale implements scale codec interface.
func (c *CoreState) EncodeScale(e *scale.Encoder) (int, error) {
	switch c.Kind {
	case CoreOccupied:
		if c.Occupied == nil {
			return 0, fmt.Errorf("encode core state: occupied core is nil")
		}
		total, err := scale.EncodeByte(e, occupiedIndex)
		if err != nil {
			return total, err
		}
		n, err := c.Occupied.EncodeScale(e)
		return total + n, err
	case CoreScheduled:
		if c.Scheduled == nil {
			return 0, fmt.Errorf("encode core state: scheduled core is nil")
		}
		total, err := scale.EncodeByte(e, scheduledIndex)
		if err != nil {
			return total, err
		}
		n, err := c.Scheduled.EncodeScale(e)
		return total + n, err
	case CoreFree:
		return scale.EncodeByte(e, freeIndex)
	default:
		return 0, fmt.Errorf("encode core state: unknown kind %d", c.Kind)
	}
}

// DecodeScale implements scale codec interface.
func (c *CoreState) DecodeScale(d *scale.Decoder) (int, error) {
	kind, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	var n int
	switch kind {
	case occupiedIndex:
		*c = CoreState{Kind: CoreOccupied, Occupied: &OccupiedCore{}}
		n, err = c.Occupied.DecodeScale(d)
	case scheduledIndex:
		*c = CoreState{Kind: CoreScheduled, Scheduled: &ScheduledCore{}}
		n, err = c.Scheduled.DecodeScale(d)
	case freeIndex:
		*c = FreeCore()
	default:
		return total, fmt.Errorf("decode core state: unknown kind %d", kind)
	}
	return total + n, err
}

// MarshalLogObject implements logging interface.
func (c *CoreState) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("kind", c.Kind.String())
	if id, ok := c.ParaID(); ok {
		encoder.AddUint32("para_id", uint32(id))
	}
	if c.Occupied != nil {
		encoder.AddString("candidate_hash", c.Occupied.CandidateHash.ShortString())
		encoder.AddUint32("time_out_at", uint32(c.Occupied.TimeOutAt))
	}
	return nil
}
