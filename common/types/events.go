package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// CandidateEventKind is the variant of a CandidateEvent.
type CandidateEventKind uint8

const (
	// CandidateBacked is emitted when a candidate is backed and pending availability.
	CandidateBacked CandidateEventKind = iota
	// CandidateIncluded is emitted when a candidate became available and was included.
	CandidateIncluded
	// CandidateTimedOut is emitted when a candidate timed out waiting for availability.
	CandidateTimedOut
)

func (k CandidateEventKind) String() string {
	switch k {
	case CandidateBacked:
		return "backed"
	case CandidateIncluded:
		return "included"
	case CandidateTimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// CandidateEvent records a change in a candidate's on-chain status. Group is not
// encoded for timed out candidates.
type CandidateEvent struct {
	Kind     CandidateEventKind
	Receipt  CandidateReceipt
	HeadData HeadData
	Core     CoreIndex
	Group    GroupIndex
}

// EncodeScale implements scale codec interface.
func (ev *CandidateEvent) EncodeScale(e *scale.Encoder) (int, error) {
	if ev.Kind > CandidateTimedOut {
		return 0, fmt.Errorf("encode candidate event: unknown kind %d", ev.Kind)
	}
	var total int
	{
		n, err := scale.EncodeByte(e, byte(ev.Kind))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := ev.Receipt.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := ev.HeadData.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := ev.Core.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	if ev.Kind != CandidateTimedOut {
		n, err := ev.Group.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (ev *CandidateEvent) DecodeScale(d *scale.Decoder) (int, error) {
	var total int
	{
		kind, n, err := scale.DecodeByte(d)
		if err != nil {
			return total, err
		}
		total += n
		if CandidateEventKind(kind) > CandidateTimedOut {
			return total, fmt.Errorf("decode candidate event: unknown kind %d", kind)
		}
		*ev = CandidateEvent{Kind: CandidateEventKind(kind)}
	}
	{
		n, err := ev.Receipt.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := ev.HeadData.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := ev.Core.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	if ev.Kind != CandidateTimedOut {
		n, err := ev.Group.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// MarshalLogObject implements logging interface.
func (ev *CandidateEvent) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("kind", ev.Kind.String())
	encoder.AddString("candidate_hash", ev.Receipt.Hash().ShortString())
	encoder.AddUint32("core", uint32(ev.Core))
	if ev.Kind != CandidateTimedOut {
		encoder.AddUint32("group", uint32(ev.Group))
	}
	return nil
}
