package types

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

var (
	// ErrSignalTooShort is returned when a message ends before a complete signal.
	ErrSignalTooShort = errors.New("ump signal too short")
	// ErrUnknownSignal is returned for an unrecognized signal variant.
	ErrUnknownSignal = errors.New("unknown ump signal")
)

// CoreSelector is a strictly increasing sequence number chosen by the parachain,
// typically the least significant byte of its block number.
type CoreSelector uint8

// ClaimQueueOffset is an offset into the relay chain claim queue.
type ClaimQueueOffset uint8

// DefaultClaimQueueOffset is the offset assumed when a candidate doesn't commit to one.
const DefaultClaimQueueOffset ClaimQueueOffset = 1

// UMPSeparator separates regular upward messages from the trailing signals.
var UMPSeparator = []byte{}

// UMPSignalKind enumerates the signals a parachain can send via the upward message queue.
type UMPSignalKind uint8

const (
	// SelectCoreSignal commits the candidate to a core selector and claim queue offset.
	SelectCoreSignal UMPSignalKind = 0
)

// UMPSignal is a control message appended after the UMPSeparator.
type UMPSignal struct {
	Kind     UMPSignalKind
	Selector CoreSelector
	Offset   ClaimQueueOffset
}

// SelectCore returns a signal that selects the core for the candidate.
func SelectCore(selector CoreSelector, offset ClaimQueueOffset) UMPSignal {
	return UMPSignal{Kind: SelectCoreSignal, Selector: selector, Offset: offset}
}

// Bytes returns the encoded signal.
func (s UMPSignal) Bytes() []byte {
	return []byte{byte(s.Kind), byte(s.Selector), byte(s.Offset)}
}

// DecodeUMPSignal decodes a signal from the start of msg. Bytes after a complete
// signal are ignored.
func DecodeUMPSignal(msg []byte) (UMPSignal, error) {
	if len(msg) == 0 {
		return UMPSignal{}, ErrSignalTooShort
	}
	switch kind := UMPSignalKind(msg[0]); kind {
	case SelectCoreSignal:
		if len(msg) < 3 {
			return UMPSignal{}, fmt.Errorf("%w: %d bytes", ErrSignalTooShort, len(msg))
		}
		return SelectCore(CoreSelector(msg[1]), ClaimQueueOffset(msg[2])), nil
	default:
		return UMPSignal{}, fmt.Errorf("%w: variant %d", ErrUnknownSignal, kind)
	}
}

// EncodeScale implements scale codec interface.
func (s *UMPSignal) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, s.Bytes())
}

// DecodeScale implements scale codec interface.
func (s *UMPSignal) DecodeScale(d *scale.Decoder) (int, error) {
	kind, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	if UMPSignalKind(kind) != SelectCoreSignal {
		return total, fmt.Errorf("%w: variant %d", ErrUnknownSignal, kind)
	}
	var payload [2]byte
	n, err := scale.DecodeByteArray(d, payload[:])
	total += n
	if err != nil {
		return total, err
	}
	*s = SelectCore(CoreSelector(payload[0]), ClaimQueueOffset(payload[1]))
	return total, nil
}
