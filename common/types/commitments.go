package types

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-parachain/codec"
)

const (
	// MaxUpwardMessageNum bounds the number of upward messages in commitments.
	MaxUpwardMessageNum = 16 * 1024
	// MaxHorizontalMessageNum bounds the number of horizontal messages in commitments.
	MaxHorizontalMessageNum = 16 * 1024
	// MaxMessageSize bounds a single upward or horizontal message.
	MaxMessageSize = 1 << 20
)

func errTooManyHorizontal(n int) error {
	return fmt.Errorf("%d horizontal messages exceed limit %d", n, MaxHorizontalMessageNum)
}

// OutboundHrmpMessage is a horizontal message sent to a sibling para.
type OutboundHrmpMessage struct {
	Recipient ParaID
	Data      []byte
}

// EncodeScale implements scale codec interface.
func (m *OutboundHrmpMessage) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := m.Recipient.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := codec.EncodeBytes(e, m.Data)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (m *OutboundHrmpMessage) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := m.Recipient.DecodeScale(d)
	if err != nil {
		return total, err
	}
	data, n, err := scale.DecodeByteSliceWithLimit(d, MaxMessageSize)
	total += n
	m.Data = data
	return total, err
}

// CandidateCommitments are the outputs of executing a candidate.
type CandidateCommitments struct {
	// Messages destined to be interpreted by the relay chain itself.
	UpwardMessages [][]byte
	// Horizontal messages sent by the parachain.
	HorizontalMessages []OutboundHrmpMessage
	// New validation code, nil if unchanged.
	NewValidationCode ValidationCode
	// The head data produced as a result of execution.
	HeadData HeadData
	// The number of messages processed from the DMQ.
	ProcessedDownwardMessages uint32
	// The mark which specifies the block number up to which all inbound HRMP messages are processed.
	HrmpWatermark BlockNumber
}

// EncodeScale implements scale codec interface.
func (c *CandidateCommitments) EncodeScale(e *scale.Encoder) (int, error) {
	var total int
	{
		n, err := codec.EncodeByteSlices(e, c.UpwardMessages)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStructSliceWithLimit(e, c.HorizontalMessages, codec.Unbounded)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := codec.EncodeOptionalBytes(e, c.NewValidationCode)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := c.HeadData.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeUint32(e, c.ProcessedDownwardMessages)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := c.HrmpWatermark.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (c *CandidateCommitments) DecodeScale(d *scale.Decoder) (int, error) {
	var total int
	{
		field, n, err := codec.DecodeByteSlices(d, MaxUpwardMessageNum, MaxMessageSize)
		if err != nil {
			return total, err
		}
		total += n
		c.UpwardMessages = field
	}
	{
		field, n, err := scale.DecodeStructSlice[OutboundHrmpMessage](d)
		if err != nil {
			return total, err
		}
		total += n
		if len(field) > MaxHorizontalMessageNum {
			return total, errTooManyHorizontal(len(field))
		}
		c.HorizontalMessages = field
	}
	{
		field, n, err := codec.DecodeOptionalBytes(d, MaxCodeSize)
		if err != nil {
			return total, err
		}
		total += n
		c.NewValidationCode = field
	}
	{
		n, err := c.HeadData.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeUint32(d)
		if err != nil {
			return total, err
		}
		total += n
		c.ProcessedDownwardMessages = field
	}
	{
		n, err := c.HrmpWatermark.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Hash returns the blake2b-256 hash of the encoded commitments.
func (c *CandidateCommitments) Hash() Hash32 {
	return CalcObjectHash32(c)
}

// AppendSignal appends the separator followed by the signal to the upward messages.
// Signals already present after an earlier separator are kept.
func (c *CandidateCommitments) AppendSignal(signal UMPSignal) {
	c.UpwardMessages = append(c.UpwardMessages, slices.Clone(UMPSeparator), signal.Bytes())
}

// SelectedCore returns the core selector and claim queue offset the candidate committed to.
//
// The signal is the message right after the last separator in the upward messages.
func (c *CandidateCommitments) SelectedCore() (CoreSelector, ClaimQueueOffset, bool) {
	// at least the separator and the signal
	if len(c.UpwardMessages) < 2 {
		return 0, 0, false
	}
	pos := -1
	for i := len(c.UpwardMessages) - 1; i >= 0; i-- {
		if bytes.Equal(c.UpwardMessages[i], UMPSeparator) {
			pos = i
			break
		}
	}
	if pos < 0 || pos+1 >= len(c.UpwardMessages) {
		return 0, 0, false
	}
	signal, err := DecodeUMPSignal(c.UpwardMessages[pos+1])
	if err != nil {
		return 0, 0, false
	}
	return signal.Selector, signal.Offset, true
}

// MarshalLogObject implements logging interface.
func (c *CandidateCommitments) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("upward_messages", len(c.UpwardMessages))
	encoder.AddInt("horizontal_messages", len(c.HorizontalMessages))
	encoder.AddBool("code_upgrade", c.NewValidationCode != nil)
	encoder.AddString("head_data_hash", c.HeadData.Hash().ShortString())
	encoder.AddUint32("processed_downward_messages", c.ProcessedDownwardMessages)
	encoder.AddUint32("hrmp_watermark", uint32(c.HrmpWatermark))
	return nil
}
