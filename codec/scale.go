package codec

import (
	"fmt"
	"math"

	"github.com/spacemeshos/go-scale"
)

// Unbounded is the element limit used when encoding. Size limits apply to decoding only,
// so that any value held in memory can be encoded and hashed.
const Unbounded = math.MaxUint32

// EncodeBytes writes a compact length followed by the bytes.
func EncodeBytes(e *scale.Encoder, value []byte) (int, error) {
	return scale.EncodeByteSliceWithLimit(e, value, Unbounded)
}

// EncodeByteSlices writes a compact length followed by each slice with its own
// compact length prefix.
func EncodeByteSlices(e *scale.Encoder, value [][]byte) (int, error) {
	total, err := scale.EncodeCompact32(e, uint32(len(value)))
	if err != nil {
		return total, err
	}
	for _, item := range value {
		n, err := EncodeBytes(e, item)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeByteSlices is the inverse of EncodeByteSlices.
func DecodeByteSlices(d *scale.Decoder, maxItems, maxItemLen uint32) ([][]byte, int, error) {
	length, total, err := scale.DecodeCompact32(d)
	if err != nil {
		return nil, total, err
	}
	if length > maxItems {
		return nil, total, fmt.Errorf("%d items exceed limit %d", length, maxItems)
	}
	if length == 0 {
		return nil, total, nil
	}
	value := make([][]byte, 0, length)
	for range length {
		item, n, err := scale.DecodeByteSliceWithLimit(d, maxItemLen)
		total += n
		if err != nil {
			return nil, total, err
		}
		value = append(value, item)
	}
	return value, total, nil
}

// EncodeOptionalBytes writes the SCALE option marker and, when present, the
// length-prefixed bytes.
func EncodeOptionalBytes(e *scale.Encoder, value []byte) (int, error) {
	if value == nil {
		return scale.EncodeByte(e, 0)
	}
	total, err := scale.EncodeByte(e, 1)
	if err != nil {
		return total, err
	}
	n, err := EncodeBytes(e, value)
	return total + n, err
}

// DecodeOptionalBytes is the inverse of EncodeOptionalBytes. An absent value is
// returned as nil, a present empty value as a non-nil empty slice.
func DecodeOptionalBytes(d *scale.Decoder, maxLen uint32) ([]byte, int, error) {
	marker, total, err := scale.DecodeByte(d)
	if err != nil {
		return nil, total, err
	}
	switch marker {
	case 0:
		return nil, total, nil
	case 1:
		value, n, err := scale.DecodeByteSliceWithLimit(d, maxLen)
		total += n
		if err != nil {
			return nil, total, err
		}
		if value == nil {
			value = []byte{}
		}
		return value, total, nil
	default:
		return nil, total, fmt.Errorf("invalid option marker %d", marker)
	}
}

// EncodeOption writes the SCALE option marker and, when value is not nil, the value.
func EncodeOption[V any, H scale.EncodablePtr[V]](e *scale.Encoder, value *V) (int, error) {
	if value == nil {
		return scale.EncodeByte(e, 0)
	}
	total, err := scale.EncodeByte(e, 1)
	if err != nil {
		return total, err
	}
	n, err := H(value).EncodeScale(e)
	return total + n, err
}

// DecodeOption is the inverse of EncodeOption.
func DecodeOption[V any, H scale.DecodablePtr[V]](d *scale.Decoder) (*V, int, error) {
	marker, total, err := scale.DecodeByte(d)
	if err != nil {
		return nil, total, err
	}
	switch marker {
	case 0:
		return nil, total, nil
	case 1:
		value := new(V)
		n, err := H(value).DecodeScale(d)
		total += n
		if err != nil {
			return nil, total, err
		}
		return value, total, nil
	default:
		return nil, total, fmt.Errorf("invalid option marker %d", marker)
	}
}
