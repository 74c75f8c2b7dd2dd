package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/spacemeshos/go-scale"
)

// Encodable is an interface that must be implemented by a struct to be encoded.
type Encodable = scale.Encodable

// Decodable is an interface that must be implemented by a struct to be decoded.
type Decodable = scale.Decodable

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value Encodable) (int, error) {
	n, err := value.EncodeScale(scale.NewEncoder(w))
	if err != nil {
		return n, fmt.Errorf("encode scale: %w", err)
	}
	return n, nil
}

// DecodeFrom decodes a value using data from a reader stream.
func DecodeFrom(r io.Reader, value Decodable) (int, error) {
	n, err := value.DecodeScale(scale.NewDecoder(r))
	if err != nil {
		return n, fmt.Errorf("decode scale: %w", err)
	}
	return n, nil
}

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(512)
		return b
	},
}

func getEncoderBuffer() *bytes.Buffer {
	return encoderPool.Get().(*bytes.Buffer)
}

func putEncoderBuffer(b *bytes.Buffer) {
	b.Reset()
	encoderPool.Put(b)
}

// Encode value to a byte buffer.
func Encode(value Encodable) ([]byte, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	_, err := EncodeTo(b, value)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, len(b.Bytes()))
	copy(buf, b.Bytes())
	return buf, nil
}

// MustEncode encodes value and panics on failure. Use only for values whose
// encoding can't fail, such as fixed-size records.
func MustEncode(value Encodable) []byte {
	buf, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return buf
}

// Decode value from a byte buffer.
func Decode(buf []byte, value Decodable) error {
	if _, err := DecodeFrom(bytes.NewBuffer(buf), value); err != nil {
		return fmt.Errorf("decode from buffer: %w", err)
	}
	return nil
}

// DecodeExact decodes value and fails if any input bytes are left unread.
func DecodeExact(buf []byte, value Decodable) error {
	r := bytes.NewReader(buf)
	if _, err := DecodeFrom(r, value); err != nil {
		return fmt.Errorf("decode from buffer: %w", err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("decode from buffer: %d trailing bytes", r.Len())
	}
	return nil
}

// EncodedSize returns the length of the encoding of value.
func EncodedSize(value Encodable) (int, error) {
	n, err := value.EncodeScale(scale.NewEncoder(io.Discard))
	if err != nil {
		return 0, fmt.Errorf("encode scale: %w", err)
	}
	return n, nil
}

func EncodeSlice[V any, H scale.EncodablePtr[V]](value []V) ([]byte, error) {
	var b bytes.Buffer
	_, err := scale.EncodeStructSlice[V, H](scale.NewEncoder(&b), value)
	if err != nil {
		return nil, fmt.Errorf("encode struct slice: %w", err)
	}
	return b.Bytes(), nil
}

func DecodeSlice[V any, H scale.DecodablePtr[V]](buf []byte) ([]V, error) {
	v, _, err := scale.DecodeStructSlice[V, H](scale.NewDecoder(bytes.NewReader(buf)))
	if err != nil {
		return nil, fmt.Errorf("decode struct slice: %w", err)
	}
	return v, nil
}
