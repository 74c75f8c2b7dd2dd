// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package util

/*
Encoding Rules

Encoded hex data carries the "0x" prefix, decoding accepts it optionally.
Byte slices must be of even length. An empty byte slice encodes as "0x".
*/

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Errors.
var (
	ErrSyntax    = errors.New("invalid hex string")
	ErrOddLength = errors.New("hex string of odd length")
)

// Encode encodes b as a hex string with 0x prefix.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// Decode decodes a hex string with an optional 0x prefix. Surrounding whitespace is ignored.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return b, nil
}

// UnmarshalFixedText decodes the input as a string with optional 0x prefix. The length
// of out determines the required input length.
func UnmarshalFixedText(typname string, input, out []byte) error {
	raw, err := Decode(string(input))
	if err != nil {
		return fmt.Errorf("%s: %w", typname, err)
	}
	if len(raw) != len(out) {
		return fmt.Errorf("%s: hex string has length %d, want %d", typname, len(raw)*2, len(out)*2)
	}
	copy(out, raw)
	return nil
}
