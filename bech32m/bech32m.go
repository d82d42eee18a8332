// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bech32m renders byte strings in the checksummed bech32m text form
// used for addresses, records, ciphertexts, proofs and signatures.
package bech32m

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

var (
	ErrWrongVariant = errors.New("bech32m: checksum is not bech32m")
	ErrWrongPrefix  = errors.New("bech32m: unexpected human-readable prefix")
)

// Encode converts data to 5-bit groups and encodes them under prefix.
func Encode(prefix string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32m: convert bits: %w", err)
	}
	ret, err := bech32.EncodeM(prefix, conv)
	if err != nil {
		return "", fmt.Errorf("bech32m: encode: %w", err)
	}
	return ret, nil
}

// MustEncode is Encode for inputs known to be valid. Every byte slice is
// encodable, so it only panics on a broken prefix.
func MustEncode(prefix string, data []byte) string {
	ret, err := Encode(prefix, data)
	if err != nil {
		panic(err)
	}
	return ret
}

// Decode returns the prefix and the 8-bit payload of s. The BIP-173 length
// limit does not apply since proofs and records are far longer than 90
// characters.
func Decode(s string) (string, []byte, error) {
	hrp, data, version, err := bech32.DecodeNoLimitWithVersion(s)
	if err != nil {
		return "", nil, fmt.Errorf("bech32m: decode: %w", err)
	}
	if version != bech32.VersionM {
		return "", nil, ErrWrongVariant
	}
	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("bech32m: convert bits: %w", err)
	}
	return hrp, conv, nil
}

// DecodePrefix is Decode that also requires a specific prefix.
func DecodePrefix(prefix string, s string) ([]byte, error) {
	hrp, data, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if hrp != prefix {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrWrongPrefix, prefix, hrp)
	}
	return data, nil
}
