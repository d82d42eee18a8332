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

package bech32m

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	testDefs := []struct {
		prefix string
		data   []byte
	}{
		{"aleo", bytes.Repeat([]byte{0}, 32)},
		{"aleo", bytes.Repeat([]byte{0xab}, 32)},
		{"proof", bytes.Repeat([]byte{0x5a}, 500)},
		{"ab", []byte{1, 2, 3}},
	}
	for _, testDef := range testDefs {
		s, err := Encode(testDef.prefix, testDef.data)
		require.NoError(t, err)
		assert.True(t, len(s) > len(testDef.prefix)+1)
		assert.Equal(t, testDef.prefix+"1", s[:len(testDef.prefix)+1])

		hrp, data, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, testDef.prefix, hrp)
		assert.Equal(t, testDef.data, data)
	}
}

func TestAddressLength(t *testing.T) {
	// 32 bytes become 52 five-bit groups plus 6 checksum characters
	s := MustEncode("aleo", make([]byte, 32))
	assert.Len(t, s, len("aleo1")+52+6)
}

func TestDecodeRejectsBech32(t *testing.T) {
	conv, err := bech32.ConvertBits([]byte{1, 2, 3}, 8, 5, true)
	require.NoError(t, err)
	s, err := bech32.Encode("aleo", conv)
	require.NoError(t, err)
	_, _, err = Decode(s)
	require.ErrorIs(t, err, ErrWrongVariant)
}

func TestDecodeChecksum(t *testing.T) {
	s := MustEncode("aleo", make([]byte, 32))
	// Flip the last checksum character
	b := []byte(s)
	if b[len(b)-1] == 'q' {
		b[len(b)-1] = 'p'
	} else {
		b[len(b)-1] = 'q'
	}
	_, _, err := Decode(string(b))
	require.Error(t, err)
}

func TestDecodePrefix(t *testing.T) {
	s := MustEncode("record", []byte{9, 9})
	data, err := DecodePrefix("record", s)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, data)
	_, err = DecodePrefix("aleo", s)
	require.ErrorIs(t, err, ErrWrongPrefix)
}
