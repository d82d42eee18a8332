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

package ledger

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockRoundTrip(t *testing.T) {
	testDefs := []struct {
		name     string
		coinbase bool
	}{
		{"without coinbase", false},
		{"with coinbase", true},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			b := sampleBlock(t, 10, td.coinbase)
			encoded, decoded := testutil.RoundTrip(t, b, DecodeBlock)
			assert.Equal(t, byte(BlockVersion), encoded[0])
			assert.Equal(t, b.Hash, decoded.Hash)
			assert.Equal(t, b.Header, decoded.Header)
			assert.Equal(t, b.Signature, decoded.Signature)
			assert.Equal(t, td.coinbase, decoded.Coinbase.Valid)
			assert.Len(t, decoded.Transactions.Transactions, 3)
		})
	}
}

func TestBlockHeaderTruncated(t *testing.T) {
	encoded, err := codec.Marshal(sampleBlock(t, 10, true).Header)
	require.NoError(t, err)
	// version, four fields, then the metadata
	assert.Len(t, encoded, 1+4*32+1+2+8+4+8+16+3*8+2*8)
	testutil.RequireTruncationFails(t, encoded, DecodeBlockHeader)
}

func TestBlockVersions(t *testing.T) {
	encoded, err := codec.Marshal(sampleBlock(t, 10, false))
	require.NoError(t, err)
	headerOffset := 1 + 2*32
	metadataOffset := headerOffset + 1 + 4*32
	testDefs := []struct {
		entity string
		offset int
	}{
		{"Block", 0},
		{"BlockHeader", headerOffset},
		{"BlockHeaderMetadata", metadataOffset},
	}
	for _, td := range testDefs {
		t.Run(td.entity, func(t *testing.T) {
			data := append([]byte(nil), encoded...)
			data[td.offset] = 7
			_, err := codec.Decode(data, true, DecodeBlock)
			var verr *codec.VersionError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, td.entity, verr.Entity)
			assert.Equal(t, uint8(7), verr.Got)
		})
	}
}

func TestBlockTrailingBytes(t *testing.T) {
	encoded, err := codec.Marshal(sampleBlock(t, 10, false))
	require.NoError(t, err)
	encoded = append(encoded, 0)
	_, err = codec.Decode(encoded, true, DecodeBlock)
	require.ErrorIs(t, err, codec.ErrTrailingBytes)
	_, err = codec.Decode(encoded, false, DecodeBlock)
	require.NoError(t, err)
}

func TestBlockAccessors(t *testing.T) {
	b := sampleBlock(t, 513, true)
	assert.Equal(t, uint32(513), b.Height())
	assert.Equal(t, uint32(2), b.EpochNumber())
	assert.Equal(t, uint32(0), sampleBlock(t, 255, false).EpochNumber())

	s := b.String()
	assert.Equal(t, fmt.Sprintf("Block 513 (%s...)", b.Hash.String()[:16]), s)
	assert.True(t, strings.HasPrefix(s, "Block 513 (ab1"), s)
}

func TestBlockCoinbaseReward(t *testing.T) {
	// 40 seconds after the previous coinbase at height 100
	b := sampleBlock(t, 100, true)
	assert.Equal(t, uint64(108182501), b.CoinbaseReward(1_700_000_000))
	assert.Equal(t, uint64(0), sampleBlock(t, 100, false).CoinbaseReward(1_700_000_000))
}

func TestPuzzleCommitmentToTarget(t *testing.T) {
	assert.Equal(t, uint64(3), PuzzleCommitment{Commitment: kzg(1)}.ToTarget())

	var c PuzzleCommitment
	c.Commitment.Element[0] = 0xa8
	c.Commitment.Element[1] = 0x01
	assert.Equal(t, uint64(1425), c.ToTarget())

	var seq PuzzleCommitment
	for i := range seq.Commitment.Element {
		seq.Commitment.Element[i] = byte(i)
	}
	assert.Equal(t, uint64(1), seq.ToTarget())
}

func TestPuzzleCommitmentString(t *testing.T) {
	c := PuzzleCommitment{Commitment: kzg(1)}
	s := c.String()
	require.True(t, strings.HasPrefix(s, "puzzle1"), s)
	parsed, err := ParsePuzzleCommitment(s)
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestProverSolution(t *testing.T) {
	s := ProverSolution{
		PartialSolution: PartialSolution{
			Address:    primitive.Address{3},
			Nonce:      math.MaxUint64,
			Commitment: PuzzleCommitment{Commitment: kzg(2)},
		},
		Proof: KZGProof{W: g1(4), RandomV: codec.Some(field(5))},
	}
	encoded, decoded := testutil.RoundTrip(t, s, DecodeProverSolution)
	assert.Equal(t, s, decoded)
	assert.Len(t, encoded, 32+8+48+48+1+32)
	testutil.RequireTruncationFails(t, encoded, DecodeProverSolution)
}

func TestSignatureString(t *testing.T) {
	sig := sampleSignature()
	s := sig.String()
	require.True(t, strings.HasPrefix(s, "sign1"), s)
	parsed, err := ParseSignature(s)
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	_, err = ParseSignature(PuzzleCommitment{}.String())
	require.Error(t, err)
}
