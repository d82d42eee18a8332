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
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/ledger/retarget"
	"github.com/blinklabs-io/aleoledger/primitive"
)

const (
	BlockVersion               = 1
	BlockHeaderVersion         = 1
	BlockHeaderMetadataVersion = 1
)

type BlockHeaderMetadata struct {
	Network                   uint16
	Round                     uint64
	Height                    uint32
	TotalSupplyInMicrocredits uint64
	CumulativeWeight          codec.Uint128
	CoinbaseTarget            uint64
	ProofTarget               uint64
	LastCoinbaseTarget        uint64
	LastCoinbaseTimestamp     int64
	Timestamp                 int64
}

func DecodeBlockHeaderMetadata(r *codec.Reader) (BlockHeaderMetadata, error) {
	if err := codec.CheckVersion(r, "BlockHeaderMetadata", BlockHeaderMetadataVersion); err != nil {
		return BlockHeaderMetadata{}, err
	}
	var ret BlockHeaderMetadata
	var err error
	wrap := func(err error) (BlockHeaderMetadata, error) {
		return BlockHeaderMetadata{}, fmt.Errorf("decode block header metadata: %w", err)
	}
	if ret.Network, err = r.ReadUint16(); err != nil {
		return wrap(err)
	}
	if ret.Round, err = r.ReadUint64(); err != nil {
		return wrap(err)
	}
	if ret.Height, err = r.ReadUint32(); err != nil {
		return wrap(err)
	}
	if ret.TotalSupplyInMicrocredits, err = r.ReadUint64(); err != nil {
		return wrap(err)
	}
	if ret.CumulativeWeight, err = r.ReadUint128(); err != nil {
		return wrap(err)
	}
	for _, dst := range []*uint64{&ret.CoinbaseTarget, &ret.ProofTarget, &ret.LastCoinbaseTarget} {
		if *dst, err = r.ReadUint64(); err != nil {
			return wrap(err)
		}
	}
	if ret.LastCoinbaseTimestamp, err = r.ReadInt64(); err != nil {
		return wrap(err)
	}
	if ret.Timestamp, err = r.ReadInt64(); err != nil {
		return wrap(err)
	}
	return ret, nil
}

func (m BlockHeaderMetadata) Encode(w *codec.Writer) {
	w.WriteUint8(BlockHeaderMetadataVersion)
	w.WriteUint16(m.Network)
	w.WriteUint64(m.Round)
	w.WriteUint32(m.Height)
	w.WriteUint64(m.TotalSupplyInMicrocredits)
	w.WriteUint128(m.CumulativeWeight)
	w.WriteUint64(m.CoinbaseTarget)
	w.WriteUint64(m.ProofTarget)
	w.WriteUint64(m.LastCoinbaseTarget)
	w.WriteInt64(m.LastCoinbaseTimestamp)
	w.WriteInt64(m.Timestamp)
}

type BlockHeader struct {
	PreviousStateRoot        primitive.Field
	TransactionsRoot         primitive.Field
	FinalizeRoot             primitive.Field
	CoinbaseAccumulatorPoint primitive.Field
	Metadata                 BlockHeaderMetadata
}

func DecodeBlockHeader(r *codec.Reader) (BlockHeader, error) {
	if err := codec.CheckVersion(r, "BlockHeader", BlockHeaderVersion); err != nil {
		return BlockHeader{}, err
	}
	var ret BlockHeader
	var err error
	for _, dst := range []*primitive.Field{
		&ret.PreviousStateRoot,
		&ret.TransactionsRoot,
		&ret.FinalizeRoot,
		&ret.CoinbaseAccumulatorPoint,
	} {
		if *dst, err = primitive.DecodeField(r); err != nil {
			return BlockHeader{}, fmt.Errorf("decode block header: %w", err)
		}
	}
	if ret.Metadata, err = DecodeBlockHeaderMetadata(r); err != nil {
		return BlockHeader{}, fmt.Errorf("decode block header: %w", err)
	}
	return ret, nil
}

func (h BlockHeader) Encode(w *codec.Writer) {
	w.WriteUint8(BlockHeaderVersion)
	h.PreviousStateRoot.Encode(w)
	h.TransactionsRoot.Encode(w)
	h.FinalizeRoot.Encode(w)
	h.CoinbaseAccumulatorPoint.Encode(w)
	h.Metadata.Encode(w)
}

// PuzzleCommitment is a prover's commitment to a puzzle solution.
type PuzzleCommitment struct {
	Commitment KZGCommitment
}

func DecodePuzzleCommitment(r *codec.Reader) (PuzzleCommitment, error) {
	c, err := DecodeKZGCommitment(r)
	if err != nil {
		return PuzzleCommitment{}, fmt.Errorf("decode puzzle commitment: %w", err)
	}
	return PuzzleCommitment{Commitment: c}, nil
}

func (c PuzzleCommitment) Encode(w *codec.Writer) {
	c.Commitment.Encode(w)
}

// ToTarget returns the proof target the commitment meets:
// (2^64-1) / the first eight little-endian bytes of sha256(sha256(c)).
func (c PuzzleCommitment) ToTarget() uint64 {
	first := sha256.Sum256(c.Commitment.Element[:])
	second := sha256.Sum256(first[:])
	v := binary.LittleEndian.Uint64(second[:8])
	if v == 0 {
		return math.MaxUint64
	}
	return math.MaxUint64 / v
}

func (c PuzzleCommitment) String() string {
	return bech32String(PuzzlePrefix, c)
}

// ParsePuzzleCommitment decodes a "puzzle1..." string.
func ParsePuzzleCommitment(s string) (PuzzleCommitment, error) {
	return parseBech32(PuzzlePrefix, s, DecodePuzzleCommitment)
}

type PartialSolution struct {
	Address    primitive.Address
	Nonce      uint64
	Commitment PuzzleCommitment
}

func DecodePartialSolution(r *codec.Reader) (PartialSolution, error) {
	addr, err := primitive.DecodeAddress(r)
	if err != nil {
		return PartialSolution{}, fmt.Errorf("decode partial solution: %w", err)
	}
	nonce, err := r.ReadUint64()
	if err != nil {
		return PartialSolution{}, fmt.Errorf("decode partial solution: %w", err)
	}
	commitment, err := DecodePuzzleCommitment(r)
	if err != nil {
		return PartialSolution{}, fmt.Errorf("decode partial solution: %w", err)
	}
	return PartialSolution{Address: addr, Nonce: nonce, Commitment: commitment}, nil
}

func (s PartialSolution) Encode(w *codec.Writer) {
	s.Address.Encode(w)
	w.WriteUint64(s.Nonce)
	s.Commitment.Encode(w)
}

type ProverSolution struct {
	PartialSolution PartialSolution
	Proof           KZGProof
}

func DecodeProverSolution(r *codec.Reader) (ProverSolution, error) {
	partial, err := DecodePartialSolution(r)
	if err != nil {
		return ProverSolution{}, err
	}
	proof, err := DecodeKZGProof(r)
	if err != nil {
		return ProverSolution{}, fmt.Errorf("decode prover solution: %w", err)
	}
	return ProverSolution{PartialSolution: partial, Proof: proof}, nil
}

func (s ProverSolution) Encode(w *codec.Writer) {
	s.PartialSolution.Encode(w)
	s.Proof.Encode(w)
}

// CoinbaseSolution aggregates the partial solutions included in a block.
type CoinbaseSolution struct {
	PartialSolutions []PartialSolution
	Proof            KZGProof
}

func DecodeCoinbaseSolution(r *codec.Reader) (CoinbaseSolution, error) {
	partials, err := codec.DecodeVec(r, codec.U32, DecodePartialSolution)
	if err != nil {
		return CoinbaseSolution{}, fmt.Errorf("decode coinbase solution: %w", err)
	}
	proof, err := DecodeKZGProof(r)
	if err != nil {
		return CoinbaseSolution{}, fmt.Errorf("decode coinbase solution: %w", err)
	}
	return CoinbaseSolution{PartialSolutions: partials, Proof: proof}, nil
}

func (s CoinbaseSolution) Encode(w *codec.Writer) {
	codec.EncodeVec(w, codec.U32, s.PartialSolutions, codec.Encode[PartialSolution])
	s.Proof.Encode(w)
}

type ComputeKey struct {
	PKSig primitive.Group
	PRSig primitive.Group
}

func DecodeComputeKey(r *codec.Reader) (ComputeKey, error) {
	pk, err := primitive.DecodeGroup(r)
	if err != nil {
		return ComputeKey{}, err
	}
	pr, err := primitive.DecodeGroup(r)
	if err != nil {
		return ComputeKey{}, err
	}
	return ComputeKey{PKSig: pk, PRSig: pr}, nil
}

func (k ComputeKey) Encode(w *codec.Writer) {
	k.PKSig.Encode(w)
	k.PRSig.Encode(w)
}

// Signature is a Schnorr signature with the signer's compute key.
type Signature struct {
	Challenge  primitive.Scalar
	Response   primitive.Scalar
	ComputeKey ComputeKey
}

func DecodeSignature(r *codec.Reader) (Signature, error) {
	var ret Signature
	var err error
	if ret.Challenge, err = primitive.DecodeScalar(r); err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	if ret.Response, err = primitive.DecodeScalar(r); err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	if ret.ComputeKey, err = DecodeComputeKey(r); err != nil {
		return Signature{}, fmt.Errorf("decode signature: %w", err)
	}
	return ret, nil
}

func (s Signature) Encode(w *codec.Writer) {
	s.Challenge.Encode(w)
	s.Response.Encode(w)
	s.ComputeKey.Encode(w)
}

func (s Signature) String() string {
	return bech32String(SignaturePrefix, s)
}

// ParseSignature decodes a "sign1..." string.
func ParseSignature(s string) (Signature, error) {
	return parseBech32(SignaturePrefix, s, DecodeSignature)
}

type Block struct {
	Hash         primitive.BlockHash
	PreviousHash primitive.BlockHash
	Header       BlockHeader
	Transactions Transactions
	Coinbase     codec.Option[CoinbaseSolution]
	Signature    Signature
}

func DecodeBlock(r *codec.Reader) (Block, error) {
	if err := codec.CheckVersion(r, "Block", BlockVersion); err != nil {
		return Block{}, err
	}
	var ret Block
	var err error
	if ret.Hash, err = primitive.DecodeBlockHash(r); err != nil {
		return Block{}, fmt.Errorf("decode block: %w", err)
	}
	if ret.PreviousHash, err = primitive.DecodeBlockHash(r); err != nil {
		return Block{}, fmt.Errorf("decode block: %w", err)
	}
	if ret.Header, err = DecodeBlockHeader(r); err != nil {
		return Block{}, fmt.Errorf("decode block: %w", err)
	}
	if ret.Transactions, err = DecodeTransactions(r); err != nil {
		return Block{}, fmt.Errorf("decode block %d: %w", ret.Header.Metadata.Height, err)
	}
	if ret.Coinbase, err = codec.DecodeOption(r, DecodeCoinbaseSolution); err != nil {
		return Block{}, fmt.Errorf("decode block %d: %w", ret.Header.Metadata.Height, err)
	}
	if ret.Signature, err = DecodeSignature(r); err != nil {
		return Block{}, fmt.Errorf("decode block %d: %w", ret.Header.Metadata.Height, err)
	}
	return ret, nil
}

func (b Block) Encode(w *codec.Writer) {
	w.WriteUint8(BlockVersion)
	b.Hash.Encode(w)
	b.PreviousHash.Encode(w)
	b.Header.Encode(w)
	b.Transactions.Encode(w)
	codec.EncodeOption(w, b.Coinbase, codec.Encode[CoinbaseSolution])
	b.Signature.Encode(w)
}

func (b Block) Height() uint32 {
	return b.Header.Metadata.Height
}

func (b Block) String() string {
	hash := b.Hash.String()
	if len(hash) > 16 {
		hash = hash[:16]
	}
	return fmt.Sprintf("Block %d (%s...)", b.Height(), hash)
}

// CoinbaseReward returns the coinbase reward of the block given the
// timestamp of the previous coinbase. Blocks without a coinbase solution
// earn nothing.
func (b Block) CoinbaseReward(lastTimestamp int64) uint64 {
	if !b.Coinbase.Valid {
		return 0
	}
	return retarget.CoinbaseReward(b.Height(), lastTimestamp, b.Header.Metadata.Timestamp)
}

func (b Block) EpochNumber() uint32 {
	return b.Height() / EpochBlocks
}
