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

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
)

const ProofVersion = 1

const (
	witnessCommitmentsSize = 3 * primitive.G1AffineSize
	fieldSize              = primitive.ScalarSize
)

type WitnessCommitments struct {
	W  KZGCommitment
	ZA KZGCommitment
	ZB KZGCommitment
}

func DecodeWitnessCommitments(r *codec.Reader) (WitnessCommitments, error) {
	var ret WitnessCommitments
	var err error
	if ret.W, err = DecodeKZGCommitment(r); err != nil {
		return WitnessCommitments{}, err
	}
	if ret.ZA, err = DecodeKZGCommitment(r); err != nil {
		return WitnessCommitments{}, err
	}
	if ret.ZB, err = DecodeKZGCommitment(r); err != nil {
		return WitnessCommitments{}, err
	}
	return ret, nil
}

func (c WitnessCommitments) Encode(w *codec.Writer) {
	c.W.Encode(w)
	c.ZA.Encode(w)
	c.ZB.Encode(w)
}

// batchCount checks that n elements of elemSize bytes can still be read.
// Counts here come from the proof's batch sizes, not from a prefix.
func batchCount(r *codec.Reader, n uint64, elemSize int) (int, error) {
	if n > uint64(r.Remaining()/elemSize) {
		return 0, fmt.Errorf(
			"%w: %d elements claimed by batch sizes, %d bytes remain",
			codec.ErrTruncated,
			n,
			r.Remaining(),
		)
	}
	return int(n), nil
}

func sumBatchSizes(batchSizes []uint64) (uint64, error) {
	var total uint64
	for _, n := range batchSizes {
		if n > math.MaxUint64-total {
			return 0, fmt.Errorf("%w: batch sizes overflow", codec.ErrLengthOverflow)
		}
		total += n
	}
	return total, nil
}

// Commitments are the prover's round commitments. Their counts are implied
// by the enclosing proof's batch sizes, so nothing here is length prefixed.
type Commitments struct {
	WitnessCommitments []WitnessCommitments
	MaskPoly           codec.Option[KZGCommitment]
	G1                 KZGCommitment
	H1                 KZGCommitment
	GACommitments      []KZGCommitment
	GBCommitments      []KZGCommitment
	GCCommitments      []KZGCommitment
	H2                 KZGCommitment
}

// DecodeCommitments reads one witness commitment per instance across all
// batches and one g_a, g_b and g_c commitment per batch.
func DecodeCommitments(r *codec.Reader, batchSizes []uint64) (Commitments, error) {
	var ret Commitments
	total, err := sumBatchSizes(batchSizes)
	if err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	n, err := batchCount(r, total, witnessCommitmentsSize)
	if err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	if ret.WitnessCommitments, err = codec.DecodeN(r, n, DecodeWitnessCommitments); err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	if ret.MaskPoly, err = codec.DecodeOption(r, DecodeKZGCommitment); err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	if ret.G1, err = DecodeKZGCommitment(r); err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	if ret.H1, err = DecodeKZGCommitment(r); err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	for _, dst := range []*[]KZGCommitment{
		&ret.GACommitments,
		&ret.GBCommitments,
		&ret.GCCommitments,
	} {
		if *dst, err = codec.DecodeN(r, len(batchSizes), DecodeKZGCommitment); err != nil {
			return Commitments{}, fmt.Errorf("decode commitments: %w", err)
		}
	}
	if ret.H2, err = DecodeKZGCommitment(r); err != nil {
		return Commitments{}, fmt.Errorf("decode commitments: %w", err)
	}
	return ret, nil
}

func (c Commitments) Encode(w *codec.Writer) {
	codec.EncodeN(w, c.WitnessCommitments, codec.Encode[WitnessCommitments])
	codec.EncodeOption(w, c.MaskPoly, codec.Encode[KZGCommitment])
	c.G1.Encode(w)
	c.H1.Encode(w)
	codec.EncodeN(w, c.GACommitments, codec.Encode[KZGCommitment])
	codec.EncodeN(w, c.GBCommitments, codec.Encode[KZGCommitment])
	codec.EncodeN(w, c.GCCommitments, codec.Encode[KZGCommitment])
	c.H2.Encode(w)
}

func (c Commitments) check(batchSizes []uint64) error {
	total, err := sumBatchSizes(batchSizes)
	if err != nil {
		return err
	}
	if uint64(len(c.WitnessCommitments)) != total {
		return fmt.Errorf(
			"%w: %d witness commitments for %d instances",
			codec.ErrLengthMismatch,
			len(c.WitnessCommitments),
			total,
		)
	}
	for _, v := range [][]KZGCommitment{c.GACommitments, c.GBCommitments, c.GCCommitments} {
		if len(v) != len(batchSizes) {
			return fmt.Errorf(
				"%w: %d matrix commitments for %d batches",
				codec.ErrLengthMismatch,
				len(v),
				len(batchSizes),
			)
		}
	}
	return nil
}

// Evaluations are the prover's claimed evaluations. z_b evaluations are
// grouped per batch.
type Evaluations struct {
	ZBEvals [][]primitive.Field
	G1Eval  primitive.Field
	GAEvals []primitive.Field
	GBEvals []primitive.Field
	GCEvals []primitive.Field
}

func DecodeEvaluations(r *codec.Reader, batchSizes []uint64) (Evaluations, error) {
	ret := Evaluations{
		ZBEvals: make([][]primitive.Field, 0, len(batchSizes)),
	}
	for i, size := range batchSizes {
		n, err := batchCount(r, size, fieldSize)
		if err != nil {
			return Evaluations{}, fmt.Errorf("decode evaluations: batch %d: %w", i, err)
		}
		batch, err := codec.DecodeN(r, n, primitive.DecodeField)
		if err != nil {
			return Evaluations{}, fmt.Errorf("decode evaluations: batch %d: %w", i, err)
		}
		ret.ZBEvals = append(ret.ZBEvals, batch)
	}
	var err error
	if ret.G1Eval, err = primitive.DecodeField(r); err != nil {
		return Evaluations{}, fmt.Errorf("decode evaluations: %w", err)
	}
	for _, dst := range []*[]primitive.Field{&ret.GAEvals, &ret.GBEvals, &ret.GCEvals} {
		if *dst, err = codec.DecodeN(r, len(batchSizes), primitive.DecodeField); err != nil {
			return Evaluations{}, fmt.Errorf("decode evaluations: %w", err)
		}
	}
	return ret, nil
}

func (e Evaluations) Encode(w *codec.Writer) {
	for _, batch := range e.ZBEvals {
		codec.EncodeN(w, batch, codec.Encode[primitive.Field])
	}
	e.G1Eval.Encode(w)
	codec.EncodeN(w, e.GAEvals, codec.Encode[primitive.Field])
	codec.EncodeN(w, e.GBEvals, codec.Encode[primitive.Field])
	codec.EncodeN(w, e.GCEvals, codec.Encode[primitive.Field])
}

func (e Evaluations) check(batchSizes []uint64) error {
	if len(e.ZBEvals) != len(batchSizes) {
		return fmt.Errorf(
			"%w: %d z_b evaluation batches for %d batches",
			codec.ErrLengthMismatch,
			len(e.ZBEvals),
			len(batchSizes),
		)
	}
	for i, batch := range e.ZBEvals {
		if uint64(len(batch)) != batchSizes[i] {
			return fmt.Errorf(
				"%w: batch %d has %d z_b evaluations, want %d",
				codec.ErrLengthMismatch,
				i,
				len(batch),
				batchSizes[i],
			)
		}
	}
	for _, v := range [][]primitive.Field{e.GAEvals, e.GBEvals, e.GCEvals} {
		if len(v) != len(batchSizes) {
			return fmt.Errorf(
				"%w: %d matrix evaluations for %d batches",
				codec.ErrLengthMismatch,
				len(v),
				len(batchSizes),
			)
		}
	}
	return nil
}

type MatrixSums struct {
	SumA primitive.Field
	SumB primitive.Field
	SumC primitive.Field
}

func DecodeMatrixSums(r *codec.Reader) (MatrixSums, error) {
	var ret MatrixSums
	var err error
	if ret.SumA, err = primitive.DecodeField(r); err != nil {
		return MatrixSums{}, err
	}
	if ret.SumB, err = primitive.DecodeField(r); err != nil {
		return MatrixSums{}, err
	}
	if ret.SumC, err = primitive.DecodeField(r); err != nil {
		return MatrixSums{}, err
	}
	return ret, nil
}

func (s MatrixSums) Encode(w *codec.Writer) {
	s.SumA.Encode(w)
	s.SumB.Encode(w)
	s.SumC.Encode(w)
}

type ThirdMessage struct {
	Sums []MatrixSums
}

func DecodeThirdMessage(r *codec.Reader) (ThirdMessage, error) {
	sums, err := codec.DecodeVec(r, codec.U64, DecodeMatrixSums)
	if err != nil {
		return ThirdMessage{}, fmt.Errorf("decode third message: %w", err)
	}
	return ThirdMessage{Sums: sums}, nil
}

func (m ThirdMessage) Encode(w *codec.Writer) {
	codec.EncodeVec(w, codec.U64, m.Sums, codec.Encode[MatrixSums])
}

// Proof is a batched zkSNARK proof. BatchSizes drives how many commitments
// and evaluations follow.
type Proof struct {
	BatchSizes  []uint64
	Commitments Commitments
	Evaluations Evaluations
	Msg         ThirdMessage
	PCProof     BatchLCProof
}

func DecodeProof(r *codec.Reader) (Proof, error) {
	if err := codec.CheckVersion(r, "Proof", ProofVersion); err != nil {
		return Proof{}, err
	}
	var ret Proof
	var err error
	if ret.BatchSizes, err = codec.DecodeVec(r, codec.U64, (*codec.Reader).ReadUint64); err != nil {
		return Proof{}, fmt.Errorf("decode proof: batch sizes: %w", err)
	}
	if ret.Commitments, err = DecodeCommitments(r, ret.BatchSizes); err != nil {
		return Proof{}, fmt.Errorf("decode proof: %w", err)
	}
	if ret.Evaluations, err = DecodeEvaluations(r, ret.BatchSizes); err != nil {
		return Proof{}, fmt.Errorf("decode proof: %w", err)
	}
	if ret.Msg, err = DecodeThirdMessage(r); err != nil {
		return Proof{}, fmt.Errorf("decode proof: %w", err)
	}
	if ret.PCProof, err = DecodeBatchLCProof(r); err != nil {
		return Proof{}, fmt.Errorf("decode proof: %w", err)
	}
	return ret, nil
}

func (p Proof) Encode(w *codec.Writer) {
	if err := p.Commitments.check(p.BatchSizes); err != nil {
		w.Fail(fmt.Errorf("encode proof: %w", err))
		return
	}
	if err := p.Evaluations.check(p.BatchSizes); err != nil {
		w.Fail(fmt.Errorf("encode proof: %w", err))
		return
	}
	w.WriteUint8(ProofVersion)
	codec.EncodeVec(w, codec.U64, p.BatchSizes, (*codec.Writer).WriteUint64)
	p.Commitments.Encode(w)
	p.Evaluations.Encode(w)
	p.Msg.Encode(w)
	p.PCProof.Encode(w)
}

func (p Proof) String() string {
	return bech32String(ProofPrefix, p)
}

// ParseProof decodes a "proof1..." string.
func ParseProof(s string) (Proof, error) {
	return parseBech32(ProofPrefix, s, DecodeProof)
}
