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

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
)

// EpochBlocks is the number of blocks per puzzle epoch.
const EpochBlocks = 256

// EvaluationDomain is a multiplicative subgroup used for FFTs.
type EvaluationDomain struct {
	Size               uint64
	LogSizeOfGroup     uint32
	SizeAsFieldElement primitive.Field
	SizeInv            primitive.Field
	GroupGen           primitive.Field
	GroupGenInv        primitive.Field
	GeneratorInv       primitive.Field
}

func DecodeEvaluationDomain(r *codec.Reader) (EvaluationDomain, error) {
	var ret EvaluationDomain
	var err error
	if ret.Size, err = r.ReadUint64(); err != nil {
		return EvaluationDomain{}, fmt.Errorf("decode evaluation domain: %w", err)
	}
	if ret.LogSizeOfGroup, err = r.ReadUint32(); err != nil {
		return EvaluationDomain{}, fmt.Errorf("decode evaluation domain: %w", err)
	}
	for _, dst := range []*primitive.Field{
		&ret.SizeAsFieldElement,
		&ret.SizeInv,
		&ret.GroupGen,
		&ret.GroupGenInv,
		&ret.GeneratorInv,
	} {
		if *dst, err = primitive.DecodeField(r); err != nil {
			return EvaluationDomain{}, fmt.Errorf("decode evaluation domain: %w", err)
		}
	}
	return ret, nil
}

func (d EvaluationDomain) Encode(w *codec.Writer) {
	w.WriteUint64(d.Size)
	w.WriteUint32(d.LogSizeOfGroup)
	d.SizeAsFieldElement.Encode(w)
	d.SizeInv.Encode(w)
	d.GroupGen.Encode(w)
	d.GroupGenInv.Encode(w)
	d.GeneratorInv.Encode(w)
}

type EvaluationsOnDomain struct {
	Evaluations []primitive.Field
	Domain      EvaluationDomain
}

func DecodeEvaluationsOnDomain(r *codec.Reader) (EvaluationsOnDomain, error) {
	evals, err := decodeFieldVec(r)
	if err != nil {
		return EvaluationsOnDomain{}, fmt.Errorf("decode evaluations on domain: %w", err)
	}
	domain, err := DecodeEvaluationDomain(r)
	if err != nil {
		return EvaluationsOnDomain{}, err
	}
	return EvaluationsOnDomain{Evaluations: evals, Domain: domain}, nil
}

func (e EvaluationsOnDomain) Encode(w *codec.Writer) {
	encodeFieldVec(w, e.Evaluations)
	e.Domain.Encode(w)
}

// EpochChallenge is the puzzle challenge provers answer during an epoch.
type EpochChallenge struct {
	EpochNumber                uint32
	EpochBlockHash             primitive.BlockHash
	EpochPolynomial            []primitive.Field
	EpochPolynomialEvaluations EvaluationsOnDomain
}

func DecodeEpochChallenge(r *codec.Reader) (EpochChallenge, error) {
	var ret EpochChallenge
	var err error
	if ret.EpochNumber, err = r.ReadUint32(); err != nil {
		return EpochChallenge{}, fmt.Errorf("decode epoch challenge: %w", err)
	}
	if ret.EpochBlockHash, err = primitive.DecodeBlockHash(r); err != nil {
		return EpochChallenge{}, fmt.Errorf("decode epoch challenge: %w", err)
	}
	if ret.EpochPolynomial, err = decodeFieldVec(r); err != nil {
		return EpochChallenge{}, fmt.Errorf("decode epoch challenge: %w", err)
	}
	if ret.EpochPolynomialEvaluations, err = DecodeEvaluationsOnDomain(r); err != nil {
		return EpochChallenge{}, fmt.Errorf("decode epoch challenge: %w", err)
	}
	return ret, nil
}

func (c EpochChallenge) Encode(w *codec.Writer) {
	w.WriteUint32(c.EpochNumber)
	c.EpochBlockHash.Encode(w)
	encodeFieldVec(w, c.EpochPolynomial)
	c.EpochPolynomialEvaluations.Encode(w)
}
