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

const (
	VerifyingKeyVersion = 1
	CertificateVersion  = 1
)

// CircuitInfo describes the shape of a compiled circuit.
type CircuitInfo struct {
	NumPublicInputs uint64
	NumVariables    uint64
	NumConstraints  uint64
	NumNonZeroA     uint64
	NumNonZeroB     uint64
	NumNonZeroC     uint64
}

func DecodeCircuitInfo(r *codec.Reader) (CircuitInfo, error) {
	var ret CircuitInfo
	for _, dst := range []*uint64{
		&ret.NumPublicInputs,
		&ret.NumVariables,
		&ret.NumConstraints,
		&ret.NumNonZeroA,
		&ret.NumNonZeroB,
		&ret.NumNonZeroC,
	} {
		v, err := r.ReadUint64()
		if err != nil {
			return CircuitInfo{}, fmt.Errorf("decode circuit info: %w", err)
		}
		*dst = v
	}
	return ret, nil
}

func (c CircuitInfo) Encode(w *codec.Writer) {
	w.WriteUint64(c.NumPublicInputs)
	w.WriteUint64(c.NumVariables)
	w.WriteUint64(c.NumConstraints)
	w.WriteUint64(c.NumNonZeroA)
	w.WriteUint64(c.NumNonZeroB)
	w.WriteUint64(c.NumNonZeroC)
}

// KZGCommitment is a polynomial commitment, a compressed G1 point.
type KZGCommitment struct {
	Element primitive.G1Affine
}

func DecodeKZGCommitment(r *codec.Reader) (KZGCommitment, error) {
	p, err := primitive.DecodeG1Affine(r)
	return KZGCommitment{Element: p}, err
}

func (c KZGCommitment) Encode(w *codec.Writer) {
	c.Element.Encode(w)
}

type KZGVerifierKey struct {
	G      primitive.G1Affine
	GammaG primitive.G1Affine
	H      primitive.G2Affine
	BetaH  primitive.G2Affine
}

func DecodeKZGVerifierKey(r *codec.Reader) (KZGVerifierKey, error) {
	var ret KZGVerifierKey
	var err error
	if ret.G, err = primitive.DecodeG1Affine(r); err != nil {
		return KZGVerifierKey{}, err
	}
	if ret.GammaG, err = primitive.DecodeG1Affine(r); err != nil {
		return KZGVerifierKey{}, err
	}
	if ret.H, err = primitive.DecodeG2Affine(r); err != nil {
		return KZGVerifierKey{}, err
	}
	if ret.BetaH, err = primitive.DecodeG2Affine(r); err != nil {
		return KZGVerifierKey{}, err
	}
	return ret, nil
}

func (k KZGVerifierKey) Encode(w *codec.Writer) {
	k.G.Encode(w)
	k.GammaG.Encode(w)
	k.H.Encode(w)
	k.BetaH.Encode(w)
}

type DegreeBoundPower struct {
	DegreeBound uint64
	NegPowerOfH primitive.G2Affine
}

func decodeDegreeBoundPower(r *codec.Reader) (DegreeBoundPower, error) {
	bound, err := r.ReadUint64()
	if err != nil {
		return DegreeBoundPower{}, err
	}
	p, err := primitive.DecodeG2Affine(r)
	if err != nil {
		return DegreeBoundPower{}, err
	}
	return DegreeBoundPower{DegreeBound: bound, NegPowerOfH: p}, nil
}

func encodeDegreeBoundPower(w *codec.Writer, p DegreeBoundPower) {
	w.WriteUint64(p.DegreeBound)
	p.NegPowerOfH.Encode(w)
}

type SonicVerifierKey struct {
	VK                          KZGVerifierKey
	DegreeBoundsAndNegPowersOfH codec.Option[[]DegreeBoundPower]
	SupportedDegree             uint64
	MaxDegree                   uint64
}

func DecodeSonicVerifierKey(r *codec.Reader) (SonicVerifierKey, error) {
	vk, err := DecodeKZGVerifierKey(r)
	if err != nil {
		return SonicVerifierKey{}, fmt.Errorf("decode verifier key: %w", err)
	}
	powers, err := codec.DecodeOption(r, func(r *codec.Reader) ([]DegreeBoundPower, error) {
		return codec.DecodeVec(r, codec.U64, decodeDegreeBoundPower)
	})
	if err != nil {
		return SonicVerifierKey{}, fmt.Errorf("decode verifier key: %w", err)
	}
	supported, err := r.ReadUint64()
	if err != nil {
		return SonicVerifierKey{}, fmt.Errorf("decode verifier key: %w", err)
	}
	maxDegree, err := r.ReadUint64()
	if err != nil {
		return SonicVerifierKey{}, fmt.Errorf("decode verifier key: %w", err)
	}
	return SonicVerifierKey{
		VK:                          vk,
		DegreeBoundsAndNegPowersOfH: powers,
		SupportedDegree:             supported,
		MaxDegree:                   maxDegree,
	}, nil
}

func (k SonicVerifierKey) Encode(w *codec.Writer) {
	k.VK.Encode(w)
	codec.EncodeOption(w, k.DegreeBoundsAndNegPowersOfH, func(w *codec.Writer, v []DegreeBoundPower) {
		codec.EncodeVec(w, codec.U64, v, encodeDegreeBoundPower)
	})
	w.WriteUint64(k.SupportedDegree)
	w.WriteUint64(k.MaxDegree)
}

// VerifyingKey is a circuit verifying key as published in a deployment.
type VerifyingKey struct {
	CircuitInfo        CircuitInfo
	CircuitCommitments []KZGCommitment
	VerifierKey        SonicVerifierKey
	ID                 [32]byte
}

func DecodeVerifyingKey(r *codec.Reader) (VerifyingKey, error) {
	if err := codec.CheckVersion(r, "VerifyingKey", VerifyingKeyVersion); err != nil {
		return VerifyingKey{}, err
	}
	var ret VerifyingKey
	var err error
	if ret.CircuitInfo, err = DecodeCircuitInfo(r); err != nil {
		return VerifyingKey{}, fmt.Errorf("decode verifying key: %w", err)
	}
	if ret.CircuitCommitments, err = codec.DecodeVec(r, codec.U64, DecodeKZGCommitment); err != nil {
		return VerifyingKey{}, fmt.Errorf("decode verifying key: %w", err)
	}
	if ret.VerifierKey, err = DecodeSonicVerifierKey(r); err != nil {
		return VerifyingKey{}, fmt.Errorf("decode verifying key: %w", err)
	}
	if err := r.ReadInto(ret.ID[:]); err != nil {
		return VerifyingKey{}, fmt.Errorf("decode verifying key: %w", err)
	}
	return ret, nil
}

func (k VerifyingKey) Encode(w *codec.Writer) {
	w.WriteUint8(VerifyingKeyVersion)
	k.CircuitInfo.Encode(w)
	codec.EncodeVec(w, codec.U64, k.CircuitCommitments, codec.Encode[KZGCommitment])
	k.VerifierKey.Encode(w)
	w.WriteBytes(k.ID[:])
}

// KZGProof is an opening proof. It also serves as the puzzle proof of a
// coinbase solution.
type KZGProof struct {
	W       primitive.G1Affine
	RandomV codec.Option[primitive.Field]
}

func DecodeKZGProof(r *codec.Reader) (KZGProof, error) {
	p, err := primitive.DecodeG1Affine(r)
	if err != nil {
		return KZGProof{}, fmt.Errorf("decode kzg proof: %w", err)
	}
	v, err := codec.DecodeOption(r, primitive.DecodeField)
	if err != nil {
		return KZGProof{}, fmt.Errorf("decode kzg proof: %w", err)
	}
	return KZGProof{W: p, RandomV: v}, nil
}

func (p KZGProof) Encode(w *codec.Writer) {
	p.W.Encode(w)
	codec.EncodeOption(w, p.RandomV, codec.Encode[primitive.Field])
}

type BatchProof struct {
	Proofs []KZGProof
}

func DecodeBatchProof(r *codec.Reader) (BatchProof, error) {
	proofs, err := codec.DecodeVec(r, codec.U64, DecodeKZGProof)
	if err != nil {
		return BatchProof{}, fmt.Errorf("decode batch proof: %w", err)
	}
	return BatchProof{Proofs: proofs}, nil
}

func (p BatchProof) Encode(w *codec.Writer) {
	codec.EncodeVec(w, codec.U64, p.Proofs, codec.Encode[KZGProof])
}

type BatchLCProof struct {
	Proof       BatchProof
	Evaluations codec.Option[[]primitive.Field]
}

func DecodeBatchLCProof(r *codec.Reader) (BatchLCProof, error) {
	proof, err := DecodeBatchProof(r)
	if err != nil {
		return BatchLCProof{}, err
	}
	evals, err := codec.DecodeOption(r, decodeFieldVec)
	if err != nil {
		return BatchLCProof{}, fmt.Errorf("decode batch lc proof: %w", err)
	}
	return BatchLCProof{Proof: proof, Evaluations: evals}, nil
}

func (p BatchLCProof) Encode(w *codec.Writer) {
	p.Proof.Encode(w)
	codec.EncodeOption(w, p.Evaluations, encodeFieldVec)
}

// Certificate proves a verifying key was derived from its program.
type Certificate struct {
	PCProof BatchLCProof
}

func DecodeCertificate(r *codec.Reader) (Certificate, error) {
	if err := codec.CheckVersion(r, "Certificate", CertificateVersion); err != nil {
		return Certificate{}, err
	}
	proof, err := DecodeBatchLCProof(r)
	if err != nil {
		return Certificate{}, fmt.Errorf("decode certificate: %w", err)
	}
	return Certificate{PCProof: proof}, nil
}

func (c Certificate) Encode(w *codec.Writer) {
	w.WriteUint8(CertificateVersion)
	c.PCProof.Encode(w)
}

func decodeFieldVec(r *codec.Reader) ([]primitive.Field, error) {
	return codec.DecodeVec(r, codec.U64, primitive.DecodeField)
}

func encodeFieldVec(w *codec.Writer, v []primitive.Field) {
	codec.EncodeVec(w, codec.U64, v, codec.Encode[primitive.Field])
}
