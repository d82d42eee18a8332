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
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/blinklabs-io/aleoledger/program"
)

func field(n uint64) primitive.Field {
	return primitive.FieldFromUint64(n)
}

func g1(b byte) primitive.G1Affine {
	var ret primitive.G1Affine
	for i := range ret {
		ret[i] = b
	}
	return ret
}

func g2(b byte) primitive.G2Affine {
	var ret primitive.G2Affine
	for i := range ret {
		ret[i] = b
	}
	return ret
}

func kzg(b byte) KZGCommitment {
	return KZGCommitment{Element: g1(b)}
}

func u8Plaintext(v uint8) Plaintext {
	return NewLiteralPlaintext(program.U8(v))
}

func boolPlaintext(v bool) Plaintext {
	return NewLiteralPlaintext(program.BooleanLiteral{Boolean: primitive.Boolean(v)})
}

// nestedPlaintext is {a: 1u8, b: {c: true}}.
func nestedPlaintext() StructPlaintext {
	return StructPlaintext{Members: []PlaintextMember{
		{Name: "a", Value: u8Plaintext(1)},
		{Name: "b", Value: StructPlaintext{Members: []PlaintextMember{
			{Name: "c", Value: boolPlaintext(true)},
		}}},
	}}
}

func sampleCiphertext() Ciphertext {
	return Ciphertext{Fields: []primitive.Field{field(1), field(2), field(3)}}
}

func samplePlaintextRecord() Record[Plaintext] {
	return Record[Plaintext]{
		Owner: PrivateOwner[Plaintext]{Owner: NewLiteralPlaintext(
			program.AddressLiteral{Address: primitive.Address{7}},
		)},
		Data: []RecordMember[Plaintext]{
			{Name: "amount", Entry: PrivateEntry[Plaintext]{Value: NewLiteralPlaintext(program.U64(100))}},
			{Name: "origin", Entry: PublicEntry[Plaintext]{Plaintext: nestedPlaintext()}},
			{Name: "kind", Entry: ConstantEntry[Plaintext]{Plaintext: u8Plaintext(3)}},
		},
		Nonce: primitive.Group{9},
	}
}

func sampleCiphertextRecord() Record[Ciphertext] {
	return Record[Ciphertext]{
		Owner: PublicOwner[Ciphertext]{Address: primitive.Address{7}},
		Data: []RecordMember[Ciphertext]{
			{Name: "amount", Entry: PrivateEntry[Ciphertext]{Value: sampleCiphertext()}},
			{Name: "kind", Entry: ConstantEntry[Ciphertext]{Plaintext: u8Plaintext(3)}},
		},
		Nonce: primitive.Group{9},
	}
}

func sampleProof(batchSizes ...uint64) Proof {
	var total uint64
	for _, n := range batchSizes {
		total += n
	}
	p := Proof{
		BatchSizes: batchSizes,
		Commitments: Commitments{
			MaskPoly: codec.Some(kzg(4)),
			G1:       kzg(5),
			H1:       kzg(6),
			H2:       kzg(7),
		},
		Evaluations: Evaluations{G1Eval: field(8)},
		Msg: ThirdMessage{Sums: []MatrixSums{
			{SumA: field(1), SumB: field(2), SumC: field(3)},
		}},
		PCProof: BatchLCProof{
			Proof: BatchProof{Proofs: []KZGProof{
				{W: g1(9), RandomV: codec.Some(field(10))},
				{W: g1(11)},
			}},
			Evaluations: codec.Some([]primitive.Field{field(12)}),
		},
	}
	for i := range total {
		p.Commitments.WitnessCommitments = append(
			p.Commitments.WitnessCommitments,
			WitnessCommitments{W: kzg(byte(i)), ZA: kzg(byte(i) + 1), ZB: kzg(byte(i) + 2)},
		)
	}
	for i, n := range batchSizes {
		var batch []primitive.Field
		for j := range n {
			batch = append(batch, field(uint64(i)*100+j))
		}
		p.Evaluations.ZBEvals = append(p.Evaluations.ZBEvals, batch)
		p.Commitments.GACommitments = append(p.Commitments.GACommitments, kzg(0xa0))
		p.Commitments.GBCommitments = append(p.Commitments.GBCommitments, kzg(0xb0))
		p.Commitments.GCCommitments = append(p.Commitments.GCCommitments, kzg(0xc0))
		p.Evaluations.GAEvals = append(p.Evaluations.GAEvals, field(0xa0))
		p.Evaluations.GBEvals = append(p.Evaluations.GBEvals, field(0xb0))
		p.Evaluations.GCEvals = append(p.Evaluations.GCEvals, field(0xc0))
	}
	return p
}

func sampleTransition() Transition {
	return Transition{
		ID:           primitive.TransitionID(field(42)),
		ProgramID:    program.ProgramID{Name: "token", Network: "aleo"},
		FunctionName: "transfer",
		Inputs: []TransitionInput{
			ConstantTransitionInput{PlaintextHash: field(1), Plaintext: codec.Some(u8Plaintext(1))},
			PublicTransitionInput{PlaintextHash: field(2)},
			PrivateTransitionInput{CiphertextHash: field(3), Ciphertext: codec.Some(sampleCiphertext())},
			RecordTransitionInput{SerialNumber: field(4), Tag: field(5)},
			ExternalRecordTransitionInput{InputCommitment: field(6)},
		},
		Outputs: []TransitionOutput{
			ConstantTransitionOutput{PlaintextHash: field(7)},
			PublicTransitionOutput{PlaintextHash: field(8), Plaintext: codec.Some[Plaintext](nestedPlaintext())},
			PrivateTransitionOutput{CiphertextHash: field(9)},
			RecordTransitionOutput{
				Commitment:       field(10),
				Checksum:         field(11),
				RecordCiphertext: codec.Some(sampleCiphertextRecord()),
			},
			ExternalRecordTransitionOutput{Commitment: field(12)},
		},
		Finalize: codec.Some([]Value{
			PlaintextValue{Plaintext: u8Plaintext(5)},
			RecordValue{Record: samplePlaintextRecord()},
		}),
		Proof: sampleProof(1),
		TPK:   primitive.Group{1},
		TCM:   field(13),
	}
}

func sampleSignature() Signature {
	return Signature{
		Challenge: primitive.Scalar{1},
		Response:  primitive.Scalar{2},
		ComputeKey: ComputeKey{
			PKSig: primitive.Group{3},
			PRSig: primitive.Group{4},
		},
	}
}

func sampleFee() Fee {
	return Fee{
		Transition:      sampleTransition(),
		GlobalStateRoot: primitive.StateRoot(field(99)),
	}
}

func sampleExecution() Execution {
	return Execution{
		Transitions:     []Transition{sampleTransition(), sampleTransition()},
		GlobalStateRoot: primitive.StateRoot(field(98)),
		InclusionProof:  codec.Some(sampleProof(2, 1)),
	}
}

func sampleVerifyingKey() VerifyingKey {
	return VerifyingKey{
		CircuitInfo:        CircuitInfo{1, 2, 3, 4, 5, 6},
		CircuitCommitments: []KZGCommitment{kzg(1), kzg(2)},
		VerifierKey: SonicVerifierKey{
			VK: KZGVerifierKey{G: g1(1), GammaG: g1(2), H: g2(3), BetaH: g2(4)},
			DegreeBoundsAndNegPowersOfH: codec.Some([]DegreeBoundPower{
				{DegreeBound: 16, NegPowerOfH: g2(5)},
			}),
			SupportedDegree: 1 << 10,
			MaxDegree:       1 << 12,
		},
		ID: [32]byte{0xaa},
	}
}

func sampleDeployment(t *testing.T) Deployment {
	return Deployment{
		Edition: 1,
		Program: testutil.HelloWorldProgram(t, "main"),
		VerifyingKeys: []DeployedKey{{
			Function:     "main",
			VerifyingKey: sampleVerifyingKey(),
			Certificate: Certificate{PCProof: BatchLCProof{
				Proof: BatchProof{Proofs: []KZGProof{{W: g1(3)}}},
			}},
		}},
	}
}

func sampleDeployTransaction(t *testing.T) DeployTransaction {
	return DeployTransaction{
		ID:         primitive.TransactionID(field(1)),
		Owner:      ProgramOwner{Address: primitive.Address{5}, Signature: sampleSignature()},
		Deployment: sampleDeployment(t),
		Fee:        sampleFee(),
	}
}

func sampleExecuteTransaction() ExecuteTransaction {
	return ExecuteTransaction{
		ID:            primitive.TransactionID(field(2)),
		Execution:     sampleExecution(),
		AdditionalFee: codec.Some(sampleFee()),
	}
}

func sampleBlock(t *testing.T, height uint32, coinbase bool) Block {
	b := Block{
		Hash:         primitive.BlockHash(field(1000)),
		PreviousHash: primitive.BlockHash(field(999)),
		Header: BlockHeader{
			PreviousStateRoot:        field(1),
			TransactionsRoot:         field(2),
			FinalizeRoot:             field(3),
			CoinbaseAccumulatorPoint: field(4),
			Metadata: BlockHeaderMetadata{
				Network:                   3,
				Round:                     uint64(height) * 2,
				Height:                    height,
				TotalSupplyInMicrocredits: 1_500_000_000_000_000,
				CumulativeWeight:          codec.Uint128{Lo: 1, Hi: 2},
				CoinbaseTarget:            1 << 30,
				ProofTarget:               1 << 28,
				LastCoinbaseTarget:        1 << 30,
				LastCoinbaseTimestamp:     1_700_000_000,
				Timestamp:                 1_700_000_040,
			},
		},
		Transactions: Transactions{Transactions: []ConfirmedTransaction{
			AcceptedDeploy{
				TxIndex:     0,
				Transaction: sampleDeployTransaction(t),
				Finalize:    []FinalizeOperation{InitializeMapping{MappingID: field(1)}},
			},
			AcceptedExecute{
				TxIndex:     1,
				Transaction: sampleExecuteTransaction(),
				Finalize: []FinalizeOperation{
					InsertKeyValue{MappingID: field(1), KeyID: field(2), ValueID: field(3)},
					UpdateKeyValue{MappingID: field(1), Index: 7, KeyID: field(2), ValueID: field(4)},
				},
			},
			RejectedExecute{
				TxIndex:     2,
				Transaction: FeeTransaction{ID: primitive.TransactionID(field(3)), Fee: sampleFee()},
				Rejected:    sampleExecution(),
			},
		}},
		Signature: sampleSignature(),
	}
	if coinbase {
		b.Coinbase = codec.Some(CoinbaseSolution{
			PartialSolutions: []PartialSolution{{
				Address:    primitive.Address{1},
				Nonce:      12345,
				Commitment: PuzzleCommitment{Commitment: kzg(1)},
			}},
			Proof: KZGProof{W: g1(2)},
		})
	}
	return b
}
