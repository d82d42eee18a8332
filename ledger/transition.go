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
	"github.com/blinklabs-io/aleoledger/program"
)

const TransitionVersion = 1

// TransitionTag is shared by transition inputs and outputs.
type TransitionTag uint8

const (
	TransitionConstant TransitionTag = iota
	TransitionPublic
	TransitionPrivate
	TransitionRecord
	TransitionExternalRecord
)

// TransitionInput is one input of a transition.
type TransitionInput interface {
	codec.Encoder
	Type() TransitionTag
	isTransitionInput()
}

type ConstantTransitionInput struct {
	PlaintextHash primitive.Field
	Plaintext     codec.Option[Plaintext]
}

type PublicTransitionInput struct {
	PlaintextHash primitive.Field
	Plaintext     codec.Option[Plaintext]
}

type PrivateTransitionInput struct {
	CiphertextHash primitive.Field
	Ciphertext     codec.Option[Ciphertext]
}

type RecordTransitionInput struct {
	SerialNumber primitive.Field
	Tag          primitive.Field
}

type ExternalRecordTransitionInput struct {
	InputCommitment primitive.Field
}

func (ConstantTransitionInput) Type() TransitionTag       { return TransitionConstant }
func (PublicTransitionInput) Type() TransitionTag         { return TransitionPublic }
func (PrivateTransitionInput) Type() TransitionTag        { return TransitionPrivate }
func (RecordTransitionInput) Type() TransitionTag         { return TransitionRecord }
func (ExternalRecordTransitionInput) Type() TransitionTag { return TransitionExternalRecord }

func (ConstantTransitionInput) isTransitionInput()       {}
func (PublicTransitionInput) isTransitionInput()         {}
func (PrivateTransitionInput) isTransitionInput()        {}
func (RecordTransitionInput) isTransitionInput()         {}
func (ExternalRecordTransitionInput) isTransitionInput() {}

func (in ConstantTransitionInput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionConstant))
	in.PlaintextHash.Encode(w)
	codec.EncodeOption(w, in.Plaintext, codec.Encode[Plaintext])
}

func (in PublicTransitionInput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionPublic))
	in.PlaintextHash.Encode(w)
	codec.EncodeOption(w, in.Plaintext, codec.Encode[Plaintext])
}

func (in PrivateTransitionInput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionPrivate))
	in.CiphertextHash.Encode(w)
	codec.EncodeOption(w, in.Ciphertext, codec.Encode[Ciphertext])
}

func (in RecordTransitionInput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionRecord))
	in.SerialNumber.Encode(w)
	in.Tag.Encode(w)
}

func (in ExternalRecordTransitionInput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionExternalRecord))
	in.InputCommitment.Encode(w)
}

func decodeHashedPlaintext(r *codec.Reader) (primitive.Field, codec.Option[Plaintext], error) {
	hash, err := primitive.DecodeField(r)
	if err != nil {
		return hash, codec.Option[Plaintext]{}, err
	}
	pt, err := codec.DecodeOption(r, DecodePlaintext)
	return hash, pt, err
}

func decodeHashedCiphertext(r *codec.Reader) (primitive.Field, codec.Option[Ciphertext], error) {
	hash, err := primitive.DecodeField(r)
	if err != nil {
		return hash, codec.Option[Ciphertext]{}, err
	}
	ct, err := codec.DecodeOption(r, DecodeCiphertext)
	return hash, ct, err
}

func DecodeTransitionInput(r *codec.Reader) (TransitionInput, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode transition input: %w", err)
	}
	switch TransitionTag(tag) {
	case TransitionConstant:
		hash, pt, err := decodeHashedPlaintext(r)
		if err != nil {
			return nil, fmt.Errorf("decode constant input: %w", err)
		}
		return ConstantTransitionInput{PlaintextHash: hash, Plaintext: pt}, nil
	case TransitionPublic:
		hash, pt, err := decodeHashedPlaintext(r)
		if err != nil {
			return nil, fmt.Errorf("decode public input: %w", err)
		}
		return PublicTransitionInput{PlaintextHash: hash, Plaintext: pt}, nil
	case TransitionPrivate:
		hash, ct, err := decodeHashedCiphertext(r)
		if err != nil {
			return nil, fmt.Errorf("decode private input: %w", err)
		}
		return PrivateTransitionInput{CiphertextHash: hash, Ciphertext: ct}, nil
	case TransitionRecord:
		sn, err := primitive.DecodeField(r)
		if err != nil {
			return nil, fmt.Errorf("decode record input: %w", err)
		}
		tagField, err := primitive.DecodeField(r)
		if err != nil {
			return nil, fmt.Errorf("decode record input: %w", err)
		}
		return RecordTransitionInput{SerialNumber: sn, Tag: tagField}, nil
	case TransitionExternalRecord:
		commitment, err := primitive.DecodeField(r)
		if err != nil {
			return nil, fmt.Errorf("decode external record input: %w", err)
		}
		return ExternalRecordTransitionInput{InputCommitment: commitment}, nil
	}
	return nil, &codec.VariantError{Family: "TransitionInput", Tag: uint64(tag)}
}

// TransitionOutput is one output of a transition.
type TransitionOutput interface {
	codec.Encoder
	Type() TransitionTag
	isTransitionOutput()
}

type ConstantTransitionOutput struct {
	PlaintextHash primitive.Field
	Plaintext     codec.Option[Plaintext]
}

type PublicTransitionOutput struct {
	PlaintextHash primitive.Field
	Plaintext     codec.Option[Plaintext]
}

type PrivateTransitionOutput struct {
	CiphertextHash primitive.Field
	Ciphertext     codec.Option[Ciphertext]
}

type RecordTransitionOutput struct {
	Commitment       primitive.Field
	Checksum         primitive.Field
	RecordCiphertext codec.Option[Record[Ciphertext]]
}

type ExternalRecordTransitionOutput struct {
	Commitment primitive.Field
}

func (ConstantTransitionOutput) Type() TransitionTag       { return TransitionConstant }
func (PublicTransitionOutput) Type() TransitionTag         { return TransitionPublic }
func (PrivateTransitionOutput) Type() TransitionTag        { return TransitionPrivate }
func (RecordTransitionOutput) Type() TransitionTag         { return TransitionRecord }
func (ExternalRecordTransitionOutput) Type() TransitionTag { return TransitionExternalRecord }

func (ConstantTransitionOutput) isTransitionOutput()       {}
func (PublicTransitionOutput) isTransitionOutput()         {}
func (PrivateTransitionOutput) isTransitionOutput()        {}
func (RecordTransitionOutput) isTransitionOutput()         {}
func (ExternalRecordTransitionOutput) isTransitionOutput() {}

func (out ConstantTransitionOutput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionConstant))
	out.PlaintextHash.Encode(w)
	codec.EncodeOption(w, out.Plaintext, codec.Encode[Plaintext])
}

func (out PublicTransitionOutput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionPublic))
	out.PlaintextHash.Encode(w)
	codec.EncodeOption(w, out.Plaintext, codec.Encode[Plaintext])
}

func (out PrivateTransitionOutput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionPrivate))
	out.CiphertextHash.Encode(w)
	codec.EncodeOption(w, out.Ciphertext, codec.Encode[Ciphertext])
}

func (out RecordTransitionOutput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionRecord))
	out.Commitment.Encode(w)
	out.Checksum.Encode(w)
	codec.EncodeOption(w, out.RecordCiphertext, codec.Encode[Record[Ciphertext]])
}

func (out ExternalRecordTransitionOutput) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(TransitionExternalRecord))
	out.Commitment.Encode(w)
}

func DecodeTransitionOutput(r *codec.Reader) (TransitionOutput, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode transition output: %w", err)
	}
	switch TransitionTag(tag) {
	case TransitionConstant:
		hash, pt, err := decodeHashedPlaintext(r)
		if err != nil {
			return nil, fmt.Errorf("decode constant output: %w", err)
		}
		return ConstantTransitionOutput{PlaintextHash: hash, Plaintext: pt}, nil
	case TransitionPublic:
		hash, pt, err := decodeHashedPlaintext(r)
		if err != nil {
			return nil, fmt.Errorf("decode public output: %w", err)
		}
		return PublicTransitionOutput{PlaintextHash: hash, Plaintext: pt}, nil
	case TransitionPrivate:
		hash, ct, err := decodeHashedCiphertext(r)
		if err != nil {
			return nil, fmt.Errorf("decode private output: %w", err)
		}
		return PrivateTransitionOutput{CiphertextHash: hash, Ciphertext: ct}, nil
	case TransitionRecord:
		var out RecordTransitionOutput
		if out.Commitment, err = primitive.DecodeField(r); err != nil {
			return nil, fmt.Errorf("decode record output: %w", err)
		}
		if out.Checksum, err = primitive.DecodeField(r); err != nil {
			return nil, fmt.Errorf("decode record output: %w", err)
		}
		if out.RecordCiphertext, err = codec.DecodeOption(r, DecodeRecord[Ciphertext]); err != nil {
			return nil, fmt.Errorf("decode record output: %w", err)
		}
		return out, nil
	case TransitionExternalRecord:
		commitment, err := primitive.DecodeField(r)
		if err != nil {
			return nil, fmt.Errorf("decode external record output: %w", err)
		}
		return ExternalRecordTransitionOutput{Commitment: commitment}, nil
	}
	return nil, &codec.VariantError{Family: "TransitionOutput", Tag: uint64(tag)}
}

// Transition is the execution of one function call.
type Transition struct {
	ID           primitive.TransitionID
	ProgramID    program.ProgramID
	FunctionName program.Identifier
	Inputs       []TransitionInput
	Outputs      []TransitionOutput
	Finalize     codec.Option[[]Value]
	Proof        Proof
	TPK          primitive.Group
	TCM          primitive.Field
}

func DecodeTransition(r *codec.Reader) (Transition, error) {
	if err := codec.CheckVersion(r, "Transition", TransitionVersion); err != nil {
		return Transition{}, err
	}
	var ret Transition
	var err error
	if ret.ID, err = primitive.DecodeTransitionID(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if ret.ProgramID, err = program.DecodeProgramID(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if ret.FunctionName, err = program.DecodeIdentifier(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if ret.Inputs, err = codec.DecodeVec(r, codec.U8, DecodeTransitionInput); err != nil {
		return Transition{}, fmt.Errorf("decode transition: inputs: %w", err)
	}
	if ret.Outputs, err = codec.DecodeVec(r, codec.U8, DecodeTransitionOutput); err != nil {
		return Transition{}, fmt.Errorf("decode transition: outputs: %w", err)
	}
	ret.Finalize, err = codec.DecodeOption(r, func(r *codec.Reader) ([]Value, error) {
		return codec.DecodeVec(r, codec.U8, DecodeValue)
	})
	if err != nil {
		return Transition{}, fmt.Errorf("decode transition: finalize: %w", err)
	}
	if ret.Proof, err = DecodeProof(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if ret.TPK, err = primitive.DecodeGroup(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if ret.TCM, err = primitive.DecodeField(r); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	return ret, nil
}

func (t Transition) Encode(w *codec.Writer) {
	w.WriteUint8(TransitionVersion)
	t.ID.Encode(w)
	t.ProgramID.Encode(w)
	t.FunctionName.Encode(w)
	codec.EncodeVec(w, codec.U8, t.Inputs, codec.Encode[TransitionInput])
	codec.EncodeVec(w, codec.U8, t.Outputs, codec.Encode[TransitionOutput])
	codec.EncodeOption(w, t.Finalize, func(w *codec.Writer, v []Value) {
		codec.EncodeVec(w, codec.U8, v, codec.Encode[Value])
	})
	t.Proof.Encode(w)
	t.TPK.Encode(w)
	t.TCM.Encode(w)
}
