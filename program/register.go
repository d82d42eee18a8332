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

package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/aleoledger/codec"
)

type RegisterTag uint8

const (
	RegisterLocator RegisterTag = iota
	RegisterMember
)

// Register is a numbered register, optionally followed by a struct member
// path (r0 or r0.owner.amount).
type Register interface {
	codec.Encoder
	fmt.Stringer
	Type() RegisterTag
	Index() uint64
	isRegister()
}

type LocatorRegister struct {
	Locator uint64
}

func (LocatorRegister) Type() RegisterTag { return RegisterLocator }
func (LocatorRegister) isRegister()       {}
func (r LocatorRegister) Index() uint64   { return r.Locator }

func (r LocatorRegister) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(RegisterLocator))
	w.WriteVarInt(r.Locator)
}

func (r LocatorRegister) String() string {
	return "r" + strconv.FormatUint(r.Locator, 10)
}

type MemberRegister struct {
	Locator uint64
	Members []Identifier
}

func (MemberRegister) Type() RegisterTag { return RegisterMember }
func (MemberRegister) isRegister()       {}
func (r MemberRegister) Index() uint64   { return r.Locator }

func (r MemberRegister) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(RegisterMember))
	w.WriteVarInt(r.Locator)
	codec.EncodeVec(w, codec.U16, r.Members, encodeIdentifier)
}

func (r MemberRegister) String() string {
	var sb strings.Builder
	sb.WriteString("r")
	sb.WriteString(strconv.FormatUint(r.Locator, 10))
	for _, m := range r.Members {
		sb.WriteString(".")
		sb.WriteString(string(m))
	}
	return sb.String()
}

func DecodeRegister(r *codec.Reader) (Register, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode register: %w", err)
	}
	switch RegisterTag(tag) {
	case RegisterLocator:
		loc, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}
		return LocatorRegister{Locator: loc}, nil
	case RegisterMember:
		loc, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}
		members, err := codec.DecodeVec(r, codec.U16, DecodeIdentifier)
		if err != nil {
			return nil, err
		}
		return MemberRegister{Locator: loc, Members: members}, nil
	}
	return nil, &codec.VariantError{Family: "Register", Tag: uint64(tag)}
}

func encodeRegister(w *codec.Writer, reg Register) {
	reg.Encode(w)
}

type OperandTag uint8

const (
	OperandLiteral OperandTag = iota
	OperandRegister
	OperandProgramID
	OperandCaller
)

// Operand is an instruction input.
type Operand interface {
	codec.Encoder
	fmt.Stringer
	Type() OperandTag
	isOperand()
}

type LiteralOperand struct {
	Literal Literal
}

func (LiteralOperand) Type() OperandTag { return OperandLiteral }
func (LiteralOperand) isOperand()       {}

func (o LiteralOperand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OperandLiteral))
	o.Literal.Encode(w)
}

func (o LiteralOperand) String() string {
	return o.Literal.String()
}

type RegisterOperand struct {
	Register Register
}

func (RegisterOperand) Type() OperandTag { return OperandRegister }
func (RegisterOperand) isOperand()       {}

func (o RegisterOperand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OperandRegister))
	o.Register.Encode(w)
}

func (o RegisterOperand) String() string {
	return o.Register.String()
}

type ProgramIDOperand struct {
	ProgramID ProgramID
}

func (ProgramIDOperand) Type() OperandTag { return OperandProgramID }
func (ProgramIDOperand) isOperand()       {}

func (o ProgramIDOperand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OperandProgramID))
	o.ProgramID.Encode(w)
}

func (o ProgramIDOperand) String() string {
	return o.ProgramID.String()
}

// CallerOperand is the address of the caller, written self.caller.
type CallerOperand struct{}

func (CallerOperand) Type() OperandTag { return OperandCaller }
func (CallerOperand) isOperand()       {}

func (CallerOperand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OperandCaller))
}

func (CallerOperand) String() string {
	return "self.caller"
}

func DecodeOperand(r *codec.Reader) (Operand, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode operand: %w", err)
	}
	switch OperandTag(tag) {
	case OperandLiteral:
		lit, err := DecodeLiteral(r)
		if err != nil {
			return nil, err
		}
		return LiteralOperand{Literal: lit}, nil
	case OperandRegister:
		reg, err := DecodeRegister(r)
		if err != nil {
			return nil, err
		}
		return RegisterOperand{Register: reg}, nil
	case OperandProgramID:
		id, err := DecodeProgramID(r)
		if err != nil {
			return nil, err
		}
		return ProgramIDOperand{ProgramID: id}, nil
	case OperandCaller:
		return CallerOperand{}, nil
	}
	return nil, &codec.VariantError{Family: "Operand", Tag: uint64(tag)}
}

func encodeOperand(w *codec.Writer, o Operand) {
	o.Encode(w)
}

type CallOperatorTag uint8

const (
	CallOperatorLocator CallOperatorTag = iota
	CallOperatorResource
)

// CallOperator is the target of a call: an external locator or a local
// closure or function name.
type CallOperator interface {
	codec.Encoder
	fmt.Stringer
	Type() CallOperatorTag
	isCallOperator()
}

type LocatorCallOperator struct {
	Locator Locator
}

func (LocatorCallOperator) Type() CallOperatorTag { return CallOperatorLocator }
func (LocatorCallOperator) isCallOperator()       {}

func (o LocatorCallOperator) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CallOperatorLocator))
	o.Locator.Encode(w)
}

func (o LocatorCallOperator) String() string {
	return o.Locator.String()
}

type ResourceCallOperator struct {
	Resource Identifier
}

func (ResourceCallOperator) Type() CallOperatorTag { return CallOperatorResource }
func (ResourceCallOperator) isCallOperator()       {}

func (o ResourceCallOperator) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CallOperatorResource))
	o.Resource.Encode(w)
}

func (o ResourceCallOperator) String() string {
	return string(o.Resource)
}

func DecodeCallOperator(r *codec.Reader) (CallOperator, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode call operator: %w", err)
	}
	switch CallOperatorTag(tag) {
	case CallOperatorLocator:
		loc, err := DecodeLocator(r)
		if err != nil {
			return nil, err
		}
		return LocatorCallOperator{Locator: loc}, nil
	case CallOperatorResource:
		id, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		return ResourceCallOperator{Resource: id}, nil
	}
	return nil, &codec.VariantError{Family: "CallOperator", Tag: uint64(tag)}
}
