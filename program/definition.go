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

	"github.com/blinklabs-io/aleoledger/codec"
)

type DefinitionTag uint8

const (
	DefinitionMapping DefinitionTag = iota
	DefinitionStruct
	DefinitionRecord
	DefinitionClosure
	DefinitionFunction
)

func (t DefinitionTag) String() string {
	switch t {
	case DefinitionMapping:
		return "mapping"
	case DefinitionStruct:
		return "struct"
	case DefinitionRecord:
		return "record"
	case DefinitionClosure:
		return "closure"
	case DefinitionFunction:
		return "function"
	default:
		return fmt.Sprintf("DefinitionTag(%d)", uint8(t))
	}
}

// Definition is a named top-level program item.
type Definition interface {
	codec.Encoder
	Type() DefinitionTag
	Ident() Identifier
	isDefinition()
}

// MapEntry names and types the key or value of a mapping.
type MapEntry struct {
	Name          Identifier
	PlaintextType PlaintextType
}

func DecodeMapEntry(r *codec.Reader) (MapEntry, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return MapEntry{}, err
	}
	pt, err := DecodePlaintextType(r)
	if err != nil {
		return MapEntry{}, err
	}
	return MapEntry{Name: name, PlaintextType: pt}, nil
}

func (e MapEntry) Encode(w *codec.Writer) {
	e.Name.Encode(w)
	e.PlaintextType.Encode(w)
}

// Mapping is an on-chain key-value store declaration.
type Mapping struct {
	Name  Identifier
	Key   MapEntry
	Value MapEntry
}

func (Mapping) Type() DefinitionTag { return DefinitionMapping }
func (m Mapping) Ident() Identifier { return m.Name }
func (Mapping) isDefinition()       {}

func DecodeMapping(r *codec.Reader) (Mapping, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return Mapping{}, err
	}
	key, err := DecodeMapEntry(r)
	if err != nil {
		return Mapping{}, fmt.Errorf("decode mapping %s key: %w", name, err)
	}
	value, err := DecodeMapEntry(r)
	if err != nil {
		return Mapping{}, fmt.Errorf("decode mapping %s value: %w", name, err)
	}
	return Mapping{Name: name, Key: key, Value: value}, nil
}

func (m Mapping) Encode(w *codec.Writer) {
	m.Name.Encode(w)
	m.Key.Encode(w)
	m.Value.Encode(w)
}

type StructMember struct {
	Name          Identifier
	PlaintextType PlaintextType
}

func decodeStructMember(r *codec.Reader) (StructMember, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return StructMember{}, err
	}
	pt, err := DecodePlaintextType(r)
	if err != nil {
		return StructMember{}, err
	}
	return StructMember{Name: name, PlaintextType: pt}, nil
}

func encodeStructMember(w *codec.Writer, m StructMember) {
	m.Name.Encode(w)
	m.PlaintextType.Encode(w)
}

// Struct is a named product of plaintext types.
type Struct struct {
	Name    Identifier
	Members []StructMember
}

func (Struct) Type() DefinitionTag { return DefinitionStruct }
func (s Struct) Ident() Identifier { return s.Name }
func (Struct) isDefinition()       {}

func DecodeStruct(r *codec.Reader) (Struct, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return Struct{}, err
	}
	members, err := codec.DecodeVec(r, codec.U16, decodeStructMember)
	if err != nil {
		return Struct{}, fmt.Errorf("decode struct %s: %w", name, err)
	}
	return Struct{Name: name, Members: members}, nil
}

func (s Struct) Encode(w *codec.Writer) {
	s.Name.Encode(w)
	codec.EncodeVec(w, codec.U16, s.Members, encodeStructMember)
}

type RecordEntry struct {
	Name      Identifier
	EntryType EntryType
}

func decodeRecordEntry(r *codec.Reader) (RecordEntry, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return RecordEntry{}, err
	}
	et, err := DecodeEntryType(r)
	if err != nil {
		return RecordEntry{}, err
	}
	return RecordEntry{Name: name, EntryType: et}, nil
}

func encodeRecordEntry(w *codec.Writer, e RecordEntry) {
	e.Name.Encode(w)
	e.EntryType.Encode(w)
}

// RecordType declares a record: an owner and typed entries.
type RecordType struct {
	Name    Identifier
	Owner   PublicOrPrivate
	Entries []RecordEntry
}

func (RecordType) Type() DefinitionTag { return DefinitionRecord }
func (t RecordType) Ident() Identifier { return t.Name }
func (RecordType) isDefinition()       {}

func DecodeRecordType(r *codec.Reader) (RecordType, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return RecordType{}, err
	}
	owner, err := DecodePublicOrPrivate(r)
	if err != nil {
		return RecordType{}, fmt.Errorf("decode record %s owner: %w", name, err)
	}
	entries, err := codec.DecodeVec(r, codec.U16, decodeRecordEntry)
	if err != nil {
		return RecordType{}, fmt.Errorf("decode record %s: %w", name, err)
	}
	return RecordType{Name: name, Owner: owner, Entries: entries}, nil
}

func (t RecordType) Encode(w *codec.Writer) {
	t.Name.Encode(w)
	t.Owner.Encode(w)
	codec.EncodeVec(w, codec.U16, t.Entries, encodeRecordEntry)
}

type ClosureInput struct {
	Register     Register
	RegisterType RegisterType
}

func decodeClosureInput(r *codec.Reader) (ClosureInput, error) {
	reg, err := DecodeRegister(r)
	if err != nil {
		return ClosureInput{}, err
	}
	rt, err := DecodeRegisterType(r)
	if err != nil {
		return ClosureInput{}, err
	}
	return ClosureInput{Register: reg, RegisterType: rt}, nil
}

func (i ClosureInput) Encode(w *codec.Writer) {
	i.Register.Encode(w)
	i.RegisterType.Encode(w)
}

type ClosureOutput struct {
	Operand      Operand
	RegisterType RegisterType
}

func decodeClosureOutput(r *codec.Reader) (ClosureOutput, error) {
	op, err := DecodeOperand(r)
	if err != nil {
		return ClosureOutput{}, err
	}
	rt, err := DecodeRegisterType(r)
	if err != nil {
		return ClosureOutput{}, err
	}
	return ClosureOutput{Operand: op, RegisterType: rt}, nil
}

func (o ClosureOutput) Encode(w *codec.Writer) {
	o.Operand.Encode(w)
	o.RegisterType.Encode(w)
}

// Closure is an off-chain helper callable from functions.
type Closure struct {
	Name         Identifier
	Inputs       []ClosureInput
	Instructions []Instruction
	Outputs      []ClosureOutput
}

func (Closure) Type() DefinitionTag { return DefinitionClosure }
func (c Closure) Ident() Identifier { return c.Name }
func (Closure) isDefinition()       {}

func DecodeClosure(r *codec.Reader) (Closure, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return Closure{}, err
	}
	inputs, err := codec.DecodeVec(r, codec.U16, decodeClosureInput)
	if err != nil {
		return Closure{}, fmt.Errorf("decode closure %s inputs: %w", name, err)
	}
	instructions, err := codec.DecodeVec(r, codec.U32, DecodeInstruction)
	if err != nil {
		return Closure{}, fmt.Errorf("decode closure %s instructions: %w", name, err)
	}
	outputs, err := codec.DecodeVec(r, codec.U16, decodeClosureOutput)
	if err != nil {
		return Closure{}, fmt.Errorf("decode closure %s outputs: %w", name, err)
	}
	return Closure{
		Name:         name,
		Inputs:       inputs,
		Instructions: instructions,
		Outputs:      outputs,
	}, nil
}

func (c Closure) Encode(w *codec.Writer) {
	c.Name.Encode(w)
	codec.EncodeVec(w, codec.U16, c.Inputs, codec.Encode[ClosureInput])
	codec.EncodeVec(w, codec.U32, c.Instructions, encodeInstruction)
	codec.EncodeVec(w, codec.U16, c.Outputs, codec.Encode[ClosureOutput])
}

type FunctionInput struct {
	Register  Register
	ValueType ValueType
}

func decodeFunctionInput(r *codec.Reader) (FunctionInput, error) {
	reg, err := DecodeRegister(r)
	if err != nil {
		return FunctionInput{}, err
	}
	vt, err := DecodeValueType(r)
	if err != nil {
		return FunctionInput{}, err
	}
	return FunctionInput{Register: reg, ValueType: vt}, nil
}

func (i FunctionInput) Encode(w *codec.Writer) {
	i.Register.Encode(w)
	i.ValueType.Encode(w)
}

type FunctionOutput struct {
	Operand   Operand
	ValueType ValueType
}

func decodeFunctionOutput(r *codec.Reader) (FunctionOutput, error) {
	op, err := DecodeOperand(r)
	if err != nil {
		return FunctionOutput{}, err
	}
	vt, err := DecodeValueType(r)
	if err != nil {
		return FunctionOutput{}, err
	}
	return FunctionOutput{Operand: op, ValueType: vt}, nil
}

func (o FunctionOutput) Encode(w *codec.Writer) {
	o.Operand.Encode(w)
	o.ValueType.Encode(w)
}

// FunctionFinalize pairs the finalize call in a function body with the
// finalize block it invokes.
type FunctionFinalize struct {
	Command  FinalizeCommand
	Finalize Finalize
}

func decodeFunctionFinalize(r *codec.Reader) (FunctionFinalize, error) {
	cmd, err := DecodeFinalizeCommand(r)
	if err != nil {
		return FunctionFinalize{}, err
	}
	fin, err := DecodeFinalize(r)
	if err != nil {
		return FunctionFinalize{}, err
	}
	return FunctionFinalize{Command: cmd, Finalize: fin}, nil
}

func encodeFunctionFinalize(w *codec.Writer, f FunctionFinalize) {
	f.Command.Encode(w)
	f.Finalize.Encode(w)
}

// Function is an externally callable program entry point.
type Function struct {
	Name         Identifier
	Inputs       []FunctionInput
	Instructions []Instruction
	Outputs      []FunctionOutput
	Finalize     codec.Option[FunctionFinalize]
}

func (Function) Type() DefinitionTag { return DefinitionFunction }
func (f Function) Ident() Identifier { return f.Name }
func (Function) isDefinition()       {}

func DecodeFunction(r *codec.Reader) (Function, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return Function{}, err
	}
	inputs, err := codec.DecodeVec(r, codec.U16, decodeFunctionInput)
	if err != nil {
		return Function{}, fmt.Errorf("decode function %s inputs: %w", name, err)
	}
	instructions, err := codec.DecodeVec(r, codec.U32, DecodeInstruction)
	if err != nil {
		return Function{}, fmt.Errorf("decode function %s instructions: %w", name, err)
	}
	outputs, err := codec.DecodeVec(r, codec.U16, decodeFunctionOutput)
	if err != nil {
		return Function{}, fmt.Errorf("decode function %s outputs: %w", name, err)
	}
	finalize, err := codec.DecodeOption(r, decodeFunctionFinalize)
	if err != nil {
		return Function{}, fmt.Errorf("decode function %s finalize: %w", name, err)
	}
	return Function{
		Name:         name,
		Inputs:       inputs,
		Instructions: instructions,
		Outputs:      outputs,
		Finalize:     finalize,
	}, nil
}

func (f Function) Encode(w *codec.Writer) {
	f.Name.Encode(w)
	codec.EncodeVec(w, codec.U16, f.Inputs, codec.Encode[FunctionInput])
	codec.EncodeVec(w, codec.U32, f.Instructions, encodeInstruction)
	codec.EncodeVec(w, codec.U16, f.Outputs, codec.Encode[FunctionOutput])
	codec.EncodeOption(w, f.Finalize, encodeFunctionFinalize)
}
