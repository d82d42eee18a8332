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

// LiteralType is the u16 discriminant of a literal value.
type LiteralType uint16

const (
	LiteralTypeAddress LiteralType = iota
	LiteralTypeBoolean
	LiteralTypeField
	LiteralTypeGroup
	LiteralTypeI8
	LiteralTypeI16
	LiteralTypeI32
	LiteralTypeI64
	LiteralTypeI128
	LiteralTypeU8
	LiteralTypeU16
	LiteralTypeU32
	LiteralTypeU64
	LiteralTypeU128
	LiteralTypeScalar
	LiteralTypeString
)

var literalTypeNames = [...]string{
	LiteralTypeAddress: "address",
	LiteralTypeBoolean: "boolean",
	LiteralTypeField:   "field",
	LiteralTypeGroup:   "group",
	LiteralTypeI8:      "i8",
	LiteralTypeI16:     "i16",
	LiteralTypeI32:     "i32",
	LiteralTypeI64:     "i64",
	LiteralTypeI128:    "i128",
	LiteralTypeU8:      "u8",
	LiteralTypeU16:     "u16",
	LiteralTypeU32:     "u32",
	LiteralTypeU64:     "u64",
	LiteralTypeU128:    "u128",
	LiteralTypeScalar:  "scalar",
	LiteralTypeString:  "string",
}

func (t LiteralType) valid() bool {
	return int(t) < len(literalTypeNames)
}

func (t LiteralType) String() string {
	if !t.valid() {
		return fmt.Sprintf("LiteralType(%d)", uint16(t))
	}
	return literalTypeNames[t]
}

func DecodeLiteralType(r *codec.Reader) (LiteralType, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("decode literal type: %w", err)
	}
	t := LiteralType(v)
	if !t.valid() {
		return 0, &codec.VariantError{Family: "LiteralType", Tag: uint64(v)}
	}
	return t, nil
}

func (t LiteralType) Encode(w *codec.Writer) {
	w.WriteUint16(uint16(t))
}

// PublicOrPrivate is the visibility of a record owner.
type PublicOrPrivate uint8

const (
	Public PublicOrPrivate = iota
	Private
)

func DecodePublicOrPrivate(r *codec.Reader) (PublicOrPrivate, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if v > uint8(Private) {
		return 0, &codec.VariantError{Family: "PublicOrPrivate", Tag: uint64(v)}
	}
	return PublicOrPrivate(v), nil
}

func (v PublicOrPrivate) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(v))
}

func (v PublicOrPrivate) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

type PlaintextTypeTag uint8

const (
	PlaintextTypeLiteral PlaintextTypeTag = iota
	PlaintextTypeStruct
)

// PlaintextType is either a literal type or a named struct.
type PlaintextType interface {
	codec.Encoder
	fmt.Stringer
	Type() PlaintextTypeTag
	isPlaintextType()
}

type LiteralPlaintextType struct {
	LiteralType LiteralType
}

func (LiteralPlaintextType) Type() PlaintextTypeTag { return PlaintextTypeLiteral }
func (LiteralPlaintextType) isPlaintextType()       {}

func (t LiteralPlaintextType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(PlaintextTypeLiteral))
	t.LiteralType.Encode(w)
}

func (t LiteralPlaintextType) String() string {
	return t.LiteralType.String()
}

type StructPlaintextType struct {
	Name Identifier
}

func (StructPlaintextType) Type() PlaintextTypeTag { return PlaintextTypeStruct }
func (StructPlaintextType) isPlaintextType()       {}

func (t StructPlaintextType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(PlaintextTypeStruct))
	t.Name.Encode(w)
}

func (t StructPlaintextType) String() string {
	return string(t.Name)
}

func DecodePlaintextType(r *codec.Reader) (PlaintextType, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode plaintext type: %w", err)
	}
	switch PlaintextTypeTag(tag) {
	case PlaintextTypeLiteral:
		lt, err := DecodeLiteralType(r)
		if err != nil {
			return nil, err
		}
		return LiteralPlaintextType{LiteralType: lt}, nil
	case PlaintextTypeStruct:
		name, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		return StructPlaintextType{Name: name}, nil
	}
	return nil, &codec.VariantError{Family: "PlaintextType", Tag: uint64(tag)}
}

type RegisterTypeTag uint8

const (
	RegisterTypePlaintext RegisterTypeTag = iota
	RegisterTypeRecord
	RegisterTypeExternalRecord
)

// RegisterType is the type of a closure input or output register.
type RegisterType interface {
	codec.Encoder
	fmt.Stringer
	Type() RegisterTypeTag
	isRegisterType()
}

type PlaintextRegisterType struct {
	PlaintextType PlaintextType
}

func (PlaintextRegisterType) Type() RegisterTypeTag { return RegisterTypePlaintext }
func (PlaintextRegisterType) isRegisterType()       {}

func (t PlaintextRegisterType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(RegisterTypePlaintext))
	t.PlaintextType.Encode(w)
}

func (t PlaintextRegisterType) String() string {
	return t.PlaintextType.String()
}

type RecordRegisterType struct {
	Name Identifier
}

func (RecordRegisterType) Type() RegisterTypeTag { return RegisterTypeRecord }
func (RecordRegisterType) isRegisterType()       {}

func (t RecordRegisterType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(RegisterTypeRecord))
	t.Name.Encode(w)
}

func (t RecordRegisterType) String() string {
	return string(t.Name) + ".record"
}

type ExternalRecordRegisterType struct {
	Locator Locator
}

func (ExternalRecordRegisterType) Type() RegisterTypeTag { return RegisterTypeExternalRecord }
func (ExternalRecordRegisterType) isRegisterType()       {}

func (t ExternalRecordRegisterType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(RegisterTypeExternalRecord))
	t.Locator.Encode(w)
}

func (t ExternalRecordRegisterType) String() string {
	return t.Locator.String() + ".record"
}

func DecodeRegisterType(r *codec.Reader) (RegisterType, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode register type: %w", err)
	}
	switch RegisterTypeTag(tag) {
	case RegisterTypePlaintext:
		pt, err := DecodePlaintextType(r)
		if err != nil {
			return nil, err
		}
		return PlaintextRegisterType{PlaintextType: pt}, nil
	case RegisterTypeRecord:
		name, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		return RecordRegisterType{Name: name}, nil
	case RegisterTypeExternalRecord:
		loc, err := DecodeLocator(r)
		if err != nil {
			return nil, err
		}
		return ExternalRecordRegisterType{Locator: loc}, nil
	}
	return nil, &codec.VariantError{Family: "RegisterType", Tag: uint64(tag)}
}

type ValueTypeTag uint8

const (
	ValueTypeConstant ValueTypeTag = iota
	ValueTypePublic
	ValueTypePrivate
	ValueTypeRecord
	ValueTypeExternalRecord
)

// ValueType is the type of a function input or output.
type ValueType interface {
	codec.Encoder
	fmt.Stringer
	Type() ValueTypeTag
	isValueType()
}

// VisibleValueType covers the constant, public and private value types,
// which differ only in their tag.
type VisibleValueType struct {
	Visibility    ValueTypeTag
	PlaintextType PlaintextType
}

func ConstantValueType(pt PlaintextType) VisibleValueType {
	return VisibleValueType{Visibility: ValueTypeConstant, PlaintextType: pt}
}

func PublicValueType(pt PlaintextType) VisibleValueType {
	return VisibleValueType{Visibility: ValueTypePublic, PlaintextType: pt}
}

func PrivateValueType(pt PlaintextType) VisibleValueType {
	return VisibleValueType{Visibility: ValueTypePrivate, PlaintextType: pt}
}

func (t VisibleValueType) Type() ValueTypeTag { return t.Visibility }
func (VisibleValueType) isValueType()         {}

func (t VisibleValueType) Encode(w *codec.Writer) {
	if t.Visibility > ValueTypePrivate {
		w.Fail(&codec.VariantError{Family: "ValueType", Tag: uint64(t.Visibility)})
		return
	}
	w.WriteUint8(uint8(t.Visibility))
	t.PlaintextType.Encode(w)
}

func (t VisibleValueType) String() string {
	var suffix string
	switch t.Visibility {
	case ValueTypeConstant:
		suffix = "constant"
	case ValueTypePublic:
		suffix = "public"
	default:
		suffix = "private"
	}
	return t.PlaintextType.String() + "." + suffix
}

type RecordValueType struct {
	Name Identifier
}

func (RecordValueType) Type() ValueTypeTag { return ValueTypeRecord }
func (RecordValueType) isValueType()       {}

func (t RecordValueType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(ValueTypeRecord))
	t.Name.Encode(w)
}

func (t RecordValueType) String() string {
	return string(t.Name) + ".record"
}

type ExternalRecordValueType struct {
	Locator Locator
}

func (ExternalRecordValueType) Type() ValueTypeTag { return ValueTypeExternalRecord }
func (ExternalRecordValueType) isValueType()       {}

func (t ExternalRecordValueType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(ValueTypeExternalRecord))
	t.Locator.Encode(w)
}

func (t ExternalRecordValueType) String() string {
	return t.Locator.String() + ".record"
}

func DecodeValueType(r *codec.Reader) (ValueType, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode value type: %w", err)
	}
	switch ValueTypeTag(tag) {
	case ValueTypeConstant, ValueTypePublic, ValueTypePrivate:
		pt, err := DecodePlaintextType(r)
		if err != nil {
			return nil, err
		}
		return VisibleValueType{Visibility: ValueTypeTag(tag), PlaintextType: pt}, nil
	case ValueTypeRecord:
		name, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		return RecordValueType{Name: name}, nil
	case ValueTypeExternalRecord:
		loc, err := DecodeLocator(r)
		if err != nil {
			return nil, err
		}
		return ExternalRecordValueType{Locator: loc}, nil
	}
	return nil, &codec.VariantError{Family: "ValueType", Tag: uint64(tag)}
}

// EntryVisibility is the tag of a record entry type.
type EntryVisibility uint8

const (
	EntryConstant EntryVisibility = iota
	EntryPublic
	EntryPrivate
)

func (v EntryVisibility) String() string {
	switch v {
	case EntryConstant:
		return "constant"
	case EntryPublic:
		return "public"
	case EntryPrivate:
		return "private"
	default:
		return fmt.Sprintf("EntryVisibility(%d)", uint8(v))
	}
}

// EntryType is the declared type of a record entry.
type EntryType struct {
	Visibility    EntryVisibility
	PlaintextType PlaintextType
}

func DecodeEntryType(r *codec.Reader) (EntryType, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return EntryType{}, fmt.Errorf("decode entry type: %w", err)
	}
	if tag > uint8(EntryPrivate) {
		return EntryType{}, &codec.VariantError{Family: "EntryType", Tag: uint64(tag)}
	}
	pt, err := DecodePlaintextType(r)
	if err != nil {
		return EntryType{}, err
	}
	return EntryType{Visibility: EntryVisibility(tag), PlaintextType: pt}, nil
}

func (t EntryType) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(t.Visibility))
	t.PlaintextType.Encode(w)
}

func (t EntryType) String() string {
	return t.PlaintextType.String() + "." + t.Visibility.String()
}
