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

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
)

// LiteralValue is the payload of a literal. Encode writes the payload only;
// the type tag is written by Literal.
type LiteralValue interface {
	codec.Encoder
	fmt.Stringer
	LiteralType() LiteralType
}

// Literal is a typed constant value.
type Literal struct {
	Value LiteralValue
}

func (l Literal) Type() LiteralType {
	return l.Value.LiteralType()
}

func (l Literal) Encode(w *codec.Writer) {
	l.Type().Encode(w)
	l.Value.Encode(w)
}

func (l Literal) String() string {
	return l.Value.String()
}

func DecodeLiteral(r *codec.Reader) (Literal, error) {
	t, err := DecodeLiteralType(r)
	if err != nil {
		return Literal{}, err
	}
	v, err := decodeLiteralValue(r, t)
	if err != nil {
		return Literal{}, fmt.Errorf("decode %s literal: %w", t, err)
	}
	return Literal{Value: v}, nil
}

func decodeLiteralValue(r *codec.Reader, t LiteralType) (LiteralValue, error) {
	switch t {
	case LiteralTypeAddress:
		v, err := primitive.DecodeAddress(r)
		return AddressLiteral{v}, err
	case LiteralTypeBoolean:
		v, err := primitive.DecodeBoolean(r)
		return BooleanLiteral{v}, err
	case LiteralTypeField:
		v, err := primitive.DecodeField(r)
		return FieldLiteral{v}, err
	case LiteralTypeGroup:
		v, err := primitive.DecodeGroup(r)
		return GroupLiteral{v}, err
	case LiteralTypeI8:
		v, err := r.ReadInt8()
		return I8(v), err
	case LiteralTypeI16:
		v, err := r.ReadInt16()
		return I16(v), err
	case LiteralTypeI32:
		v, err := r.ReadInt32()
		return I32(v), err
	case LiteralTypeI64:
		v, err := r.ReadInt64()
		return I64(v), err
	case LiteralTypeI128:
		v, err := r.ReadInt128()
		return I128(v), err
	case LiteralTypeU8:
		v, err := r.ReadUint8()
		return U8(v), err
	case LiteralTypeU16:
		v, err := r.ReadUint16()
		return U16(v), err
	case LiteralTypeU32:
		v, err := r.ReadUint32()
		return U32(v), err
	case LiteralTypeU64:
		v, err := r.ReadUint64()
		return U64(v), err
	case LiteralTypeU128:
		v, err := r.ReadUint128()
		return U128(v), err
	case LiteralTypeScalar:
		v, err := primitive.DecodeScalar(r)
		return ScalarLiteral{v}, err
	case LiteralTypeString:
		n, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		b, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		return StringLiteral(b), nil
	}
	return nil, &codec.VariantError{Family: "LiteralType", Tag: uint64(t)}
}

type AddressLiteral struct{ primitive.Address }

func (AddressLiteral) LiteralType() LiteralType { return LiteralTypeAddress }

type BooleanLiteral struct{ primitive.Boolean }

func (BooleanLiteral) LiteralType() LiteralType { return LiteralTypeBoolean }

type FieldLiteral struct{ primitive.Field }

func (FieldLiteral) LiteralType() LiteralType { return LiteralTypeField }

type GroupLiteral struct{ primitive.Group }

func (GroupLiteral) LiteralType() LiteralType { return LiteralTypeGroup }

type ScalarLiteral struct{ primitive.Scalar }

func (ScalarLiteral) LiteralType() LiteralType { return LiteralTypeScalar }

// Integer literals render as the value followed by the type name, e.g. 5u32.

type I8 int8

func (I8) LiteralType() LiteralType { return LiteralTypeI8 }
func (v I8) Encode(w *codec.Writer) { w.WriteInt8(int8(v)) }
func (v I8) String() string         { return strconv.FormatInt(int64(v), 10) + "i8" }

type I16 int16

func (I16) LiteralType() LiteralType { return LiteralTypeI16 }
func (v I16) Encode(w *codec.Writer) { w.WriteInt16(int16(v)) }
func (v I16) String() string         { return strconv.FormatInt(int64(v), 10) + "i16" }

type I32 int32

func (I32) LiteralType() LiteralType { return LiteralTypeI32 }
func (v I32) Encode(w *codec.Writer) { w.WriteInt32(int32(v)) }
func (v I32) String() string         { return strconv.FormatInt(int64(v), 10) + "i32" }

type I64 int64

func (I64) LiteralType() LiteralType { return LiteralTypeI64 }
func (v I64) Encode(w *codec.Writer) { w.WriteInt64(int64(v)) }
func (v I64) String() string         { return strconv.FormatInt(int64(v), 10) + "i64" }

type I128 codec.Int128

func (I128) LiteralType() LiteralType { return LiteralTypeI128 }
func (v I128) Encode(w *codec.Writer) { w.WriteInt128(codec.Int128(v)) }
func (v I128) String() string         { return codec.Int128(v).String() + "i128" }

type U8 uint8

func (U8) LiteralType() LiteralType { return LiteralTypeU8 }
func (v U8) Encode(w *codec.Writer) { w.WriteUint8(uint8(v)) }
func (v U8) String() string         { return strconv.FormatUint(uint64(v), 10) + "u8" }

type U16 uint16

func (U16) LiteralType() LiteralType { return LiteralTypeU16 }
func (v U16) Encode(w *codec.Writer) { w.WriteUint16(uint16(v)) }
func (v U16) String() string         { return strconv.FormatUint(uint64(v), 10) + "u16" }

type U32 uint32

func (U32) LiteralType() LiteralType { return LiteralTypeU32 }
func (v U32) Encode(w *codec.Writer) { w.WriteUint32(uint32(v)) }
func (v U32) String() string         { return strconv.FormatUint(uint64(v), 10) + "u32" }

type U64 uint64

func (U64) LiteralType() LiteralType { return LiteralTypeU64 }
func (v U64) Encode(w *codec.Writer) { w.WriteUint64(uint64(v)) }
func (v U64) String() string         { return strconv.FormatUint(uint64(v), 10) + "u64" }

type U128 codec.Uint128

func (U128) LiteralType() LiteralType { return LiteralTypeU128 }
func (v U128) Encode(w *codec.Writer) { w.WriteUint128(codec.Uint128(v)) }
func (v U128) String() string         { return codec.Uint128(v).String() + "u128" }

// StringLiteral is a u16 length-prefixed byte string.
type StringLiteral string

func (StringLiteral) LiteralType() LiteralType { return LiteralTypeString }

func (v StringLiteral) Encode(w *codec.Writer) {
	w.WriteLength(codec.U16, len(v))
	w.WriteBytes([]byte(v))
}

func (v StringLiteral) String() string {
	return strconv.Quote(string(v))
}
