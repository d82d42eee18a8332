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

// Package primitive holds the fixed-size cryptographic values carried by
// ledger data. Only their byte layout and text forms are modelled; there is
// no field or curve arithmetic here.
package primitive

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/holiman/uint256"
)

const (
	ScalarSize   = 32
	G1AffineSize = 48
	G2AffineSize = 96
)

var ErrParse = errors.New("invalid value string")

// A Scalar-sized value is 32 bytes in little-endian order.
type bytes32 [ScalarSize]byte

func (b bytes32) decimal() string {
	be := b
	slices.Reverse(be[:])
	return new(uint256.Int).SetBytes(be[:]).Dec()
}

func parseDecimal(s string, suffix string) (bytes32, error) {
	var ret bytes32
	digits, ok := strings.CutSuffix(s, suffix)
	if !ok {
		return ret, fmt.Errorf("%w: %q lacks suffix %q", ErrParse, s, suffix)
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return ret, fmt.Errorf("%w: %q: %w", ErrParse, s, err)
	}
	ret = v.Bytes32()
	slices.Reverse(ret[:])
	return ret, nil
}

func decodeBytes32(r *codec.Reader) (bytes32, error) {
	var ret bytes32
	if err := r.ReadInto(ret[:]); err != nil {
		return ret, err
	}
	return ret, nil
}

// Field is a base field element.
type Field bytes32

func DecodeField(r *codec.Reader) (Field, error) {
	b, err := decodeBytes32(r)
	return Field(b), err
}

func (f Field) Encode(w *codec.Writer) {
	w.WriteBytes(f[:])
}

func (f Field) String() string {
	return bytes32(f).decimal() + "field"
}

// ParseField parses the decimal text form, e.g. "123field".
func ParseField(s string) (Field, error) {
	b, err := parseDecimal(s, "field")
	return Field(b), err
}

// FieldFromUint64 is a small-value convenience constructor.
func FieldFromUint64(v uint64) Field {
	var f Field
	for i := range 8 {
		f[i] = byte(v >> (8 * i))
	}
	return f
}

// Group is a compressed affine group element.
type Group bytes32

func DecodeGroup(r *codec.Reader) (Group, error) {
	b, err := decodeBytes32(r)
	return Group(b), err
}

func (g Group) Encode(w *codec.Writer) {
	w.WriteBytes(g[:])
}

func (g Group) String() string {
	return bytes32(g).decimal() + "group"
}

func ParseGroup(s string) (Group, error) {
	b, err := parseDecimal(s, "group")
	return Group(b), err
}

// Scalar is a scalar field element.
type Scalar bytes32

func DecodeScalar(r *codec.Reader) (Scalar, error) {
	b, err := decodeBytes32(r)
	return Scalar(b), err
}

func (s Scalar) Encode(w *codec.Writer) {
	w.WriteBytes(s[:])
}

func (s Scalar) String() string {
	return bytes32(s).decimal() + "scalar"
}

func ParseScalar(s string) (Scalar, error) {
	b, err := parseDecimal(s, "scalar")
	return Scalar(b), err
}

// Boolean is a single byte that must be 0 or 1.
type Boolean bool

func DecodeBoolean(r *codec.Reader) (Boolean, error) {
	v, err := r.ReadBool()
	return Boolean(v), err
}

func (b Boolean) Encode(w *codec.Writer) {
	w.WriteBool(bool(b))
}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// G1Affine is a compressed point on the first pairing group.
type G1Affine [G1AffineSize]byte

func DecodeG1Affine(r *codec.Reader) (G1Affine, error) {
	var ret G1Affine
	err := r.ReadInto(ret[:])
	return ret, err
}

func (p G1Affine) Encode(w *codec.Writer) {
	w.WriteBytes(p[:])
}

// G2Affine is a compressed point on the second pairing group.
type G2Affine [G2AffineSize]byte

func DecodeG2Affine(r *codec.Reader) (G2Affine, error) {
	var ret G2Affine
	err := r.ReadInto(ret[:])
	return ret, err
}

func (p G2Affine) Encode(w *codec.Writer) {
	w.WriteBytes(p[:])
}
