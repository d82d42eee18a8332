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
	"strings"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/program"
)

// Private is implemented by the representations a private payload can
// take: Plaintext for decrypted values and Ciphertext for encrypted ones.
type Private interface {
	codec.Encoder
	fmt.Stringer
	isPrivate()
}

type PlaintextTag uint8

const (
	PlaintextLiteral PlaintextTag = iota
	PlaintextStruct
)

// Plaintext is a decrypted value: a literal or a struct of named members.
type Plaintext interface {
	Private
	Type() PlaintextTag
	isPlaintext()
}

type LiteralPlaintext struct {
	Literal program.Literal
}

func (LiteralPlaintext) Type() PlaintextTag { return PlaintextLiteral }
func (LiteralPlaintext) isPlaintext()       {}
func (LiteralPlaintext) isPrivate()         {}

func (p LiteralPlaintext) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(PlaintextLiteral))
	p.Literal.Encode(w)
}

func (p LiteralPlaintext) String() string {
	return p.Literal.String()
}

// NewLiteralPlaintext wraps a literal value.
func NewLiteralPlaintext(v program.LiteralValue) LiteralPlaintext {
	return LiteralPlaintext{Literal: program.Literal{Value: v}}
}

type PlaintextMember struct {
	Name  program.Identifier
	Value Plaintext
}

// StructPlaintext keeps its members in encoded order. Each member value is
// length-delimited on the wire.
type StructPlaintext struct {
	Members []PlaintextMember
}

func (StructPlaintext) Type() PlaintextTag { return PlaintextStruct }
func (StructPlaintext) isPlaintext()       {}
func (StructPlaintext) isPrivate()         {}

func (p StructPlaintext) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(PlaintextStruct))
	codec.EncodeVec(w, codec.U8, p.Members, encodePlaintextMember)
}

func (p StructPlaintext) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, m := range p.Members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(m.Name))
		sb.WriteString(": ")
		if m.Value != nil {
			sb.WriteString(m.Value.String())
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// GetMember returns the value of the named member.
func (p StructPlaintext) GetMember(name program.Identifier) (Plaintext, error) {
	for _, m := range p.Members {
		if m.Name == name {
			return m.Value, nil
		}
	}
	return nil, &codec.IdentifierError{
		Name: string(name),
		Err:  codec.ErrIdentifierNotFound,
	}
}

// SetMember returns a copy of p with the named member replaced. p itself
// is not modified.
func (p StructPlaintext) SetMember(
	name program.Identifier,
	value Plaintext,
) (StructPlaintext, error) {
	for i, m := range p.Members {
		if m.Name != name {
			continue
		}
		members := make([]PlaintextMember, len(p.Members))
		copy(members, p.Members)
		members[i].Value = value
		return StructPlaintext{Members: members}, nil
	}
	return StructPlaintext{}, &codec.IdentifierError{
		Name: string(name),
		Err:  codec.ErrIdentifierNotFound,
	}
}

func DecodePlaintext(r *codec.Reader) (Plaintext, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode plaintext: %w", err)
	}
	switch PlaintextTag(tag) {
	case PlaintextLiteral:
		lit, err := program.DecodeLiteral(r)
		if err != nil {
			return nil, err
		}
		return LiteralPlaintext{Literal: lit}, nil
	case PlaintextStruct:
		members, err := codec.DecodeVec(r, codec.U8, decodePlaintextMember)
		if err != nil {
			return nil, fmt.Errorf("decode struct plaintext: %w", err)
		}
		return StructPlaintext{Members: members}, nil
	}
	return nil, &codec.VariantError{Family: "Plaintext", Tag: uint64(tag)}
}

func decodePlaintextMember(r *codec.Reader) (PlaintextMember, error) {
	name, err := program.DecodeIdentifier(r)
	if err != nil {
		return PlaintextMember{}, err
	}
	value, err := codec.DecodeDelimited(r, DecodePlaintext)
	if err != nil {
		return PlaintextMember{}, fmt.Errorf("member %s: %w", name, err)
	}
	return PlaintextMember{Name: name, Value: value}, nil
}

func encodePlaintextMember(w *codec.Writer, m PlaintextMember) {
	m.Name.Encode(w)
	w.WriteDelimited(m.Value)
}

// EqualPlaintext reports whether a and b hold the same value. Struct
// members are matched by name regardless of order.
func EqualPlaintext(a, b Plaintext) bool {
	switch x := a.(type) {
	case LiteralPlaintext:
		y, ok := b.(LiteralPlaintext)
		if !ok {
			return false
		}
		xb, xerr := codec.Marshal(x)
		yb, yerr := codec.Marshal(y)
		return xerr == nil && yerr == nil && string(xb) == string(yb)
	case StructPlaintext:
		y, ok := b.(StructPlaintext)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for _, m := range x.Members {
			other, err := y.GetMember(m.Name)
			if err != nil || !EqualPlaintext(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
