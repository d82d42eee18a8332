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
	"errors"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/blinklabs-io/aleoledger/program"
)

// The types in this file are parameterised by the representation of their
// private variant. The tag space is the same for every representation; the
// caller picks Plaintext or Ciphertext when decoding.

func decodePrivate[P Private](r *codec.Reader) (P, error) {
	var zero P
	var v any
	var err error
	switch any(&zero).(type) {
	case *Plaintext:
		v, err = DecodePlaintext(r)
	case *Ciphertext:
		v, err = DecodeCiphertext(r)
	default:
		return zero, fmt.Errorf("%w: %T", codec.ErrRepresentation, &zero)
	}
	if err != nil {
		return zero, err
	}
	return v.(P), nil
}

type OwnerTag uint8

const (
	OwnerPublic OwnerTag = iota
	OwnerPrivate
)

// Owner is the owner of a record, either a public address or a private
// value of representation P.
type Owner[P Private] interface {
	codec.Encoder
	fmt.Stringer
	Type() OwnerTag
	isOwner(P)
}

type PublicOwner[P Private] struct {
	Address primitive.Address
}

func (PublicOwner[P]) Type() OwnerTag { return OwnerPublic }
func (PublicOwner[P]) isOwner(P)      {}

func (o PublicOwner[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OwnerPublic))
	o.Address.Encode(w)
}

func (o PublicOwner[P]) String() string {
	return o.Address.String()
}

type PrivateOwner[P Private] struct {
	Owner P
}

func (PrivateOwner[P]) Type() OwnerTag { return OwnerPrivate }
func (PrivateOwner[P]) isOwner(P)      {}

func (o PrivateOwner[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(OwnerPrivate))
	o.Owner.Encode(w)
}

func (o PrivateOwner[P]) String() string {
	return o.Owner.String()
}

func DecodeOwner[P Private](r *codec.Reader) (Owner[P], error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode owner: %w", err)
	}
	switch OwnerTag(tag) {
	case OwnerPublic:
		addr, err := primitive.DecodeAddress(r)
		if err != nil {
			return nil, err
		}
		return PublicOwner[P]{Address: addr}, nil
	case OwnerPrivate:
		v, err := decodePrivate[P](r)
		if err != nil {
			return nil, fmt.Errorf("decode owner: %w", err)
		}
		return PrivateOwner[P]{Owner: v}, nil
	}
	return nil, &codec.VariantError{Family: "Owner", Tag: uint64(tag)}
}

type BalanceTag uint8

const (
	BalancePublic BalanceTag = iota
	BalancePrivate
)

// Balance is an amount of microcredits, public or private.
type Balance[P Private] interface {
	codec.Encoder
	fmt.Stringer
	Type() BalanceTag
	isBalance(P)
}

type PublicBalance[P Private] struct {
	Amount uint64
}

func (PublicBalance[P]) Type() BalanceTag { return BalancePublic }
func (PublicBalance[P]) isBalance(P)      {}

func (b PublicBalance[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(BalancePublic))
	w.WriteUint64(b.Amount)
}

func (b PublicBalance[P]) String() string {
	return strconv.FormatUint(b.Amount, 10)
}

type PrivateBalance[P Private] struct {
	Balance P
}

func (PrivateBalance[P]) Type() BalanceTag { return BalancePrivate }
func (PrivateBalance[P]) isBalance(P)      {}

func (b PrivateBalance[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(BalancePrivate))
	b.Balance.Encode(w)
}

func (b PrivateBalance[P]) String() string {
	return b.Balance.String()
}

func DecodeBalance[P Private](r *codec.Reader) (Balance[P], error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode balance: %w", err)
	}
	switch BalanceTag(tag) {
	case BalancePublic:
		amount, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return PublicBalance[P]{Amount: amount}, nil
	case BalancePrivate:
		v, err := decodePrivate[P](r)
		if err != nil {
			return nil, fmt.Errorf("decode balance: %w", err)
		}
		return PrivateBalance[P]{Balance: v}, nil
	}
	return nil, &codec.VariantError{Family: "Balance", Tag: uint64(tag)}
}

type EntryTag uint8

const (
	EntryConstant EntryTag = iota
	EntryPublic
	EntryPrivate
)

// Entry is a record data entry. Constant and public entries are always
// plaintext.
type Entry[P Private] interface {
	codec.Encoder
	fmt.Stringer
	Type() EntryTag
	isEntry(P)
}

type ConstantEntry[P Private] struct {
	Plaintext Plaintext
}

func (ConstantEntry[P]) Type() EntryTag { return EntryConstant }
func (ConstantEntry[P]) isEntry(P)      {}

func (e ConstantEntry[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(EntryConstant))
	e.Plaintext.Encode(w)
}

func (e ConstantEntry[P]) String() string {
	return e.Plaintext.String()
}

type PublicEntry[P Private] struct {
	Plaintext Plaintext
}

func (PublicEntry[P]) Type() EntryTag { return EntryPublic }
func (PublicEntry[P]) isEntry(P)      {}

func (e PublicEntry[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(EntryPublic))
	e.Plaintext.Encode(w)
}

func (e PublicEntry[P]) String() string {
	return e.Plaintext.String()
}

type PrivateEntry[P Private] struct {
	Value P
}

func (PrivateEntry[P]) Type() EntryTag { return EntryPrivate }
func (PrivateEntry[P]) isEntry(P)      {}

func (e PrivateEntry[P]) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(EntryPrivate))
	e.Value.Encode(w)
}

func (e PrivateEntry[P]) String() string {
	return e.Value.String()
}

func DecodeEntry[P Private](r *codec.Reader) (Entry[P], error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	switch EntryTag(tag) {
	case EntryConstant:
		pt, err := DecodePlaintext(r)
		if err != nil {
			return nil, err
		}
		return ConstantEntry[P]{Plaintext: pt}, nil
	case EntryPublic:
		pt, err := DecodePlaintext(r)
		if err != nil {
			return nil, err
		}
		return PublicEntry[P]{Plaintext: pt}, nil
	case EntryPrivate:
		v, err := decodePrivate[P](r)
		if err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		return PrivateEntry[P]{Value: v}, nil
	}
	return nil, &codec.VariantError{Family: "Entry", Tag: uint64(tag)}
}

type RecordMember[P Private] struct {
	Name  program.Identifier
	Entry Entry[P]
}

// Record is a record with its private parts in representation P:
// Record[Plaintext] once decrypted, Record[Ciphertext] on chain.
type Record[P Private] struct {
	Owner Owner[P]
	Data  []RecordMember[P]
	Nonce primitive.Group
}

var errNilOwner = errors.New("record has no owner")

func DecodeRecord[P Private](r *codec.Reader) (Record[P], error) {
	owner, err := DecodeOwner[P](r)
	if err != nil {
		return Record[P]{}, fmt.Errorf("decode record: %w", err)
	}
	data, err := codec.DecodeVec(r, codec.U8, decodeRecordMember[P])
	if err != nil {
		return Record[P]{}, fmt.Errorf("decode record: %w", err)
	}
	nonce, err := primitive.DecodeGroup(r)
	if err != nil {
		return Record[P]{}, fmt.Errorf("decode record: %w", err)
	}
	return Record[P]{Owner: owner, Data: data, Nonce: nonce}, nil
}

func decodeRecordMember[P Private](r *codec.Reader) (RecordMember[P], error) {
	name, err := program.DecodeIdentifier(r)
	if err != nil {
		return RecordMember[P]{}, err
	}
	entry, err := codec.DecodeDelimited(r, DecodeEntry[P])
	if err != nil {
		return RecordMember[P]{}, fmt.Errorf("entry %s: %w", name, err)
	}
	return RecordMember[P]{Name: name, Entry: entry}, nil
}

func (rec Record[P]) Encode(w *codec.Writer) {
	if rec.Owner == nil {
		w.Fail(errNilOwner)
		return
	}
	rec.Owner.Encode(w)
	codec.EncodeVec(w, codec.U8, rec.Data, func(w *codec.Writer, m RecordMember[P]) {
		m.Name.Encode(w)
		w.WriteDelimited(m.Entry)
	})
	rec.Nonce.Encode(w)
}

// Entry returns the named data entry.
func (rec Record[P]) Entry(name program.Identifier) (Entry[P], error) {
	for _, m := range rec.Data {
		if m.Name == name {
			return m.Entry, nil
		}
	}
	return nil, &codec.IdentifierError{
		Name: string(name),
		Err:  codec.ErrIdentifierNotFound,
	}
}

func (rec Record[P]) String() string {
	return bech32String(RecordPrefix, rec)
}

// ParseRecord decodes a "record1..." string into representation P.
func ParseRecord[P Private](s string) (Record[P], error) {
	return parseBech32(RecordPrefix, s, DecodeRecord[P])
}
