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

package primitive

import (
	"fmt"

	"github.com/blinklabs-io/aleoledger/bech32m"
	"github.com/blinklabs-io/aleoledger/codec"
)

const AddressPrefix = "aleo"

// Address is an account address, the x-coordinate of a group element.
type Address bytes32

func DecodeAddress(r *codec.Reader) (Address, error) {
	b, err := decodeBytes32(r)
	return Address(b), err
}

func (a Address) Encode(w *codec.Writer) {
	w.WriteBytes(a[:])
}

// Bech32 renders the address under a custom prefix.
func (a Address) Bech32(prefix string) string {
	return bech32m.MustEncode(prefix, a[:])
}

func (a Address) String() string {
	return a.Bech32(AddressPrefix)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAddress decodes an "aleo1..." string.
func ParseAddress(s string) (Address, error) {
	var ret Address
	data, err := bech32m.DecodePrefix(AddressPrefix, s)
	if err != nil {
		return ret, err
	}
	if len(data) != len(ret) {
		return ret, fmt.Errorf("%w: address payload is %d bytes", ErrParse, len(data))
	}
	copy(ret[:], data)
	return ret, nil
}

// Prefixed identifiers are field elements with their own bech32m prefix.

type BlockHash Field

type TransactionID Field

type TransitionID Field

type StateRoot Field

const (
	BlockHashPrefix     = "ab"
	TransactionIDPrefix = "at"
	TransitionIDPrefix  = "au"
	StateRootPrefix     = "sr"
)

func DecodeBlockHash(r *codec.Reader) (BlockHash, error) {
	f, err := DecodeField(r)
	return BlockHash(f), err
}

func (h BlockHash) Encode(w *codec.Writer) { Field(h).Encode(w) }

func (h BlockHash) String() string {
	return bech32m.MustEncode(BlockHashPrefix, h[:])
}

func (h BlockHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func DecodeTransactionID(r *codec.Reader) (TransactionID, error) {
	f, err := DecodeField(r)
	return TransactionID(f), err
}

func (id TransactionID) Encode(w *codec.Writer) { Field(id).Encode(w) }

func (id TransactionID) String() string {
	return bech32m.MustEncode(TransactionIDPrefix, id[:])
}

func (id TransactionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func DecodeTransitionID(r *codec.Reader) (TransitionID, error) {
	f, err := DecodeField(r)
	return TransitionID(f), err
}

func (id TransitionID) Encode(w *codec.Writer) { Field(id).Encode(w) }

func (id TransitionID) String() string {
	return bech32m.MustEncode(TransitionIDPrefix, id[:])
}

func (id TransitionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func DecodeStateRoot(r *codec.Reader) (StateRoot, error) {
	f, err := DecodeField(r)
	return StateRoot(f), err
}

func (s StateRoot) Encode(w *codec.Writer) { Field(s).Encode(w) }

func (s StateRoot) String() string {
	return bech32m.MustEncode(StateRootPrefix, s[:])
}

func (s StateRoot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
