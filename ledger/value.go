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
)

type ValueTag uint8

const (
	ValuePlaintext ValueTag = iota
	ValueRecord
)

// Value is a finalize argument carried by a transition.
type Value interface {
	codec.Encoder
	Type() ValueTag
	isValue()
}

type PlaintextValue struct {
	Plaintext Plaintext
}

func (PlaintextValue) Type() ValueTag { return ValuePlaintext }
func (PlaintextValue) isValue()       {}

func (v PlaintextValue) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(ValuePlaintext))
	v.Plaintext.Encode(w)
}

func (v PlaintextValue) String() string {
	return v.Plaintext.String()
}

type RecordValue struct {
	Record Record[Plaintext]
}

func (RecordValue) Type() ValueTag { return ValueRecord }
func (RecordValue) isValue()       {}

func (v RecordValue) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(ValueRecord))
	v.Record.Encode(w)
}

func DecodeValue(r *codec.Reader) (Value, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	switch ValueTag(tag) {
	case ValuePlaintext:
		pt, err := DecodePlaintext(r)
		if err != nil {
			return nil, err
		}
		return PlaintextValue{Plaintext: pt}, nil
	case ValueRecord:
		rec, err := DecodeRecord[Plaintext](r)
		if err != nil {
			return nil, err
		}
		return RecordValue{Record: rec}, nil
	}
	return nil, &codec.VariantError{Family: "Value", Tag: uint64(tag)}
}
