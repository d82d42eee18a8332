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

	"github.com/blinklabs-io/aleoledger/bech32m"
	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
)

// Bech32m prefixes for ledger values that have a string form
const (
	CiphertextPrefix = "ciphertext"
	RecordPrefix     = "record"
	ProofPrefix      = "proof"
	SignaturePrefix  = "sign"
	PuzzlePrefix     = "puzzle"
)

// Ciphertext is an encrypted value, a sequence of field elements.
type Ciphertext struct {
	Fields []primitive.Field
}

func (Ciphertext) isPrivate() {}

func DecodeCiphertext(r *codec.Reader) (Ciphertext, error) {
	fields, err := codec.DecodeVec(r, codec.U16, primitive.DecodeField)
	if err != nil {
		return Ciphertext{}, fmt.Errorf("decode ciphertext: %w", err)
	}
	return Ciphertext{Fields: fields}, nil
}

func (c Ciphertext) Encode(w *codec.Writer) {
	codec.EncodeVec(w, codec.U16, c.Fields, codec.Encode[primitive.Field])
}

func (c Ciphertext) String() string {
	return bech32String(CiphertextPrefix, c)
}

// ParseCiphertext decodes a "ciphertext1..." string.
func ParseCiphertext(s string) (Ciphertext, error) {
	return parseBech32(CiphertextPrefix, s, DecodeCiphertext)
}

func bech32String(prefix string, e codec.Encoder) string {
	data, err := codec.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%%!%s(%s)", prefix, err)
	}
	return bech32m.MustEncode(prefix, data)
}

func parseBech32[T any](prefix string, s string, decode codec.DecodeFunc[T]) (T, error) {
	var zero T
	data, err := bech32m.DecodePrefix(prefix, s)
	if err != nil {
		return zero, err
	}
	return codec.Decode(data, true, decode)
}
