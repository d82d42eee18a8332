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
	"strings"
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralPlaintext(t *testing.T) {
	encoded, decoded := testutil.RoundTrip(t, u8Plaintext(1), DecodePlaintext)
	assert.Equal(t, []byte{0x00, 0x09, 0x00, 0x01}, encoded)
	assert.Equal(t, "1u8", decoded.String())
	assert.Equal(t, PlaintextLiteral, decoded.Type())
}

func TestStructPlaintext(t *testing.T) {
	p := StructPlaintext{Members: []PlaintextMember{{Name: "a", Value: u8Plaintext(1)}}}
	encoded, _ := testutil.RoundTrip[Plaintext](t, p, DecodePlaintext)
	assert.Equal(
		t,
		[]byte{0x01, 0x01, 0x01, 'a', 0x04, 0x00, 0x00, 0x09, 0x00, 0x01},
		encoded,
	)

	_, nested := testutil.RoundTrip[Plaintext](t, nestedPlaintext(), DecodePlaintext)
	assert.Equal(t, "{a: 1u8, b: {c: true}}", nested.String())
	assert.True(t, EqualPlaintext(nestedPlaintext(), nested))
	assert.Equal(t, "{}", StructPlaintext{}.String())
}

func TestStructPlaintextLengthMismatch(t *testing.T) {
	// The member claims 5 bytes but its plaintext only uses 4.
	data := []byte{0x01, 0x01, 0x01, 'a', 0x05, 0x00, 0x00, 0x09, 0x00, 0x01, 0xff}
	_, err := codec.Decode(data, true, DecodePlaintext)
	require.ErrorIs(t, err, codec.ErrLengthMismatch)

	// The member claims more bytes than remain.
	data = []byte{0x01, 0x01, 0x01, 'a', 0x09, 0x00, 0x00, 0x09, 0x00, 0x01}
	_, err = codec.Decode(data, true, DecodePlaintext)
	require.ErrorIs(t, err, codec.ErrTruncated)
}

func TestPlaintextVariant(t *testing.T) {
	_, err := codec.Decode([]byte{0x02}, true, DecodePlaintext)
	var verr *codec.VariantError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Plaintext", verr.Family)
	assert.Equal(t, uint64(2), verr.Tag)
}

func TestStructPlaintextMembers(t *testing.T) {
	p := nestedPlaintext()
	a, err := p.GetMember("a")
	require.NoError(t, err)
	assert.Equal(t, "1u8", a.String())

	updated, err := p.SetMember("a", u8Plaintext(2))
	require.NoError(t, err)
	assert.Equal(t, "{a: 2u8, b: {c: true}}", updated.String())
	// The original is untouched.
	assert.Equal(t, "{a: 1u8, b: {c: true}}", p.String())

	_, err = p.GetMember("z")
	require.ErrorIs(t, err, codec.ErrIdentifierNotFound)
	_, err = p.SetMember("z", u8Plaintext(2))
	require.ErrorIs(t, err, codec.ErrIdentifierNotFound)
}

func TestEqualPlaintext(t *testing.T) {
	p := nestedPlaintext()
	reordered := StructPlaintext{Members: []PlaintextMember{p.Members[1], p.Members[0]}}
	assert.True(t, EqualPlaintext(p, reordered))
	assert.False(t, EqualPlaintext(p, u8Plaintext(1)))
	assert.False(t, EqualPlaintext(u8Plaintext(1), u8Plaintext(2)))
	changed, err := p.SetMember("a", u8Plaintext(2))
	require.NoError(t, err)
	assert.False(t, EqualPlaintext(p, changed))
}

func TestCiphertext(t *testing.T) {
	encoded, _ := testutil.RoundTrip(t, sampleCiphertext(), DecodeCiphertext)
	assert.Len(t, encoded, 2+3*primitive.ScalarSize)
	assert.Equal(t, []byte{0x03, 0x00}, encoded[:2])

	s := sampleCiphertext().String()
	require.True(t, strings.HasPrefix(s, "ciphertext1"), s)
	parsed, err := ParseCiphertext(s)
	require.NoError(t, err)
	assert.Equal(t, sampleCiphertext(), parsed)

	_, err = ParseCiphertext(primitive.Address{1}.String())
	require.Error(t, err)
}

func TestRecordPlaintext(t *testing.T) {
	_, decoded := testutil.RoundTrip(t, samplePlaintextRecord(), DecodeRecord[Plaintext])
	assert.Equal(t, OwnerPrivate, decoded.Owner.Type())
	entry, err := decoded.Entry("origin")
	require.NoError(t, err)
	assert.Equal(t, EntryPublic, entry.Type())
	assert.Equal(t, "{a: 1u8, b: {c: true}}", entry.String())
	_, err = decoded.Entry("missing")
	require.ErrorIs(t, err, codec.ErrIdentifierNotFound)
}

func TestRecordCiphertext(t *testing.T) {
	rec := sampleCiphertextRecord()
	encoded, decoded := testutil.RoundTrip(t, rec, DecodeRecord[Ciphertext])
	assert.Equal(t, OwnerPublic, decoded.Owner.Type())
	testutil.RequireTruncationFails(t, encoded, DecodeRecord[Ciphertext])

	s := rec.String()
	require.True(t, strings.HasPrefix(s, "record1"), s)
	parsed, err := ParseRecord[Ciphertext](s)
	require.NoError(t, err)
	reencoded, err := codec.Marshal(parsed)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestRecordRepresentationChosenByCaller(t *testing.T) {
	// The same bytes hold a private entry; only the caller knows whether
	// it is plaintext or ciphertext.
	encoded, err := codec.Marshal(sampleCiphertextRecord())
	require.NoError(t, err)
	_, err = codec.Decode(encoded, true, DecodeRecord[Plaintext])
	require.Error(t, err)

	_, err = codec.Decode(encoded, true, DecodeRecord[LiteralPlaintext])
	require.ErrorIs(t, err, codec.ErrRepresentation)
	assert.Equal(t, "representation", codec.Reason(err))
}

func TestVisibilityVariants(t *testing.T) {
	testDefs := []struct {
		family string
		tag    byte
		decode func([]byte) error
	}{
		{"Owner", 2, func(b []byte) error {
			_, err := codec.Decode(b, true, DecodeOwner[Plaintext])
			return err
		}},
		{"Balance", 2, func(b []byte) error {
			_, err := codec.Decode(b, true, DecodeBalance[Ciphertext])
			return err
		}},
		{"Entry", 3, func(b []byte) error {
			_, err := codec.Decode(b, true, DecodeEntry[Plaintext])
			return err
		}},
		{"Value", 2, func(b []byte) error {
			_, err := codec.Decode(b, true, DecodeValue)
			return err
		}},
	}
	for _, td := range testDefs {
		t.Run(td.family, func(t *testing.T) {
			err := td.decode([]byte{td.tag})
			var verr *codec.VariantError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, td.family, verr.Family)
			assert.Equal(t, uint64(td.tag), verr.Tag)
		})
	}
}

func TestBalance(t *testing.T) {
	encoded, decoded := testutil.RoundTrip[Balance[Ciphertext]](
		t,
		PublicBalance[Ciphertext]{Amount: 1000},
		DecodeBalance[Ciphertext],
	)
	assert.Equal(t, []byte{0x00, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}, encoded)
	assert.Equal(t, "1000", decoded.String())

	_, decoded = testutil.RoundTrip[Balance[Ciphertext]](
		t,
		PrivateBalance[Ciphertext]{Balance: sampleCiphertext()},
		DecodeBalance[Ciphertext],
	)
	assert.Equal(t, BalancePrivate, decoded.Type())
}

func TestRecordEntryLengthMismatch(t *testing.T) {
	w := codec.NewWriter()
	PublicOwner[Plaintext]{Address: primitive.Address{1}}.Encode(w)
	w.WriteUint8(1)
	w.WriteBytes([]byte{0x01, 'a'})
	entry, err := codec.Marshal(PublicEntry[Plaintext]{Plaintext: u8Plaintext(1)})
	require.NoError(t, err)
	w.WriteUint16(uint16(len(entry) + 1))
	w.WriteBytes(entry)
	w.WriteUint8(0)
	primitive.Group{}.Encode(w)
	data, err := w.Bytes()
	require.NoError(t, err)

	_, err = codec.Decode(data, true, DecodeRecord[Plaintext])
	require.ErrorIs(t, err, codec.ErrLengthMismatch)
}

func TestValue(t *testing.T) {
	_, decoded := testutil.RoundTrip[Value](t, RecordValue{Record: samplePlaintextRecord()}, DecodeValue)
	rv, ok := decoded.(RecordValue)
	require.True(t, ok)
	assert.Len(t, rv.Record.Data, 3)

	_, decoded = testutil.RoundTrip[Value](t, PlaintextValue{Plaintext: nestedPlaintext()}, DecodeValue)
	assert.Equal(t, ValuePlaintext, decoded.Type())
}

func TestRecordWithoutOwner(t *testing.T) {
	_, err := codec.Marshal(Record[Plaintext]{})
	require.ErrorIs(t, err, errNilOwner)
}
