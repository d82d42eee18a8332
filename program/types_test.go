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
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	testDefs := []struct {
		name  string
		valid bool
	}{
		{"main", true},
		{"transfer_public", true},
		{"a1", true},
		{"", false},
		{"1abc", false},
		{"_x", false},
		{"with space", false},
		{"dotted.name", false},
	}
	for _, testDef := range testDefs {
		_, err := NewIdentifier(testDef.name)
		if testDef.valid {
			require.NoError(t, err, testDef.name)
		} else {
			require.ErrorIs(t, err, codec.ErrNonCanonical, testDef.name)
		}
	}

	out, err := codec.Marshal(Identifier("main"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x04main"), out)

	_, err = DecodeIdentifier(codec.NewReader([]byte("\x02a-")))
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = codec.Marshal(Identifier("bad name"))
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestProgramIDAndLocator(t *testing.T) {
	id, err := ParseProgramID("credits.aleo")
	require.NoError(t, err)
	assert.Equal(t, ProgramID{Name: "credits", Network: "aleo"}, id)
	_, err = ParseProgramID("credits")
	require.Error(t, err)

	loc := Locator{ProgramID: id, Resource: "transfer"}
	assert.Equal(t, "credits.aleo/transfer", loc.String())
	out, err := codec.Marshal(loc)
	require.NoError(t, err)
	got, err := codec.Decode(out, true, DecodeLocator)
	require.NoError(t, err)
	assert.Equal(t, loc, got)
}

func TestLiteralRoundTrip(t *testing.T) {
	var addr primitive.Address
	addr[3] = 7
	testDefs := []struct {
		value LiteralValue
		text  string
		size  int
	}{
		{I8(-5), "-5i8", 1},
		{I16(300), "300i16", 2},
		{I32(-70000), "-70000i32", 4},
		{I64(1 << 40), "1099511627776i64", 8},
		{I128(codec.Int128From64(-2)), "-2i128", 16},
		{U8(255), "255u8", 1},
		{U16(65535), "65535u16", 2},
		{U32(5), "5u32", 4},
		{U64(10), "10u64", 8},
		{U128(codec.Uint128{Lo: 0, Hi: 1}), "18446744073709551616u128", 16},
		{BooleanLiteral{Boolean: true}, "true", 1},
		{FieldLiteral{Field: primitive.FieldFromUint64(3)}, "3field", 32},
		{GroupLiteral{}, "0group", 32},
		{ScalarLiteral{}, "0scalar", 32},
		{AddressLiteral{Address: addr}, addr.String(), 32},
		{StringLiteral("hi"), `"hi"`, 4},
	}
	for _, testDef := range testDefs {
		lit := Literal{Value: testDef.value}
		assert.Equal(t, testDef.text, lit.String())
		out, err := codec.Marshal(lit)
		require.NoError(t, err)
		require.Len(t, out, 2+testDef.size, testDef.text)
		got, err := codec.Decode(out, true, DecodeLiteral)
		require.NoError(t, err, testDef.text)
		assert.Equal(t, lit, got)
	}
}

func TestLiteralTypeVariant(t *testing.T) {
	_, err := DecodeLiteral(codec.NewReader([]byte{16, 0}))
	var varErr *codec.VariantError
	require.ErrorAs(t, err, &varErr)
	assert.Equal(t, "LiteralType", varErr.Family)
	assert.Equal(t, uint64(16), varErr.Tag)
}

func TestRegister(t *testing.T) {
	loc := LocatorRegister{Locator: 300}
	out, err := codec.Marshal(loc)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0xfd, 0x2c, 0x01}, out)
	assert.Equal(t, "r300", loc.String())

	member := MemberRegister{Locator: 1, Members: []Identifier{"a", "b"}}
	assert.Equal(t, "r1.a.b", member.String())
	out, err = codec.Marshal(member)
	require.NoError(t, err)
	got, err := codec.Decode(out, true, DecodeRegister)
	require.NoError(t, err)
	assert.Equal(t, Register(member), got)

	// A member register with no path keeps its own tag
	empty := MemberRegister{Locator: 1, Members: []Identifier{}}
	out, err = codec.Marshal(empty)
	require.NoError(t, err)
	got, err = codec.Decode(out, true, DecodeRegister)
	require.NoError(t, err)
	assert.Equal(t, RegisterMember, got.Type())

	_, err = DecodeRegister(codec.NewReader([]byte{2, 0}))
	require.ErrorIs(t, err, codec.ErrInvalidVariant)
}

func TestUnionVariantRejection(t *testing.T) {
	testDefs := []struct {
		family string
		data   []byte
		decode func(r *codec.Reader) error
	}{
		{"Operand", []byte{4}, func(r *codec.Reader) error { _, err := DecodeOperand(r); return err }},
		{"PlaintextType", []byte{2}, func(r *codec.Reader) error { _, err := DecodePlaintextType(r); return err }},
		{"RegisterType", []byte{3}, func(r *codec.Reader) error { _, err := DecodeRegisterType(r); return err }},
		{"ValueType", []byte{5}, func(r *codec.Reader) error { _, err := DecodeValueType(r); return err }},
		{"EntryType", []byte{3}, func(r *codec.Reader) error { _, err := DecodeEntryType(r); return err }},
		{"Command", []byte{4}, func(r *codec.Reader) error { _, err := DecodeCommand(r); return err }},
		{"CallOperator", []byte{2}, func(r *codec.Reader) error { _, err := DecodeCallOperator(r); return err }},
		{"PublicOrPrivate", []byte{2}, func(r *codec.Reader) error { _, err := DecodePublicOrPrivate(r); return err }},
		{"Instruction", []byte{byte(len(OpSpecs)), 0}, func(r *codec.Reader) error { _, err := DecodeInstruction(r); return err }},
	}
	for _, testDef := range testDefs {
		err := testDef.decode(codec.NewReader(testDef.data))
		var varErr *codec.VariantError
		require.ErrorAs(t, err, &varErr, testDef.family)
		assert.Equal(t, testDef.family, varErr.Family)
	}
}

func TestOpSpecs(t *testing.T) {
	assert.Len(t, OpSpecs, 56)
	assert.Equal(t, OpAdd, OpsByName["add"].Opcode)
	assert.Equal(t, Opcode(2), OpAdd)
	assert.Equal(t, "sqrt", OpSquareRoot.String())
	assert.Equal(t, ShapeAssert, OpsByName["assert.eq"].Shape)
	assert.Equal(t, 3, OpsByName["ternary"].Arity)
	assert.Equal(t, 1, OpsByName["hash.psd8"].Arity)
	assert.Equal(t, 2, OpsByName["commit.ped128"].Arity)
	assert.Equal(t, "unknown", Opcode(999).String())
}

func TestInstructionArityMismatch(t *testing.T) {
	inst := Instruction{
		Opcode: OpAdd,
		Operation: Literals{
			Operands:    []Operand{CallerOperand{}},
			Destination: LocatorRegister{},
		},
	}
	_, err := codec.Marshal(inst)
	require.ErrorIs(t, err, codec.ErrLengthMismatch)

	_, err = NewInstruction("add", Cast{})
	require.Error(t, err)
	_, err = NewInstruction("nope", Literals{})
	require.Error(t, err)
}

func TestInstructionShapes(t *testing.T) {
	r := func(n uint64) Register { return LocatorRegister{Locator: n} }
	op := func(n uint64) Operand { return RegisterOperand{Register: r(n)} }
	testDefs := []Instruction{
		{Opcode: OpNot, Operation: Literals{Operands: []Operand{op(0)}, Destination: r(1)}},
		{Opcode: OpTernary, Operation: Literals{Operands: []Operand{op(0), op(1), op(2)}, Destination: r(3)}},
		{Opcode: OpAssertEq, Operation: Assert{Operands: []Operand{op(0), CallerOperand{}}}},
		{Opcode: OpCall, Operation: Call{
			Operator: LocatorCallOperator{Locator: Locator{
				ProgramID: ProgramID{Name: "credits", Network: "aleo"},
				Resource:  "transfer",
			}},
			Operands:     []Operand{op(0), ProgramIDOperand{ProgramID: ProgramID{Name: "x", Network: "aleo"}}},
			Destinations: []Register{r(5)},
		}},
		{Opcode: OpCast, Operation: Cast{
			Operands:     []Operand{op(0)},
			Destination:  r(1),
			RegisterType: RecordRegisterType{Name: "token"},
		}},
	}
	for _, inst := range testDefs {
		out, err := codec.Marshal(inst)
		require.NoError(t, err, inst.Opcode.String())
		got, err := codec.Decode(out, true, DecodeInstruction)
		require.NoError(t, err, inst.Opcode.String())
		assert.Equal(t, inst, got)
	}
}

func TestTypeStrings(t *testing.T) {
	u8 := LiteralPlaintextType{LiteralType: LiteralTypeU8}
	loc := Locator{ProgramID: ProgramID{Name: "credits", Network: "aleo"}, Resource: "credits"}
	assert.Equal(t, "u8.constant", ConstantValueType(u8).String())
	assert.Equal(t, "token.record", RecordValueType{Name: "token"}.String())
	assert.Equal(t, "credits.aleo/credits.record", ExternalRecordValueType{Locator: loc}.String())
	assert.Equal(t, "credits.aleo/credits.record", ExternalRecordRegisterType{Locator: loc}.String())
	assert.Equal(t, "point", PlaintextRegisterType{PlaintextType: StructPlaintextType{Name: "point"}}.String())
	assert.Equal(t, "u8.private", EntryType{Visibility: EntryPrivate, PlaintextType: u8}.String())
	assert.Equal(t, "LiteralType(99)", LiteralType(99).String())
}
