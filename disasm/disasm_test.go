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

package disasm_test

import (
	"strings"
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/disasm"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/blinklabs-io/aleoledger/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelloWorld(t *testing.T) {
	testDefs := []struct {
		function string
		indent   string
		expected string
	}{
		{
			function: "main",
			indent:   disasm.DefaultIndent,
			expected: "program helloworld.aleo;\n" +
				"\n" +
				"function main:\n" +
				"  input r0 as u32.public;\n" +
				"  input r1 as u32.private;\n" +
				"  add r0 r1 into r2;\n" +
				"  output r2 as u32.private;\n" +
				"\n",
		},
		{
			function: "hello",
			indent:   "    ",
			expected: "program helloworld.aleo;\n" +
				"\n" +
				"function hello:\n" +
				"    input r0 as u32.public;\n" +
				"    input r1 as u32.private;\n" +
				"    add r0 r1 into r2;\n" +
				"    output r2 as u32.private;\n" +
				"\n",
		},
	}
	for _, testDef := range testDefs {
		p, err := codec.Decode(
			testutil.HelloWorldBytes(testDef.function),
			true,
			program.DecodeProgram,
		)
		require.NoError(t, err)
		text, err := disasm.New(disasm.WithIndent(testDef.indent)).Program(p)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, text)
	}
}

func TestTokenProgram(t *testing.T) {
	p := testutil.TokenProgram(t)
	// Render the decoded form so the text reflects what came off the wire
	_, decoded := testutil.RoundTrip(t, p, program.DecodeProgram)
	text, err := disasm.Disassemble(decoded)
	require.NoError(t, err)
	assert.Equal(t, testutil.TokenSource, text)
}

func TestAddressPrefix(t *testing.T) {
	var addr primitive.Address
	addr[0] = 1
	lit := program.Literal{Value: program.AddressLiteral{Address: addr}}

	s, err := disasm.New().Literal(lit)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "aleo1"))
	assert.Equal(t, addr.String(), s)

	s, err = disasm.New(disasm.WithAddressPrefix("tleo")).Literal(lit)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "tleo1"))
}

func TestLiterals(t *testing.T) {
	d := disasm.New()
	testDefs := []struct {
		value    program.LiteralValue
		expected string
	}{
		{program.U8(7), "7u8"},
		{program.I64(-3), "-3i64"},
		{program.BooleanLiteral{Boolean: false}, "false"},
		{program.FieldLiteral{Field: primitive.FieldFromUint64(12)}, "12field"},
		{program.StringLiteral("a b"), `"a b"`},
	}
	for _, testDef := range testDefs {
		s, err := d.Literal(program.Literal{Value: testDef.value})
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, s)
	}
	_, err := d.Literal(program.Literal{})
	require.ErrorIs(t, err, disasm.ErrUnrenderable)
}

func TestCommands(t *testing.T) {
	d := disasm.New()
	r := func(n uint64) program.Register { return program.LocatorRegister{Locator: n} }
	op := func(n uint64) program.Operand { return program.RegisterOperand{Register: r(n)} }
	testDefs := []struct {
		command  program.Command
		expected string
	}{
		{program.GetCommand{Mapping: "m", Key: op(0), Destination: r(1)}, "get m[r0] into r1"},
		{
			program.GetOrInitCommand{
				Mapping:     "m",
				Key:         op(0),
				Default:     program.LiteralOperand{Literal: program.Literal{Value: program.U64(0)}},
				Destination: r(1),
			},
			"get.or_init m[r0] 0u64 into r1",
		},
		{program.SetCommand{Mapping: "m", Key: op(0), Value: op(2)}, "set r2 into m[r0]"},
		{
			program.InstructionCommand{Instruction: program.Instruction{
				Opcode:    program.OpSubWrapped,
				Operation: program.Literals{Operands: []program.Operand{op(0), op(1)}, Destination: r(2)},
			}},
			"sub.w r0 r1 into r2",
		},
	}
	for _, testDef := range testDefs {
		s, err := d.Command(testDef.command)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, s)
	}
}

func TestInstructionErrors(t *testing.T) {
	d := disasm.New()
	_, err := d.Instruction(program.Instruction{Opcode: 500})
	require.ErrorIs(t, err, disasm.ErrUnrenderable)
	_, err = d.Instruction(program.Instruction{Opcode: program.OpAdd})
	require.ErrorIs(t, err, disasm.ErrUnrenderable)
}
