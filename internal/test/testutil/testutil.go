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

// Package testutil provides shared fixtures and assertions for codec tests.
package testutil

import (
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/program"
	"github.com/stretchr/testify/require"
)

// RoundTrip encodes v, decodes the bytes strictly, and requires that the
// decoded value re-encodes to the same bytes. It returns the encoding and
// the decoded value.
func RoundTrip[T codec.Encoder](
	t *testing.T,
	v T,
	decode codec.DecodeFunc[T],
) ([]byte, T) {
	t.Helper()
	encoded, err := codec.Marshal(v)
	require.NoError(t, err, "encode")
	decoded, err := codec.Decode(encoded, true, decode)
	require.NoError(t, err, "decode")
	reencoded, err := codec.Marshal(decoded)
	require.NoError(t, err, "re-encode")
	require.Equal(t, encoded, reencoded, "re-encoded bytes differ")
	return encoded, decoded
}

// RequireTruncationFails decodes every strict prefix of data and requires
// each attempt to fail.
func RequireTruncationFails[T any](
	t *testing.T,
	data []byte,
	decode codec.DecodeFunc[T],
) {
	t.Helper()
	for i := range len(data) {
		_, err := codec.Decode(data[:i], false, decode)
		require.Error(t, err, "prefix of %d/%d bytes decoded", i, len(data))
	}
}

func reg(n uint64) program.Register {
	return program.LocatorRegister{Locator: n}
}

func regOp(n uint64) program.Operand {
	return program.RegisterOperand{Register: reg(n)}
}

func literalType(t program.LiteralType) program.PlaintextType {
	return program.LiteralPlaintextType{LiteralType: t}
}

// HelloWorldBytes is the encoding of the minimal program helloworld.aleo
// whose single function has the given name.
func HelloWorldBytes(function string) []byte {
	id := "\x0ahelloworld\x04aleo"
	body := "\x00\x01\x00\x04" + string([]byte{byte(len(function))}) + function +
		"\x02\x00\x00\x00\x01\x00\x0b\x00\x00\x01\x02\x00\x0b\x00" +
		"\x01\x00\x00\x00\x02\x00\x01\x00\x00\x01\x00\x01\x00\x02\x01\x00\x01\x00\x02\x02\x00\x0b\x00\x00"
	return []byte("\x01" + id + body)
}

// HelloWorldProgram builds the same program as HelloWorldBytes.
func HelloWorldProgram(t *testing.T, function string) *program.Program {
	t.Helper()
	u32 := literalType(program.LiteralTypeU32)
	add, err := program.NewInstruction("add", program.Literals{
		Operands:    []program.Operand{regOp(0), regOp(1)},
		Destination: reg(2),
	})
	require.NoError(t, err)
	p, err := program.NewProgram(
		program.ProgramID{Name: "helloworld", Network: "aleo"},
		nil,
		program.Function{
			Name: program.Identifier(function),
			Inputs: []program.FunctionInput{
				{Register: reg(0), ValueType: program.PublicValueType(u32)},
				{Register: reg(1), ValueType: program.PrivateValueType(u32)},
			},
			Instructions: []program.Instruction{add},
			Outputs: []program.FunctionOutput{
				{Operand: regOp(2), ValueType: program.PrivateValueType(u32)},
			},
		},
	)
	require.NoError(t, err)
	return p
}

// TokenSource is the assembly of TokenProgram as rendered with a two-space
// indent.
const TokenSource = `import credits.aleo;

program token.aleo;

mapping account:
  key owner as address;
  value amount as u64;

struct point:
  x as i32;
  y as i32;

record token:
  owner as address.private;
  amount as u64.private;
  origin as point.public;

closure scale:
  input r0 as u64;
  input r1 as point;
  mul r0 2u64 into r2;
  assert.neq r2 0u64;
  ternary true r2 r0 into r3;
  cast r1.x r1.y into r4 as point;
  output r3 as u64;

function mint_public:
  input r0 as address.public;
  input r1 as u64.public;
  call scale r1 r0 into r2 r3;
  hash.bhp256 r1 into r4;
  finalize r0 r1;

finalize mint_public:
  input r0 as address;
  input r1 as u64;
  get.or_init account[r0] 0u64 into r2;
  add r2 r1 into r3;
  set r3 into account[r0];
  get account[self.caller] into r4;

function transfer:
  input r0 as token.record;
  input r1 as credits.aleo/credits.record;
  is.eq r0.owner self.caller into r2;
  output r0 as token.record;
  output r2 as boolean.private;

`

// TokenProgram builds a program exercising every definition kind, every
// instruction shape and every finalize command, with definitions declared
// in an order that differs from their grouping by kind.
func TokenProgram(t *testing.T) *program.Program {
	t.Helper()
	u64 := literalType(program.LiteralTypeU64)
	i32 := literalType(program.LiteralTypeI32)
	addr := literalType(program.LiteralTypeAddress)
	point := program.StructPlaintextType{Name: "point"}
	credits := program.ProgramID{Name: "credits", Network: "aleo"}
	lit := func(v program.LiteralValue) program.Operand {
		return program.LiteralOperand{Literal: program.Literal{Value: v}}
	}
	inst := func(name string, op program.Operation) program.Instruction {
		i, err := program.NewInstruction(name, op)
		require.NoError(t, err)
		return i
	}
	member := func(n uint64, names ...program.Identifier) program.Register {
		return program.MemberRegister{Locator: n, Members: names}
	}

	account := program.Mapping{
		Name:  "account",
		Key:   program.MapEntry{Name: "owner", PlaintextType: addr},
		Value: program.MapEntry{Name: "amount", PlaintextType: u64},
	}
	pointStruct := program.Struct{
		Name: "point",
		Members: []program.StructMember{
			{Name: "x", PlaintextType: i32},
			{Name: "y", PlaintextType: i32},
		},
	}
	token := program.RecordType{
		Name:  "token",
		Owner: program.Private,
		Entries: []program.RecordEntry{
			{Name: "amount", EntryType: program.EntryType{Visibility: program.EntryPrivate, PlaintextType: u64}},
			{Name: "origin", EntryType: program.EntryType{Visibility: program.EntryPublic, PlaintextType: point}},
		},
	}
	scale := program.Closure{
		Name: "scale",
		Inputs: []program.ClosureInput{
			{Register: reg(0), RegisterType: program.PlaintextRegisterType{PlaintextType: u64}},
			{Register: reg(1), RegisterType: program.PlaintextRegisterType{PlaintextType: point}},
		},
		Instructions: []program.Instruction{
			inst("mul", program.Literals{
				Operands:    []program.Operand{regOp(0), lit(program.U64(2))},
				Destination: reg(2),
			}),
			inst("assert.neq", program.Assert{
				Operands: []program.Operand{regOp(2), lit(program.U64(0))},
			}),
			inst("ternary", program.Literals{
				Operands: []program.Operand{
					lit(program.BooleanLiteral{Boolean: true}),
					regOp(2),
					regOp(0),
				},
				Destination: reg(3),
			}),
			inst("cast", program.Cast{
				Operands: []program.Operand{
					program.RegisterOperand{Register: member(1, "x")},
					program.RegisterOperand{Register: member(1, "y")},
				},
				Destination:  reg(4),
				RegisterType: program.PlaintextRegisterType{PlaintextType: point},
			}),
		},
		Outputs: []program.ClosureOutput{
			{Operand: regOp(3), RegisterType: program.PlaintextRegisterType{PlaintextType: u64}},
		},
	}
	mint := program.Function{
		Name: "mint_public",
		Inputs: []program.FunctionInput{
			{Register: reg(0), ValueType: program.PublicValueType(addr)},
			{Register: reg(1), ValueType: program.PublicValueType(u64)},
		},
		Instructions: []program.Instruction{
			inst("call", program.Call{
				Operator:     program.ResourceCallOperator{Resource: "scale"},
				Operands:     []program.Operand{regOp(1), regOp(0)},
				Destinations: []program.Register{reg(2), reg(3)},
			}),
			inst("hash.bhp256", program.Literals{
				Operands:    []program.Operand{regOp(1)},
				Destination: reg(4),
			}),
		},
		Finalize: codec.Some(program.FunctionFinalize{
			Command: program.FinalizeCommand{
				Operands: []program.Operand{regOp(0), regOp(1)},
			},
			Finalize: program.Finalize{
				Name: "mint_public",
				Inputs: []program.FinalizeInput{
					{Register: reg(0), PlaintextType: addr},
					{Register: reg(1), PlaintextType: u64},
				},
				Commands: []program.Command{
					program.GetOrInitCommand{
						Mapping:     "account",
						Key:         regOp(0),
						Default:     lit(program.U64(0)),
						Destination: reg(2),
					},
					program.InstructionCommand{Instruction: inst("add", program.Literals{
						Operands:    []program.Operand{regOp(2), regOp(1)},
						Destination: reg(3),
					})},
					program.SetCommand{Mapping: "account", Key: regOp(0), Value: regOp(3)},
					program.GetCommand{
						Mapping:     "account",
						Key:         program.CallerOperand{},
						Destination: reg(4),
					},
				},
			},
		}),
	}
	transfer := program.Function{
		Name: "transfer",
		Inputs: []program.FunctionInput{
			{Register: reg(0), ValueType: program.RecordValueType{Name: "token"}},
			{Register: reg(1), ValueType: program.ExternalRecordValueType{
				Locator: program.Locator{ProgramID: credits, Resource: "credits"},
			}},
		},
		Instructions: []program.Instruction{
			inst("is.eq", program.Literals{
				Operands: []program.Operand{
					program.RegisterOperand{Register: member(0, "owner")},
					program.CallerOperand{},
				},
				Destination: reg(2),
			}),
		},
		Outputs: []program.FunctionOutput{
			{Operand: regOp(0), ValueType: program.RecordValueType{Name: "token"}},
			{Operand: regOp(2), ValueType: program.PrivateValueType(literalType(program.LiteralTypeBoolean))},
		},
	}
	// Declared out of kind order: the encoding must preserve this order
	p, err := program.NewProgram(
		program.ProgramID{Name: "token", Network: "aleo"},
		[]program.Import{{ProgramID: credits}},
		mint,
		pointStruct,
		account,
		scale,
		token,
		transfer,
	)
	require.NoError(t, err)
	return p
}
