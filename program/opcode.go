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

// Opcode is the u16 discriminant of an instruction.
type Opcode uint16

const (
	OpAbs Opcode = iota
	OpAbsWrapped
	OpAdd
	OpAddWrapped
	OpAnd
	OpAssertEq
	OpAssertNeq
	OpCall
	OpCast
	OpCommitBHP256
	OpCommitBHP512
	OpCommitBHP768
	OpCommitBHP1024
	OpCommitPED64
	OpCommitPED128
	OpDiv
	OpDivWrapped
	OpDouble
	OpGreaterThan
	OpGreaterThanOrEqual
	OpHashBHP256
	OpHashBHP512
	OpHashBHP768
	OpHashBHP1024
	OpHashPED64
	OpHashPED128
	OpHashPSD2
	OpHashPSD4
	OpHashPSD8
	OpInv
	OpIsEq
	OpIsNeq
	OpLessThan
	OpLessThanOrEqual
	OpModulo
	OpMul
	OpMulWrapped
	OpNand
	OpNeg
	OpNor
	OpNot
	OpOr
	OpPow
	OpPowWrapped
	OpRem
	OpRemWrapped
	OpShl
	OpShlWrapped
	OpShr
	OpShrWrapped
	OpSquare
	OpSquareRoot
	OpSub
	OpSubWrapped
	OpTernary
	OpXor
)

// Shape is the payload layout that follows an opcode.
type Shape uint8

const (
	// ShapeLiterals is a fixed number of operands and one destination
	ShapeLiterals Shape = iota
	// ShapeAssert is two operands and no destination
	ShapeAssert
	ShapeCall
	ShapeCast
)

// Feature tags group opcodes for structural fingerprinting.
const (
	FeatureArithmetic = 'a'
	FeatureBitwise    = 'b'
	FeatureCompare    = 'c'
	FeatureAssert     = 'x'
	FeatureHash       = 'h'
	FeatureCommit     = 'm'
	FeatureCall       = 'k'
	FeatureCast       = 't'
	FeatureTernary    = 'e'
)

// OpSpec describes one opcode.
type OpSpec struct {
	Opcode  Opcode
	Name    string
	Shape   Shape
	Arity   int // operand count for ShapeLiterals and ShapeAssert
	Feature byte
}

func unary(op Opcode, name string, feature byte) OpSpec {
	return OpSpec{Opcode: op, Name: name, Shape: ShapeLiterals, Arity: 1, Feature: feature}
}

func binary(op Opcode, name string, feature byte) OpSpec {
	return OpSpec{Opcode: op, Name: name, Shape: ShapeLiterals, Arity: 2, Feature: feature}
}

// OpSpecs is indexed by opcode.
var OpSpecs = []OpSpec{
	unary(OpAbs, "abs", FeatureArithmetic),
	unary(OpAbsWrapped, "abs.w", FeatureArithmetic),
	binary(OpAdd, "add", FeatureArithmetic),
	binary(OpAddWrapped, "add.w", FeatureArithmetic),
	binary(OpAnd, "and", FeatureBitwise),
	{Opcode: OpAssertEq, Name: "assert.eq", Shape: ShapeAssert, Arity: 2, Feature: FeatureAssert},
	{Opcode: OpAssertNeq, Name: "assert.neq", Shape: ShapeAssert, Arity: 2, Feature: FeatureAssert},
	{Opcode: OpCall, Name: "call", Shape: ShapeCall, Feature: FeatureCall},
	{Opcode: OpCast, Name: "cast", Shape: ShapeCast, Feature: FeatureCast},
	binary(OpCommitBHP256, "commit.bhp256", FeatureCommit),
	binary(OpCommitBHP512, "commit.bhp512", FeatureCommit),
	binary(OpCommitBHP768, "commit.bhp768", FeatureCommit),
	binary(OpCommitBHP1024, "commit.bhp1024", FeatureCommit),
	binary(OpCommitPED64, "commit.ped64", FeatureCommit),
	binary(OpCommitPED128, "commit.ped128", FeatureCommit),
	binary(OpDiv, "div", FeatureArithmetic),
	binary(OpDivWrapped, "div.w", FeatureArithmetic),
	unary(OpDouble, "double", FeatureArithmetic),
	binary(OpGreaterThan, "gt", FeatureCompare),
	binary(OpGreaterThanOrEqual, "gte", FeatureCompare),
	unary(OpHashBHP256, "hash.bhp256", FeatureHash),
	unary(OpHashBHP512, "hash.bhp512", FeatureHash),
	unary(OpHashBHP768, "hash.bhp768", FeatureHash),
	unary(OpHashBHP1024, "hash.bhp1024", FeatureHash),
	unary(OpHashPED64, "hash.ped64", FeatureHash),
	unary(OpHashPED128, "hash.ped128", FeatureHash),
	unary(OpHashPSD2, "hash.psd2", FeatureHash),
	unary(OpHashPSD4, "hash.psd4", FeatureHash),
	unary(OpHashPSD8, "hash.psd8", FeatureHash),
	unary(OpInv, "inv", FeatureArithmetic),
	binary(OpIsEq, "is.eq", FeatureCompare),
	binary(OpIsNeq, "is.neq", FeatureCompare),
	binary(OpLessThan, "lt", FeatureCompare),
	binary(OpLessThanOrEqual, "lte", FeatureCompare),
	binary(OpModulo, "mod", FeatureArithmetic),
	binary(OpMul, "mul", FeatureArithmetic),
	binary(OpMulWrapped, "mul.w", FeatureArithmetic),
	binary(OpNand, "nand", FeatureBitwise),
	unary(OpNeg, "neg", FeatureArithmetic),
	binary(OpNor, "nor", FeatureBitwise),
	unary(OpNot, "not", FeatureBitwise),
	binary(OpOr, "or", FeatureBitwise),
	binary(OpPow, "pow", FeatureArithmetic),
	binary(OpPowWrapped, "pow.w", FeatureArithmetic),
	binary(OpRem, "rem", FeatureArithmetic),
	binary(OpRemWrapped, "rem.w", FeatureArithmetic),
	binary(OpShl, "shl", FeatureBitwise),
	binary(OpShlWrapped, "shl.w", FeatureBitwise),
	binary(OpShr, "shr", FeatureBitwise),
	binary(OpShrWrapped, "shr.w", FeatureBitwise),
	unary(OpSquare, "square", FeatureArithmetic),
	unary(OpSquareRoot, "sqrt", FeatureArithmetic),
	binary(OpSub, "sub", FeatureArithmetic),
	binary(OpSubWrapped, "sub.w", FeatureArithmetic),
	{Opcode: OpTernary, Name: "ternary", Shape: ShapeLiterals, Arity: 3, Feature: FeatureTernary},
	binary(OpXor, "xor", FeatureBitwise),
}

// OpsByName maps a mnemonic to its OpSpec.
var OpsByName = make(map[string]OpSpec, len(OpSpecs))

func init() {
	for i, spec := range OpSpecs {
		if int(spec.Opcode) != i {
			panic("opcode table out of order at " + spec.Name)
		}
		OpsByName[spec.Name] = spec
	}
}

// Spec returns the OpSpec for op.
func (op Opcode) Spec() (OpSpec, bool) {
	if int(op) >= len(OpSpecs) {
		return OpSpec{}, false
	}
	return OpSpecs[op], true
}

func (op Opcode) String() string {
	if spec, ok := op.Spec(); ok {
		return spec.Name
	}
	return "unknown"
}
