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
	"fmt"

	"github.com/blinklabs-io/aleoledger/codec"
)

// Operation is the shape-specific payload of an instruction.
type Operation interface {
	Shape() Shape
	encode(w *codec.Writer, spec OpSpec)
}

// Literals is a fixed number of operands followed by a destination.
type Literals struct {
	Operands    []Operand
	Destination Register
}

func (Literals) Shape() Shape { return ShapeLiterals }

func (o Literals) encode(w *codec.Writer, spec OpSpec) {
	if len(o.Operands) != spec.Arity {
		w.Fail(fmt.Errorf(
			"%w: %s takes %d operands, have %d",
			codec.ErrLengthMismatch,
			spec.Name,
			spec.Arity,
			len(o.Operands),
		))
		return
	}
	codec.EncodeN(w, o.Operands, encodeOperand)
	o.Destination.Encode(w)
}

// Assert compares its operands and has no destination.
type Assert struct {
	Operands []Operand
}

func (Assert) Shape() Shape { return ShapeAssert }

func (o Assert) encode(w *codec.Writer, spec OpSpec) {
	if len(o.Operands) != spec.Arity {
		w.Fail(fmt.Errorf(
			"%w: %s takes %d operands, have %d",
			codec.ErrLengthMismatch,
			spec.Name,
			spec.Arity,
			len(o.Operands),
		))
		return
	}
	codec.EncodeN(w, o.Operands, encodeOperand)
}

type Call struct {
	Operator     CallOperator
	Operands     []Operand
	Destinations []Register
}

func (Call) Shape() Shape { return ShapeCall }

func (o Call) encode(w *codec.Writer, _ OpSpec) {
	o.Operator.Encode(w)
	codec.EncodeVec(w, codec.U8, o.Operands, encodeOperand)
	codec.EncodeVec(w, codec.U8, o.Destinations, encodeRegister)
}

type Cast struct {
	Operands     []Operand
	Destination  Register
	RegisterType RegisterType
}

func (Cast) Shape() Shape { return ShapeCast }

func (o Cast) encode(w *codec.Writer, _ OpSpec) {
	codec.EncodeVec(w, codec.U8, o.Operands, encodeOperand)
	o.Destination.Encode(w)
	o.RegisterType.Encode(w)
}

// Instruction is an opcode and its operation.
type Instruction struct {
	Opcode    Opcode
	Operation Operation
}

// NewInstruction builds an instruction for the named mnemonic.
func NewInstruction(name string, op Operation) (Instruction, error) {
	spec, ok := OpsByName[name]
	if !ok {
		return Instruction{}, fmt.Errorf("unknown instruction %q", name)
	}
	if op.Shape() != spec.Shape {
		return Instruction{}, fmt.Errorf("instruction %q does not take this operation shape", name)
	}
	return Instruction{Opcode: spec.Opcode, Operation: op}, nil
}

func (i Instruction) Spec() OpSpec {
	spec, _ := i.Opcode.Spec()
	return spec
}

func (i Instruction) Encode(w *codec.Writer) {
	spec, ok := i.Opcode.Spec()
	if !ok {
		w.Fail(&codec.VariantError{Family: "Instruction", Tag: uint64(i.Opcode)})
		return
	}
	if i.Operation == nil || i.Operation.Shape() != spec.Shape {
		w.Fail(fmt.Errorf("%w: operation does not match %s", codec.ErrInvalidVariant, spec.Name))
		return
	}
	w.WriteUint16(uint16(i.Opcode))
	i.Operation.encode(w, spec)
}

func DecodeInstruction(r *codec.Reader) (Instruction, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return Instruction{}, fmt.Errorf("decode instruction: %w", err)
	}
	spec, ok := Opcode(v).Spec()
	if !ok {
		return Instruction{}, &codec.VariantError{Family: "Instruction", Tag: uint64(v)}
	}
	var op Operation
	switch spec.Shape {
	case ShapeLiterals:
		op, err = decodeLiterals(r, spec.Arity)
	case ShapeAssert:
		var operands []Operand
		operands, err = codec.DecodeN(r, spec.Arity, DecodeOperand)
		op = Assert{Operands: operands}
	case ShapeCall:
		op, err = decodeCall(r)
	case ShapeCast:
		op, err = decodeCast(r)
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("decode %s: %w", spec.Name, err)
	}
	return Instruction{Opcode: spec.Opcode, Operation: op}, nil
}

func decodeLiterals(r *codec.Reader, arity int) (Literals, error) {
	operands, err := codec.DecodeN(r, arity, DecodeOperand)
	if err != nil {
		return Literals{}, err
	}
	dest, err := DecodeRegister(r)
	if err != nil {
		return Literals{}, err
	}
	return Literals{Operands: operands, Destination: dest}, nil
}

func decodeCall(r *codec.Reader) (Call, error) {
	operator, err := DecodeCallOperator(r)
	if err != nil {
		return Call{}, err
	}
	operands, err := codec.DecodeVec(r, codec.U8, DecodeOperand)
	if err != nil {
		return Call{}, err
	}
	dests, err := codec.DecodeVec(r, codec.U8, DecodeRegister)
	if err != nil {
		return Call{}, err
	}
	return Call{Operator: operator, Operands: operands, Destinations: dests}, nil
}

func decodeCast(r *codec.Reader) (Cast, error) {
	operands, err := codec.DecodeVec(r, codec.U8, DecodeOperand)
	if err != nil {
		return Cast{}, err
	}
	dest, err := DecodeRegister(r)
	if err != nil {
		return Cast{}, err
	}
	rt, err := DecodeRegisterType(r)
	if err != nil {
		return Cast{}, err
	}
	return Cast{Operands: operands, Destination: dest, RegisterType: rt}, nil
}

func encodeInstruction(w *codec.Writer, i Instruction) {
	i.Encode(w)
}

// FeatureString collapses consecutive equal feature tags of the
// instructions into one.
func FeatureString(instructions []Instruction) string {
	ret := make([]byte, 0, len(instructions))
	for _, inst := range instructions {
		tag := inst.Spec().Feature
		if len(ret) > 0 && ret[len(ret)-1] == tag {
			continue
		}
		ret = append(ret, tag)
	}
	return string(ret)
}
