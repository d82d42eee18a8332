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

type CommandTag uint8

const (
	CommandInstruction CommandTag = iota
	CommandGet
	CommandGetOrInit
	CommandSet
)

// Command is one step of a finalize block.
type Command interface {
	codec.Encoder
	Type() CommandTag
	isCommand()
}

type InstructionCommand struct {
	Instruction Instruction
}

func (InstructionCommand) Type() CommandTag { return CommandInstruction }
func (InstructionCommand) isCommand()       {}

func (c InstructionCommand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CommandInstruction))
	c.Instruction.Encode(w)
}

// GetCommand reads mapping[key] into a register.
type GetCommand struct {
	Mapping     Identifier
	Key         Operand
	Destination Register
}

func (GetCommand) Type() CommandTag { return CommandGet }
func (GetCommand) isCommand()       {}

func (c GetCommand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CommandGet))
	c.Mapping.Encode(w)
	c.Key.Encode(w)
	c.Destination.Encode(w)
}

// GetOrInitCommand reads mapping[key], falling back to a default.
type GetOrInitCommand struct {
	Mapping     Identifier
	Key         Operand
	Default     Operand
	Destination Register
}

func (GetOrInitCommand) Type() CommandTag { return CommandGetOrInit }
func (GetOrInitCommand) isCommand()       {}

func (c GetOrInitCommand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CommandGetOrInit))
	c.Mapping.Encode(w)
	c.Key.Encode(w)
	c.Default.Encode(w)
	c.Destination.Encode(w)
}

// SetCommand stores a value at mapping[key].
type SetCommand struct {
	Mapping Identifier
	Key     Operand
	Value   Operand
}

func (SetCommand) Type() CommandTag { return CommandSet }
func (SetCommand) isCommand()       {}

func (c SetCommand) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(CommandSet))
	c.Mapping.Encode(w)
	c.Key.Encode(w)
	c.Value.Encode(w)
}

func DecodeCommand(r *codec.Reader) (Command, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	switch CommandTag(tag) {
	case CommandInstruction:
		inst, err := DecodeInstruction(r)
		if err != nil {
			return nil, err
		}
		return InstructionCommand{Instruction: inst}, nil
	case CommandGet:
		mapping, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		key, err := DecodeOperand(r)
		if err != nil {
			return nil, err
		}
		dest, err := DecodeRegister(r)
		if err != nil {
			return nil, err
		}
		return GetCommand{Mapping: mapping, Key: key, Destination: dest}, nil
	case CommandGetOrInit:
		mapping, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		key, err := DecodeOperand(r)
		if err != nil {
			return nil, err
		}
		def, err := DecodeOperand(r)
		if err != nil {
			return nil, err
		}
		dest, err := DecodeRegister(r)
		if err != nil {
			return nil, err
		}
		return GetOrInitCommand{
			Mapping:     mapping,
			Key:         key,
			Default:     def,
			Destination: dest,
		}, nil
	case CommandSet:
		mapping, err := DecodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		key, err := DecodeOperand(r)
		if err != nil {
			return nil, err
		}
		value, err := DecodeOperand(r)
		if err != nil {
			return nil, err
		}
		return SetCommand{Mapping: mapping, Key: key, Value: value}, nil
	}
	return nil, &codec.VariantError{Family: "Command", Tag: uint64(tag)}
}

func encodeCommand(w *codec.Writer, c Command) {
	c.Encode(w)
}

// FinalizeCommand passes operands from a function body to its finalize
// block.
type FinalizeCommand struct {
	Operands []Operand
}

func DecodeFinalizeCommand(r *codec.Reader) (FinalizeCommand, error) {
	operands, err := codec.DecodeVec(r, codec.U8, DecodeOperand)
	if err != nil {
		return FinalizeCommand{}, fmt.Errorf("decode finalize command: %w", err)
	}
	return FinalizeCommand{Operands: operands}, nil
}

func (c FinalizeCommand) Encode(w *codec.Writer) {
	codec.EncodeVec(w, codec.U8, c.Operands, encodeOperand)
}

type FinalizeInput struct {
	Register      Register
	PlaintextType PlaintextType
}

func DecodeFinalizeInput(r *codec.Reader) (FinalizeInput, error) {
	reg, err := DecodeRegister(r)
	if err != nil {
		return FinalizeInput{}, err
	}
	pt, err := DecodePlaintextType(r)
	if err != nil {
		return FinalizeInput{}, err
	}
	return FinalizeInput{Register: reg, PlaintextType: pt}, nil
}

func (i FinalizeInput) Encode(w *codec.Writer) {
	i.Register.Encode(w)
	i.PlaintextType.Encode(w)
}

// Finalize is the on-chain state update block of a function.
type Finalize struct {
	Name     Identifier
	Inputs   []FinalizeInput
	Commands []Command
}

func DecodeFinalize(r *codec.Reader) (Finalize, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return Finalize{}, err
	}
	inputs, err := codec.DecodeVec(r, codec.U16, DecodeFinalizeInput)
	if err != nil {
		return Finalize{}, fmt.Errorf("decode finalize %s inputs: %w", name, err)
	}
	commands, err := codec.DecodeVec(r, codec.U16, DecodeCommand)
	if err != nil {
		return Finalize{}, fmt.Errorf("decode finalize %s commands: %w", name, err)
	}
	return Finalize{Name: name, Inputs: inputs, Commands: commands}, nil
}

func (f Finalize) Encode(w *codec.Writer) {
	f.Name.Encode(w)
	codec.EncodeVec(w, codec.U16, f.Inputs, codec.Encode[FinalizeInput])
	codec.EncodeVec(w, codec.U16, f.Commands, encodeCommand)
}
