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

package disasm

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/aleoledger/program"
)

// Literal renders a literal. Addresses use the configured prefix.
func (d *Disassembler) Literal(l program.Literal) (string, error) {
	switch v := l.Value.(type) {
	case nil:
		return "", fmt.Errorf("%w: empty literal", ErrUnrenderable)
	case program.AddressLiteral:
		return v.Bech32(d.addressPrefix), nil
	default:
		return v.String(), nil
	}
}

// Operand renders an instruction operand.
func (d *Disassembler) Operand(o program.Operand) (string, error) {
	switch v := o.(type) {
	case program.LiteralOperand:
		return d.Literal(v.Literal)
	case program.RegisterOperand, program.ProgramIDOperand, program.CallerOperand:
		return v.String(), nil
	}
	return "", fmt.Errorf("%w: operand %T", ErrUnrenderable, o)
}

func (d *Disassembler) operands(ops []program.Operand) (string, error) {
	parts := make([]string, 0, len(ops))
	for _, o := range ops {
		s, err := d.Operand(o)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

func registers(regs []program.Register) string {
	parts := make([]string, 0, len(regs))
	for _, r := range regs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ")
}

// Instruction renders an instruction without its trailing semicolon.
func (d *Disassembler) Instruction(inst program.Instruction) (string, error) {
	spec, ok := inst.Opcode.Spec()
	if !ok {
		return "", fmt.Errorf("%w: opcode %d", ErrUnrenderable, inst.Opcode)
	}
	var rest string
	switch op := inst.Operation.(type) {
	case program.Literals:
		ops, err := d.operands(op.Operands)
		if err != nil {
			return "", err
		}
		rest = ops + " into " + op.Destination.String()
	case program.Assert:
		ops, err := d.operands(op.Operands)
		if err != nil {
			return "", err
		}
		rest = ops
	case program.Call:
		ops, err := d.operands(op.Operands)
		if err != nil {
			return "", err
		}
		rest = op.Operator.String() + " " + ops + " into " + registers(op.Destinations)
	case program.Cast:
		ops, err := d.operands(op.Operands)
		if err != nil {
			return "", err
		}
		rest = ops + " into " + op.Destination.String() + " as " + op.RegisterType.String()
	default:
		return "", fmt.Errorf("%w: %s operation %T", ErrUnrenderable, spec.Name, inst.Operation)
	}
	return spec.Name + " " + rest, nil
}

// Command renders a finalize command without its trailing semicolon.
func (d *Disassembler) Command(c program.Command) (string, error) {
	switch v := c.(type) {
	case program.InstructionCommand:
		return d.Instruction(v.Instruction)
	case program.GetCommand:
		key, err := d.Operand(v.Key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("get %s[%s] into %s", v.Mapping, key, v.Destination), nil
	case program.GetOrInitCommand:
		key, err := d.Operand(v.Key)
		if err != nil {
			return "", err
		}
		def, err := d.Operand(v.Default)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("get.or_init %s[%s] %s into %s", v.Mapping, key, def, v.Destination), nil
	case program.SetCommand:
		key, err := d.Operand(v.Key)
		if err != nil {
			return "", err
		}
		value, err := d.Operand(v.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("set %s into %s[%s]", value, v.Mapping, key), nil
	}
	return "", fmt.Errorf("%w: command %T", ErrUnrenderable, c)
}
