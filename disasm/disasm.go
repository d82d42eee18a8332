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

// Package disasm renders a decoded program back into its assembly text.
package disasm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/blinklabs-io/aleoledger/program"
)

const DefaultIndent = "  "

var ErrUnrenderable = errors.New("disasm: value cannot be rendered")

// Disassembler holds rendering options. The zero value is not usable; use
// New.
type Disassembler struct {
	indent        string
	addressPrefix string
}

type Option func(*Disassembler)

// WithIndent sets the string used for each nesting level.
func WithIndent(indent string) Option {
	return func(d *Disassembler) {
		d.indent = indent
	}
}

// WithAddressPrefix sets the bech32m prefix of address literals.
func WithAddressPrefix(prefix string) Option {
	return func(d *Disassembler) {
		d.addressPrefix = prefix
	}
}

func New(opts ...Option) *Disassembler {
	d := &Disassembler{
		indent:        DefaultIndent,
		addressPrefix: primitive.AddressPrefix,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Disassemble renders p with the default options.
func Disassemble(p *program.Program) (string, error) {
	return New().Program(p)
}

// text accumulates indented lines.
type text struct {
	sb     strings.Builder
	indent string
	level  int
}

func (t *text) line(s string) {
	if s != "" {
		t.sb.WriteString(strings.Repeat(t.indent, t.level))
		t.sb.WriteString(s)
	}
	t.sb.WriteByte('\n')
}

func (t *text) linef(format string, args ...any) {
	t.line(fmt.Sprintf(format, args...))
}

func (t *text) in()  { t.level++ }
func (t *text) out() { t.level-- }

// Program renders the imports and program declaration followed by the
// mappings, structs, records, closures and functions, in that order.
func (d *Disassembler) Program(p *program.Program) (string, error) {
	t := &text{indent: d.indent}
	for _, imp := range p.Imports {
		t.linef("import %s;", imp.ProgramID)
	}
	if len(p.Imports) > 0 {
		t.line("")
	}
	t.linef("program %s;", p.ID)
	t.line("")
	for _, m := range p.Mappings() {
		t.linef("mapping %s:", m.Name)
		t.in()
		t.linef("key %s as %s;", m.Key.Name, m.Key.PlaintextType)
		t.linef("value %s as %s;", m.Value.Name, m.Value.PlaintextType)
		t.out()
		t.line("")
	}
	for _, s := range p.Structs() {
		t.linef("struct %s:", s.Name)
		t.in()
		for _, m := range s.Members {
			t.linef("%s as %s;", m.Name, m.PlaintextType)
		}
		t.out()
		t.line("")
	}
	for _, r := range p.Records() {
		t.linef("record %s:", r.Name)
		t.in()
		t.linef("owner as address.%s;", r.Owner)
		for _, e := range r.Entries {
			t.linef("%s as %s;", e.Name, e.EntryType)
		}
		t.out()
		t.line("")
	}
	for _, c := range p.Closures() {
		if err := d.closure(t, c); err != nil {
			return "", fmt.Errorf("closure %s: %w", c.Name, err)
		}
	}
	for _, f := range p.Functions() {
		if err := d.function(t, f); err != nil {
			return "", fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return t.sb.String(), nil
}

func (d *Disassembler) closure(t *text, c program.Closure) error {
	t.linef("closure %s:", c.Name)
	t.in()
	for _, i := range c.Inputs {
		t.linef("input %s as %s;", i.Register, i.RegisterType)
	}
	if err := d.body(t, c.Instructions); err != nil {
		return err
	}
	for _, o := range c.Outputs {
		op, err := d.Operand(o.Operand)
		if err != nil {
			return err
		}
		t.linef("output %s as %s;", op, o.RegisterType)
	}
	t.out()
	t.line("")
	return nil
}

func (d *Disassembler) function(t *text, f program.Function) error {
	t.linef("function %s:", f.Name)
	t.in()
	for _, i := range f.Inputs {
		t.linef("input %s as %s;", i.Register, i.ValueType)
	}
	if err := d.body(t, f.Instructions); err != nil {
		return err
	}
	for _, o := range f.Outputs {
		op, err := d.Operand(o.Operand)
		if err != nil {
			return err
		}
		t.linef("output %s as %s;", op, o.ValueType)
	}
	if fin, ok := f.Finalize.Get(); ok {
		ops, err := d.operands(fin.Command.Operands)
		if err != nil {
			return err
		}
		t.linef("finalize %s;", ops)
		t.out()
		t.line("")
		t.linef("finalize %s:", fin.Finalize.Name)
		t.in()
		for _, i := range fin.Finalize.Inputs {
			t.linef("input %s as %s;", i.Register, i.PlaintextType)
		}
		for _, c := range fin.Finalize.Commands {
			s, err := d.Command(c)
			if err != nil {
				return err
			}
			t.line(s + ";")
		}
	}
	t.out()
	t.line("")
	return nil
}

func (d *Disassembler) body(t *text, instructions []program.Instruction) error {
	for _, inst := range instructions {
		s, err := d.Instruction(inst)
		if err != nil {
			return err
		}
		t.line(s + ";")
	}
	return nil
}
