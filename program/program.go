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
	"bytes"
	"crypto/md5" // #nosec G501 -- structural fingerprint, not a security hash
	"fmt"
	"strings"

	"github.com/blinklabs-io/aleoledger/codec"
)

// ProgramVersion is the only program encoding version accepted.
const ProgramVersion = 1

// Program is a decoded program. Definitions keep their declaration order;
// names are unique across all definition kinds.
type Program struct {
	ID      ProgramID
	Imports []Import

	definitions []Definition
	identifiers map[Identifier]DefinitionTag
	mappings    map[Identifier]Mapping
	structs     map[Identifier]Struct
	records     map[Identifier]RecordType
	closures    map[Identifier]Closure
	functions   map[Identifier]Function
}

// NewProgram builds a program from definitions in declaration order.
func NewProgram(id ProgramID, imports []Import, defs ...Definition) (*Program, error) {
	p := &Program{
		ID:          id,
		Imports:     imports,
		identifiers: make(map[Identifier]DefinitionTag),
		mappings:    make(map[Identifier]Mapping),
		structs:     make(map[Identifier]Struct),
		records:     make(map[Identifier]RecordType),
		closures:    make(map[Identifier]Closure),
		functions:   make(map[Identifier]Function),
	}
	for _, def := range defs {
		if err := p.add(def); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Program) add(def Definition) error {
	name := def.Ident()
	if _, ok := p.identifiers[name]; ok {
		return &codec.IdentifierError{
			Name: string(name),
			Err:  codec.ErrDuplicateIdentifier,
		}
	}
	switch d := def.(type) {
	case Mapping:
		p.mappings[name] = d
	case Struct:
		p.structs[name] = d
	case RecordType:
		p.records[name] = d
	case Closure:
		p.closures[name] = d
	case Function:
		p.functions[name] = d
	default:
		return fmt.Errorf("%w: definition %T", codec.ErrInvalidVariant, def)
	}
	p.identifiers[name] = def.Type()
	p.definitions = append(p.definitions, def)
	return nil
}

func DecodeProgram(r *codec.Reader) (*Program, error) {
	if err := codec.CheckVersion(r, "Program", ProgramVersion); err != nil {
		return nil, err
	}
	id, err := DecodeProgramID(r)
	if err != nil {
		return nil, fmt.Errorf("decode program id: %w", err)
	}
	imports, err := codec.DecodeVec(r, codec.U8, DecodeImport)
	if err != nil {
		return nil, fmt.Errorf("decode program %s imports: %w", id, err)
	}
	p, _ := NewProgram(id, imports)
	n, err := r.ReadLength(codec.U16)
	if err != nil {
		return nil, fmt.Errorf("decode program %s definitions: %w", id, err)
	}
	for range n {
		def, err := decodeDefinition(r)
		if err != nil {
			return nil, fmt.Errorf("decode program %s: %w", id, err)
		}
		if err := p.add(def); err != nil {
			return nil, fmt.Errorf("decode program %s: %w", id, err)
		}
	}
	return p, nil
}

func decodeDefinition(r *codec.Reader) (Definition, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch DefinitionTag(tag) {
	case DefinitionMapping:
		return DecodeMapping(r)
	case DefinitionStruct:
		return DecodeStruct(r)
	case DefinitionRecord:
		return DecodeRecordType(r)
	case DefinitionClosure:
		return DecodeClosure(r)
	case DefinitionFunction:
		return DecodeFunction(r)
	}
	return nil, &codec.VariantError{Family: "ProgramDefinition", Tag: uint64(tag)}
}

func (p *Program) Encode(w *codec.Writer) {
	w.WriteUint8(ProgramVersion)
	p.encodeBody(w)
}

func (p *Program) encodeBody(w *codec.Writer) {
	p.ID.Encode(w)
	codec.EncodeVec(w, codec.U8, p.Imports, codec.Encode[Import])
	w.WriteLength(codec.U16, len(p.definitions))
	for _, def := range p.definitions {
		w.WriteUint8(uint8(def.Type()))
		def.Encode(w)
	}
}

// Definitions returns every definition in declaration order.
func (p *Program) Definitions() []Definition {
	return p.definitions
}

// Lookup returns the kind of definition bound to name.
func (p *Program) Lookup(name Identifier) (DefinitionTag, bool) {
	t, ok := p.identifiers[name]
	return t, ok
}

func ofType[T Definition](defs []Definition) []T {
	var ret []T
	for _, def := range defs {
		if d, ok := def.(T); ok {
			ret = append(ret, d)
		}
	}
	return ret
}

func (p *Program) Mappings() []Mapping   { return ofType[Mapping](p.definitions) }
func (p *Program) Structs() []Struct     { return ofType[Struct](p.definitions) }
func (p *Program) Records() []RecordType { return ofType[RecordType](p.definitions) }
func (p *Program) Closures() []Closure   { return ofType[Closure](p.definitions) }
func (p *Program) Functions() []Function { return ofType[Function](p.definitions) }

func (p *Program) Mapping(name Identifier) (Mapping, bool) {
	m, ok := p.mappings[name]
	return m, ok
}

func (p *Program) Struct(name Identifier) (Struct, bool) {
	s, ok := p.structs[name]
	return s, ok
}

func (p *Program) Record(name Identifier) (RecordType, bool) {
	r, ok := p.records[name]
	return r, ok
}

func (p *Program) Closure(name Identifier) (Closure, bool) {
	c, ok := p.closures[name]
	return c, ok
}

func (p *Program) Function(name Identifier) (Function, bool) {
	f, ok := p.functions[name]
	return f, ok
}

// The two minimal programs: one function taking a public and a private u32,
// adding them and returning the sum privately. They differ only in the
// function name.
var (
	helloWorldMain = []byte(
		"\x00\x01\x00\x04\x04main\x02\x00\x00\x00\x01\x00\x0b\x00\x00\x01\x02\x00\x0b\x00" +
			"\x01\x00\x00\x00\x02\x00\x01\x00\x00\x01\x00\x01\x00\x02\x01\x00\x01\x00\x02\x02\x00\x0b\x00\x00",
	)
	helloWorldHello = []byte(
		"\x00\x01\x00\x04\x05hello\x02\x00\x00\x00\x01\x00\x0b\x00\x00\x01\x02\x00\x0b\x00" +
			"\x01\x00\x00\x00\x02\x00\x01\x00\x00\x01\x00\x01\x00\x02\x01\x00\x01\x00\x02\x02\x00\x0b\x00\x00",
	)
)

// IsHelloWorld reports whether the program body, after its version and id,
// is byte-for-byte one of the two minimal programs.
func (p *Program) IsHelloWorld() bool {
	w := codec.NewWriter()
	p.encodeBody(w)
	body, err := w.Bytes()
	if err != nil {
		return false
	}
	header, err := codec.Marshal(p.ID)
	if err != nil {
		return false
	}
	body = body[len(header):]
	return bytes.Equal(body, helloWorldMain) || bytes.Equal(body, helloWorldHello)
}

// FeatureString is the structural summary the feature hash is taken over.
func (p *Program) FeatureString() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("S", len(p.structs)))
	sb.WriteString(strings.Repeat("R", len(p.records)))
	for _, c := range p.Closures() {
		sb.WriteString("C")
		sb.WriteString(FeatureString(c.Instructions))
	}
	for _, f := range p.Functions() {
		sb.WriteString("F")
		sb.WriteString(FeatureString(f.Instructions))
	}
	return sb.String()
}

// FeatureHash is the MD5 digest of FeatureString.
func (p *Program) FeatureHash() [md5.Size]byte {
	return md5.Sum([]byte(p.FeatureString())) // #nosec G401
}
