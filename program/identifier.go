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

// Package program models deployed programs: their identifiers, types,
// instructions and definitions, together with the binary codec for each.
package program

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/aleoledger/codec"
)

// MaxIdentifierLength is the longest identifier the u8 length prefix allows.
const MaxIdentifierLength = 255

var ErrInvalidIdentifier = fmt.Errorf("%w: invalid identifier", codec.ErrNonCanonical)

// Identifier is a program-level name: an ASCII letter followed by letters,
// digits or underscores.
type Identifier string

func validIdentifier(s string) bool {
	if len(s) == 0 || len(s) > MaxIdentifierLength {
		return false
	}
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}
	return true
}

// NewIdentifier validates s.
func NewIdentifier(s string) (Identifier, error) {
	if !validIdentifier(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return Identifier(s), nil
}

func DecodeIdentifier(r *codec.Reader) (Identifier, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", fmt.Errorf("decode identifier: %w", err)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("decode identifier: %w", err)
	}
	return NewIdentifier(string(b))
}

func (id Identifier) Encode(w *codec.Writer) {
	if !validIdentifier(string(id)) {
		w.Fail(fmt.Errorf("%w: %q", ErrInvalidIdentifier, string(id)))
		return
	}
	w.WriteLength(codec.U8, len(id))
	w.WriteBytes([]byte(id))
}

func (id Identifier) String() string {
	return string(id)
}

func encodeIdentifier(w *codec.Writer, id Identifier) {
	id.Encode(w)
}

// ProgramID names a program on a network, e.g. "token.aleo".
type ProgramID struct {
	Name    Identifier
	Network Identifier
}

// ParseProgramID splits "name.network".
func ParseProgramID(s string) (ProgramID, error) {
	nameStr, networkStr, ok := strings.Cut(s, ".")
	if !ok {
		return ProgramID{}, fmt.Errorf("%w: program id %q has no network", ErrInvalidIdentifier, s)
	}
	name, err := NewIdentifier(nameStr)
	if err != nil {
		return ProgramID{}, err
	}
	network, err := NewIdentifier(networkStr)
	if err != nil {
		return ProgramID{}, err
	}
	return ProgramID{Name: name, Network: network}, nil
}

func DecodeProgramID(r *codec.Reader) (ProgramID, error) {
	name, err := DecodeIdentifier(r)
	if err != nil {
		return ProgramID{}, err
	}
	network, err := DecodeIdentifier(r)
	if err != nil {
		return ProgramID{}, err
	}
	return ProgramID{Name: name, Network: network}, nil
}

func (p ProgramID) Encode(w *codec.Writer) {
	p.Name.Encode(w)
	p.Network.Encode(w)
}

func (p ProgramID) String() string {
	return string(p.Name) + "." + string(p.Network)
}

// Locator addresses a resource inside another program, e.g. "token.aleo/mint".
type Locator struct {
	ProgramID ProgramID
	Resource  Identifier
}

func DecodeLocator(r *codec.Reader) (Locator, error) {
	id, err := DecodeProgramID(r)
	if err != nil {
		return Locator{}, err
	}
	resource, err := DecodeIdentifier(r)
	if err != nil {
		return Locator{}, err
	}
	return Locator{ProgramID: id, Resource: resource}, nil
}

func (l Locator) Encode(w *codec.Writer) {
	l.ProgramID.Encode(w)
	l.Resource.Encode(w)
}

func (l Locator) String() string {
	return l.ProgramID.String() + "/" + string(l.Resource)
}

// Import declares a dependency on another program.
type Import struct {
	ProgramID ProgramID
}

func DecodeImport(r *codec.Reader) (Import, error) {
	id, err := DecodeProgramID(r)
	return Import{ProgramID: id}, err
}

func (i Import) Encode(w *codec.Writer) {
	i.ProgramID.Encode(w)
}
