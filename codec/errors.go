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

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a read needs
	ErrTruncated = errors.New("truncated input")
	// ErrInvalidVersion is returned when a version byte does not match
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidVariant is returned for an unknown union discriminant
	ErrInvalidVariant = errors.New("invalid variant")
	// ErrLengthOverflow is returned when a count does not fit its prefix
	ErrLengthOverflow = errors.New("length exceeds prefix width")
	// ErrLengthMismatch is returned when a length-delimited entity does
	// not consume exactly its declared number of bytes
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrNonCanonical is returned for a byte sequence that has a shorter
	// or otherwise preferred encoding
	ErrNonCanonical = errors.New("non-canonical encoding")
	// ErrTrailingBytes is returned when bytes remain after a top-level entity
	ErrTrailingBytes = errors.New("trailing bytes")
	// ErrIdentifierNotFound is returned when a named member does not exist
	ErrIdentifierNotFound = errors.New("identifier not found")
	// ErrDuplicateIdentifier is returned when a name is declared twice
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrRepresentation is returned when a generic visibility type is used
	// with a representation it does not support
	ErrRepresentation = errors.New("unsupported private representation")
)

// VersionError is returned when a versioned entity carries an unexpected
// version byte.
type VersionError struct {
	Entity   string
	Expected uint8
	Got      uint8
}

func (e *VersionError) Error() string {
	return fmt.Sprintf(
		"%s: invalid version: expected %d, got %d",
		e.Entity,
		e.Expected,
		e.Got,
	)
}

func (e *VersionError) Unwrap() error {
	return ErrInvalidVersion
}

// VariantError is returned when a tagged union discriminant matches no
// known variant.
type VariantError struct {
	Family string
	Tag    uint64
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("%s: invalid variant %d", e.Family, e.Tag)
}

func (e *VariantError) Unwrap() error {
	return ErrInvalidVariant
}

// IdentifierError is returned by lookups and updates by name.
type IdentifierError struct {
	Name string
	Err  error
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Name)
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}

// CheckVersion reads a version byte and compares it with expected.
func CheckVersion(r *Reader, entity string, expected uint8) error {
	got, err := r.ReadUint8()
	if err != nil {
		return fmt.Errorf("%s: reading version: %w", entity, err)
	}
	if got != expected {
		return &VersionError{Entity: entity, Expected: expected, Got: got}
	}
	return nil
}

// Reason maps an error to the name of the check that failed. It is used
// for metric labels and log attributes.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidVersion):
		return "version"
	case errors.Is(err, ErrInvalidVariant):
		return "variant"
	case errors.Is(err, ErrTruncated),
		errors.Is(err, ErrLengthOverflow),
		errors.Is(err, ErrLengthMismatch):
		return "length"
	case errors.Is(err, ErrTrailingBytes):
		return "trailing"
	case errors.Is(err, ErrNonCanonical):
		return "canonical"
	case errors.Is(err, ErrIdentifierNotFound),
		errors.Is(err, ErrDuplicateIdentifier):
		return "identifier"
	case errors.Is(err, ErrRepresentation):
		return "representation"
	default:
		return "other"
	}
}
