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
	"fmt"
	"math"
)

// LengthWidth is the integer width of a sequence length prefix.
type LengthWidth uint8

const (
	U8 LengthWidth = iota
	U16
	U32
	U64
)

func (lw LengthWidth) String() string {
	switch lw {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return fmt.Sprintf("LengthWidth(%d)", uint8(lw))
	}
}

// Max returns the largest count the width can carry.
func (lw LengthWidth) Max() uint64 {
	switch lw {
	case U8:
		return math.MaxUint8
	case U16:
		return math.MaxUint16
	case U32:
		return math.MaxUint32
	default:
		// Counts are held in an int, so a u64 prefix is bounded by it
		return math.MaxInt
	}
}

// ReadLength reads a length prefix of the given width.
func (r *Reader) ReadLength(width LengthWidth) (int, error) {
	var n uint64
	switch width {
	case U8:
		v, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		n = uint64(v)
	case U16:
		v, err := r.ReadUint16()
		if err != nil {
			return 0, err
		}
		n = uint64(v)
	case U32:
		v, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		n = uint64(v)
	case U64:
		v, err := r.ReadUint64()
		if err != nil {
			return 0, err
		}
		n = v
	default:
		return 0, fmt.Errorf("unknown length width %d", uint8(width))
	}
	if n > width.Max() {
		return 0, fmt.Errorf("%w: %d", ErrLengthOverflow, n)
	}
	// Every element occupies at least one byte, so a count larger than
	// the remaining input can never be satisfied
	if n > uint64(r.Remaining()) {
		return 0, fmt.Errorf(
			"%w: %d elements claimed, %d bytes remain",
			ErrTruncated,
			n,
			r.Remaining(),
		)
	}
	return int(n), nil
}

// DecodeFunc decodes one value from the cursor.
type DecodeFunc[T any] func(r *Reader) (T, error)

// EncodeFunc writes one value.
type EncodeFunc[T any] func(w *Writer, v T)

// DecodeVec reads a length prefix of the given width and then exactly that
// many elements.
func DecodeVec[T any](r *Reader, width LengthWidth, decode DecodeFunc[T]) ([]T, error) {
	n, err := r.ReadLength(width)
	if err != nil {
		return nil, fmt.Errorf("reading sequence length: %w", err)
	}
	return DecodeN(r, n, decode)
}

// DecodeN reads exactly n elements with no prefix. It is used where the
// count is known from context rather than from the bytes.
func DecodeN[T any](r *Reader, n int, decode DecodeFunc[T]) ([]T, error) {
	ret := make([]T, 0, n)
	for i := range n {
		v, err := decode(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// EncodeVec writes the length prefix followed by each element.
func EncodeVec[T any](w *Writer, width LengthWidth, elems []T, encode EncodeFunc[T]) {
	w.WriteLength(width, len(elems))
	EncodeN(w, elems, encode)
}

// EncodeN writes each element with no prefix.
func EncodeN[T any](w *Writer, elems []T, encode EncodeFunc[T]) {
	for _, e := range elems {
		if w.Errored() {
			return
		}
		encode(w, e)
	}
}

// Encode is an EncodeFunc for any Encoder.
func Encode[T Encoder](w *Writer, v T) {
	v.Encode(w)
}

// Option is a value that may be absent. It is encoded as a presence byte
// followed by the value when present.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// DecodeOption reads a presence byte and, if set, the value.
func DecodeOption[T any](r *Reader, decode DecodeFunc[T]) (Option[T], error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return Option[T]{}, fmt.Errorf("reading option: %w", err)
	}
	switch tag {
	case 0:
		return None[T](), nil
	case 1:
		v, err := decode(r)
		if err != nil {
			return Option[T]{}, err
		}
		return Some(v), nil
	default:
		return Option[T]{}, &VariantError{Family: "Option", Tag: uint64(tag)}
	}
}

// EncodeOption writes the presence byte and the value when present.
func EncodeOption[T any](w *Writer, o Option[T], encode EncodeFunc[T]) {
	if !o.Valid {
		w.WriteUint8(0)
		return
	}
	w.WriteUint8(1)
	encode(w, o.Value)
}

// DecodeDelimited reads a u16 byte length and decodes a value from exactly
// that many bytes.
func DecodeDelimited[T any](r *Reader, decode DecodeFunc[T]) (T, error) {
	var zero T
	n, err := r.ReadUint16()
	if err != nil {
		return zero, fmt.Errorf("reading delimited length: %w", err)
	}
	sub, err := r.Window(int(n))
	if err != nil {
		return zero, err
	}
	v, err := decode(sub)
	if err != nil {
		return zero, err
	}
	if sub.Remaining() != 0 {
		return zero, fmt.Errorf(
			"%w: %d of %d delimited bytes unused",
			ErrLengthMismatch,
			sub.Remaining(),
			n,
		)
	}
	return v, nil
}

// Decode reads a single top-level value from data. When strict is set the
// value must consume all of data.
func Decode[T any](data []byte, strict bool, decode DecodeFunc[T]) (T, error) {
	var zero T
	r := NewReader(data)
	v, err := decode(r)
	if err != nil {
		return zero, err
	}
	if strict {
		if err := r.Done(); err != nil {
			return zero, err
		}
	}
	return v, nil
}
