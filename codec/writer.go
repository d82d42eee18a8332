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
	"encoding/binary"
	"fmt"
	"math"
)

// Encoder is implemented by every entity with a binary form.
type Encoder interface {
	Encode(w *Writer)
}

// Writer appends the binary form of values to a buffer. The first error
// is recorded and every later write becomes a no-op.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Err returns the first error recorded by the writer.
func (w *Writer) Err() error {
	return w.err
}

// Errored returns true if an error has been recorded.
func (w *Writer) Errored() bool {
	return w.err != nil
}

// Fail records err if no earlier error exists.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Bytes returns the encoded bytes, or nil and the first error.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Marshal encodes e into a fresh buffer.
func Marshal(e Encoder) ([]byte, error) {
	w := NewWriter()
	e.Encode(w)
	return w.Bytes()
}

// MustMarshal is Marshal for values known to be encodable.
func MustMarshal(e Encoder) []byte {
	b, err := Marshal(e)
	if err != nil {
		panic(err)
	}
	return b
}

func (w *Writer) WriteByte(b byte) error {
	if w.err == nil {
		w.buf = append(w.buf, b)
	}
	return w.err
}

func (w *Writer) WriteBytes(b []byte) {
	if w.err == nil {
		w.buf = append(w.buf, b...)
	}
}

func (w *Writer) WriteUint8(v uint8) {
	_ = w.WriteByte(v)
}

func (w *Writer) WriteUint16(v uint16) {
	if w.err == nil {
		w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	}
}

func (w *Writer) WriteUint32(v uint32) {
	if w.err == nil {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	}
}

func (w *Writer) WriteUint64(v uint64) {
	if w.err == nil {
		w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	}
}

func (w *Writer) WriteUint128(v Uint128) {
	w.WriteUint64(v.Lo)
	w.WriteUint64(v.Hi)
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v)) // #nosec G115
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v)) // #nosec G115
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v)) // #nosec G115
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v)) // #nosec G115
}

func (w *Writer) WriteInt128(v Int128) {
	w.WriteUint128(Uint128(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

// WriteVarInt writes v in its shortest variable length form.
func (w *Writer) WriteVarInt(v uint64) {
	switch {
	case v < 0xfd:
		w.WriteUint8(uint8(v))
	case v <= math.MaxUint16:
		w.WriteUint8(0xfd)
		w.WriteUint16(uint16(v))
	case v <= math.MaxUint32:
		w.WriteUint8(0xfe)
		w.WriteUint32(uint32(v))
	default:
		w.WriteUint8(0xff)
		w.WriteUint64(v)
	}
}

// WriteLength writes n as a length prefix of the given width.
func (w *Writer) WriteLength(width LengthWidth, n int) {
	if n < 0 || uint64(n) > width.Max() {
		w.Fail(fmt.Errorf(
			"%w: %d does not fit %s",
			ErrLengthOverflow,
			n,
			width,
		))
		return
	}
	switch width {
	case U8:
		w.WriteUint8(uint8(n))
	case U16:
		w.WriteUint16(uint16(n))
	case U32:
		w.WriteUint32(uint32(n))
	case U64:
		w.WriteUint64(uint64(n))
	}
}

// WriteDelimited encodes e preceded by its byte length as a u16.
func (w *Writer) WriteDelimited(e Encoder) {
	if w.err != nil {
		return
	}
	b, err := Marshal(e)
	if err != nil {
		w.Fail(err)
		return
	}
	w.WriteLength(U16, len(b))
	w.WriteBytes(b)
}
