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

// Package codec implements the little-endian binary format shared by every
// ledger entity: fixed-width integers, varints, length-prefixed sequences,
// optional values and versioned or tagged envelopes.
//
// Decoding works on a Reader, a cursor over an immutable byte slice. Each
// decode function consumes exactly the bytes of its entity from the front
// of the cursor and leaves the rest for the caller. The caller's slice is
// never modified.
package codec

import (
	"encoding/binary"
	"fmt"
)

// Reader is a cursor over a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Done returns ErrTrailingBytes if any bytes remain.
func (r *Reader) Done() error {
	if r.Remaining() != 0 {
		return fmt.Errorf(
			"%w: %d bytes after offset %d",
			ErrTrailingBytes,
			r.Remaining(),
			r.pos,
		)
	}
	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrTruncated, r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice is a copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf(
			"%w: need %d bytes at offset %d, have %d",
			ErrTruncated,
			n,
			r.pos,
			r.Remaining(),
		)
	}
	b := make([]byte, n)
	copy(b, r.data[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// ReadInto fills dst from the cursor.
func (r *Reader) ReadInto(dst []byte) error {
	if len(dst) > r.Remaining() {
		return fmt.Errorf(
			"%w: need %d bytes at offset %d, have %d",
			ErrTruncated,
			len(dst),
			r.pos,
			r.Remaining(),
		)
	}
	copy(dst, r.data[r.pos:r.pos+len(dst)])
	r.pos += len(dst)
	return nil
}

// Window returns a Reader over the next n bytes and advances past them.
// Decoders use it for length-delimited entities.
func (r *Reader) Window(n int) (*Reader, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf(
			"%w: window of %d bytes at offset %d, have %d",
			ErrTruncated,
			n,
			r.pos,
			r.Remaining(),
		)
	}
	sub := &Reader{data: r.data[r.pos : r.pos+n]}
	r.pos += n
	return sub, nil
}

func (r *Reader) fixed(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf(
			"%w: need %d bytes at offset %d, have %d",
			ErrTruncated,
			n,
			r.pos,
			r.Remaining(),
		)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadUint128() (Uint128, error) {
	b, err := r.fixed(16)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[:8]),
		Hi: binary.LittleEndian.Uint64(b[8:]),
	}, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err // #nosec G115
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err // #nosec G115
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err // #nosec G115
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err // #nosec G115
}

func (r *Reader) ReadInt128() (Int128, error) {
	v, err := r.ReadUint128()
	return Int128(v), err
}

// ReadBool reads a byte that must be 0 or 1.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte %d", ErrNonCanonical, b)
	}
}

// ReadVarInt reads a variable length integer: values below 0xfd take one
// byte, larger values are prefixed by 0xfd (u16), 0xfe (u32) or 0xff (u64).
// Encodings that are longer than necessary are rejected.
func (r *Reader) ReadVarInt() (uint64, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("reading varint: %w", err)
	}
	var v uint64
	var minimum uint64
	switch flag {
	case 0xfd:
		x, err := r.ReadUint16()
		if err != nil {
			return 0, fmt.Errorf("reading varint: %w", err)
		}
		v, minimum = uint64(x), 0xfd
	case 0xfe:
		x, err := r.ReadUint32()
		if err != nil {
			return 0, fmt.Errorf("reading varint: %w", err)
		}
		v, minimum = uint64(x), 0x10000
	case 0xff:
		x, err := r.ReadUint64()
		if err != nil {
			return 0, fmt.Errorf("reading varint: %w", err)
		}
		v, minimum = x, 0x1_0000_0000
	default:
		return uint64(flag), nil
	}
	if v < minimum {
		return 0, fmt.Errorf(
			"%w: varint %d encoded with prefix 0x%x",
			ErrNonCanonical,
			v,
			flag,
		)
	}
	return v, nil
}
