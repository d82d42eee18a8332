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
	"math/bits"

	"github.com/holiman/uint256"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Uint128From64 widens v.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// ParseUint128 parses a decimal string in [0, 2^128).
func ParseUint128(s string) (Uint128, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Uint128{}, fmt.Errorf("parse u128 %q: %w", s, err)
	}
	if v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%w: %s out of u128 range", ErrLengthOverflow, s)
	}
	return Uint128{Lo: v[0], Hi: v[1]}, nil
}

// Uint256 returns v widened to 256 bits.
func (v Uint128) Uint256() *uint256.Int {
	return &uint256.Int{v.Lo, v.Hi, 0, 0}
}

func (v Uint128) String() string {
	return v.Uint256().Dec()
}

// Int128 is a signed 128-bit integer in two's complement.
type Int128 Uint128

// Int128From64 sign-extends v.
func Int128From64(v int64) Int128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return Int128{Lo: uint64(v), Hi: hi} // #nosec G115
}

// Negative reports whether the sign bit is set.
func (v Int128) Negative() bool {
	return v.Hi>>63 == 1
}

// Abs returns the magnitude of v. The minimum value maps to 2^127.
func (v Int128) Abs() Uint128 {
	if !v.Negative() {
		return Uint128(v)
	}
	lo, carry := bits.Add64(^v.Lo, 1, 0)
	hi, _ := bits.Add64(^v.Hi, 0, carry)
	return Uint128{Lo: lo, Hi: hi}
}

func (v Int128) String() string {
	if v.Negative() {
		return "-" + v.Abs().String()
	}
	return Uint128(v).String()
}
