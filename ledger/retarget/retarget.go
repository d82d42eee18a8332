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

// Package retarget implements the fixed-point control loop that adjusts
// the coinbase and proof targets, and the coinbase reward derived from it.
package retarget

import (
	"math"
	"math/big"
)

const (
	// AnchorReward is the coinbase reward per remaining block until the
	// anchor height
	AnchorReward = 13
	// AnchorTime is the targeted block interval, in seconds
	AnchorTime = 25
	// HalfLife is the coinbase reward half-life, in seconds
	HalfLife = 25
	// AnchorHeight is the block height ten years after genesis at the
	// anchor block time
	AnchorHeight = 31536000 / AnchorTime * 10
)

// Coefficients of the cubic approximation of 2^(x/2^16), scaled by 2^48
var (
	coeff1   = big.NewInt(195_766_423_245_049)
	coeff2   = big.NewInt(971_821_376)
	coeff3   = big.NewInt(5_127)
	rounding = new(big.Int).Lsh(big.NewInt(1), 47)
	one16    = new(big.Int).Lsh(big.NewInt(1), 16)
	maxU64   = new(big.Int).SetUint64(math.MaxUint64)
)

// Targets only ever go below 2^(64+17), so shifting further than this in
// either direction saturates.
const maxShift = 128

// Retarget returns the target that follows prevTarget given the time
// between two blocks. The target halves (or doubles, when inverse is set)
// for every halfLife seconds of drift from anchorTime. The result is
// clamped to [1, 2^64-1]. A zero halfLife leaves the target unchanged.
func Retarget(
	prevTarget uint64,
	prevTimestamp int64,
	timestamp int64,
	halfLife uint32,
	inverse bool,
	anchorTime int64,
) uint64 {
	if halfLife == 0 {
		return prevTarget
	}
	// drift = max(timestamp - prevTimestamp, 1) - anchorTime
	drift := new(big.Int).Sub(big.NewInt(timestamp), big.NewInt(prevTimestamp))
	if drift.Cmp(big.NewInt(1)) < 0 {
		drift.SetInt64(1)
	}
	drift.Sub(drift, big.NewInt(anchorTime))
	if drift.Sign() == 0 {
		return prevTarget
	}
	if inverse {
		drift.Neg(drift)
	}

	// Quo truncates toward zero; Rsh on a negative value floors.
	exponent := new(big.Int).Lsh(drift, 16)
	exponent.Quo(exponent, big.NewInt(int64(halfLife)))
	integral := new(big.Int).Rsh(exponent, 16)
	fractional := new(big.Int).Sub(exponent, new(big.Int).Lsh(integral, 16))

	f2 := new(big.Int).Mul(fractional, fractional)
	f3 := new(big.Int).Mul(f2, fractional)
	poly := new(big.Int).Mul(coeff1, fractional)
	poly.Add(poly, new(big.Int).Mul(coeff2, f2))
	poly.Add(poly, new(big.Int).Mul(coeff3, f3))
	poly.Add(poly, rounding)
	poly.Rsh(poly, 48)
	multiplier := poly.Add(poly, one16)

	candidate := new(big.Int).SetUint64(prevTarget)
	candidate.Mul(candidate, multiplier)

	shifts := integral.Sub(integral, big.NewInt(16))
	switch {
	case candidate.Sign() == 0:
		return 1
	case shifts.Cmp(big.NewInt(maxShift)) >= 0:
		return math.MaxUint64
	case shifts.Cmp(big.NewInt(-maxShift)) <= 0:
		return 1
	case shifts.Sign() < 0:
		candidate.Rsh(candidate, uint(-shifts.Int64()))
	default:
		candidate.Lsh(candidate, uint(shifts.Int64()))
	}
	if candidate.Sign() == 0 {
		return 1
	}
	if candidate.Cmp(maxU64) > 0 {
		return math.MaxUint64
	}
	return candidate.Uint64()
}

// CoinbaseReward returns the reward for a block at height produced at
// timestamp after a previous coinbase at lastTimestamp. It is zero from
// the anchor height onwards.
func CoinbaseReward(height uint32, lastTimestamp int64, timestamp int64) uint64 {
	remaining := int64(AnchorHeight) - int64(height)
	if remaining <= 0 {
		return 0
	}
	return Retarget(
		uint64(remaining)*AnchorReward,
		lastTimestamp,
		timestamp,
		HalfLife,
		true,
		AnchorTime,
	)
}
