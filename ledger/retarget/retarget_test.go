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

package retarget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetargetVectors(t *testing.T) {
	testDefs := []struct {
		name       string
		prevTarget uint64
		prevTs     int64
		ts         int64
		halfLife   uint32
		inverse    bool
		anchor     int64
		expected   uint64
	}{
		{"zero drift", 100, 0, 25, 25, true, 25, 100},
		{"one half-life late inverse", 100, 0, 50, 25, true, 25, 50},
		{"one half-life late", 100, 0, 50, 25, false, 25, 200},
		{"clock went backwards", 1000000, 100, 90, 25, true, 25, 1945419},
		{"fractional inverse", 1000000, 0, 37, 25, true, 25, 716926},
		{"fractional", 1000000, 0, 37, 25, false, 25, 1394622},
		{"early", 1 << 40, 0, 13, 25, false, 25, 788269105152},
		{"floor", 1, 0, 1000000, 25, true, 25, 1},
		{"ceiling", math.MaxUint64, 0, 1000000, 25, false, 25, math.MaxUint64},
		{"zero target", 0, 0, 30, 25, false, 25, 1},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			got := Retarget(td.prevTarget, td.prevTs, td.ts, td.halfLife, td.inverse, td.anchor)
			assert.Equal(t, td.expected, got)
		})
	}
}

func TestRetargetMonotonic(t *testing.T) {
	prev := uint64(1_000_000)
	for ts := int64(26); ts < 200; ts++ {
		cur := Retarget(1_000_000, 0, ts, 25, true, 25)
		require.LessOrEqual(t, cur, prev, "timestamp %d", ts)
		prev = cur
	}
}

func TestRetargetExtremes(t *testing.T) {
	assert.Equal(t, uint64(1), Retarget(1, 0, math.MaxInt64, 1, true, 0))
	assert.Equal(t, uint64(math.MaxUint64), Retarget(math.MaxUint64, 0, math.MaxInt64, 1, false, 0))
	assert.Equal(t, uint64(math.MaxUint64), Retarget(math.MaxUint64, math.MinInt64, math.MaxInt64, 1, false, math.MinInt64))
	assert.Equal(t, uint64(1), Retarget(math.MaxUint64, math.MaxInt64, math.MinInt64, 1, false, math.MaxInt64))
}

func TestRetargetZeroHalfLife(t *testing.T) {
	assert.Equal(t, uint64(42), Retarget(42, 0, 1000, 0, false, 25))
}

func TestCoinbaseReward(t *testing.T) {
	assert.Equal(t, uint64(163987200), CoinbaseReward(0, 0, 25))
	assert.Equal(t, uint64(163985900), CoinbaseReward(100, 1000, 1025))
	assert.Equal(t, uint64(108182501), CoinbaseReward(100, 1000, 1040))
	assert.Equal(t, uint64(248545503), CoinbaseReward(5, 0, 10))
	assert.Zero(t, CoinbaseReward(AnchorHeight, 0, 25))
	assert.Zero(t, CoinbaseReward(math.MaxUint32, 0, 25))
}
