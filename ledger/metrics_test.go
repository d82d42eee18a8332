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

package ledger

import (
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.Observe("Block", 100, 0, nil)
	m.Observe("Block", 50, 0, nil)
	m.Observe("Block", 3, 0, &codec.VersionError{Entity: "Block", Expected: 1, Got: 2})
	m.Observe("Transaction", 1, 0, codec.ErrTruncated)

	assert.InDelta(t, 2.0, promtest.ToFloat64(m.entitiesDecoded.WithLabelValues("Block")), 0)
	assert.InDelta(t, 150.0, promtest.ToFloat64(m.bytesDecoded.WithLabelValues("Block")), 0)
	assert.InDelta(t, 1.0, promtest.ToFloat64(m.decodeFailures.WithLabelValues("Block", "version")), 0)
	assert.InDelta(t, 1.0, promtest.ToFloat64(m.decodeFailures.WithLabelValues("Transaction", "length")), 0)
	assert.Equal(t, 2, promtest.CollectAndCount(m.decodeLatency))
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("Block", 1, 0, nil)
	})
}
