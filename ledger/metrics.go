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
	"time"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks top-level decodes by entity kind.
type Metrics struct {
	entitiesDecoded *prometheus.CounterVec
	decodeFailures  *prometheus.CounterVec
	bytesDecoded    *prometheus.CounterVec
	decodeLatency   *prometheus.HistogramVec
}

// NewMetrics registers the decode metrics with promRegistry. A nil
// registry creates unregistered collectors.
func NewMetrics(promRegistry prometheus.Registerer) *Metrics {
	m := &Metrics{}
	m.init(promRegistry)
	return m
}

func (m *Metrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.entitiesDecoded = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aleoledger_decode_entities_total",
			Help: "number of top-level entities decoded",
		},
		[]string{"entity"},
	)
	m.decodeFailures = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aleoledger_decode_failures_total",
			Help: "number of failed decodes by failed check",
		},
		[]string{"entity", "reason"},
	)
	m.bytesDecoded = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aleoledger_decode_bytes_total",
			Help: "bytes consumed by successful decodes",
		},
		[]string{"entity"},
	)
	m.decodeLatency = promautoFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aleoledger_decode_duration_seconds",
			Help:    "time spent decoding a top-level entity",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		},
		[]string{"entity"},
	)
}

// Observe records the outcome of decoding size bytes as entity.
func (m *Metrics) Observe(entity string, size int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.decodeLatency.WithLabelValues(entity).Observe(elapsed.Seconds())
	if err != nil {
		m.decodeFailures.WithLabelValues(entity, codec.Reason(err)).Inc()
		return
	}
	m.entitiesDecoded.WithLabelValues(entity).Inc()
	m.bytesDecoded.WithLabelValues(entity).Add(float64(size))
}
