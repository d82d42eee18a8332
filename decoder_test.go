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

package aleoledger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewDefaults(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	assert.False(t, d.config.allowTrailingBytes)
	assert.Equal(t, "aleo", d.config.addressPrefix)
	assert.Equal(t, "  ", d.config.indent)
	assert.Nil(t, d.metrics)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(WithAddressPrefix(""))
	require.Error(t, err)
	_, err = New(WithLogger(nil))
	require.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := NewConfig(
		WithLogger(logger),
		WithPrometheusRegistry(reg),
		WithAllowTrailingBytes(true),
		WithAddressPrefix("testaleo"),
		WithIndent("\t"),
	)
	assert.Same(t, logger, cfg.logger)
	assert.Equal(t, prometheus.Registerer(reg), cfg.promRegistry)
	assert.True(t, cfg.allowTrailingBytes)
	assert.Equal(t, "testaleo", cfg.addressPrefix)
	assert.Equal(t, "\t", cfg.indent)
}

func TestDecodeProgramAndDisassemble(t *testing.T) {
	d, err := New(WithIndent("    "))
	require.NoError(t, err)
	p, err := d.DecodeProgram(testutil.HelloWorldBytes("hello"))
	require.NoError(t, err)
	assert.True(t, p.IsHelloWorld())
	text, err := d.Disassemble(p)
	require.NoError(t, err)
	assert.Equal(
		t,
		"program helloworld.aleo;\n"+
			"\n"+
			"function hello:\n"+
			"    input r0 as u32.public;\n"+
			"    input r1 as u32.private;\n"+
			"    add r0 r1 into r2;\n"+
			"    output r2 as u32.private;\n"+
			"\n",
		text,
	)
	_, err = d.Disassemble(nil)
	require.Error(t, err)
}

func TestTrailingBytesPolicy(t *testing.T) {
	data := append(testutil.HelloWorldBytes("main"), 0x00, 0x01)

	strict, err := New()
	require.NoError(t, err)
	_, err = strict.DecodeProgram(data)
	require.ErrorIs(t, err, codec.ErrTrailingBytes)

	lenient, err := New(WithAllowTrailingBytes(true))
	require.NoError(t, err)
	p, err := lenient.DecodeProgram(data)
	require.NoError(t, err)
	assert.Equal(t, "helloworld.aleo", p.ID.String())
}

func TestDecodeErrors(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	_, err = d.DecodeBlock([]byte{2})
	require.ErrorIs(t, err, codec.ErrInvalidVersion)

	_, err = d.DecodeTransaction([]byte{1, 3})
	require.ErrorIs(t, err, codec.ErrInvalidVariant)

	_, err = d.DecodeTransition(nil)
	require.ErrorIs(t, err, codec.ErrTruncated)

	// A program is not a deployment
	_, err = d.DecodeDeployment(testutil.HelloWorldBytes("main"))
	require.Error(t, err)
}

func TestDecodeLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, err := New(WithLogger(logger))
	require.NoError(t, err)

	data := testutil.HelloWorldBytes("main")
	_, err = d.DecodeProgram(data[:len(data)-1])
	require.Error(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "decoder", record["component"])
	assert.Equal(t, "Program", record["entity"])
	assert.Equal(t, "length", record["reason"])
}

func TestDecodeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	d, err := New(WithPrometheusRegistry(reg))
	require.NoError(t, err)

	data := testutil.HelloWorldBytes("main")
	_, err = d.DecodeProgram(data)
	require.NoError(t, err)
	_, err = d.DecodeProgram(append(data, 0))
	require.Error(t, err)

	count, err := promtest.GatherAndCount(reg, "aleoledger_decode_entities_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = promtest.GatherAndCount(reg, "aleoledger_decode_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDecodeConcurrent(t *testing.T) {
	d, err := New(WithPrometheusRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	var g errgroup.Group
	g.SetLimit(4)
	for i := range 32 {
		name := "main"
		if i%2 == 1 {
			name = "hello"
		}
		g.Go(func() error {
			p, err := d.DecodeProgram(testutil.HelloWorldBytes(name))
			if err != nil {
				return err
			}
			_, err = d.Disassemble(p)
			return err
		})
	}
	require.NoError(t, g.Wait())
}
