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

package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/aleoledger"
	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/internal/config"
	"github.com/blinklabs-io/aleoledger/internal/test/testutil"
	"github.com/blinklabs-io/aleoledger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir string, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testDecoder(t *testing.T, logger *slog.Logger) *aleoledger.Decoder {
	t.Helper()
	cfg := &config.Config{
		AddressPrefix: "aleo",
		Indent:        2,
		DecodeWorkers: 2,
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	}
	dec, err := newDecoder(cfg, logger)
	require.NoError(t, err)
	return dec
}

const helloWorldMain = "program helloworld.aleo;\n" +
	"\n" +
	"function main:\n" +
	"  input r0 as u32.public;\n" +
	"  input r1 as u32.private;\n" +
	"  add r0 r1 into r2;\n" +
	"  output r2 as u32.private;\n" +
	"\n"

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{0x01, 0xab, 0x00}
	path := writeFile(t, dir, "raw.bin", raw)
	got, err := readInput(path, false)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	path = writeFile(t, dir, "in.hex", []byte("0x01ab00\n"))
	got, err = readInput(path, true)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	path = writeFile(t, dir, "bad.hex", []byte("zz"))
	_, err = readInput(path, true)
	require.Error(t, err)

	_, err = readInput(filepath.Join(dir, "missing"), false)
	require.Error(t, err)
}

func TestDisasmRun(t *testing.T) {
	dir := t.TempDir()
	dec := testDecoder(t, nil)
	data := testutil.HelloWorldBytes("main")

	var out bytes.Buffer
	require.NoError(t, disasmRun(dec, writeFile(t, dir, "p.bin", data), disasmOptions{}, &out))
	assert.Equal(t, helloWorldMain, out.String())

	out.Reset()
	hexPath := writeFile(t, dir, "p.hex", []byte(hex.EncodeToString(data)))
	require.NoError(t, disasmRun(dec, hexPath, disasmOptions{hex: true}, &out))
	assert.Equal(t, helloWorldMain, out.String())

	deployment, err := codec.Marshal(ledger.Deployment{
		Edition: 1,
		Program: testutil.HelloWorldProgram(t, "main"),
	})
	require.NoError(t, err)
	out.Reset()
	depPath := writeFile(t, dir, "d.bin", deployment)
	require.NoError(t, disasmRun(dec, depPath, disasmOptions{deployment: true}, &out))
	assert.Equal(t, helloWorldMain, out.String())

	err = disasmRun(dec, depPath, disasmOptions{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), depPath)
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&syncWriter{w: &logs}, nil))
	dec := testDecoder(t, logger)
	paths := []string{
		writeFile(t, dir, "a.bin", testutil.HelloWorldBytes("main")),
		writeFile(t, dir, "b.bin", testutil.HelloWorldBytes("hello")),
	}
	require.NoError(t, decodeFiles(
		context.Background(),
		dec,
		logger,
		paths,
		decodeOptions{kind: "program", workers: 2},
	))
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"program":"helloworld.aleo"`)
		assert.Contains(t, line, `"helloWorld":true`)
	}

	bad := writeFile(t, dir, "c.bin", []byte{0x01})
	err := decodeFiles(
		context.Background(),
		dec,
		logger,
		append(paths, bad),
		decodeOptions{kind: "program", workers: 1},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")
}

func TestDecodeFilesUnknownKind(t *testing.T) {
	dec := testDecoder(t, nil)
	err := decodeFiles(
		context.Background(),
		dec,
		slog.Default(),
		[]string{"x"},
		decodeOptions{kind: "mapping"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block, deployment, program, transaction, transition")
}

func TestRetargetRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, retargetRun(retargetOptions{
		prevTarget: 100,
		timestamp:  50,
		halfLife:   25,
		anchorTime: 25,
		inverse:    true,
	}, false, &out))
	assert.Equal(t, "50\n", out.String())

	out.Reset()
	require.NoError(t, retargetRun(retargetOptions{
		prevTimestamp: 1000,
		timestamp:     1040,
		height:        100,
	}, true, &out))
	assert.Equal(t, "108182501\n", out.String())
}
