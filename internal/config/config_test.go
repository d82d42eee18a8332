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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobalConfig(t *testing.T) {
	t.Helper()
	globalConfig = defaultConfig()
	// Keep the search path away from any real user config
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "aleoledger.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o600))
	return tmpFile
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	resetGlobalConfig(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "  ", cfg.IndentString())
	assert.Equal(t, "aleo", cfg.AddressPrefix)
}

func TestLoadFromHomeDir(t *testing.T) {
	resetGlobalConfig(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".aleoledger")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "aleoledger.yaml"),
		[]byte("decodeWorkers: 9\n"),
		0o600,
	))
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.DecodeWorkers)
}

func TestLoadCompareFullStruct(t *testing.T) {
	resetGlobalConfig(t)
	tmpFile := writeConfig(t, `
allowTrailingBytes: true
addressPrefix: "testaleo"
indent: 4
decodeWorkers: 16
halfLife: 50
anchorTime: 30
`)
	expected := &Config{
		AllowTrailingBytes: true,
		AddressPrefix:      "testaleo",
		Indent:             4,
		DecodeWorkers:      16,
		HalfLife:           50,
		AnchorTime:         30,
	}
	actual, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.Equal(t, "    ", actual.IndentString())
}

func TestLoadConfigSection(t *testing.T) {
	resetGlobalConfig(t)
	tmpFile := writeConfig(t, `
config:
  indent: 0
  decodeWorkers: 2
`)
	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, 2, cfg.DecodeWorkers)
	// Untouched fields keep their defaults
	assert.Equal(t, "aleo", cfg.AddressPrefix)
	assert.Equal(t, "", cfg.IndentString())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	resetGlobalConfig(t)
	tmpFile := writeConfig(t, "decodeWorkers: 3\nallowTrailingBytes: false\n")
	t.Setenv("ALEOLEDGER_DECODE_WORKERS", "12")
	t.Setenv("ALEOLEDGER_ALLOW_TRAILING_BYTES", "true")
	t.Setenv("ALEOLEDGER_HALF_LIFE", "100")
	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.DecodeWorkers)
	assert.True(t, cfg.AllowTrailingBytes)
	assert.Equal(t, uint32(100), cfg.HalfLife)
}

func TestLoadInvalid(t *testing.T) {
	testDefs := []struct {
		name    string
		content string
	}{
		{"zero workers", "decodeWorkers: 0\n"},
		{"negative indent", "indent: -1\n"},
		{"empty prefix", "addressPrefix: \"\"\n"},
		{"zero half life", "halfLife: 0\n"},
		{"bad yaml", "indent: [\n"},
	}
	for _, td := range testDefs {
		t.Run(td.name, func(t *testing.T) {
			resetGlobalConfig(t)
			_, err := LoadConfig(writeConfig(t, td.content))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	resetGlobalConfig(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	cfg := defaultConfig()
	ctx := WithContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
